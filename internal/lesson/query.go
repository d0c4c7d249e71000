package lesson

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortCatalog SortKey = ""
	SortTitle   SortKey = "title"
	SortLevel   SortKey = "level"
	SortMinutes SortKey = "minutes"
)

// ParseSortKey validates a sort key name.
func ParseSortKey(value string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(value)))
	switch key {
	case SortCatalog, SortTitle, SortLevel, SortMinutes:
		return key, nil
	default:
		return "", fmt.Errorf("invalid sort %q (expected title|level|minutes)", value)
	}
}

// Query filters and orders catalog modules.
type Query struct {
	Text  string
	Level Level
	Tag   string
	Sort  SortKey
}

// Filter returns modules matching q in the requested order.
func (c *Catalog) Filter(q Query) []Module {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	tag := strings.ToLower(strings.TrimSpace(q.Tag))
	matches := make([]Module, 0, len(c.modules))
	for _, module := range c.modules {
		if q.Level != "" && module.Level != q.Level {
			continue
		}
		if tag != "" && !hasTag(module, tag) {
			continue
		}
		if text != "" && !matchesText(module, text) {
			continue
		}
		matches = append(matches, module)
	}
	sortModules(matches, q.Sort)
	return matches
}

func hasTag(module Module, tag string) bool {
	for _, candidate := range module.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

func matchesText(module Module, text string) bool {
	if strings.Contains(strings.ToLower(module.Title), text) {
		return true
	}
	if strings.Contains(strings.ToLower(module.Summary), text) {
		return true
	}
	for _, tag := range module.Tags {
		if strings.Contains(tag, text) {
			return true
		}
	}
	return false
}

func sortModules(modules []Module, key SortKey) {
	switch key {
	case SortTitle:
		sort.SliceStable(modules, func(i, j int) bool {
			return strings.ToLower(modules[i].Title) < strings.ToLower(modules[j].Title)
		})
	case SortLevel:
		sort.SliceStable(modules, func(i, j int) bool {
			return levelRank(modules[i].Level) < levelRank(modules[j].Level)
		})
	case SortMinutes:
		sort.SliceStable(modules, func(i, j int) bool {
			return modules[i].Minutes < modules[j].Minutes
		})
	}
}
