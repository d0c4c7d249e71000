package lesson

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound indicates an unknown module id.
var ErrNotFound = errors.New("module not found")

// Catalog is the set of lesson modules loaded from a directory.
type Catalog struct {
	modules []Module
	byID    map[string]int
}

// LoadCatalog loads every module file in dir, sorted by file name.
func LoadCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read lessons dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isModuleFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	modules := make([]Module, 0, len(names))
	var loadErrs []error
	for _, name := range names {
		module, err := LoadModule(filepath.Join(dir, name))
		if err != nil {
			loadErrs = append(loadErrs, err)
			continue
		}
		modules = append(modules, module)
	}
	if len(loadErrs) > 0 {
		return nil, errors.Join(loadErrs...)
	}
	return NewCatalog(modules)
}

// NewCatalog builds a catalog, checking ids and the prerequisite graph.
func NewCatalog(modules []Module) (*Catalog, error) {
	collector := &issueCollector{}
	catalog := &Catalog{
		modules: append([]Module(nil), modules...),
		byID:    make(map[string]int, len(modules)),
	}
	for i, module := range catalog.modules {
		if _, exists := catalog.byID[module.ID]; exists {
			collector.add("modules", fmt.Sprintf("duplicate module id %q", module.ID))
			continue
		}
		catalog.byID[module.ID] = i
	}
	for _, module := range catalog.modules {
		for _, prereq := range module.Prerequisites {
			if _, ok := catalog.byID[prereq]; !ok {
				collector.add(module.ID+".prerequisites", fmt.Sprintf("unknown module %q", prereq))
			}
		}
	}
	if err := collector.result(); err != nil {
		return nil, err
	}
	if cycle := catalog.findCycle(); len(cycle) > 0 {
		collector.add("prerequisites", "cycle "+strings.Join(cycle, " -> "))
		return nil, collector.result()
	}
	return catalog, nil
}

// Len returns the number of modules.
func (c *Catalog) Len() int {
	return len(c.modules)
}

// Modules returns all modules in catalog order.
func (c *Catalog) Modules() []Module {
	return append([]Module(nil), c.modules...)
}

// Get returns a module by id.
func (c *Catalog) Get(id string) (Module, error) {
	index, ok := c.byID[id]
	if !ok {
		return Module{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.modules[index], nil
}

// Unlocked reports whether every prerequisite of id is in completed.
func (c *Catalog) Unlocked(id string, completed []string) (bool, error) {
	module, err := c.Get(id)
	if err != nil {
		return false, err
	}
	return len(MissingPrerequisites(module, completed)) == 0, nil
}

// MissingPrerequisites lists prerequisites of module not yet completed.
func MissingPrerequisites(module Module, completed []string) []string {
	done := make(map[string]struct{}, len(completed))
	for _, id := range completed {
		done[id] = struct{}{}
	}
	var missing []string
	for _, prereq := range module.Prerequisites {
		if _, ok := done[prereq]; !ok {
			missing = append(missing, prereq)
		}
	}
	return missing
}

// Next returns the module after id in catalog order, if any.
func (c *Catalog) Next(id string) (Module, bool) {
	index, ok := c.byID[id]
	if !ok || index+1 >= len(c.modules) {
		return Module{}, false
	}
	return c.modules[index+1], true
}

// findCycle returns one prerequisite cycle, if present.
func (c *Catalog) findCycle() []string {
	const (
		unvisited = iota
		visiting
		visited
	)
	marks := make([]int, len(c.modules))
	var stack []string
	var visit func(int) []string
	visit = func(index int) []string {
		marks[index] = visiting
		stack = append(stack, c.modules[index].ID)
		for _, prereq := range c.modules[index].Prerequisites {
			next := c.byID[prereq]
			switch marks[next] {
			case visiting:
				start := 0
				for i, id := range stack {
					if id == prereq {
						start = i
						break
					}
				}
				cycle := append([]string(nil), stack[start:]...)
				return append(cycle, prereq)
			case unvisited:
				if cycle := visit(next); len(cycle) > 0 {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		marks[index] = visited
		return nil
	}
	for i := range c.modules {
		if marks[i] == unvisited {
			if cycle := visit(i); len(cycle) > 0 {
				return cycle
			}
		}
	}
	return nil
}
