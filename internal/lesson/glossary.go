package lesson

import (
	"sort"
	"strings"
)

// Glossary is a case-insensitive term dictionary.
type Glossary struct {
	entries map[string]glossaryEntry
}

type glossaryEntry struct {
	term       string
	definition string
}

// NewGlossary indexes the given term definitions.
func NewGlossary(terms map[string]string) Glossary {
	entries := make(map[string]glossaryEntry, len(terms))
	for term, definition := range terms {
		entries[foldTerm(term)] = glossaryEntry{term: term, definition: definition}
	}
	return Glossary{entries: entries}
}

// GlossaryIndex returns the module glossary as a lookup index.
func (m Module) GlossaryIndex() Glossary {
	return NewGlossary(m.Glossary)
}

// Lookup returns the definition for a term, ignoring case and surrounding space.
func (g Glossary) Lookup(term string) (string, bool) {
	entry, ok := g.entries[foldTerm(term)]
	return entry.definition, ok
}

// Terms returns the authored terms sorted case-insensitively.
func (g Glossary) Terms() []string {
	terms := make([]string, 0, len(g.entries))
	for _, entry := range g.entries {
		terms = append(terms, entry.term)
	}
	sort.Slice(terms, func(i, j int) bool {
		return foldTerm(terms[i]) < foldTerm(terms[j])
	})
	return terms
}

func foldTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
