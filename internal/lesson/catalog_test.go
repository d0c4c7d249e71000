package lesson

import (
	"errors"
	"strings"
	"testing"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "01-basics.yml", basicsModuleYAML)
	writeFile(t, dir, "02-wallets.yaml", walletModuleYAML)
	writeFile(t, dir, "README.md", "not a module")
	catalog, err := LoadCatalog(dir)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

func testModule(id, title string, level Level, minutes int, prereqs ...string) Module {
	return Module{
		Version:       1,
		ID:            id,
		Title:         title,
		Level:         level,
		Minutes:       minutes,
		Prerequisites: prereqs,
	}
}

// TestLoadCatalogOrder verifies modules load in file-name order.
func TestLoadCatalogOrder(t *testing.T) {
	catalog := loadTestCatalog(t)
	modules := catalog.Modules()
	if len(modules) != 2 || modules[0].ID != "basics" || modules[1].ID != "wallets" {
		t.Fatalf("unexpected modules: %+v", modules)
	}
	next, ok := catalog.Next("basics")
	if !ok || next.ID != "wallets" {
		t.Fatalf("expected wallets after basics, got %q (%v)", next.ID, ok)
	}
	if _, ok := catalog.Next("wallets"); ok {
		t.Fatalf("expected no module after wallets")
	}
}

// TestCatalogGetUnknown verifies unknown ids map to ErrNotFound.
func TestCatalogGetUnknown(t *testing.T) {
	catalog := loadTestCatalog(t)
	if _, err := catalog.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestCatalogUnlocked verifies prerequisite gating.
func TestCatalogUnlocked(t *testing.T) {
	catalog := loadTestCatalog(t)
	unlocked, err := catalog.Unlocked("wallets", nil)
	if err != nil {
		t.Fatalf("unlocked: %v", err)
	}
	if unlocked {
		t.Fatalf("expected wallets to be locked")
	}
	unlocked, err = catalog.Unlocked("wallets", []string{"basics"})
	if err != nil {
		t.Fatalf("unlocked: %v", err)
	}
	if !unlocked {
		t.Fatalf("expected wallets to unlock after basics")
	}
	if unlocked, _ := catalog.Unlocked("basics", nil); !unlocked {
		t.Fatalf("expected module without prerequisites to be unlocked")
	}
}

// TestNewCatalogRejectsUnknownPrerequisite verifies dangling prerequisites are caught.
func TestNewCatalogRejectsUnknownPrerequisite(t *testing.T) {
	_, err := NewCatalog([]Module{testModule("a", "A", LevelBeginner, 1, "ghost")})
	if err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Fatalf("expected unknown prerequisite error, got %v", err)
	}
}

// TestNewCatalogRejectsCycles verifies prerequisite cycles are caught.
func TestNewCatalogRejectsCycles(t *testing.T) {
	_, err := NewCatalog([]Module{
		testModule("a", "A", LevelBeginner, 1, "c"),
		testModule("b", "B", LevelBeginner, 1, "a"),
		testModule("c", "C", LevelBeginner, 1, "b"),
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected cycle message, got %v", err)
	}
}

// TestNewCatalogRejectsDuplicates verifies module ids are unique.
func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]Module{
		testModule("a", "A", LevelBeginner, 1),
		testModule("a", "Again", LevelBeginner, 1),
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

// TestCatalogFilter verifies search, filters and sorting.
func TestCatalogFilter(t *testing.T) {
	catalog, err := NewCatalog([]Module{
		{Version: 1, ID: "defi", Title: "DeFi Lending", Level: LevelAdvanced, Minutes: 20, Tags: []string{"defi"}},
		{Version: 1, ID: "btc", Title: "Bitcoin", Summary: "Proof of work", Level: LevelBeginner, Minutes: 15, Tags: []string{"mining"}},
		{Version: 1, ID: "eth", Title: "ethereum", Level: LevelIntermediate, Minutes: 5, Tags: []string{"contracts", "defi"}},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	cases := []struct {
		name  string
		query Query
		want  []string
	}{
		{"all catalog order", Query{}, []string{"defi", "btc", "eth"}},
		{"by title", Query{Sort: SortTitle}, []string{"btc", "defi", "eth"}},
		{"by level", Query{Sort: SortLevel}, []string{"btc", "eth", "defi"}},
		{"by minutes", Query{Sort: SortMinutes}, []string{"eth", "btc", "defi"}},
		{"text in summary", Query{Text: "WORK"}, []string{"btc"}},
		{"text in tag", Query{Text: "contract"}, []string{"eth"}},
		{"tag", Query{Tag: "DeFi", Sort: SortMinutes}, []string{"eth", "defi"}},
		{"level", Query{Level: LevelAdvanced}, []string{"defi"}},
		{"no match", Query{Text: "nft"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := catalog.Filter(tc.query)
			ids := make([]string, 0, len(got))
			for _, module := range got {
				ids = append(ids, module.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tc.want, ",") {
				t.Fatalf("expected %v, got %v", tc.want, ids)
			}
		})
	}
}

// TestParseSortKey verifies sort key validation.
func TestParseSortKey(t *testing.T) {
	if key, err := ParseSortKey(" Title "); err != nil || key != SortTitle {
		t.Fatalf("expected title, got %q (%v)", key, err)
	}
	if _, err := ParseSortKey("popularity"); err == nil {
		t.Fatalf("expected invalid sort error")
	}
}

// TestGlossaryTerms verifies case-insensitive lookup and ordering.
func TestGlossaryTerms(t *testing.T) {
	glossary := NewGlossary(map[string]string{"Mempool": "pending txs", "block": "batch", "Address": "destination"})
	terms := glossary.Terms()
	if strings.Join(terms, ",") != "Address,block,Mempool" {
		t.Fatalf("unexpected terms: %v", terms)
	}
	if definition, ok := glossary.Lookup(" MEMPOOL "); !ok || definition != "pending txs" {
		t.Fatalf("unexpected lookup: %q (%v)", definition, ok)
	}
	if _, ok := glossary.Lookup("gas"); ok {
		t.Fatalf("expected missing term")
	}
}
