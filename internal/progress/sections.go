package progress

import (
	"context"
	"fmt"
	"sort"

	"primer/internal/lesson"
)

// SectionProgress is the reading progress of a module's sections.
type SectionProgress struct {
	Done    []string `json:"done"`
	Total   int      `json:"total"`
	Percent int      `json:"percent"`
}

// ToggleSection flips the read state of a section and returns the new state.
func (t *Tracker) ToggleSection(ctx context.Context, module lesson.Module, sectionID string) (bool, error) {
	if !hasSection(module, sectionID) {
		return false, fmt.Errorf("%w: section %q in module %q", lesson.ErrNotFound, sectionID, module.ID)
	}
	done, err := t.doneSections(ctx, module.ID)
	if err != nil {
		return false, err
	}
	marked := true
	if contains(done, sectionID) {
		marked = false
		kept := done[:0]
		for _, id := range done {
			if id != sectionID {
				kept = append(kept, id)
			}
		}
		done = kept
	} else {
		done = append(done, sectionID)
		sort.Strings(done)
	}
	if err := t.setJSON(ctx, sectionsPrefix+module.ID, done); err != nil {
		return false, fmt.Errorf("store sections: %w", err)
	}
	t.log.WithField("module", module.ID).WithField("section", sectionID).WithField("done", marked).Debug("section toggled")
	return marked, nil
}

// Sections returns read progress for a module, ignoring ids no longer in it.
func (t *Tracker) Sections(ctx context.Context, module lesson.Module) (SectionProgress, error) {
	done, err := t.doneSections(ctx, module.ID)
	if err != nil {
		return SectionProgress{}, err
	}
	known := make([]string, 0, len(done))
	for _, id := range done {
		if hasSection(module, id) {
			known = append(known, id)
		}
	}
	total := len(module.Sections)
	percent := 0
	if total > 0 {
		percent = (200*len(known) + total) / (2 * total)
	}
	return SectionProgress{Done: known, Total: total, Percent: percent}, nil
}

func (t *Tracker) doneSections(ctx context.Context, moduleID string) ([]string, error) {
	var done []string
	if _, err := t.getJSON(ctx, sectionsPrefix+moduleID, &done); err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	return done, nil
}

func hasSection(module lesson.Module, sectionID string) bool {
	for _, section := range module.Sections {
		if section.ID == sectionID {
			return true
		}
	}
	return false
}
