package report

import (
	"context"
	"fmt"

	"primer/internal/lesson"
	"primer/internal/progress"
)

// ModuleStatus is the progress state of one catalog module.
type ModuleStatus struct {
	ID        string                   `json:"id"`
	Title     string                   `json:"title"`
	Summary   string                   `json:"summary,omitempty"`
	Level     lesson.Level             `json:"level"`
	Minutes   int                      `json:"minutes"`
	Tags      []string                 `json:"tags,omitempty"`
	Unlocked  bool                     `json:"unlocked"`
	Missing   []string                 `json:"missing_prerequisites,omitempty"`
	Completed bool                     `json:"completed"`
	Mastery   progress.Mastery         `json:"mastery,omitempty"`
	BestScore *int                     `json:"best_score,omitempty"`
	Sections  progress.SectionProgress `json:"sections"`
}

// Overview is the progress of every module in a catalog.
type Overview struct {
	Modules   []ModuleStatus `json:"modules"`
	Completed int            `json:"completed"`
	Total     int            `json:"total"`
}

// Percent returns the share of completed modules.
func (o Overview) Percent() int {
	if o.Total == 0 {
		return 0
	}
	return (200*o.Completed + o.Total) / (2 * o.Total)
}

// BuildOverview collects progress for the given modules in order.
func BuildOverview(ctx context.Context, modules []lesson.Module, tracker *progress.Tracker) (Overview, error) {
	completed, err := tracker.Completed(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("load completed modules: %w", err)
	}
	done := make(map[string]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}
	overview := Overview{Modules: make([]ModuleStatus, 0, len(modules)), Total: len(modules)}
	for _, module := range modules {
		status, err := moduleStatus(ctx, module, completed, tracker)
		if err != nil {
			return Overview{}, err
		}
		status.Completed = done[module.ID]
		if status.Completed {
			overview.Completed++
		}
		overview.Modules = append(overview.Modules, status)
	}
	return overview, nil
}

// moduleStatus reads the stored progress of one module.
func moduleStatus(ctx context.Context, module lesson.Module, completed []string, tracker *progress.Tracker) (ModuleStatus, error) {
	missing := lesson.MissingPrerequisites(module, completed)
	status := ModuleStatus{
		ID:       module.ID,
		Title:    module.Title,
		Summary:  module.Summary,
		Level:    module.Level,
		Minutes:  module.Minutes,
		Tags:     module.Tags,
		Unlocked: len(missing) == 0,
		Missing:  missing,
	}
	mastery, err := tracker.Mastery(ctx, module.ID)
	if err != nil {
		return ModuleStatus{}, fmt.Errorf("load mastery for %s: %w", module.ID, err)
	}
	status.Mastery = mastery
	best, ok, err := tracker.BestScore(ctx, module.ID)
	if err != nil {
		return ModuleStatus{}, fmt.Errorf("load best score for %s: %w", module.ID, err)
	}
	if ok {
		status.BestScore = &best
	}
	sections, err := tracker.Sections(ctx, module)
	if err != nil {
		return ModuleStatus{}, fmt.Errorf("load sections for %s: %w", module.ID, err)
	}
	status.Sections = sections
	return status, nil
}
