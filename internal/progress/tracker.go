package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Store keys used by the tracker.
const (
	completedKey    = "completed-modules"
	masteryPrefix   = "mastery:"
	bestScorePrefix = "best-score:"
	sectionsPrefix  = "sections:"
)

// Mastery is the coarse skill label derived from a quiz score.
type Mastery string

const (
	MasteryNone      Mastery = ""
	MasteryBasic     Mastery = "basic"
	MasteryGood      Mastery = "good"
	MasteryExcellent Mastery = "excellent"
)

// MasteryFor maps a score to a mastery level.
func MasteryFor(score int) Mastery {
	switch {
	case score >= 90:
		return MasteryExcellent
	case score >= 80:
		return MasteryGood
	default:
		return MasteryBasic
	}
}

// Outcome summarizes how a quiz result changed stored progress.
type Outcome struct {
	ModuleID        string
	Score           int
	Passed          bool
	BestScore       int
	Mastery         Mastery
	FirstCompletion bool
}

// Tracker records completion, mastery and section progress in a Store.
type Tracker struct {
	store Store
	log   logrus.FieldLogger
}

// NewTracker wraps a store. A nil logger discards log output.
func NewTracker(store Store, log logrus.FieldLogger) *Tracker {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Tracker{store: store, log: log}
}

// RecordResult stores a completed quiz result for a module.
func (t *Tracker) RecordResult(ctx context.Context, moduleID string, score int, passed bool) (Outcome, error) {
	log := t.log.WithFields(logrus.Fields{"module": moduleID, "score": score, "passed": passed})
	outcome := Outcome{ModuleID: moduleID, Score: score, Passed: passed}

	best, found, err := t.BestScore(ctx, moduleID)
	if err != nil {
		return Outcome{}, err
	}
	outcome.BestScore = max(best, score)
	if !found || score > best {
		if err := t.store.Set(ctx, bestScorePrefix+moduleID, strconv.Itoa(outcome.BestScore)); err != nil {
			return Outcome{}, fmt.Errorf("store best score: %w", err)
		}
	}

	if passed {
		completed, err := t.Completed(ctx)
		if err != nil {
			return Outcome{}, err
		}
		if !contains(completed, moduleID) {
			completed = append(completed, moduleID)
			sort.Strings(completed)
			if err := t.setJSON(ctx, completedKey, completed); err != nil {
				return Outcome{}, fmt.Errorf("store completed modules: %w", err)
			}
			outcome.FirstCompletion = true
		}
		outcome.Mastery = MasteryFor(outcome.BestScore)
		if err := t.store.Set(ctx, masteryPrefix+moduleID, string(outcome.Mastery)); err != nil {
			return Outcome{}, fmt.Errorf("store mastery: %w", err)
		}
	} else {
		mastery, err := t.Mastery(ctx, moduleID)
		if err != nil {
			return Outcome{}, err
		}
		outcome.Mastery = mastery
	}

	log.WithFields(logrus.Fields{
		"best_score":       outcome.BestScore,
		"mastery":          outcome.Mastery,
		"first_completion": outcome.FirstCompletion,
	}).Info("quiz result recorded")
	return outcome, nil
}

// Completed returns the sorted ids of completed modules.
func (t *Tracker) Completed(ctx context.Context) ([]string, error) {
	var completed []string
	if _, err := t.getJSON(ctx, completedKey, &completed); err != nil {
		return nil, fmt.Errorf("load completed modules: %w", err)
	}
	return completed, nil
}

// IsCompleted reports whether a module has been passed.
func (t *Tracker) IsCompleted(ctx context.Context, moduleID string) (bool, error) {
	completed, err := t.Completed(ctx)
	if err != nil {
		return false, err
	}
	return contains(completed, moduleID), nil
}

// Mastery returns the stored mastery level for a module.
func (t *Tracker) Mastery(ctx context.Context, moduleID string) (Mastery, error) {
	value, ok, err := t.store.Get(ctx, masteryPrefix+moduleID)
	if err != nil {
		return MasteryNone, fmt.Errorf("load mastery: %w", err)
	}
	if !ok {
		return MasteryNone, nil
	}
	return Mastery(value), nil
}

// BestScore returns the best recorded score for a module.
func (t *Tracker) BestScore(ctx context.Context, moduleID string) (int, bool, error) {
	value, ok, err := t.store.Get(ctx, bestScorePrefix+moduleID)
	if err != nil {
		return 0, false, fmt.Errorf("load best score: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	score, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("parse best score %q: %w", value, err)
	}
	return score, true, nil
}

func (t *Tracker) getJSON(ctx context.Context, key string, target interface{}) (bool, error) {
	value, ok, err := t.store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(value), target); err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return true, nil
}

func (t *Tracker) setJSON(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return t.store.Set(ctx, key, string(payload))
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
