package session

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"primer/internal/history"
	"primer/internal/lesson"
	"primer/internal/progress"
	"primer/internal/quiz"
)

// ResultTracker stores the score and verdict of a completed quiz.
type ResultTracker interface {
	RecordResult(ctx context.Context, moduleID string, score int, passed bool) (progress.Outcome, error)
}

// AttemptJournal appends completed attempts to a history log.
type AttemptJournal interface {
	Record(ctx context.Context, attempt history.Attempt) (string, error)
}

// Config wires a session to its persistence collaborators. Nil collaborators are skipped.
type Config struct {
	Tracker       ResultTracker
	Journal       AttemptJournal
	PassThreshold int
	Logger        logrus.FieldLogger
	Now           func() time.Time
}

// Completion is what a session reports after the user finishes a quiz.
type Completion struct {
	Result    quiz.Result
	Outcome   progress.Outcome
	AttemptID string
	Err       error
}

// Session plays one module's quiz and forwards each completion to persistence.
type Session struct {
	ctx       context.Context
	module    lesson.Module
	engine    *quiz.Engine
	tracker   ResultTracker
	journal   AttemptJournal
	log       logrus.FieldLogger
	now       func() time.Time
	startedAt time.Time
	last      *Completion
	attempts  int
}

// New builds a session for module. ctx bounds persistence calls made on completion.
func New(ctx context.Context, module lesson.Module, cfg Config) (*Session, error) {
	if ctx == nil {
		return nil, errors.New("session: context is nil")
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	s := &Session{
		ctx:     ctx,
		module:  module,
		tracker: cfg.Tracker,
		journal: cfg.Journal,
		log:     log.WithField("module", module.ID),
		now:     now,
	}
	opts := []quiz.Option{quiz.WithOnComplete(s.complete)}
	if cfg.PassThreshold > 0 {
		opts = append(opts, quiz.WithPassThreshold(cfg.PassThreshold))
	}
	engine, err := module.NewEngine(opts...)
	if err != nil {
		return nil, err
	}
	s.engine = engine
	s.startedAt = now()
	s.log.WithField("questions", engine.Len()).Debug("quiz session started")
	return s, nil
}

// Engine returns the quiz engine driven by this session.
func (s *Session) Engine() *quiz.Engine {
	return s.engine
}

// Module returns the module being played.
func (s *Session) Module() lesson.Module {
	return s.module
}

// Last returns the most recent completion, if any.
func (s *Session) Last() (Completion, bool) {
	if s.last == nil {
		return Completion{}, false
	}
	return *s.last, true
}

// Attempts returns how many times the quiz was completed in this session.
func (s *Session) Attempts() int {
	return s.attempts
}

// Retake discards the current answers and starts a fresh attempt.
func (s *Session) Retake() {
	s.engine.Reset()
	s.last = nil
	s.startedAt = s.now()
	s.log.Debug("quiz retake")
}

// complete is the engine completion callback.
func (s *Session) complete(score int, passed bool) {
	s.attempts++
	result, _ := s.engine.Result()
	completion := &Completion{Result: result}
	log := s.log.WithFields(logrus.Fields{"score": score, "passed": passed, "attempt": s.attempts})

	if s.tracker != nil {
		outcome, err := s.tracker.RecordResult(s.ctx, s.module.ID, score, passed)
		if err != nil {
			log.WithError(err).Error("record progress failed")
			completion.Err = err
		}
		completion.Outcome = outcome
	} else {
		completion.Outcome = progress.Outcome{
			ModuleID:  s.module.ID,
			Score:     score,
			Passed:    passed,
			BestScore: score,
		}
		if passed {
			completion.Outcome.Mastery = progress.MasteryFor(score)
		}
	}

	if s.journal != nil {
		attempt, err := history.FromEngine(s.module.ID, s.engine, s.startedAt, s.now())
		if err == nil {
			completion.AttemptID, err = s.journal.Record(s.ctx, attempt)
		}
		if err != nil {
			log.WithError(err).Error("record attempt failed")
			completion.Err = errors.Join(completion.Err, err)
		}
	}

	s.last = completion
	log.Info("quiz completed")
}
