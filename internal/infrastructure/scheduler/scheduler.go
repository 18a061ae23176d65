package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/iho/caisse/internal/domain"
)

// Job names, also used as metric labels.
const (
	JobOpenRegister  = "open_register"
	JobCloseRegister = "close_register"
)

// Register is the part of the register use case the scheduler drives.
type Register interface {
	OpenSession(ctx context.Context) (*domain.RegisterSession, error)
	CloseSession(ctx context.Context) (*domain.RegisterSession, error)
}

// Observer is told about every job run.
type Observer interface {
	SchedulerRun(job string, err error)
}

type noopObserver struct{}

func (noopObserver) SchedulerRun(string, error) {}

// Config for Scheduler. An empty spec disables its job.
type Config struct {
	OpenSpec  string
	CloseSpec string
	Location  *time.Location
	Timeout   time.Duration
}

// Scheduler opens and closes the register at fixed times of day.
type Scheduler struct {
	cron     *cron.Cron
	register Register
	observer Observer
	logger   zerolog.Logger
	timeout  time.Duration
}

// New validates the cron specs and registers the jobs. Nothing runs until Start.
func New(cfg Config, register Register, observer Observer, logger zerolog.Logger) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if observer == nil {
		observer = noopObserver{}
	}

	logger = logger.With().Str("component", "scheduler").Logger()
	cronLogger := cronLogger{logger: logger}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		register: register,
		observer: observer,
		logger:   logger,
		timeout:  cfg.Timeout,
	}

	jobs := []struct {
		name string
		spec string
		run  func(context.Context) error
	}{
		{JobOpenRegister, cfg.OpenSpec, s.OpenRegister},
		{JobCloseRegister, cfg.CloseSpec, s.CloseRegister},
	}

	for _, job := range jobs {
		if job.spec == "" {
			continue
		}
		run := job.run
		if _, err := s.cron.AddFunc(job.spec, func() { _ = s.runWithTimeout(run) }); err != nil {
			return nil, fmt.Errorf("invalid %s schedule %q: %w", job.name, job.spec, err)
		}
		logger.Info().Str("job", job.name).Str("spec", job.spec).Msg("job scheduled")
	}

	return s, nil
}

// Jobs reports how many jobs are scheduled.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler; the returned context is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// OpenRegister opens a session. Failures are logged and reported, never fatal.
func (s *Scheduler) OpenRegister(ctx context.Context) error {
	session, err := s.register.OpenSession(ctx)
	s.observer.SchedulerRun(JobOpenRegister, err)
	if err != nil {
		s.logger.Error().Err(err).Msg("scheduled register opening failed")
		return err
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Str("opening_balance", session.OpeningBalance.String()).
		Msg("register opened by schedule")
	return nil
}

// CloseRegister closes the open session. Having nothing to close is not an error.
func (s *Scheduler) CloseRegister(ctx context.Context) error {
	session, err := s.register.CloseSession(ctx)
	if errors.Is(err, domain.ErrNoOpenSession) {
		s.observer.SchedulerRun(JobCloseRegister, nil)
		s.logger.Info().Msg("no open register to close")
		return nil
	}
	s.observer.SchedulerRun(JobCloseRegister, err)
	if err != nil {
		s.logger.Error().Err(err).Msg("scheduled register closing failed")
		return err
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Str("closing_balance", session.ClosingBalance.String()).
		Msg("register closed by schedule")
	return nil
}

func (s *Scheduler) runWithTimeout(run func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return run(ctx)
}

// cronLogger routes cron's own logging to zerolog.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
