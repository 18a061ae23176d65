package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/caisse/internal/domain"
)

type fakeRegister struct {
	openErr  error
	closeErr error
	opened   int
	closed   int
}

func (f *fakeRegister) OpenSession(ctx context.Context) (*domain.RegisterSession, error) {
	f.opened++
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &domain.RegisterSession{ID: "s1", OpeningBalance: decimal.NewFromInt(50), IsOpen: true}, nil
}

func (f *fakeRegister) CloseSession(ctx context.Context) (*domain.RegisterSession, error) {
	f.closed++
	if f.closeErr != nil {
		return nil, f.closeErr
	}
	return &domain.RegisterSession{ID: "s1", ClosingBalance: decimal.NewFromInt(80)}, nil
}

type recordingObserver struct {
	runs map[string][]error
}

func (r *recordingObserver) SchedulerRun(job string, err error) {
	if r.runs == nil {
		r.runs = map[string][]error{}
	}
	r.runs[job] = append(r.runs[job], err)
}

func TestNewSchedulesConfiguredJobs(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		jobs int
	}{
		{name: "disabled", cfg: Config{}, jobs: 0},
		{name: "open only", cfg: Config{OpenSpec: "0 8 * * *"}, jobs: 1},
		{name: "both", cfg: Config{OpenSpec: "0 8 * * 1-6", CloseSpec: "30 19 * * 1-6"}, jobs: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.cfg, &fakeRegister{}, nil, zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, tt.jobs, s.Jobs())
		})
	}
}

func TestNewRejectsBadSpec(t *testing.T) {
	_, err := New(Config{CloseSpec: "every evening"}, &fakeRegister{}, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestOpenRegister(t *testing.T) {
	reg := &fakeRegister{}
	obs := &recordingObserver{}
	s, err := New(Config{}, reg, obs, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, s.OpenRegister(context.Background()))
	assert.Equal(t, 1, reg.opened)
	assert.Equal(t, []error{nil}, obs.runs[JobOpenRegister])

	reg.openErr = errors.New("db down")
	assert.Error(t, s.OpenRegister(context.Background()))
	assert.Len(t, obs.runs[JobOpenRegister], 2)
}

func TestCloseRegisterWithoutSessionIsNotAFailure(t *testing.T) {
	reg := &fakeRegister{closeErr: domain.ErrNoOpenSession}
	obs := &recordingObserver{}
	s, err := New(Config{}, reg, obs, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, s.CloseRegister(context.Background()))
	assert.Equal(t, []error{nil}, obs.runs[JobCloseRegister])

	reg.closeErr = errors.New("boom")
	assert.Error(t, s.CloseRegister(context.Background()))
}

func TestStartStop(t *testing.T) {
	s, err := New(Config{OpenSpec: "@every 1h", Location: time.UTC}, &fakeRegister{}, nil, zerolog.Nop())
	require.NoError(t, err)

	s.Start()
	select {
	case <-s.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
