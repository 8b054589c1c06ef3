package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iudanet/tutortrack/internal/client/storage"
	"github.com/iudanet/tutortrack/pkg/api"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMemoryIdentity возвращает мок хранилища имени с состоянием в памяти
func newMemoryIdentity(initial string) *storage.IdentityStorageMock {
	name := initial
	return &storage.IdentityStorageMock{
		GetDisplayNameFunc: func(ctx context.Context) (string, error) {
			if name == "" {
				return "", storage.ErrNameNotFound
			}
			return name, nil
		},
		SaveDisplayNameFunc: func(ctx context.Context, n string) error {
			name = n
			return nil
		},
	}
}

func TestResolver_SetDisplayName(t *testing.T) {
	ctx := context.Background()
	store := newMemoryIdentity("")
	r := NewResolver(store, setupTestLogger())

	_, ok := r.DisplayName(ctx)
	assert.False(t, ok)

	got, err := r.SetDisplayName(ctx, "  Sarah ")
	require.NoError(t, err)
	assert.Equal(t, "Sarah", got)

	name, ok := r.DisplayName(ctx)
	require.True(t, ok)
	assert.Equal(t, "Sarah", name)

	// Новое имя заменяет старое
	_, err = r.SetDisplayName(ctx, "Terry")
	require.NoError(t, err)
	name, _ = r.DisplayName(ctx)
	assert.Equal(t, "Terry", name)
}

func TestResolver_SetDisplayName_Empty(t *testing.T) {
	store := newMemoryIdentity("Sarah")
	r := NewResolver(store, setupTestLogger())

	_, err := r.SetDisplayName(context.Background(), "   ")
	require.Error(t, err)
	assert.Empty(t, store.SaveDisplayNameCalls())

	name, ok := r.DisplayName(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "Sarah", name)
}

func TestResolver_StorageErrors(t *testing.T) {
	store := &storage.IdentityStorageMock{
		GetDisplayNameFunc: func(ctx context.Context) (string, error) {
			return "", errors.New("disk error")
		},
		SaveDisplayNameFunc: func(ctx context.Context, name string) error {
			return errors.New("disk error")
		},
	}
	r := NewResolver(store, setupTestLogger())

	_, err := r.SetDisplayName(context.Background(), "Sarah")
	assert.ErrorContains(t, err, "failed to save display name")

	_, ok := r.DisplayName(context.Background())
	assert.False(t, ok)
}

func TestReporter_NoNameSendsNothing(t *testing.T) {
	sender := &SenderMock{}
	rep := NewReporter(NewResolver(newMemoryIdentity(""), setupTestLogger()), sender, 0, setupTestLogger())

	rep.Report(context.Background(), "html-basics", "1")
	rep.Wait()

	assert.Empty(t, sender.TrackProgressCalls())
}

func TestReporter_SendsEvent(t *testing.T) {
	sender := &SenderMock{
		TrackProgressFunc: func(ctx context.Context, req api.TrackRequest) (*api.TrackResponse, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return &api.TrackResponse{Success: true, UserID: "sarah-1"}, nil
		},
	}
	rep := NewReporter(NewResolver(newMemoryIdentity("Sarah"), setupTestLogger()), sender, time.Second, setupTestLogger())
	rep.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600)) }

	rep.Report(context.Background(), "html-basics", "1")
	rep.Report(context.Background(), "intro", "")
	rep.Wait()

	calls := sender.TrackProgressCalls()
	require.Len(t, calls, 2)

	byStep := map[string]api.TrackRequest{}
	for _, c := range calls {
		byStep[c.Req.StepID] = c.Req
	}
	assert.Equal(t, api.TrackRequest{
		Name:      "Sarah",
		StepID:    "html-basics",
		ChapterID: "1",
		Timestamp: "2025-03-01T11:00:00Z",
	}, byStep["html-basics"])
	assert.Empty(t, byStep["intro"].ChapterID)
}

func TestReporter_FailureIsSwallowed(t *testing.T) {
	sender := &SenderMock{
		TrackProgressFunc: func(ctx context.Context, req api.TrackRequest) (*api.TrackResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
	rep := NewReporter(NewResolver(newMemoryIdentity("Sarah"), setupTestLogger()), sender, time.Second, setupTestLogger())

	assert.NotPanics(t, func() {
		rep.Report(context.Background(), "html-basics", "1")
		rep.Wait()
	})
	// Повторов нет
	assert.Len(t, sender.TrackProgressCalls(), 1)
}

func TestReporter_DoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	sender := &SenderMock{
		TrackProgressFunc: func(ctx context.Context, req api.TrackRequest) (*api.TrackResponse, error) {
			<-release
			return &api.TrackResponse{Success: true}, nil
		},
	}
	rep := NewReporter(NewResolver(newMemoryIdentity("Sarah"), setupTestLogger()), sender, time.Second, setupTestLogger())

	done := make(chan struct{})
	go func() {
		rep.Report(context.Background(), "html-basics", "1")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Report blocked on the network call")
	}

	close(release)
	rep.Wait()
}

func TestReporter_CallerCancellationDoesNotAbortSend(t *testing.T) {
	var sendErr error
	sender := &SenderMock{
		TrackProgressFunc: func(ctx context.Context, req api.TrackRequest) (*api.TrackResponse, error) {
			sendErr = ctx.Err()
			return &api.TrackResponse{Success: true}, nil
		},
	}
	rep := NewReporter(NewResolver(newMemoryIdentity("Sarah"), setupTestLogger()), sender, time.Second, setupTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	rep.Report(ctx, "html-basics", "1")
	cancel()
	rep.Wait()

	require.Len(t, sender.TrackProgressCalls(), 1)
	assert.NoError(t, sendErr)
}

func TestReporter_TimeoutBoundsSend(t *testing.T) {
	sender := &SenderMock{
		TrackProgressFunc: func(ctx context.Context, req api.TrackRequest) (*api.TrackResponse, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	rep := NewReporter(NewResolver(newMemoryIdentity("Sarah"), setupTestLogger()), sender, 20*time.Millisecond, setupTestLogger())

	start := time.Now()
	rep.Report(context.Background(), "html-basics", "1")
	rep.Wait()

	assert.Less(t, time.Since(start), 2*time.Second)
}
