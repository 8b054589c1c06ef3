package identity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/tutortrack/pkg/api"
)

// DefaultReportTimeout ограничивает время одной отправки отчета
const DefaultReportTimeout = 5 * time.Second

//go:generate moq -out sender_mock.go . Sender

// Sender отправляет событие прогресса на сервер
type Sender interface {
	TrackProgress(ctx context.Context, req api.TrackRequest) (*api.TrackResponse, error)
}

// Reporter отправляет события прогресса на сервер в фоне.
// Отправка best-effort: ошибки только логируются, повторов нет.
type Reporter struct {
	resolver *Resolver
	sender   Sender
	logger   *slog.Logger
	now      func() time.Time
	wg       sync.WaitGroup
	timeout  time.Duration
}

// NewReporter создает Reporter. timeout <= 0 означает DefaultReportTimeout.
func NewReporter(resolver *Resolver, sender Sender, timeout time.Duration, logger *slog.Logger) *Reporter {
	if timeout <= 0 {
		timeout = DefaultReportTimeout
	}
	return &Reporter{
		resolver: resolver,
		sender:   sender,
		logger:   logger,
		now:      time.Now,
		timeout:  timeout,
	}
}

// Report schedules a progress event for the current display name and
// returns immediately. Without a display name nothing is sent.
// chapterID may be empty.
func (r *Reporter) Report(ctx context.Context, stepID, chapterID string) {
	name, ok := r.resolver.DisplayName(ctx)
	if !ok {
		r.logger.Debug("display name not set, skipping report", "step_id", stepID)
		return
	}

	req := api.TrackRequest{
		Name:      name,
		StepID:    stepID,
		ChapterID: chapterID,
		Timestamp: r.now().UTC().Format(time.RFC3339Nano),
	}

	// Отмена вызывающего не должна обрывать уже начатую отправку
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		resp, err := r.sender.TrackProgress(sendCtx, req)
		if err != nil {
			r.logger.Warn("failed to report progress", "step_id", stepID, "error", err)
			return
		}
		r.logger.Debug("progress reported", "step_id", stepID, "user_id", resp.UserID)
	}()
}

// Wait blocks until all scheduled reports have finished
func (r *Reporter) Wait() {
	r.wg.Wait()
}
