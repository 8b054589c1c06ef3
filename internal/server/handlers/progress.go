package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/tutortrack/internal/models"
	"github.com/iudanet/tutortrack/internal/server/progress"
	"github.com/iudanet/tutortrack/internal/validation"
	"github.com/iudanet/tutortrack/pkg/api"
)

// maxTrackBodySize ограничивает размер тела события
const maxTrackBodySize = 64 << 10

//go:generate moq -out progress_service_mock.go . ProgressService

// ProgressService определяет операции агрегатора, нужные обработчикам
type ProgressService interface {
	Record(ctx context.Context, ev *models.ProgressEvent) (string, error)
	Report(ctx context.Context) (*progress.Report, error)
}

// ProgressHandler обрабатывает прием событий и отчет
type ProgressHandler struct {
	logger  *slog.Logger
	service ProgressService
}

// NewProgressHandler создает новый handler прогресса
func NewProgressHandler(logger *slog.Logger, service ProgressService) *ProgressHandler {
	return &ProgressHandler{
		logger:  logger,
		service: service,
	}
}

// Track обрабатывает POST /api/v1/progress/track
// Прием одного события прогресса
func (h *ProgressHandler) Track(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.TrackRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTrackBodySize)).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode track request", slog.Any("error", err))
		sendError(w, h.logger, "invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация до любой записи
	ev, err := validation.ValidateTrackRequest(&req)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid track request", slog.Any("error", err))
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	userID, err := h.service.Record(ctx, ev)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			h.logger.WarnContext(ctx, "track request cancelled", slog.Any("error", err))
		} else {
			h.logger.ErrorContext(ctx, "failed to record progress", slog.Any("error", err))
		}
		sendError(w, h.logger, "failed to track progress", http.StatusInternalServerError)
		return
	}

	sendJSON(w, h.logger, api.TrackResponse{Success: true, UserID: userID}, http.StatusOK)
}

// Report обрабатывает GET /api/v1/progress/track
// Сводный отчет по всем ученикам
func (h *ProgressHandler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.service.Report(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build report", slog.Any("error", err))
		sendError(w, h.logger, "failed to load progress data", http.StatusInternalServerError)
		return
	}

	sendJSON(w, h.logger, toReportResponse(report), http.StatusOK)
}

func toReportResponse(report *progress.Report) api.ReportResponse {
	resp := api.ReportResponse{
		Users: make([]api.UserSummary, 0, len(report.Users)),
		Analytics: api.Analytics{
			TotalUsers:  report.Analytics.TotalUsers,
			LastUpdated: report.Analytics.LastUpdated,
			ActiveUsers: report.ActiveUsers,
		},
	}

	for _, u := range report.Users {
		details := make([]api.StepDetail, 0, len(u.StepDetails))
		for _, d := range u.StepDetails {
			details = append(details, api.StepDetail{StepID: d.StepID, Timestamp: d.Timestamp})
		}

		resp.Users = append(resp.Users, api.UserSummary{
			ID:                u.ID,
			Name:              u.Name,
			LastStep:          u.LastStep,
			LastChapter:       u.LastChapter,
			LastActivity:      u.LastActivity,
			StepsCompleted:    u.StepsCompleted,
			ChaptersCount:     u.ChaptersStartedCount,
			FirstChapterStart: u.FirstChapterStart,
			StepDetails:       details,
			ChaptersStarted:   u.ChaptersStarted,
			ProgressPercent:   u.ProgressPercent,
		})
	}

	return resp
}
