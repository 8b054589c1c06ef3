package api

import "time"

// TrackRequest представляет событие прогресса от клиента.
// Timestamp передается строкой RFC 3339, сервер сам проверяет формат.
type TrackRequest struct {
	Name      string `json:"name"`
	StepID    string `json:"stepId"`
	ChapterID string `json:"chapterId,omitempty"`
	Timestamp string `json:"timestamp"`
}

// TrackResponse представляет ответ на принятое событие
type TrackResponse struct {
	UserID  string `json:"userId"`
	Success bool   `json:"success"`
}

// StepDetail: отметка о шаге с временем последнего отчета
type StepDetail struct {
	Timestamp time.Time `json:"timestamp"`
	StepID    string    `json:"stepId"`
}

// UserSummary представляет строку отчета по одному ученику
type UserSummary struct {
	LastActivity      time.Time            `json:"lastActivity"`
	FirstChapterStart time.Time            `json:"firstChapterStart"`
	ChaptersStarted   map[string]time.Time `json:"chaptersStarted"`
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	LastStep          string               `json:"lastStep"`
	LastChapter       string               `json:"lastChapter"`
	StepDetails       []StepDetail         `json:"stepDetails"`
	StepsCompleted    int                  `json:"stepsCompleted"`
	ChaptersCount     int                  `json:"chaptersStartedCount"`
	ProgressPercent   float64              `json:"progressPercent"`
}

// Analytics представляет сводные показатели
type Analytics struct {
	LastUpdated time.Time `json:"lastUpdated"`
	TotalUsers  int       `json:"totalUsers"`
	ActiveUsers int       `json:"activeUsers"`
}

// ReportResponse представляет полный отчет для администратора
type ReportResponse struct {
	Analytics Analytics     `json:"analytics"`
	Users     []UserSummary `json:"users"`
}
