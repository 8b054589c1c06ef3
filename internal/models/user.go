package models

import (
	"slices"
	"strings"
	"time"
)

// UnknownChapter записывается в LastChapter, если первое событие пришло без главы.
const UnknownChapter = "unknown"

// ProgressEvent представляет одно событие прогресса, полученное сервером.
type ProgressEvent struct {
	Timestamp time.Time
	Name      string // отображаемое имя в том виде, в каком его ввел пользователь
	StepID    string
	ChapterID string // пустая строка, если глава не передана
}

// UserRecord представляет агрегированную активность одного пользователя на сервере.
type UserRecord struct {
	LastActivity    time.Time            `json:"lastActivity"`
	CreatedAt       time.Time            `json:"createdAt"`
	StepTimestamps  map[string]time.Time `json:"stepTimestamps"`  // step-id -> время последнего отчета
	ChaptersStarted map[string]time.Time `json:"chaptersStarted"` // chapter-id -> время первого отчета
	ID              string               `json:"-"`
	NameKey         string               `json:"-"` // нормализованное имя, ключ индекса
	Name            string               `json:"name"`
	LastStep        string               `json:"lastStep"`
	LastChapter     string               `json:"lastChapter"`
	StepsCompleted  []string             `json:"stepsCompleted"` // порядок вставки, без дублей
}

// NormalizeName returns the identity key for a display name.
// Two names resolve to the same user iff their keys are equal.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewUserRecord creates an empty record for the identity carried by ev.
// The event itself is not applied; call Apply afterwards.
func NewUserRecord(id string, ev *ProgressEvent, createdAt time.Time) *UserRecord {
	lastChapter := ev.ChapterID
	if lastChapter == "" {
		lastChapter = UnknownChapter
	}
	return &UserRecord{
		ID:              id,
		Name:            strings.TrimSpace(ev.Name),
		NameKey:         NormalizeName(ev.Name),
		LastStep:        ev.StepID,
		LastChapter:     lastChapter,
		LastActivity:    ev.Timestamp,
		StepsCompleted:  []string{},
		StepTimestamps:  make(map[string]time.Time),
		ChaptersStarted: make(map[string]time.Time),
		CreatedAt:       createdAt,
	}
}

// Apply merges a progress event into the record.
//
// LastStep, LastActivity and LastChapter follow the order in which events
// are applied, not their timestamps. StepsCompleted only grows, and a
// chapter's start time is fixed by the first event that names it.
func (u *UserRecord) Apply(ev *ProgressEvent) {
	u.Normalize()

	u.LastStep = ev.StepID
	u.LastActivity = ev.Timestamp

	if ev.ChapterID != "" {
		u.LastChapter = ev.ChapterID
		if _, ok := u.ChaptersStarted[ev.ChapterID]; !ok {
			u.ChaptersStarted[ev.ChapterID] = ev.Timestamp
		}
	}

	if !slices.Contains(u.StepsCompleted, ev.StepID) {
		u.StepsCompleted = append(u.StepsCompleted, ev.StepID)
	}

	// Повторное прохождение шага обновляет только время
	u.StepTimestamps[ev.StepID] = ev.Timestamp
}

// Normalize allocates nil collections and fills NameKey.
// Records written by older versions may lack stepTimestamps.
func (u *UserRecord) Normalize() {
	if u.StepsCompleted == nil {
		u.StepsCompleted = []string{}
	}
	if u.StepTimestamps == nil {
		u.StepTimestamps = make(map[string]time.Time)
	}
	if u.ChaptersStarted == nil {
		u.ChaptersStarted = make(map[string]time.Time)
	}
	if u.NameKey == "" {
		u.NameKey = NormalizeName(u.Name)
	}
}

// Clone создает глубокую копию записи
func (u *UserRecord) Clone() *UserRecord {
	c := *u
	c.StepsCompleted = slices.Clone(u.StepsCompleted)
	c.StepTimestamps = make(map[string]time.Time, len(u.StepTimestamps))
	for k, v := range u.StepTimestamps {
		c.StepTimestamps[k] = v
	}
	c.ChaptersStarted = make(map[string]time.Time, len(u.ChaptersStarted))
	for k, v := range u.ChaptersStarted {
		c.ChaptersStarted[k] = v
	}
	return &c
}

// Analytics представляет сводку по всему агрегату.
type Analytics struct {
	LastUpdated time.Time `json:"lastUpdated"`
	TotalUsers  int       `json:"totalUsers"`
}

// StepDetail is one (step, most recent report time) pair.
type StepDetail struct {
	Timestamp time.Time
	StepID    string
}

// UserSummary is the read-only admin view of a UserRecord.
type UserSummary struct {
	LastActivity         time.Time
	FirstChapterStart    time.Time
	ChaptersStarted      map[string]time.Time
	ID                   string
	Name                 string
	LastStep             string
	LastChapter          string
	StepDetails          []StepDetail
	StepsCompleted       int
	ChaptersStartedCount int
	ProgressPercent      float64
}
