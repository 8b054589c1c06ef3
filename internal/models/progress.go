package models

import "time"

// LocalProgress представляет прогресс одного ученика, хранящийся локально.
// Ключи только добавляются; удаляются они исключительно полным сбросом.
type LocalProgress struct {
	CompletedSections map[string]bool   `json:"completedSections"` // section-id -> true
	CompletedSteps    map[string]bool   `json:"completedSteps"`    // step-id -> true
	CurrentCode       map[string]string `json:"currentCode"`       // step-id -> последний сохраненный код
	LastVisited       *time.Time        `json:"lastVisited,omitempty"`
}

// NewLocalProgress returns an empty progress record with all maps allocated.
func NewLocalProgress() *LocalProgress {
	return &LocalProgress{
		CompletedSections: make(map[string]bool),
		CompletedSteps:    make(map[string]bool),
		CurrentCode:       make(map[string]string),
	}
}

// Normalize allocates any nil maps so a decoded record is safe to mutate.
func (p *LocalProgress) Normalize() {
	if p.CompletedSections == nil {
		p.CompletedSections = make(map[string]bool)
	}
	if p.CompletedSteps == nil {
		p.CompletedSteps = make(map[string]bool)
	}
	if p.CurrentCode == nil {
		p.CurrentCode = make(map[string]string)
	}
}

// Clone создает глубокую копию записи прогресса
func (p *LocalProgress) Clone() *LocalProgress {
	c := NewLocalProgress()
	for k, v := range p.CompletedSections {
		c.CompletedSections[k] = v
	}
	for k, v := range p.CompletedSteps {
		c.CompletedSteps[k] = v
	}
	for k, v := range p.CurrentCode {
		c.CurrentCode[k] = v
	}
	if p.LastVisited != nil {
		t := *p.LastVisited
		c.LastVisited = &t
	}
	return c
}
