package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(name, step, chapter string, ts time.Time) *ProgressEvent {
	return &ProgressEvent{Name: name, StepID: step, ChapterID: chapter, Timestamp: ts}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "sarah", "sarah"},
		{"mixed case", "Sarah", "sarah"},
		{"upper case", "SARAH", "sarah"},
		{"surrounding spaces", "  Sarah ", "sarah"},
		{"inner spaces kept", "Mary Ann", "mary ann"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNewUserRecord(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("with chapter", func(t *testing.T) {
		rec := NewUserRecord("sarah-1", event(" Sarah ", "html-basics", "1", ts), ts)

		assert.Equal(t, "sarah-1", rec.ID)
		assert.Equal(t, "Sarah", rec.Name)
		assert.Equal(t, "sarah", rec.NameKey)
		assert.Equal(t, "1", rec.LastChapter)
		assert.Empty(t, rec.StepsCompleted)
		assert.Empty(t, rec.StepTimestamps)
		assert.Empty(t, rec.ChaptersStarted)
	})

	t.Run("without chapter uses sentinel", func(t *testing.T) {
		rec := NewUserRecord("terry-1", event("Terry", "intro", "", ts), ts)
		assert.Equal(t, UnknownChapter, rec.LastChapter)
	})
}

func TestUserRecord_Apply_RepeatedStep(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	rec := NewUserRecord("u1", event("Sarah", "s1", "", t1), t1)
	rec.Apply(event("Sarah", "s1", "", t1))
	rec.Apply(event("Sarah", "s1", "", t2))

	assert.Equal(t, []string{"s1"}, rec.StepsCompleted)
	assert.Equal(t, t2, rec.StepTimestamps["s1"])
	assert.Equal(t, t2, rec.LastActivity)
}

func TestUserRecord_Apply_ChapterStartIsWriteOnce(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)

	rec := NewUserRecord("u1", event("Sarah", "a", "2", t1), t1)
	rec.Apply(event("Sarah", "a", "2", t1))
	rec.Apply(event("Sarah", "b", "2", t2))

	assert.Equal(t, t1, rec.ChaptersStarted["2"])
	assert.Len(t, rec.ChaptersStarted, 1)
	assert.Equal(t, "2", rec.LastChapter)
	assert.Equal(t, "b", rec.LastStep)
}

func TestUserRecord_Apply_PreservesInsertionOrder(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	rec := NewUserRecord("u1", event("Sarah", "c", "", base), base)
	for i, step := range []string{"c", "a", "b", "a", "c"} {
		rec.Apply(event("Sarah", step, "", base.Add(time.Duration(i)*time.Minute)))
	}

	assert.Equal(t, []string{"c", "a", "b"}, rec.StepsCompleted)
	assert.Len(t, rec.StepTimestamps, 3)
}

func TestUserRecord_Apply_LastChapterKeptWithoutChapter(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	rec := NewUserRecord("u1", event("Sarah", "a", "3", ts), ts)
	rec.Apply(event("Sarah", "a", "3", ts))
	rec.Apply(event("Sarah", "section-intro", "", ts.Add(time.Minute)))

	assert.Equal(t, "3", rec.LastChapter)
	assert.Equal(t, "section-intro", rec.LastStep)
}

func TestUserRecord_Apply_LegacyRecordWithoutMaps(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := &UserRecord{Name: "Legacy", StepsCompleted: []string{"old"}}

	rec.Apply(event("legacy", "new", "1", ts))

	require.NotNil(t, rec.StepTimestamps)
	assert.Equal(t, "legacy", rec.NameKey)
	assert.Equal(t, []string{"old", "new"}, rec.StepsCompleted)
	assert.Equal(t, ts, rec.ChaptersStarted["1"])
}

func TestUserRecord_Clone(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := NewUserRecord("u1", event("Sarah", "a", "1", ts), ts)
	rec.Apply(event("Sarah", "a", "1", ts))

	clone := rec.Clone()
	clone.Apply(event("Sarah", "b", "2", ts.Add(time.Minute)))

	assert.Equal(t, []string{"a"}, rec.StepsCompleted)
	assert.Len(t, rec.ChaptersStarted, 1)
	assert.Equal(t, []string{"a", "b"}, clone.StepsCompleted)
}
