package curriculum

import (
	"regexp"
	"strconv"
)

// StepSet is a set of completed step ids
type StepSet map[string]struct{}

// NewStepSet builds a set from step ids
func NewStepSet(steps ...string) StepSet {
	s := make(StepSet, len(steps))
	for _, step := range steps {
		s[step] = struct{}{}
	}
	return s
}

// Has reports whether step is in the set
func (s StepSet) Has(step string) bool {
	_, ok := s[step]
	return ok
}

// MissingPrerequisites returns every prerequisite of target that is not
// in completed, in table order.
func (t *Table) MissingPrerequisites(target int, completed StepSet) []string {
	missing := []string{}
	for _, step := range t.chapters[target].Prerequisites {
		if !completed.Has(step) {
			missing = append(missing, step)
		}
	}
	return missing
}

// SkippedChapters returns the chapters before target whose own
// prerequisites are incomplete.
func (t *Table) SkippedChapters(target int, completed StepSet) []int {
	skipped := []int{}
	for ch := 1; ch < target; ch++ {
		if len(t.MissingPrerequisites(ch, completed)) > 0 {
			skipped = append(skipped, ch)
		}
	}
	return skipped
}

// ShouldWarn reports whether moving from current to target skips
// prerequisites. Moving backwards or staying put never warns.
func (t *Table) ShouldWarn(current, target int, completed StepSet) bool {
	return target > current && len(t.MissingPrerequisites(target, completed)) > 0
}

// CurrentChapter returns the furthest chapter reachable without skipping
// anything: the last chapter, in order, before the first blocked one.
func (t *Table) CurrentChapter(completed StepSet) int {
	current := t.First()
	for _, n := range t.order {
		if len(t.MissingPrerequisites(n, completed)) > 0 {
			break
		}
		current = n
	}
	return current
}

var chapterPathRe = regexp.MustCompile(`/tutorial/chapter-(\d+)`)

// ParseChapterPath extracts the chapter number from a tutorial path such
// as "/tutorial/chapter-3". Paths that are not chapter pages return false.
func ParseChapterPath(path string) (int, bool) {
	m := chapterPathRe.FindStringSubmatch(path)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ChapterPath returns the tutorial path of a chapter
func ChapterPath(number int) string {
	return "/tutorial/chapter-" + strconv.Itoa(number)
}
