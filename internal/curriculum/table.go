// Package curriculum holds the chapter dependency table and the
// prerequisite gate built on top of it.
package curriculum

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed chapters.yaml
var defaultChapters []byte

// ErrInvalidTable indicates that a chapter table failed validation
var ErrInvalidTable = errors.New("invalid chapter table")

// Chapter описывает одну главу и шаги, которые нужно пройти до нее.
type Chapter struct {
	Title         string   `yaml:"title"`
	Prerequisites []string `yaml:"prerequisites"`
	Number        int      `yaml:"number"`
}

type tableFile struct {
	Chapters []Chapter `yaml:"chapters"`
}

// Table is an immutable chapter dependency table. Every place that needs
// to know what blocks a chapter reads it from the same Table.
type Table struct {
	chapters map[int]Chapter
	order    []int
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := Parse(defaultChapters)
	if err != nil {
		panic(fmt.Sprintf("embedded chapters.yaml: %v", err))
	}
	return t
})

// Default returns the table shipped with the tutorial.
func Default() *Table {
	return defaultTable()
}

// Load reads a chapter table from a YAML file
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chapter table: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML chapter table
func Parse(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse chapter table: %w", err)
	}

	if len(file.Chapters) == 0 {
		return nil, fmt.Errorf("%w: no chapters defined", ErrInvalidTable)
	}

	t := &Table{
		chapters: make(map[int]Chapter, len(file.Chapters)),
		order:    make([]int, 0, len(file.Chapters)),
	}

	for _, ch := range file.Chapters {
		if ch.Number < 1 {
			return nil, fmt.Errorf("%w: chapter number must be positive, got %d", ErrInvalidTable, ch.Number)
		}
		if _, dup := t.chapters[ch.Number]; dup {
			return nil, fmt.Errorf("%w: chapter %d defined twice", ErrInvalidTable, ch.Number)
		}

		seen := make(map[string]struct{}, len(ch.Prerequisites))
		for _, step := range ch.Prerequisites {
			if step == "" {
				return nil, fmt.Errorf("%w: chapter %d has an empty step id", ErrInvalidTable, ch.Number)
			}
			if _, dup := seen[step]; dup {
				return nil, fmt.Errorf("%w: chapter %d lists step %q twice", ErrInvalidTable, ch.Number, step)
			}
			seen[step] = struct{}{}
		}

		ch.Prerequisites = slices.Clone(ch.Prerequisites)
		t.chapters[ch.Number] = ch
		t.order = append(t.order, ch.Number)
	}

	slices.Sort(t.order)
	return t, nil
}

// Chapters returns all chapters ordered by number
func (t *Table) Chapters() []Chapter {
	out := make([]Chapter, 0, len(t.order))
	for _, n := range t.order {
		ch := t.chapters[n]
		ch.Prerequisites = slices.Clone(ch.Prerequisites)
		out = append(out, ch)
	}
	return out
}

// Chapter returns the chapter with the given number
func (t *Table) Chapter(number int) (Chapter, bool) {
	ch, ok := t.chapters[number]
	if !ok {
		return Chapter{}, false
	}
	ch.Prerequisites = slices.Clone(ch.Prerequisites)
	return ch, true
}

// Title returns the chapter title or a generic label for unknown chapters.
func (t *Table) Title(number int) string {
	if ch, ok := t.chapters[number]; ok && ch.Title != "" {
		return ch.Title
	}
	return fmt.Sprintf("Chapter %d", number)
}

// Prerequisites returns the ordered step ids that unblock a chapter.
// Unknown chapters have none.
func (t *Table) Prerequisites(number int) []string {
	return slices.Clone(t.chapters[number].Prerequisites)
}

// First returns the lowest chapter number
func (t *Table) First() int {
	return t.order[0]
}

// Last returns the highest chapter number
func (t *Table) Last() int {
	return t.order[len(t.order)-1]
}

// TotalSteps returns the number of distinct step ids referenced by the table
func (t *Table) TotalSteps() int {
	seen := make(map[string]struct{})
	for _, ch := range t.chapters {
		for _, step := range ch.Prerequisites {
			seen[step] = struct{}{}
		}
	}
	return len(seen)
}
