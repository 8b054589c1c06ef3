package curriculum

import (
	"errors"
	"sync"
)

// ErrNoPendingNavigation is returned by Proceed and Cancel when no
// warning is being shown.
var ErrNoPendingNavigation = errors.New("no pending navigation")

// State is a state of the navigation gate
type State int

const (
	StateIdle       State = iota // ждем навигации
	StateWarning                 // показано предупреждение, навигация отложена
	StateProceeding              // навигация выполняется
	StateCancelled               // отложенная навигация отброшена
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWarning:
		return "warning"
	case StateProceeding:
		return "proceeding"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Navigator gates chapter navigation for one learner.
//
// Navigate either lets the move through (StateProceeding) or suspends it
// (StateWarning) until Proceed or Cancel is called. Proceeding and
// Cancelled are transient: the navigator is Idle again once they return.
// There is no timeout.
type Navigator struct {
	table     *Table
	completed StepSet
	current   int
	pending   int
	state     State
	mu        sync.Mutex
}

// NewNavigator creates a navigator positioned at current
func NewNavigator(table *Table, current int, completed StepSet) *Navigator {
	return &Navigator{
		table:     table,
		completed: completed,
		current:   current,
		state:     StateIdle,
	}
}

// Navigate attempts to move to target. A warning replaces any earlier
// pending destination.
func (n *Navigator) Navigate(target int) State {
	n.mu.Lock()
	defer n.mu.Unlock()

	// Каждая попытка навигации начинается с Idle
	n.state = StateIdle
	n.pending = 0

	if n.table.ShouldWarn(n.current, target, n.completed) {
		n.state = StateWarning
		n.pending = target
		return StateWarning
	}

	n.current = target
	return StateProceeding
}

// Proceed performs the suspended navigation and returns its destination.
func (n *Navigator) Proceed() (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state != StateWarning {
		return 0, ErrNoPendingNavigation
	}

	target := n.pending
	n.current = target
	n.pending = 0
	n.state = StateIdle
	return target, nil
}

// Cancel discards the suspended navigation.
func (n *Navigator) Cancel() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state != StateWarning {
		return ErrNoPendingNavigation
	}

	n.pending = 0
	n.state = StateIdle
	return nil
}

// State returns the current state
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Current returns the chapter the learner is on
func (n *Navigator) Current() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Pending returns the suspended destination, if any
func (n *Navigator) Pending() (int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending, n.state == StateWarning
}

// Warning describes what a learner would skip by proceeding
type Warning struct {
	MissingSteps    []string
	SkippedChapters []int
	Target          int
}

// Warning returns details for the pending destination.
func (n *Navigator) Warning() (Warning, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state != StateWarning {
		return Warning{}, false
	}
	return Warning{
		Target:          n.pending,
		MissingSteps:    n.table.MissingPrerequisites(n.pending, n.completed),
		SkippedChapters: n.table.SkippedChapters(n.pending, n.completed),
	}, true
}
