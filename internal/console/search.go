package console

import (
	"slices"
	"strconv"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// searchState is a state of the result-set flow that follows a search.
type searchState int

const (
	stateListing searchState = iota
	stateAwaitingAction
	stateAwaitingRow
	stateDone
)

func (s searchState) String() string {
	switch s {
	case stateListing:
		return "listing"
	case stateAwaitingAction:
		return "awaiting-action"
	case stateAwaitingRow:
		return "awaiting-row"
	case stateDone:
		return "done"
	}
	return "unknown"
}

// rowAction is what the user asked to do with a selected row.
type rowAction int

const (
	actionNone rowAction = iota
	actionDelete
	actionView
)

// Messages printed by the flow.
const (
	msgInvalidAction = "Invalid choice, choose a number from 0 to 2"
	msgInvalidInput  = "Invalid input. Please enter a valid contact ID."
	msgUnlistedID    = "Invalid contact ID. Please enter a valid ID."
	msgDeleteCancel  = "Deletion canceled."
	msgViewCancel    = "Viewing canceled."
)

// step is the outcome of feeding one line of input to a searchFlow. The
// controller prints message, if any, and then performs action on id.
type step struct {
	message string
	action  rowAction
	id      int64
}

// searchFlow drives a result set through listing, picking an action and
// picking a row. It performs no I/O; the controller renders and executes.
//
// A repeating flow returns to listing after every row action until the user
// enters 0 or no matches remain. A single-pick flow starts at row selection
// with a fixed action and is done after one answer.
type searchFlow struct {
	state   searchState
	matches []types.Match
	pending rowAction
	single  bool
}

// newSearchFlow starts a repeating flow over matches.
func newSearchFlow(matches []types.Match) *searchFlow {
	return &searchFlow{state: stateListing, matches: slices.Clone(matches)}
}

// newPickFlow starts a single-pick flow that applies action to one row.
func newPickFlow(matches []types.Match, action rowAction) *searchFlow {
	return &searchFlow{state: stateListing, matches: slices.Clone(matches), pending: action, single: true}
}

// listed records that the matches were shown and moves to the next prompt.
func (f *searchFlow) listed() {
	switch {
	case len(f.matches) == 0:
		f.state = stateDone
	case f.single:
		f.state = stateAwaitingRow
	default:
		f.pending = actionNone
		f.state = stateAwaitingAction
	}
}

// prompt returns the text to show while waiting for input.
func (f *searchFlow) prompt() string {
	switch f.state {
	case stateAwaitingAction:
		return "Enter 1. to delete a contact OR 2. to view a contact detail OR 0. to exit: "
	case stateAwaitingRow:
		if f.pending == actionDelete {
			return "Enter ID of contact to delete (0 to cancel): "
		}
		return "Enter ID of contact to view (0 to cancel): "
	}
	return ""
}

// handle applies one line of input. Input in the listing or done state is
// ignored.
func (f *searchFlow) handle(input string) step {
	switch f.state {
	case stateAwaitingAction:
		return f.handleAction(input)
	case stateAwaitingRow:
		return f.handleRow(input)
	}
	return step{}
}

func (f *searchFlow) handleAction(input string) step {
	switch input {
	case "1":
		f.pending = actionDelete
		f.state = stateAwaitingRow
	case "2":
		f.pending = actionView
		f.state = stateAwaitingRow
	case "0":
		f.state = stateDone
	default:
		return step{message: msgInvalidAction}
	}
	return step{}
}

func (f *searchFlow) handleRow(input string) step {
	action := f.pending
	next := stateListing
	back := stateAwaitingAction
	if f.single {
		next, back = stateDone, stateDone
	}

	if !isDigits(input) {
		f.state = back
		return step{message: msgInvalidInput}
	}
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		f.state = back
		return step{message: msgInvalidInput}
	}
	if id == 0 {
		f.state = back
		if action == actionDelete {
			return step{message: msgDeleteCancel}
		}
		return step{message: msgViewCancel}
	}
	if !f.listedID(id) {
		f.state = back
		return step{message: msgUnlistedID}
	}

	f.state = next
	return step{action: action, id: id}
}

// remove drops id from the result set after it was deleted.
func (f *searchFlow) remove(id int64) {
	f.matches = slices.DeleteFunc(f.matches, func(m types.Match) bool { return m.ID == id })
}

func (f *searchFlow) listedID(id int64) bool {
	return slices.ContainsFunc(f.matches, func(m types.Match) bool { return m.ID == id })
}

func (f *searchFlow) done() bool {
	return f.state == stateDone
}

// isDigits reports whether s is non-empty and all ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
