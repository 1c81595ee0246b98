// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package view models the search, detail and export screens as small
// state machines: Idle -> Loading -> {Loaded, Failed}. A view that is
// Loading refuses a second trigger, so at most one request per view is
// ever in flight.
package view

import (
	"errors"
	"fmt"
	"sync"
)

// State is the loading state of a view.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CanTransition reports whether moving from s to next is allowed.
func (s State) CanTransition(next State) bool {
	switch next {
	case Loading:
		return s == Idle || s == Loaded || s == Failed
	case Loaded, Failed:
		return s == Loading
	default:
		return false
	}
}

var (
	// ErrBusy is returned when a view is triggered while already Loading.
	ErrBusy = errors.New("request already in progress")

	// ErrNoNextPage and ErrNoPrevPage guard pagination at the ends.
	ErrNoNextPage = errors.New("already on the last page")
	ErrNoPrevPage = errors.New("already on the first page")
)

// machine holds the state shared by every view. The lock guards state
// changes only; it is never held across a network call.
type machine struct {
	mu    sync.Mutex
	state State
	err   error
}

// begin moves to Loading or returns ErrBusy.
func (m *machine) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.CanTransition(Loading) {
		return ErrBusy
	}
	m.state = Loading
	m.err = nil
	return nil
}

// finish moves to Loaded or Failed and runs apply under the lock so the
// view's data and state change together.
func (m *machine) finish(err error, apply func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if apply != nil {
		apply()
	}
	if err != nil {
		m.state = Failed
		m.err = err
		return
	}
	m.state = Loaded
}

// State returns the current state.
func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the error of the last failed load, nil otherwise.
func (m *machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
