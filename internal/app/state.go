// Package app provides application lifecycle management, selection state, and events.
package app

import (
	"sync"

	"hsv-colortest/pkg/colorutil"
)

// Slider limits for the three selection channels.
const (
	MaxHue        = colorutil.HueSteps - 1
	MaxSaturation = 255
	MaxValue      = 255
)

// DefaultSelection is pure red at full saturation and value.
var DefaultSelection = colorutil.HSV8{H: 0, S: 255, V: 255}

// State holds the current HSV selection and the candidate converter name.
type State struct {
	mu sync.RWMutex

	selection colorutil.HSV8
	candidate string

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventSelectionChanged EventType = iota
	EventCandidateChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with the default selection.
func NewState(candidate string) *State {
	return &State{
		selection: DefaultSelection,
		candidate: candidate,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Selection returns the current HSV selection.
func (s *State) Selection() colorutil.HSV8 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// Set replaces the selection. Out-of-range channels are clamped to the
// slider limits. EventSelectionChanged fires only when the value changes.
func (s *State) Set(h, sat, v int) {
	next := colorutil.HSV8{
		H: clamp(h, MaxHue),
		S: clamp(sat, MaxSaturation),
		V: clamp(v, MaxValue),
	}

	s.mu.Lock()
	changed := next != s.selection
	s.selection = next
	s.mu.Unlock()

	if changed {
		s.Emit(EventSelectionChanged, next)
	}
}

// SetHue updates only the hue.
func (s *State) SetHue(h int) {
	cur := s.Selection()
	s.Set(h, int(cur.S), int(cur.V))
}

// SetSaturation updates only the saturation.
func (s *State) SetSaturation(sat int) {
	cur := s.Selection()
	s.Set(int(cur.H), sat, int(cur.V))
}

// SetValue updates only the value.
func (s *State) SetValue(v int) {
	cur := s.Selection()
	s.Set(int(cur.H), int(cur.S), v)
}

// Candidate returns the name of the converter compared against OpenCV.
func (s *State) Candidate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.candidate
}

// SetCandidate changes the compared converter and emits EventCandidateChanged.
func (s *State) SetCandidate(name string) {
	s.mu.Lock()
	changed := name != s.candidate
	s.candidate = name
	s.mu.Unlock()

	if changed {
		s.Emit(EventCandidateChanged, name)
	}
}

func clamp(x, hi int) uint8 {
	if x < 0 {
		return 0
	}
	if x > hi {
		return uint8(hi)
	}
	return uint8(x)
}
