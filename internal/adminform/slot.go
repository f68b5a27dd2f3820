package adminform

import (
	"fmt"
	"sync"
)

// SlotState tracks the lifecycle of one image slot on an admin form.
type SlotState int

const (
	// SlotEmpty has no image and accepts an upload.
	SlotEmpty SlotState = iota
	// SlotUploading has an upload in flight.
	SlotUploading
	// SlotPresent holds a stored image URL.
	SlotPresent
	// SlotDeleting has a delete in flight.
	SlotDeleting
)

// String implements fmt.Stringer.
func (s SlotState) String() string {
	switch s {
	case SlotEmpty:
		return "empty"
	case SlotUploading:
		return "uploading"
	case SlotPresent:
		return "present"
	case SlotDeleting:
		return "deleting"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Slot is one image position on a form.
type Slot struct {
	State SlotState
	URL   string
}

// SlotSet manages a dynamic list of image slots. Every transition is scoped
// to a single slot, so concurrent uploads into different slots never
// interfere. A set always holds at least one slot.
type SlotSet struct {
	mu    sync.Mutex
	slots []Slot
}

// NewSlotSet builds a set with one present slot per existing URL. With no
// URLs the set starts with a single empty slot.
func NewSlotSet(urls []string) *SlotSet {
	set := &SlotSet{}
	for _, url := range urls {
		set.slots = append(set.slots, Slot{State: SlotPresent, URL: url})
	}
	if len(set.slots) == 0 {
		set.slots = append(set.slots, Slot{State: SlotEmpty})
	}
	return set
}

// Add appends an empty slot and returns its index.
func (s *SlotSet) Add() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = append(s.slots, Slot{State: SlotEmpty})
	return len(s.slots) - 1
}

// Len returns the number of slots.
func (s *SlotSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// Get returns a copy of the slot at index.
func (s *SlotSet) Get(index int) (Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.slots) {
		return Slot{}, fmt.Errorf("slot %d out of range", index)
	}
	return s.slots[index], nil
}

// BeginUpload moves an empty slot to uploading.
func (s *SlotSet) BeginUpload(index int) error {
	return s.transition(index, SlotEmpty, SlotUploading, "")
}

// CompleteUpload moves an uploading slot to present with the stored URL.
func (s *SlotSet) CompleteUpload(index int, url string) error {
	return s.transition(index, SlotUploading, SlotPresent, url)
}

// FailUpload returns an uploading slot to empty.
func (s *SlotSet) FailUpload(index int) error {
	return s.transition(index, SlotUploading, SlotEmpty, "")
}

// BeginDelete moves a present slot to deleting.
func (s *SlotSet) BeginDelete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.slots) {
		return fmt.Errorf("slot %d out of range", index)
	}
	slot := &s.slots[index]
	if slot.State != SlotPresent {
		return fmt.Errorf("slot %d is %s, expected present", index, slot.State)
	}
	slot.State = SlotDeleting
	return nil
}

// CompleteDelete clears a deleting slot back to empty.
func (s *SlotSet) CompleteDelete(index int) error {
	return s.transition(index, SlotDeleting, SlotEmpty, "")
}

// FailDelete restores a deleting slot to present, keeping its URL.
func (s *SlotSet) FailDelete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.slots) {
		return fmt.Errorf("slot %d out of range", index)
	}
	slot := &s.slots[index]
	if slot.State != SlotDeleting {
		return fmt.Errorf("slot %d is %s, expected deleting", index, slot.State)
	}
	slot.State = SlotPresent
	return nil
}

// URLs returns the URLs of every present slot in order.
func (s *SlotSet) URLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	urls := make([]string, 0, len(s.slots))
	for _, slot := range s.slots {
		if slot.State == SlotPresent {
			urls = append(urls, slot.URL)
		}
	}
	return urls
}

// Busy reports whether any slot has an upload or delete in flight.
func (s *SlotSet) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		if slot.State == SlotUploading || slot.State == SlotDeleting {
			return true
		}
	}
	return false
}

func (s *SlotSet) transition(index int, from, to SlotState, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.slots) {
		return fmt.Errorf("slot %d out of range", index)
	}
	slot := &s.slots[index]
	if slot.State != from {
		return fmt.Errorf("slot %d is %s, expected %s", index, slot.State, from)
	}
	slot.State = to
	slot.URL = url
	return nil
}
