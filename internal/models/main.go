// Package models defines the core data structures for journal entries and profiles.
package models

import (
	"fmt"
	"time"
)

// EntryType classifies a journal entry.
type EntryType string

const (
	// Win marks something that went well.
	Win EntryType = "win"
	// Loss marks something that went badly.
	Loss EntryType = "loss"
	// Ofg marks an opportunity for growth.
	Ofg EntryType = "ofg"
)

// EntryTypes lists every valid entry type in display order.
var EntryTypes = []EntryType{Win, Loss, Ofg}

// ParseEntryType converts a string into an EntryType, rejecting anything
// outside the three known variants.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case Win, Loss, Ofg:
		return EntryType(s), nil
	}
	return "", fmt.Errorf("unknown entry type %q", s)
}

// TypeMeta holds the display metadata for an entry type. It lives in a
// lookup table rather than on the type itself so the data model stays
// free of presentation concerns.
type TypeMeta struct {
	// Icon is the symbol identifier shown next to entries of this type.
	Icon string
	// Color is the accent color identifier.
	Color string
	// Subtitle is the short descriptive line under the type name.
	Subtitle string
}

var typeMeta = map[EntryType]TypeMeta{
	Win:  {Icon: "trophy", Color: "green", Subtitle: "Something that went well"},
	Loss: {Icon: "arrow.down", Color: "red", Subtitle: "Something that went badly"},
	Ofg:  {Icon: "leaf", Color: "orange", Subtitle: "An opportunity for growth"},
}

// MetaFor returns the display metadata for t. The second return value is
// false for unknown types.
func MetaFor(t EntryType) (TypeMeta, bool) {
	m, ok := typeMeta[t]
	return m, ok
}

// JournalEntry is one journaled note. Entries are immutable once created:
// the engine appends and deletes by id, it never edits in place.
type JournalEntry struct {
	// ID is the unique identifier for the entry, generated at creation
	// and never reused.
	ID string `json:"id"`
	// Type is one of Win, Loss or Ofg.
	Type EntryType `json:"type"`
	// Content is the text of the note.
	Content string `json:"content"`
	// Date is the creation timestamp. It is the sort key and the
	// bucketing key for every time-window query.
	Date time.Time `json:"date"`
}

// Profile is a named local identity partitioning entries into an
// isolated bucket.
type Profile struct {
	// ID is the unique identifier for the profile.
	ID string `json:"id"`
	// Name is the display name chosen by the user.
	Name string `json:"name"`
	// Emoji is the avatar shown next to the name.
	Emoji string `json:"emoji"`
	// PIN optionally gates profile activation. It is compared as
	// plaintext and is not a security boundary.
	PIN string `json:"pin,omitempty"`
}

// TypeBreakdown is the per-type slice of the breakdown chart.
type TypeBreakdown struct {
	// Count is the number of entries of this type.
	Count int `json:"count"`
	// Share is Count divided by the total entry count, zero when the
	// collection is empty.
	Share float64 `json:"share"`
}

// DayActivity is the entry count for one calendar day of the weekly chart.
type DayActivity struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}
