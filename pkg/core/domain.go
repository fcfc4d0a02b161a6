// Package core holds the storage-agnostic content model.
package core

import (
	"fmt"
	"time"
)

// Metadata represents the flexible key-value pairs parsed from a frontmatter block.
type Metadata map[string]any

// Document is the raw form of one content file.
// It is identified by an ID derived from its location, never from the file itself.
type Document struct {
	ID          string
	Content     string
	Metadata    Metadata
	Fingerprint string
	ModTime     time.Time
}

// EventType represents the type of change observed in a content tree.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in a content tree.
type Event struct {
	Type       EventType
	ID         string
	Collection string // e.g. "blog" or "portfolio"; empty when emitted by a bare repository
	Timestamp  int64  // Unix timestamp
}

func (e Event) String() string {
	if e.Collection == "" {
		return fmt.Sprintf("%s %s", e.Type, e.ID)
	}
	return fmt.Sprintf("%s %s:%s", e.Type, e.Collection, e.ID)
}
