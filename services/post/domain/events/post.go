// Package events defines the change notifications published when posts are
// mutated. Events are ephemeral: they exist only in transit through the bus
// and are never persisted.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Bus topics, one per change kind.
const (
	TopicPostCreated = "post.created"
	TopicPostUpdated = "post.updated"
	TopicPostDeleted = "post.deleted"
)

// Topics lists every post change topic, in the order sessions subscribe.
var Topics = []string{TopicPostCreated, TopicPostUpdated, TopicPostDeleted}

// Kind discriminates change events on the wire.
type Kind string

const (
	KindCreated Kind = "created"
	KindUpdated Kind = "updated"
	KindDeleted Kind = "deleted"
)

// Topic returns the bus topic matching the kind.
func (k Kind) Topic() string {
	switch k {
	case KindCreated:
		return TopicPostCreated
	case KindUpdated:
		return TopicPostUpdated
	default:
		return TopicPostDeleted
	}
}

// ChangeEvent is published after a successful post mutation and forwarded
// verbatim to streaming sessions. Title is carried for created/updated only;
// deleted events identify the post by id alone.
type ChangeEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Kind       Kind      `json:"kind"`
	PostID     uuid.UUID `json:"post_id"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewChangeEvent builds a ChangeEvent with a fresh id and timestamp.
func NewChangeEvent(kind Kind, postID uuid.UUID, title string) ChangeEvent {
	return ChangeEvent{
		EventID:    uuid.New(),
		Kind:       kind,
		PostID:     postID,
		Title:      title,
		OccurredAt: time.Now().UTC(),
	}
}
