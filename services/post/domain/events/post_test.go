package events_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/pressroom/services/post/domain/events"
)

func TestTopics_Values(t *testing.T) {
	if events.TopicPostCreated != "post.created" {
		t.Errorf("TopicPostCreated: got %q", events.TopicPostCreated)
	}
	if events.TopicPostUpdated != "post.updated" {
		t.Errorf("TopicPostUpdated: got %q", events.TopicPostUpdated)
	}
	if events.TopicPostDeleted != "post.deleted" {
		t.Errorf("TopicPostDeleted: got %q", events.TopicPostDeleted)
	}
	if len(events.Topics) != 3 {
		t.Errorf("Topics: got %d entries", len(events.Topics))
	}
}

func TestKindTopic(t *testing.T) {
	cases := map[events.Kind]string{
		events.KindCreated: events.TopicPostCreated,
		events.KindUpdated: events.TopicPostUpdated,
		events.KindDeleted: events.TopicPostDeleted,
	}
	for kind, want := range cases {
		if got := kind.Topic(); got != want {
			t.Errorf("%s.Topic(): got %q, want %q", kind, got, want)
		}
	}
}

func TestChangeEvent_DeletedOmitsTitle(t *testing.T) {
	evt := events.NewChangeEvent(events.KindDeleted, uuid.New(), "")

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["title"]; ok {
		t.Errorf("deleted event must omit title: %s", data)
	}
	if raw["kind"] != "deleted" {
		t.Errorf("kind: got %v", raw["kind"])
	}
}

func TestChangeEvent_CreatedCarriesTitle(t *testing.T) {
	id := uuid.New()
	evt := events.NewChangeEvent(events.KindCreated, id, "Hello")

	if evt.EventID == uuid.Nil {
		t.Error("expected generated event id")
	}
	if evt.OccurredAt.IsZero() {
		t.Error("expected OccurredAt to be set")
	}

	data, _ := json.Marshal(evt)
	var decoded events.ChangeEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.PostID != id || decoded.Title != "Hello" || decoded.Kind != events.KindCreated {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}
