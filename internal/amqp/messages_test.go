package amqp

import "testing"

func TestMessageRoundTrip(t *testing.T) {
	msg := NewSyncMessage(42, 3)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	got, err := FromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if got.Kind != KindSync {
		t.Errorf("Kind = %q, want %q", got.Kind, KindSync)
	}
	if got.ID != 42 || got.Version != 3 {
		t.Errorf("ID/Version = %d/%d, want 42/3", got.ID, got.Version)
	}
}

func TestDeleteMessageKind(t *testing.T) {
	msg := NewDeleteMessage(7)
	if msg.Kind != KindDelete {
		t.Errorf("Kind = %q, want %q", msg.Kind, KindDelete)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestFromJSONInvalid(t *testing.T) {
	if _, err := FromJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid payload")
	}
}
