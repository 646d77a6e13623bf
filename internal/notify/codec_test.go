package notify

import (
	"errors"
	"testing"

	"taskhub/internal/domain/notification"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	entityID := "task-123"
	n := notification.New("user-456", "Task assigned", "You were assigned to a task", &entityID)

	b, err := Encode(n)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	decoded, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	if decoded.ID != n.ID {
		t.Fatalf("expected id %s, got %s", n.ID, decoded.ID)
	}
	if decoded.UserID != n.UserID {
		t.Fatalf("expected userId %s, got %s", n.UserID, decoded.UserID)
	}
	if decoded.Title != n.Title {
		t.Fatalf("expected title %s, got %s", n.Title, decoded.Title)
	}
	if decoded.EntityID == nil || *decoded.EntityID != entityID {
		t.Fatalf("expected entityId %s, got %v", entityID, decoded.EntityID)
	}
	if decoded.Read {
		t.Fatalf("decoded notification should start unread")
	}
}

func TestEncode_MissingIDs(t *testing.T) {
	_, err := Encode(notification.Notification{UserID: "u1"})
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}

	_, err = Encode(notification.Notification{ID: "n1"})
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"not json", []byte("{nope")},
		{"missing ids", []byte(`{"title":"x"}`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.in)
			if !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}
}
