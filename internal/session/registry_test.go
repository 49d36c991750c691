package session

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dverdugo/message-app/internal/models"
)

func TestRegistryPutGetRemove(t *testing.T) {
	r := NewRegistry()

	user := &models.User{ID: uuid.New(), Username: "ana"}
	if got := r.Get(user.ID); got != nil {
		t.Fatalf("expected nil before login, got %+v", got)
	}

	r.Put(user)
	if got := r.Get(user.ID); got == nil || got.Username != "ana" {
		t.Fatalf("got %+v, want the stored user", got)
	}
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}

	r.Remove(user.ID)
	if got := r.Get(user.ID); got != nil {
		t.Fatalf("expected nil after logout, got %+v", got)
	}

	// Removing again must not panic or error.
	r.Remove(user.ID)
	if r.Len() != 0 {
		t.Fatalf("len = %d, want 0", r.Len())
	}
}

func TestRegistryPutOverwrites(t *testing.T) {
	r := NewRegistry()

	id := uuid.New()
	r.Put(&models.User{ID: id, Username: "ana"})
	r.Put(&models.User{ID: id, Username: "ana", FirstName: "Ana"})

	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}
	if got := r.Get(id); got.FirstName != "Ana" {
		t.Errorf("re-login should refresh the entry, got %+v", got)
	}
}
