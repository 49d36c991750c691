package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestSendAppendsAndBumpsChat(t *testing.T) {
	d := newTestDB(t)
	users := NewUserService(d)
	chats := NewChatService(d)
	messages := NewMessageService(d)

	ana := registerUser(t, users, "ana", "Ana", "Lopez")
	ben := registerUser(t, users, "ben", "Ben", "Diaz")

	chat, err := chats.Create(ana.ID, []uuid.UUID{ben.ID}, "")
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}

	msg, err := messages.Send(chat.ID, ana.ID, "  hello  ")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Content != "hello" {
		t.Errorf("content = %q, want trimmed %q", msg.Content, "hello")
	}
	if msg.Timestamp.Before(chat.UpdatedAt) {
		t.Error("message timestamp must not precede the chat's updated_at")
	}
	if msg.Sender.Username != "ana" {
		t.Error("sender not hydrated")
	}

	after, err := chats.Get(chat.ID)
	if err != nil {
		t.Fatalf("get chat: %v", err)
	}
	if after.UpdatedAt.Before(msg.Timestamp) {
		t.Error("chat updated_at must advance to the message timestamp")
	}
}

func TestSendTimestampsNeverRegress(t *testing.T) {
	d := newTestDB(t)
	users := NewUserService(d)
	chats := NewChatService(d)
	messages := NewMessageService(d)

	ana := registerUser(t, users, "ana", "Ana", "Lopez")
	ben := registerUser(t, users, "ben", "Ben", "Diaz")

	chat, err := chats.Create(ana.ID, []uuid.UUID{ben.ID}, "")
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}

	sent := make([]uint64, 0, 5)
	for i := 0; i < 5; i++ {
		msg, err := messages.Send(chat.ID, ana.ID, fmt.Sprintf("m%d", i))
		if err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
		sent = append(sent, msg.ID)
	}

	got, err := messages.List(chat.ID, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d messages, want 5", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.Before(got[i-1].Timestamp) {
			t.Fatalf("timestamps regress at %d", i)
		}
	}
	for i, id := range sent {
		if got[i].ID != id {
			t.Fatalf("position %d: got id %d, want send order %d", i, got[i].ID, id)
		}
	}
}

func TestSendRejections(t *testing.T) {
	d := newTestDB(t)
	users := NewUserService(d)
	chats := NewChatService(d)
	messages := NewMessageService(d)

	ana := registerUser(t, users, "ana", "Ana", "Lopez")
	ben := registerUser(t, users, "ben", "Ben", "Diaz")
	eve := registerUser(t, users, "eve", "Eve", "Soto")

	chat, err := chats.Create(ana.ID, []uuid.UUID{ben.ID}, "")
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}

	if _, err := messages.Send(chat.ID, ana.ID, "   "); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("blank content: got %v, want ErrEmptyContent", err)
	}
	if _, err := messages.Send(chat.ID, eve.ID, "hi"); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("outsider: got %v, want ErrNotParticipant", err)
	}
	if _, err := messages.Send(uuid.New(), ana.ID, "hi"); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("unknown chat: got %v, want ErrChatNotFound", err)
	}

	// None of the rejections may leave a row behind.
	n, err := d.CountChatMessages(chat.ID.String())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("ledger has %d messages after rejected sends, want 0", n)
	}
}

func TestListClampsPaging(t *testing.T) {
	d := newTestDB(t)
	users := NewUserService(d)
	chats := NewChatService(d)
	messages := NewMessageService(d)

	ana := registerUser(t, users, "ana", "Ana", "Lopez")
	ben := registerUser(t, users, "ben", "Ben", "Diaz")

	chat, err := chats.Create(ana.ID, []uuid.UUID{ben.ID}, "")
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := messages.Send(chat.ID, ana.ID, fmt.Sprintf("m%d", i)); err != nil {
			t.Fatalf("send: %v", err)
		}
	}

	got, err := messages.List(chat.ID, -5, -10)
	if err != nil {
		t.Fatalf("list with bad paging: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d messages, want 3 (defaults applied)", len(got))
	}

	if _, err := messages.List(uuid.New(), 10, 0); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("unknown chat: got %v, want ErrChatNotFound", err)
	}
}

func TestLastMessage(t *testing.T) {
	d := newTestDB(t)
	users := NewUserService(d)
	chats := NewChatService(d)
	messages := NewMessageService(d)

	ana := registerUser(t, users, "ana", "Ana", "Lopez")
	ben := registerUser(t, users, "ben", "Ben", "Diaz")

	chat, err := chats.Create(ana.ID, []uuid.UUID{ben.ID}, "")
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}

	last, err := messages.Last(chat.ID)
	if err != nil {
		t.Fatalf("last on empty: %v", err)
	}
	if last != nil {
		t.Fatal("want nil for empty ledger")
	}

	if _, err := messages.Send(chat.ID, ana.ID, "old"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := messages.Send(chat.ID, ben.ID, "new"); err != nil {
		t.Fatalf("send: %v", err)
	}

	last, err = messages.Last(chat.ID)
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if last == nil || last.Content != "new" {
		t.Fatalf("got %+v, want the newest message", last)
	}
}

func TestDeleteMessageService(t *testing.T) {
	d := newTestDB(t)
	users := NewUserService(d)
	chats := NewChatService(d)
	messages := NewMessageService(d)

	ana := registerUser(t, users, "ana", "Ana", "Lopez")
	ben := registerUser(t, users, "ben", "Ben", "Diaz")

	chat, err := chats.Create(ana.ID, []uuid.UUID{ben.ID}, "")
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}
	msg, err := messages.Send(chat.ID, ana.ID, "bye")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := messages.Delete(msg.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := messages.Get(msg.ID); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("got %v, want ErrMessageNotFound", err)
	}
	if err := messages.Delete(msg.ID); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("double delete: got %v, want ErrMessageNotFound", err)
	}
}
