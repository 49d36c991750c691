package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dverdugo/message-app/internal/database"
	"github.com/dverdugo/message-app/internal/models"
)

type ChatService struct {
	db *database.Database
}

func NewChatService(db *database.Database) *ChatService {
	return &ChatService{db: db}
}

// ChatSummary is one row of a user's conversation list.
type ChatSummary struct {
	ChatID        uuid.UUID  `json:"chat_id"`
	Name          string     `json:"name"`
	IsGroup       bool       `json:"is_group"`
	IsAdmin       bool       `json:"is_admin"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastMessage   string     `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_time,omitempty"`
}

// Create builds the participant set from the creator plus participantIDs, verifies
// every id resolves to a user, and persists the chat with one membership
// row per participant, the creator's marked admin. Group chats with no
// explicit name get a generated Chat-<prefix> placeholder; direct chats
// keep an empty stored name and are named per viewer on read.
func (s *ChatService) Create(creatorID uuid.UUID, participantIDs []uuid.UUID, name string) (*models.Chat, error) {
	creator, err := s.db.GetUser(creatorID.String())
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, fmt.Errorf("creator %s: %w", creatorID, ErrUserNotFound)
	}

	ids := []uuid.UUID{creatorID}
	seen := map[uuid.UUID]bool{creatorID: true}
	for _, pid := range participantIDs {
		if seen[pid] {
			continue
		}
		user, err := s.db.GetUser(pid.String())
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("participant %s: %w", pid, ErrUserNotFound)
		}
		seen[pid] = true
		ids = append(ids, pid)
	}

	now := time.Now()
	chat := &models.Chat{
		ID:        uuid.New(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(ids) > 2 && chat.Name == "" {
		chat.Name = "Chat-" + chat.ID.String()[:8]
	}

	members := make([]models.ChatMember, 0, len(ids))
	for _, id := range ids {
		members = append(members, models.ChatMember{
			UserID:  id,
			IsAdmin: id == creatorID,
		})
	}

	if err := s.db.CreateChat(chat, members); err != nil {
		return nil, err
	}
	return s.get(chat.ID)
}

func (s *ChatService) Get(chatID uuid.UUID) (*models.Chat, error) {
	return s.get(chatID)
}

func (s *ChatService) get(chatID uuid.UUID) (*models.Chat, error) {
	chat, err := s.db.GetChat(chatID.String())
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	return chat, nil
}

// DisplayName computes the chat name shown to viewerID. A two-party
// chat with no stored name is named after the other participant, so one
// chat row reads differently per viewer. An explicit name always wins.
func (s *ChatService) DisplayName(chat *models.Chat, viewerID uuid.UUID) string {
	if chat.Name == "" && len(chat.Members) == 2 {
		for _, m := range chat.Members {
			if m.UserID != viewerID {
				return m.User.FullName()
			}
		}
	}
	return chat.Name
}

// AddParticipant is idempotent: adding an existing member leaves the
// row, including its admin flag, untouched.
func (s *ChatService) AddParticipant(chatID, userID uuid.UUID, isAdmin bool) error {
	if _, err := s.get(chatID); err != nil {
		return err
	}
	user, err := s.db.GetUser(userID.String())
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}
	return s.db.AddMember(models.ChatMember{
		ChatID:  chatID,
		UserID:  userID,
		IsAdmin: isAdmin,
	})
}

// RemoveParticipant deletes the membership row, a no-op when the user is
// not a member. Removing the only admin is refused so the admin set
// never goes empty.
func (s *ChatService) RemoveParticipant(chatID, userID uuid.UUID) error {
	if _, err := s.get(chatID); err != nil {
		return err
	}
	member, err := s.db.GetMember(chatID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return nil
	}
	if member.IsAdmin {
		admins, err := s.db.CountAdmins(chatID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	return s.db.RemoveMember(chatID, userID)
}

func (s *ChatService) Deactivate(chatID uuid.UUID) error {
	if _, err := s.get(chatID); err != nil {
		return err
	}
	return s.db.DeactivateChat(chatID.String())
}

// ListUserChats returns the user's conversation list, most recently
// active first, with per-viewer names and last-message previews.
func (s *ChatService) ListUserChats(userID uuid.UUID) ([]ChatSummary, error) {
	user, err := s.db.GetUser(userID.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	chats, err := s.db.GetUserChats(userID.String())
	if err != nil {
		return nil, err
	}

	summaries := make([]ChatSummary, 0, len(chats))
	for i := range chats {
		chat := &chats[i]
		summary := ChatSummary{
			ChatID:    chat.ID,
			Name:      s.DisplayName(chat, userID),
			IsGroup:   chat.IsGroup(),
			UpdatedAt: chat.UpdatedAt,
		}
		for _, m := range chat.Members {
			if m.UserID == userID {
				summary.IsAdmin = m.IsAdmin
				break
			}
		}
		last, err := s.db.GetLastMessage(chat.ID.String())
		if err != nil {
			return nil, err
		}
		if last != nil {
			summary.LastMessage = last.Content
			t := last.Timestamp
			summary.LastMessageAt = &t
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
