package service

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrChatNotFound    = errors.New("chat not found")
	ErrMessageNotFound = errors.New("message not found")

	ErrInvalidInput  = errors.New("invalid input")
	ErrUsernameTaken = errors.New("username already taken")
	ErrWeakPassword  = errors.New("password does not meet requirements")

	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrNotParticipant = errors.New("user is not a participant of the chat")
	ErrEmptyContent   = errors.New("message content is empty")
	ErrLastAdmin      = errors.New("cannot remove the last admin of a chat")
)
