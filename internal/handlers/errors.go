package handlers

import (
	"errors"
	"net/http"

	"github.com/dverdugo/message-app/internal/service"
)

// statusFor maps service errors onto HTTP statuses. Anything unmapped is
// an internal failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrChatNotFound),
		errors.Is(err, service.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrLastAdmin):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
