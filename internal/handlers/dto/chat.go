package dto

type CreateChatRequest struct {
	ParticipantIDs []string `json:"participant_ids" binding:"required,min=1"`
	Name           string   `json:"name"`
}

type AddParticipantRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	IsAdmin bool   `json:"is_admin"`
}
