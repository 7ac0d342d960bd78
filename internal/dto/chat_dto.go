package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id            uuid.UUID `json:"id"`
	ActiveHandler string    `json:"active_handler"`
}

type SendMessageRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Message       string    `json:"message" validate:"required"`
}

type CitationDTO struct {
	Source  string `json:"source"`
	Locator string `json:"locator,omitempty"`
}

type SendMessageResponseChat struct {
	Id        uuid.UUID     `json:"id"`
	Content   string        `json:"content"`
	Role      string        `json:"role"`
	Origin    string        `json:"origin,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Citations []CitationDTO `json:"citations,omitempty"`
}

type SendMessageResponse struct {
	ChatSessionId uuid.UUID                `json:"chat_session_id"`
	ActiveHandler string                   `json:"active_handler"`
	Sent          *SendMessageResponseChat `json:"sent"`
	Reply         *SendMessageResponseChat `json:"reply"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID     `json:"id"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	Origin    string        `json:"origin,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Citations []CitationDTO `json:"citations,omitempty"`
}

type SessionStateResponse struct {
	Id            uuid.UUID `json:"id"`
	ActiveHandler string    `json:"active_handler"`
	PatientName   string    `json:"patient_name,omitempty"`
}

type ResetSessionResponse struct {
	Id            uuid.UUID `json:"id"`
	ActiveHandler string    `json:"active_handler"`
	Message       string    `json:"message"`
}
