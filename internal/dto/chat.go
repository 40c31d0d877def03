package dto

import (
	"time"

	"github.com/octavertex/workhub/internal/models"
)

// ChannelDTO represents a channel in API responses
type ChannelDTO struct {
	ID          uint64             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        models.ChannelType `json:"type"`
	CreatedByID uint64             `json:"created_by_id"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ChatMessageDTO represents a message in API responses
type ChatMessageDTO struct {
	Cursor    string    `json:"cursor"`
	ChannelID uint64    `json:"channel_id"`
	SenderID  uint64    `json:"sender_id"`
	Content   string    `json:"content"`
	ParentID  *uint64   `json:"parent_id,omitempty"`
	Edited    bool      `json:"edited"`
	CreatedAt time.Time `json:"created_at"`
	Sender    *UserDTO  `json:"sender,omitempty"`
}

// MessagePageResponse is one page of channel history, newest first
type MessagePageResponse struct {
	Messages   []ChatMessageDTO `json:"messages"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// ToChannelDTO converts a channel to DTO
func ToChannelDTO(c models.Channel) ChannelDTO {
	return ChannelDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Type:        c.Type,
		CreatedByID: c.CreatedByID,
		CreatedAt:   c.CreatedAt,
	}
}

// ToChannelDTOs converts channels to DTOs
func ToChannelDTOs(channels []models.Channel) []ChannelDTO {
	dtos := make([]ChannelDTO, len(channels))
	for i, c := range channels {
		dtos[i] = ToChannelDTO(c)
	}
	return dtos
}

// ToChatMessageDTO converts a message to DTO
func ToChatMessageDTO(m models.ChatMessage) ChatMessageDTO {
	d := ChatMessageDTO{
		Cursor:    m.Cursor,
		ChannelID: m.ChannelID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		ParentID:  m.ParentID,
		Edited:    m.Edited,
		CreatedAt: m.CreatedAt,
	}
	if m.Sender.ID != 0 {
		sender := ToUserDTO(m.Sender)
		d.Sender = &sender
	}
	return d
}

// ToMessagePageResponse converts a history page to the response DTO
func ToMessagePageResponse(messages []models.ChatMessage, nextCursor string) MessagePageResponse {
	dtos := make([]ChatMessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = ToChatMessageDTO(m)
	}
	return MessagePageResponse{
		Messages:   dtos,
		NextCursor: nextCursor,
	}
}
