package models

import (
	"time"

	"gorm.io/gorm"
)

type ChannelType string

const (
	ChannelTypePublic  ChannelType = "public"
	ChannelTypePrivate ChannelType = "private"
	ChannelTypeDirect  ChannelType = "direct"
)

type Channel struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	Name           string         `gorm:"type:varchar(255)" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Type           ChannelType    `gorm:"type:varchar(20);not null;default:'public'" json:"type"`
	CreatedByID    uint64         `gorm:"not null" json:"created_by_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization    `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Members      []ChannelMember `gorm:"foreignKey:ChannelID" json:"members,omitempty"`
}

type ChannelMember struct {
	ChannelID  uint64    `gorm:"primarykey" json:"channel_id"`
	UserID     uint64    `gorm:"primarykey" json:"user_id"`
	LastReadAt time.Time `json:"last_read_at"`
	Muted      bool      `gorm:"not null;default:false" json:"muted"`
	JoinedAt   time.Time `json:"joined_at"`

	// Relations
	Channel Channel `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// ChatMessage rows are paginated by Cursor, an opaque per-message id kept
// separate from the numeric primary key.
type ChatMessage struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Cursor    string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"cursor"`
	ChannelID uint64         `gorm:"not null;index" json:"channel_id"`
	SenderID  uint64         `gorm:"not null" json:"sender_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	ParentID  *uint64        `gorm:"index" json:"parent_id"`
	Mentions  string         `gorm:"type:text" json:"-"`
	Edited    bool           `gorm:"not null;default:false" json:"edited"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Channel Channel      `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	Sender  User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Parent  *ChatMessage `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
}
