package repository

import (
	"time"

	"github.com/octavertex/workhub/internal/models"
	"gorm.io/gorm"
)

// GormChatRepository is a GORM implementation of ChatRepository
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

// CreateChannel creates a channel and adds the creator as its first member
func (r *GormChatRepository) CreateChannel(channel *models.Channel, creatorID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(channel).Error; err != nil {
			return err
		}
		member := models.ChannelMember{
			ChannelID:  channel.ID,
			UserID:     creatorID,
			LastReadAt: time.Now(),
			JoinedAt:   time.Now(),
		}
		return tx.Create(&member).Error
	})
}

// FindChannelByID finds a channel by ID
func (r *GormChatRepository) FindChannelByID(id uint64) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.First(&channel, id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

// ListChannelsByUser lists the channels the user belongs to
func (r *GormChatRepository) ListChannelsByUser(userID uint64) ([]models.Channel, error) {
	var channels []models.Channel
	err := r.db.
		Joins("JOIN channel_members ON channel_members.channel_id = channels.id").
		Where("channel_members.user_id = ?", userID).
		Order("channels.created_at ASC").
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// AddMember adds a member to a channel
func (r *GormChatRepository) AddMember(member *models.ChannelMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a channel membership
func (r *GormChatRepository) FindMember(channelID, userID uint64) (*models.ChannelMember, error) {
	var member models.ChannelMember
	if err := r.db.Where("channel_id = ? AND user_id = ?", channelID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// TouchLastRead advances the member's last-read marker
func (r *GormChatRepository) TouchLastRead(channelID, userID uint64, at time.Time) error {
	return r.db.Model(&models.ChannelMember{}).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Update("last_read_at", at).Error
}

// CreateMessage creates a message
func (r *GormChatRepository) CreateMessage(msg *models.ChatMessage) error {
	return r.db.Create(msg).Error
}

// ListMessages pages newest-first from the message identified by cursor
// (exclusive), or from the head when cursor is empty.
func (r *GormChatRepository) ListMessages(channelID uint64, cursor string, limit int) ([]models.ChatMessage, error) {
	query := r.db.Where("channel_id = ?", channelID)

	if cursor != "" {
		var anchor models.ChatMessage
		if err := r.db.Where("cursor = ?", cursor).First(&anchor).Error; err != nil {
			return nil, err
		}
		query = query.Where("id < ?", anchor.ID)
	}

	var messages []models.ChatMessage
	err := query.Preload("Sender").
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
