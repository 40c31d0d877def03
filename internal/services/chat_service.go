package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/octavertex/workhub/internal/constants"
	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrChannelNotFound    = errors.New("channel not found")
	ErrChannelNameMissing = errors.New("channel name is required")
	ErrNotChannelMember   = errors.New("not a member of this channel")
	ErrAlreadyMember      = errors.New("user is already a member")
	ErrMessageEmpty       = errors.New("message content is required")
	ErrMemberNotInOrg     = errors.New("user does not belong to the channel's organization")
	ErrInvalidChannelType = errors.New("invalid channel type")
)

var mentionPattern = regexp.MustCompile(`@(\d+)`)

// ChatService handles channels and messages. Reading and posting require
// membership; history pages newest-first with an opaque cursor.
type ChatService struct {
	chatRepo         repository.ChatRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

// NewChatService creates a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository, notificationRepo repository.NotificationRepository) *ChatService {
	return &ChatService{
		chatRepo:         chatRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// CreateChannelInput represents input for creating a channel.
type CreateChannelInput struct {
	OrganizationID uint64
	Name           string
	Description    string
	Type           models.ChannelType
	CreatorID      uint64
}

// CreateChannel creates a channel with the creator as its first member.
func (s *ChatService) CreateChannel(input CreateChannelInput) (*models.Channel, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrChannelNameMissing
	}

	channelType := input.Type
	if channelType == "" {
		channelType = models.ChannelTypePublic
	}
	switch channelType {
	case models.ChannelTypePublic, models.ChannelTypePrivate, models.ChannelTypeDirect:
	default:
		return nil, ErrInvalidChannelType
	}

	channel := &models.Channel{
		OrganizationID: input.OrganizationID,
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Type:           channelType,
		CreatedByID:    input.CreatorID,
	}

	if err := s.chatRepo.CreateChannel(channel, input.CreatorID); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}
	return channel, nil
}

// ListChannels lists the channels the user belongs to.
func (s *ChatService) ListChannels(userID uint64) ([]models.Channel, error) {
	channels, err := s.chatRepo.ListChannelsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

// requireMember verifies the channel exists and the user belongs to it.
func (s *ChatService) requireMember(channelID, userID uint64) (*models.Channel, error) {
	channel, err := s.chatRepo.FindChannelByID(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to find channel: %w", err)
	}

	if _, err := s.chatRepo.FindMember(channelID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotChannelMember
		}
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	return channel, nil
}

// AddMember adds a user to a channel. The actor must already be a member, and
// the new member must belong to the channel's organization.
func (s *ChatService) AddMember(channelID, actorID, userID uint64) error {
	channel, err := s.requireMember(channelID, actorID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.OrganizationID == nil || *user.OrganizationID != channel.OrganizationID {
		return ErrMemberNotInOrg
	}

	if _, err := s.chatRepo.FindMember(channelID, userID); err == nil {
		return ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.ChannelMember{
		ChannelID:  channelID,
		UserID:     userID,
		LastReadAt: time.Now(),
		JoinedAt:   time.Now(),
	}
	if err := s.chatRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// PostMessageInput represents a message being posted.
type PostMessageInput struct {
	ChannelID uint64
	SenderID  uint64
	Content   string
	ParentID  *uint64
}

// PostMessage appends a message to the channel. Mentions of the form @<id>
// notify the mentioned members.
func (s *ChatService) PostMessage(input PostMessageInput) (*models.ChatMessage, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrMessageEmpty
	}

	channel, err := s.requireMember(input.ChannelID, input.SenderID)
	if err != nil {
		return nil, err
	}

	mentioned := s.extractMentions(channel.ID, input.Content, input.SenderID)

	msg := &models.ChatMessage{
		Cursor:    uuid.NewString(),
		ChannelID: channel.ID,
		SenderID:  input.SenderID,
		Content:   input.Content,
		ParentID:  input.ParentID,
		Mentions:  joinIDs(mentioned),
	}

	if err := s.chatRepo.CreateMessage(msg); err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}

	if s.notificationRepo != nil && len(mentioned) > 0 {
		notifications := make([]models.Notification, 0, len(mentioned))
		for _, id := range mentioned {
			notifications = append(notifications, models.Notification{
				UserID:  id,
				Type:    models.NotificationMention,
				Title:   "You were mentioned",
				Message: truncate(input.Content, 200),
			})
		}
		_ = s.notificationRepo.CreateBatch(notifications)
	}

	return msg, nil
}

// extractMentions parses @<id> tokens and keeps only channel members other
// than the sender.
func (s *ChatService) extractMentions(channelID uint64, content string, senderID uint64) []uint64 {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	var ids []uint64
	seen := make(map[uint64]struct{})
	for _, m := range matches {
		var id uint64
		if _, err := fmt.Sscanf(m[1], "%d", &id); err != nil {
			continue
		}
		if id == senderID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		if _, err := s.chatRepo.FindMember(channelID, id); err != nil {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// ListMessagesInput represents a page request for channel history.
type ListMessagesInput struct {
	ChannelID uint64
	UserID    uint64
	Cursor    string
	Limit     int
}

// MessagePage is one page of channel history, newest first. NextCursor is
// empty on the last page.
type MessagePage struct {
	Messages   []models.ChatMessage
	NextCursor string
}

// ListMessages returns a page of channel history and advances the reader's
// last-read marker.
func (s *ChatService) ListMessages(input ListMessagesInput) (*MessagePage, error) {
	if _, err := s.requireMember(input.ChannelID, input.UserID); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = constants.DefaultMessagePageSize
	}
	if limit > constants.MaxMessagePageSize {
		limit = constants.MaxMessagePageSize
	}

	// Fetch one extra row to know whether another page exists.
	messages, err := s.chatRepo.ListMessages(input.ChannelID, input.Cursor, limit+1)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid cursor")
		}
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	page := &MessagePage{}
	if len(messages) > limit {
		page.Messages = messages[:limit]
		page.NextCursor = messages[limit-1].Cursor
	} else {
		page.Messages = messages
	}

	_ = s.chatRepo.TouchLastRead(input.ChannelID, input.UserID, time.Now())

	return page, nil
}

// joinIDs serializes mention IDs to a comma-separated string.
func joinIDs(ids []uint64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

// truncate clips a string to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
