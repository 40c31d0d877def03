package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/octavertex/workhub/internal/dto"
	apierrors "github.com/octavertex/workhub/internal/errors"
	"github.com/octavertex/workhub/internal/middleware"
	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/services"
)

// ChatHandler coordinates channel and message HTTP handlers.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func channelIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid channel ID")
		return 0, false
	}
	return id, true
}

// CreateChannel creates a channel with the caller as its first member.
func (h *ChatHandler) CreateChannel(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	orgID, ok := middleware.GetOrgID(c)
	if !ok {
		apierrors.Forbidden(c, "No organization")
		return
	}

	type CreateChannelRequest struct {
		Name        string             `json:"name" binding:"required,max=255"`
		Description string             `json:"description"`
		Type        models.ChannelType `json:"type"`
	}

	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	channel, err := h.chatService.CreateChannel(services.CreateChannelInput{
		OrganizationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
		Type:           req.Type,
		CreatorID:      userID,
	})
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChannelDTO(*channel))
}

// ListChannels lists the caller's channels.
func (h *ChatHandler) ListChannels(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	channels, err := h.chatService.ListChannels(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"channels": dto.ToChannelDTOs(channels)})
}

// AddMember adds a user to a channel.
func (h *ChatHandler) AddMember(c *gin.Context) {
	channelID, ok := channelIDParam(c)
	if !ok {
		return
	}

	actorID, _ := middleware.GetUserID(c)

	type AddMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.chatService.AddMember(channelID, actorID, req.UserID); err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member added"})
}

// PostMessage appends a message to a channel.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	channelID, ok := channelIDParam(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	type PostMessageRequest struct {
		Content  string  `json:"content" binding:"required"`
		ParentID *uint64 `json:"parent_id"`
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	msg, err := h.chatService.PostMessage(services.PostMessageInput{
		ChannelID: channelID,
		SenderID:  userID,
		Content:   req.Content,
		ParentID:  req.ParentID,
	})
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChatMessageDTO(*msg))
}

// ListMessages returns one page of channel history, newest first.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	channelID, ok := channelIDParam(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	page, err := h.chatService.ListMessages(services.ListMessagesInput{
		ChannelID: channelID,
		UserID:    userID,
		Cursor:    c.Query("cursor"),
		Limit:     limit,
	})
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessagePageResponse(page.Messages, page.NextCursor))
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChannelNameMissing),
		errors.Is(err, services.ErrMessageEmpty),
		errors.Is(err, services.ErrInvalidChannelType):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotChannelMember),
		errors.Is(err, services.ErrMemberNotInOrg):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrChannelNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
