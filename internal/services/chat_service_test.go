package services

import (
	"fmt"
	"testing"

	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newChatService(db *gorm.DB) *ChatService {
	return NewChatService(
		repository.NewChatRepository(db),
		repository.NewUserRepository(db),
		repository.NewNotificationRepository(db),
	)
}

func TestCreateChannelAddsCreator(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	user := createTestUser(t, db, org.ID, models.RoleEmployee)
	svc := newChatService(db)

	channel, err := svc.CreateChannel(CreateChannelInput{
		OrganizationID: org.ID,
		Name:           "general",
		CreatorID:      user.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.ChannelTypePublic, channel.Type)

	channels, err := svc.ListChannels(user.ID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
}

func TestPostMessageRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	member := createTestUser(t, db, org.ID, models.RoleEmployee)
	stranger := createTestUser(t, db, org.ID, models.RoleEmployee)
	svc := newChatService(db)

	channel, err := svc.CreateChannel(CreateChannelInput{
		OrganizationID: org.ID,
		Name:           "private-stuff",
		Type:           models.ChannelTypePrivate,
		CreatorID:      member.ID,
	})
	require.NoError(t, err)

	_, err = svc.PostMessage(PostMessageInput{
		ChannelID: channel.ID,
		SenderID:  stranger.ID,
		Content:   "let me in",
	})
	require.ErrorIs(t, err, ErrNotChannelMember)

	msg, err := svc.PostMessage(PostMessageInput{
		ChannelID: channel.ID,
		SenderID:  member.ID,
		Content:   "hello",
	})
	require.NoError(t, err)
	require.NotEmpty(t, msg.Cursor)
}

func TestAddMemberGates(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	otherOrg := &models.Organization{Name: "Rival", Slug: "rival"}
	require.NoError(t, db.Create(otherOrg).Error)

	creator := createTestUser(t, db, org.ID, models.RoleEmployee)
	colleague := createTestUser(t, db, org.ID, models.RoleEmployee)
	outsider := createTestUser(t, db, otherOrg.ID, models.RoleEmployee)
	svc := newChatService(db)

	channel, err := svc.CreateChannel(CreateChannelInput{
		OrganizationID: org.ID,
		Name:           "team",
		CreatorID:      creator.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.AddMember(channel.ID, creator.ID, colleague.ID))
	require.ErrorIs(t, svc.AddMember(channel.ID, creator.ID, colleague.ID), ErrAlreadyMember)
	require.ErrorIs(t, svc.AddMember(channel.ID, creator.ID, outsider.ID), ErrMemberNotInOrg)

	// Non-members cannot invite.
	other := createTestUser(t, db, org.ID, models.RoleEmployee)
	require.ErrorIs(t, svc.AddMember(channel.ID, other.ID, other.ID), ErrNotChannelMember)
}

func TestMentionsNotifyMembers(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	sender := createTestUser(t, db, org.ID, models.RoleEmployee)
	mentioned := createTestUser(t, db, org.ID, models.RoleEmployee)
	nonMember := createTestUser(t, db, org.ID, models.RoleEmployee)
	svc := newChatService(db)

	channel, err := svc.CreateChannel(CreateChannelInput{
		OrganizationID: org.ID,
		Name:           "general",
		CreatorID:      sender.ID,
	})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(channel.ID, sender.ID, mentioned.ID))

	content := fmt.Sprintf("ping @%d and @%d and @%d", mentioned.ID, nonMember.ID, sender.ID)
	_, err = svc.PostMessage(PostMessageInput{
		ChannelID: channel.ID,
		SenderID:  sender.ID,
		Content:   content,
	})
	require.NoError(t, err)

	// Only the mentioned channel member is notified; the sender and the
	// non-member are skipped.
	var notifications []models.Notification
	require.NoError(t, db.Where("type = ?", models.NotificationMention).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	require.Equal(t, mentioned.ID, notifications[0].UserID)
}

func TestListMessagesPagination(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	user := createTestUser(t, db, org.ID, models.RoleEmployee)
	svc := newChatService(db)

	channel, err := svc.CreateChannel(CreateChannelInput{
		OrganizationID: org.ID,
		Name:           "history",
		CreatorID:      user.ID,
	})
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		_, err := svc.PostMessage(PostMessageInput{
			ChannelID: channel.ID,
			SenderID:  user.ID,
			Content:   fmt.Sprintf("message %d", i),
		})
		require.NoError(t, err)
	}

	// First page: newest first.
	page, err := svc.ListMessages(ListMessagesInput{
		ChannelID: channel.ID,
		UserID:    user.ID,
		Limit:     2,
	})
	require.NoError(t, err)
	require.Len(t, page.Messages, 2)
	require.Equal(t, "message 5", page.Messages[0].Content)
	require.Equal(t, "message 4", page.Messages[1].Content)
	require.NotEmpty(t, page.NextCursor)

	// Second page resumes after the cursor.
	page, err = svc.ListMessages(ListMessagesInput{
		ChannelID: channel.ID,
		UserID:    user.ID,
		Cursor:    page.NextCursor,
		Limit:     2,
	})
	require.NoError(t, err)
	require.Len(t, page.Messages, 2)
	require.Equal(t, "message 3", page.Messages[0].Content)
	require.Equal(t, "message 2", page.Messages[1].Content)

	// Final page has no next cursor.
	page, err = svc.ListMessages(ListMessagesInput{
		ChannelID: channel.ID,
		UserID:    user.ID,
		Cursor:    page.NextCursor,
		Limit:     2,
	})
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	require.Equal(t, "message 1", page.Messages[0].Content)
	require.Empty(t, page.NextCursor)

	// Non-members cannot read history.
	stranger := createTestUser(t, db, org.ID, models.RoleEmployee)
	_, err = svc.ListMessages(ListMessagesInput{
		ChannelID: channel.ID,
		UserID:    stranger.ID,
	})
	require.ErrorIs(t, err, ErrNotChannelMember)
}
