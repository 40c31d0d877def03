package services

import (
	"testing"
	"time"

	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAuditTrail(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	actor := createTestUser(t, db, org.ID, models.RoleHRAdmin)

	auditRepo := repository.NewAuditLogRepository(db)
	svc := NewAuditService(auditRepo)

	first := &models.AuditLog{
		UserID:    actor.ID,
		Action:    "ROLE_CHANGED",
		Entity:    "User",
		EntityID:  "42",
		Changes:   `{"role":{"from":"employee","to":"team_lead"}}`,
		CreatedAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
	second := &models.AuditLog{
		UserID:    actor.ID,
		Action:    "STATUS_CHANGED",
		Entity:    "User",
		EntityID:  "42",
		Changes:   `{"status":{"from":"active","to":"suspended"}}`,
		CreatedAt: time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
	}
	unrelated := &models.AuditLog{
		UserID:   actor.ID,
		Action:   "ROLE_CHANGED",
		Entity:   "User",
		EntityID: "99",
	}
	require.NoError(t, auditRepo.Create(first))
	require.NoError(t, auditRepo.Create(second))
	require.NoError(t, auditRepo.Create(unrelated))

	entries, err := svc.Trail("User", "42")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first, scoped to the requested entity.
	require.Equal(t, "STATUS_CHANGED", entries[0].Action)
	require.Equal(t, "ROLE_CHANGED", entries[1].Action)
}
