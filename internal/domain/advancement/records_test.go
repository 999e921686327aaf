package advancement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/advancement"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
)

func pendingRequest() *advancement.FreebieSpendRequest {
	return &advancement.FreebieSpendRequest{
		ID:          "req-1",
		CharacterID: "char-1",
		TraitName:   "Strength",
		NewRating:   3,
		Step:        1,
		Cost:        5,
		Status:      advancement.ApprovalStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestFreebieRequest_Approve(t *testing.T) {
	req := pendingRequest()
	now := time.Now().UTC()

	require.NoError(t, req.Approve("storyteller-1", now))
	assert.Equal(t, advancement.ApprovalStatusApproved, req.Status)
	assert.Equal(t, "storyteller-1", req.ApproverID)
	require.NotNil(t, req.ResolvedAt)
	assert.Equal(t, now, *req.ResolvedAt)
	assert.False(t, req.IsPending())
}

func TestFreebieRequest_Deny(t *testing.T) {
	req := pendingRequest()

	require.NoError(t, req.Deny("storyteller-1", time.Now().UTC()))
	assert.Equal(t, advancement.ApprovalStatusDenied, req.Status)
}

func TestFreebieRequest_TerminalStatesAreFinal(t *testing.T) {
	now := time.Now().UTC()

	approved := pendingRequest()
	require.NoError(t, approved.Approve("st", now))

	err := approved.Deny("st", now)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, advancement.ApprovalStatusApproved, approved.Status)

	err = approved.Approve("st", now)
	require.Error(t, err)

	denied := pendingRequest()
	require.NoError(t, denied.Deny("st", now))
	assert.Error(t, denied.Approve("st", now))
	assert.Error(t, denied.Deny("st", now))
}
