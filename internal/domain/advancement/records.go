package advancement

import (
	"time"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/rulebook"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
)

// ApprovalStatus tracks a freebie spend request through storyteller review
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusDenied   ApprovalStatus = "denied"
)

// SpendRecord is an append-only audit entry for an experience spend. It is
// display-only history and never gates future spends.
type SpendRecord struct {
	ID          string            `json:"id"`
	CharacterID string            `json:"character_id"`
	Category    rulebook.Category `json:"category"`
	TraitName   string            `json:"trait_name"`
	NewRating   int               `json:"new_rating"`
	Cost        int               `json:"cost"`
	Note        string            `json:"note,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// FreebieSpendRequest records a freebie spend awaiting storyteller review.
// The trait increase and balance deduction happen optimistically at spend
// time; denial reverses them.
//
// State machine: pending -> approved (terminal) or pending -> denied
// (terminal, triggers reversal). Nothing leaves approved or denied.
type FreebieSpendRequest struct {
	ID          string            `json:"id"`
	CharacterID string            `json:"character_id"`
	ChronicleID string            `json:"chronicle_id"`
	Category    rulebook.Category `json:"category"`
	TraitName   string            `json:"trait_name"`
	NewRating   int               `json:"new_rating"`
	// Step is the rating change the spend applied; denial reverses
	// exactly this step.
	Step       int            `json:"step"`
	Cost       int            `json:"cost"`
	Note       string         `json:"note,omitempty"`
	Status     ApprovalStatus `json:"status"`
	ApproverID string         `json:"approver_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	ResolvedAt *time.Time     `json:"resolved_at,omitempty"`
}

// IsPending reports whether the request still awaits review
func (r *FreebieSpendRequest) IsPending() bool {
	return r.Status == ApprovalStatusPending
}

// Approve marks a pending request approved. Ratings are untouched; they
// were applied at spend time.
func (r *FreebieSpendRequest) Approve(approverID string, now time.Time) error {
	if !r.IsPending() {
		return apperr.Conflictf("freebie request '%s' is already %s", r.ID, r.Status)
	}
	r.Status = ApprovalStatusApproved
	r.ApproverID = approverID
	r.ResolvedAt = &now
	return nil
}

// Deny marks a pending request denied. The caller must reverse the trait
// step and refund the cost in the same transaction.
func (r *FreebieSpendRequest) Deny(approverID string, now time.Time) error {
	if !r.IsPending() {
		return apperr.Conflictf("freebie request '%s' is already %s", r.ID, r.Status)
	}
	r.Status = ApprovalStatusDenied
	r.ApproverID = approverID
	r.ResolvedAt = &now
	return nil
}
