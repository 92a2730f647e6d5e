// Package submission governs the film submission lifecycle:
// submitted -> in_review -> completed, plus evaluator assignment.
//
// The transitions here are pure mutations of the in-memory entity.
// Stores are responsible for applying them atomically; see the
// repository package for the conditional-update variants.
package submission

import (
	"time"

	"github.com/reelscore/reelscore/internal/domain/model"
)

// History actions recorded on transitions.
const (
	ActionAssigned      = "assigned"
	ActionStatusChanged = "status_changed"
)

// ClaimOutcome reports what Claim changed.
type ClaimOutcome struct {
	// NewlyAssigned is true when the claim set the evaluator for the
	// first time (auto-claim-on-first-touch).
	NewlyAssigned bool
	// Advanced is true when status moved from submitted to in_review.
	Advanced bool
}

// Claim assigns the submission to the evaluator and, for evaluator
// actors, advances submitted -> in_review. Admins may always act
// regardless of assignment, but admin action alone does not signal that
// review has begun.
func Claim(sub *model.FilmSubmission, evaluatorID string, role model.Role, now time.Time) (ClaimOutcome, error) {
	var out ClaimOutcome

	if sub.AssignedEvaluatorID != "" && sub.AssignedEvaluatorID != evaluatorID && role != model.RoleAdmin {
		return out, ErrAlreadyAssigned
	}

	if sub.AssignedEvaluatorID == "" {
		sub.AssignedEvaluatorID = evaluatorID
		at := now
		sub.AssignedAt = &at
		sub.History = append(sub.History, model.HistoryEntry{
			Action:   ActionAssigned,
			ByUserID: evaluatorID,
			At:       now,
		})
		out.NewlyAssigned = true
	}

	if sub.Status == model.StatusSubmitted && role == model.RoleEvaluator {
		sub.History = append(sub.History, model.HistoryEntry{
			Action:     ActionStatusChanged,
			FromStatus: sub.Status,
			ToStatus:   model.StatusInReview,
			ByUserID:   evaluatorID,
			At:         now,
		})
		sub.Status = model.StatusInReview
		out.Advanced = true
	}

	return out, nil
}

// Complete advances the submission to its terminal state. The caller
// must have verified that no evaluation report exists yet; completion
// and report creation are one unit of work at the orchestrator level.
func Complete(sub *model.FilmSubmission, evaluatorID string, now time.Time) error {
	if sub.Status == model.StatusCompleted {
		return ErrAlreadyCompleted
	}

	sub.History = append(sub.History, model.HistoryEntry{
		Action:     ActionStatusChanged,
		FromStatus: sub.Status,
		ToStatus:   model.StatusCompleted,
		ByUserID:   evaluatorID,
		At:         now,
	})
	sub.Status = model.StatusCompleted
	return nil
}
