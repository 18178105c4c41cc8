package plan

import (
	"fmt"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/apperrors"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
)

// Action is a lifecycle transition request on a weekly plan.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionRevoke  Action = "revoke"
)

// Transition applies a lifecycle action to the plan, checking the actor's
// role before touching any state. Every transition and its authorization
// rule lives here; callers never pre-filter by role.
//
//	draft/rejected/any --submit (rep)-------> pending
//	pending ------------approve (manager|supervisor)--> approved
//	pending ------------reject (manager|supervisor)---> rejected
//	approved -----------revoke (manager only)---------> draft
//
// Submit always stamps pending regardless of prior status: a rejected plan
// is resubmitted this way, and resubmission of a pending plan supersedes any
// review in progress. No version counter is kept; last write wins.
func Transition(p *domain.WeeklyPlan, action Action, actor domain.Role) error {
	switch action {
	case ActionSubmit:
		if actor != domain.RoleRep {
			return fmt.Errorf("%w: only a rep may submit a plan", apperrors.ErrPermissionDenied)
		}

		p.Status = domain.PlanPending

		return nil

	case ActionApprove, ActionReject:
		if actor != domain.RoleManager && actor != domain.RoleSupervisor {
			return fmt.Errorf("%w: only a manager or supervisor may review a plan", apperrors.ErrPermissionDenied)
		}

		if p.Status != domain.PlanPending {
			return &apperrors.InvalidTransitionError{Action: string(action), Status: string(p.Status)}
		}

		if action == ActionApprove {
			p.Status = domain.PlanApproved
		} else {
			p.Status = domain.PlanRejected
		}

		return nil

	case ActionRevoke:
		if actor != domain.RoleManager {
			return fmt.Errorf("%w: only a manager may revoke an approved plan", apperrors.ErrPermissionDenied)
		}

		if p.Status != domain.PlanApproved {
			return &apperrors.InvalidTransitionError{Action: string(action), Status: string(p.Status)}
		}

		p.Status = domain.PlanDraft

		return nil

	default:
		return fmt.Errorf("%w: unknown plan action '%s'", apperrors.ErrInvalidOperation, action)
	}
}
