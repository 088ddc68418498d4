package workflow

import (
	"fmt"
	"strings"
	"time"

	"fieldreport/internal/model"
)

// Action names a lifecycle transition request.
type Action string

const (
	ActionSaveDraft Action = "SAVE_DRAFT" // replace data, keep DRAFT/RETURNED status
	ActionSubmit    Action = "SUBMIT"     // (re)submit for review
	ActionOpen      Action = "OPEN"       // first-stage reviewer opens the submission
	ActionApprove   Action = "APPROVE"    // approve at the current stage
	ActionReturn    Action = "RETURN"     // send back with a correction note
	ActionForward   Action = "FORWARD"    // push an approved report to the next stage
	ActionCancel    Action = "CANCEL"     // owner withdraws an unseen submission
	ActionOverride  Action = "OVERRIDE"   // IT_SUPPORT unconditional data edit
)

// Params carries the optional inputs a transition may need.
type Params struct {
	Data *model.ReportData // SaveDraft / Submit / Override
	Note string            // Return
}

// Apply validates that actor may perform action on the report in its current
// state, and mutates the report in place to the next state. The report is left
// untouched when an error is returned, so a failed persistence attempt can
// simply re-run the whole action.
func Apply(r *model.Report, actor model.Actor, action Action, p Params) error {
	switch action {
	case ActionSaveDraft:
		return applySaveDraft(r, actor, p)
	case ActionSubmit:
		return applySubmit(r, actor, p)
	case ActionOpen:
		return applyOpen(r, actor)
	case ActionApprove:
		return applyApprove(r, actor)
	case ActionReturn:
		return applyReturn(r, actor, p)
	case ActionForward:
		return applyForward(r, actor)
	case ActionCancel:
		return applyCancel(r, actor)
	case ActionOverride:
		return applyOverride(r, actor, p)
	default:
		return fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	}
}

// CanDelete reports whether actor may delete the report. IT_SUPPORT may always
// delete; an AO may delete only their own drafts.
func CanDelete(r *model.Report, actor model.Actor) bool {
	if actor.Role == model.RoleITSupport {
		return true
	}
	return actor.Role == model.RoleAO && r.AoID == actor.ID && r.Status == model.StatusDraft
}

func isOwner(r *model.Report, actor model.Actor) bool {
	return actor.Role == model.RoleAO && r.AoID == actor.ID
}

// assignedOrInArea is the AK engagement rule: the report is either assigned to
// this AK, or unassigned and routed to their area.
func assignedOrInArea(r *model.Report, actor model.Actor) bool {
	if r.AssignedToID != nil && *r.AssignedToID == actor.ID {
		return true
	}
	return r.AssignedToID == nil && r.AreaCode == actor.AreaCode
}

func applySaveDraft(r *model.Report, actor model.Actor, p Params) error {
	if !isOwner(r, actor) {
		return fmt.Errorf("%w: only the authoring AO may edit this report", ErrForbidden)
	}
	if r.Status != model.StatusDraft && r.Status != model.StatusReturned {
		return fmt.Errorf("%w: report is %s, only drafts and returned reports can be edited", ErrValidation, r.Status)
	}
	if p.Data == nil {
		return fmt.Errorf("%w: report data is required", ErrValidation)
	}
	r.Data = *p.Data
	r.UpdatedAt = time.Now()
	return nil
}

func applySubmit(r *model.Report, actor model.Actor, p Params) error {
	if !isOwner(r, actor) {
		return fmt.Errorf("%w: only the authoring AO may submit this report", ErrForbidden)
	}
	if r.Status != model.StatusDraft && r.Status != model.StatusReturned {
		return fmt.Errorf("%w: report is %s and cannot be resubmitted", ErrValidation, r.Status)
	}
	if p.Data != nil {
		if err := ValidateSubmission(r.ReportType, *p.Data); err != nil {
			return err
		}
		r.Data = *p.Data
	} else if err := ValidateSubmission(r.ReportType, r.Data); err != nil {
		return err
	}
	r.Status = model.StatusSubmitted
	r.IsRevision = true
	r.ViewedByAK = false
	r.UpdatedAt = time.Now()
	return nil
}

// applyOpen marks a submission as seen by its first-stage reviewer. A second
// open is a no-op: the viewed flag is set once and the revision flag is not
// re-toggled.
func applyOpen(r *model.Report, actor model.Actor) error {
	if actor.Role != model.RoleAK {
		return fmt.Errorf("%w: only an AK opens submissions for review", ErrForbidden)
	}
	if !assignedOrInArea(r, actor) {
		return fmt.Errorf("%w: report is not assigned to you or routed to your area", ErrForbidden)
	}
	if r.Status != model.StatusSubmitted || r.CurrentStage != model.StageAK {
		return fmt.Errorf("%w: report is not awaiting first-stage review", ErrValidation)
	}
	if r.ViewedByAK {
		return nil
	}
	r.ViewedByAK = true
	r.IsRevision = false
	r.UpdatedAt = time.Now()
	return nil
}

func applyApprove(r *model.Report, actor model.Actor) error {
	switch actor.Role {
	case model.RoleAK:
		if r.CurrentStage != model.StageAK || r.Status != model.StatusSubmitted {
			return fmt.Errorf("%w: report is not awaiting first-stage review", ErrValidation)
		}
		if !assignedOrInArea(r, actor) {
			return fmt.Errorf("%w: report is not assigned to you or routed to your area", ErrForbidden)
		}
		if !r.ViewedByAK {
			return fmt.Errorf("%w: open the report before approving it", ErrValidation)
		}
	case model.RoleAKP:
		if !r.IsMultiStage() {
			return fmt.Errorf("%w: %s reports finish at the AK stage", ErrValidation, r.ReportType)
		}
		if r.CurrentStage != model.StageAKP || r.Status == model.StatusReturned {
			return fmt.Errorf("%w: report is not awaiting final review", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: role %s cannot approve reports", ErrForbidden, actor.Role)
	}
	r.Status = model.StatusApproved
	r.CorrectionNotes = ""
	r.IsRevision = false
	r.UpdatedAt = time.Now()
	return nil
}

// applyReturn sends the report back one step with a mandatory correction note.
// AK returns to the AO (stage stays AK), AKA returns to AK, AKP returns to AKA.
func applyReturn(r *model.Report, actor model.Actor, p Params) error {
	if strings.TrimSpace(p.Note) == "" {
		return fmt.Errorf("%w: a correction note is required to return a report", ErrValidation)
	}
	switch actor.Role {
	case model.RoleAK:
		if r.CurrentStage != model.StageAK || r.Status != model.StatusSubmitted {
			return fmt.Errorf("%w: report is not awaiting first-stage review", ErrValidation)
		}
		if !assignedOrInArea(r, actor) {
			return fmt.Errorf("%w: report is not assigned to you or routed to your area", ErrForbidden)
		}
		if !r.ViewedByAK {
			return fmt.Errorf("%w: open the report before returning it", ErrValidation)
		}
	case model.RoleAKA:
		if !r.IsMultiStage() || r.CurrentStage != model.StageAKA {
			return fmt.Errorf("%w: report is not at the area review stage", ErrValidation)
		}
		if r.AreaCode != actor.AreaCode {
			return fmt.Errorf("%w: report belongs to another area", ErrForbidden)
		}
		r.CurrentStage = model.StageAK
	case model.RoleAKP:
		if !r.IsMultiStage() || r.CurrentStage != model.StageAKP {
			return fmt.Errorf("%w: report is not at the final review stage", ErrValidation)
		}
		r.CurrentStage = model.StageAKA
	default:
		return fmt.Errorf("%w: role %s cannot return reports", ErrForbidden, actor.Role)
	}
	r.Status = model.StatusReturned
	r.CorrectionNotes = p.Note
	r.ViewedByAK = false
	r.UpdatedAt = time.Now()
	return nil
}

// applyForward pushes an approved multi-stage report to the next reviewer.
// Forwarding by an AKA implies stage approval.
func applyForward(r *model.Report, actor model.Actor) error {
	if !r.IsMultiStage() {
		return fmt.Errorf("%w: %s reports finish at the AK stage", ErrValidation, r.ReportType)
	}
	switch actor.Role {
	case model.RoleAK:
		if r.CurrentStage != model.StageAK || r.Status != model.StatusApproved {
			return fmt.Errorf("%w: approve the report before forwarding it", ErrValidation)
		}
		r.CurrentStage = model.StageAKA
	case model.RoleAKA:
		if r.CurrentStage != model.StageAKA || r.Status == model.StatusReturned {
			return fmt.Errorf("%w: report is not at the area review stage", ErrValidation)
		}
		if r.AreaCode != actor.AreaCode {
			return fmt.Errorf("%w: report belongs to another area", ErrForbidden)
		}
		r.Status = model.StatusApproved
		r.CurrentStage = model.StageAKP
	default:
		return fmt.Errorf("%w: role %s cannot forward reports", ErrForbidden, actor.Role)
	}
	r.UpdatedAt = time.Now()
	return nil
}

// applyCancel withdraws a submission back to draft. Only valid while the
// reviewer has not opened it; a viewed report is a conflict, not retried.
func applyCancel(r *model.Report, actor model.Actor) error {
	if !isOwner(r, actor) {
		return fmt.Errorf("%w: only the authoring AO may cancel a submission", ErrForbidden)
	}
	if r.Status != model.StatusSubmitted {
		return fmt.Errorf("%w: only submitted reports can be cancelled", ErrValidation)
	}
	if r.ViewedByAK {
		return fmt.Errorf("%w: the reviewer already opened this report, too late to cancel", ErrConflict)
	}
	r.Status = model.StatusDraft
	// keep the draft invariant: DRAFT <=> unassigned
	r.AssignedToID = nil
	r.AssignedToName = ""
	r.IsRevision = false
	r.UpdatedAt = time.Now()
	return nil
}

// applyOverride is the IT_SUPPORT escape hatch: replace the data and force the
// report back to SUBMITTED, bypassing the normal gating. The caller records a
// distinct audit entry for it.
func applyOverride(r *model.Report, actor model.Actor, p Params) error {
	if actor.Role != model.RoleITSupport {
		return fmt.Errorf("%w: only IT_SUPPORT may override report data", ErrForbidden)
	}
	if p.Data == nil {
		return fmt.Errorf("%w: report data is required", ErrValidation)
	}
	r.Data = *p.Data
	r.Status = model.StatusSubmitted
	r.IsRevision = true
	r.ViewedByAK = false
	r.UpdatedAt = time.Now()
	return nil
}

// ValidateSubmission runs the fail-fast checks before any persistence call:
// member name always, at least one photo for KC reports.
func ValidateSubmission(reportType string, data model.ReportData) error {
	if strings.TrimSpace(data.MemberName) == "" {
		return fmt.Errorf("%w: member name is required", ErrValidation)
	}
	if reportType == model.TypeKC && !data.HasPhoto() {
		return fmt.Errorf("%w: a KC report needs at least one photo", ErrValidation)
	}
	return nil
}
