package workflow

import "fieldreport/internal/model"

// Capabilities is the action set available to one actor on one report,
// computed once and reused by the HTTP layer and the dashboard instead of
// re-deriving role checks at every call site.
type Capabilities struct {
	CanEdit    bool `json:"can_edit"`
	CanSubmit  bool `json:"can_submit"`
	CanOpen    bool `json:"can_open"`
	CanApprove bool `json:"can_approve"`
	CanReturn  bool `json:"can_return"`
	CanForward bool `json:"can_forward"`
	CanCancel  bool `json:"can_cancel"`
	CanDelete  bool `json:"can_delete"`
}

// CapabilitiesFor computes the capability set for actor on r. The predicates
// mirror the machine's guards exactly; a true flag means the corresponding
// Apply call would pass its authority and state checks.
func CapabilitiesFor(r *model.Report, actor model.Actor) Capabilities {
	owner := isOwner(r, actor)
	editable := r.Status == model.StatusDraft || r.Status == model.StatusReturned

	c := Capabilities{
		CanEdit:   (owner && editable) || actor.Role == model.RoleITSupport,
		CanSubmit: owner && editable,
		CanCancel: owner && r.Status == model.StatusSubmitted && !r.ViewedByAK,
		CanDelete: CanDelete(r, actor),
	}

	switch actor.Role {
	case model.RoleAK:
		engaged := assignedOrInArea(r, actor)
		awaiting := r.Status == model.StatusSubmitted && r.CurrentStage == model.StageAK
		c.CanOpen = engaged && awaiting
		c.CanApprove = engaged && awaiting && r.ViewedByAK
		c.CanReturn = engaged && awaiting && r.ViewedByAK
		c.CanForward = engaged && r.IsMultiStage() &&
			r.CurrentStage == model.StageAK && r.Status == model.StatusApproved
	case model.RoleAKA:
		atStage := r.IsMultiStage() && r.CurrentStage == model.StageAKA && r.AreaCode == actor.AreaCode
		c.CanReturn = atStage
		c.CanForward = atStage && r.Status != model.StatusReturned
	case model.RoleAKP:
		atStage := r.IsMultiStage() && r.CurrentStage == model.StageAKP
		c.CanReturn = atStage
		c.CanApprove = atStage && r.Status != model.StatusReturned
	}

	return c
}
