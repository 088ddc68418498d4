package workflow

import (
	"sort"
	"strings"
	"time"

	"fieldreport/internal/model"
)

// VisibleTo returns the subset of reports the actor's role is entitled to see.
// This is the privacy boundary: secondary dashboard filters only ever narrow
// the result further. Drafts are visible to their author alone, whatever the
// viewer's role short of full oversight.
func VisibleTo(actor model.Actor, reports []model.Report) []model.Report {
	out := make([]model.Report, 0, len(reports))
	for _, r := range reports {
		if visible(actor, &r) {
			out = append(out, r)
		}
	}
	return out
}

func visible(actor model.Actor, r *model.Report) bool {
	switch actor.Role {
	case model.RoleAdmin, model.RoleGM, model.RoleITSupport:
		return true
	case model.RoleAO:
		return r.AoID == actor.ID
	case model.RoleAK:
		if r.Status == model.StatusDraft {
			return false
		}
		return assignedOrInArea(r, actor)
	case model.RoleAKA:
		// reports that have reached or passed the area stage, in this area
		return r.Status != model.StatusDraft && r.IsMultiStage() &&
			r.AreaCode == actor.AreaCode &&
			(r.CurrentStage == model.StageAKA || r.CurrentStage == model.StageAKP || r.Status == model.StatusApproved)
	case model.RoleAKP:
		// national scope, no area restriction
		return r.Status != model.StatusDraft && r.IsMultiStage() &&
			(r.CurrentStage == model.StageAKP || r.Status == model.StatusApproved)
	case model.RoleAM:
		return r.Status != model.StatusDraft && r.AreaCode == actor.AreaCode
	default:
		return false
	}
}

// Filter is the optional secondary narrowing applied after scoping. It must
// never be relied on for privacy.
type Filter struct {
	Search        string // matches AO name, assignee name, member name, branch
	Branch        string
	ReportType    string
	Status        string
	AreaCode      string
	Date          string // YYYY-MM-DD against updatedAt
	RevisionsOnly bool   // AK "revisions" sub-view
}

// Narrow applies the filter predicates to an already-scoped report list.
func (f Filter) Narrow(reports []model.Report) []model.Report {
	out := make([]model.Report, 0, len(reports))
	for _, r := range reports {
		if f.matches(&r) {
			out = append(out, r)
		}
	}
	return out
}

func (f Filter) matches(r *model.Report) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.AoName), q) &&
			!strings.Contains(strings.ToLower(r.AssignedToName), q) &&
			!strings.Contains(strings.ToLower(r.Data.MemberName), q) &&
			!strings.Contains(strings.ToLower(r.Branch), q) {
			return false
		}
	}
	if f.Branch != "" && r.Branch != f.Branch {
		return false
	}
	if f.ReportType != "" && r.ReportType != f.ReportType {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.AreaCode != "" && r.AreaCode != f.AreaCode {
		return false
	}
	if f.Date != "" && r.UpdatedAt.Format(time.DateOnly) != f.Date {
		return false
	}
	if f.RevisionsOnly && (!r.IsRevision || r.Status != model.StatusSubmitted) {
		return false
	}
	return true
}

// SortDefault orders reports by updatedAt descending; ties keep insertion
// order (stable).
func SortDefault(reports []model.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].UpdatedAt.After(reports[j].UpdatedAt)
	})
}
