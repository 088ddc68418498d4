package workflow

import (
	"testing"
	"time"

	"fieldreport/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportWith(ao model.Actor, reportType, status, stage string) model.Report {
	return model.Report{
		ID:           uuid.New(),
		AoID:         ao.ID,
		AoName:       ao.Name,
		Branch:       ao.BranchCode,
		AreaCode:     ao.AreaCode,
		ReportType:   reportType,
		Status:       status,
		CurrentStage: stage,
		UpdatedAt:    time.Now(),
	}
}

func TestDraftsVisibleToAuthorOnly(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	otherAO := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	admin := newActor(model.RoleAdmin, "AREA-1")

	reports := []model.Report{reportWith(ao, model.TypeKC, model.StatusDraft, model.StageAK)}

	assert.Len(t, VisibleTo(ao, reports), 1)
	assert.Empty(t, VisibleTo(otherAO, reports))
	assert.Empty(t, VisibleTo(ak, reports))
	// full-oversight roles still see everything
	assert.Len(t, VisibleTo(admin, reports), 1)
}

func TestAKScopeAssignedOrArea(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	assignedAK := newActor(model.RoleAK, "AREA-2")
	areaAK := newActor(model.RoleAK, "AREA-1")

	assigned := reportWith(ao, model.TypeKC, model.StatusSubmitted, model.StageAK)
	assigned.AssignedToID = &assignedAK.ID
	assigned.AssignedToName = assignedAK.Name

	unassigned := reportWith(ao, model.TypeKC, model.StatusSubmitted, model.StageAK)

	reports := []model.Report{assigned, unassigned}

	// the assignee sees only the report routed to them by name
	visible := VisibleTo(assignedAK, reports)
	require.Len(t, visible, 1)
	assert.Equal(t, assigned.ID, visible[0].ID)

	// an AK of the area sees only the unassigned one
	visible = VisibleTo(areaAK, reports)
	require.Len(t, visible, 1)
	assert.Equal(t, unassigned.ID, visible[0].ID)
}

func TestAKANeverSeesFirstStageReports(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	aka := newActor(model.RoleAKA, "AREA-1")

	atAK := reportWith(ao, model.TypeArea, model.StatusSubmitted, model.StageAK)
	atAKA := reportWith(ao, model.TypeArea, model.StatusSubmitted, model.StageAKA)
	kc := reportWith(ao, model.TypeKC, model.StatusSubmitted, model.StageAK)

	visible := VisibleTo(aka, []model.Report{atAK, atAKA, kc})
	require.Len(t, visible, 1)
	assert.Equal(t, atAKA.ID, visible[0].ID)
}

func TestAKAScopedToOwnArea(t *testing.T) {
	ao1 := newActor(model.RoleAO, "AREA-1")
	ao2 := newActor(model.RoleAO, "AREA-2")
	aka := newActor(model.RoleAKA, "AREA-1")

	own := reportWith(ao1, model.TypeArea, model.StatusSubmitted, model.StageAKA)
	foreign := reportWith(ao2, model.TypeArea, model.StatusSubmitted, model.StageAKA)

	visible := VisibleTo(aka, []model.Report{own, foreign})
	require.Len(t, visible, 1)
	assert.Equal(t, own.ID, visible[0].ID)
}

func TestAKPNationalScope(t *testing.T) {
	ao1 := newActor(model.RoleAO, "AREA-1")
	ao2 := newActor(model.RoleAO, "AREA-2")
	akp := newActor(model.RoleAKP, "AREA-3")

	r1 := reportWith(ao1, model.TypeArea, model.StatusSubmitted, model.StageAKP)
	r2 := reportWith(ao2, model.TypeKP, model.StatusApproved, model.StageAKP)
	tooEarly := reportWith(ao1, model.TypeArea, model.StatusSubmitted, model.StageAKA)
	kc := reportWith(ao1, model.TypeKC, model.StatusApproved, model.StageAK)

	visible := VisibleTo(akp, []model.Report{r1, r2, tooEarly, kc})
	assert.Len(t, visible, 2)
}

func TestFilterNarrows(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ao.Name = "Siti Rahma"

	r1 := reportWith(ao, model.TypeKC, model.StatusSubmitted, model.StageAK)
	r1.Data.MemberName = "Budi Santoso"
	r1.IsRevision = true
	r2 := reportWith(ao, model.TypeArea, model.StatusApproved, model.StageAKP)
	r2.Data.MemberName = "Agus Wijaya"

	reports := []model.Report{r1, r2}

	assert.Len(t, Filter{Search: "budi"}.Narrow(reports), 1)
	assert.Len(t, Filter{Search: "siti"}.Narrow(reports), 2) // matches AO name
	assert.Len(t, Filter{ReportType: model.TypeArea}.Narrow(reports), 1)
	assert.Len(t, Filter{Status: model.StatusApproved}.Narrow(reports), 1)
	assert.Len(t, Filter{RevisionsOnly: true}.Narrow(reports), 1)
	assert.Len(t, Filter{Date: time.Now().Format(time.DateOnly)}.Narrow(reports), 2)
	assert.Empty(t, Filter{Date: "1999-01-01"}.Narrow(reports))
}

func TestSortDefaultNewestFirst(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	older := reportWith(ao, model.TypeKC, model.StatusDraft, model.StageAK)
	older.UpdatedAt = time.Now().Add(-time.Hour)
	newer := reportWith(ao, model.TypeKC, model.StatusDraft, model.StageAK)

	reports := []model.Report{older, newer}
	SortDefault(reports)
	assert.Equal(t, newer.ID, reports[0].ID)
}
