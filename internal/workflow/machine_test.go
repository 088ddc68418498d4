package workflow

import (
	"testing"

	"fieldreport/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActor(role, area string) model.Actor {
	return model.Actor{
		ID:         uuid.New(),
		Name:       role + " user",
		Role:       role,
		BranchCode: "KCP-01",
		AreaCode:   area,
	}
}

func validData() model.ReportData {
	data := model.DefaultReportData()
	data.MemberName = "Budi Santoso"
	data.KCSections[0].Photos[0].Image = "data:image/jpeg;base64,xxx"
	return data
}

func submittedReport(t *testing.T, ao model.Actor, ak model.Actor, reportType string) *model.Report {
	t.Helper()
	r := model.NewReport(ao, validData(), reportType, &model.Assignee{ID: ak.ID, Name: ak.Name})
	require.Equal(t, model.StatusSubmitted, r.Status)
	require.Equal(t, model.StageAK, r.CurrentStage)
	return r
}

func TestSubmitRequiresMemberName(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	r := model.NewReport(ao, model.DefaultReportData(), model.TypeArea, nil)

	err := Apply(r, ao, ActionSubmit, Params{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, model.StatusDraft, r.Status)
}

func TestKCSubmitRequiresPhoto(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	data := model.DefaultReportData()
	data.MemberName = "Budi Santoso"
	r := model.NewReport(ao, data, model.TypeKC, nil)

	err := Apply(r, ao, ActionSubmit, Params{})
	assert.ErrorIs(t, err, ErrValidation)

	// the same payload is fine for a multi-stage type
	r2 := model.NewReport(ao, data, model.TypeArea, nil)
	assert.NoError(t, Apply(r2, ao, ActionSubmit, Params{}))
}

func TestSaveDraftOnlyByOwner(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	other := newActor(model.RoleAO, "AREA-1")
	r := model.NewReport(ao, validData(), model.TypeKC, nil)

	data := validData()
	assert.ErrorIs(t, Apply(r, other, ActionSaveDraft, Params{Data: &data}), ErrForbidden)
	assert.NoError(t, Apply(r, ao, ActionSaveDraft, Params{Data: &data}))
	assert.Equal(t, model.StatusDraft, r.Status)
}

func TestSaveDraftRejectedOnceSubmitted(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	r := submittedReport(t, ao, ak, model.TypeKC)

	data := validData()
	assert.ErrorIs(t, Apply(r, ao, ActionSaveDraft, Params{Data: &data}), ErrValidation)
}

func TestOpenSetsViewedOnceAndClearsRevision(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	r := submittedReport(t, ao, ak, model.TypeKC)
	r.IsRevision = true

	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))
	assert.True(t, r.ViewedByAK)
	assert.False(t, r.IsRevision)

	// a second open changes nothing
	r.IsRevision = true
	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))
	assert.True(t, r.IsRevision)
}

func TestOpenRequiresEngagement(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	strangerAK := newActor(model.RoleAK, "AREA-2")
	r := submittedReport(t, ao, ak, model.TypeKC)

	assert.ErrorIs(t, Apply(r, strangerAK, ActionOpen, Params{}), ErrForbidden)

	// unassigned reports route by area instead
	r.AssignedToID = nil
	r.AssignedToName = ""
	assert.ErrorIs(t, Apply(r, strangerAK, ActionOpen, Params{}), ErrForbidden)
	sameAreaAK := newActor(model.RoleAK, "AREA-1")
	assert.NoError(t, Apply(r, sameAreaAK, ActionOpen, Params{}))
}

func TestApproveRequiresOpenFirst(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	r := submittedReport(t, ao, ak, model.TypeKC)

	assert.ErrorIs(t, Apply(r, ak, ActionApprove, Params{}), ErrValidation)

	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))
	require.NoError(t, Apply(r, ak, ActionApprove, Params{}))
	assert.Equal(t, model.StatusApproved, r.Status)
	assert.Empty(t, r.CorrectionNotes)
}

func TestReturnRequiresNote(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	r := submittedReport(t, ao, ak, model.TypeKC)
	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))

	assert.ErrorIs(t, Apply(r, ak, ActionReturn, Params{Note: "   "}), ErrValidation)
	assert.Equal(t, model.StatusSubmitted, r.Status)

	require.NoError(t, Apply(r, ak, ActionReturn, Params{Note: "photo is blurry"}))
	assert.Equal(t, model.StatusReturned, r.Status)
	assert.Equal(t, "photo is blurry", r.CorrectionNotes)
	assert.False(t, r.ViewedByAK)
	assert.Equal(t, model.StageAK, r.CurrentStage)
}

func TestResubmitAfterReturnMarksRevision(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	r := submittedReport(t, ao, ak, model.TypeKC)
	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))
	require.NoError(t, Apply(r, ak, ActionReturn, Params{Note: "fix the map"}))

	data := validData()
	require.NoError(t, Apply(r, ao, ActionSubmit, Params{Data: &data}))
	assert.Equal(t, model.StatusSubmitted, r.Status)
	assert.True(t, r.IsRevision)
	assert.False(t, r.ViewedByAK)
}

func TestCancelBeforeViewed(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	r := submittedReport(t, ao, ak, model.TypeKC)

	require.NoError(t, Apply(r, ao, ActionCancel, Params{}))
	assert.Equal(t, model.StatusDraft, r.Status)
	assert.Nil(t, r.AssignedToID)
	assert.Empty(t, r.AssignedToName)
}

func TestCancelAfterViewedIsConflict(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	r := submittedReport(t, ao, ak, model.TypeKC)
	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))

	err := Apply(r, ao, ActionCancel, Params{})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, model.StatusSubmitted, r.Status)
}

func TestKCReportsFinishAtAK(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	r := submittedReport(t, ao, ak, model.TypeKC)
	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))
	require.NoError(t, Apply(r, ak, ActionApprove, Params{}))

	assert.ErrorIs(t, Apply(r, ak, ActionForward, Params{}), ErrValidation)
	assert.Equal(t, model.StatusApproved, r.Status)
	assert.Equal(t, model.StageAK, r.CurrentStage)
}

func TestAreaReportFullChain(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	aka := newActor(model.RoleAKA, "AREA-1")
	akp := newActor(model.RoleAKP, "AREA-2")
	r := submittedReport(t, ao, ak, model.TypeArea)

	// first stage
	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))
	require.NoError(t, Apply(r, ak, ActionApprove, Params{}))
	assert.ErrorIs(t, Apply(r, aka, ActionForward, Params{}), ErrValidation) // not at AKA yet
	require.NoError(t, Apply(r, ak, ActionForward, Params{}))
	assert.Equal(t, model.StageAKA, r.CurrentStage)

	// area stage: forwarding implies stage approval
	require.NoError(t, Apply(r, aka, ActionForward, Params{}))
	assert.Equal(t, model.StatusApproved, r.Status)
	assert.Equal(t, model.StageAKP, r.CurrentStage)

	// final stage sends it back
	require.NoError(t, Apply(r, akp, ActionReturn, Params{Note: "missing signature"}))
	assert.Equal(t, model.StatusReturned, r.Status)
	assert.Equal(t, model.StageAKA, r.CurrentStage)
	assert.Equal(t, "missing signature", r.CorrectionNotes)

	// AKA passes the correction down to the AK stage
	require.NoError(t, Apply(r, aka, ActionReturn, Params{Note: "missing signature"}))
	assert.Equal(t, model.StageAK, r.CurrentStage)

	// AO fixes and resubmits, full chain again
	data := validData()
	require.NoError(t, Apply(r, ao, ActionSubmit, Params{Data: &data}))
	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))
	require.NoError(t, Apply(r, ak, ActionApprove, Params{}))
	require.NoError(t, Apply(r, ak, ActionForward, Params{}))
	require.NoError(t, Apply(r, aka, ActionForward, Params{}))
	require.NoError(t, Apply(r, akp, ActionApprove, Params{}))
	assert.Equal(t, model.StatusApproved, r.Status)
	assert.Equal(t, model.StageAKP, r.CurrentStage)
	assert.Empty(t, r.CorrectionNotes)
}

func TestForwardGuards(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	r := submittedReport(t, ao, ak, model.TypeArea)

	// approve first
	assert.ErrorIs(t, Apply(r, ak, ActionForward, Params{}), ErrValidation)

	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))
	require.NoError(t, Apply(r, ak, ActionApprove, Params{}))
	require.NoError(t, Apply(r, ak, ActionForward, Params{}))

	// AKA of another area cannot touch it
	foreignAKA := newActor(model.RoleAKA, "AREA-2")
	assert.ErrorIs(t, Apply(r, foreignAKA, ActionForward, Params{}), ErrForbidden)
	assert.ErrorIs(t, Apply(r, foreignAKA, ActionReturn, Params{Note: "nope"}), ErrForbidden)
}

func TestOverrideIsITSupportOnly(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	it := newActor(model.RoleITSupport, "AREA-1")
	r := submittedReport(t, ao, ak, model.TypeKC)
	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))
	require.NoError(t, Apply(r, ak, ActionApprove, Params{}))

	data := validData()
	assert.ErrorIs(t, Apply(r, ak, ActionOverride, Params{Data: &data}), ErrForbidden)

	require.NoError(t, Apply(r, it, ActionOverride, Params{Data: &data}))
	assert.Equal(t, model.StatusSubmitted, r.Status)
	assert.True(t, r.IsRevision)
	assert.False(t, r.ViewedByAK)
}

func TestCanDelete(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	it := newActor(model.RoleITSupport, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")

	draft := model.NewReport(ao, validData(), model.TypeKC, nil)
	assert.True(t, CanDelete(draft, ao))
	assert.True(t, CanDelete(draft, it))
	assert.False(t, CanDelete(draft, ak))

	submitted := submittedReport(t, ao, ak, model.TypeKC)
	assert.False(t, CanDelete(submitted, ao))
	assert.True(t, CanDelete(submitted, it))
}

func TestCapabilitiesMirrorMachine(t *testing.T) {
	ao := newActor(model.RoleAO, "AREA-1")
	ak := newActor(model.RoleAK, "AREA-1")
	r := submittedReport(t, ao, ak, model.TypeArea)

	caps := CapabilitiesFor(r, ao)
	assert.True(t, caps.CanCancel)
	assert.False(t, caps.CanEdit)
	assert.False(t, caps.CanSubmit)

	akCaps := CapabilitiesFor(r, ak)
	assert.True(t, akCaps.CanOpen)
	assert.False(t, akCaps.CanApprove) // not viewed yet

	require.NoError(t, Apply(r, ak, ActionOpen, Params{}))
	akCaps = CapabilitiesFor(r, ak)
	assert.True(t, akCaps.CanApprove)
	assert.True(t, akCaps.CanReturn)
	assert.False(t, CapabilitiesFor(r, ao).CanCancel) // viewed, too late

	require.NoError(t, Apply(r, ak, ActionApprove, Params{}))
	akCaps = CapabilitiesFor(r, ak)
	assert.True(t, akCaps.CanForward)
	assert.False(t, akCaps.CanApprove)
}
