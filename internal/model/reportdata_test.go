package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, DefaultReportData().IsEmpty())

	named := DefaultReportData()
	named.MemberName = "  Budi  "
	assert.False(t, named.IsEmpty())

	// whitespace alone does not count
	blank := DefaultReportData()
	blank.MemberName = "   "
	assert.True(t, blank.IsEmpty())

	withPhoto := DefaultReportData()
	withPhoto.DocumentSections[0].Photos[0].Image = "data:image/jpeg;base64,xxx"
	assert.False(t, withPhoto.IsEmpty())
}

func TestHasPhoto(t *testing.T) {
	assert.False(t, DefaultReportData().HasPhoto())

	d := DefaultReportData()
	d.KCSections[2].Photos[0].Image = "ref"
	assert.True(t, d.HasPhoto())

	d2 := DefaultReportData()
	d2.DynamicPhotos = append(d2.DynamicPhotos, DynamicPhoto{ID: "x", Image: "ref"})
	assert.True(t, d2.HasPhoto())
}

func TestMergeWithDefaultsFillsMissingSections(t *testing.T) {
	// a payload saved before newer form sections existed
	old := ReportData{MemberName: "Budi Santoso"}

	merged := old.MergeWithDefaults()
	assert.Equal(t, "Budi Santoso", merged.MemberName)
	assert.Len(t, merged.FinancialItems, 5)
	assert.Len(t, merged.KCSections, 5)
	assert.Len(t, merged.DocumentSections, 7)
	assert.NotNil(t, merged.AreaAnalysis)
	assert.NotNil(t, merged.DynamicPhotos)
}

func TestMergeWithDefaultsKeepsLoadedData(t *testing.T) {
	d := DefaultReportData()
	d.MemberName = "Budi Santoso"
	d.KCSections = d.KCSections[:2]
	d.KCSections[0].Photos[0].Image = "ref"
	d.FinancialItems[0].Quantity = "2"

	merged := d.MergeWithDefaults()
	// loaded sub-structures always win, even when shorter than the defaults
	assert.Len(t, merged.KCSections, 2)
	assert.Equal(t, "ref", merged.KCSections[0].Photos[0].Image)
	assert.Equal(t, "2", merged.FinancialItems[0].Quantity)
}

func TestNewReportDefaults(t *testing.T) {
	ao := Actor{Name: "Siti", Role: RoleAO, BranchCode: "KCP-01", AreaCode: "AREA-1"}

	draft := NewReport(ao, DefaultReportData(), TypeKC, nil)
	assert.Equal(t, StatusDraft, draft.Status)
	assert.Equal(t, StageAK, draft.CurrentStage)
	assert.Nil(t, draft.AssignedToID)
	assert.Equal(t, "KCP-01", draft.Branch)
	assert.Equal(t, "AREA-1", draft.AreaCode)
	assert.False(t, draft.IsMultiStage())

	area := NewReport(ao, DefaultReportData(), TypeArea, nil)
	assert.True(t, area.IsMultiStage())
}
