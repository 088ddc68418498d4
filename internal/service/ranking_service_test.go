package service

import (
	"context"
	"testing"

	"fieldreport/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportRepo struct {
	reports []model.Report
}

func (s *stubReportRepo) Create(_ context.Context, _ *model.Report) error { return nil }
func (s *stubReportRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.Report, error) {
	return nil, nil
}
func (s *stubReportRepo) ListAll(_ context.Context) ([]model.Report, error) {
	return s.reports, nil
}
func (s *stubReportRepo) ListByStatus(_ context.Context, status string) ([]model.Report, error) {
	var out []model.Report
	for _, r := range s.reports {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}
func (s *stubReportRepo) Save(_ context.Context, _ *model.Report) error { return nil }
func (s *stubReportRepo) Delete(_ context.Context, _ uuid.UUID) error   { return nil }

func approvedReports(aoName string, n int, loan int64) []model.Report {
	aoID := uuid.New()
	out := make([]model.Report, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Report{
			ID:     uuid.New(),
			AoID:   aoID,
			AoName: aoName,
			Status: model.StatusApproved,
			Data:   model.ReportData{LoanTotal: decimal.NewFromInt(loan)},
		})
	}
	return out
}

func TestLeaderboardCompetitionRanking(t *testing.T) {
	var reports []model.Report
	reports = append(reports, approvedReports("Andi", 3, 1000)...)
	reports = append(reports, approvedReports("Bima", 3, 1000)...)
	reports = append(reports, approvedReports("Citra", 5, 1000)...)
	// drafts never count
	reports = append(reports, model.Report{ID: uuid.New(), AoID: uuid.New(), AoName: "Dewi", Status: model.StatusDraft})

	svc := NewRankingService(&stubReportRepo{reports: reports}, DefaultTierThresholds())
	entries, err := svc.Leaderboard(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// ties share a rank and the next distinct count skips past them
	assert.Equal(t, "Citra", entries[0].AoName)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Andi", entries[1].AoName)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Bima", entries[2].AoName)
	assert.Equal(t, 2, entries[2].Rank)
}

func TestLeaderboardTiers(t *testing.T) {
	var reports []model.Report
	reports = append(reports, approvedReports("Diamond AO", 20, 100)...)
	reports = append(reports, approvedReports("Platinum AO", 15, 100)...)
	reports = append(reports, approvedReports("Gold AO", 10, 100)...)
	reports = append(reports, approvedReports("Silver AO", 5, 100)...)
	reports = append(reports, approvedReports("Bronze AO", 4, 100)...)

	svc := NewRankingService(&stubReportRepo{reports: reports}, DefaultTierThresholds())
	entries, err := svc.Leaderboard(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 5)

	assert.Equal(t, TierDiamond, entries[0].Tier)
	assert.Equal(t, TierPlatinum, entries[1].Tier)
	assert.Equal(t, TierGold, entries[2].Tier)
	assert.Equal(t, TierSilver, entries[3].Tier)
	assert.Equal(t, TierBronze, entries[4].Tier)
}

func TestLeaderboardLoanTotals(t *testing.T) {
	reports := approvedReports("Andi", 3, 2500)
	svc := NewRankingService(&stubReportRepo{reports: reports}, DefaultTierThresholds())

	entries, err := svc.Leaderboard(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "7500", entries[0].LoanTotal)
	assert.Equal(t, 3, entries[0].Approved)
}

func TestLeaderboardAreaScopeRederivesRanks(t *testing.T) {
	inArea := func(name, area string, n int) []model.Report {
		out := approvedReports(name, n, 1000)
		for i := range out {
			out[i].AreaCode = area
		}
		return out
	}

	var reports []model.Report
	reports = append(reports, inArea("Andi", "AREA-1", 2)...)
	reports = append(reports, inArea("Bima", "AREA-1", 1)...)
	reports = append(reports, inArea("Citra", "AREA-2", 5)...)
	reports = append(reports, inArea("Dewi", "AREA-2", 3)...)

	svc := NewRankingService(&stubReportRepo{reports: reports}, DefaultTierThresholds())

	// globally Andi sits behind both AREA-2 AOs
	global, err := svc.Leaderboard(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, global, 4)
	assert.Equal(t, "Andi", global[2].AoName)
	assert.Equal(t, 3, global[2].Rank)

	// within AREA-1 the ranks start over from 1
	area, err := svc.Leaderboard(context.Background(), "AREA-1")
	require.NoError(t, err)
	require.Len(t, area, 2)
	assert.Equal(t, "Andi", area[0].AoName)
	assert.Equal(t, 1, area[0].Rank)
	assert.Equal(t, "Bima", area[1].AoName)
	assert.Equal(t, 2, area[1].Rank)
}

func TestTierThresholdOverrides(t *testing.T) {
	custom := TierThresholds{Diamond: 4, Platinum: 3, Gold: 2, Silver: 1}
	assert.Equal(t, TierDiamond, custom.TierFor(4))
	assert.Equal(t, TierBronze, custom.TierFor(0))
}
