package service

import (
	"context"
	"fmt"
	"sort"

	"fieldreport/internal/model"
	"fieldreport/internal/repository"

	"github.com/shopspring/decimal"
)

// Achievement tier names, highest first.
const (
	TierDiamond  = "Diamond"
	TierPlatinum = "Platinum"
	TierGold     = "Gold"
	TierSilver   = "Silver"
	TierBronze   = "Bronze"
)

// TierThresholds holds the minimum approved-report counts per tier.
// Anything below Silver is Bronze.
type TierThresholds struct {
	Diamond  int
	Platinum int
	Gold     int
	Silver   int
}

// DefaultTierThresholds are the production cutoffs.
func DefaultTierThresholds() TierThresholds {
	return TierThresholds{Diamond: 20, Platinum: 15, Gold: 10, Silver: 5}
}

func (t TierThresholds) TierFor(approved int) string {
	switch {
	case approved >= t.Diamond:
		return TierDiamond
	case approved >= t.Platinum:
		return TierPlatinum
	case approved >= t.Gold:
		return TierGold
	case approved >= t.Silver:
		return TierSilver
	default:
		return TierBronze
	}
}

// LeaderboardEntry is one AO row of the leaderboard. LoanTotal is the sum of
// approved loan amounts, kept exact via decimals.
type LeaderboardEntry struct {
	AoID      string `json:"ao_id"`
	AoName    string `json:"ao_name"`
	Branch    string `json:"branch"`
	AreaCode  string `json:"area_code"`
	Approved  int    `json:"approved"`
	Rank      int    `json:"rank"`
	Tier      string `json:"tier"`
	LoanTotal string `json:"loan_total"`
}

type RankingService interface {
	Leaderboard(ctx context.Context, areaCode string) ([]LeaderboardEntry, error)
}

type rankingService struct {
	reports    repository.ReportRepository
	thresholds TierThresholds
}

func NewRankingService(reports repository.ReportRepository, thresholds TierThresholds) RankingService {
	return &rankingService{reports: reports, thresholds: thresholds}
}

// Leaderboard aggregates approved reports per AO and ranks by count in
// competition order: equal counts share a rank and the next distinct count
// skips past them (3, 3 -> both rank 1, next is rank 3). A non-empty areaCode
// restricts the board to that area; ranks are then derived within the subset,
// not sliced out of the global ordering.
func (s *rankingService) Leaderboard(ctx context.Context, areaCode string) ([]LeaderboardEntry, error) {
	approved, err := s.reports.ListByStatus(ctx, model.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch approved reports: %w", err)
	}

	type bucket struct {
		entry LeaderboardEntry
		total decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	for i := range approved {
		r := &approved[i]
		if areaCode != "" && r.AreaCode != areaCode {
			continue
		}
		key := r.AoID.String()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{entry: LeaderboardEntry{
				AoID:     key,
				AoName:   r.AoName,
				Branch:   r.Branch,
				AreaCode: r.AreaCode,
			}, total: decimal.Zero}
			buckets[key] = b
		}
		b.entry.Approved++
		b.total = b.total.Add(r.Data.LoanTotal)
	}

	entries := make([]LeaderboardEntry, 0, len(buckets))
	for _, b := range buckets {
		b.entry.LoanTotal = b.total.String()
		entries = append(entries, b.entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Approved != entries[j].Approved {
			return entries[i].Approved > entries[j].Approved
		}
		return entries[i].AoName < entries[j].AoName
	})

	for i := range entries {
		if i > 0 && entries[i].Approved == entries[i-1].Approved {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
		entries[i].Tier = s.thresholds.TierFor(entries[i].Approved)
	}
	return entries, nil
}
