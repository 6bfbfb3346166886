package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/leoclub/points-tracker-api/internal/domain"
)

// LeaderboardService recomputes rankings from ledger data on every call.
// There is deliberately no cached or incremental state.
type LeaderboardService struct {
	members       MemberRepository
	contributions ContributionRepository
}

func NewLeaderboardService(members MemberRepository, contributions ContributionRepository) *LeaderboardService {
	return &LeaderboardService{
		members:       members,
		contributions: contributions,
	}
}

// AllTime ranks members by total_points descending, ties broken by
// registration number ascending.
func (s *LeaderboardService) AllTime(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	members, err := s.members.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.members.FindAll -> %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		entries = append(entries, domain.LeaderboardEntry{
			RegNo:            m.RegNo,
			NameWithInitials: m.NameWithInitials,
			Points:           m.TotalPoints,
		})
	}

	return entries, nil
}

// Monthly ranks the full roster by points earned in the given calendar
// month, matching on the contribution's time_period label. Members with
// no contributions in the period appear with zero points.
func (s *LeaderboardService) Monthly(ctx context.Context, year, month int) ([]domain.LeaderboardEntry, error) {
	period := fmt.Sprintf("%04d-%02d", year, month)

	contributions, err := s.contributions.FindByTimePeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("s.contributions.FindByTimePeriod -> %w", err)
	}

	totals := make(map[string]int, len(contributions))
	for _, c := range contributions {
		totals[c.MemberRegNo] += c.Points
	}

	members, err := s.members.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.members.FindAll -> %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		entries = append(entries, domain.LeaderboardEntry{
			RegNo:            m.RegNo,
			NameWithInitials: m.NameWithInitials,
			Points:           totals[m.RegNo],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}

		return entries[i].RegNo < entries[j].RegNo
	})

	return entries, nil
}

// MonthlyProjectCount counts distinct project names among contributions
// recorded within the calendar month, bounded by the month's first instant
// and the last second of its final day.
func (s *LeaderboardService) MonthlyProjectCount(ctx context.Context, year, month int) (int, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	count, err := s.contributions.CountDistinctProjects(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("s.contributions.CountDistinctProjects -> %w", err)
	}

	return count, nil
}
