package dto

import "github.com/greenwatch/greenwatch-api/internal/repository"

// LeaderboardEntry ranks a reporter on the public stats page.
type LeaderboardEntry struct {
	Name        string `json:"name"`
	ReportCount int64  `json:"report_count"`
}

// PublicStatsResponse is the aggregate payload served to the landing page.
// Communities counts distinct citizen accounts as an engagement proxy.
type PublicStatsResponse struct {
	Reports     int64              `json:"reports"`
	Communities int64              `json:"communities"`
	Removed     int64              `json:"removed"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// NewLeaderboard converts repository rows into response entries.
func NewLeaderboard(rows []repository.LeaderboardRow) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, LeaderboardEntry{Name: row.Name, ReportCount: row.ReportCount})
	}
	return entries
}
