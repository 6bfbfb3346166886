package response

import "github.com/leoclub/points-tracker-api/internal/domain"

type TotalPointsResponse struct {
	TotalPoints int `json:"total_points"`
}

type MonthlyProjectCountResponse struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	ProjectCount int `json:"project_count"`
}

type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

type PhotoUploadResponse struct {
	PhotoURL string `json:"photo_url"`
}
