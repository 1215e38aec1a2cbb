package model

import "customer-service/src/internal/entity"

type SourceStatsResponse struct {
	Sources []entity.SourceStat `json:"sources"`
}

type DashboardStatsResponse struct {
	entity.DashboardStat
	GeneratedAt string `json:"generated_at"`
}
