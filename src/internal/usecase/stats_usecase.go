package usecase

import (
	"context"
	"time"

	"customer-service/src/internal/model"
	"customer-service/src/internal/repository"
	httpError "customer-service/src/pkg/http-error"
	"customer-service/src/pkg/log"
	"customer-service/src/pkg/utils"
)

type StatsUseCase struct {
	Log             log.Log
	StatsRepository repository.StatsStore
	Now             func() time.Time
}

func NewStatsUseCase(logger log.Log, statsRepository repository.StatsStore) *StatsUseCase {
	return &StatsUseCase{
		Log:             logger,
		StatsRepository: statsRepository,
		Now:             time.Now,
	}
}

func (c *StatsUseCase) SourceStats(ctx context.Context) utils.Result {
	var result utils.Result

	stats, err := c.StatsRepository.SourceStats(ctx)
	if err != nil {
		c.Log.Error("stats-usecase", err.Error(), "SourceStats", "")
		result.Error = httpError.NewInternalServerError()
		return result
	}
	result.Data = &model.SourceStatsResponse{Sources: stats}
	return result
}

func (c *StatsUseCase) DashboardStats(ctx context.Context) utils.Result {
	var result utils.Result

	now := c.Now().UTC()
	stat, err := c.StatsRepository.Dashboard(ctx, now.Add(-24*time.Hour))
	if err != nil {
		c.Log.Error("stats-usecase", err.Error(), "DashboardStats", "")
		result.Error = httpError.NewInternalServerError()
		return result
	}
	result.Data = &model.DashboardStatsResponse{DashboardStat: *stat, GeneratedAt: now.Format(time.RFC3339)}
	return result
}
