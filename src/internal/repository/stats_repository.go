package repository

import (
	"context"
	"time"

	"customer-service/src/internal/entity"
	"customer-service/src/pkg/databases/rdbms"
)

type StatsRepository struct {
	DB rdbms.DBInterface
}

func NewStatsRepository(db rdbms.DBInterface) *StatsRepository {
	return &StatsRepository{
		DB: db,
	}
}

func (r *StatsRepository) SourceStats(ctx context.Context) ([]entity.SourceStat, error) {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			s.id AS source_id,
			s.name,
			s.prefix,
			COUNT(c.id) AS customers,
			COALESCE(SUM(CASE WHEN c.is_active = ? THEN 1 ELSE 0 END), 0) AS active_customers,
			COALESCE((
				SELECT SUM(t.amount) FROM wallet_transactions t
				WHERE t.source_id = s.id AND t.amount > 0
			), 0) AS total_credited
		FROM sources s
		LEFT JOIN customers c ON c.source_id = s.id
		GROUP BY s.id, s.name, s.prefix
		ORDER BY s.prefix`

	stats := []entity.SourceStat{}
	if err := sqlxSelect(ctx, q, &stats, query, true); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *StatsRepository) Dashboard(ctx context.Context, since time.Time) (*entity.DashboardStat, error) {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM customers) AS total_customers,
			(SELECT COUNT(*) FROM customers WHERE is_active = ?) AS active_customers,
			(SELECT COUNT(*) FROM customers WHERE is_trial_active = ?) AS trial_customers,
			(SELECT COUNT(*) FROM customers WHERE created_at >= ?) AS registrations_last_day,
			(SELECT COALESCE(SUM(balance), 0) FROM wallets) AS total_balance,
			(SELECT COALESCE(SUM(total_deposited), 0) FROM wallets) AS total_deposited,
			(SELECT COALESCE(SUM(total_spent), 0) FROM wallets) AS total_spent,
			(SELECT COALESCE(SUM(total_rewarded), 0) FROM wallets) AS total_rewarded,
			(SELECT COUNT(*) FROM wallet_transactions) AS total_transactions`

	var stat entity.DashboardStat
	if err := sqlxGet(ctx, q, &stat, query, true, true, since); err != nil {
		return nil, err
	}
	return &stat, nil
}
