package repository

import (
	"context"

	"customer-service/src/internal/entity"
	"customer-service/src/pkg/databases/rdbms"
)

type SourceRepository struct {
	DB rdbms.DBInterface
}

func NewSourceRepository(db rdbms.DBInterface) *SourceRepository {
	return &SourceRepository{
		DB: db,
	}
}

func (r *SourceRepository) get(ctx context.Context, where string, arg interface{}) (*entity.Source, error) {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return nil, err
	}
	var source entity.Source
	if err := sqlxGet(ctx, q, &source, "SELECT id, name, prefix, is_active, created_at FROM sources WHERE "+where, arg); err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *SourceRepository) FindByPrefix(ctx context.Context, prefix string) (*entity.Source, error) {
	return r.get(ctx, "prefix = ?", prefix)
}
