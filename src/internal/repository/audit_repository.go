package repository

import (
	"context"
	"fmt"

	"customer-service/src/internal/entity"
	"customer-service/src/pkg/databases/rdbms"
)

type AuditRepository struct {
	DB rdbms.DBInterface
}

func NewAuditRepository(db rdbms.DBInterface) *AuditRepository {
	return &AuditRepository{
		DB: db,
	}
}

func (r *AuditRepository) Create(ctx context.Context, log *entity.TokenAuditLog) error {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return err
	}
	id, err := rdbms.InsertReturningID(ctx, q, r.DB.Dialect(), `
		INSERT INTO token_audit_logs (customer_id, action, token_fingerprint, description, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		log.CustomerID, log.Action, log.TokenFingerprint, log.Description, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert token audit log: %w", err)
	}
	log.ID = id
	return nil
}
