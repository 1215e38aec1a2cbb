package entity

import "time"

const (
	AuditTokenGenerated = "TOKEN_GENERATED"
	AuditTokenRefreshed = "TOKEN_REFRESHED"
	AuditTokenRejected  = "TOKEN_REJECTED"
)

type TokenAuditLog struct {
	ID               int64     `json:"id" db:"id"`
	CustomerID       int64     `json:"customer_id" db:"customer_id"`
	Action           string    `json:"action" db:"action"`
	TokenFingerprint string    `json:"token_fingerprint" db:"token_fingerprint"`
	Description      string    `json:"description" db:"description"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
