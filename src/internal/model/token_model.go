package model

import "time"

type TokenRequest struct {
	Token string `json:"token" validate:"required,max=2048"`
}

type TokenValidationResponse struct {
	Valid      bool      `json:"valid"`
	CustomerID int64     `json:"customer_id"`
	Serial     string    `json:"serial"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Auth is what the bearer middleware stores in fiber locals.
type Auth struct {
	CustomerID int64
	Serial     string
	Phone      string
}
