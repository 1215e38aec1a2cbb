package token

import "github.com/golang-jwt/jwt/v5"

// TypeCustomer is the only session type this service issues or accepts.
const TypeCustomer = "customer"

// Claim is the session payload: {customer_id, serial, phone, exp, iat, type}.
type Claim struct {
	CustomerID int64  `json:"customer_id"`
	Serial     string `json:"serial"`
	Phone      string `json:"phone"`
	Type       string `json:"type"`
	jwt.RegisteredClaims
}

// Subject is what a token gets bound to.
type Subject struct {
	CustomerID int64
	Serial     string
	Phone      string
}
