package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 30 * 24 * time.Hour

var (
	ErrExpired   = errors.New("token expired")
	ErrMalformed = errors.New("token malformed")

	errNotConfigured = errors.New("issuer not configured")
)

type Config struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
}

// Issuer signs and verifies customer session tokens with an HMAC secret.
type Issuer struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret not configured")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a fresh session token for sub.
func (i *Issuer) Issue(sub Subject) (string, *Claim, error) {
	if i.method == nil || len(i.secret) == 0 {
		return "", nil, errNotConfigured
	}
	issuedAt := i.now().Truncate(time.Second)
	claim := &Claim{
		CustomerID: sub.CustomerID,
		Serial:     sub.Serial,
		Phone:      sub.Phone,
		Type:       TypeCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(i.method, claim).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claim, nil
}

// Parse verifies signature, algorithm, type and expiry.
func (i *Issuer) Parse(tokenString string) (*Claim, error) {
	return i.parse(tokenString, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
}

// ParseIgnoringExpiry verifies signature, algorithm and type but not the time claims.
// Refresh relies on it to accept tokens past their expiry.
func (i *Issuer) ParseIgnoringExpiry(tokenString string) (*Claim, error) {
	return i.parse(tokenString, jwt.WithoutClaimsValidation())
}

func (i *Issuer) parse(tokenString string, opts ...jwt.ParserOption) (*Claim, error) {
	opts = append(opts, jwt.WithValidMethods([]string{i.method.Alg()}))
	claim := &Claim{}
	tok, err := jwt.ParseWithClaims(tokenString, claim, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !tok.Valid || claim.Type != TypeCustomer || claim.CustomerID <= 0 {
		return nil, ErrMalformed
	}
	return claim, nil
}

// Fingerprint identifies a token in audit logs without storing it.
func Fingerprint(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(sum[:8])
}
