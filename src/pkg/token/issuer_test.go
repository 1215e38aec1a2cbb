package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var subject = Subject{CustomerID: 7, Serial: "T123456789", Phone: "0551234567"}

func newTestIssuer(t *testing.T, now time.Time) *Issuer {
	t.Helper()
	iss, err := NewIssuer(Config{Secret: "test-secret-with-enough-length-123", Algorithm: "HS256"})
	require.NoError(t, err)
	return iss.WithClock(func() time.Time { return now })
}

func TestNewIssuerValidatesConfig(t *testing.T) {
	_, err := NewIssuer(Config{})
	assert.Error(t, err)

	_, err = NewIssuer(Config{Secret: "s", Algorithm: "RS256"})
	assert.Error(t, err)

	iss, err := NewIssuer(Config{Secret: "s"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, iss.TTL())
}

func TestZeroIssuerRefusesToSign(t *testing.T) {
	_, _, err := (&Issuer{}).Issue(subject)
	assert.Error(t, err)
}

func TestIssuePayloadShape(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tok, claim, err := newTestIssuer(t, now).Issue(subject)
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*24*time.Hour), claim.ExpiresAt.Time)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"customer_id", "serial", "phone", "exp", "iat", "type"}, keys)
	assert.Equal(t, "customer", payload["type"])
	assert.EqualValues(t, 7, payload["customer_id"])
}

func TestParseRoundTrip(t *testing.T) {
	now := time.Now()
	iss := newTestIssuer(t, now)
	tok, _, err := iss.Issue(subject)
	require.NoError(t, err)

	claim, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, subject.CustomerID, claim.CustomerID)
	assert.Equal(t, subject.Serial, claim.Serial)
	assert.Equal(t, subject.Phone, claim.Phone)
}

func TestParseExpired(t *testing.T) {
	issuedAt := time.Now().Add(-31 * 24 * time.Hour)
	tok, _, err := newTestIssuer(t, issuedAt).Issue(subject)
	require.NoError(t, err)

	later := newTestIssuer(t, time.Now())
	_, err = later.Parse(tok)
	assert.ErrorIs(t, err, ErrExpired)

	claim, err := later.ParseIgnoringExpiry(tok)
	require.NoError(t, err)
	assert.Equal(t, subject.CustomerID, claim.CustomerID)
}

func TestParseMalformed(t *testing.T) {
	iss := newTestIssuer(t, time.Now())
	good, _, err := iss.Issue(subject)
	require.NoError(t, err)

	other, err := NewIssuer(Config{Secret: "another-secret"})
	require.NoError(t, err)
	foreign, _, err := other.Issue(subject)
	require.NoError(t, err)

	wrongType := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claim{
		CustomerID: 7,
		Type:       "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	wrongTypeSigned, err := wrongType.SignedString([]byte("test-secret-with-enough-length-123"))
	require.NoError(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claim{
		CustomerID: 7,
		Type:       TypeCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	hs512Signed, err := hs512.SignedString([]byte("test-secret-with-enough-length-123"))
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":        "not-a-token",
		"empty":          "",
		"tampered":       good[:len(good)-2] + "xx",
		"foreign secret": foreign,
		"wrong type":     wrongTypeSigned,
		"wrong alg":      hs512Signed,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := iss.Parse(tok)
			assert.ErrorIs(t, err, ErrMalformed)
			_, err = iss.ParseIgnoringExpiry(tok)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestFingerprintIsStable(t *testing.T) {
	assert.Equal(t, Fingerprint("abc"), Fingerprint("abc"))
	assert.NotEqual(t, Fingerprint("abc"), Fingerprint("abd"))
	assert.Len(t, Fingerprint("abc"), 16)
}
