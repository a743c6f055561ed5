// Package auth issues and verifies the signed session tokens that bind a
// vendor identity, and provides the password hashing helpers.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost exceeds the 10 rounds the legacy deployment used.
const bcryptCost = 12

// Claims holds the typed JWT payload.
type Claims struct {
	VendorID string `json:"vendorId"`
	jwt.RegisteredClaims
}

// JWT signs and verifies session tokens with a fixed secret and TTL,
// both supplied once at startup from the application config.
type JWT struct {
	secret []byte
	ttl    time.Duration
}

// NewJWT builds a token issuer/verifier. ttl is the fixed credential
// lifetime (1 hour in the default config).
func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl}
}

// GenerateToken creates a signed HS256 token embedding the vendor id.
func (j *JWT) GenerateToken(vendorID string) (string, error) {
	now := time.Now()
	claims := Claims{
		VendorID: vendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// ValidateToken parses and validates a token string. Signature and expiry
// failures are not distinguished; both surface as a single parse error.
func (j *JWT) ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
