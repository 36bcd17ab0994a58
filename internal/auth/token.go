// Package auth implements stateless sessions and ownership checks: signed
// tokens carried in a cookie, resolved to an identity on every request,
// and authorization by walking card → list → board → user.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/thejerf/abtime"
)

// TokenTTL is the lifetime of an issued token.
const TokenTTL = 24 * time.Hour

// MinSecretLength is the shortest signing secret NewCodec accepts.
const MinSecretLength = 32

var ErrWeakSecret = fmt.Errorf("auth: secret must be at least %d characters", MinSecretLength)

// Identity is the authenticated principal asserted by a token.
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Claims is the token payload.
type Claims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Identity returns the principal carried by the claims.
func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Username: c.Username, Email: c.Email}
}

// Codec issues and verifies HS256 tokens. It holds no mutable state and is
// safe for concurrent use.
type Codec struct {
	secret []byte
	issuer string
	clock  abtime.AbstractTime
}

// CodecOption customizes a Codec.
type CodecOption func(*Codec)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock abtime.AbstractTime) CodecOption {
	return func(c *Codec) { c.clock = clock }
}

// WithIssuer sets the iss claim on issued tokens.
func WithIssuer(issuer string) CodecOption {
	return func(c *Codec) { c.issuer = issuer }
}

// NewCodec returns a codec signing with secret.
func NewCodec(secret string, opts ...CodecOption) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	c := &Codec{
		secret: []byte(secret),
		clock:  abtime.NewRealTime(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token for id, valid from now until now + TokenTTL. The
// claims carry whole seconds, so now is truncated before both are derived.
func (c *Codec) Issue(id Identity) (string, error) {
	now := c.clock.Now().Truncate(time.Second)
	claims := &Claims{
		UserID:   id.ID,
		Username: id.Username,
		Email:    id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry. Malformed, tampered, foreign and
// expired tokens all report ok == false.
func (c *Codec) Verify(tokenStr string) (*Claims, bool) {
	if tokenStr == "" {
		return nil, false
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.clock.Now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, false
	}
	if claims.UserID == 0 {
		return nil, false
	}
	return claims, true
}
