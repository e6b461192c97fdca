// Package auth implements the token codec, password handling and the
// superuser bootstrap guard.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"carehub/internal/config"
	"carehub/internal/model"
)

var (
	// ErrTokenExpired is returned when the token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned for any other decode failure: bad
	// signature, wrong issuer or audience, malformed input.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the self-contained claim set embedded in every session token.
type Claims struct {
	Username string     `json:"username"`
	FullName string     `json:"fullName"`
	Role     string     `json:"role"`
	Branch   *uuid.UUID `json:"branch,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with the configured key,
// algorithm, issuer and audience.
type Codec struct {
	cfg config.TokenConfig
}

// NewCodec builds a Codec from token configuration.
func NewCodec(cfg config.TokenConfig) *Codec {
	return &Codec{cfg: cfg}
}

// Issue mints a token for the user: subject id, username, full name, role
// and branch affiliation, expiring ExpiryMinutes from now. There is no
// refresh concept; a new token requires re-authenticating.
func (c *Codec) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		FullName: user.FullName(),
		Role:     user.Role,
		Branch:   user.BranchID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    c.cfg.Issuer,
			Audience:  jwt.ClaimStrings{c.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(c.cfg.ExpiryMinutes) * time.Minute)),
		},
	}

	method := jwt.GetSigningMethod(c.cfg.Algorithm)
	if method == nil {
		return "", errors.New("unsupported signing algorithm: " + c.cfg.Algorithm)
	}
	return jwt.NewWithClaims(method, claims).SignedString([]byte(c.cfg.Secret))
}

// Parse decodes and validates a token. Signature, algorithm, expiry,
// issuer and audience are all checked; failures map onto ErrTokenExpired
// or ErrTokenInvalid.
func (c *Codec) Parse(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{},
		func(t *jwt.Token) (any, error) {
			return []byte(c.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{c.cfg.Algorithm}),
		jwt.WithIssuer(c.cfg.Issuer),
		jwt.WithAudience(c.cfg.Audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// SubjectID parses the subject claim into the user's uuid.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
