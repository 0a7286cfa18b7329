package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenCookie is the cookie the auth service sets on login.
const AccessTokenCookie = "accessToken"

var (
	ErrTokenMissing = errors.New("access token missing")
	ErrTokenInvalid = errors.New("access token invalid")
)

// Claims is the payload issued by the auth service.
type Claims struct {
	UserID any    `json:"userId,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the verified caller. Role is empty when the token carried a
// role outside the known set.
type Identity struct {
	UserID string
	Role   Role
}

// Verifier validates a signed access token and extracts the identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// JWTVerifier checks asymmetric signatures against the keys returned by
// its key function.
type JWTVerifier struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
}

// NewVerifier builds a verifier around a fixed key function.
func NewVerifier(kf jwt.Keyfunc) *JWTVerifier {
	return &JWTVerifier{
		keyfunc: kf,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256", "ES384"}),
		),
	}
}

// NewJWKSVerifier fetches the key set at url and keeps it refreshed in the
// background until ctx is done.
func NewJWKSVerifier(ctx context.Context, url string) (*JWTVerifier, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{url})
	if err != nil {
		return nil, fmt.Errorf("load jwks from %s: %w", url, err)
	}
	return NewVerifier(k.Keyfunc), nil
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, v.keyfunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	id := &Identity{UserID: claims.Subject}
	if claims.UserID != nil {
		id.UserID = fmt.Sprint(claims.UserID)
	}
	if role, err := ParseRole(claims.Role); err == nil {
		id.Role = role
	}
	return id, nil
}

// TokenFromRequest reads the accessToken cookie, falling back to a Bearer
// Authorization header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
