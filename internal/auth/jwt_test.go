package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rushi-mungse/product-microservice/internal/auth"
	"github.com/rushi-mungse/product-microservice/internal/auth/authtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := auth.ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, r)

	for _, bad := range []string{"", "ADMIN", "Admin", "admin ", "superuser"} {
		_, err := auth.ParseRole(bad)
		assert.Error(t, err, bad)
	}
}

func TestVerify_ValidToken(t *testing.T) {
	issuer := authtest.NewIssuer(t)
	v := auth.NewVerifier(issuer.Keyfunc)

	id, err := v.Verify(context.Background(), issuer.Token(t, "1", "admin"))
	require.NoError(t, err)
	assert.Equal(t, "1", id.UserID)
	assert.Equal(t, auth.RoleAdmin, id.Role)
}

func TestVerify_UnknownRoleYieldsEmptyRole(t *testing.T) {
	issuer := authtest.NewIssuer(t)
	v := auth.NewVerifier(issuer.Keyfunc)

	id, err := v.Verify(context.Background(), issuer.Token(t, "7", "root"))
	require.NoError(t, err)
	assert.Equal(t, auth.Role(""), id.Role)
}

func TestVerify_Rejects(t *testing.T) {
	issuer := authtest.NewIssuer(t)
	other := authtest.NewIssuer(t)
	v := auth.NewVerifier(issuer.Keyfunc)

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrTokenMissing)

	_, err = v.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)

	_, err = v.Verify(context.Background(), issuer.ExpiredToken(t, "1", "admin"))
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)

	_, err = v.Verify(context.Background(), other.Token(t, "1", "admin"))
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestJWKSVerifier(t *testing.T) {
	issuer := authtest.NewIssuer(t)
	srv := httptest.NewServer(issuer.JWKSHandler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v, err := auth.NewJWKSVerifier(ctx, srv.URL)
	require.NoError(t, err)

	id, err := v.Verify(ctx, issuer.Token(t, "42", "customer"))
	require.NoError(t, err)
	assert.Equal(t, "42", id.UserID)
	assert.Equal(t, auth.RoleCustomer, id.Role)
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, auth.TokenFromRequest(req))

	req.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", auth.TokenFromRequest(req))

	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: "cookie-token"})
	assert.Equal(t, "cookie-token", auth.TokenFromRequest(req))
}
