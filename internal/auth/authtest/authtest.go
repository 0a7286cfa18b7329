// Package authtest issues access tokens signed by an in-memory RSA key and
// serves the matching JWKS, for tests that exercise authenticated routes.
package authtest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const KeyID = "test-key"

// Issuer signs tokens the way the auth service does.
type Issuer struct {
	key *rsa.PrivateKey
}

func NewIssuer(t testing.TB) *Issuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	return &Issuer{key: key}
}

// Token returns an RS256 token for userID with role, valid for an hour.
func (i *Issuer) Token(t testing.TB, userID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":    userID,
		"userId": userID,
		"role":   role,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	return i.sign(t, claims)
}

// ExpiredToken returns a token whose exp lies in the past.
func (i *Issuer) ExpiredToken(t testing.TB, userID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	return i.sign(t, claims)
}

func (i *Issuer) sign(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = KeyID
	s, err := token.SignedString(i.key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// Keyfunc resolves every token to the issuer's public key.
func (i *Issuer) Keyfunc(*jwt.Token) (any, error) {
	return &i.key.PublicKey, nil
}

// JWKS renders the public key as a JSON Web Key Set.
func (i *Issuer) JWKS() []byte {
	pub := i.key.PublicKey
	set := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": KeyID,
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
	b, err := json.Marshal(set)
	if err != nil {
		panic(fmt.Sprintf("marshal jwks: %v", err))
	}
	return b
}

// JWKSHandler serves JWKS() as application/json.
func (i *Issuer) JWKSHandler() http.Handler {
	body := i.JWKS()
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
}
