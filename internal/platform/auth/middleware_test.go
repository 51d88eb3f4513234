package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func newJWKSServer(t *testing.T, key *rsa.PublicKey, kid string, fetches *int64) *httptest.Server {
	t.Helper()
	jwks := JWKSResponse{Keys: []JWKSKey{{
		Kty: "RSA",
		Kid: kid,
		Use: "sig",
		Alg: "RS256",
		N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
	}}}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(fetches, 1)
		json.NewEncoder(w).Encode(jwks)
	}))
}

func signedToken(t *testing.T, key *rsa.PrivateKey, kid string) string {
	t.Helper()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:  "Test User",
		Roles: []string{RoleDentist},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func authenticatedRequest(t *testing.T, mw echo.MiddlewareFunc, bearer string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestJWTMiddleware_JWKSCacheSurvivesRequests(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	var fetches int64
	srv := newJWKSServer(t, &key.PublicKey, "key-1", &fetches)
	defer srv.Close()

	mw := JWTMiddleware(JWTConfig{JWKSURL: srv.URL})
	bearer := signedToken(t, key, "key-1")

	for i := 0; i < 3; i++ {
		if err := authenticatedRequest(t, mw, bearer); err != nil {
			t.Fatalf("request %d rejected: %v", i+1, err)
		}
	}

	if got := atomic.LoadInt64(&fetches); got != 1 {
		t.Errorf("JWKS endpoint fetched %d times for 3 requests, want 1", got)
	}
}

func TestJWKSCache_StaleKeysServeThroughOutage(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	var fetches int64
	srv := newJWKSServer(t, &key.PublicKey, "key-1", &fetches)

	// TTL 0 forces a refetch attempt on every lookup.
	cache := NewJWKSCache(srv.URL, 0)
	if _, err := cache.GetKey("key-1"); err != nil {
		t.Fatalf("initial fetch failed: %v", err)
	}

	srv.Close()
	got, err := cache.GetKey("key-1")
	if err != nil {
		t.Fatalf("expected stale key while endpoint is down, got %v", err)
	}
	if got.N.Cmp(key.PublicKey.N) != 0 {
		t.Error("stale key does not match the originally fetched key")
	}
}

func TestJWTMiddleware_RejectsUnsignedRequests(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{SigningKey: []byte("test-key")})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer token, got %v", err)
	}
}
