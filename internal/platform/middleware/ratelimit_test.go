package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func limitedRequest(t *testing.T, mw echo.MiddlewareFunc, deviceID string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if deviceID != "" {
		req.Header.Set("X-Device-ID", deviceID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRateLimit_ExhaustsBurst(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	for i := 0; i < 2; i++ {
		if err := limitedRequest(t, mw, "tablet-1"); err != nil {
			t.Fatalf("request %d within burst rejected: %v", i+1, err)
		}
	}

	err := limitedRequest(t, mw, "tablet-1")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %v", err)
	}
}

func TestRateLimit_DevicesHaveSeparateBuckets(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})

	if err := limitedRequest(t, mw, "tablet-1"); err != nil {
		t.Fatalf("first device rejected: %v", err)
	}
	if err := limitedRequest(t, mw, "tablet-1"); err == nil {
		t.Fatal("expected first device to be exhausted")
	}
	if err := limitedRequest(t, mw, "tablet-2"); err != nil {
		t.Fatalf("second device should have its own bucket, got %v", err)
	}
}

func TestTokenBucket_Refills(t *testing.T) {
	b := newTokenBucket(1000, 1)
	if !b.allow() {
		t.Fatal("fresh bucket should allow")
	}
	time.Sleep(5 * time.Millisecond)
	if !b.allow() {
		t.Fatal("bucket did not refill at 1000 tokens/sec")
	}
}
