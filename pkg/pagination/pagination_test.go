package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", p.Limit, DefaultLimit)
	}
	if p.Offset != 0 {
		t.Errorf("Offset = %d, want 0", p.Offset)
	}
}

func TestFromContext_Clamping(t *testing.T) {
	p := paramsFor(t, "limit=500&offset=-3")
	if p.Limit != MaxLimit {
		t.Errorf("Limit = %d, want %d", p.Limit, MaxLimit)
	}
	if p.Offset != 0 {
		t.Errorf("Offset = %d, want 0", p.Offset)
	}

	p = paramsFor(t, "limit=abc")
	if p.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d for non-numeric input", p.Limit, DefaultLimit)
	}
}

func TestResponse_HasMore(t *testing.T) {
	r := NewResponse(nil, 50, 20, 20)
	if !r.HasMore {
		t.Error("expected HasMore for offset 20 of 50")
	}
	r = NewResponse(nil, 50, 20, 40)
	if r.HasMore {
		t.Error("did not expect HasMore on the last page")
	}
}

func TestParams_NextOffset(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}
	if got := p.NextOffset(); got != 60 {
		t.Errorf("NextOffset() = %d, want 60", got)
	}
	if !p.HasNext(100) {
		t.Error("expected HasNext with 100 total")
	}
	if p.HasNext(60) {
		t.Error("did not expect HasNext with 60 total")
	}
}
