package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	pkgctx "github.com/baechuer/real-time-ressys/services/account-service/internal/pkg/context"
)

// ---------- helpers ----------

func mustDecodeJSONLine(t *testing.T, b []byte, dst any) {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(dst); err != nil {
		t.Fatalf("decode json: %v, body=%q", err, string(b))
	}
}

func newReqWithBody(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ---------- DecodeJSON tests ----------

type decodeDst struct {
	A string `json:"a"`
	B int    `json:"b"`
}

func TestDecodeJSON_OK_SingleObject(t *testing.T) {
	req := newReqWithBody(t, `{"a":"x","b":1}`)

	var dst decodeDst
	if err := DecodeJSON(req, &dst); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if dst.A != "x" || dst.B != 1 {
		t.Fatalf("unexpected dst: %+v", dst)
	}
}

func TestDecodeJSON_ToleratesUnknownFields(t *testing.T) {
	req := newReqWithBody(t, `{"a":"x","c":"extra"}`)

	var dst decodeDst
	if err := DecodeJSON(req, &dst); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestDecodeJSON_InvalidJSON_ReturnsInvalidJSON(t *testing.T) {
	req := newReqWithBody(t, `{"a":"x",`)

	var dst decodeDst
	if err := DecodeJSON(req, &dst); !domain.Is(err, "invalid_json") {
		t.Fatalf("expected invalid_json, got %v", err)
	}
}

func TestDecodeJSON_WrongType_ReturnsInvalidJSON(t *testing.T) {
	req := newReqWithBody(t, `{"a":1}`)

	var dst decodeDst
	if err := DecodeJSON(req, &dst); !domain.Is(err, "invalid_json") {
		t.Fatalf("expected invalid_json, got %v", err)
	}
}

func TestDecodeJSON_MultipleJSONValues_ReturnsInvalidJSON(t *testing.T) {
	req := newReqWithBody(t, `{}`+`{}`)

	var dst map[string]any
	if err := DecodeJSON(req, &dst); !domain.Is(err, "invalid_json") {
		t.Fatalf("expected invalid_json, got %v", err)
	}
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	req := newReqWithBody(t, `{"a":"`+strings.Repeat("x", 64)+`"}`)
	rr := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rr, req.Body, 16)

	var dst decodeDst
	err := DecodeJSON(req, &dst)
	if !domain.Is(err, "invalid_json") {
		t.Fatalf("expected invalid_json, got %v", err)
	}
	var de *domain.Error
	if !errors.As(err, &de) || de.Meta["reason"] != "body too large" {
		t.Fatalf("expected body too large reason, got %+v", de)
	}
}

// ---------- WriteError / status mapping tests ----------

func TestWriteError_DomainError_MapsStatusCodeAndPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req = req.WithContext(pkgctx.WithRequestID(req.Context(), "req-123"))

	rr := httptest.NewRecorder()
	WriteError(rr, req, domain.ErrMissingField("email"))

	res := rr.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("expected content-type json, got %q", ct)
	}

	var body ErrorBody
	mustDecodeJSONLine(t, rr.Body.Bytes(), &body)

	if body.Error.Code != "missing_field" {
		t.Fatalf("expected code missing_field, got %q", body.Error.Code)
	}
	if body.Error.Meta["field"] != "email" {
		t.Fatalf("expected meta.field=email, got %+v", body.Error.Meta)
	}
	if body.Error.RequestID != "req-123" {
		t.Fatalf("expected request_id req-123, got %q", body.Error.RequestID)
	}
}

func TestWriteError_NonDomainError_HidesDetailsAndReturns500(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rr := httptest.NewRecorder()

	WriteError(rr, req, assertErr("boom: secret detail"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "secret detail") {
		t.Fatalf("cause leaked: %q", rr.Body.String())
	}

	var body ErrorBody
	mustDecodeJSONLine(t, rr.Body.Bytes(), &body)
	if body.Error.Code != "internal_error" || body.Error.Message != "internal error" {
		t.Fatalf("unexpected payload: %+v", body.Error)
	}
	if len(body.Error.Meta) != 0 {
		t.Fatalf("expected empty meta, got %+v", body.Error.Meta)
	}
}

func TestWriteError_StoreUnavailable_DoesNotLeakCause(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rr := httptest.NewRecorder()

	WriteError(rr, req, domain.ErrStoreUnavailable(errors.New("dial tcp 10.0.0.5:5432")))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "10.0.0.5") {
		t.Fatalf("cause leaked: %q", rr.Body.String())
	}
}

func TestStatusFromKind_Mapping(t *testing.T) {
	cases := []struct {
		kind domain.ErrKind
		want int
	}{
		{domain.KindValidation, http.StatusBadRequest},
		{domain.KindConflict, http.StatusBadRequest},
		{domain.KindAuth, http.StatusBadRequest},
		{domain.KindNotFound, http.StatusNotFound},
		{domain.KindInfrastructure, http.StatusInternalServerError},
		{domain.KindInternal, http.StatusInternalServerError},
		{"unknown", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusFromKind(tc.kind); got != tc.want {
			t.Fatalf("kind=%q expected %d got %d", tc.kind, tc.want, got)
		}
	}
}

// ---------- RequestIDFromContext tests ----------

func TestRequestIDFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if got := RequestIDFromContext(req); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}

	req = req.WithContext(pkgctx.WithRequestID(req.Context(), "rid-1"))
	if got := RequestIDFromContext(req); got != "rid-1" {
		t.Fatalf("expected rid-1, got %q", got)
	}
}

// ---------- Success helpers tests ----------

func TestWriteJSON_SetsDefaultContentType(t *testing.T) {
	rr := httptest.NewRecorder()

	WriteJSON(rr, http.StatusOK, map[string]any{"ok": true})

	if ct := rr.Result().Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("expected json content-type, got %q", ct)
	}
	var m map[string]any
	mustDecodeJSONLine(t, rr.Body.Bytes(), &m)
	if m["ok"] != true {
		t.Fatalf("expected ok=true, got %+v", m)
	}
}

func TestOK_WrapsEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()

	OK(rr, map[string]any{"x": 1})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var env Envelope
	mustDecodeJSONLine(t, rr.Body.Bytes(), &env)

	m, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected map data, got %T", env.Data)
	}
	if m["x"] != float64(1) {
		t.Fatalf("expected x=1, got %+v", m)
	}
}

// ---------- tiny helper error type ----------

type assertErr string

func (e assertErr) Error() string { return string(e) }

func TestWriteJSON_UnencodableValue_Returns500(t *testing.T) {
	rr := httptest.NewRecorder()

	OK(rr, map[string]any{"ch": make(chan int)})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var eb struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	mustDecodeJSONLine(t, rr.Body.Bytes(), &eb)
	if eb.Error.Code != "internal_error" {
		t.Fatalf("expected internal_error, got %+v", eb)
	}
}
