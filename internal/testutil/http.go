package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ErrorBody is the JSON shape of every handler error response.
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// Serve runs method+path against h and returns the recorded response.
func Serve(h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	return ServeRequest(h, httptest.NewRequest(method, path, body))
}

// ServeRequest runs a prepared request against h.
func ServeRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected status %d, got %d (body %q)", want, rr.Code, rr.Body.String())
	}
}

// AssertError checks status and error message and returns the decoded body.
// An empty message only requires the field to be present.
func AssertError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) ErrorBody {
	t.Helper()
	AssertStatus(t, rr, status)
	var body ErrorBody
	DecodeJSON(t, rr, &body)
	switch {
	case message == "" && body.Error == "":
		t.Fatalf("expected error field in response")
	case message != "" && body.Error != message:
		t.Fatalf("expected error %q, got %q", message, body.Error)
	}
	return body
}

// DecodeJSON decodes the recorder body into dest, failing the test on error.
func DecodeJSON(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dest); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
