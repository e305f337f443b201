package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/venn/pkg/config"
	"github.com/matzehuels/venn/pkg/pipeline"
	"github.com/matzehuels/venn/pkg/render/sink"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(pipeline.NewRunner(nil, nil, logger), logger, cfg)
}

func do(t *testing.T, s *Server, method, target, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/healthz", "")
	if id := rec.Header().Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("generated request id = %q, want a UUID", id)
	}

	rec = do(t, s, http.MethodGet, "/healthz", "", RequestIDHeader, "abc-123")
	if id := rec.Header().Get(RequestIDHeader); id != "abc-123" {
		t.Errorf("request id = %q, want caller's", id)
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"tuple", `{"sizes":[1,2,3]}`, []string{"10", "01", "11", "A", "B"}},
		{"mapping", `{"subsets":{"100":1,"010":1,"001":1,"110":1,"101":1,"011":1,"111":1}}`, []string{"111", "C"}},
		{"sets", `{"sets":[["a","b"],["b","c"]]}`, []string{"10", "11", "01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(t, nil), http.MethodPost, "/v1/layout", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if rec.Header().Get("X-Layout-Hash") == "" {
				t.Error("missing X-Layout-Hash")
			}
			d, _, err := sink.ReadJSON(rec.Body.Bytes())
			if err != nil {
				t.Fatalf("ReadJSON: %v", err)
			}
			for _, id := range tt.want {
				if _, ok := d.Label(id); !ok {
					t.Errorf("missing label %s", id)
				}
			}
		})
	}
}

func TestLayoutOverridesDefaults(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Style.SetFontSize = 20 })
	rec := do(t, s, http.MethodPost, "/v1/layout", `{"sizes":[1,2,3],"style":{"subset_font_size":15}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var doc struct {
		Labels []sink.LabelHandle `json:"labels"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	for _, l := range doc.Labels {
		want := 15.0
		if l.Kind == "set" {
			want = 20
		}
		if l.FontSize != want {
			t.Errorf("label %s font size = %v, want %v", l.ID, l.FontSize, want)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		query string
		ctype string
		magic string
	}{
		{"", "image/svg+xml", "<svg"},
		{"?format=svg", "image/svg+xml", "<svg"},
		{"?format=png", "image/png", "\x89PNG"},
		{"?format=json", "application/json", "{"},
	}
	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/render"+tt.query, `{"sizes":[3,2,1,2,1,1,1]}`)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.ctype {
				t.Errorf("Content-Type = %q, want %q", ct, tt.ctype)
			}
			if !bytes.HasPrefix(rec.Body.Bytes(), []byte(tt.magic)) {
				t.Errorf("body starts %q", rec.Body.String()[:min(16, rec.Body.Len())])
			}
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"bad json", http.MethodPost, "/v1/layout", `{`, 400, "INVALID_INPUT"},
		{"unknown field", http.MethodPost, "/v1/layout", `{"sizes":[1,2,3],"colour":1}`, 400, "INVALID_INPUT"},
		{"no input", http.MethodPost, "/v1/layout", `{}`, 400, "INVALID_INPUT"},
		{"two inputs", http.MethodPost, "/v1/layout", `{"sizes":[1,2,3],"sets":[["a"]]}`, 400, "INVALID_INPUT"},
		{"bad arity", http.MethodPost, "/v1/layout", `{"sizes":[1,2]}`, 400, "INVALID_SIZE"},
		{"negative", http.MethodPost, "/v1/layout", `{"sizes":[1,-2,3]}`, 400, "INVALID_SIZE"},
		{"bad style", http.MethodPost, "/v1/layout", `{"sizes":[1,2,3],"style":{"subset_font_size":-1}}`, 400, "INVALID_STYLE"},
		{"bad layout", http.MethodPost, "/v1/layout", `{"sizes":[1,2,3],"layout":{"scale":0}}`, 400, "INVALID_CONFIG"},
		{"bad format", http.MethodPost, "/v1/render?format=gif", `{"sizes":[1,2,3]}`, 400, "INVALID_FORMAT"},
		{"no route", http.MethodGet, "/v2/layout", ``, 404, "NOT_FOUND"},
		{"wrong method", http.MethodGet, "/v1/layout", ``, 405, "METHOD_NOT_ALLOWED"},
	}
	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.target, tt.body, RequestIDHeader, "req-1")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			body := decodeError(t, rec)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
			if body.RequestID != "req-1" {
				t.Errorf("request_id = %q", body.RequestID)
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Server.MaxBodyBytes = 16 })
	rec := do(t, s, http.MethodPost, "/v1/layout", `{"sizes":[1,2,3,4,5,6,7],"title":"far too long"}`)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestServeShutdown(t *testing.T) {
	s := newTestServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
