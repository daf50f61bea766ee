package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"turingregex/internal/config"
	"turingregex/internal/interpreter"
)

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, New(config.DefaultConfig()), http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected %d %s", rec.Code, rec.Body.String())
	}
}

func TestCompile(t *testing.T) {
	s := New(config.DefaultConfig())
	rec := do(t, s, http.MethodPost, "/api/compile", `{"pattern":"a|bc|d"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected %d %s", rec.Code, rec.Body.String())
	}
	var resp CompileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.DFA.States) != 3 {
		t.Fatalf("want 3 DFA states got %d", len(resp.DFA.States))
	}
	if resp.Program.Initial != "regex0" || resp.Format != "text" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if !strings.HasPrefix(resp.Output, "name: Accepts inputs matching regex 'a|bc|d'") {
		t.Fatalf("unexpected output %q", resp.Output)
	}
}

func TestCompileYAML(t *testing.T) {
	rec := do(t, New(config.DefaultConfig()), http.MethodPost, "/api/compile",
		`{"pattern":"(a+b)+","alphabet":"abc","mode":"find","format":"yaml"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected %d %s", rec.Code, rec.Body.String())
	}
	var resp CompileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Output, "start state: regex_find0") {
		t.Fatalf("unexpected output:\n%s", resp.Output)
	}
}

func TestCompileErrors(t *testing.T) {
	s := New(config.DefaultConfig())
	rec := do(t, s, http.MethodPost, "/api/compile", `{"pattern":"a(b"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400 got %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Offset == nil || *resp.Offset != 3 {
		t.Fatalf("want offset 3 got %+v", resp)
	}

	rec = do(t, s, http.MethodPost, "/api/compile", `{"pattern":"a","mode":"find"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "alphabet") {
		t.Fatalf("want alphabet error got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodPost, "/api/compile", `{"pattern":"a","format":"xml"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400 for unknown format got %d", rec.Code)
	}
}

func TestRun(t *testing.T) {
	s := New(config.DefaultConfig())
	rec := do(t, s, http.MethodPost, "/api/run",
		`{"pattern":"(a+b)+","alphabet":"abc","mode":"find","reject":"regex_reject","input":"abaaaaaaaaaaa"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected %d %s", rec.Code, rec.Body.String())
	}
	var res interpreter.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	want := interpreter.Result{Accepted: true, State: "regex_accept", Steps: 31, Tape: "ab", Head: 1}
	if res != want {
		t.Fatalf("want %v got %v", want, res)
	}

	rec = do(t, s, http.MethodPost, "/api/run", `{"pattern":"(a+b)+","alphabet":"abc","mode":"find","input":"abaaaaaaaaaaa","max_steps":10}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want 422 on step limit got %d %s", rec.Code, rec.Body.String())
	}
}
