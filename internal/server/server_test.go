package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records completion requests and replays a canned answer.
type fakeClient struct {
	mu       sync.Mutex
	requests []llm.CompletionRequest
	resp     *llm.Completion
	err      error
}

func (f *fakeClient) Complete(_ context.Context, req llm.CompletionRequest) (*llm.Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.resp, f.err
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) last(t *testing.T) llm.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

type fakePDF struct {
	html string
	err  error
}

func (f *fakePDF) RenderPDF(_ context.Context, html string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", AllowedOrigins: []string{"*"}},
		LLM:    *llm.DefaultConfig(),
	}
}

func newTestServer(t *testing.T, client *fakeClient, mutate ...func(*Options)) *Server {
	opts := Options{Config: testConfig(), Client: client}
	for _, m := range mutate {
		m(&opts)
	}
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Options{Client: &fakeClient{}})
	assert.Error(t, err)
	_, err = New(Options{Config: testConfig()})
	assert.Error(t, err)
}

func TestNew_Addr(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Port = "9090"
	s, err := New(Options{Config: cfg, Client: &fakeClient{}})
	require.NoError(t, err)
	assert.Equal(t, ":9090", s.Addr())
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &fakeClient{})
	w := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleChat_ResumeUpdate(t *testing.T) {
	content := `Here you go {"resumeData":{"personalInfo":{"name":"Jane Doe","email":"j@x.com"}}}`
	client := &fakeClient{resp: &llm.Completion{Content: content, ReasoningDetails: []byte(`[{"type":"reasoning.text","text":"hmm"}]`)}}
	s := newTestServer(t, client)

	w := do(t, s, http.MethodPost, "/api/chat", `{"messages":[{"role":"assistant","content":"Hello!"},{"role":"user","content":"I'm Jane"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[types.ChatResponse](t, w)
	assert.Equal(t, content, resp.Message)
	assert.Equal(t, types.RoleAssistant, resp.Role)
	require.NotNil(t, resp.JSONData)
	assert.Equal(t, "Jane Doe", resp.JSONData.PersonalInfo.Name)
	assert.Equal(t, "", resp.JSONData.PersonalInfo.Phone)
	assert.NotNil(t, resp.JSONData.Experience)
	assert.JSONEq(t, `[{"type":"reasoning.text","text":"hmm"}]`, string(resp.ReasoningDetails))

	req := client.last(t)
	require.Len(t, req.Messages, 3)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, prompts.ResumeSystem(), req.Messages[0].Content)
	assert.True(t, req.Reasoning)
	assert.Equal(t, llm.DefaultMaxTokens, req.MaxTokens)
}

func TestHandleChat_PlainReply(t *testing.T) {
	client := &fakeClient{resp: &llm.Completion{Content: "What roles have you held?"}}
	s := newTestServer(t, client)

	w := do(t, s, http.MethodPost, "/api/chat", `{"messages":[{"role":"user","content":"hi"},{"role":"assistant","content":"Hello"},{"role":"user","content":"again"}],"useReasoning":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Contains(t, raw, "json_data")
	assert.Nil(t, raw["json_data"])
	assert.Equal(t, "What roles have you held?", raw["message"])

	req := client.last(t)
	assert.False(t, req.Reasoning)
	assert.Len(t, req.Messages, 3, "no system prompt after the first turn")
}

func TestHandleChat_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{`},
		{name: "missing messages", body: `{}`},
		{name: "messages not an array", body: `{"messages":"hi"}`},
		{name: "empty messages", body: `{"messages":[]}`},
		{name: "invalid role", body: `{"messages":[{"role":"tool","content":"x"}]}`},
		{name: "non-boolean useReasoning", body: `{"messages":[{"role":"user","content":"hi"}],"useReasoning":"yes"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{resp: &llm.Completion{Content: "unused"}}
			s := newTestServer(t, client)

			w := do(t, s, http.MethodPost, "/api/chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeBody[types.ErrorResponse](t, w)
			assert.Equal(t, "Messages array is required", resp.Error)
			assert.NotEmpty(t, resp.Details)
			assert.Empty(t, client.requests)
		})
	}
}

func TestHandleChat_DecodeErrorDetails(t *testing.T) {
	client := &fakeClient{resp: &llm.Completion{Content: "unused"}}
	s := newTestServer(t, client)

	w := do(t, s, http.MethodPost, "/api/chat", `{"messages":[{"role":"user","content":"hi"}],"useReasoning":"yes"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[types.ErrorResponse](t, w)
	assert.Equal(t, "Messages array is required", resp.Error)
	assert.Contains(t, resp.Details, "useReasoning")
}

func TestHandleChat_UpstreamFailure(t *testing.T) {
	client := &fakeClient{err: &llm.UpstreamError{Provider: "OpenRouter", StatusCode: 429, Body: "rate limited"}}
	s := newTestServer(t, client)

	w := do(t, s, http.MethodPost, "/api/chat", `{"messages":[{"role":"user","content":"hi"}]}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeBody[types.ErrorResponse](t, w)
	assert.Equal(t, "Failed to process chat request", resp.Error)
	assert.Equal(t, "OpenRouter API error: 429 - rate limited", resp.Details)
}

func TestHandleChat_WrongMethod(t *testing.T) {
	s := newTestServer(t, &fakeClient{})
	w := do(t, s, http.MethodGet, "/api/chat", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleDownload(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	t.Run("post default filename", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/download-resume", `{"markdown":"# Jane Doe\n"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/markdown; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="resume.md"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "# Jane Doe\n", w.Body.String())
	})

	t.Run("post sanitizes filename", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/download-resume", `{"markdown":"x","filename":"../evil\"name.md"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="evil_name.md"`, w.Header().Get("Content-Disposition"))
	})

	t.Run("post missing markdown", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/download-resume", `{"filename":"a.md"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/download-resume?content=%23+Jane&filename=jane.md", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="jane.md"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "# Jane", w.Body.String())
	})

	t.Run("get missing content", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/download-resume", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGenerateMarkdown(t *testing.T) {
	client := &fakeClient{resp: &llm.Completion{Content: "```markdown\n# Jane Doe\n\n## Summary\nEngineer\n```"}}
	s := newTestServer(t, client)

	w := do(t, s, http.MethodPost, "/api/generate-markdown", `{"messages":[{"role":"user","content":"I'm Jane"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[types.MarkdownResponse](t, w)
	assert.Equal(t, "# Jane Doe\n\n## Summary\nEngineer", resp.Markdown)
	assert.True(t, strings.HasPrefix(resp.Filename, "jane-doe-"))
	assert.True(t, strings.HasSuffix(resp.Filename, ".md"))

	req := client.last(t)
	assert.Equal(t, prompts.MarkdownSystem(), req.Messages[0].Content)
	assert.Equal(t, llm.DefaultMarkdownMaxTokens, req.MaxTokens)
}

func TestHandleGenerateMarkdown_UpstreamFailure(t *testing.T) {
	s := newTestServer(t, &fakeClient{err: errors.New("connection reset")})
	w := do(t, s, http.MethodPost, "/api/generate-markdown", `{"messages":[{"role":"user","content":"hi"}]}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "connection reset", decodeBody[types.ErrorResponse](t, w).Details)
}

const renderBody = `{"personalInfo":{"name":"Jane Doe","phone":5551234},"summary":"Engineer","certifications":[{"name":"AWS CCP","issuer":"Amazon","date":"2023"}]}`

func TestHandleRender(t *testing.T) {
	pdf := &fakePDF{}
	s := newTestServer(t, &fakeClient{}, func(o *Options) { o.PDF = pdf })

	t.Run("markdown by default", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/render", renderBody)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "# Jane Doe")
		assert.Contains(t, w.Body.String(), "**AWS CCP** - Amazon (2023)")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "jane-doe-")
	})

	t.Run("html", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/render?format=html", renderBody)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "Jane Doe")
		assert.Contains(t, w.Body.String(), "5551234")
	})

	t.Run("pdf", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/render?format=PDF", renderBody)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
		assert.Contains(t, pdf.html, "Jane Doe")
	})

	t.Run("unknown format", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/render?format=docx", renderBody)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/render", `{"summary":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid resume data", decodeBody[types.ErrorResponse](t, w).Error)
	})
}

func TestHandleRender_PDFUnavailable(t *testing.T) {
	s := newTestServer(t, &fakeClient{})
	w := do(t, s, http.MethodPost, "/api/render?format=pdf", renderBody)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestAuth(t *testing.T) {
	client := &fakeClient{resp: &llm.Completion{Content: "hi"}}
	s := newTestServer(t, client, func(o *Options) {
		o.Config.Auth = config.AuthConfig{JWTSecret: testSecret, ExpirationHours: 1}
	})
	token, err := NewJWTService(&config.AuthConfig{JWTSecret: testSecret, ExpirationHours: 1}).GenerateToken("jane")
	require.NoError(t, err)

	body := `{"messages":[{"role":"user","content":"hi"}]}`

	w := do(t, s, http.MethodPost, "/api/chat", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodOptions, "/api/chat", "").Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, &fakeClient{}, func(o *Options) {
		o.Config.Server.AllowedOrigins = []string{"http://localhost:3000"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	client := &fakeClient{resp: &llm.Completion{Content: `{"resumeData":{"summary":"x"}}`}}
	s := newTestServer(t, client)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/chat", `{"messages":[{"role":"user","content":"hi"}]}`).Code)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `resume_builder_chat_replies_total{kind="`+string(parsing.KindResumeUpdate)+`"} 1`)
	assert.Contains(t, body, `resume_builder_http_requests_total{method="POST",path="/api/chat",status="200"} 1`)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/chat", routeLabel("/api/chat"))
	assert.Equal(t, "/api/other", routeLabel("/api/unknown/123"))
	assert.Equal(t, "other", routeLabel("/favicon.ico"))
}
