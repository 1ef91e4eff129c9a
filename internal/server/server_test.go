package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"albi-mall-assistant-be/internal/bootstrap"
	"albi-mall-assistant-be/internal/config"
	"albi-mall-assistant-be/internal/constant"
	"albi-mall-assistant-be/internal/dto"
	"albi-mall-assistant-be/internal/pkg/serverutils"
	"albi-mall-assistant-be/pkg/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basePath = "/api/assistant/v1"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Load()
	cfg.App.LogFilePath = filepath.Join(dir, "app.log")
	cfg.App.TurnLogFilePath = filepath.Join(dir, "turns.log")
	cfg.App.NatsEnabled = false
	cfg.Cache.Driver = "memory"
	cfg.Catalog.Source = "sample"
	cfg.Search.Provider = "local"
	cfg.Ai.LLMProvider = "none"
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()

	products, err := bootstrap.LoadCatalog(context.Background(), cfg)
	require.NoError(t, err)

	container := bootstrap.NewContainer(cfg, products)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, container.ConsumerService.Consume(ctx))
	t.Cleanup(func() {
		cancel()
		container.Close()
	})

	return New(cfg, container).GetApp()
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewBuffer(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func chat(t *testing.T, app *fiber.App, req dto.ChatRequest) dto.ChatResponse {
	t.Helper()
	status, body := do(t, app, http.MethodPost, basePath+"/chat", req)
	require.Equal(t, http.StatusOK, status, string(body))

	var res serverutils.BaseResponse[dto.ChatResponse]
	require.NoError(t, json.Unmarshal(body, &res))
	assert.True(t, res.Success)
	assert.NotEmpty(t, res.Data.AssistantText)
	assert.LessOrEqual(t, len(res.Data.RecommendedProducts), 5)
	return res.Data
}

func ids(res dto.ChatResponse) []string {
	out := make([]string, 0, len(res.RecommendedProducts))
	for _, r := range res.RecommendedProducts {
		out = append(out, r.ID)
	}
	return out
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var res serverutils.BaseResponse[any]
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Success)
	return res.ErrorCode
}

func TestChatScenarios(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	t.Run("red bag under 100", func(t *testing.T) {
		res := chat(t, app, dto.ChatRequest{Message: "red bag under $100"})
		assert.NotEmpty(t, res.SessionID)
		assert.Contains(t, ids(res), "mk-002")
		assert.NotContains(t, ids(res), "mk-004")
	})

	t.Run("tote follow-up", func(t *testing.T) {
		first := chat(t, app, dto.ChatRequest{Message: "show me totes", SessionID: "http-totes"})
		assert.ElementsMatch(t, []string{"mk-001", "mk-002", "mk-011"}, ids(first))

		second := chat(t, app, dto.ChatRequest{Message: "under $100", SessionID: "http-totes"})
		assert.Equal(t, []string{"mk-002"}, ids(second))
		assert.Contains(t, second.AuditNotes, "session context")
	})

	t.Run("brand not carried", func(t *testing.T) {
		res := chat(t, app, dto.ChatRequest{Message: "Gucci bag"})
		assert.Empty(t, res.RecommendedProducts)
		assert.Contains(t, res.AssistantText, "Gucci")
		assert.Contains(t, res.AssistantText, "Michael Kors")
	})
}

func TestChat_StorefrontSessionKeys(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	post := func(body string) dto.ChatEnvelope {
		t.Helper()
		status, data := do(t, app, http.MethodPost, basePath+"/chat", body)
		require.Equal(t, http.StatusOK, status, string(data))
		assert.NotContains(t, string(data), `"session_id"`)

		var env dto.ChatEnvelope
		require.NoError(t, json.Unmarshal(data, &env))
		assert.True(t, env.Success)
		assert.Equal(t, env.SessionID, env.Data.SessionID)
		return env
	}

	first := post(`{"message":"show me totes","sessionId":"storefront-1"}`)
	assert.Equal(t, "storefront-1", first.SessionID)

	second := post(`{"message":"under $100","sessionId":"storefront-1"}`)
	assert.Equal(t, "storefront-1", second.SessionID)
	assert.Equal(t, []string{"mk-002"}, ids(second.Data))
	assert.Contains(t, second.Data.AuditNotes, "session context")

	legacy := post(`{"message":"show me totes","session_id":"legacy-1"}`)
	assert.Equal(t, "legacy-1", legacy.SessionID)
	legacy = post(`{"message":"under $100","session_id":"legacy-1"}`)
	assert.Equal(t, []string{"mk-002"}, ids(legacy.Data))

	fresh := post(`{"message":"red bag"}`)
	assert.NotEmpty(t, fresh.SessionID)
}

func TestChatScenarios_GenerationTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	cfg := testConfig(t)
	cfg.Ai.LLMProvider = "ollama"
	cfg.Ai.LLMBaseURL = slow.URL
	cfg.Ai.LLMModel = "llama3"
	cfg.Ai.LLMTimeout = 50 * time.Millisecond
	app := newTestApp(t, cfg)

	res := chat(t, app, dto.ChatRequest{Message: "black leather tote"})

	products, err := catalog.Sample()
	require.NoError(t, err)
	known := make(map[string]bool)
	for _, p := range products {
		known[p.ID] = true
	}
	require.NotEmpty(t, res.RecommendedProducts)
	for _, id := range ids(res) {
		assert.True(t, known[id], id)
	}
	assert.Contains(t, res.AuditNotes, "used template response")
}

func TestChatValidation(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	cases := []struct {
		name string
		body interface{}
		code string
	}{
		{"malformed body", "{", serverutils.CodeInvalidRequestBody},
		{"missing message", dto.ChatRequest{}, serverutils.CodeValidation},
		{"bad session id", dto.ChatRequest{Message: "tote", SessionID: "not ok!"}, serverutils.CodeValidation},
		{"script", dto.ChatRequest{Message: "<script>alert(1)</script>"}, serverutils.CodeSuspiciousInput},
		{"empty after sanitizing", dto.ChatRequest{Message: "<<>>"}, serverutils.CodeEmptyQuery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, basePath+"/chat", tc.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tc.code, errorCode(t, body))
		})
	}
}

func TestSessionRoutes(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	chat(t, app, dto.ChatRequest{Message: "crossbody bags", SessionID: "http-session"})

	status, body := do(t, app, http.MethodGet, basePath+"/session/http-session", nil)
	require.Equal(t, http.StatusOK, status)
	var sess serverutils.BaseResponse[dto.SessionResponse]
	require.NoError(t, json.Unmarshal(body, &sess))
	assert.Equal(t, "http-session", sess.Data.ID)
	assert.Equal(t, 1, sess.Data.TurnCount)
	assert.Len(t, sess.Data.History, 2)

	status, body = do(t, app, http.MethodGet, basePath+"/sessions", nil)
	require.Equal(t, http.StatusOK, status)
	var list serverutils.BaseResponse[dto.SessionsResponse]
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.Data.Count)
	assert.Equal(t, 1, list.Data.Stats.Active)
	assert.Contains(t, string(body), `"activeSessions":[`)

	status, _ = do(t, app, http.MethodDelete, basePath+"/session/http-session", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = do(t, app, http.MethodDelete, basePath+"/session/http-session", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, serverutils.CodeSessionNotFound, errorCode(t, body))

	status, body = do(t, app, http.MethodGet, basePath+"/session/http-session", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, serverutils.CodeSessionNotFound, errorCode(t, body))
}

func TestCatalogAndHealthRoutes(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	status, body := do(t, app, http.MethodGet, basePath+"/health", nil)
	require.Equal(t, http.StatusOK, status)
	var health serverutils.BaseResponse[dto.HealthResponse]
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "healthy", health.Data.Status)
	assert.Equal(t, constant.ServiceName, health.Data.Service)

	status, body = do(t, app, http.MethodGet, basePath+"/products?category=wallet&limit=1", nil)
	require.Equal(t, http.StatusOK, status)
	var products serverutils.BaseResponse[dto.ProductListResponse]
	require.NoError(t, json.Unmarshal(body, &products))
	require.Equal(t, 1, products.Data.Count)
	assert.Equal(t, "wallet", products.Data.Products[0].Subcategory)

	status, _ = do(t, app, http.MethodGet, basePath+"/products?limit=1000", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodGet, basePath+"/suggested-queries", nil)
	require.Equal(t, http.StatusOK, status)
	var queries serverutils.BaseResponse[[]constant.SuggestedQuery]
	require.NoError(t, json.Unmarshal(body, &queries))
	assert.NotEmpty(t, queries.Data)

	status, _ = do(t, app, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStatsRoute(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	chat(t, app, dto.ChatRequest{Message: "show me totes", SessionID: "stats"})
	chat(t, app, dto.ChatRequest{Message: "under $100", SessionID: "stats"})

	var stats serverutils.BaseResponse[dto.StatsResponse]
	require.Eventually(t, func() bool {
		status, body := do(t, app, http.MethodGet, basePath+"/stats", nil)
		if status != http.StatusOK || json.Unmarshal(body, &stats) != nil {
			return false
		}
		return stats.Data.Turns.TotalTurns == 2
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, 1, stats.Data.Turns.FollowUpTurns)
	assert.Equal(t, 1, stats.Data.Sessions.Total)
	require.NotEmpty(t, stats.Data.Turns.TopProductTypes)
	assert.Equal(t, "tote", stats.Data.Turns.TopProductTypes[0].ProductType)
}
