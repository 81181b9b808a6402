package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dpersh/robot/api/exploration"
	"github.com/dpersh/robot/api/i"
	"github.com/dpersh/robot/api/identity"
	dmn "github.com/dpersh/robot/domain"
	"github.com/dpersh/robot/infrastruture/repo"
	"github.com/dpersh/robot/infrastruture/token"
	"github.com/dpersh/robot/service"
	svc_i "github.com/dpersh/robot/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const operatorKey = "correct-horse-battery-staple"

type keyVerifier struct{}

func (keyVerifier) VerifyKey(key string) bool { return key == operatorKey }

type reportStore struct {
	mu      sync.Mutex
	reports map[uuid.UUID]dmn.Report
	err     error
}

func (s *reportStore) Save(_ context.Context, r *dmn.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *r
	stored.Map, stored.Layout = "", ""
	s.reports[r.ID] = stored
	return nil
}

func (s *reportStore) ByID(_ context.Context, id uuid.UUID) (*dmn.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	r, ok := s.reports[id]
	if !ok {
		return nil, repo.ErrReportNotFound
	}
	return &r, nil
}

func newTestEngine(t *testing.T) (*gin.Engine, *token.JwtService) {
	t.Helper()
	return newEngineWithReports(t, &reportStore{reports: make(map[uuid.UUID]dmn.Report)})
}

func newEngineWithReports(t *testing.T, reports svc_i.ReportRepo) (*gin.Engine, *token.JwtService) {
	t.Helper()

	jwt, err := token.NewJwtService("test-secret", "robot")
	require.NoError(t, err)

	auth, err := service.NewAuthService(keyVerifier{}, jwt, time.Hour)
	require.NoError(t, err)

	svc, err := service.NewExplorationService(&service.Config{
		Reports: reports,
	})
	require.NoError(t, err)

	router := NewRouter(Config{
		BaseURL:                 "/api",
		Mode:                    gin.TestMode,
		Controllers:             []i.Controller{identity.NewIdentityServer(auth), exploration.NewController(svc)},
		AuthorizationMiddleware: identity.Authoriz(jwt, dmn.ScopeExplore),
	})
	return router.Engine(), jwt
}

func do(engine *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func issueToken(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	rec := do(engine, http.MethodPost, "/api/v1/auth/token", "", gin.H{"key": operatorKey})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp identity.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestAuthRoutes(t *testing.T) {
	engine, jwt := newTestEngine(t)

	t.Run("Wrong key", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/auth/token", "", gin.H{"key": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Missing key", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/auth/token", "", gin.H{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Run requires a token", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/explorations", "", gin.H{"width": 3, "height": 3})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Malformed authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/explorations", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Run requires the explore scope", func(t *testing.T) {
		tok, err := jwt.Generate("operator", []string{"read"}, time.Minute)
		require.NoError(t, err)

		rec := do(engine, http.MethodPost, "/api/v1/explorations", tok, gin.H{"width": 3, "height": 3})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestExplorationRoutes(t *testing.T) {
	engine, _ := newTestEngine(t)
	tok := issueToken(t, engine)

	var created dmn.Report
	t.Run("Run explores the whole world", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/explorations", tok, gin.H{"width": 5, "height": 5, "density": 0, "seed": 3})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, 25, created.Visited)
		assert.True(t, created.ReturnedHome)
		assert.NotEmpty(t, created.Map)
	})

	t.Run("Stored report", func(t *testing.T) {
		rec := do(engine, http.MethodGet, "/api/v1/explorations/"+created.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got dmn.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, 25, got.Visited)
		assert.Empty(t, got.Map)
	})

	t.Run("Unknown report", func(t *testing.T) {
		rec := do(engine, http.MethodGet, "/api/v1/explorations/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Invalid id", func(t *testing.T) {
		rec := do(engine, http.MethodGet, "/api/v1/explorations/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Density out of range", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/explorations", tok, gin.H{"density": 2})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Half a start position", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/explorations", tok, gin.H{"start_row": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Start outside the world", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/explorations", tok, gin.H{"width": 3, "height": 3, "start_row": 50, "start_col": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Start on the border ring", func(t *testing.T) {
		rec := do(engine, http.MethodPost, "/api/v1/explorations", tok, gin.H{"width": 3, "height": 3, "density": 0, "start_row": 0, "start_col": 2})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Leaderboard without ranking storage", func(t *testing.T) {
		rec := do(engine, http.MethodGet, "/api/v1/leaderboard?width=5&height=5", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("Leaderboard with bad query", func(t *testing.T) {
		rec := do(engine, http.MethodGet, "/api/v1/leaderboard?n=many", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReportErrors(t *testing.T) {
	t.Run("Storage failure", func(t *testing.T) {
		engine, _ := newEngineWithReports(t, &reportStore{err: errors.New("connection reset")})
		rec := do(engine, http.MethodGet, "/api/v1/explorations/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})

	t.Run("Report storage not configured", func(t *testing.T) {
		engine, _ := newEngineWithReports(t, nil)
		rec := do(engine, http.MethodGet, "/api/v1/explorations/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
