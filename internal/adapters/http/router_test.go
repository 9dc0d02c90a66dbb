package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkeye/CodeRoom/internal/app"
	"github.com/dkeye/CodeRoom/internal/app/orch"
	"github.com/dkeye/CodeRoom/internal/config"
	"github.com/dkeye/CodeRoom/internal/core"
	"github.com/dkeye/CodeRoom/internal/domain"
	"github.com/dkeye/CodeRoom/internal/runner"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExecutor struct {
	res  runner.Result
	err  error
	lang string
}

func (s *stubExecutor) Execute(_ context.Context, language, _ string) (runner.Result, error) {
	s.lang = language
	return s.res, s.err
}

func newTestRouter(t *testing.T, exec runner.Executor) (*gin.Engine, *orch.Orchestrator) {
	t.Helper()
	return newTestRouterWithStatic(t, exec, t.TempDir())
}

func newTestRouterWithStatic(t *testing.T, exec runner.Executor, static string) (*gin.Engine, *orch.Orchestrator) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	o := orch.New(app.NewRegistry(), app.NewRoomManager(), app.SimplePolicy{}, 16)
	cfg := &config.Config{Mode: "test", StaticPath: static, Secret: "test-secret"}
	return SetupRouter(context.Background(), cfg, o, exec), o
}

func do(r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t, &stubExecutor{})
	w := do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","connections":0,"rooms":0}`, w.Body.String())
}

func TestIndexServedFromStaticDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>CodeRoom</h1>"), 0o600))
	r, _ := newTestRouterWithStatic(t, &stubExecutor{}, dir)

	w := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CodeRoom")
}

func TestShippedIndexServed(t *testing.T) {
	r, _ := newTestRouterWithStatic(t, &stubExecutor{}, filepath.Join("..", "..", "..", "web"))

	w := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/ws")
}

func TestMissingStaticDirKeepsAPI(t *testing.T) {
	r, _ := newTestRouterWithStatic(t, &stubExecutor{}, filepath.Join(t.TempDir(), "absent"))

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "").Code)
}

func TestClientTokenCookie(t *testing.T) {
	r, _ := newTestRouter(t, &stubExecutor{})
	w := do(r, http.MethodGet, "/healthz", "")

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "ct" {
			found = true
			assert.NotEmpty(t, c.Value)
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found)
}

func TestRooms(t *testing.T) {
	r, o := newTestRouter(t, &stubExecutor{})

	w := do(r, http.MethodPost, "/api/rooms", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		RoomID string `json:"roomId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Len(t, created.RoomID, roomIDLength)
	_, err := domain.ParseRoomID(created.RoomID)
	assert.NoError(t, err)

	w = do(r, http.MethodGet, "/api/rooms/"+created.RoomID, "")
	assert.Equal(t, http.StatusNotFound, w.Code, "ids are minted, rooms appear on join")

	room, _ := o.Rooms.GetOrCreate("r1")
	p, err := domain.NewParticipant("Ann")
	require.NoError(t, err)
	room.Join(*p)

	w = do(r, http.MethodGet, "/api/rooms/r1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info core.RoomInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, core.RoomInfo{ID: "r1", MemberCount: 1, Host: "Ann"}, info)

	w = do(r, http.MethodGet, "/api/rooms", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"roomId":"r1","members":1,"host":"Ann"}]`, w.Body.String())
}

func TestProfileRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t, &stubExecutor{})

	w := do(r, http.MethodPost, "/api/profile", `{"displayName":"  Ann  "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"displayName":"Ann"}`, w.Body.String())

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionName {
			session = c
		}
	}
	require.NotNil(t, session)

	w = do(r, http.MethodGet, "/api/profile", "", session)
	assert.JSONEq(t, `{"displayName":"Ann"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/profile", "")
	assert.JSONEq(t, `{"displayName":""}`, w.Body.String())
}

func TestProfileRejectsBadNames(t *testing.T) {
	r, _ := newTestRouter(t, &stubExecutor{})

	for _, body := range []string{`{}`, `{"displayName":"   "}`, `{"displayName":"` + strings.Repeat("x", 37) + `"}`, `nope`} {
		w := do(r, http.MethodPost, "/api/profile", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestRuntimes(t *testing.T) {
	r, _ := newTestRouter(t, &stubExecutor{})
	w := do(r, http.MethodGet, "/api/runtimes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []runner.Runtime
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, runner.Runtimes, got)
}

func TestExecute(t *testing.T) {
	exec := &stubExecutor{res: runner.Result{Output: "3\n"}}
	r, _ := newTestRouter(t, exec)

	w := do(r, http.MethodPost, "/api/execute", `{"language":"python","sourceCode":"print(1+2)"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "python", exec.lang)
	assert.Contains(t, w.Body.String(), `"runOutput":"3\n"`)

	w = do(r, http.MethodPost, "/api/execute", `{"sourceCode":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteErrors(t *testing.T) {
	exec := &stubExecutor{err: runner.ErrUnsupportedLanguage}
	r, _ := newTestRouter(t, exec)
	w := do(r, http.MethodPost, "/api/execute", `{"language":"cobol"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	exec.err = errors.Join(runner.ErrRunner, errors.New("connection refused"))
	w = do(r, http.MethodPost, "/api/execute", `{"language":"python"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
