package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/namesake/internal/core/aliases"
	"github.com/agenthands/namesake/internal/core/index"
	"github.com/agenthands/namesake/internal/core/model"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lee := model.EntityRecord{ID: 7, PrimaryKey: "이세돌"}
	lee.AddAlias("이세돌", model.Language{Code: "ko", Preferred: true})
	lee.AddAlias("Lee Sedol")
	cho := model.EntityRecord{ID: 9, PrimaryKey: "Cho Chikun"}
	cho.AddAlias("Cho Chikun")

	store, _ := aliases.New(map[string][]string{"Lee Sedol": {"Yi Se-tol", "이세돌"}})
	return NewServer(index.New([]model.EntityRecord{lee, cho}), store, zerolog.Nop()).SetupRouter()
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := get(t, newTestRouter(t), "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","players":2,"groups":1}`, w.Body.String())
}

func TestGetPlayer(t *testing.T) {
	r := newTestRouter(t)

	w := get(t, r, "/players/7")
	require.Equal(t, http.StatusOK, w.Code)
	var rec model.EntityRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, []string{"이세돌", "Lee Sedol"}, rec.Names())

	assert.Equal(t, http.StatusNotFound, get(t, r, "/players/8").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/players/abc").Code)
}

func TestSearch(t *testing.T) {
	r := newTestRouter(t)

	w := get(t, r, "/search?q=sedol&q=nobody")
	require.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(7), resp.Results[0].ID)
	assert.Equal(t, []string{"nobody"}, resp.Unmatched)

	assert.Equal(t, http.StatusBadRequest, get(t, r, "/search").Code)
}

func TestGetAliases(t *testing.T) {
	r := newTestRouter(t)

	w := get(t, r, "/aliases/"+url.PathEscape("Yi Se-tol"))
	require.Equal(t, http.StatusOK, w.Code)
	var resp AliasResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Lee Sedol", resp.Representative)
	assert.Equal(t, []string{"Lee Sedol", "Yi Se-tol", "이세돌"}, resp.Group)
	assert.Nil(t, resp.PlayerID)

	w = get(t, r, "/aliases/"+url.PathEscape("Cho Chikun"))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Cho Chikun"}, resp.Group)
	require.NotNil(t, resp.PlayerID)
	assert.Equal(t, int64(9), *resp.PlayerID)

	assert.Equal(t, http.StatusNotFound, get(t, r, "/aliases/nobody").Code)
}
