package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	gamesvc "github.com/juegotea/backend/internal/app/service/games"
)

func gamesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterGameRoutes(r.Group("/games"), nil, gamesvc.NewService(nil, zap.NewNop().Sugar()))
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestApiCheckAccessAnonymous(t *testing.T) {
	r := gamesRouter()

	t.Run("free game", func(t *testing.T) {
		w, body := getJSON(t, r, "/games/lectura-basica/access")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["hasAccess"])
		assert.Equal(t, "free", body["gameType"])
	})

	t.Run("premium game", func(t *testing.T) {
		w, body := getJSON(t, r, "/games/memoria-visual/access")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, body["hasAccess"])
		assert.Equal(t, "premium", body["gameType"])
		assert.Equal(t, "authentication_required", body["reason"])
	})

	t.Run("unknown game", func(t *testing.T) {
		w, body := getJSON(t, r, "/games/tetris/access")
		require.Equal(t, http.StatusNotFound, w.Code)
		e := body["error"].(map[string]any)
		assert.Equal(t, "GAME_NOT_FOUND", e["code"])
	})
}

func TestApiListGamesAnonymous(t *testing.T) {
	r := gamesRouter()
	w, body := getJSON(t, r, "/games/list")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["user"])

	list, ok := body["games"].([]any)
	require.True(t, ok)
	require.Len(t, list, len(gamesvc.Catalog()))
	for _, item := range list {
		g := item.(map[string]any)
		assert.Equal(t, g["tier"] == "free", g["hasAccess"], g["id"])
	}
}
