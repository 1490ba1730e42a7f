package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seogen/internal/domain"
	"seogen/internal/handler"
	"seogen/internal/service"
)

func workspaceState(t *testing.T, w *httptest.ResponseRecorder) service.WorkspaceState {
	t.Helper()
	var resp struct {
		Success bool                   `json:"success"`
		Data    service.WorkspaceState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Data
}

func TestWorkspaceHandler_State(t *testing.T) {
	tw := newTestWorkspace(t)
	h := handler.NewWorkspaceHandler(tw.ws, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/workspace", nil)

	h.State(c)

	assert.Equal(t, http.StatusOK, w.Code)
	state := workspaceState(t, w)
	assert.Equal(t, domain.VerticalOffres, state.Active)
	require.Len(t, state.Lanes, 4)
	for _, lane := range state.Lanes {
		assert.Equal(t, domain.StatusIdle, lane.Status)
	}
}

func TestWorkspaceHandler_Switch(t *testing.T) {
	tw := newTestWorkspace(t)
	h := handler.NewWorkspaceHandler(tw.ws, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/workspace/tabs/ECOLES", nil)
	c.Params = gin.Params{{Key: "vertical", Value: "ECOLES"}}

	h.Switch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.VerticalEcoles, workspaceState(t, w).Active)
}

func TestWorkspaceHandler_Switch_UnknownVertical(t *testing.T) {
	tw := newTestWorkspace(t)
	h := handler.NewWorkspaceHandler(tw.ws, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/workspace/tabs/blog", nil)
	c.Params = gin.Params{{Key: "vertical", Value: "blog"}}

	h.Switch(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "UNKNOWN_VERTICAL", decode(t, w).Error.Code)
	assert.Equal(t, domain.VerticalOffres, tw.ws.Active())
}

func TestWorkspaceHandler_Reload(t *testing.T) {
	tw := newTestWorkspace(t)
	tw.offres.On("FetchAll", mock.Anything).Return([]domain.JobOffer{
		{JobBasic: domain.JobBasic{ID: "job-1-aaaaa"}},
		{JobBasic: domain.JobBasic{ID: "job-2-bbbbb"}},
	})
	tw.ents.On("FetchAll", mock.Anything).Return([]domain.Company{})
	tw.ecoles.On("FetchAll", mock.Anything).Return([]domain.School{})
	tw.conseils.On("FetchAll", mock.Anything).Return(nil)
	h := handler.NewWorkspaceHandler(tw.ws, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/workspace/reload", nil)

	h.Reload(c)

	assert.Equal(t, http.StatusOK, w.Code)
	state := workspaceState(t, w)
	assert.Equal(t, 2, state.Lanes[0].Count)
	assert.Equal(t, 0, state.Lanes[3].Count)
}

func TestWorkspaceHandler_Connection(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		msg  string
	}{
		{"reachable", true, "Connexion à la base de données réussie."},
		{"unreachable", false, "Échec de la connexion à la base de données. Vérifiez la configuration."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWorkspace(t)
			tw.prober.On("TestConnection", mock.Anything).Return(tt.ok)
			h := handler.NewWorkspaceHandler(tw.ws, zap.NewNop())

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/workspace/connection", nil)

			h.Connection(c)

			assert.Equal(t, http.StatusOK, w.Code)
			var resp struct {
				Data handler.ConnectionResult `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.ok, resp.Data.Connected)
			assert.Equal(t, tt.msg, resp.Data.Message)
		})
	}
}
