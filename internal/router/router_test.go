package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seogen/internal/catalog"
	"seogen/internal/domain"
	"seogen/internal/enrich"
	"seogen/internal/extract"
	"seogen/internal/handler"
	"seogen/internal/render"
	"seogen/internal/router"
	"seogen/internal/service"
	"seogen/internal/web"
	"seogen/mocks"
)

func setup(t *testing.T) (*gin.Engine, *mocks.MockRecordStore[domain.JobOffer]) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	gen := new(mocks.MockGenerator)
	offres := new(mocks.MockRecordStore[domain.JobOffer])

	offresEx, err := extract.New(catalog.Offres, gen, log)
	require.NoError(t, err)
	entsEx, err := extract.New(catalog.Entreprises, gen, log)
	require.NoError(t, err)
	ecolesEx, err := extract.New(catalog.Ecoles, gen, log)
	require.NoError(t, err)

	cfg := service.LaneConfig{}
	ws := service.NewWorkspace(
		service.NewLane(catalog.Offres, offresEx, enrich.New(catalog.Offres, gen, nil, log), offres, cfg, log),
		service.NewLane(catalog.Entreprises, entsEx, enrich.New(catalog.Entreprises, gen, nil, log),
			new(mocks.MockRecordStore[domain.Company]), cfg, log),
		service.NewLane(catalog.Ecoles, ecolesEx, enrich.New(catalog.Ecoles, gen, nil, log),
			new(mocks.MockRecordStore[domain.School]), cfg, log),
		service.NewLane[domain.AdviceSeed, domain.AdviceArticle](catalog.Conseils, nil,
			enrich.New(catalog.Conseils, gen, nil, log), new(mocks.MockRecordStore[domain.AdviceArticle]), cfg, log),
		new(mocks.MockConnectionProber),
		"",
		log,
	)

	h := router.Handlers{
		Health:    handler.NewHealthHandler(nil),
		Workspace: handler.NewWorkspaceHandler(ws, log),
		Advice:    handler.NewAdviceHandler(ws, log),
		Web:       web.NewHandler(ws, render.New(), 1<<20, log),
	}
	for _, tab := range ws.Tabs() {
		h.Verticals = append(h.Verticals, router.VerticalHandlers{
			Vertical: tab.Vertical(),
			Records:  handler.NewRecordHandler(tab, 1<<20, log),
			Exports:  handler.NewExportHandler(tab, log),
		})
	}

	tpl, err := web.Templates()
	require.NoError(t, err)
	r := router.Setup(h, tpl, []string{"http://localhost:5173"}, log)

	offres.On("FetchAll", mock.Anything).Return([]domain.JobOffer{
		{JobBasic: domain.JobBasic{ID: "job-1-aaaaa", EmploiMetier: "Comptable"}},
	}).Maybe()
	tab, _ := ws.Tab(domain.VerticalOffres)
	tab.Reload(t.Context())
	return r, offres
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetup_Routes(t *testing.T) {
	r, _ := setup(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/readyz", "", http.StatusOK},
		{http.MethodGet, "/", "", http.StatusFound},
		{http.MethodGet, "/tabs/offres", "", http.StatusOK},
		{http.MethodGet, "/api/v1/workspace", "", http.StatusOK},
		{http.MethodGet, "/api/v1/offres", "", http.StatusOK},
		{http.MethodGet, "/api/v1/offres/job-1-aaaaa", "", http.StatusOK},
		{http.MethodGet, "/api/v1/offres/job-9-zzzzz", "", http.StatusNotFound},
		{http.MethodGet, "/api/v1/offres/export.csv", "", http.StatusOK},
		{http.MethodGet, "/api/v1/ecoles/export.xlsx", "", http.StatusOK},
		{http.MethodPost, "/api/v1/offres/upload", "", http.StatusBadRequest},
		{http.MethodPost, "/api/v1/conseils", `{"titre":""}`, http.StatusBadRequest},
		{http.MethodPost, "/api/v1/conseils/upload", "", http.StatusNotFound},
		{http.MethodPost, "/api/v1/workspace/tabs/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestSetup_CORS(t *testing.T) {
	r, _ := setup(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/workspace", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
