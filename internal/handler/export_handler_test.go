package handler_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"seogen/internal/domain"
	"seogen/internal/handler"
)

func exportTab() ([]string, [][]string) {
	return []string{"ID", "Poste", "Ville"}, [][]string{
		{"job-2-bbbbb", "Juriste", "Paris"},
		{"job-1-aaaaa", "Comptable; senior", "Lyon"},
	}
}

func TestExportHandler_CSV(t *testing.T) {
	header, rows := exportTab()
	tab := newTab(domain.VerticalOffres)
	tab.On("Table").Return(header, rows)
	h := handler.NewExportHandler(tab, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/offres/export.csv", nil)

	h.CSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="seogen_offres_\d{4}-\d{2}-\d{2}\.csv"$`, w.Header().Get("Content-Disposition"))

	body := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t,
		"ID;Poste;Ville\njob-2-bbbbb;Juriste;Paris\njob-1-aaaaa;\"Comptable; senior\";Lyon\n",
		string(body[3:]))
}

func TestExportHandler_CSV_Empty(t *testing.T) {
	tab := newTab(domain.VerticalConseils)
	tab.On("Table").Return([]string{"ID", "Titre"}, nil)
	h := handler.NewExportHandler(tab, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/conseils/export.csv", nil)

	h.CSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ID;Titre\n", string(w.Body.Bytes()[3:]))
}

func TestExportHandler_XLSX(t *testing.T) {
	header, rows := exportTab()
	tab := newTab(domain.VerticalOffres)
	tab.On("Table").Return(header, rows)
	h := handler.NewExportHandler(tab, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/offres/export.xlsx", nil)

	h.XLSX(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetRows("offres")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, header, got[0])
	assert.Equal(t, "Comptable; senior", got[2][1])
}
