package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seogen/internal/catalog"
	"seogen/internal/domain"
	"seogen/internal/enrich"
	"seogen/internal/extract"
	"seogen/internal/service"
	"seogen/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testWorkspace struct {
	ws       *service.Workspace
	gen      *mocks.MockGenerator
	offres   *mocks.MockRecordStore[domain.JobOffer]
	ents     *mocks.MockRecordStore[domain.Company]
	ecoles   *mocks.MockRecordStore[domain.School]
	conseils *mocks.MockRecordStore[domain.AdviceArticle]
	prober   *mocks.MockConnectionProber
}

func newTestWorkspace(t *testing.T) *testWorkspace {
	t.Helper()
	tw := &testWorkspace{
		gen:      new(mocks.MockGenerator),
		offres:   new(mocks.MockRecordStore[domain.JobOffer]),
		ents:     new(mocks.MockRecordStore[domain.Company]),
		ecoles:   new(mocks.MockRecordStore[domain.School]),
		conseils: new(mocks.MockRecordStore[domain.AdviceArticle]),
		prober:   new(mocks.MockConnectionProber),
	}
	log := zap.NewNop()

	offresEx, err := extract.New(catalog.Offres, tw.gen, log)
	require.NoError(t, err)
	entsEx, err := extract.New(catalog.Entreprises, tw.gen, log)
	require.NoError(t, err)
	ecolesEx, err := extract.New(catalog.Ecoles, tw.gen, log)
	require.NoError(t, err)

	cfg := service.LaneConfig{}
	tw.ws = service.NewWorkspace(
		service.NewLane(catalog.Offres, offresEx, enrich.New(catalog.Offres, tw.gen, nil, log), tw.offres, cfg, log),
		service.NewLane(catalog.Entreprises, entsEx, enrich.New(catalog.Entreprises, tw.gen, nil, log), tw.ents, cfg, log),
		service.NewLane(catalog.Ecoles, ecolesEx, enrich.New(catalog.Ecoles, tw.gen, nil, log), tw.ecoles, cfg, log),
		service.NewLane[domain.AdviceSeed, domain.AdviceArticle](catalog.Conseils, nil,
			enrich.New(catalog.Conseils, tw.gen, nil, log), tw.conseils, cfg, log),
		tw.prober,
		"",
		log,
	)
	return tw
}

func newTab(v domain.Vertical) *mocks.MockTab {
	tab := new(mocks.MockTab)
	tab.On("Vertical").Return(v).Maybe()
	tab.On("Messages").Return(domain.Messages{
		Empty:  "Aucune donnée exploitable trouvée.",
		Format: "Format de réponse invalide.",
	}).Maybe()
	return tab
}

// multipartRequest builds a POST request carrying one file part.
func multipartRequest(t *testing.T, target, filename, contentType string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
