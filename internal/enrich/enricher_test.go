package enrich_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seogen/internal/catalog"
	"seogen/internal/domain"
	"seogen/internal/enrich"
	"seogen/internal/llm"
	"seogen/mocks"
)

var basicJob = domain.JobBasic{
	ID: "job-1-aaaaa", Ville: "Lyon", RefOffre: "A1", TypeContrat: "CDI",
	RaisonSociale: "Acme", DateOffre: "01/10/2026", NbrePostes: 1, EmploiMetier: "Comptable",
}

const jobAnswer = `{"fullDescription":"# Comptable","seoKeywords":["a","b","c","d","e"],"metaDescription":"m",` +
	`"requiredSkills":["1","2","3","4","5","6"],"suggestedSalaryRange":"35-40k€"}`

func TestEnrich_GeminiUsesPrimary(t *testing.T) {
	primary := new(mocks.MockGenerator)
	alternate := new(mocks.MockGenerator)
	primary.On("Generate", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return req.Attachment == nil &&
			req.System == catalog.Offres.Enrichment.System &&
			req.Schema == catalog.Offres.Enrichment.Schema
	})).Return(&llm.Response{JSON: json.RawMessage(jobAnswer), Model: "gemini-3-pro-preview"}, nil)

	e := enrich.New(catalog.Offres, primary, alternate, zap.NewNop())
	full, err := e.Enrich(context.Background(), basicJob, domain.ModelGemini)

	require.NoError(t, err)
	assert.Equal(t, basicJob, full.JobBasic)
	assert.Equal(t, "# Comptable", full.FullDescription)
	require.NotNil(t, full.SuggestedSalaryRange)
	assert.Equal(t, "35-40k€", *full.SuggestedSalaryRange)
	alternate.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestEnrich_DeepSeekUsesAlternate(t *testing.T) {
	primary := new(mocks.MockGenerator)
	alternate := new(mocks.MockGenerator)
	alternate.On("Generate", mock.Anything, mock.Anything).Return(&llm.Response{JSON: json.RawMessage(jobAnswer), Model: "deepseek-chat"}, nil)

	e := enrich.New(catalog.Offres, primary, alternate, zap.NewNop())
	_, err := e.Enrich(context.Background(), basicJob, domain.ModelDeepSeek)

	require.NoError(t, err)
	primary.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestEnrich_DeepSeekFallsBackToPrimaryThroughChain(t *testing.T) {
	deepseekGen := new(mocks.MockGenerator)
	primary := new(mocks.MockGenerator)
	deepseekGen.On("Generate", mock.Anything, mock.Anything).Return(nil, &domain.UpstreamError{Provider: "deepseek", Status: 500, Message: "down"})
	primary.On("Generate", mock.Anything, mock.Anything).Return(&llm.Response{JSON: json.RawMessage(jobAnswer), Model: "gemini-3-pro-preview"}, nil)

	chain := llm.NewFallbackGenerator([]llm.Generator{deepseekGen, primary}, []string{"deepseek", "gemini"}, zap.NewNop())
	e := enrich.New(catalog.Offres, primary, chain, zap.NewNop())

	full, err := e.Enrich(context.Background(), basicJob, domain.ModelDeepSeek)
	require.NoError(t, err)
	assert.Equal(t, "# Comptable", full.FullDescription)
	deepseekGen.AssertNumberOfCalls(t, "Generate", 1)
	primary.AssertNumberOfCalls(t, "Generate", 1)
}

func TestEnrich_NoAlternateConfigured(t *testing.T) {
	primary := new(mocks.MockGenerator)
	primary.On("Generate", mock.Anything, mock.Anything).Return(&llm.Response{JSON: json.RawMessage(jobAnswer)}, nil)

	e := enrich.New(catalog.Offres, primary, nil, zap.NewNop())
	_, err := e.Enrich(context.Background(), basicJob, domain.ModelDeepSeek)

	require.NoError(t, err)
	primary.AssertNumberOfCalls(t, "Generate", 1)
}

func TestEnrich_UpstreamErrorKeepsProviderMessage(t *testing.T) {
	primary := new(mocks.MockGenerator)
	primary.On("Generate", mock.Anything, mock.Anything).Return(nil, &domain.UpstreamError{Provider: "gemini", Status: 403, Message: "Permission denied"})

	e := enrich.New(catalog.Offres, primary, nil, zap.NewNop())
	_, err := e.Enrich(context.Background(), basicJob, domain.ModelGemini)

	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "Permission denied", domain.UserMessage(err, catalog.Offres.Messages))
}

func TestEnrich_AdviceArticle(t *testing.T) {
	primary := new(mocks.MockGenerator)
	primary.On("Generate", mock.Anything, mock.Anything).Return(&llm.Response{JSON: json.RawMessage(
		`{"contenu":"# Titre","slug":"","metaTitle":"t","metaDescription":"m","seoKeywords":["a"]}`)}, nil)

	seed := domain.AdviceSeed{ID: "conseil-1-aaaaa", Titre: "Changer de métier à 40 ans", Thematique: "Reconversion", DatePubli: "19/10/2026"}
	e := enrich.New(catalog.Conseils, primary, nil, zap.NewNop())

	art, err := e.Enrich(context.Background(), seed, domain.ModelGemini)
	require.NoError(t, err)
	assert.Equal(t, seed, art.AdviceSeed)
	assert.Equal(t, "changer-de-metier-a-40-ans", art.Slug)
	assert.Nil(t, art.TempsLecture)
	assert.False(t, art.CreatedAt.IsZero())
}
