package catalog_test

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seogen/internal/catalog"
	"seogen/internal/domain"
)

var fixedNow = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"École Supérieure d'Art":    "ecole-superieure-d-art",
		"  Comment réussir  2025 ": "comment-reussir-2025",
		"already-a-slug":            "already-a-slug",
		"Société Générale & Cie!!":  "societe-generale-cie",
		"---":                       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, catalog.Slugify(in), in)
	}
}

func TestTable_InsertQuery(t *testing.T) {
	tbl := catalog.Table{Name: "conseils", Columns: []string{"id", "titre"}}

	assert.Equal(t, "INSERT INTO conseils (id, titre) VALUES (:id, :titre)", tbl.InsertQuery())
}

func TestOffres_StampDefaultsDate(t *testing.T) {
	b := domain.JobBasic{Ville: "Lyon", EmploiMetier: "Développeur Go"}
	catalog.Offres.Stamp(&b, fixedNow)

	assert.Regexp(t, regexp.MustCompile(`^job-\d+-[0-9a-z]{5}$`), b.ID)
	assert.Equal(t, "19/10/2026", b.DateOffre)

	kept := domain.JobBasic{DateOffre: "01/09/2026"}
	catalog.Offres.Stamp(&kept, fixedNow)
	assert.Equal(t, "01/09/2026", kept.DateOffre)
}

func TestOffres_AssembleKeepsBasicFields(t *testing.T) {
	basic := domain.JobBasic{
		ID: "job-1-abcde", Ville: "Lyon", RefOffre: "R-12", TypeContrat: "CDI",
		RaisonSociale: "Acme", DateOffre: "01/10/2026", NbrePostes: 3, EmploiMetier: "Comptable",
	}
	generated := json.RawMessage(`{"fullDescription":"# Comptable","seoKeywords":["k1","k2","k3","k4","k5"],` +
		`"metaDescription":"meta","requiredSkills":["s1","s2"],"suggestedSalaryRange":""}`)

	full, err := catalog.Offres.Assemble(basic, generated, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, basic, full.JobBasic)
	assert.Equal(t, domain.StringList{"k1", "k2", "k3", "k4", "k5"}, full.SEOKeywords)
	assert.Equal(t, domain.StringList{"s1", "s2"}, full.RequiredSkills)
	assert.Nil(t, full.SuggestedSalaryRange)
	assert.Equal(t, fixedNow, full.CreatedAt)

	card := catalog.Offres.Card(full)
	assert.Equal(t, "Comptable", card.Title)
	assert.Equal(t, []string{"k1", "k2", "k3"}, card.Keywords)
}

func TestOffres_NullOptionalFromAlternateBackend(t *testing.T) {
	generated := []byte(`{"fullDescription":"x","seoKeywords":["a"],"metaDescription":"m",` +
		`"requiredSkills":["s"],"suggestedSalaryRange":null}`)
	require.NoError(t, catalog.Offres.Enrichment.Schema.Validate(generated))

	full, err := catalog.Offres.Assemble(domain.JobBasic{ID: "job-1-abcde"}, generated, fixedNow)
	require.NoError(t, err)
	assert.Nil(t, full.SuggestedSalaryRange)

	article := []byte(`{"contenu":"# A","slug":"a","metaTitle":"A","metaDescription":"m",` +
		`"seoKeywords":["a"],"tempsLecture":null}`)
	assert.NoError(t, catalog.Conseils.Enrichment.Schema.Validate(article))
}

func TestOffres_AssembleRejectsMalformed(t *testing.T) {
	_, err := catalog.Offres.Assemble(domain.JobBasic{}, json.RawMessage(`{"seoKeywords":"nope"}`), fixedNow)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestOffres_PromptMentionsRecord(t *testing.T) {
	p := catalog.Offres.Enrichment.Prompt(domain.JobBasic{
		EmploiMetier: "Soudeur", RaisonSociale: "Métal SA", Ville: "Nantes", TypeContrat: "CDD", RefOffre: "X9",
	})
	for _, s := range []string{"Poste: Soudeur", "Entreprise: Métal SA", "Ville: Nantes", "Type: CDD", "Référence: X9", "5 mots-clés", "6 compétences"} {
		assert.Contains(t, p, s)
	}
}

func TestEntreprises_PromptOptionalLines(t *testing.T) {
	without := catalog.Entreprises.Enrichment.Prompt(domain.CompanyBasic{Nom: "Acme", Secteur: "BTP", Ville: "Lille"})
	assert.NotContains(t, without, "Effectif")
	assert.NotContains(t, without, "Site Web")

	with := catalog.Entreprises.Enrichment.Prompt(domain.CompanyBasic{
		Nom: "Acme", Secteur: "BTP", Ville: "Lille", NbEmployes: strPtr("250"), SiteWeb: strPtr("acme.fr"),
	})
	assert.Contains(t, with, "Effectif: 250")
	assert.Contains(t, with, "Site Web: acme.fr")
}

func TestEntreprises_StampAndSlugFallback(t *testing.T) {
	b := domain.CompanyBasic{Nom: "Bâtiments Réunis", SiteWeb: strPtr("  ")}
	catalog.Entreprises.Stamp(&b, fixedNow)
	assert.Regexp(t, regexp.MustCompile(`^ent-`), b.ID)
	assert.Equal(t, "19/10/2026", b.DateAjout)
	assert.Nil(t, b.SiteWeb)

	full, err := catalog.Entreprises.Assemble(b, json.RawMessage(`{"presentation":"p","slug":"","seoKeywords":[],"metaDescription":"m","specialites":["a"]}`), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "batiments-reunis", full.Slug)

	full, err = catalog.Entreprises.Assemble(b, json.RawMessage(`{"presentation":"p","slug":"Bâtiments Réunis Lyon","seoKeywords":[],"metaDescription":"m","specialites":[]}`), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "batiments-reunis-lyon", full.Slug)
}

func TestEcoles_AssembleAndExport(t *testing.T) {
	b := domain.SchoolBasic{ID: "eco-1-aaaaa", Nom: "IUT de Nice", TypeEcole: "Institut", Ville: "Nice", DateAjout: "19/10/2026"}
	full, err := catalog.Ecoles.Assemble(b, json.RawMessage(`{"presentation":"## IUT","slug":"iut-nice","seoKeywords":["iut"],`+
		`"metaDescription":"m","filieres":["GEA","Info"],"niveauxAcces":["Bac"]}`), fixedNow)
	require.NoError(t, err)

	row := catalog.Ecoles.Export.Row(full)
	require.Len(t, row, len(catalog.Ecoles.Export.Header))
	assert.Equal(t, "GEA, Info", row[7])
	assert.Equal(t, "Bac", row[8])
}

func TestExportRowsMatchHeaders(t *testing.T) {
	assert.Len(t, catalog.Offres.Export.Row(domain.JobOffer{}), len(catalog.Offres.Export.Header))
	assert.Len(t, catalog.Entreprises.Export.Row(domain.Company{}), len(catalog.Entreprises.Export.Header))
	assert.Len(t, catalog.Ecoles.Export.Row(domain.School{}), len(catalog.Ecoles.Export.Header))
	assert.Len(t, catalog.Conseils.Export.Row(domain.AdviceArticle{}), len(catalog.Conseils.Export.Header))
}

func TestExtractionSchemas(t *testing.T) {
	assert.Nil(t, catalog.Conseils.Extraction)

	s := catalog.Offres.Extraction.Schema().Gemini()
	assert.Equal(t, "ARRAY", s["type"])
	assert.Equal(t, []string{"ville", "refOffre", "typeContrat", "raisonSociale", "emploiMetier"},
		s["items"].(map[string]any)["required"])
}

func TestNewAdviceSeed(t *testing.T) {
	_, err := catalog.NewAdviceSeed("   ", "x", fixedNow)
	assert.ErrorIs(t, err, domain.ErrMissingTitle)

	seed, err := catalog.NewAdviceSeed("  Réussir son entretien ", "", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "Réussir son entretien", seed.Titre)
	assert.Equal(t, catalog.DefaultTheme, seed.Thematique)
	assert.Equal(t, "19/10/2026", seed.DatePubli)
	assert.Regexp(t, regexp.MustCompile(`^conseil-\d+-[0-9a-z]{5}$`), seed.ID)

	p := catalog.Conseils.Enrichment.Prompt(seed)
	assert.Contains(t, p, "Minimum 800 mots")
	assert.Contains(t, p, "Titre: Réussir son entretien")
}

func TestConseils_Assemble(t *testing.T) {
	seed := domain.AdviceSeed{ID: "conseil-1-zzzzz", Titre: "Négocier son salaire", Thematique: "Carrière", DatePubli: "19/10/2026"}
	art, err := catalog.Conseils.Assemble(seed, json.RawMessage(`{"contenu":"# H1","slug":"negocier-salaire","metaTitle":"t",`+
		`"metaDescription":"m","seoKeywords":["a","b","c","d","e","f","g","h"],"tempsLecture":"6 min"}`), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, seed, art.AdviceSeed)
	assert.Equal(t, "negocier-salaire", art.Slug)
	require.NotNil(t, art.TempsLecture)
	assert.Equal(t, "6 min", *art.TempsLecture)
	assert.Equal(t, "Carrière · 6 min", catalog.Conseils.Card(art).Subtitle)
}
