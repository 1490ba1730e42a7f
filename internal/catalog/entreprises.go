package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"seogen/internal/domain"
	"seogen/internal/llm"
)

// Entreprises configures the company vertical.
var Entreprises = &Spec[domain.CompanyBasic, domain.Company]{
	Vertical: domain.VerticalEntreprises,
	IDPrefix: domain.PrefixCompany,
	Extraction: &Extraction{
		Prompt: "Analyse ce document et extrait les informations de chaque entreprise mentionnée. " +
			"Pour chaque entreprise, retourne les données structurées disponibles. " +
			"Si c'est un tableau, retourne chaque ligne comme un objet.",
		Item: &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"nom":        llm.String("Nom ou raison sociale de l'entreprise"),
				"secteur":    llm.String("Secteur d'activité"),
				"ville":      llm.String("Ville ou localisation"),
				"siteWeb":    llm.String("Site web si mentionné"),
				"nbEmployes": llm.String("Nombre d'employés si mentionné"),
			},
			Required: []string{"nom", "secteur", "ville"},
		},
	},
	Enrichment: Enrichment[domain.CompanyBasic]{
		System: "Tu es un expert en communication d'entreprise et SEO. Tu rédiges des fiches entreprises percutantes. " +
			"Réponds uniquement en format JSON pur.",
		Prompt: companyPrompt,
		Schema: &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"presentation":    llm.String(""),
				"slug":            llm.String(""),
				"seoKeywords":     llm.StringArray(""),
				"metaDescription": llm.String(""),
				"specialites":     llm.StringArray(""),
			},
			Required: []string{"presentation", "slug", "seoKeywords", "metaDescription", "specialites"},
		},
	},
	Stamp: func(b *domain.CompanyBasic, now time.Time) {
		b.ID = domain.NewRecordID(domain.PrefixCompany, now)
		b.DateAjout = domain.FormatDate(now)
		b.SiteWeb = blankToNil(b.SiteWeb)
		b.NbEmployes = blankToNil(b.NbEmployes)
	},
	Assemble: func(b domain.CompanyBasic, generated json.RawMessage, now time.Time) (domain.Company, error) {
		var e domain.CompanyEnrichment
		if err := decodeEnrichment(generated, &e); err != nil {
			return domain.Company{}, err
		}
		e.Slug = normalizeSlug(e.Slug, b.Nom)
		return domain.Company{CompanyBasic: b, CompanyEnrichment: e, CreatedAt: now}, nil
	},
	Card: func(c domain.Company) Card {
		facts := []Fact{
			{Label: "Secteur", Value: c.Secteur},
			{Label: "Ville", Value: c.Ville},
		}
		if c.NbEmployes != nil {
			facts = append(facts, Fact{Label: "Effectif", Value: *c.NbEmployes})
		}
		if c.SiteWeb != nil {
			facts = append(facts, Fact{Label: "Site web", Value: *c.SiteWeb})
		}
		return Card{
			ID:       c.ID,
			Title:    c.Nom,
			Subtitle: fmt.Sprintf("%s · %s", c.Secteur, c.Ville),
			Badge:    c.Secteur,
			Date:     c.DateAjout,
			Keywords: firstN(c.SEOKeywords, 3),
			Meta:     c.MetaDescription,
			Slug:     c.Slug,
			Body:     c.Presentation,
			Facts:    facts,
			Sections: []Section{
				{Label: "Spécialités", Items: c.Specialites},
				{Label: "Mots-clés SEO", Items: c.SEOKeywords},
			},
		}
	},
	Export: Export[domain.Company]{
		Header: []string{
			"ID", "Nom", "Secteur", "Ville", "Site web", "Effectif", "Date d'ajout", "Slug",
			"Spécialités", "Mots-clés SEO", "Meta description", "Présentation", "Créé le",
		},
		Row: func(c domain.Company) []string {
			return []string{
				c.ID, c.Nom, c.Secteur, c.Ville, deref(c.SiteWeb), deref(c.NbEmployes), c.DateAjout, c.Slug,
				joinList(c.Specialites), joinList(c.SEOKeywords), c.MetaDescription, c.Presentation,
				formatCreated(c.CreatedAt),
			}
		},
	},
	Table: Table{
		Name: "entreprises",
		Columns: []string{
			"id", "nom", "secteur", "ville", "site_web", "nb_employes", "date_ajout",
			"presentation", "seo_keywords", "meta_description", "specialites", "slug",
		},
	},
	Messages: domain.Messages{
		Empty:  "Aucune entreprise lisible n'a été trouvée dans ce document.",
		Format: "Erreur lors de l'interprétation des données entreprises extraites.",
	},
	Copy: Copy{
		Label:          "Entreprises",
		Title:          "Entreprises",
		Subtitle:       "Importez une liste d'entreprises et obtenez des fiches professionnelles SEO générées par IA, prêtes à être consultées.",
		UploadLabel:    "Analyser le document",
		SuccessMessage: "Fiches entreprises générées avec succès !",
		EmptyMessage:   "Aucune entreprise n'a encore été ajoutée.",
		EmptyAction:    "Importer votre premier fichier",
		CountLabel:     "entreprises",
		Accent:         "emerald",
	},
}

func companyPrompt(c domain.CompanyBasic) string {
	var optional strings.Builder
	if c.NbEmployes != nil {
		fmt.Fprintf(&optional, "\n  Effectif: %s", *c.NbEmployes)
	}
	if c.SiteWeb != nil {
		fmt.Fprintf(&optional, "\n  Site Web: %s", *c.SiteWeb)
	}
	return fmt.Sprintf(`Génère une fiche entreprise professionnelle et optimisée SEO pour :
  Entreprise: %s
  Secteur: %s
  Ville: %s%s

  Instructions:
  1. Rédige une présentation longue et détaillée en Markdown (presentation). Inclure l'histoire, les valeurs, la culture d'entreprise, les perspectives.
  2. Génère un slug URL-friendly en minuscules avec tirets (slug) basé sur le nom de l'entreprise.
  3. Inclue 6 mots-clés SEO stratégiques (seoKeywords).
  4. Rédige une meta-description pour Google de 155 caractères max (metaDescription).
  5. Liste 5 spécialités ou points forts de l'entreprise (specialites).`,
		c.Nom, c.Secteur, c.Ville, optional.String())
}
