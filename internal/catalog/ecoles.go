package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"seogen/internal/domain"
	"seogen/internal/llm"
)

// Ecoles configures the school vertical.
var Ecoles = &Spec[domain.SchoolBasic, domain.School]{
	Vertical: domain.VerticalEcoles,
	IDPrefix: domain.PrefixSchool,
	Extraction: &Extraction{
		Prompt: "Analyse ce document et extrait les informations de chaque école, université ou établissement " +
			"d'enseignement mentionné. Pour chaque établissement, retourne les données structurées disponibles. " +
			"Si c'est un tableau, retourne chaque ligne comme un objet.",
		Item: &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"nom":       llm.String("Nom de l'établissement"),
				"typeEcole": llm.String("Type: université, grande école, lycée, institut, etc."),
				"ville":     llm.String("Ville ou localisation"),
				"siteWeb":   llm.String("Site web si mentionné"),
			},
			Required: []string{"nom", "typeEcole", "ville"},
		},
	},
	Enrichment: Enrichment[domain.SchoolBasic]{
		System: "Tu es un expert en orientation scolaire et SEO. Tu rédiges des fiches d'établissements complètes. " +
			"Réponds uniquement en format JSON pur.",
		Prompt: schoolPrompt,
		Schema: &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"presentation":    llm.String(""),
				"slug":            llm.String(""),
				"seoKeywords":     llm.StringArray(""),
				"metaDescription": llm.String(""),
				"filieres":        llm.StringArray(""),
				"niveauxAcces":    llm.StringArray(""),
			},
			Required: []string{"presentation", "slug", "seoKeywords", "metaDescription", "filieres", "niveauxAcces"},
		},
	},
	Stamp: func(b *domain.SchoolBasic, now time.Time) {
		b.ID = domain.NewRecordID(domain.PrefixSchool, now)
		b.DateAjout = domain.FormatDate(now)
		b.SiteWeb = blankToNil(b.SiteWeb)
	},
	Assemble: func(b domain.SchoolBasic, generated json.RawMessage, now time.Time) (domain.School, error) {
		var e domain.SchoolEnrichment
		if err := decodeEnrichment(generated, &e); err != nil {
			return domain.School{}, err
		}
		e.Slug = normalizeSlug(e.Slug, b.Nom)
		return domain.School{SchoolBasic: b, SchoolEnrichment: e, CreatedAt: now}, nil
	},
	Card: func(s domain.School) Card {
		facts := []Fact{
			{Label: "Type", Value: s.TypeEcole},
			{Label: "Ville", Value: s.Ville},
		}
		if s.SiteWeb != nil {
			facts = append(facts, Fact{Label: "Site web", Value: *s.SiteWeb})
		}
		return Card{
			ID:       s.ID,
			Title:    s.Nom,
			Subtitle: fmt.Sprintf("%s · %s", s.TypeEcole, s.Ville),
			Badge:    s.TypeEcole,
			Date:     s.DateAjout,
			Keywords: firstN(s.SEOKeywords, 3),
			Meta:     s.MetaDescription,
			Slug:     s.Slug,
			Body:     s.Presentation,
			Facts:    facts,
			Sections: []Section{
				{Label: "Filières", Items: s.Filieres},
				{Label: "Niveaux d'accès", Items: s.NiveauxAcces},
				{Label: "Mots-clés SEO", Items: s.SEOKeywords},
			},
		}
	},
	Export: Export[domain.School]{
		Header: []string{
			"ID", "Nom", "Type", "Ville", "Site web", "Date d'ajout", "Slug", "Filières",
			"Niveaux d'accès", "Mots-clés SEO", "Meta description", "Présentation", "Créé le",
		},
		Row: func(s domain.School) []string {
			return []string{
				s.ID, s.Nom, s.TypeEcole, s.Ville, deref(s.SiteWeb), s.DateAjout, s.Slug, joinList(s.Filieres),
				joinList(s.NiveauxAcces), joinList(s.SEOKeywords), s.MetaDescription, s.Presentation,
				formatCreated(s.CreatedAt),
			}
		},
	},
	Table: Table{
		Name: "ecoles",
		Columns: []string{
			"id", "nom", "type_ecole", "ville", "site_web", "date_ajout",
			"presentation", "seo_keywords", "meta_description", "filieres", "niveaux_acces", "slug",
		},
	},
	Messages: domain.Messages{
		Empty:  "Aucun établissement lisible n'a été trouvé dans ce document.",
		Format: "Erreur lors de l'interprétation des données écoles extraites.",
	},
	Copy: Copy{
		Label:          "Écoles",
		Title:          "Écoles",
		Subtitle:       "Importez une liste d'établissements et obtenez des fiches détaillées SEO avec filières, niveaux d'accès et présentation.",
		UploadLabel:    "Analyser le document",
		SuccessMessage: "Fiches écoles générées avec succès !",
		EmptyMessage:   "Aucun établissement n'a encore été ajouté.",
		EmptyAction:    "Importer votre premier fichier",
		CountLabel:     "établissements",
		Accent:         "violet",
	},
}

func schoolPrompt(s domain.SchoolBasic) string {
	site := ""
	if s.SiteWeb != nil {
		site = "\n  Site Web: " + *s.SiteWeb
	}
	return fmt.Sprintf(`Génère une fiche établissement d'enseignement professionnelle et optimisée SEO pour :
  Établissement: %s
  Type: %s
  Ville: %s%s

  Instructions:
  1. Rédige une présentation longue et détaillée en Markdown (presentation). Inclure l'histoire, les points forts pédagogiques, l'environnement académique, les débouchés.
  2. Génère un slug URL-friendly en minuscules avec tirets (slug) basé sur le nom de l'établissement.
  3. Inclue 6 mots-clés SEO stratégiques (seoKeywords).
  4. Rédige une meta-description pour Google de 155 caractères max (metaDescription).
  5. Liste 5 filières ou programmes proposés (filieres).
  6. Liste les niveaux d'accès requis (niveauxAcces) ex: Bac, Bac+2, Bac+3, etc.`,
		s.Nom, s.TypeEcole, s.Ville, site)
}
