package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"seogen/internal/domain"
	"seogen/internal/llm"
)

// DefaultTheme is used when an article is requested without a theme.
const DefaultTheme = "Emploi & Carrière"

// Conseils configures the advice article vertical. Articles are seeded from a
// typed title, so there is no extraction step.
var Conseils = &Spec[domain.AdviceSeed, domain.AdviceArticle]{
	Vertical: domain.VerticalConseils,
	IDPrefix: domain.PrefixAdvice,
	Enrichment: Enrichment[domain.AdviceSeed]{
		System: "Tu es un rédacteur web expert en emploi, carrière et SEO. Tu écris des articles de blog riches et structurés. " +
			"Réponds uniquement en format JSON pur.",
		Prompt: advicePrompt,
		Schema: &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"contenu":         llm.String(""),
				"slug":            llm.String(""),
				"metaTitle":       llm.String(""),
				"metaDescription": llm.String(""),
				"seoKeywords":     llm.StringArray(""),
				"tempsLecture":    llm.String(""),
			},
			Required: []string{"contenu", "slug", "metaTitle", "metaDescription", "seoKeywords"},
		},
	},
	Stamp: func(b *domain.AdviceSeed, now time.Time) {
		b.ID = domain.NewRecordID(domain.PrefixAdvice, now)
		b.DatePubli = domain.FormatDate(now)
	},
	Assemble: func(b domain.AdviceSeed, generated json.RawMessage, now time.Time) (domain.AdviceArticle, error) {
		var c domain.AdviceContent
		if err := decodeEnrichment(generated, &c); err != nil {
			return domain.AdviceArticle{}, err
		}
		c.Slug = normalizeSlug(c.Slug, b.Titre)
		c.TempsLecture = blankToNil(c.TempsLecture)
		return domain.AdviceArticle{AdviceSeed: b, AdviceContent: c, CreatedAt: now}, nil
	},
	Card: func(a domain.AdviceArticle) Card {
		facts := []Fact{
			{Label: "Thématique", Value: a.Thematique},
			{Label: "Meta title", Value: a.MetaTitle},
		}
		if a.TempsLecture != nil {
			facts = append(facts, Fact{Label: "Temps de lecture", Value: *a.TempsLecture})
		}
		subtitle := a.Thematique
		if a.TempsLecture != nil {
			subtitle = fmt.Sprintf("%s · %s", a.Thematique, *a.TempsLecture)
		}
		return Card{
			ID:       a.ID,
			Title:    a.Titre,
			Subtitle: subtitle,
			Badge:    a.Thematique,
			Date:     a.DatePubli,
			Keywords: firstN(a.SEOKeywords, 3),
			Meta:     a.MetaDescription,
			Slug:     a.Slug,
			Body:     a.Contenu,
			Facts:    facts,
			Sections: []Section{
				{Label: "Mots-clés SEO", Items: a.SEOKeywords},
			},
		}
	},
	Export: Export[domain.AdviceArticle]{
		Header: []string{
			"ID", "Titre", "Thématique", "Date de publication", "Slug", "Meta title", "Meta description",
			"Mots-clés SEO", "Temps de lecture", "Contenu", "Créé le",
		},
		Row: func(a domain.AdviceArticle) []string {
			return []string{
				a.ID, a.Titre, a.Thematique, a.DatePubli, a.Slug, a.MetaTitle, a.MetaDescription,
				joinList(a.SEOKeywords), deref(a.TempsLecture), a.Contenu, formatCreated(a.CreatedAt),
			}
		},
	},
	Table: Table{
		Name: "conseils",
		Columns: []string{
			"id", "titre", "thematique", "date_publi", "contenu", "slug",
			"meta_title", "meta_description", "seo_keywords", "temps_lecture",
		},
	},
	Messages: domain.Messages{
		Format:  "Erreur de formatage de l'article conseil par l'IA.",
		Generic: "Une erreur est survenue lors de la génération de l'article.",
	},
	Copy: Copy{
		Label:          "Conseils",
		Title:          "Conseils",
		Subtitle:       "Saisissez un titre ou une thématique et obtenez un article de blog complet, structuré et optimisé SEO en quelques secondes.",
		SuccessMessage: "Article généré avec succès !",
		EmptyMessage:   "Aucun article n'a encore été généré.",
		EmptyAction:    "Créer votre premier article",
		CountLabel:     "articles",
		Accent:         "amber",
	},
}

// NewAdviceSeed validates and stamps a seed. The title is mandatory; the theme
// falls back to DefaultTheme.
func NewAdviceSeed(title, theme string, now time.Time) (domain.AdviceSeed, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.AdviceSeed{}, domain.ErrMissingTitle
	}
	theme = strings.TrimSpace(theme)
	if theme == "" {
		theme = DefaultTheme
	}
	seed := domain.AdviceSeed{Titre: title, Thematique: theme}
	Conseils.Stamp(&seed, now)
	return seed, nil
}

func advicePrompt(a domain.AdviceSeed) string {
	return fmt.Sprintf(`Génère un article de blog complet, professionnel et optimisé SEO sur le sujet suivant :
  Titre: %s
  Thématique: %s

  Instructions IMPORTANTES:
  1. Rédige un article long et riche en Markdown (contenu), structuré avec H1, H2, H3, des listes, du texte dense. Minimum 800 mots. Le contenu doit être en français, informatif et engageant.
  2. Génère un slug URL-friendly en minuscules avec tirets (slug), court et descriptif.
  3. Génère un meta title optimisé SEO de 60 caractères max (metaTitle).
  4. Génère une meta description de 155 caractères max (metaDescription).
  5. Liste 8 mots-clés SEO stratégiques (seoKeywords) incluant des longues traînes.
  6. Estime le temps de lecture en minutes (tempsLecture), ex: "5 min".`,
		a.Titre, a.Thematique)
}
