package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"seogen/internal/domain"
	"seogen/internal/llm"
)

// Offres configures the job offer vertical.
var Offres = &Spec[domain.JobBasic, domain.JobOffer]{
	Vertical: domain.VerticalOffres,
	IDPrefix: domain.PrefixJob,
	Extraction: &Extraction{
		Prompt: "Analyse cette image d'offre d'emploi ou ce tableau. Extrait CHAQUE poste de manière structurée. " +
			"Si c'est un tableau, retourne chaque ligne comme un objet.",
		Item: &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"ville":         llm.String("Ville du poste"),
				"refOffre":      llm.String("Référence de l'offre"),
				"typeContrat":   llm.String("CDI, CDD, Interim, etc."),
				"raisonSociale": llm.String("Nom de l'entreprise"),
				"dateOffre":     llm.String("Date mentionnée"),
				"nbrePostes":    llm.Integer("Nombre de postes ouverts"),
				"emploiMetier":  llm.String("Intitulé exact du poste"),
			},
			Required: []string{"ville", "refOffre", "typeContrat", "raisonSociale", "emploiMetier"},
		},
	},
	Enrichment: Enrichment[domain.JobBasic]{
		System: "Tu es un expert en recrutement et SEO. Tu rédiges des offres d'emploi percutantes. " +
			"Réponds uniquement en format JSON pur.",
		Prompt: jobPrompt,
		Schema: &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"fullDescription":      llm.String(""),
				"seoKeywords":          llm.StringArray(""),
				"metaDescription":      llm.String(""),
				"requiredSkills":       llm.StringArray(""),
				"suggestedSalaryRange": llm.String(""),
			},
			Required: []string{"fullDescription", "seoKeywords", "metaDescription", "requiredSkills"},
		},
	},
	Stamp: func(b *domain.JobBasic, now time.Time) {
		b.ID = domain.NewRecordID(domain.PrefixJob, now)
		if strings.TrimSpace(b.DateOffre) == "" {
			b.DateOffre = domain.FormatDate(now)
		}
	},
	Assemble: func(b domain.JobBasic, generated json.RawMessage, now time.Time) (domain.JobOffer, error) {
		var e domain.JobEnrichment
		if err := decodeEnrichment(generated, &e); err != nil {
			return domain.JobOffer{}, err
		}
		e.SuggestedSalaryRange = blankToNil(e.SuggestedSalaryRange)
		return domain.JobOffer{JobBasic: b, JobEnrichment: e, CreatedAt: now}, nil
	},
	Card: func(j domain.JobOffer) Card {
		facts := []Fact{
			{Label: "Entreprise", Value: j.RaisonSociale},
			{Label: "Ville", Value: j.Ville},
			{Label: "Contrat", Value: j.TypeContrat},
			{Label: "Référence", Value: j.RefOffre},
			{Label: "Postes", Value: strconv.Itoa(j.NbrePostes)},
		}
		if j.SuggestedSalaryRange != nil {
			facts = append(facts, Fact{Label: "Salaire estimé", Value: *j.SuggestedSalaryRange})
		}
		return Card{
			ID:       j.ID,
			Title:    j.EmploiMetier,
			Subtitle: fmt.Sprintf("%s · %s", j.RaisonSociale, j.Ville),
			Badge:    j.TypeContrat,
			Date:     j.DateOffre,
			Keywords: firstN(j.SEOKeywords, 3),
			Meta:     j.MetaDescription,
			Body:     j.FullDescription,
			Facts:    facts,
			Sections: []Section{
				{Label: "Compétences clés", Items: j.RequiredSkills},
				{Label: "Mots-clés SEO", Items: j.SEOKeywords},
			},
		}
	},
	Export: Export[domain.JobOffer]{
		Header: []string{
			"ID", "Poste", "Entreprise", "Ville", "Contrat", "Référence", "Date", "Postes",
			"Salaire estimé", "Compétences", "Mots-clés SEO", "Meta description", "Description", "Créé le",
		},
		Row: func(j domain.JobOffer) []string {
			return []string{
				j.ID, j.EmploiMetier, j.RaisonSociale, j.Ville, j.TypeContrat, j.RefOffre, j.DateOffre,
				strconv.Itoa(j.NbrePostes), deref(j.SuggestedSalaryRange), joinList(j.RequiredSkills),
				joinList(j.SEOKeywords), j.MetaDescription, j.FullDescription, formatCreated(j.CreatedAt),
			}
		},
	},
	Table: Table{
		Name: "job_offers",
		Columns: []string{
			"id", "ville", "ref_offre", "type_contrat", "raison_sociale", "date_offre", "nbre_postes",
			"emploi_metier", "full_description", "seo_keywords", "meta_description",
			"suggested_salary_range", "required_skills",
		},
	},
	Messages: domain.Messages{
		Empty:  "Aucune information lisible n'a été trouvée dans ce document.",
		Format: "Erreur lors de l'interprétation des données extraites.",
	},
	Copy: Copy{
		Label:          "Offres d'emploi",
		Title:          "Offres d'emploi",
		Subtitle:       "Transformez vos fichiers (Images, PDF, Excel) en annonces d'emploi structurées et optimisées SEO instantanément.",
		UploadLabel:    "Analyser le document",
		SuccessMessage: "Offres générées avec succès !",
		EmptyMessage:   "Aucune offre n'a encore été générée.",
		EmptyAction:    "Importer votre premier fichier",
		CountLabel:     "annonces",
		Accent:         "indigo",
	},
}

func jobPrompt(job domain.JobBasic) string {
	return fmt.Sprintf(`Génère une annonce de recrutement professionnelle et optimisée SEO pour le poste suivant :
  Poste: %s
  Entreprise: %s
  Ville: %s
  Type: %s
  Référence: %s

  Instructions:
  1. Rédige une description longue et détaillée en Markdown (fullDescription).
  2. Inclue 5 mots-clés SEO stratégiques (seoKeywords).
  3. Rédige une meta-description pour Google de 155 caractères max (metaDescription).
  4. Liste 6 compétences clés nécessaires (requiredSkills).
  5. Estime une fourchette de salaire réaliste (suggestedSalaryRange).`,
		job.EmploiMetier, job.RaisonSociale, job.Ville, job.TypeContrat, job.RefOffre)
}
