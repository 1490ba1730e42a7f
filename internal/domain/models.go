package domain

import (
	"time"
)

// Record is implemented by every basic and full record type.
type Record interface {
	RecordID() string
}

// SourceDocument is an uploaded file handed to extraction as opaque bytes.
type SourceDocument struct {
	Name        string
	ContentType string
	Data        []byte
}

// JobBasic is the transient job offer read off a document.
type JobBasic struct {
	ID            string `db:"id" json:"id"`
	Ville         string `db:"ville" json:"ville"`
	RefOffre      string `db:"ref_offre" json:"refOffre"`
	TypeContrat   string `db:"type_contrat" json:"typeContrat"`
	RaisonSociale string `db:"raison_sociale" json:"raisonSociale"`
	DateOffre     string `db:"date_offre" json:"dateOffre"`
	NbrePostes    int    `db:"nbre_postes" json:"nbrePostes"`
	EmploiMetier  string `db:"emploi_metier" json:"emploiMetier"`
}

func (j JobBasic) RecordID() string { return j.ID }

// JobEnrichment holds the generated part of a job offer.
type JobEnrichment struct {
	FullDescription      string     `db:"full_description" json:"fullDescription"`
	SEOKeywords          StringList `db:"seo_keywords" json:"seoKeywords"`
	MetaDescription      string     `db:"meta_description" json:"metaDescription"`
	SuggestedSalaryRange *string    `db:"suggested_salary_range" json:"suggestedSalaryRange,omitempty"`
	RequiredSkills       StringList `db:"required_skills" json:"requiredSkills"`
}

// JobOffer is a persisted, enriched job offer.
type JobOffer struct {
	JobBasic
	JobEnrichment
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CompanyBasic is the transient company read off a document.
type CompanyBasic struct {
	ID         string  `db:"id" json:"id"`
	Nom        string  `db:"nom" json:"nom"`
	Secteur    string  `db:"secteur" json:"secteur"`
	Ville      string  `db:"ville" json:"ville"`
	SiteWeb    *string `db:"site_web" json:"siteWeb,omitempty"`
	NbEmployes *string `db:"nb_employes" json:"nbEmployes,omitempty"`
	DateAjout  string  `db:"date_ajout" json:"dateAjout"`
}

func (c CompanyBasic) RecordID() string { return c.ID }

// CompanyEnrichment holds the generated part of a company profile.
type CompanyEnrichment struct {
	Presentation    string     `db:"presentation" json:"presentation"`
	SEOKeywords     StringList `db:"seo_keywords" json:"seoKeywords"`
	MetaDescription string     `db:"meta_description" json:"metaDescription"`
	Specialites     StringList `db:"specialites" json:"specialites"`
	Slug            string     `db:"slug" json:"slug"`
}

// Company is a persisted, enriched company profile.
type Company struct {
	CompanyBasic
	CompanyEnrichment
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SchoolBasic is the transient school read off a document.
type SchoolBasic struct {
	ID        string  `db:"id" json:"id"`
	Nom       string  `db:"nom" json:"nom"`
	TypeEcole string  `db:"type_ecole" json:"typeEcole"`
	Ville     string  `db:"ville" json:"ville"`
	SiteWeb   *string `db:"site_web" json:"siteWeb,omitempty"`
	DateAjout string  `db:"date_ajout" json:"dateAjout"`
}

func (s SchoolBasic) RecordID() string { return s.ID }

// SchoolEnrichment holds the generated part of a school profile.
type SchoolEnrichment struct {
	Presentation    string     `db:"presentation" json:"presentation"`
	SEOKeywords     StringList `db:"seo_keywords" json:"seoKeywords"`
	MetaDescription string     `db:"meta_description" json:"metaDescription"`
	Filieres        StringList `db:"filieres" json:"filieres"`
	NiveauxAcces    StringList `db:"niveaux_acces" json:"niveauxAcces"`
	Slug            string     `db:"slug" json:"slug"`
}

// School is a persisted, enriched school profile.
type School struct {
	SchoolBasic
	SchoolEnrichment
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// AdviceSeed is the user-supplied starting point of an advice article.
type AdviceSeed struct {
	ID         string `db:"id" json:"id"`
	Titre      string `db:"titre" json:"titre"`
	Thematique string `db:"thematique" json:"thematique"`
	DatePubli  string `db:"date_publi" json:"datePubli"`
}

func (a AdviceSeed) RecordID() string { return a.ID }

// AdviceContent holds the generated body and metadata of an article.
type AdviceContent struct {
	Contenu         string     `db:"contenu" json:"contenu"`
	Slug            string     `db:"slug" json:"slug"`
	MetaTitle       string     `db:"meta_title" json:"metaTitle"`
	MetaDescription string     `db:"meta_description" json:"metaDescription"`
	SEOKeywords     StringList `db:"seo_keywords" json:"seoKeywords"`
	TempsLecture    *string    `db:"temps_lecture" json:"tempsLecture,omitempty"`
}

// AdviceArticle is a persisted advice article.
type AdviceArticle struct {
	AdviceSeed
	AdviceContent
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
