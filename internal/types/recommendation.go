package types

import (
	"time"

	"gorm.io/datatypes"
)

// Canonical status values. The column is an open string so a partner
// can write transitional values, but these three are the lifecycle.
const (
	StatusPending   = "Pending"
	StatusSent      = "Sent"
	StatusCompleted = "Completed"
)

// Recommendation is the merged state of one recommendation, keyed by
// the partner-assigned external id. has_* flags are derived from the
// artifact fields and recomputed on every merge, never written directly.
type Recommendation struct {
	ExternalID       string `gorm:"column:external_id;primaryKey" json:"external_id"`
	StudentName      string `gorm:"column:student_name" json:"student_name,omitempty"`
	StudentEmail     string `gorm:"column:student_email" json:"student_email,omitempty"`
	RecommenderName  string `gorm:"column:recommender_name" json:"recommender_name,omitempty"`
	RecommenderEmail string `gorm:"column:recommender_email" json:"recommender_email,omitempty"`
	RecommenderTitle string `gorm:"column:recommender_title" json:"recommender_title,omitempty"`
	Program          string `gorm:"column:program" json:"program,omitempty"`
	Status           string `gorm:"column:status;index" json:"status,omitempty"`

	PDFURL        string `gorm:"column:pdf_url" json:"pdf_url,omitempty"`
	MovURL        string `gorm:"column:mov_url" json:"mov_url,omitempty"`
	LetterContent string `gorm:"column:letter_content" json:"letter_content,omitempty"`
	LetterHTML    string `gorm:"column:letter_html" json:"letter_html,omitempty"`

	HasPDF    bool `gorm:"column:has_pdf" json:"has_pdf"`
	HasVideo  bool `gorm:"column:has_video" json:"has_video"`
	HasLetter bool `gorm:"column:has_letter" json:"has_letter"`

	// created_at is pinned to the first write for this external id;
	// updated_at moves on every write. Gorm's automatic handling is
	// disabled so the merge owns both.
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`

	// Opaque provenance bag (origin IP, user agent, original inbound
	// payload). Passthrough only.
	Metadata datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
}

func (Recommendation) TableName() string { return "recommendation" }

// RecommendationFragment is a partial record as accepted by the upsert
// endpoint. Pointer fields distinguish "absent" from "set to empty";
// only present fields override the stored record.
type RecommendationFragment struct {
	ExternalID       string  `json:"external_id"`
	StudentName      *string `json:"student_name,omitempty"`
	StudentEmail     *string `json:"student_email,omitempty"`
	RecommenderName  *string `json:"recommender_name,omitempty"`
	RecommenderEmail *string `json:"recommender_email,omitempty"`
	RecommenderTitle *string `json:"recommender_title,omitempty"`
	Program          *string `json:"program,omitempty"`
	Status           *string `json:"status,omitempty"`

	PDFURL        *string `json:"pdf_url,omitempty"`
	MovURL        *string `json:"mov_url,omitempty"`
	LetterContent *string `json:"letter_content,omitempty"`
	LetterHTML    *string `json:"letter_html,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// HasArtifact reports whether the fragment carries any artifact content.
func (f *RecommendationFragment) HasArtifact() bool {
	present := func(p *string) bool { return p != nil && *p != "" }
	return present(f.PDFURL) || present(f.MovURL) || present(f.LetterContent) || present(f.LetterHTML)
}

// Provenance captures where an inbound payload came from. It is folded
// into the record's metadata bag verbatim.
type Provenance struct {
	IPAddress       string
	UserAgent       string
	PartnerRecordID string
	OriginalPayload map[string]any
}
