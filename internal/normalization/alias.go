package normalization

import (
	"strings"

	"github.com/mockuniversity/mocku-backend/internal/types"
)

// Historical partner payloads spell the same field several ways. Each
// canonical field maps to the ordered list of accepted spellings; the
// first present, non-empty value wins. All alias handling lives here,
// at the inbound boundary, so the merge logic only ever sees canonical
// names.
var fieldAliases = map[string][]string{
	"external_id":       {"external_id", "externalId"},
	"student_name":      {"student_name", "studentName"},
	"student_email":     {"student_email", "studentEmail"},
	"recommender_name":  {"recommender_name", "recommenderName", "name"},
	"recommender_email": {"recommender_email", "recommenderEmail", "email"},
	"recommender_title": {"recommender_title", "recommenderTitle", "title"},
	"program":           {"program"},
	"status":            {"status"},
	"pdf_url":           {"pdf_url", "pdfUrl", "file_url", "fileUrl"},
	"mov_url":           {"mov_url", "movUrl", "video_url", "videoUrl"},
	"letter_content":    {"letter_content", "letterContent", "content", "letter"},
	"letter_html":       {"letter_html", "letterHtml"},
}

// RequiredFields must all be present after normalization for an inbound
// recommendation to be accepted.
var RequiredFields = []string{"recommender_name", "recommender_email", "student_name", "student_email"}

// Resolve probes the alias list for canonical and returns the first
// present, non-empty string value.
func Resolve(payload map[string]any, canonical string) string {
	names, ok := fieldAliases[canonical]
	if !ok {
		names = []string{canonical}
	}
	for _, name := range names {
		raw, present := payload[name]
		if !present {
			continue
		}
		s, isString := raw.(string)
		if isString && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Fragment normalizes an inbound payload into the canonical fragment
// shape. Only resolved, non-empty fields are set.
func Fragment(payload map[string]any) types.RecommendationFragment {
	frag := types.RecommendationFragment{
		ExternalID: Resolve(payload, "external_id"),
	}
	set := func(dst **string, canonical string) {
		if v := Resolve(payload, canonical); v != "" {
			*dst = &v
		}
	}
	set(&frag.StudentName, "student_name")
	set(&frag.StudentEmail, "student_email")
	set(&frag.RecommenderName, "recommender_name")
	set(&frag.RecommenderEmail, "recommender_email")
	set(&frag.RecommenderTitle, "recommender_title")
	set(&frag.Program, "program")
	set(&frag.Status, "status")
	set(&frag.PDFURL, "pdf_url")
	set(&frag.MovURL, "mov_url")
	set(&frag.LetterContent, "letter_content")
	set(&frag.LetterHTML, "letter_html")
	return frag
}

// MissingRequired reports which required canonical fields the fragment
// lacks, in declaration order.
func MissingRequired(frag types.RecommendationFragment) []string {
	var missing []string
	byName := map[string]*string{
		"recommender_name":  frag.RecommenderName,
		"recommender_email": frag.RecommenderEmail,
		"student_name":      frag.StudentName,
		"student_email":     frag.StudentEmail,
	}
	for _, name := range RequiredFields {
		if v := byName[name]; v == nil || strings.TrimSpace(*v) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
