package normalization

import (
	"reflect"
	"testing"
)

func TestResolveFirstPresentAliasWins(t *testing.T) {
	payload := map[string]any{
		"pdfUrl":  "https://example.com/camel.pdf",
		"fileUrl": "https://example.com/alt.pdf",
	}
	if got := Resolve(payload, "pdf_url"); got != "https://example.com/camel.pdf" {
		t.Fatalf("Resolve(pdf_url) = %q, want the camelCase spelling", got)
	}
}

func TestResolveSkipsBlankValues(t *testing.T) {
	payload := map[string]any{
		"letter_content": "   ",
		"letterContent":  "A fine student.",
	}
	if got := Resolve(payload, "letter_content"); got != "A fine student." {
		t.Fatalf("Resolve(letter_content) = %q, want the non-blank alias", got)
	}
}

func TestResolveIgnoresNonStrings(t *testing.T) {
	payload := map[string]any{"status": 42}
	if got := Resolve(payload, "status"); got != "" {
		t.Fatalf("Resolve(status) = %q, want empty for non-string value", got)
	}
}

// Payloads spelled with snake_case, camelCase, or the short generic
// names must normalize to the same fragment.
func TestFragmentEquivalentSpellings(t *testing.T) {
	snake := map[string]any{
		"external_id":       "sr_100",
		"student_name":      "Jane Smith",
		"student_email":     "jane@example.edu",
		"recommender_name":  "Dr. Lee",
		"recommender_email": "lee@example.edu",
		"pdf_url":           "https://example.com/r.pdf",
		"letter_content":    "Strong endorsement.",
	}
	camel := map[string]any{
		"externalId":    "sr_100",
		"studentName":   "Jane Smith",
		"studentEmail":  "jane@example.edu",
		"name":          "Dr. Lee",
		"email":         "lee@example.edu",
		"fileUrl":       "https://example.com/r.pdf",
		"letterContent": "Strong endorsement.",
	}

	a, b := Fragment(snake), Fragment(camel)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("fragments differ:\nsnake: %+v\ncamel: %+v", a, b)
	}
	if a.ExternalID != "sr_100" {
		t.Fatalf("ExternalID = %q", a.ExternalID)
	}
	if a.PDFURL == nil || *a.PDFURL != "https://example.com/r.pdf" {
		t.Fatalf("PDFURL not resolved: %v", a.PDFURL)
	}
}

func TestMissingRequiredReportsInOrder(t *testing.T) {
	frag := Fragment(map[string]any{
		"recommender_name": "Dr. Lee",
		"student_email":    "jane@example.edu",
	})
	got := MissingRequired(frag)
	want := []string{"recommender_email", "student_name"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MissingRequired = %v, want %v", got, want)
	}
}

func TestMissingRequiredEmptyWhenComplete(t *testing.T) {
	frag := Fragment(map[string]any{
		"recommender_name":  "Dr. Lee",
		"recommender_email": "lee@example.edu",
		"student_name":      "Jane Smith",
		"student_email":     "jane@example.edu",
	})
	if got := MissingRequired(frag); len(got) != 0 {
		t.Fatalf("MissingRequired = %v, want none", got)
	}
}
