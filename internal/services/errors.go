package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingExternalID rejects upserts that carry no key.
var ErrMissingExternalID = errors.New("external_id required")

// ErrInvalidCredentials covers any login mismatch; callers must not
// learn whether the student id or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid student id or password")

// MissingFieldsError reports which required fields an inbound payload
// lacked after alias normalization.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// UnknownWebhookTypeError rejects webhook envelopes whose type
// discriminator is not recognized.
type UnknownWebhookTypeError struct {
	Type string
}

func (e *UnknownWebhookTypeError) Error() string {
	return fmt.Sprintf("unknown webhook type %q", e.Type)
}

type requiredField struct {
	name  string
	value string
}

func missingOf(fields []requiredField) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
