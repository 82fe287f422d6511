package models

import (
	"fmt"
	"strings"
)

// Applicant is one row of the Applications table, keyed by the column names
// the sync workflow uses ("Name", "Email address", "Stage", ...).
type Applicant map[string]any

// Column names read by the analytics and workflow features.
const (
	ApplicantColName           = "Name"
	ApplicantColEmail          = "Email address"
	ApplicantColApplyingFor    = "Applying For"
	ApplicantColStage          = "Stage"
	ApplicantColPhoneInterview = "Phone interview"
	ApplicantColJDCVScore      = "JD CV Score"
)

// String returns the column as text, or "" when missing or null.
func (a Applicant) String(col string) string {
	v, ok := a[col]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}

// Shortlisted matches the rows the credential mail goes to: phone interview
// passed or stage set to Shortlisted.
func (a Applicant) Shortlisted() bool {
	return strings.EqualFold(strings.TrimSpace(a.String(ApplicantColPhoneInterview)), "yes") ||
		strings.EqualFold(strings.TrimSpace(a.String(ApplicantColStage)), "shortlisted")
}

func (a Applicant) Hired() bool {
	return strings.EqualFold(strings.TrimSpace(a.String(ApplicantColStage)), "hired")
}
