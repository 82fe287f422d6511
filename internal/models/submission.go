package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Keys managed by the server. Callers cannot set them through the field map.
const (
	SubmissionKeyID        = "_id"
	SubmissionKeyCV        = "cv"
	SubmissionKeyCreatedAt = "createdAt"
	SubmissionKeyUpdatedAt = "updatedAt"
)

// IsReservedSubmissionKey reports whether key is owned by the server.
func IsReservedSubmissionKey(key string) bool {
	switch key {
	case SubmissionKeyID, SubmissionKeyCV, SubmissionKeyCreatedAt, SubmissionKeyUpdatedAt:
		return true
	}
	return false
}

// Submission is a candidate application stored flat in userForms: the
// candidate's own keys sit next to cv and the timestamps.
type Submission struct {
	ID        primitive.ObjectID
	Fields    map[string]any
	CV        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document renders the flat bson form used for inserts.
func (s *Submission) Document() bson.M {
	doc := bson.M{}
	for k, v := range s.Fields {
		if IsReservedSubmissionKey(k) {
			continue
		}
		doc[k] = v
	}
	if !s.ID.IsZero() {
		doc[SubmissionKeyID] = s.ID
	}
	if s.CV != "" {
		doc[SubmissionKeyCV] = s.CV
	}
	doc[SubmissionKeyCreatedAt] = s.CreatedAt
	doc[SubmissionKeyUpdatedAt] = s.UpdatedAt
	return doc
}

// Data is the persisted mapping without the id, as echoed back on submit.
func (s *Submission) Data() map[string]any {
	out := make(map[string]any, len(s.Fields)+3)
	for k, v := range s.Fields {
		if !IsReservedSubmissionKey(k) {
			out[k] = v
		}
	}
	if s.CV != "" {
		out[SubmissionKeyCV] = s.CV
	}
	out[SubmissionKeyCreatedAt] = s.CreatedAt
	out[SubmissionKeyUpdatedAt] = s.UpdatedAt
	return out
}

func (s Submission) MarshalJSON() ([]byte, error) {
	out := s.Data()
	if !s.ID.IsZero() {
		out[SubmissionKeyID] = s.ID.Hex()
	}
	return json.Marshal(out)
}

// SubmissionFromDocument rebuilds a Submission from a stored document.
// Legacy rows may carry non-string scalars; they are kept as decoded.
func SubmissionFromDocument(doc bson.M) Submission {
	s := Submission{Fields: map[string]any{}}
	for k, v := range doc {
		switch k {
		case SubmissionKeyID:
			if oid, ok := v.(primitive.ObjectID); ok {
				s.ID = oid
			}
		case SubmissionKeyCV:
			if str, ok := v.(string); ok {
				s.CV = str
			} else if v != nil {
				s.CV = fmt.Sprint(v)
			}
		case SubmissionKeyCreatedAt:
			s.CreatedAt = asTime(v)
		case SubmissionKeyUpdatedAt:
			s.UpdatedAt = asTime(v)
		default:
			s.Fields[k] = v
		}
	}
	return s
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	}
	return time.Time{}
}
