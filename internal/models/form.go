package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FieldSpec struct {
	ID       string `bson:"id" json:"id" validate:"required"`
	Type     string `bson:"type" json:"type" validate:"required"` // text|number|file|...
	Label    string `bson:"label" json:"label" validate:"required"`
	Required bool   `bson:"required" json:"required"`
}

// FormTemplate is an admin-authored job application form (adminForms).
type FormTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FormTitle   string             `bson:"formTitle" json:"formTitle"`
	Description string             `bson:"description" json:"description"`
	Department  string             `bson:"department" json:"department"`
	Fields      []FieldSpec        `bson:"fields" json:"fields"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FormPatch carries the parts of a template an update replaces; nil means
// keep the stored value.
type FormPatch struct {
	FormTitle   *string
	Description *string
	Department  *string
	Fields      *[]FieldSpec
}
