package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// HRAccount is an HR staff login. The bcrypt hash lives in the "password"
// field of the hrs collection.
type HRAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
}

// HRProfile is what a successful login hands back to the dashboard.
type HRProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
