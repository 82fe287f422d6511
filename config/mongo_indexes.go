package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names are shared with the existing dashboard data and must not change.
const (
	CollectionHRs        = "hrs"
	CollectionAdminForms = "adminForms"
	CollectionUserForms  = "userForms"
)

// HREmailIndex is the unique index that rejects duplicate sign-ups.
func HREmailIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_hr_email").SetUnique(true),
	}
}

func EnsureMongoIndexes(cfg *Config) error {
	db, err := MongoDatabase(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hrs := db.Collection(CollectionHRs)
	if _, err := hrs.Indexes().CreateOne(ctx, HREmailIndex()); err != nil {
		return err
	}

	forms := db.Collection(CollectionAdminForms)
	_, err = forms.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "department", Value: 1}},
			Options: options.Index().SetName("by_department"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("by_created"),
		},
	})
	if err != nil {
		return err
	}

	submissions := db.Collection(CollectionUserForms)
	_, err = submissions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("by_created"),
	})
	return err
}
