package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/hireflow/config"
	"github.com/yoockh/hireflow/internal/models"
	"github.com/yoockh/hireflow/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FormRepository interface {
	Create(ctx context.Context, f *models.FormTemplate) error
	List(ctx context.Context) ([]models.FormTemplate, error)
	GetByID(ctx context.Context, id string) (*models.FormTemplate, error)
	Update(ctx context.Context, id string, patch models.FormPatch, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type formRepo struct {
	col *mongo.Collection
}

func NewFormRepo(db *mongo.Database) FormRepository {
	return &formRepo{col: db.Collection(config.CollectionAdminForms)}
}

// objectID treats a malformed hex id as a missing document.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.ErrNotFound
	}
	return oid, nil
}

func (r *formRepo) Create(ctx context.Context, f *models.FormTemplate) error {
	res, err := r.col.InsertOne(ctx, f)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = oid
	}
	return nil
}

func (r *formRepo) List(ctx context.Context) ([]models.FormTemplate, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.FormTemplate{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *formRepo) GetByID(ctx context.Context, id string) (*models.FormTemplate, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var f models.FormTemplate
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *formRepo) Update(ctx context.Context, id string, patch models.FormPatch, updatedAt time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{"updatedAt": updatedAt}
	if patch.FormTitle != nil {
		set["formTitle"] = *patch.FormTitle
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Department != nil {
		set["department"] = *patch.Department
	}
	if patch.Fields != nil {
		set["fields"] = *patch.Fields
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *formRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *formRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
