package mongo

import (
	"context"

	"github.com/yoockh/hireflow/config"
	"github.com/yoockh/hireflow/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SubmissionRepository interface {
	Insert(ctx context.Context, s *models.Submission) error
	List(ctx context.Context) ([]models.Submission, error)
	Count(ctx context.Context) (int64, error)
}

type submissionRepo struct {
	col *mongo.Collection
}

func NewSubmissionRepo(db *mongo.Database) SubmissionRepository {
	return &submissionRepo{col: db.Collection(config.CollectionUserForms)}
}

func (r *submissionRepo) Insert(ctx context.Context, s *models.Submission) error {
	res, err := r.col.InsertOne(ctx, s.Document())
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}

func (r *submissionRepo) List(ctx context.Context) ([]models.Submission, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.Submission, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.SubmissionFromDocument(d))
	}
	return out, nil
}

func (r *submissionRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
