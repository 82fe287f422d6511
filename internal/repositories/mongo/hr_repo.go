package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/yoockh/hireflow/config"
	"github.com/yoockh/hireflow/internal/models"
	"github.com/yoockh/hireflow/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type HRRepository interface {
	// Create returns utils.ErrConflict when the email is already registered.
	// It refuses to insert until the unique email index is confirmed.
	Create(ctx context.Context, a *models.HRAccount) error
	GetByEmail(ctx context.Context, email string) (*models.HRAccount, error)
}

type hrRepo struct {
	col *mongo.Collection
	// indexed is set once the unique email index is confirmed; inserts wait
	// for it so a failed start-up build never lets duplicates in
	indexed atomic.Bool
}

func NewHRRepo(db *mongo.Database) HRRepository {
	return &hrRepo{col: db.Collection(config.CollectionHRs)}
}

func (r *hrRepo) Create(ctx context.Context, a *models.HRAccount) error {
	if err := r.ensureEmailIndex(ctx); err != nil {
		return err
	}

	res, err := r.col.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ErrConflict
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (r *hrRepo) ensureEmailIndex(ctx context.Context) error {
	if r.indexed.Load() {
		return nil
	}
	if _, err := r.col.Indexes().CreateOne(ctx, config.HREmailIndex()); err != nil {
		return fmt.Errorf("ensure unique email index: %w", err)
	}
	r.indexed.Store(true)
	return nil
}

func (r *hrRepo) GetByEmail(ctx context.Context, email string) (*models.HRAccount, error) {
	var a models.HRAccount
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
