package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/hireflow/internal/models"
	"github.com/yoockh/hireflow/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestHRRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		// createIndexes, then insert
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		repo := NewHRRepo(mt.DB)

		a := &models.HRAccount{Name: "Hana", Email: "hana@hireflow.com", PasswordHash: "$2a$12$x"}
		require.NoError(t, repo.Create(context.Background(), a))
		assert.False(t, a.ID.IsZero())
	})

	mt.Run("duplicate email is a conflict", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: hireflow.hrs index: uniq_hr_email",
		}))
		repo := NewHRRepo(mt.DB)

		err := repo.Create(context.Background(), &models.HRAccount{Email: "hana@hireflow.com"})
		assert.ErrorIs(t, err, utils.ErrConflict)
	})

	mt.Run("no insert until the email index is confirmed", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Name:    "DuplicateKey",
			Message: "Index build failed: E11000 duplicate key error collection: hireflow.hrs index: uniq_hr_email",
		}))
		repo := NewHRRepo(mt.DB)

		err := repo.Create(context.Background(), &models.HRAccount{Email: "hana@hireflow.com"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, utils.ErrConflict)
		assert.Contains(t, err.Error(), "ensure unique email index")
		for _, ev := range mt.GetAllStartedEvents() {
			assert.NotEqual(t, "insert", ev.CommandName)
		}

		// the build is retried on the next sign-up and then only once
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		require.NoError(t, repo.Create(context.Background(), &models.HRAccount{Email: "hana@hireflow.com"}))
		require.NoError(t, repo.Create(context.Background(), &models.HRAccount{Email: "ines@hireflow.com"}))

		var builds int
		for _, ev := range mt.GetAllStartedEvents() {
			if ev.CommandName == "createIndexes" {
				builds++
			}
		}
		assert.Equal(t, 2, builds)
	})

	mt.Run("unknown email is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "hireflow.hrs", mtest.FirstBatch))
		repo := NewHRRepo(mt.DB)

		_, err := repo.GetByEmail(context.Background(), "nobody@hireflow.com")
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	mt.Run("lookup decodes hash field", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "hireflow.hrs", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Hana"},
			{Key: "email", Value: "hana@hireflow.com"},
			{Key: "password", Value: "$2a$12$hash"},
		}))
		repo := NewHRRepo(mt.DB)

		a, err := repo.GetByEmail(context.Background(), "hana@hireflow.com")
		require.NoError(t, err)
		assert.Equal(t, oid, a.ID)
		assert.Equal(t, "$2a$12$hash", a.PasswordHash)
	})
}

func TestFormRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("malformed id is not found without a round trip", func(mt *mtest.T) {
		repo := NewFormRepo(mt.DB)

		_, err := repo.GetByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(t, err, utils.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(context.Background(), "zzz"), utils.ErrNotFound)
	})

	mt.Run("update with no match is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewFormRepo(mt.DB)

		title := "Backend Engineer"
		err := repo.Update(context.Background(), primitive.NewObjectID().Hex(),
			models.FormPatch{FormTitle: &title}, time.Now().UTC())
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	mt.Run("delete removes a document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewFormRepo(mt.DB)

		assert.NoError(t, repo.Delete(context.Background(), primitive.NewObjectID().Hex()))
	})

	mt.Run("delete with nothing removed is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewFormRepo(mt.DB)

		assert.ErrorIs(t, repo.Delete(context.Background(), primitive.NewObjectID().Hex()), utils.ErrNotFound)
	})

	mt.Run("list decodes every template", func(mt *mtest.T) {
		first := primitive.NewObjectID()
		second := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "hireflow.adminForms", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: first}, {Key: "formTitle", Value: "Designer"}, {Key: "fields", Value: bson.A{
					bson.D{{Key: "id", Value: "f1"}, {Key: "type", Value: "text"}, {Key: "label", Value: "Name"}, {Key: "required", Value: true}},
				}}},
				bson.D{{Key: "_id", Value: second}, {Key: "formTitle", Value: "Engineer"}},
			),
		)
		repo := NewFormRepo(mt.DB)

		forms, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, forms, 2)
		assert.Equal(t, first, forms[0].ID)
		assert.Equal(t, []models.FieldSpec{{ID: "f1", Type: "text", Label: "Name", Required: true}}, forms[0].Fields)
		assert.Equal(t, "Engineer", forms[1].FormTitle)
	})
}

func TestSubmissionRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewSubmissionRepo(mt.DB)

		s := &models.Submission{Fields: map[string]any{"name": "Alice"}, CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
		require.NoError(t, repo.Insert(context.Background(), s))
		assert.False(t, s.ID.IsZero())
	})

	mt.Run("list returns flat documents", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "hireflow.userForms", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Alice"},
			{Key: "cv", Value: "https://cdn/cv.pdf"},
			{Key: "createdAt", Value: primitive.NewDateTimeFromTime(time.Now())},
		}))
		repo := NewSubmissionRepo(mt.DB)

		out, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, oid, out[0].ID)
		assert.Equal(t, "https://cdn/cv.pdf", out[0].CV)
		assert.Equal(t, map[string]any{"name": "Alice"}, out[0].Fields)
	})
}
