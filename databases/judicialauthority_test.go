package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bailreckoner/bail-records-api/config"
	"github.com/bailreckoner/bail-records-api/databases"
	"github.com/bailreckoner/bail-records-api/databases/mocks"
	"github.com/bailreckoner/bail-records-api/models"
)

func TestNewJudicialAuthorityDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	authorityDB := databases.NewJudicialAuthorityDatabase(db)

	assert.NotEmpty(t, authorityDB)
}

func TestJudicialAuthorityDatabase_FindOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.JudicialAuthority)
		(*arg).JudgeID = "JUDGE-001"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "judicialauthorities").Return(collectionHelper)

	authorityDba := databases.NewJudicialAuthorityDatabase(dbHelper)

	authority, err := authorityDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, authority)
	assert.EqualError(t, err, "mocked-error")

	authority, err = authorityDba.FindOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, "JUDGE-001", authority.JudgeID)
	assert.NoError(t, err)
}

func TestJudicialAuthorityDatabase_DeleteOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("DeleteOne", context.Background(), bson.M{"error": true}).
		Return(int64(0), errors.New("mocked-error"))

	collectionHelper.(*mocks.CollectionHelper).
		On("DeleteOne", context.Background(), bson.M{"error": false}).
		Return(int64(1), nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "judicialauthorities").Return(collectionHelper)

	authorityDba := databases.NewJudicialAuthorityDatabase(dbHelper)

	count, err := authorityDba.DeleteOne(context.Background(), bson.M{"error": true})

	assert.Zero(t, count)
	assert.EqualError(t, err, "mocked-error")

	count, err = authorityDba.DeleteOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, int64(1), count)
	assert.NoError(t, err)
}
