package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bailreckoner/bail-records-api/models"
)

const judicialAuthorityName = "judicialauthorities"

// JudicialAuthorityDatabase contains the methods to use with the judicial authority database
type JudicialAuthorityDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.JudicialAuthority, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.JudicialAuthority, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.JudicialAuthority, error)
	FindOneAndReplace(context.Context, interface{}, interface{}, ...*options.FindOneAndReplaceOptions) (*models.JudicialAuthority, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
}

type judicialAuthorityDatabase struct {
	db DatabaseHelper
}

// NewJudicialAuthorityDatabase initializes a new instance of judicial authority database with the provided db connection
func NewJudicialAuthorityDatabase(db DatabaseHelper) JudicialAuthorityDatabase {
	return &judicialAuthorityDatabase{
		db: db,
	}
}

func (j *judicialAuthorityDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.JudicialAuthority, error) {
	authority := &models.JudicialAuthority{}
	err := j.db.Collection(judicialAuthorityName).FindOne(ctx, filter, opts...).Decode(&authority)
	if err != nil {
		return nil, err
	}
	return authority, nil
}

func (j *judicialAuthorityDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.JudicialAuthority, error) {
	var authorities []models.JudicialAuthority
	cur, err := j.db.Collection(judicialAuthorityName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&authorities)
	if err != nil {
		return nil, err
	}
	return authorities, nil
}

func (j *judicialAuthorityDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := j.db.Collection(judicialAuthorityName).InsertOne(ctx, document, opts...)
	return res, err
}

func (j *judicialAuthorityDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.JudicialAuthority, error) {
	authority := &models.JudicialAuthority{}
	err := j.db.Collection(judicialAuthorityName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&authority)
	if err != nil {
		return nil, err
	}
	return authority, nil
}

func (j *judicialAuthorityDatabase) FindOneAndReplace(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.FindOneAndReplaceOptions) (*models.JudicialAuthority, error) {
	authority := &models.JudicialAuthority{}
	err := j.db.Collection(judicialAuthorityName).FindOneAndReplace(ctx, filter, replacement, opts...).Decode(&authority)
	if err != nil {
		return nil, err
	}
	return authority, nil
}

func (j *judicialAuthorityDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return j.db.Collection(judicialAuthorityName).DeleteOne(ctx, filter, opts...)
}
