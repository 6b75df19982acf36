package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bailreckoner/bail-records-api/models"
)

const prisonAuthorityName = "prisonauthorities"

// PrisonAuthorityDatabase contains the methods to use with the prison authority database
type PrisonAuthorityDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.PrisonAuthority, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.PrisonAuthority, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.PrisonAuthority, error)
	FindOneAndReplace(context.Context, interface{}, interface{}, ...*options.FindOneAndReplaceOptions) (*models.PrisonAuthority, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
}

type prisonAuthorityDatabase struct {
	db DatabaseHelper
}

// NewPrisonAuthorityDatabase initializes a new instance of prison authority database with the provided db connection
func NewPrisonAuthorityDatabase(db DatabaseHelper) PrisonAuthorityDatabase {
	return &prisonAuthorityDatabase{
		db: db,
	}
}

func (p *prisonAuthorityDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.PrisonAuthority, error) {
	authority := &models.PrisonAuthority{}
	err := p.db.Collection(prisonAuthorityName).FindOne(ctx, filter, opts...).Decode(&authority)
	if err != nil {
		return nil, err
	}
	return authority, nil
}

func (p *prisonAuthorityDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.PrisonAuthority, error) {
	var authorities []models.PrisonAuthority
	cur, err := p.db.Collection(prisonAuthorityName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&authorities)
	if err != nil {
		return nil, err
	}
	return authorities, nil
}

func (p *prisonAuthorityDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := p.db.Collection(prisonAuthorityName).InsertOne(ctx, document, opts...)
	return res, err
}

func (p *prisonAuthorityDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.PrisonAuthority, error) {
	authority := &models.PrisonAuthority{}
	err := p.db.Collection(prisonAuthorityName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&authority)
	if err != nil {
		return nil, err
	}
	return authority, nil
}

func (p *prisonAuthorityDatabase) FindOneAndReplace(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.FindOneAndReplaceOptions) (*models.PrisonAuthority, error) {
	authority := &models.PrisonAuthority{}
	err := p.db.Collection(prisonAuthorityName).FindOneAndReplace(ctx, filter, replacement, opts...).Decode(&authority)
	if err != nil {
		return nil, err
	}
	return authority, nil
}

func (p *prisonAuthorityDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return p.db.Collection(prisonAuthorityName).DeleteOne(ctx, filter, opts...)
}
