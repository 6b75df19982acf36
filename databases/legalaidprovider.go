package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bailreckoner/bail-records-api/models"
)

const legalAidProviderName = "legalaidproviders"

// LegalAidProviderDatabase contains the methods to use with the legal aid provider database
type LegalAidProviderDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.LegalAidProvider, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.LegalAidProvider, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.LegalAidProvider, error)
	FindOneAndReplace(context.Context, interface{}, interface{}, ...*options.FindOneAndReplaceOptions) (*models.LegalAidProvider, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
}

type legalAidProviderDatabase struct {
	db DatabaseHelper
}

// NewLegalAidProviderDatabase initializes a new instance of legal aid provider database with the provided db connection
func NewLegalAidProviderDatabase(db DatabaseHelper) LegalAidProviderDatabase {
	return &legalAidProviderDatabase{
		db: db,
	}
}

func (l *legalAidProviderDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.LegalAidProvider, error) {
	provider := &models.LegalAidProvider{}
	err := l.db.Collection(legalAidProviderName).FindOne(ctx, filter, opts...).Decode(&provider)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func (l *legalAidProviderDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.LegalAidProvider, error) {
	var providers []models.LegalAidProvider
	cur, err := l.db.Collection(legalAidProviderName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&providers)
	if err != nil {
		return nil, err
	}
	return providers, nil
}

func (l *legalAidProviderDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := l.db.Collection(legalAidProviderName).InsertOne(ctx, document, opts...)
	return res, err
}

func (l *legalAidProviderDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.LegalAidProvider, error) {
	provider := &models.LegalAidProvider{}
	err := l.db.Collection(legalAidProviderName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&provider)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func (l *legalAidProviderDatabase) FindOneAndReplace(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.FindOneAndReplaceOptions) (*models.LegalAidProvider, error) {
	provider := &models.LegalAidProvider{}
	err := l.db.Collection(legalAidProviderName).FindOneAndReplace(ctx, filter, replacement, opts...).Decode(&provider)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func (l *legalAidProviderDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return l.db.Collection(legalAidProviderName).DeleteOne(ctx, filter, opts...)
}
