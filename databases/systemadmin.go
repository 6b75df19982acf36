package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bailreckoner/bail-records-api/models"
)

const systemAdminName = "systemadmins"

// SystemAdminDatabase contains the methods to use with the system admin database
type SystemAdminDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.SystemAdmin, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.SystemAdmin, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.SystemAdmin, error)
	FindOneAndReplace(context.Context, interface{}, interface{}, ...*options.FindOneAndReplaceOptions) (*models.SystemAdmin, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
}

type systemAdminDatabase struct {
	db DatabaseHelper
}

// NewSystemAdminDatabase initializes a new instance of system admin database with the provided db connection
func NewSystemAdminDatabase(db DatabaseHelper) SystemAdminDatabase {
	return &systemAdminDatabase{
		db: db,
	}
}

func (s *systemAdminDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SystemAdmin, error) {
	admin := &models.SystemAdmin{}
	err := s.db.Collection(systemAdminName).FindOne(ctx, filter, opts...).Decode(&admin)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *systemAdminDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.SystemAdmin, error) {
	var admins []models.SystemAdmin
	cur, err := s.db.Collection(systemAdminName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&admins)
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (s *systemAdminDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := s.db.Collection(systemAdminName).InsertOne(ctx, document, opts...)
	return res, err
}

func (s *systemAdminDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.SystemAdmin, error) {
	admin := &models.SystemAdmin{}
	err := s.db.Collection(systemAdminName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&admin)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *systemAdminDatabase) FindOneAndReplace(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.FindOneAndReplaceOptions) (*models.SystemAdmin, error) {
	admin := &models.SystemAdmin{}
	err := s.db.Collection(systemAdminName).FindOneAndReplace(ctx, filter, replacement, opts...).Decode(&admin)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *systemAdminDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return s.db.Collection(systemAdminName).DeleteOne(ctx, filter, opts...)
}
