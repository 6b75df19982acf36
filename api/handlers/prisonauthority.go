package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/bailreckoner/bail-records-api/config"
	"github.com/bailreckoner/bail-records-api/databases"
	"github.com/bailreckoner/bail-records-api/models"
)

// PrisonAuthority exported for testing purposes
type PrisonAuthority struct {
	DB databases.PrisonAuthorityDatabase
}

// CreatePrisonAuthorityHandler creates a prison authority record
func (p PrisonAuthority) CreatePrisonAuthorityHandler(w http.ResponseWriter, r *http.Request) {
	var authority models.PrisonAuthority
	if err := json.NewDecoder(r.Body).Decode(&authority); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	authority.ID = primitive.NewObjectID()
	authority.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	authority.UpdatedAt = authority.CreatedAt
	authority.Version = 0
	authority.ApplyDefaults()

	if violations := authority.Validate(); len(violations) > 0 {
		config.ErrorStatus("failed to validate prison authority", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	_, err := p.DB.FindOne(context.Background(), bson.M{"authorityId": authority.AuthorityID})
	if err == nil {
		config.ErrorStatus("failed to create prison authority", http.StatusBadRequest, w, models.DuplicateKeyError{Field: "authorityId", Value: authority.AuthorityID})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to check for existing authorityId", http.StatusInternalServerError, w, err)
		return
	}

	_, err = p.DB.InsertOne(context.Background(), authority)
	if err != nil {
		config.ErrorStatus("failed to create prison authority", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(authority)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// PrisonAuthorityHandler returns all prison authorities
func (p PrisonAuthority) PrisonAuthorityHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := p.DB.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get prison authorities", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.PrisonAuthority{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// PrisonAuthorityByIDHandler returns a prison authority by ID
func (p PrisonAuthority) PrisonAuthorityByIDHandler(w http.ResponseWriter, r *http.Request) {
	authorityID := mux.Vars(r)["prison_authority_id"]

	zap.S().Debugf("prison_authority_id: %v", authorityID)

	aID, err := primitive.ObjectIDFromHex(authorityID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := p.DB.FindOne(context.Background(), bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to get prison authority by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdatePrisonAuthorityHandler merges a JSON partial update into an
// existing prison authority record
func (p PrisonAuthority) UpdatePrisonAuthorityHandler(w http.ResponseWriter, r *http.Request) {
	authorityID := mux.Vars(r)["prison_authority_id"]

	aID, err := primitive.ObjectIDFromHex(authorityID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := p.DB.FindOne(context.Background(), bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to get prison authority by ID", http.StatusNotFound, w, err)
		return
	}

	var update models.PrisonAuthorityUpdate
	if err := decodeJSONBody(r, &update); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	merged := models.MergePrisonAuthority(*existing, update)
	merged.ApplyDefaults()

	if violations := merged.Validate(); len(violations) > 0 {
		config.ErrorStatus("failed to validate prison authority", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	if merged.AuthorityID != existing.AuthorityID {
		_, err := p.DB.FindOne(context.Background(), bson.M{"authorityId": merged.AuthorityID, "_id": bson.M{"$ne": aID}})
		if err == nil {
			config.ErrorStatus("failed to update prison authority", http.StatusBadRequest, w, models.DuplicateKeyError{Field: "authorityId", Value: merged.AuthorityID})
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("failed to check for existing authorityId", http.StatusInternalServerError, w, err)
			return
		}
	}

	merged.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
	merged.Version = existing.Version + 1

	updated, err := p.DB.FindOneAndReplace(context.Background(),
		bson.M{"_id": aID, "__v": existing.Version},
		merged,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, probeErr := p.DB.FindOne(context.Background(), bson.M{"_id": aID}); probeErr != nil {
				config.ErrorStatus("failed to get prison authority by ID", http.StatusNotFound, w, probeErr)
				return
			}
			config.ErrorStatus("failed to update prison authority", http.StatusConflict, w, models.ErrConflict)
			return
		}
		config.ErrorStatus("failed to update prison authority", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeletePrisonAuthorityHandler deletes a prison authority by ID
func (p PrisonAuthority) DeletePrisonAuthorityHandler(w http.ResponseWriter, r *http.Request) {
	authorityID := mux.Vars(r)["prison_authority_id"]

	aID, err := primitive.ObjectIDFromHex(authorityID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	count, err := p.DB.DeleteOne(context.Background(), bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to delete prison authority", http.StatusInternalServerError, w, err)
		return
	}
	if count == 0 {
		config.ErrorStatus("failed to delete prison authority", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Prison authority deleted successfully",
	})
}

// AddPrisonerDataHandler appends a prisoner data entry to a prison authority
func (p PrisonAuthority) AddPrisonerDataHandler(w http.ResponseWriter, r *http.Request) {
	authorityID := mux.Vars(r)["prison_authority_id"]

	aID, err := primitive.ObjectIDFromHex(authorityID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var prisoner models.PrisonerData
	if err := json.NewDecoder(r.Body).Decode(&prisoner); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if prisoner.ID.IsZero() {
		prisoner.ID = primitive.NewObjectID()
	}

	updated, err := p.DB.FindOneAndUpdate(context.Background(),
		bson.M{"_id": aID},
		bson.M{
			"$push": bson.M{"prisonerData": prisoner},
			"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
			"$inc":  bson.M{"__v": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		config.ErrorStatus("failed to add prisoner data", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AddReleaseAuthorizationHandler appends a release authorization to a
// prison authority
func (p PrisonAuthority) AddReleaseAuthorizationHandler(w http.ResponseWriter, r *http.Request) {
	authorityID := mux.Vars(r)["prison_authority_id"]

	aID, err := primitive.ObjectIDFromHex(authorityID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var release models.ReleaseAuthorization
	if err := json.NewDecoder(r.Body).Decode(&release); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if release.ID.IsZero() {
		release.ID = primitive.NewObjectID()
	}

	updated, err := p.DB.FindOneAndUpdate(context.Background(),
		bson.M{"_id": aID},
		bson.M{
			"$push": bson.M{"releaseAuthorizations": release},
			"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
			"$inc":  bson.M{"__v": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		config.ErrorStatus("failed to add release authorization", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
