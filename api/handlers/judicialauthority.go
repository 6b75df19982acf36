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
	"github.com/bailreckoner/bail-records-api/uploads"
)

// judicialUploadFields declares the document categories a judicial authority
// update may carry, each capped at ten files
var judicialUploadFields = []uploads.Field{
	{Name: models.CategoryCourtProceedings, MaxCount: 10},
	{Name: models.CategoryRiskAssessmentReports, MaxCount: 10},
	{Name: models.CategoryLegalOpinions, MaxCount: 10},
}

// JudicialAuthority exported for testing purposes
type JudicialAuthority struct {
	DB      databases.JudicialAuthorityDatabase
	Uploads uploads.Resolver
}

// CreateJudicialAuthorityHandler creates a judicial authority record
func (j JudicialAuthority) CreateJudicialAuthorityHandler(w http.ResponseWriter, r *http.Request) {
	var authority models.JudicialAuthority
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
		config.ErrorStatus("failed to validate judicial authority", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	_, err := j.DB.FindOne(context.Background(), bson.M{"judgeId": authority.JudgeID})
	if err == nil {
		config.ErrorStatus("failed to create judicial authority", http.StatusBadRequest, w, models.DuplicateKeyError{Field: "judgeId", Value: authority.JudgeID})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to check for existing judgeId", http.StatusInternalServerError, w, err)
		return
	}

	_, err = j.DB.InsertOne(context.Background(), authority)
	if err != nil {
		config.ErrorStatus("failed to create judicial authority", http.StatusInternalServerError, w, err)
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

// JudicialAuthorityHandler returns all judicial authorities
func (j JudicialAuthority) JudicialAuthorityHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := j.DB.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get judicial authorities", http.StatusNotFound, w, err)
		return
	}
	// Because the frontend requires that the data elements exist, if
	// len == 0 then we will just return an empty data object
	if len(dbResp) == 0 {
		dbResp = []models.JudicialAuthority{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// JudicialAuthorityByIDHandler returns a judicial authority by ID
func (j JudicialAuthority) JudicialAuthorityByIDHandler(w http.ResponseWriter, r *http.Request) {
	authorityID := mux.Vars(r)["judicial_authority_id"]

	zap.S().Debugf("judicial_authority_id: %v", authorityID)

	aID, err := primitive.ObjectIDFromHex(authorityID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := j.DB.FindOne(context.Background(), bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to get judicial authority by ID", http.StatusNotFound, w, err)
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

// UpdateJudicialAuthorityHandler merges a partial update, and optionally
// uploaded documents, into an existing judicial authority record
func (j JudicialAuthority) UpdateJudicialAuthorityHandler(w http.ResponseWriter, r *http.Request) {
	authorityID := mux.Vars(r)["judicial_authority_id"]

	aID, err := primitive.ObjectIDFromHex(authorityID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := j.DB.FindOne(context.Background(), bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to get judicial authority by ID", http.StatusNotFound, w, err)
		return
	}

	var update models.JudicialAuthorityUpdate
	var files map[string][]string
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
			return
		}
		if err := decodeMultipartPayload(r, &update); err != nil {
			config.ErrorStatus("failed to decode update payload", http.StatusBadRequest, w, err)
			return
		}
		files, err = j.Uploads.Resolve(r.Context(), r.MultipartForm, judicialUploadFields)
		if err != nil {
			var attErr uploads.AttachmentError
			if errors.As(err, &attErr) {
				config.ErrorStatus("failed to resolve attachments", http.StatusBadRequest, w, err)
				return
			}
			config.ErrorStatus("failed to resolve attachments", http.StatusInternalServerError, w, err)
			return
		}
	} else {
		if err := decodeJSONBody(r, &update); err != nil {
			config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
			return
		}
	}

	merged := models.MergeJudicialAuthority(*existing, update, files)
	merged.ApplyDefaults()

	if violations := merged.Validate(); len(violations) > 0 {
		config.ErrorStatus("failed to validate judicial authority", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	if merged.JudgeID != existing.JudgeID {
		_, err := j.DB.FindOne(context.Background(), bson.M{"judgeId": merged.JudgeID, "_id": bson.M{"$ne": aID}})
		if err == nil {
			config.ErrorStatus("failed to update judicial authority", http.StatusBadRequest, w, models.DuplicateKeyError{Field: "judgeId", Value: merged.JudgeID})
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("failed to check for existing judgeId", http.StatusInternalServerError, w, err)
			return
		}
	}

	merged.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
	merged.Version = existing.Version + 1

	// compare-and-set on the version the merge was computed from, a
	// concurrent writer bumps __v and this replace matches nothing
	updated, err := j.DB.FindOneAndReplace(context.Background(),
		bson.M{"_id": aID, "__v": existing.Version},
		merged,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, probeErr := j.DB.FindOne(context.Background(), bson.M{"_id": aID}); probeErr != nil {
				config.ErrorStatus("failed to get judicial authority by ID", http.StatusNotFound, w, probeErr)
				return
			}
			config.ErrorStatus("failed to update judicial authority", http.StatusConflict, w, models.ErrConflict)
			return
		}
		config.ErrorStatus("failed to update judicial authority", http.StatusInternalServerError, w, err)
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

// DeleteJudicialAuthorityHandler deletes a judicial authority by ID
func (j JudicialAuthority) DeleteJudicialAuthorityHandler(w http.ResponseWriter, r *http.Request) {
	authorityID := mux.Vars(r)["judicial_authority_id"]

	aID, err := primitive.ObjectIDFromHex(authorityID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	count, err := j.DB.DeleteOne(context.Background(), bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to delete judicial authority", http.StatusInternalServerError, w, err)
		return
	}
	if count == 0 {
		config.ErrorStatus("failed to delete judicial authority", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Judicial authority deleted successfully",
	})
}

// AddBailApplicationHandler appends a bail application to a judicial authority
func (j JudicialAuthority) AddBailApplicationHandler(w http.ResponseWriter, r *http.Request) {
	authorityID := mux.Vars(r)["judicial_authority_id"]

	aID, err := primitive.ObjectIDFromHex(authorityID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var application models.BailApplication
	if err := json.NewDecoder(r.Body).Decode(&application); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	application.ApplyDefaults()

	if violations := application.Validate(); len(violations) > 0 {
		config.ErrorStatus("failed to validate bail application", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	updated, err := j.DB.FindOneAndUpdate(context.Background(),
		bson.M{"_id": aID},
		bson.M{
			"$push": bson.M{"bailApplications": application},
			"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
			"$inc":  bson.M{"__v": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		config.ErrorStatus("failed to add bail application", http.StatusNotFound, w, err)
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
