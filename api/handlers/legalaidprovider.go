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

// providerUploadFields declares the document categories a legal aid provider
// may upload, powerOfAttorney holds a single file
var providerUploadFields = []uploads.Field{
	{Name: models.CategoryPowerOfAttorney, MaxCount: 1},
	{Name: models.CategoryCaseFiles, MaxCount: 10},
	{Name: models.CategorySupportingAffidavits, MaxCount: 10},
}

// LegalAidProvider exported for testing purposes
type LegalAidProvider struct {
	DB      databases.LegalAidProviderDatabase
	Uploads uploads.Resolver
}

// CreateLegalAidProviderHandler creates a legal aid provider record
func (l LegalAidProvider) CreateLegalAidProviderHandler(w http.ResponseWriter, r *http.Request) {
	var provider models.LegalAidProvider
	if err := json.NewDecoder(r.Body).Decode(&provider); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	provider.ID = primitive.NewObjectID()
	provider.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	provider.UpdatedAt = provider.CreatedAt
	provider.Version = 0
	provider.ApplyDefaults()

	if violations := provider.Validate(); len(violations) > 0 {
		config.ErrorStatus("failed to validate legal aid provider", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	_, err := l.DB.FindOne(context.Background(), bson.M{"lawyerId": provider.LawyerID})
	if err == nil {
		config.ErrorStatus("failed to create legal aid provider", http.StatusBadRequest, w, models.DuplicateKeyError{Field: "lawyerId", Value: provider.LawyerID})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to check for existing lawyerId", http.StatusInternalServerError, w, err)
		return
	}

	_, err = l.DB.InsertOne(context.Background(), provider)
	if err != nil {
		config.ErrorStatus("failed to create legal aid provider", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(provider)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// LegalAidProviderHandler returns all legal aid providers
func (l LegalAidProvider) LegalAidProviderHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := l.DB.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get legal aid providers", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.LegalAidProvider{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// LegalAidProviderByIDHandler returns a legal aid provider by ID
func (l LegalAidProvider) LegalAidProviderByIDHandler(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["legal_aid_provider_id"]

	zap.S().Debugf("legal_aid_provider_id: %v", providerID)

	pID, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := l.DB.FindOne(context.Background(), bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to get legal aid provider by ID", http.StatusNotFound, w, err)
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

// UpdateLegalAidProviderHandler merges a JSON partial update into an
// existing legal aid provider record, documents go through the dedicated
// upload route
func (l LegalAidProvider) UpdateLegalAidProviderHandler(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["legal_aid_provider_id"]

	pID, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := l.DB.FindOne(context.Background(), bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to get legal aid provider by ID", http.StatusNotFound, w, err)
		return
	}

	var update models.LegalAidProviderUpdate
	if err := decodeJSONBody(r, &update); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	l.persistMerge(w, *existing, update, nil)
}

// UploadDocumentsHandler resolves uploaded documents and replaces exactly
// the categories that received files
func (l LegalAidProvider) UploadDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["legal_aid_provider_id"]

	pID, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := l.DB.FindOne(context.Background(), bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to get legal aid provider by ID", http.StatusNotFound, w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}
	files, err := l.Uploads.Resolve(r.Context(), r.MultipartForm, providerUploadFields)
	if err != nil {
		var attErr uploads.AttachmentError
		if errors.As(err, &attErr) {
			config.ErrorStatus("failed to resolve attachments", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to resolve attachments", http.StatusInternalServerError, w, err)
		return
	}

	l.persistMerge(w, *existing, models.LegalAidProviderUpdate{}, files)
}

// persistMerge merges the update into the existing record and writes it
// back with a compare-and-set on the record version
func (l LegalAidProvider) persistMerge(w http.ResponseWriter, existing models.LegalAidProvider, update models.LegalAidProviderUpdate, files map[string][]string) {
	merged := models.MergeLegalAidProvider(existing, update, files)
	merged.ApplyDefaults()

	if violations := merged.Validate(); len(violations) > 0 {
		config.ErrorStatus("failed to validate legal aid provider", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	if merged.LawyerID != existing.LawyerID {
		_, err := l.DB.FindOne(context.Background(), bson.M{"lawyerId": merged.LawyerID, "_id": bson.M{"$ne": existing.ID}})
		if err == nil {
			config.ErrorStatus("failed to update legal aid provider", http.StatusBadRequest, w, models.DuplicateKeyError{Field: "lawyerId", Value: merged.LawyerID})
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("failed to check for existing lawyerId", http.StatusInternalServerError, w, err)
			return
		}
	}

	merged.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
	merged.Version = existing.Version + 1

	updated, err := l.DB.FindOneAndReplace(context.Background(),
		bson.M{"_id": existing.ID, "__v": existing.Version},
		merged,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, probeErr := l.DB.FindOne(context.Background(), bson.M{"_id": existing.ID}); probeErr != nil {
				config.ErrorStatus("failed to get legal aid provider by ID", http.StatusNotFound, w, probeErr)
				return
			}
			config.ErrorStatus("failed to update legal aid provider", http.StatusConflict, w, models.ErrConflict)
			return
		}
		config.ErrorStatus("failed to update legal aid provider", http.StatusInternalServerError, w, err)
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

// DeleteLegalAidProviderHandler deletes a legal aid provider by ID
func (l LegalAidProvider) DeleteLegalAidProviderHandler(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["legal_aid_provider_id"]

	pID, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	count, err := l.DB.DeleteOne(context.Background(), bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to delete legal aid provider", http.StatusInternalServerError, w, err)
		return
	}
	if count == 0 {
		config.ErrorStatus("failed to delete legal aid provider", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Legal aid provider deleted successfully",
	})
}

// AddSubmittedApplicationHandler appends a submitted bail application to a
// legal aid provider
func (l LegalAidProvider) AddSubmittedApplicationHandler(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["legal_aid_provider_id"]

	pID, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var application models.SubmittedApplication
	if err := json.NewDecoder(r.Body).Decode(&application); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	application.ApplyDefaults()

	if violations := application.Validate(); len(violations) > 0 {
		config.ErrorStatus("failed to validate submitted application", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	updated, err := l.DB.FindOneAndUpdate(context.Background(),
		bson.M{"_id": pID},
		bson.M{
			"$push": bson.M{"submittedApplications": application},
			"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
			"$inc":  bson.M{"__v": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		config.ErrorStatus("failed to add submitted application", http.StatusNotFound, w, err)
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
