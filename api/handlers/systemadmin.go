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

// adminUploadFields declares the document categories a system admin update
// may carry, each capped at five files
var adminUploadFields = []uploads.Field{
	{Name: models.CategoryArchitectureDocs, MaxCount: 5},
	{Name: models.CategorySecurityAuditReports, MaxCount: 5},
}

// SystemAdmin exported for testing purposes
type SystemAdmin struct {
	DB      databases.SystemAdminDatabase
	Uploads uploads.Resolver
}

// CreateSystemAdminHandler creates a system admin record
func (s SystemAdmin) CreateSystemAdminHandler(w http.ResponseWriter, r *http.Request) {
	var admin models.SystemAdmin
	if err := json.NewDecoder(r.Body).Decode(&admin); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	admin.UpdatedAt = admin.CreatedAt
	admin.Version = 0
	admin.ApplyDefaults()

	if violations := admin.Validate(); len(violations) > 0 {
		config.ErrorStatus("failed to validate system admin", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	_, err := s.DB.FindOne(context.Background(), bson.M{"adminId": admin.AdminID})
	if err == nil {
		config.ErrorStatus("failed to create system admin", http.StatusBadRequest, w, models.DuplicateKeyError{Field: "adminId", Value: admin.AdminID})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to check for existing adminId", http.StatusInternalServerError, w, err)
		return
	}

	_, err = s.DB.InsertOne(context.Background(), admin)
	if err != nil {
		config.ErrorStatus("failed to create system admin", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(admin)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// SystemAdminHandler returns all system admins
func (s SystemAdmin) SystemAdminHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := s.DB.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get system admins", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.SystemAdmin{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SystemAdminByIDHandler returns a system admin by ID
func (s SystemAdmin) SystemAdminByIDHandler(w http.ResponseWriter, r *http.Request) {
	adminID := mux.Vars(r)["system_admin_id"]

	zap.S().Debugf("system_admin_id: %v", adminID)

	sID, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := s.DB.FindOne(context.Background(), bson.M{"_id": sID})
	if err != nil {
		config.ErrorStatus("failed to get system admin by ID", http.StatusNotFound, w, err)
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

// UpdateSystemAdminHandler merges a partial update, and optionally uploaded
// documents, into an existing system admin record
func (s SystemAdmin) UpdateSystemAdminHandler(w http.ResponseWriter, r *http.Request) {
	adminID := mux.Vars(r)["system_admin_id"]

	sID, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	existing, err := s.DB.FindOne(context.Background(), bson.M{"_id": sID})
	if err != nil {
		config.ErrorStatus("failed to get system admin by ID", http.StatusNotFound, w, err)
		return
	}

	var update models.SystemAdminUpdate
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
		files, err = s.Uploads.Resolve(r.Context(), r.MultipartForm, adminUploadFields)
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

	merged := models.MergeSystemAdmin(*existing, update, files)
	merged.ApplyDefaults()

	if violations := merged.Validate(); len(violations) > 0 {
		config.ErrorStatus("failed to validate system admin", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	if merged.AdminID != existing.AdminID {
		_, err := s.DB.FindOne(context.Background(), bson.M{"adminId": merged.AdminID, "_id": bson.M{"$ne": sID}})
		if err == nil {
			config.ErrorStatus("failed to update system admin", http.StatusBadRequest, w, models.DuplicateKeyError{Field: "adminId", Value: merged.AdminID})
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("failed to check for existing adminId", http.StatusInternalServerError, w, err)
			return
		}
	}

	merged.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
	merged.Version = existing.Version + 1

	updated, err := s.DB.FindOneAndReplace(context.Background(),
		bson.M{"_id": sID, "__v": existing.Version},
		merged,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, probeErr := s.DB.FindOne(context.Background(), bson.M{"_id": sID}); probeErr != nil {
				config.ErrorStatus("failed to get system admin by ID", http.StatusNotFound, w, probeErr)
				return
			}
			config.ErrorStatus("failed to update system admin", http.StatusConflict, w, models.ErrConflict)
			return
		}
		config.ErrorStatus("failed to update system admin", http.StatusInternalServerError, w, err)
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

// DeleteSystemAdminHandler deletes a system admin by ID
func (s SystemAdmin) DeleteSystemAdminHandler(w http.ResponseWriter, r *http.Request) {
	adminID := mux.Vars(r)["system_admin_id"]

	sID, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	count, err := s.DB.DeleteOne(context.Background(), bson.M{"_id": sID})
	if err != nil {
		config.ErrorStatus("failed to delete system admin", http.StatusInternalServerError, w, err)
		return
	}
	if count == 0 {
		config.ErrorStatus("failed to delete system admin", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "System admin deleted successfully",
	})
}

// AddTaskHandler appends a task to a system admin
func (s SystemAdmin) AddTaskHandler(w http.ResponseWriter, r *http.Request) {
	adminID := mux.Vars(r)["system_admin_id"]

	sID, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	task.ApplyDefaults()

	if violations := task.Validate(); len(violations) > 0 {
		config.ErrorStatus("failed to validate task", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	updated, err := s.DB.FindOneAndUpdate(context.Background(),
		bson.M{"_id": sID},
		bson.M{
			"$push": bson.M{"tasks": task},
			"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
			"$inc":  bson.M{"__v": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		config.ErrorStatus("failed to add task", http.StatusNotFound, w, err)
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

// AddTechnicalIssueHandler appends a technical issue to a system admin
func (s SystemAdmin) AddTechnicalIssueHandler(w http.ResponseWriter, r *http.Request) {
	adminID := mux.Vars(r)["system_admin_id"]

	sID, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var issue models.TechnicalIssue
	if err := json.NewDecoder(r.Body).Decode(&issue); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	issue.ApplyDefaults()

	if violations := issue.Validate(); len(violations) > 0 {
		config.ErrorStatus("failed to validate technical issue", http.StatusBadRequest, w, models.ValidationError{Violations: violations})
		return
	}

	updated, err := s.DB.FindOneAndUpdate(context.Background(),
		bson.M{"_id": sID},
		bson.M{
			"$push": bson.M{"technicalIssues": issue},
			"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
			"$inc":  bson.M{"__v": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		config.ErrorStatus("failed to add technical issue", http.StatusNotFound, w, err)
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
