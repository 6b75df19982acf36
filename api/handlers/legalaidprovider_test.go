package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bailreckoner/bail-records-api/api/handlers"
	"github.com/bailreckoner/bail-records-api/databases"
	"github.com/bailreckoner/bail-records-api/databases/mocks"
	"github.com/bailreckoner/bail-records-api/models"
	"github.com/bailreckoner/bail-records-api/uploads"
)

func TestLegalAidProvider_LegalAidProviderByIDHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/legal-aid-providersbyid/1234", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"legal_aid_provider_id": "1234"})

	u := handlers.LegalAidProvider{}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.LegalAidProviderByIDHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	expected, _ := json.Marshal(models.ErrorMessageResponse{Response: "failed to get objectID from Hex, the provided hex string is not a valid ObjectID"})
	assert.Equal(t, string(expected), rr.Body.String())
}

func TestLegalAidProvider_AddSubmittedApplicationHandlerValidationError(t *testing.T) {
	body := `{"prisonerId": "64f1c0ffee0ddba11ca5e001", "status": "Filed"}`
	req, err := http.NewRequest("POST", "/api/bail-application/608cafe595eb9dc05379b7f4", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"legal_aid_provider_id": "608cafe595eb9dc05379b7f4"})

	u := handlers.LegalAidProvider{}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.AddSubmittedApplicationHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	expected, _ := json.Marshal(models.ErrorMessageResponse{Response: "failed to validate submitted application, validation failed: status must be one of Pending, Approved, Rejected"})
	assert.Equal(t, string(expected), rr.Body.String())
}

func TestLegalAidProvider_UploadDocumentsHandlerNotFound(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("caseFiles", "cf.pdf")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("%PDF-1.4"))
	writer.Close()

	req, err := http.NewRequest("POST", "/api/documents/608cafe595eb9dc05379b7f4", &body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = mux.SetURLVars(req, map[string]string{"legal_aid_provider_id": "608cafe595eb9dc05379b7f4"})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "legalaidproviders").Return(conn)

	u := handlers.LegalAidProvider{DB: databases.NewLegalAidProviderDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UploadDocumentsHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	expected, _ := json.Marshal(models.ErrorMessageResponse{Response: "failed to get legal aid provider by ID, mocked-error"})
	assert.Equal(t, string(expected), rr.Body.String())
}

func TestLegalAidProvider_UploadDocumentsHandlerReplacesCategory(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("powerOfAttorney", "poa.pdf")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("%PDF-1.4"))
	writer.Close()

	req, err := http.NewRequest("POST", "/api/documents/608cafe595eb9dc05379b7f4", &body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = mux.SetURLVars(req, map[string]string{"legal_aid_provider_id": "608cafe595eb9dc05379b7f4"})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}
	replaceResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.LegalAidProvider)
		(*arg).LawyerID = "LAW-042"
		(*arg).PersonalInfo.Name = "R. Mehta"
		(*arg).PersonalInfo.Address = "14 Court Road"
		(*arg).Documents.CaseFiles = []string{"https://res.example.com/cf-1.pdf"}
		(*arg).Version = 1
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)

	var replacement models.LegalAidProvider
	replaceResultHelper.On("Decode", mock.Anything).Return(nil)
	conn.On("FindOneAndReplace", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(replaceResultHelper).
		Run(func(args mock.Arguments) {
			replacement = args.Get(2).(models.LegalAidProvider)
		})
	db.On("Collection", "legalaidproviders").Return(conn)

	u := handlers.LegalAidProvider{
		DB:      databases.NewLegalAidProviderDatabase(db),
		Uploads: fakeResolver{refs: map[string][]string{"powerOfAttorney": {"https://res.example.com/poa-2.pdf"}}},
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UploadDocumentsHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://res.example.com/poa-2.pdf", replacement.Documents.PowerOfAttorney)
	assert.Equal(t, []string{"https://res.example.com/cf-1.pdf"}, replacement.Documents.CaseFiles)
	assert.Equal(t, int32(2), replacement.Version)
}

func TestLegalAidProvider_UploadDocumentsHandlerRejectsBadBatch(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("caseFiles", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("notes"))
	writer.Close()

	req, err := http.NewRequest("POST", "/api/documents/608cafe595eb9dc05379b7f4", &body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = mux.SetURLVars(req, map[string]string{"legal_aid_provider_id": "608cafe595eb9dc05379b7f4"})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil)
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "legalaidproviders").Return(conn)

	u := handlers.LegalAidProvider{
		DB:      databases.NewLegalAidProviderDatabase(db),
		Uploads: fakeResolver{err: uploads.AttachmentError{Category: "caseFiles", Reason: `file format ".txt" is not allowed`}},
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UploadDocumentsHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// the reason carries quotes, so the body must survive a round trip
	var resp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "failed to resolve attachments")
	assert.Contains(t, resp.Response, `attachment rejected for caseFiles`)
}

func TestLegalAidProvider_DeleteLegalAidProviderHandler(t *testing.T) {
	req, err := http.NewRequest("DELETE", "/api/deletelegal-aid-providers/608cafe595eb9dc05379b7f4", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"legal_aid_provider_id": "608cafe595eb9dc05379b7f4"})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("DeleteOne", mock.Anything, mock.Anything).Return(int64(1), nil)
	db.On("Collection", "legalaidproviders").Return(conn)

	u := handlers.LegalAidProvider{DB: databases.NewLegalAidProviderDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.DeleteLegalAidProviderHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Legal aid provider deleted successfully")
}
