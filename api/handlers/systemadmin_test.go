package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bailreckoner/bail-records-api/api/handlers"
	"github.com/bailreckoner/bail-records-api/databases"
	"github.com/bailreckoner/bail-records-api/databases/mocks"
	"github.com/bailreckoner/bail-records-api/models"
)

func TestSystemAdmin_SystemAdminHandlerFailedToFind(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/allsystem-admins", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	db.On("Collection", "systemadmins").Return(conn)

	u := handlers.SystemAdmin{DB: databases.NewSystemAdminDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.SystemAdminHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	expected, _ := json.Marshal(models.ErrorMessageResponse{Response: "failed to get system admins, mocked-error"})
	assert.Equal(t, string(expected), rr.Body.String())
}

func TestSystemAdmin_SystemAdminByIDHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/system-adminsbyid/608cafe595eb9dc05379b7f4", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"system_admin_id": "608cafe595eb9dc05379b7f4"})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.SystemAdmin)
		(*arg).AdminID = "ADMIN-001"
		(*arg).PersonalInfo.Name = "S. Iyer"
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "systemadmins").Return(conn)

	u := handlers.SystemAdmin{DB: databases.NewSystemAdminDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.SystemAdminByIDHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ADMIN-001")
}

func TestSystemAdmin_AddTaskHandlerValidationError(t *testing.T) {
	body := `{"taskType": "Networking", "description": "patch switches"}`
	req, err := http.NewRequest("POST", "/api/system-admins/608cafe595eb9dc05379b7f4/tasks", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"system_admin_id": "608cafe595eb9dc05379b7f4"})

	u := handlers.SystemAdmin{}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.AddTaskHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to validate task")
	assert.Contains(t, rr.Body.String(), "taskType must be one of")
}

func TestSystemAdmin_AddTechnicalIssueHandlerDefaults(t *testing.T) {
	body := `{"issueDescription": "exports time out"}`
	req, err := http.NewRequest("POST", "/api/system-admins/608cafe595eb9dc05379b7f4/technical-issues", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"system_admin_id": "608cafe595eb9dc05379b7f4"})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	var update interface{}
	singleResultHelper.On("Decode", mock.Anything).Return(nil)
	conn.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(singleResultHelper).
		Run(func(args mock.Arguments) {
			update = args.Get(2)
		})
	db.On("Collection", "systemadmins").Return(conn)

	u := handlers.SystemAdmin{DB: databases.NewSystemAdminDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.AddTechnicalIssueHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	pushed := update.(bson.M)["$push"].(bson.M)["technicalIssues"].(models.TechnicalIssue)
	assert.Equal(t, models.IssueUnresolved, pushed.ResolutionStatus)
	assert.False(t, pushed.ID.IsZero())
	assert.NotZero(t, pushed.ReportDate)
}
