package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment categories for the system admin documents object
const (
	CategoryArchitectureDocs     = "architectureDocs"
	CategorySecurityAuditReports = "securityAuditReports"
)

// SystemAdmin holds the structure for the systemadmins collection in mongo
type SystemAdmin struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	AdminID         string             `json:"adminId" bson:"adminId"`
	PersonalInfo    AdminPersonalInfo  `json:"personalInfo" bson:"personalInfo"`
	Tasks           []Task             `json:"tasks" bson:"tasks"`
	SystemDocuments SystemDocuments    `json:"systemDocuments" bson:"systemDocuments"`
	TechnicalIssues []TechnicalIssue   `json:"technicalIssues" bson:"technicalIssues"`
	CreatedAt       primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt       primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
	Version         int32              `json:"__v" bson:"__v"`
}

// AdminPersonalInfo holds the admin's descriptive fields
type AdminPersonalInfo struct {
	Name        string      `json:"name" bson:"name"`
	ContactInfo ContactInfo `json:"contactInfo" bson:"contactInfo"`
}

// Task is a unit of operational work assigned to the admin
type Task struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	TaskType    string             `json:"taskType" bson:"taskType"`
	Description string             `json:"description" bson:"description"`
	Status      string             `json:"status" bson:"status"`
}

// SystemDocuments maps attachment categories to stored reference URLs
type SystemDocuments struct {
	ArchitectureDocs     []string `json:"architectureDocs" bson:"architectureDocs"`
	SecurityAuditReports []string `json:"securityAuditReports" bson:"securityAuditReports"`
}

// TechnicalIssue is a reported platform problem
type TechnicalIssue struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id"`
	IssueDescription string             `json:"issueDescription" bson:"issueDescription"`
	ReportDate       primitive.DateTime `json:"reportDate" bson:"reportDate"`
	ResolutionStatus string             `json:"resolutionStatus" bson:"resolutionStatus"`
}

// SystemAdminUpdate is the partial update payload; nil means keep
type SystemAdminUpdate struct {
	AdminID         *string                `json:"adminId"`
	PersonalInfo    *AdminPersonalInfoUpdate `json:"personalInfo"`
	Tasks           *[]Task                `json:"tasks"`
	SystemDocuments *SystemDocumentsUpdate `json:"systemDocuments"`
	TechnicalIssues *[]TechnicalIssue      `json:"technicalIssues"`
}

// AdminPersonalInfoUpdate mirrors AdminPersonalInfo with optional fields
type AdminPersonalInfoUpdate struct {
	Name        *string            `json:"name"`
	ContactInfo *ContactInfoUpdate `json:"contactInfo"`
}

// SystemDocumentsUpdate overwrites single attachment categories from a
// JSON payload when no files were uploaded for them
type SystemDocumentsUpdate struct {
	ArchitectureDocs     *[]string `json:"architectureDocs"`
	SecurityAuditReports *[]string `json:"securityAuditReports"`
}

// MergeSystemAdmin resolves a partial update against the stored record
func MergeSystemAdmin(existing SystemAdmin, u SystemAdminUpdate, files map[string][]string) SystemAdmin {
	merged := existing
	if u.AdminID != nil {
		merged.AdminID = *u.AdminID
	}
	if u.PersonalInfo != nil {
		if u.PersonalInfo.Name != nil {
			merged.PersonalInfo.Name = *u.PersonalInfo.Name
		}
		if u.PersonalInfo.ContactInfo != nil {
			if u.PersonalInfo.ContactInfo.Phone != nil {
				merged.PersonalInfo.ContactInfo.Phone = *u.PersonalInfo.ContactInfo.Phone
			}
			if u.PersonalInfo.ContactInfo.Email != nil {
				merged.PersonalInfo.ContactInfo.Email = *u.PersonalInfo.ContactInfo.Email
			}
		}
	}
	if u.Tasks != nil {
		merged.Tasks = *u.Tasks
	}
	if u.TechnicalIssues != nil {
		merged.TechnicalIssues = *u.TechnicalIssues
	}
	if u.SystemDocuments != nil {
		if u.SystemDocuments.ArchitectureDocs != nil {
			merged.SystemDocuments.ArchitectureDocs = *u.SystemDocuments.ArchitectureDocs
		}
		if u.SystemDocuments.SecurityAuditReports != nil {
			merged.SystemDocuments.SecurityAuditReports = *u.SystemDocuments.SecurityAuditReports
		}
	}
	if refs, ok := files[CategoryArchitectureDocs]; ok && len(refs) > 0 {
		merged.SystemDocuments.ArchitectureDocs = refs
	}
	if refs, ok := files[CategorySecurityAuditReports]; ok && len(refs) > 0 {
		merged.SystemDocuments.SecurityAuditReports = refs
	}
	return merged
}

// ApplyDefaults fills schema defaults on the record's sub-records and
// assigns ids to sub-records that don't carry one yet
func (s *SystemAdmin) ApplyDefaults() {
	for i := range s.Tasks {
		s.Tasks[i].ApplyDefaults()
	}
	for i := range s.TechnicalIssues {
		s.TechnicalIssues[i].ApplyDefaults()
	}
}

// ApplyDefaults fills schema defaults for a single task
func (t *Task) ApplyDefaults() {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
}

// ApplyDefaults fills schema defaults for a single technical issue
func (t *TechnicalIssue) ApplyDefaults() {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.ResolutionStatus == "" {
		t.ResolutionStatus = IssueUnresolved
	}
	if t.ReportDate == 0 {
		t.ReportDate = primitive.NewDateTimeFromTime(time.Now())
	}
}

// Validate reports constraint failures for a single task
func (t Task) Validate() []Violation {
	var violations []Violation
	if !oneOf(t.TaskType, TaskTypeDatabase, TaskTypeSecurity, TaskTypeUIUX, TaskTypeSupport) {
		violations = append(violations, Violation{
			Field:   "taskType",
			Message: fmt.Sprintf("taskType must be one of %s, %s, %s, %s", TaskTypeDatabase, TaskTypeSecurity, TaskTypeUIUX, TaskTypeSupport),
		})
	}
	if t.Description == "" {
		violations = append(violations, Violation{Field: "description", Message: "description is required"})
	}
	if !oneOf(t.Status, TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted) {
		violations = append(violations, Violation{
			Field:   "status",
			Message: fmt.Sprintf("status must be one of %s, %s, %s", TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted),
		})
	}
	return violations
}

// Validate reports constraint failures for a single technical issue
func (t TechnicalIssue) Validate() []Violation {
	var violations []Violation
	if t.IssueDescription == "" {
		violations = append(violations, Violation{Field: "issueDescription", Message: "issueDescription is required"})
	}
	if !oneOf(t.ResolutionStatus, IssueUnresolved, IssueResolved) {
		violations = append(violations, Violation{
			Field:   "resolutionStatus",
			Message: fmt.Sprintf("resolutionStatus must be one of %s, %s", IssueUnresolved, IssueResolved),
		})
	}
	return violations
}

// Validate reports every schema constraint the record violates
func (s SystemAdmin) Validate() []Violation {
	var violations []Violation
	if s.AdminID == "" {
		violations = append(violations, Violation{Field: "adminId", Message: "adminId is required"})
	}
	if s.PersonalInfo.Name == "" {
		violations = append(violations, Violation{Field: "personalInfo.name", Message: "personalInfo.name is required"})
	}
	for i, task := range s.Tasks {
		violations = append(violations, prefixViolations(fmt.Sprintf("tasks.%d", i), task.Validate())...)
	}
	for i, issue := range s.TechnicalIssues {
		violations = append(violations, prefixViolations(fmt.Sprintf("technicalIssues.%d", i), issue.Validate())...)
	}
	return violations
}
