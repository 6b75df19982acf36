package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment categories for the legal aid provider documents object.
// PowerOfAttorney is the only singular category in the system.
const (
	CategoryPowerOfAttorney      = "powerOfAttorney"
	CategoryCaseFiles            = "caseFiles"
	CategorySupportingAffidavits = "supportingAffidavits"
)

// LegalAidProvider holds the structure for the legalaidproviders
// collection in mongo
type LegalAidProvider struct {
	ID                    primitive.ObjectID     `json:"_id" bson:"_id"`
	LawyerID              string                 `json:"lawyerId" bson:"lawyerId"`
	PersonalInfo          ProviderPersonalInfo   `json:"personalInfo" bson:"personalInfo"`
	SubmittedApplications []SubmittedApplication `json:"submittedApplications" bson:"submittedApplications"`
	Documents             ProviderDocuments      `json:"documents" bson:"documents"`
	CreatedAt             primitive.DateTime     `json:"createdAt" bson:"createdAt"`
	UpdatedAt             primitive.DateTime     `json:"updatedAt" bson:"updatedAt"`
	Version               int32                  `json:"__v" bson:"__v"`
}

// ProviderPersonalInfo holds the lawyer's descriptive fields
type ProviderPersonalInfo struct {
	Name        string      `json:"name" bson:"name"`
	FirmName    string      `json:"firmName" bson:"firmName"`
	ContactInfo ContactInfo `json:"contactInfo" bson:"contactInfo"`
	Address     string      `json:"address" bson:"address"`
}

// SubmittedApplication ties a prisoner to a bail application filed on
// their behalf. Both references are unchecked foreign keys.
type SubmittedApplication struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	PrisonerID      UncheckedID        `json:"prisonerId" bson:"prisonerId"`
	BailID          UncheckedID        `json:"bailId" bson:"bailId"`
	ApplicationDate primitive.DateTime `json:"applicationDate" bson:"applicationDate"`
	Status          string             `json:"status" bson:"status"`
}

// ProviderDocuments maps attachment categories to stored reference URLs
type ProviderDocuments struct {
	PowerOfAttorney      string   `json:"powerOfAttorney" bson:"powerOfAttorney"`
	CaseFiles            []string `json:"caseFiles" bson:"caseFiles"`
	SupportingAffidavits []string `json:"supportingAffidavits" bson:"supportingAffidavits"`
}

// LegalAidProviderUpdate is the partial update payload; nil means keep
type LegalAidProviderUpdate struct {
	LawyerID              *string                     `json:"lawyerId"`
	PersonalInfo          *ProviderPersonalInfoUpdate `json:"personalInfo"`
	SubmittedApplications *[]SubmittedApplication     `json:"submittedApplications"`
	Documents             *ProviderDocumentsUpdate    `json:"documents"`
}

// ProviderPersonalInfoUpdate mirrors ProviderPersonalInfo with optional fields
type ProviderPersonalInfoUpdate struct {
	Name        *string            `json:"name"`
	FirmName    *string            `json:"firmName"`
	ContactInfo *ContactInfoUpdate `json:"contactInfo"`
	Address     *string            `json:"address"`
}

// ProviderDocumentsUpdate overwrites single attachment categories from a
// JSON payload when no files were uploaded for them
type ProviderDocumentsUpdate struct {
	PowerOfAttorney      *string   `json:"powerOfAttorney"`
	CaseFiles            *[]string `json:"caseFiles"`
	SupportingAffidavits *[]string `json:"supportingAffidavits"`
}

// MergeLegalAidProvider resolves a partial update against the stored
// record, with the same category-level replacement rules as the other
// services. powerOfAttorney keeps only the first uploaded reference
// because the category is singular.
func MergeLegalAidProvider(existing LegalAidProvider, u LegalAidProviderUpdate, files map[string][]string) LegalAidProvider {
	merged := existing
	if u.LawyerID != nil {
		merged.LawyerID = *u.LawyerID
	}
	if u.PersonalInfo != nil {
		if u.PersonalInfo.Name != nil {
			merged.PersonalInfo.Name = *u.PersonalInfo.Name
		}
		if u.PersonalInfo.FirmName != nil {
			merged.PersonalInfo.FirmName = *u.PersonalInfo.FirmName
		}
		if u.PersonalInfo.Address != nil {
			merged.PersonalInfo.Address = *u.PersonalInfo.Address
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
	if u.SubmittedApplications != nil {
		merged.SubmittedApplications = *u.SubmittedApplications
	}
	if u.Documents != nil {
		if u.Documents.PowerOfAttorney != nil {
			merged.Documents.PowerOfAttorney = *u.Documents.PowerOfAttorney
		}
		if u.Documents.CaseFiles != nil {
			merged.Documents.CaseFiles = *u.Documents.CaseFiles
		}
		if u.Documents.SupportingAffidavits != nil {
			merged.Documents.SupportingAffidavits = *u.Documents.SupportingAffidavits
		}
	}
	if refs, ok := files[CategoryPowerOfAttorney]; ok && len(refs) > 0 {
		merged.Documents.PowerOfAttorney = refs[0]
	}
	if refs, ok := files[CategoryCaseFiles]; ok && len(refs) > 0 {
		merged.Documents.CaseFiles = refs
	}
	if refs, ok := files[CategorySupportingAffidavits]; ok && len(refs) > 0 {
		merged.Documents.SupportingAffidavits = refs
	}
	return merged
}

// ApplyDefaults fills schema defaults on the record's sub-records and
// assigns ids to sub-records that don't carry one yet
func (l *LegalAidProvider) ApplyDefaults() {
	for i := range l.SubmittedApplications {
		l.SubmittedApplications[i].ApplyDefaults()
	}
}

// ApplyDefaults fills schema defaults for a single submitted application
func (s *SubmittedApplication) ApplyDefaults() {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	if s.Status == "" {
		s.Status = StatusPending
	}
	if s.ApplicationDate == 0 {
		s.ApplicationDate = primitive.NewDateTimeFromTime(time.Now())
	}
}

// Validate reports constraint failures for a single submitted application
func (s SubmittedApplication) Validate() []Violation {
	var violations []Violation
	if !oneOf(s.Status, StatusPending, StatusApproved, StatusRejected) {
		violations = append(violations, Violation{
			Field:   "status",
			Message: fmt.Sprintf("status must be one of %s, %s, %s", StatusPending, StatusApproved, StatusRejected),
		})
	}
	return violations
}

// Validate reports every schema constraint the record violates
func (l LegalAidProvider) Validate() []Violation {
	var violations []Violation
	if l.LawyerID == "" {
		violations = append(violations, Violation{Field: "lawyerId", Message: "lawyerId is required"})
	}
	if l.PersonalInfo.Name == "" {
		violations = append(violations, Violation{Field: "personalInfo.name", Message: "personalInfo.name is required"})
	}
	if l.PersonalInfo.Address == "" {
		violations = append(violations, Violation{Field: "personalInfo.address", Message: "personalInfo.address is required"})
	}
	for i, app := range l.SubmittedApplications {
		violations = append(violations, prefixViolations(fmt.Sprintf("submittedApplications.%d", i), app.Validate())...)
	}
	return violations
}
