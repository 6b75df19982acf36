package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment categories for the judicial authority documents object
const (
	CategoryCourtProceedings      = "courtProceedings"
	CategoryRiskAssessmentReports = "riskAssessmentReports"
	CategoryLegalOpinions         = "legalOpinions"
)

// JudicialAuthority holds the structure for the judicialauthorities
// collection in mongo
type JudicialAuthority struct {
	ID               primitive.ObjectID   `json:"_id" bson:"_id"`
	JudgeID          string               `json:"judgeId" bson:"judgeId"`
	PersonalInfo     JudicialPersonalInfo `json:"personalInfo" bson:"personalInfo"`
	BailApplications []BailApplication    `json:"bailApplications" bson:"bailApplications"`
	Documents        JudicialDocuments    `json:"documents" bson:"documents"`
	CreatedAt        primitive.DateTime   `json:"createdAt" bson:"createdAt"`
	UpdatedAt        primitive.DateTime   `json:"updatedAt" bson:"updatedAt"`
	Version          int32                `json:"__v" bson:"__v"`
}

// JudicialPersonalInfo holds the judge's descriptive fields
type JudicialPersonalInfo struct {
	Name        string      `json:"name" bson:"name"`
	CourtName   string      `json:"courtName" bson:"courtName"`
	ContactInfo ContactInfo `json:"contactInfo" bson:"contactInfo"`
}

// ContactInfo is shared by every record type
type ContactInfo struct {
	Phone string `json:"phone" bson:"phone"`
	Email string `json:"email" bson:"email"`
}

// BailApplication is the judge's view of a single bail application.
// BailID is the only tie to the shared logical entity.
type BailApplication struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	BailID      UncheckedID        `json:"bailId" bson:"bailId"`
	Evaluation  string             `json:"evaluation" bson:"evaluation"`
	RiskFactors []string           `json:"riskFactors" bson:"riskFactors"`
	Decision    Decision           `json:"decision" bson:"decision"`
	Conditions  []string           `json:"conditions" bson:"conditions"`
}

// Decision records the outcome of a bail evaluation. Date is supplied by
// the caller, not the system clock.
type Decision struct {
	Result string             `json:"result" bson:"result"`
	Date   primitive.DateTime `json:"date" bson:"date"`
}

// JudicialDocuments maps attachment categories to stored reference URLs
type JudicialDocuments struct {
	CourtProceedings      []string `json:"courtProceedings" bson:"courtProceedings"`
	RiskAssessmentReports []string `json:"riskAssessmentReports" bson:"riskAssessmentReports"`
	LegalOpinions         []string `json:"legalOpinions" bson:"legalOpinions"`
}

// JudicialAuthorityUpdate is the partial update payload. Nil pointers mean
// "leave the stored value alone"; only present fields overwrite.
type JudicialAuthorityUpdate struct {
	JudgeID          *string                     `json:"judgeId"`
	PersonalInfo     *JudicialPersonalInfoUpdate `json:"personalInfo"`
	BailApplications *[]BailApplication          `json:"bailApplications"`
	Documents        *JudicialDocumentsUpdate    `json:"documents"`
}

// JudicialPersonalInfoUpdate mirrors JudicialPersonalInfo with optional fields
type JudicialPersonalInfoUpdate struct {
	Name        *string            `json:"name"`
	CourtName   *string            `json:"courtName"`
	ContactInfo *ContactInfoUpdate `json:"contactInfo"`
}

// ContactInfoUpdate mirrors ContactInfo with optional fields
type ContactInfoUpdate struct {
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// JudicialDocumentsUpdate overwrites single attachment categories from a
// JSON payload when no files were uploaded for them
type JudicialDocumentsUpdate struct {
	CourtProceedings      *[]string `json:"courtProceedings"`
	RiskAssessmentReports *[]string `json:"riskAssessmentReports"`
	LegalOpinions         *[]string `json:"legalOpinions"`
}

// MergeJudicialAuthority resolves a partial update against the stored
// record. Fields present in the payload overwrite, absent fields are kept.
// Attachment categories that received newly uploaded files are replaced
// wholesale; every other category keeps its last persisted reference list.
func MergeJudicialAuthority(existing JudicialAuthority, u JudicialAuthorityUpdate, files map[string][]string) JudicialAuthority {
	merged := existing
	if u.JudgeID != nil {
		merged.JudgeID = *u.JudgeID
	}
	if u.PersonalInfo != nil {
		if u.PersonalInfo.Name != nil {
			merged.PersonalInfo.Name = *u.PersonalInfo.Name
		}
		if u.PersonalInfo.CourtName != nil {
			merged.PersonalInfo.CourtName = *u.PersonalInfo.CourtName
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
	if u.BailApplications != nil {
		merged.BailApplications = *u.BailApplications
	}
	if u.Documents != nil {
		if u.Documents.CourtProceedings != nil {
			merged.Documents.CourtProceedings = *u.Documents.CourtProceedings
		}
		if u.Documents.RiskAssessmentReports != nil {
			merged.Documents.RiskAssessmentReports = *u.Documents.RiskAssessmentReports
		}
		if u.Documents.LegalOpinions != nil {
			merged.Documents.LegalOpinions = *u.Documents.LegalOpinions
		}
	}
	if refs, ok := files[CategoryCourtProceedings]; ok && len(refs) > 0 {
		merged.Documents.CourtProceedings = refs
	}
	if refs, ok := files[CategoryRiskAssessmentReports]; ok && len(refs) > 0 {
		merged.Documents.RiskAssessmentReports = refs
	}
	if refs, ok := files[CategoryLegalOpinions]; ok && len(refs) > 0 {
		merged.Documents.LegalOpinions = refs
	}
	return merged
}

// ApplyDefaults fills schema defaults on the record's sub-records and
// assigns ids to sub-records that don't carry one yet
func (j *JudicialAuthority) ApplyDefaults() {
	for i := range j.BailApplications {
		j.BailApplications[i].ApplyDefaults()
	}
}

// ApplyDefaults fills schema defaults for a single bail application
func (b *BailApplication) ApplyDefaults() {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.Decision.Result == "" {
		b.Decision.Result = StatusPending
	}
}

// Validate reports constraint failures for a single bail application
func (b BailApplication) Validate() []Violation {
	var violations []Violation
	if !oneOf(b.Decision.Result, StatusPending, StatusApproved, StatusRejected) {
		violations = append(violations, Violation{
			Field:   "decision.result",
			Message: fmt.Sprintf("decision.result must be one of %s, %s, %s", StatusPending, StatusApproved, StatusRejected),
		})
	}
	return violations
}

// Validate reports every schema constraint the record violates
func (j JudicialAuthority) Validate() []Violation {
	var violations []Violation
	if j.JudgeID == "" {
		violations = append(violations, Violation{Field: "judgeId", Message: "judgeId is required"})
	}
	if j.PersonalInfo.Name == "" {
		violations = append(violations, Violation{Field: "personalInfo.name", Message: "personalInfo.name is required"})
	}
	if j.PersonalInfo.CourtName == "" {
		violations = append(violations, Violation{Field: "personalInfo.courtName", Message: "personalInfo.courtName is required"})
	}
	for i, app := range j.BailApplications {
		violations = append(violations, prefixViolations(fmt.Sprintf("bailApplications.%d", i), app.Validate())...)
	}
	return violations
}

func prefixViolations(prefix string, violations []Violation) []Violation {
	out := make([]Violation, len(violations))
	for i, v := range violations {
		out[i] = Violation{Field: prefix + "." + v.Field, Message: v.Message}
	}
	return out
}
