package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrisonAuthority holds the structure for the prisonauthorities
// collection in mongo. The prison service stores plain reference strings
// for reports and runs without an attachment backend.
type PrisonAuthority struct {
	ID                    primitive.ObjectID     `json:"_id" bson:"_id"`
	AuthorityID           string                 `json:"authorityId" bson:"authorityId"`
	PrisonName            string                 `json:"prisonName" bson:"prisonName"`
	ContactInfo           ContactInfo            `json:"contactInfo" bson:"contactInfo"`
	PrisonerData          []PrisonerData         `json:"prisonerData" bson:"prisonerData"`
	ReleaseAuthorizations []ReleaseAuthorization `json:"releaseAuthorizations" bson:"releaseAuthorizations"`
	CreatedAt             primitive.DateTime     `json:"createdAt" bson:"createdAt"`
	UpdatedAt             primitive.DateTime     `json:"updatedAt" bson:"updatedAt"`
	Version               int32                  `json:"__v" bson:"__v"`
}

// PrisonerData carries per-prisoner report references
type PrisonerData struct {
	ID                  primitive.ObjectID `json:"_id" bson:"_id"`
	PrisonerID          UncheckedID        `json:"prisonerId" bson:"prisonerId"`
	IncarcerationReport string             `json:"incarcerationReport" bson:"incarcerationReport"`
	BehaviorReports     []string           `json:"behaviorReports" bson:"behaviorReports"`
	MedicalRecords      []string           `json:"medicalRecords" bson:"medicalRecords"`
	DisciplinaryRecords []string           `json:"disciplinaryRecords" bson:"disciplinaryRecords"`
}

// ReleaseAuthorization records an authorized release and its conditions
type ReleaseAuthorization struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	PrisonerID  UncheckedID        `json:"prisonerId" bson:"prisonerId"`
	ReleaseDate primitive.DateTime `json:"releaseDate" bson:"releaseDate"`
	Conditions  []string           `json:"conditions" bson:"conditions"`
}

// PrisonAuthorityUpdate is the partial update payload; nil means keep
type PrisonAuthorityUpdate struct {
	AuthorityID           *string                 `json:"authorityId"`
	PrisonName            *string                 `json:"prisonName"`
	ContactInfo           *ContactInfoUpdate      `json:"contactInfo"`
	PrisonerData          *[]PrisonerData         `json:"prisonerData"`
	ReleaseAuthorizations *[]ReleaseAuthorization `json:"releaseAuthorizations"`
}

// MergePrisonAuthority resolves a partial update against the stored record
func MergePrisonAuthority(existing PrisonAuthority, u PrisonAuthorityUpdate) PrisonAuthority {
	merged := existing
	if u.AuthorityID != nil {
		merged.AuthorityID = *u.AuthorityID
	}
	if u.PrisonName != nil {
		merged.PrisonName = *u.PrisonName
	}
	if u.ContactInfo != nil {
		if u.ContactInfo.Phone != nil {
			merged.ContactInfo.Phone = *u.ContactInfo.Phone
		}
		if u.ContactInfo.Email != nil {
			merged.ContactInfo.Email = *u.ContactInfo.Email
		}
	}
	if u.PrisonerData != nil {
		merged.PrisonerData = *u.PrisonerData
	}
	if u.ReleaseAuthorizations != nil {
		merged.ReleaseAuthorizations = *u.ReleaseAuthorizations
	}
	return merged
}

// ApplyDefaults assigns ids to sub-records that don't carry one yet.
// The prison schema has no enum or date defaults.
func (p *PrisonAuthority) ApplyDefaults() {
	for i := range p.PrisonerData {
		if p.PrisonerData[i].ID.IsZero() {
			p.PrisonerData[i].ID = primitive.NewObjectID()
		}
	}
	for i := range p.ReleaseAuthorizations {
		if p.ReleaseAuthorizations[i].ID.IsZero() {
			p.ReleaseAuthorizations[i].ID = primitive.NewObjectID()
		}
	}
}

// Validate reports every schema constraint the record violates
func (p PrisonAuthority) Validate() []Violation {
	var violations []Violation
	if p.AuthorityID == "" {
		violations = append(violations, Violation{Field: "authorityId", Message: "authorityId is required"})
	}
	if p.PrisonName == "" {
		violations = append(violations, Violation{Field: "prisonName", Message: "prisonName is required"})
	}
	return violations
}
