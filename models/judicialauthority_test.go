package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bailreckoner/bail-records-api/models"
)

func strPtr(s string) *string { return &s }

func testJudicialAuthority() models.JudicialAuthority {
	return models.JudicialAuthority{
		ID:      primitive.NewObjectID(),
		JudgeID: "JUDGE-001",
		PersonalInfo: models.JudicialPersonalInfo{
			Name:      "A. Khanna",
			CourtName: "District Court",
			ContactInfo: models.ContactInfo{
				Phone: "555-0100",
				Email: "khanna@example.com",
			},
		},
		BailApplications: []models.BailApplication{
			{
				ID:         primitive.NewObjectID(),
				BailID:     "64f1c0ffee0ddba11ca5e000",
				Evaluation: "low flight risk",
				Decision:   models.Decision{Result: models.StatusApproved},
			},
		},
		Documents: models.JudicialDocuments{
			CourtProceedings: []string{"https://res.example.com/cp-1.pdf"},
			LegalOpinions:    []string{"https://res.example.com/lo-1.pdf"},
		},
		Version: 3,
	}
}

func TestMergeJudicialAuthorityPhoneOnly(t *testing.T) {
	existing := testJudicialAuthority()

	update := models.JudicialAuthorityUpdate{
		PersonalInfo: &models.JudicialPersonalInfoUpdate{
			ContactInfo: &models.ContactInfoUpdate{Phone: strPtr("555-0199")},
		},
	}

	merged := models.MergeJudicialAuthority(existing, update, nil)

	assert.Equal(t, "555-0199", merged.PersonalInfo.ContactInfo.Phone)

	// only the phone moves, everything else stays byte for byte
	merged.PersonalInfo.ContactInfo.Phone = existing.PersonalInfo.ContactInfo.Phone
	assert.Equal(t, existing, merged)
}

func TestMergeJudicialAuthorityEmptyUpdate(t *testing.T) {
	existing := testJudicialAuthority()

	merged := models.MergeJudicialAuthority(existing, models.JudicialAuthorityUpdate{}, nil)

	assert.Equal(t, existing, merged)
}

func TestMergeJudicialAuthorityReplacesUploadedCategoriesWholesale(t *testing.T) {
	existing := testJudicialAuthority()

	files := map[string][]string{
		models.CategoryCourtProceedings: {"https://res.example.com/cp-2.pdf", "https://res.example.com/cp-3.pdf"},
	}

	merged := models.MergeJudicialAuthority(existing, models.JudicialAuthorityUpdate{}, files)

	assert.Equal(t, files[models.CategoryCourtProceedings], merged.Documents.CourtProceedings)
	assert.Equal(t, existing.Documents.LegalOpinions, merged.Documents.LegalOpinions)
	assert.Equal(t, existing.Documents.RiskAssessmentReports, merged.Documents.RiskAssessmentReports)
}

func TestMergeJudicialAuthorityUploadWinsOverPayloadCategory(t *testing.T) {
	existing := testJudicialAuthority()

	update := models.JudicialAuthorityUpdate{
		Documents: &models.JudicialDocumentsUpdate{
			CourtProceedings: &[]string{"https://res.example.com/from-payload.pdf"},
		},
	}
	files := map[string][]string{
		models.CategoryCourtProceedings: {"https://res.example.com/from-upload.pdf"},
	}

	merged := models.MergeJudicialAuthority(existing, update, files)

	assert.Equal(t, []string{"https://res.example.com/from-upload.pdf"}, merged.Documents.CourtProceedings)
}

func TestBailApplicationApplyDefaults(t *testing.T) {
	app := models.BailApplication{BailID: "64f1c0ffee0ddba11ca5e000"}
	app.ApplyDefaults()

	assert.False(t, app.ID.IsZero())
	assert.Equal(t, models.StatusPending, app.Decision.Result)
}

func TestBailApplicationApplyDefaultsKeepsDecision(t *testing.T) {
	app := models.BailApplication{Decision: models.Decision{Result: models.StatusRejected}}
	app.ApplyDefaults()

	assert.Equal(t, models.StatusRejected, app.Decision.Result)
}

func TestJudicialAuthorityValidate(t *testing.T) {
	authority := testJudicialAuthority()
	assert.Empty(t, authority.Validate())

	authority.JudgeID = ""
	authority.PersonalInfo.CourtName = ""
	authority.BailApplications[0].Decision.Result = "Granted"

	violations := authority.Validate()
	assert.Len(t, violations, 3)
	assert.Equal(t, "judgeId", violations[0].Field)
	assert.Equal(t, "personalInfo.courtName", violations[1].Field)
	assert.Equal(t, "bailApplications.0.decision.result", violations[2].Field)
}
