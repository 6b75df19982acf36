package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bailreckoner/bail-records-api/models"
)

func testLegalAidProvider() models.LegalAidProvider {
	return models.LegalAidProvider{
		ID:       primitive.NewObjectID(),
		LawyerID: "LAW-042",
		PersonalInfo: models.ProviderPersonalInfo{
			Name:     "R. Mehta",
			FirmName: "Mehta & Associates",
			Address:  "14 Court Road",
			ContactInfo: models.ContactInfo{
				Email: "mehta@example.com",
			},
		},
		Documents: models.ProviderDocuments{
			PowerOfAttorney: "https://res.example.com/poa-1.pdf",
			CaseFiles:       []string{"https://res.example.com/cf-1.pdf"},
		},
		Version: 1,
	}
}

func TestMergeLegalAidProviderPowerOfAttorneyIsSingular(t *testing.T) {
	existing := testLegalAidProvider()

	files := map[string][]string{
		models.CategoryPowerOfAttorney: {"https://res.example.com/poa-2.pdf"},
	}

	merged := models.MergeLegalAidProvider(existing, models.LegalAidProviderUpdate{}, files)

	assert.Equal(t, "https://res.example.com/poa-2.pdf", merged.Documents.PowerOfAttorney)
	assert.Equal(t, existing.Documents.CaseFiles, merged.Documents.CaseFiles)
}

func TestMergeLegalAidProviderPartialPersonalInfo(t *testing.T) {
	existing := testLegalAidProvider()

	update := models.LegalAidProviderUpdate{
		PersonalInfo: &models.ProviderPersonalInfoUpdate{
			FirmName: strPtr("Mehta Legal LLP"),
		},
	}

	merged := models.MergeLegalAidProvider(existing, update, nil)

	assert.Equal(t, "Mehta Legal LLP", merged.PersonalInfo.FirmName)
	assert.Equal(t, existing.PersonalInfo.Name, merged.PersonalInfo.Name)
	assert.Equal(t, existing.PersonalInfo.Address, merged.PersonalInfo.Address)
	assert.Equal(t, existing.Documents, merged.Documents)
}

func TestSubmittedApplicationApplyDefaults(t *testing.T) {
	app := models.SubmittedApplication{
		PrisonerID: "64f1c0ffee0ddba11ca5e001",
		BailID:     "64f1c0ffee0ddba11ca5e002",
	}
	app.ApplyDefaults()

	assert.False(t, app.ID.IsZero())
	assert.Equal(t, models.StatusPending, app.Status)
	assert.NotZero(t, app.ApplicationDate)
}

func TestSubmittedApplicationValidateRejectsUnknownStatus(t *testing.T) {
	app := models.SubmittedApplication{Status: "Filed"}

	violations := app.Validate()
	assert.Len(t, violations, 1)
	assert.Equal(t, "status", violations[0].Field)
}

func TestLegalAidProviderValidate(t *testing.T) {
	provider := testLegalAidProvider()
	assert.Empty(t, provider.Validate())

	provider.LawyerID = ""
	provider.PersonalInfo.Address = ""

	violations := provider.Validate()
	assert.Len(t, violations, 2)
	assert.Equal(t, "lawyerId", violations[0].Field)
	assert.Equal(t, "personalInfo.address", violations[1].Field)
}
