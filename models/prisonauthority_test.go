package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bailreckoner/bail-records-api/models"
)

func testPrisonAuthority() models.PrisonAuthority {
	return models.PrisonAuthority{
		ID:          primitive.NewObjectID(),
		AuthorityID: "PRISON-007",
		PrisonName:  "Central Jail",
		ContactInfo: models.ContactInfo{Phone: "555-0142"},
		PrisonerData: []models.PrisonerData{
			{
				ID:                  primitive.NewObjectID(),
				PrisonerID:          "64f1c0ffee0ddba11ca5e003",
				IncarcerationReport: "https://res.example.com/ir-1.pdf",
				BehaviorReports:     []string{"https://res.example.com/br-1.pdf"},
			},
		},
		Version: 2,
	}
}

func TestMergePrisonAuthorityReplacesSubRecordListsWholesale(t *testing.T) {
	existing := testPrisonAuthority()

	update := models.PrisonAuthorityUpdate{
		PrisonerData: &[]models.PrisonerData{
			{PrisonerID: "64f1c0ffee0ddba11ca5e004"},
		},
	}

	merged := models.MergePrisonAuthority(existing, update)

	assert.Len(t, merged.PrisonerData, 1)
	assert.Equal(t, models.UncheckedID("64f1c0ffee0ddba11ca5e004"), merged.PrisonerData[0].PrisonerID)
	assert.Equal(t, existing.AuthorityID, merged.AuthorityID)
	assert.Equal(t, existing.ContactInfo, merged.ContactInfo)
}

func TestPrisonAuthorityApplyDefaultsAssignsSubRecordIDs(t *testing.T) {
	authority := testPrisonAuthority()
	authority.PrisonerData = append(authority.PrisonerData, models.PrisonerData{PrisonerID: "64f1c0ffee0ddba11ca5e005"})
	authority.ReleaseAuthorizations = []models.ReleaseAuthorization{{PrisonerID: "64f1c0ffee0ddba11ca5e005"}}

	existingID := authority.PrisonerData[0].ID
	authority.ApplyDefaults()

	assert.Equal(t, existingID, authority.PrisonerData[0].ID)
	assert.False(t, authority.PrisonerData[1].ID.IsZero())
	assert.False(t, authority.ReleaseAuthorizations[0].ID.IsZero())
}

func TestPrisonAuthorityValidate(t *testing.T) {
	authority := testPrisonAuthority()
	assert.Empty(t, authority.Validate())

	authority.AuthorityID = ""
	authority.PrisonName = ""

	violations := authority.Validate()
	assert.Len(t, violations, 2)
	assert.Equal(t, "authorityId", violations[0].Field)
	assert.Equal(t, "prisonName", violations[1].Field)
}
