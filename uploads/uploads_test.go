package uploads_test

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bailreckoner/bail-records-api/config"
	"github.com/bailreckoner/bail-records-api/uploads"
)

var testFields = []uploads.Field{
	{Name: "caseFiles", MaxCount: 2},
	{Name: "powerOfAttorney", MaxCount: 1},
}

func formWithFiles(files map[string][]string) *multipart.Form {
	form := &multipart.Form{File: map[string][]*multipart.FileHeader{}}
	for name, filenames := range files {
		for _, filename := range filenames {
			form.File[name] = append(form.File[name], &multipart.FileHeader{Filename: filename})
		}
	}
	return form
}

func TestCheckLimitsAccepts(t *testing.T) {
	form := formWithFiles(map[string][]string{
		"caseFiles":       {"brief.pdf", "evidence.JPG"},
		"powerOfAttorney": {"poa.docx"},
	})

	assert.NoError(t, uploads.CheckLimits(form, testFields))
}

func TestCheckLimitsRejectsUndeclaredField(t *testing.T) {
	form := formWithFiles(map[string][]string{
		"supportingAffidavits": {"affidavit.pdf"},
	})

	err := uploads.CheckLimits(form, testFields)
	var attErr uploads.AttachmentError
	assert.ErrorAs(t, err, &attErr)
	assert.Equal(t, "supportingAffidavits", attErr.Category)
	assert.Equal(t, "unexpected file field", attErr.Reason)
}

func TestCheckLimitsRejectsTooManyFiles(t *testing.T) {
	form := formWithFiles(map[string][]string{
		"powerOfAttorney": {"poa-1.pdf", "poa-2.pdf"},
	})

	err := uploads.CheckLimits(form, testFields)
	var attErr uploads.AttachmentError
	assert.ErrorAs(t, err, &attErr)
	assert.Equal(t, "powerOfAttorney", attErr.Category)
	assert.Contains(t, attErr.Reason, "at most 1 file(s) allowed")
}

func TestCheckLimitsRejectsBadExtension(t *testing.T) {
	form := formWithFiles(map[string][]string{
		"caseFiles": {"notes.txt"},
	})

	err := uploads.CheckLimits(form, testFields)
	var attErr uploads.AttachmentError
	assert.ErrorAs(t, err, &attErr)
	assert.Equal(t, "caseFiles", attErr.Category)
	assert.Equal(t, "file format .txt is not allowed", attErr.Reason)
	// the reason ends up inside a JSON error body, so it must stay quote-free
	assert.NotContains(t, attErr.Reason, `"`)
}

func TestNewCloudinaryResolverRequiresCredentials(t *testing.T) {
	_, err := uploads.NewCloudinaryResolver(&config.Config{})
	assert.Error(t, err)
}
