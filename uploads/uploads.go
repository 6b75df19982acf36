// Package uploads routes multipart file attachments to Cloudinary and
// hands back one stable reference URL per accepted file. Handlers only
// depend on the Resolver interface; the merge logic never sees a file.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bailreckoner/bail-records-api/config"
)

// Field declares one attachment category accepted by an endpoint and the
// maximum number of files that category takes in a single request
type Field struct {
	Name     string
	MaxCount int
}

// AttachmentError is returned when an uploaded batch violates a category's
// count or format limits. A single bad file fails the whole batch.
type AttachmentError struct {
	Category string
	Reason   string
}

func (e AttachmentError) Error() string {
	return fmt.Sprintf("attachment rejected for %s: %s", e.Category, e.Reason)
}

// Resolver stores uploaded files externally, grouped by category, and
// returns a mapping from category to reference URLs in upload order
type Resolver interface {
	Resolve(ctx context.Context, form *multipart.Form, fields []Field) (map[string][]string, error)
}

// formats the deployment accepts, keyed by lowercased file extension
var allowedFormats = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".docx": true,
}

// CloudinaryResolver uploads files into a single Cloudinary folder with
// uuid public IDs
type CloudinaryResolver struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryResolver builds a resolver from the cloudinary credential
// triple in the config. Missing credentials are a startup failure.
func NewCloudinaryResolver(conf *config.Config) (*CloudinaryResolver, error) {
	if conf.CloudinaryCloud == "" || conf.CloudinaryKey == "" || conf.CloudinarySecret == "" {
		return nil, errors.New("cloudinary credentials are not set")
	}
	cld, err := cloudinary.NewFromParams(conf.CloudinaryCloud, conf.CloudinaryKey, conf.CloudinarySecret)
	if err != nil {
		return nil, err
	}
	folder := conf.CloudinaryFolder
	if folder == "" {
		folder = "documents"
	}
	return &CloudinaryResolver{cld: cld, folder: folder}, nil
}

// Resolve validates the batch against the declared fields and uploads
// every file, preserving upload order within each category
func (r *CloudinaryResolver) Resolve(ctx context.Context, form *multipart.Form, fields []Field) (map[string][]string, error) {
	if form == nil {
		return map[string][]string{}, nil
	}
	if err := CheckLimits(form, fields); err != nil {
		return nil, err
	}

	references := make(map[string][]string)
	for _, field := range fields {
		for _, header := range form.File[field.Name] {
			ref, err := r.uploadOne(ctx, field.Name, header)
			if err != nil {
				return nil, err
			}
			references[field.Name] = append(references[field.Name], ref)
		}
	}
	return references, nil
}

func (r *CloudinaryResolver) uploadOne(ctx context.Context, category string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	resp, err := r.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   r.folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", AttachmentError{Category: category, Reason: resp.Error.Message}
	}
	zap.S().Debugw("uploaded attachment",
		"category", category,
		"filename", header.Filename,
		"url", resp.SecureURL,
	)
	return resp.SecureURL, nil
}

// CheckLimits verifies every uploaded file belongs to a declared category,
// respects that category's max count and carries an allowed extension
func CheckLimits(form *multipart.Form, fields []Field) error {
	declared := make(map[string]Field, len(fields))
	for _, f := range fields {
		declared[f.Name] = f
	}
	for name, headers := range form.File {
		field, ok := declared[name]
		if !ok {
			return AttachmentError{Category: name, Reason: "unexpected file field"}
		}
		if len(headers) > field.MaxCount {
			return AttachmentError{
				Category: name,
				Reason:   fmt.Sprintf("at most %d file(s) allowed, got %d", field.MaxCount, len(headers)),
			}
		}
		for _, header := range headers {
			ext := strings.ToLower(path.Ext(header.Filename))
			if !allowedFormats[ext] {
				return AttachmentError{
					Category: name,
					Reason:   fmt.Sprintf("file format %s is not allowed", ext),
				}
			}
		}
	}
	return nil
}
