package asset

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	asseterrors "go-directory/internal/asset/errors"
	"go-directory/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Field is the multipart form field a file arrives under.
type Field string

const (
	FieldAvatar Field = "avatar"
	FieldLogo   Field = "logo"
	FieldCover  Field = "cover"
)

var fieldBuckets = map[Field]Bucket{
	FieldAvatar: BucketPhotos,
	FieldLogo:   BucketLogos,
	FieldCover:  BucketCovers,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Bucket returns the storage bucket backing f.
func (f Field) Bucket() (Bucket, error) {
	b, ok := fieldBuckets[f]
	if !ok {
		return "", asseterrors.ErrUnexpectedField.WithDetails(map[string]string{string(f): "unexpected field"})
	}
	return b, nil
}

// File is one accepted upload, already opened.
type File struct {
	Field       Field
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Validate applies the field and media type policy.
func (f File) Validate() error {
	if _, err := f.Field.Bucket(); err != nil {
		return err
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(f.ContentType, ";", 2)[0]))
	if !allowedContentTypes[ct] {
		return asseterrors.ErrUnsupportedMediaType.WithDetails(map[string]string{string(f.Field): "unsupported media type"})
	}
	return nil
}

// Files holds the uploads of one request, keyed by field.
type Files struct {
	byField map[Field]File
	closers []io.Closer
}

func (fs *Files) Get(f Field) (File, bool) {
	if fs == nil {
		return File{}, false
	}
	file, ok := fs.byField[f]
	return file, ok
}

func (fs *Files) Close() {
	if fs == nil {
		return
	}
	for _, c := range fs.closers {
		_ = c.Close()
	}
}

// NewFiles builds a Files set from already opened uploads. Each file is validated.
func NewFiles(files ...File) (*Files, error) {
	fs := &Files{byField: make(map[Field]File, len(files))}
	for _, f := range files {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, dup := fs.byField[f.Field]; dup {
			return nil, asseterrors.ErrTooManyFiles.WithDetails(map[string]string{string(f.Field): "duplicate file"})
		}
		fs.byField[f.Field] = f
	}
	return fs, nil
}

// FilesFromForm validates every file part of form against the allowed fields
// and opens them. A nil form yields an empty set.
func FilesFromForm(form *multipart.Form, allowed ...Field) (*Files, error) {
	fs := &Files{byField: map[Field]File{}}
	if form == nil {
		return fs, nil
	}

	permitted := make(map[Field]bool, len(allowed))
	for _, f := range allowed {
		permitted[f] = true
	}

	for name, headers := range form.File {
		field := Field(name)
		if !permitted[field] {
			fs.Close()
			return nil, asseterrors.ErrUnexpectedField.WithDetails(map[string]string{name: "unexpected field"})
		}
		if len(headers) > 1 {
			fs.Close()
			return nil, asseterrors.ErrTooManyFiles.WithDetails(map[string]string{name: "only one file allowed"})
		}

		fh := headers[0]
		file := File{
			Field:       field,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}
		if err := file.Validate(); err != nil {
			fs.Close()
			return nil, err
		}

		content, err := fh.Open()
		if err != nil {
			fs.Close()
			return nil, asseterrors.ErrUnexpectedField.WithDetails(map[string]string{name: "unreadable file"})
		}
		file.Content = content
		fs.closers = append(fs.closers, content)
		fs.byField[field] = file
	}
	return fs, nil
}

// FilesFromRequest reads the uploads of a multipart request. Other content
// types carry no files and yield an empty set.
func FilesFromRequest(c *gin.Context, allowed ...Field) (*Files, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return FilesFromForm(nil)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperror.ErrInvalidInput.WithDetails(map[string]string{"form": "malformed multipart body"})
	}
	return FilesFromForm(form, allowed...)
}

//go:generate mockgen -source=upload.go -destination=mock/upload_mock.go -package=mock

// Uploader stores an accepted file and returns its blob key. Discard removes
// a blob stored by Upload whose owning record was never written.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
	Discard(ctx context.Context, field Field, key string) error
}

type uploader struct {
	store  BlobStore
	now    func() time.Time
	nonce  func() string
	logger *zap.Logger
}

func NewUploader(store BlobStore, logger ...*zap.Logger) Uploader {
	l := zap.L().Named("asset.uploader")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("asset.uploader")
	}
	return &uploader{store: store, now: time.Now, nonce: keyNonce, logger: l}
}

func (u *uploader) Upload(ctx context.Context, f File) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	bucket, _ := f.Field.Bucket()
	key := BlobKey(u.now(), u.nonce(), f.Filename)

	if err := u.store.Put(ctx, bucket, key, f.Content, f.Size, f.ContentType); err != nil {
		u.logger.Error("blob upload failed",
			zap.String("bucket", string(bucket)),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", err
	}

	u.logger.Debug("blob uploaded", zap.String("bucket", string(bucket)), zap.String("key", key))
	return key, nil
}

func (u *uploader) Discard(ctx context.Context, field Field, key string) error {
	bucket, err := field.Bucket()
	if err != nil {
		return err
	}
	if err := u.store.Delete(ctx, bucket, key); err != nil {
		return err
	}
	u.logger.Debug("blob discarded", zap.String("bucket", string(bucket)), zap.String("key", key))
	return nil
}

// BlobKey is "<unix millis>_<nonce>_<base name>". The nonce keeps two uploads
// of the same name in the same millisecond apart.
func BlobKey(at time.Time, nonce, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%d_%s_%s", at.UnixMilli(), nonce, base)
}

func keyNonce() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:4])
}
