package asset_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"go-directory/internal/asset"
	asseterrors "go-directory/internal/asset/errors"
	"go-directory/internal/shared/apperror"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
)

type fakeS3 struct {
	putInput *s3.PutObjectInput
	getInput *s3.GetObjectInput
	putErr   error
	getOut   *s3.GetObjectOutput
	getErr   error
	delInput *s3.DeleteObjectInput
	delErr   error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = in
	return &s3.PutObjectOutput{}, f.putErr
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.getInput = in
	return f.getOut, f.getErr
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.delInput = in
	return &s3.DeleteObjectOutput{}, f.delErr
}

func TestS3Store_Delete(t *testing.T) {
	client := &fakeS3{}
	store := asset.NewS3Store(client, "directory-assets")

	assert.NoError(t, store.Delete(context.Background(), asset.BucketPhotos, "1_ab12cd34_cat.png"))
	assert.Equal(t, "directory-assets", aws.ToString(client.delInput.Bucket))
	assert.Equal(t, "photos/1_ab12cd34_cat.png", aws.ToString(client.delInput.Key))

	client.delErr = assert.AnError
	err := store.Delete(context.Background(), asset.BucketPhotos, "1_ab12cd34_cat.png")
	assert.Equal(t, apperror.CodeStorageUnavailable, apperror.CodeOf(err))
}

func TestS3Store_Put(t *testing.T) {
	client := &fakeS3{}
	store := asset.NewS3Store(client, "directory-assets")

	err := store.Put(context.Background(), asset.BucketLogos, "1_acme.png", strings.NewReader("png"), 3, "image/png")
	assert.NoError(t, err)
	assert.Equal(t, "directory-assets", aws.ToString(client.putInput.Bucket))
	assert.Equal(t, "logos/1_acme.png", aws.ToString(client.putInput.Key))
	assert.Equal(t, "image/png", aws.ToString(client.putInput.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(client.putInput.ContentLength))

	client.putErr = assert.AnError
	err = store.Put(context.Background(), asset.BucketLogos, "1_acme.png", strings.NewReader("png"), 3, "image/png")
	assert.Equal(t, apperror.CodeStorageUnavailable, apperror.CodeOf(err))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestS3Store_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client := &fakeS3{getOut: &s3.GetObjectOutput{
			Body:          io.NopCloser(strings.NewReader("img")),
			ContentType:   aws.String("image/gif"),
			ContentLength: aws.Int64(3),
		}}
		store := asset.NewS3Store(client, "directory-assets")

		obj, err := store.Get(context.Background(), asset.BucketPhotos, "1_me.gif")
		assert.NoError(t, err)
		defer obj.Body.Close()

		body, _ := io.ReadAll(obj.Body)
		assert.Equal(t, "img", string(body))
		assert.Equal(t, "image/gif", obj.ContentType)
		assert.Equal(t, int64(3), obj.Size)
		assert.Equal(t, "photos/1_me.gif", aws.ToString(client.getInput.Key))
	})

	t.Run("missing key", func(t *testing.T) {
		store := asset.NewS3Store(&fakeS3{getErr: &types.NoSuchKey{}}, "directory-assets")

		_, err := store.Get(context.Background(), asset.BucketPhotos, "nope.png")
		assert.ErrorIs(t, err, asseterrors.ErrBlobNotFound)
	})

	t.Run("backend failure", func(t *testing.T) {
		store := asset.NewS3Store(&fakeS3{getErr: assert.AnError}, "directory-assets")

		_, err := store.Get(context.Background(), asset.BucketPhotos, "x.png")
		assert.Equal(t, apperror.CodeStorageUnavailable, apperror.CodeOf(err))
	})
}
