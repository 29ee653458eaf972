package asset_test

import (
	"net/url"
	"testing"

	"go-directory/internal/asset"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	r := asset.NewResolver("https://dir.example.com/")

	tests := []struct {
		name   string
		bucket asset.Bucket
		key    string
		want   *string
	}{
		{"empty key", asset.BucketCovers, "", nil},
		{"default avatar", asset.BucketPhotos, "profile.png", strPtr("https://dir.example.com/uploads/images/profile.png")},
		{"uploaded avatar", asset.BucketPhotos, "a1b2_cat.png", strPtr("https://dir.example.com/api/v1/assets/photos/a1b2_cat.png")},
		{"logo", asset.BucketLogos, "1700000000000_acme.webp", strPtr("https://dir.example.com/api/v1/assets/logos/1700000000000_acme.webp")},
		{"space and hash escaped", asset.BucketPhotos, "1700000000000_my cat#1.png", strPtr("https://dir.example.com/api/v1/assets/photos/1700000000000_my%20cat%231.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.bucket, tt.key))
		})
	}
}

func TestResolver_ResolveAddressesStoredKey(t *testing.T) {
	r := asset.NewResolver("https://dir.example.com")
	key := "1700000000000_ab12cd34_my cat?#1.png"

	got, err := url.Parse(*r.Resolve(asset.BucketPhotos, key))

	assert.NoError(t, err)
	assert.Empty(t, got.Fragment)
	assert.Empty(t, got.RawQuery)
	assert.Equal(t, "/api/v1/assets/photos/"+key, got.Path)
}

func TestBucket_Valid(t *testing.T) {
	assert.True(t, asset.BucketPhotos.Valid())
	assert.True(t, asset.BucketLogos.Valid())
	assert.True(t, asset.BucketCovers.Valid())
	assert.False(t, asset.Bucket("secrets").Valid())
}

func strPtr(s string) *string { return &s }
