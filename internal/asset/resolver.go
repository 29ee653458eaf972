package asset

import "net/url"

// DefaultAvatarKey is stored on users who never uploaded an avatar.
const DefaultAvatarKey = "profile.png"

// Bucket is a logical blob namespace. Keys are unique per bucket.
type Bucket string

const (
	BucketPhotos Bucket = "photos"
	BucketLogos  Bucket = "logos"
	BucketCovers Bucket = "covers"
)

func (b Bucket) Valid() bool {
	switch b {
	case BucketPhotos, BucketLogos, BucketCovers:
		return true
	}
	return false
}

// Resolver turns stored blob keys into URLs at serialization time.
type Resolver struct {
	baseURL string
}

func NewResolver(baseURL string) *Resolver {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Resolver{baseURL: baseURL}
}

// Resolve returns nil for an empty key, the static placeholder for the
// default avatar, and the retrieval endpoint for everything else. The key is
// path-escaped so names with spaces or '#' stay addressable.
func (r *Resolver) Resolve(bucket Bucket, key string) *string {
	if key == "" {
		return nil
	}
	var u string
	if key == DefaultAvatarKey {
		u = r.baseURL + "/uploads/images/" + DefaultAvatarKey
	} else {
		u = r.baseURL + "/api/v1/assets/" + string(bucket) + "/" + url.PathEscape(key)
	}
	return &u
}
