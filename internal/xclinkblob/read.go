package xclinkblob

import (
	"context"

	"github.com/goccy/go-json"
	"gocloud.dev/blob"
)

func ReadJSON(ctx context.Context, bucket *blob.Bucket, key string, v any) error {
	b, err := bucket.ReadAll(ctx, key)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}

// Exists reports whether key exists in bucket. Errors
// looking it up are reported as it not existing.
func Exists(ctx context.Context, bucket *blob.Bucket, key string) bool {
	exists, err := bucket.Exists(ctx, key)
	return err == nil && exists
}
