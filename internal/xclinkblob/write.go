package xclinkblob

import (
	"context"

	"github.com/goccy/go-json"
	"gocloud.dev/blob"
)

const (
	ContentTypeJSON = "application/json"
)

func WriteJSON(ctx context.Context, bucket *blob.Bucket, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return bucket.WriteAll(ctx, key, b, &blob.WriterOptions{ContentType: ContentTypeJSON})
}

func Remove(ctx context.Context, bucket *blob.Bucket, key string) error {
	return bucket.Delete(ctx, key)
}
