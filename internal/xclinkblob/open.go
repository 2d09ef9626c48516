package xclinkblob

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
)

// DirURL returns a fileblob URL for the directory dir which
// stores objects as plain files without metadata sidecars.
func DirURL(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	u := &url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: url.Values{"metadata": {"skip"}, "no_tmp_dir": {"true"}}.Encode(),
	}

	return u.String(), nil
}

// OpenBucket opens the bucket at urlstr, or a fileblob bucket
// in dir if urlstr is empty.
func OpenBucket(ctx context.Context, urlstr, dir string) (*blob.Bucket, error) {
	if urlstr == "" {
		var err error
		if urlstr, err = DirURL(dir); err != nil {
			return nil, err
		}
	}

	return blob.OpenBucket(ctx, urlstr)
}
