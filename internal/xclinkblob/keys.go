package xclinkblob

import (
	"path"
	"path/filepath"
)

// Key maps a module file name to its key in the module bucket.
func Key(filename string) string {
	return path.Clean("./" + filepath.ToSlash(filename))
}
