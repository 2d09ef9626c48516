package xcode

import (
	"os"
	"path"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/frantjc/xclink/internal/xclinkregexp"
)

const (
	ProjectGlobPattern        = "**/*" + ExtXcodeProj
	ProjectExcludeGlobPattern = "**/{Pods,node_modules}/**"
)

// FindProject searches dir for a .xcodeproj inside of an iOS
// directory, skipping CocoaPods and npm dependencies. It returns
// the slash-separated path of the first match relative to dir,
// or "" if there is none.
func FindProject(dir string) string {
	matches, err := doublestar.Glob(os.DirFS(dir), ProjectGlobPattern)
	if err != nil {
		return ""
	}

	for _, match := range matches {
		if excluded, _ := doublestar.Match(ProjectExcludeGlobPattern, match); excluded {
			continue
		}

		if xclinkregexp.IsIOSBase(path.Dir(match)) {
			return match
		}
	}

	return ""
}
