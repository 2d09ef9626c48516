package xcode

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"
)

const (
	// SRCRootPlaceholder is expanded by Xcode to the directory
	// containing the .xcodeproj.
	SRCRootPlaceholder = "$(SRCROOT)"
)

var (
	ErrNoInfoPlist = errors.New("unable to resolve Info.plist path from " + BuildSettingInfoPlistFile)
)

// PlistPath resolves the Info.plist of the project's first target
// from its INFOPLIST_FILE build setting, relative to sourceDir.
func PlistPath(sourceDir string, project *Project) (string, bool) {
	value, ok := project.BuildSetting(BuildSettingInfoPlistFile)
	if !ok {
		return "", false
	}

	infoPlistFile, ok := value.(string)
	if !ok || infoPlistFile == "" {
		return "", false
	}

	infoPlistFile = strings.ReplaceAll(infoPlistFile, `"`, "")
	infoPlistFile = strings.Replace(infoPlistFile, SRCRootPlaceholder, "", 1)

	return filepath.Join(sourceDir, infoPlistFile), true
}

// ReadPlist reads the project's Info.plist. It returns nil and no
// error if the path cannot be resolved or nothing exists there.
func ReadPlist(sourceDir string, project *Project) (map[string]any, error) {
	name, ok := PlistPath(sourceDir, project)
	if !ok {
		return nil, nil
	}

	b, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var info map[string]any
	if _, err = plist.Unmarshal(b, &info); err != nil {
		return nil, err
	}

	return info, nil
}

// WritePlist overwrites the project's Info.plist with info
// encoded as an XML property list.
func WritePlist(sourceDir string, project *Project, info any) error {
	name, ok := PlistPath(sourceDir, project)
	if !ok {
		return ErrNoInfoPlist
	}

	var (
		buf = new(bytes.Buffer)
		enc = plist.NewEncoderForFormat(buf, plist.XMLFormat)
	)
	enc.Indent("\t")

	if err := enc.Encode(info); err != nil {
		return err
	}

	//nolint:gosec
	return os.WriteFile(name, buf.Bytes(), 0644)
}
