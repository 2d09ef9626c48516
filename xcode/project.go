package xcode

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"howett.net/plist"
)

const (
	PBXProjName  = "project.pbxproj"
	ExtXcodeProj = ".xcodeproj"
)

const (
	isaPBXProject           = "PBXProject"
	isaPBXNativeTarget      = "PBXNativeTarget"
	isaPBXAggregateTarget   = "PBXAggregateTarget"
	isaPBXLegacyTarget      = "PBXLegacyTarget"
	isaXCConfigurationList  = "XCConfigurationList"
	isaXCBuildConfiguration = "XCBuildConfiguration"
)

// Project is the subset of a parsed project.pbxproj needed
// to look up build settings.
type Project struct {
	Targets             []Target
	ConfigurationLists  map[string]ConfigurationList
	BuildConfigurations map[string]BuildConfiguration
}

type Target struct {
	ID                     string
	Name                   string
	BuildConfigurationList string
}

type ConfigurationList struct {
	ID                       string
	BuildConfigurations      []string
	DefaultConfigurationName string
}

type BuildConfiguration struct {
	ID            string
	Name          string
	BuildSettings map[string]any
}

// pbxproj mirrors the on-disk layout: a flat table of objects
// keyed by their 24-character reference.
type pbxproj struct {
	RootObject string               `plist:"rootObject"`
	Objects    map[string]pbxObject `plist:"objects"`
}

type pbxObject struct {
	ISA                      string         `plist:"isa"`
	Name                     string         `plist:"name"`
	Targets                  []string       `plist:"targets"`
	BuildConfigurationList   string         `plist:"buildConfigurationList"`
	BuildConfigurations      []string       `plist:"buildConfigurations"`
	DefaultConfigurationName string         `plist:"defaultConfigurationName"`
	BuildSettings            map[string]any `plist:"buildSettings"`
}

// PBXProjPath returns the path to the project.pbxproj inside of
// the .xcodeproj at xcodeproj, relative to dir.
func PBXProjPath(dir, xcodeproj string) string {
	return filepath.Join(dir, filepath.FromSlash(xcodeproj), PBXProjName)
}

// Open reads and decodes the project.pbxproj at name.
func Open(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	project, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return project, nil
}

// Decode decodes a project.pbxproj, which is an OpenStep-style
// property list, into a Project.
func Decode(r io.Reader) (*Project, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &pbxproj{}
	if _, err = plist.Unmarshal(b, doc); err != nil {
		return nil, err
	}

	project := &Project{
		Targets:             []Target{},
		ConfigurationLists:  map[string]ConfigurationList{},
		BuildConfigurations: map[string]BuildConfiguration{},
	}

	for id, obj := range doc.Objects {
		switch obj.ISA {
		case isaXCConfigurationList:
			project.ConfigurationLists[id] = ConfigurationList{
				ID:                       id,
				BuildConfigurations:      obj.BuildConfigurations,
				DefaultConfigurationName: obj.DefaultConfigurationName,
			}
		case isaXCBuildConfiguration:
			project.BuildConfigurations[id] = BuildConfiguration{
				ID:            id,
				Name:          obj.Name,
				BuildSettings: obj.BuildSettings,
			}
		}
	}

	// Targets are ordered the way the root PBXProject lists them
	// so that the first one is the primary target.
	if root, ok := doc.Objects[doc.RootObject]; ok && root.ISA == isaPBXProject {
		for _, id := range root.Targets {
			if obj, ok := doc.Objects[id]; ok && isTarget(obj.ISA) {
				project.Targets = append(project.Targets, Target{
					ID:                     id,
					Name:                   obj.Name,
					BuildConfigurationList: obj.BuildConfigurationList,
				})
			}
		}
	} else if doc.RootObject == "" {
		return nil, fmt.Errorf("rootObject not found")
	} else {
		return nil, fmt.Errorf("root object %s is not a %s", doc.RootObject, isaPBXProject)
	}

	return project, nil
}

func isTarget(isa string) bool {
	switch isa {
	case isaPBXNativeTarget, isaPBXAggregateTarget, isaPBXLegacyTarget:
		return true
	}

	return false
}
