package xclink

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/frantjc/xclink/internal/xclinkblob"
	"github.com/frantjc/xclink/pod"
	"github.com/frantjc/xclink/xcode"
	"gocloud.dev/blob"
)

const (
	// TempFileName is the module file in which other install
	// scripts record the query schemes they injected.
	TempFileName = "injectedQuerySchemes.json.tmp"
	// SourceDirName is the directory of the host application
	// containing its native iOS sources.
	SourceDirName = "ios"
)

type Options struct {
	// PluginDir is the plugin's own directory. Module JSON files
	// live here. Defaults to the working directory.
	PluginDir string
	// ProjectRoot is the host application's root directory.
	// Defaults to two directories above PluginDir, i.e. the
	// directory containing node_modules.
	ProjectRoot string
	// SourceDir defaults to ProjectRoot/ios.
	SourceDir string
	// ModulesURL overrides the bucket module JSON files are
	// stored in. Defaults to a fileblob bucket at PluginDir.
	ModulesURL string
	// Pod defaults to `pod` on the PATH.
	Pod pod.Command

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Helpers holds everything resolved about the host application
// once at startup. Project and Plist are nil when no .xcodeproj
// or Info.plist could be found.
type Helpers struct {
	PluginDir   string
	ProjectRoot string
	SourceDir   string
	// ProjectDir is the slash-separated path of the .xcodeproj
	// relative to ProjectRoot.
	ProjectDir string
	Project    *xcode.Project
	Plist      map[string]any

	modules *blob.Bucket
	pod     pod.Command
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// New locates and parses the host application's Xcode project,
// reads its Info.plist and opens the module bucket.
func New(ctx context.Context, opts *Options) (*Helpers, error) {
	if opts == nil {
		opts = &Options{}
	}

	var (
		log = LoggerFrom(ctx)
		h   = &Helpers{
			PluginDir:   opts.PluginDir,
			ProjectRoot: opts.ProjectRoot,
			SourceDir:   opts.SourceDir,
			pod:         opts.Pod,
			stdin:       opts.Stdin,
			stdout:      opts.Stdout,
			stderr:      opts.Stderr,
		}
		err error
	)

	if h.PluginDir == "" {
		if h.PluginDir, err = os.Getwd(); err != nil {
			return nil, err
		}
	}

	if h.PluginDir, err = filepath.Abs(h.PluginDir); err != nil {
		return nil, err
	}

	if h.ProjectRoot == "" {
		h.ProjectRoot = filepath.Join(h.PluginDir, "..", "..")
	}

	if h.ProjectRoot, err = filepath.Abs(h.ProjectRoot); err != nil {
		return nil, err
	}

	if h.SourceDir == "" {
		h.SourceDir = filepath.Join(h.ProjectRoot, SourceDirName)
	}

	if h.SourceDir, err = filepath.Abs(h.SourceDir); err != nil {
		return nil, err
	}

	if h.pod == "" {
		h.pod = "pod"
	}

	if h.stdin == nil {
		h.stdin = os.Stdin
	}

	if h.stdout == nil {
		h.stdout = os.Stdout
	}

	if h.stderr == nil {
		h.stderr = os.Stderr
	}

	h.ProjectDir = xcode.FindProject(h.ProjectRoot)

	log.V(1).Info("resolved directories",
		"pluginDir", h.PluginDir,
		"projectRoot", h.ProjectRoot,
		"sourceDir", h.SourceDir,
		"xcodeProjectDir", h.ProjectDir,
	)

	if h.ProjectDir != "" {
		pbxproj := xcode.PBXProjPath(h.ProjectRoot, h.ProjectDir)

		log.V(1).Info("parsing " + pbxproj)
		if h.Project, err = xcode.Open(pbxproj); err != nil {
			return nil, err
		}

		if h.Plist, err = xcode.ReadPlist(h.SourceDir, h.Project); err != nil {
			return nil, err
		}
	} else {
		log.Info("no .xcodeproj found in " + h.ProjectRoot)
	}

	if h.modules, err = xclinkblob.OpenBucket(ctx, opts.ModulesURL, h.PluginDir); err != nil {
		return nil, err
	}

	return h, nil
}

// PlistPath returns the path of the Info.plist resolved
// from the project's INFOPLIST_FILE build setting.
func (h *Helpers) PlistPath() (string, bool) {
	return xcode.PlistPath(h.SourceDir, h.Project)
}

// ReadPlist reads the Info.plist from disk again. Plist is
// not updated by WritePlist, so callers that need the
// persisted state must use this.
func (h *Helpers) ReadPlist() (map[string]any, error) {
	return xcode.ReadPlist(h.SourceDir, h.Project)
}

func (h *Helpers) WritePlist(info any) error {
	return xcode.WritePlist(h.SourceDir, h.Project, info)
}

func (h *Helpers) ReadModuleJSON(ctx context.Context, filename string, v any) error {
	return xclinkblob.ReadJSON(ctx, h.modules, xclinkblob.Key(filename), v)
}

func (h *Helpers) WriteModuleJSON(ctx context.Context, filename string, v any) error {
	return xclinkblob.WriteJSON(ctx, h.modules, xclinkblob.Key(filename), v)
}

func (h *Helpers) ModuleJSONExists(ctx context.Context, filename string) bool {
	return xclinkblob.Exists(ctx, h.modules, xclinkblob.Key(filename))
}

func (h *Helpers) RemoveModuleJSON(ctx context.Context, filename string) error {
	return xclinkblob.Remove(ctx, h.modules, xclinkblob.Key(filename))
}

// PodInstall runs `pod install` in SourceDir. It is a convenience
// that must never abort an install, so any failure, including
// `pod` not being installed, is discarded.
func (h *Helpers) PodInstall(ctx context.Context) {
	if err := h.pod.Install(ctx, h.SourceDir, &pod.InstallOpts{
		Stdin:  h.stdin,
		Stdout: h.stdout,
		Stderr: h.stderr,
	}); err != nil {
		LoggerFrom(ctx).V(1).Info("ignoring pod install failure", "err", err.Error())
	}
}

func (h *Helpers) Close() error {
	if h.modules == nil {
		return nil
	}

	return h.modules.Close()
}
