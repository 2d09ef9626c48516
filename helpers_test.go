package xclink

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/frantjc/xclink/pod"
	"github.com/frantjc/xclink/xcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

const pbxproj = `// !$*UTF8*$!
{
	archiveVersion = 1;
	objectVersion = 46;
	objects = {
		A1 /* Example */ = {
			isa = PBXNativeTarget;
			buildConfigurationList = L1;
			name = Example;
		};
		A2 /* Example-tvOS */ = {
			isa = PBXNativeTarget;
			buildConfigurationList = L2;
			name = "Example-tvOS";
		};
		P1 /* Project object */ = {
			isa = PBXProject;
			targets = (
				A1,
				A2,
			);
		};
		C1 /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				INFOPLIST_FILE = Example/Debug-Info.plist;
			};
			name = Debug;
		};
		C2 /* Release */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				INFOPLIST_FILE = "\"$(SRCROOT)/Example/Info.plist\"";
			};
			name = Release;
		};
		C3 /* Release */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				INFOPLIST_FILE = "Example-tvOS/Info.plist";
			};
			name = Release;
		};
		L1 = {
			isa = XCConfigurationList;
			buildConfigurations = (
				C1,
				C2,
			);
			defaultConfigurationName = Release;
		};
		L2 = {
			isa = XCConfigurationList;
			buildConfigurations = (
				C3,
			);
			defaultConfigurationName = Release;
		};
	};
	rootObject = P1;
}
`

const infoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleIdentifier</key>
	<string>com.example.Example</string>
	<key>LSApplicationQueriesSchemes</key>
	<array>
		<string>comgooglemaps</string>
	</array>
</dict>
</plist>
`

type hostApp struct {
	root      string
	pluginDir string
	infoPlist string
}

// newHostApp lays out a React Native-style application with
// the plugin installed under node_modules.
func newHostApp(t *testing.T, withProject, withPlist bool) *hostApp {
	t.Helper()

	var (
		root = t.TempDir()
		app  = &hostApp{
			root:      root,
			pluginDir: filepath.Join(root, "node_modules", "react-native-launch-navigator"),
			infoPlist: filepath.Join(root, "ios", "Example", "Info.plist"),
		}
	)

	require.NoError(t, os.MkdirAll(app.pluginDir, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(app.pluginDir, "ios", "Plugin.xcodeproj"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ios", "Example"), 0755))

	if withProject {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "ios", "Example.xcodeproj"), 0755))
		require.NoError(t, os.WriteFile(xcode.PBXProjPath(root, "ios/Example.xcodeproj"), []byte(pbxproj), 0644))
	}

	if withPlist {
		require.NoError(t, os.WriteFile(app.infoPlist, []byte(infoPlist), 0644))
	}

	return app
}

func newHelpers(t *testing.T, opts *Options) *Helpers {
	t.Helper()

	h, err := New(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = h.Close()
	})

	return h
}

func TestNew(t *testing.T) {
	var (
		app = newHostApp(t, true, true)
		h   = newHelpers(t, &Options{PluginDir: app.pluginDir})
	)

	assert.Equal(t, app.pluginDir, h.PluginDir)
	assert.Equal(t, app.root, h.ProjectRoot)
	assert.Equal(t, filepath.Join(app.root, "ios"), h.SourceDir)
	assert.Equal(t, "ios/Example.xcodeproj", h.ProjectDir)
	require.NotNil(t, h.Project)
	require.NotNil(t, h.Plist)
	assert.Equal(t, "com.example.Example", h.Plist["CFBundleIdentifier"])

	name, ok := h.PlistPath()
	require.True(t, ok)
	assert.Equal(t, app.infoPlist, name)
}

func TestNewWithoutProject(t *testing.T) {
	var (
		app = newHostApp(t, false, true)
		h   = newHelpers(t, &Options{PluginDir: app.pluginDir})
	)

	assert.Equal(t, "", h.ProjectDir)
	assert.Nil(t, h.Project)
	assert.Nil(t, h.Plist)

	_, ok := h.PlistPath()
	assert.False(t, ok)

	info, err := h.ReadPlist()
	assert.NoError(t, err)
	assert.Nil(t, info)

	assert.ErrorIs(t, h.WritePlist(map[string]any{}), xcode.ErrNoInfoPlist)
}

func TestNewWithoutPlist(t *testing.T) {
	var (
		app = newHostApp(t, true, false)
		h   = newHelpers(t, &Options{PluginDir: app.pluginDir})
	)

	require.NotNil(t, h.Project)
	assert.Nil(t, h.Plist)

	// The path still resolves, so writing creates the file.
	require.NoError(t, h.WritePlist(map[string]any{"CFBundleIdentifier": "com.example.New"}))

	info, err := h.ReadPlist()
	require.NoError(t, err)
	assert.Equal(t, "com.example.New", info["CFBundleIdentifier"])
}

func TestNewInvalidProject(t *testing.T) {
	app := newHostApp(t, true, true)
	require.NoError(t, os.WriteFile(xcode.PBXProjPath(app.root, "ios/Example.xcodeproj"), []byte("{ objects = ( ; }"), 0644))

	_, err := New(context.Background(), &Options{PluginDir: app.pluginDir})
	assert.Error(t, err)
}

func TestWritePlistDoesNotRefreshPlist(t *testing.T) {
	var (
		app = newHostApp(t, true, true)
		h   = newHelpers(t, &Options{PluginDir: app.pluginDir})
	)

	require.NoError(t, h.WritePlist(map[string]any{"CFBundleIdentifier": "com.example.Changed"}))
	assert.Equal(t, "com.example.Example", h.Plist["CFBundleIdentifier"])

	info, err := h.ReadPlist()
	require.NoError(t, err)
	assert.Equal(t, "com.example.Changed", info["CFBundleIdentifier"])
}

func TestModuleJSON(t *testing.T) {
	for _, modulesURL := range []string{"", "mem://"} {
		t.Run("modules="+modulesURL, func(t *testing.T) {
			var (
				ctx = context.Background()
				app = newHostApp(t, true, true)
				h   = newHelpers(t, &Options{PluginDir: app.pluginDir, ModulesURL: modulesURL})
			)

			assert.False(t, h.ModuleJSONExists(ctx, "state.json"))

			var v map[string]any
			assert.Error(t, h.ReadModuleJSON(ctx, "state.json", &v))
			assert.Error(t, h.RemoveModuleJSON(ctx, "state.json"))

			require.NoError(t, h.WriteModuleJSON(ctx, "state.json", map[string]any{"linked": true}))
			assert.True(t, h.ModuleJSONExists(ctx, "state.json"))

			require.NoError(t, h.ReadModuleJSON(ctx, "state.json", &v))
			assert.Equal(t, map[string]any{"linked": true}, v)

			require.NoError(t, h.RemoveModuleJSON(ctx, "state.json"))
			assert.False(t, h.ModuleJSONExists(ctx, "state.json"))
		})
	}
}

func TestModuleJSONIsScopedToPluginDir(t *testing.T) {
	var (
		ctx = context.Background()
		app = newHostApp(t, true, true)
		h   = newHelpers(t, &Options{PluginDir: app.pluginDir})
	)

	require.NoError(t, h.WriteModuleJSON(ctx, "state.json", []int{1, 2}))

	b, err := os.ReadFile(filepath.Join(app.pluginDir, "state.json"))
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(b))

	_, err = os.Stat(filepath.Join(app.root, "state.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPodInstallNeverFails(t *testing.T) {
	app := newHostApp(t, true, true)

	tests := []struct {
		name   string
		script string
	}{
		{name: "succeeds", script: "exit 0"},
		{name: "fails", script: "exit 1"},
		{name: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := pod.Command(filepath.Join(t.TempDir(), "pod"))
			if tt.script != "" {
				if runtime.GOOS == "windows" {
					t.Skip("requires a POSIX shell")
				}

				require.NoError(t, os.WriteFile(cmd.String(), []byte("#!/bin/sh\n"+tt.script+"\n"), 0755))
			}

			h := newHelpers(t, &Options{PluginDir: app.pluginDir, Pod: cmd, ModulesURL: "mem://"})

			assert.NotPanics(t, func() {
				h.PodInstall(context.Background())
			})
		})
	}
}
