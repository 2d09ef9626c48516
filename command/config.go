package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frantjc/xclink"
	"github.com/frantjc/xclink/pod"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	ConfigFileName    = "xclink.yaml"
	ConfigFileNameAlt = "xclink.yml"
	EnvPrefix         = "XCLINK_"
)

// Config is the configuration shared by every xclink command.
// Precedence, highest first: flags, XCLINK_* environment
// variables, config file, defaults.
type Config struct {
	PluginDir   string `koanf:"plugin_dir"`
	ProjectRoot string `koanf:"project_root"`
	SourceDir   string `koanf:"source_dir"`
	Modules     string `koanf:"modules"`
	Pod         string `koanf:"pod"`
	Verbose     int    `koanf:"verbose"`
}

// pathKeys are resolved relative to the directory of the
// config file they were read from.
var pathKeys = []string{"plugin_dir", "project_root", "source_dir"}

func findConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// LoadConfig loads the Config from cfgFile, or from xclink.yaml or
// xclink.yml in the working directory, the environment and flags.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"pod":     "pod",
		"verbose": 0,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if cfgFile == "" {
		if wd, err := os.Getwd(); err == nil {
			cfgFile = findConfigFile(wd)
		}
	}

	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}

		abs, err := filepath.Abs(cfgFile)
		if err != nil {
			return nil, err
		}

		for _, key := range pathKeys {
			if p := k.String(key); p != "" && !filepath.IsAbs(p) {
				if err := k.Set(key, filepath.Join(filepath.Dir(abs), p)); err != nil {
					return nil, err
				}
			}
		}
	}

	// XCLINK_PROJECT_ROOT -> project_root.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}

			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Options converts the Config into options for xclink.New.
func (c *Config) Options() *xclink.Options {
	return &xclink.Options{
		PluginDir:   c.PluginDir,
		ProjectRoot: c.ProjectRoot,
		SourceDir:   c.SourceDir,
		ModulesURL:  c.Modules,
		Pod:         pod.Command(c.Pod),
	}
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}

	return &Config{Pod: "pod"}
}
