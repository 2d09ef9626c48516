package command

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/frantjc/xclink"
	"github.com/frantjc/xclink/ios"
	"github.com/frantjc/xclink/xcode"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
	"howett.net/plist"
)

// NewXclink returns the root command for
// xclink which acts as its CLI entrypoint.
func NewXclink() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xclink",
		Short: "Link a plugin into a host application's Xcode project",
	}

	cmd.AddCommand(
		newProject(),
		newBuildSetting(),
		newPlist(),
		newSchemes(),
		newModuleJSON(),
		newPod(),
	)

	return SetCommon(cmd, xclink.SemVer())
}

func newProject() *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Print the host application's .xcodeproj",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := newHelpers(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			if h.ProjectDir == "" {
				return fmt.Errorf("no %s found in %s", xcode.ExtXcodeProj, h.ProjectRoot)
			}

			fmt.Fprintln(cmd.OutOrStdout(), h.ProjectDir)
			fmt.Fprintln(cmd.OutOrStdout(), xcode.PBXProjPath(h.ProjectRoot, h.ProjectDir))

			return nil
		},
	}
}

func newBuildSetting() *cobra.Command {
	return &cobra.Command{
		Use:   "build-setting NAME",
		Short: "Print a build setting of the primary target's default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHelpers(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			value, ok := h.Project.BuildSetting(args[0])
			if !ok {
				return fmt.Errorf("build setting %s not found", args[0])
			}

			if str, ok := value.(string); ok {
				fmt.Fprintln(cmd.OutOrStdout(), str)
				return nil
			}

			return json.NewEncoder(cmd.OutOrStdout()).Encode(value)
		},
	}
}

func newPlist() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plist",
		Short: "Inspect the host application's Info.plist",
	}

	cmd.AddCommand(newPlistPath(), newPlistGet(), newPlistInfo())

	return cmd
}

func newPlistPath() *cobra.Command {
	return &cobra.Command{
		Use:  "path",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := newHelpers(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			name, ok := h.PlistPath()
			if !ok {
				return xcode.ErrNoInfoPlist
			}

			fmt.Fprintln(cmd.OutOrStdout(), name)

			return nil
		},
	}
}

const (
	OutputXML  = "xml"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

func newPlistGet() *cobra.Command {
	var (
		output string
		cmd    = &cobra.Command{
			Use:  "get",
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				h, err := newHelpers(cmd)
				if err != nil {
					return err
				}
				defer h.Close()

				if h.Plist == nil {
					return fmt.Errorf("%s not found", ios.InfoPlistName)
				}

				switch strings.ToLower(output) {
				case OutputXML:
					enc := plist.NewEncoderForFormat(cmd.OutOrStdout(), plist.XMLFormat)
					enc.Indent("\t")
					return enc.Encode(h.Plist)
				case OutputJSON:
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(h.Plist)
				case OutputYAML:
					enc := yaml.NewEncoder(cmd.OutOrStdout())
					defer enc.Close()
					enc.SetIndent(2)
					return enc.Encode(h.Plist)
				}

				return fmt.Errorf("unsupported output %s", output)
			},
		}
	)

	cmd.Flags().StringVarP(&output, "output", "o", OutputXML, "Output format, one of xml, json or yaml.")

	return cmd
}

func newPlistInfo() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Summarize the identity and schemes of the host application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := newHelpers(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			name, ok := h.PlistPath()
			if !ok {
				return xcode.ErrNoInfoPlist
			}

			info, err := ios.ReadInfo(name)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(struct {
				*ios.Info
				URLSchemes []string `json:"URLSchemes"`
			}{
				Info:       info,
				URLSchemes: info.URLSchemes(),
			})
		},
	}
}

func newSchemes() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "Manage LSApplicationQueriesSchemes injected by the plugin",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:  "inject SCHEME...",
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := newHelpers(cmd)
				if err != nil {
					return err
				}
				defer h.Close()

				injected, err := h.InjectQuerySchemes(cmd.Context(), args...)
				if err != nil {
					return err
				}

				for _, scheme := range injected {
					fmt.Fprintln(cmd.OutOrStdout(), scheme)
				}

				return nil
			},
		},
		&cobra.Command{
			Use:  "restore",
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				h, err := newHelpers(cmd)
				if err != nil {
					return err
				}
				defer h.Close()

				removed, err := h.RestoreQuerySchemes(cmd.Context())
				if err != nil {
					return err
				}

				for _, scheme := range removed {
					fmt.Fprintln(cmd.OutOrStdout(), scheme)
				}

				return nil
			},
		},
	)

	return cmd
}

func newModuleJSON() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "module-json",
		Short: "Read and write JSON files in the plugin's directory",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:  "get NAME [PATH]",
			Args: cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					ctx = cmd.Context()
					raw json.RawMessage
				)

				h, err := newHelpers(cmd)
				if err != nil {
					return err
				}
				defer h.Close()

				if err = h.ReadModuleJSON(ctx, args[0], &raw); err != nil {
					return err
				}

				if len(args) == 2 {
					result := gjson.GetBytes(raw, args[1])
					if !result.Exists() {
						return fmt.Errorf("%s not found in %s", args[1], args[0])
					}

					raw = json.RawMessage(result.Raw)
				}

				fmt.Fprintln(cmd.OutOrStdout(), string(raw))

				return nil
			},
		},
		&cobra.Command{
			Use:  "set NAME [PATH] VALUE",
			Args: cobra.RangeArgs(2, 3),
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					ctx   = cmd.Context()
					value = rawJSON(args[len(args)-1])
				)

				h, err := newHelpers(cmd)
				if err != nil {
					return err
				}
				defer h.Close()

				if len(args) == 3 {
					doc := json.RawMessage("{}")
					if h.ModuleJSONExists(ctx, args[0]) {
						if err = h.ReadModuleJSON(ctx, args[0], &doc); err != nil {
							return err
						}
					}

					b, err := sjson.SetRawBytes(doc, args[1], value)
					if err != nil {
						return err
					}

					value = json.RawMessage(b)
				}

				return h.WriteModuleJSON(ctx, args[0], value)
			},
		},
		&cobra.Command{
			Use:  "exists NAME",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := newHelpers(cmd)
				if err != nil {
					return err
				}
				defer h.Close()

				fmt.Fprintln(cmd.OutOrStdout(), h.ModuleJSONExists(cmd.Context(), args[0]))

				return nil
			},
		},
		&cobra.Command{
			Use:     "rm NAME",
			Aliases: []string{"remove"},
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := newHelpers(cmd)
				if err != nil {
					return err
				}
				defer h.Close()

				return h.RemoveModuleJSON(cmd.Context(), args[0])
			},
		},
	)

	return cmd
}

// rawJSON treats s as JSON if it is valid JSON and
// as a string otherwise.
func rawJSON(s string) json.RawMessage {
	if gjson.Valid(s) {
		return json.RawMessage(bytes.TrimSpace([]byte(s)))
	}

	b, _ := json.Marshal(s)
	return json.RawMessage(b)
}

func newPod() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pod",
		Short: "Manage the host application's CocoaPods",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Run pod install, ignoring any failure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := newHelpers(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			h.PodInstall(cmd.Context())

			return nil
		},
	})

	return cmd
}
