package command

import (
	"fmt"
	"runtime"

	"github.com/frantjc/xclink"
	"github.com/spf13/cobra"
)

// SetCommon adds the flags shared by every xclink command to cmd and
// loads the Config and logger into its context before it runs.
func SetCommon(cmd *cobra.Command, version string) *cobra.Command {
	var (
		cfgFile   string
		verbosity int
	)
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to an "+ConfigFileName+".")
	cmd.PersistentFlags().String("plugin-dir", "", "Directory of the plugin that module JSON files are stored in.")
	cmd.PersistentFlags().String("project-root", "", "Root directory of the host application.")
	cmd.PersistentFlags().String("source-dir", "", "Directory of the host application's iOS sources.")
	cmd.PersistentFlags().String("modules", "", "Bucket URL to store module JSON files in.")
	cmd.PersistentFlags().String("pod", "", "Path to the pod executable.")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "V", fmt.Sprintf("Verbosity for %s.", cmd.Name()))
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := LoadConfig(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		cmd.SetContext(
			xclink.WithLogger(
				withConfig(cmd.Context(), cfg),
				xclink.NewLogger(cmd.ErrOrStderr(), cfg.Verbose),
			),
		)

		return nil
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	cmd.Version = version
	cmd.SetVersionTemplate("{{ .Name }} {{ .Version }} " + runtime.Version() + "\n")

	return cmd
}

// newHelpers initializes xclink.Helpers from the Config in
// the command's context, inheriting the command's stdio.
func newHelpers(cmd *cobra.Command) (*xclink.Helpers, error) {
	opts := configFrom(cmd.Context()).Options()
	opts.Stdin = cmd.InOrStdin()
	opts.Stdout = cmd.OutOrStdout()
	opts.Stderr = cmd.ErrOrStderr()

	return xclink.New(cmd.Context(), opts)
}
