package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/corpuspush/internal/config"
)

// options shared by every subcommand
type rootOptions struct {
	cfgFile string
	v       *viper.Viper
}

// NewRootCommand builds the command tree. Each call returns an independent
// tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "corpuspush",
		Short: "Push a directory of files through an external client, one at a time",
		Long: `corpuspush lists an input directory and invokes a push client once per
entry, synchronously, timing every invocation and printing the total.

The client is called as: <command> <client-args...> <put-flag> <entry>`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./corpuspush.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	opts.v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	opts.v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(newPushCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))

	return rootCmd
}

// Execute runs the root command against os.Args
func Execute() error {
	return NewRootCommand().Execute()
}

// load resolves the effective configuration: flags, then CORPUSPUSH_* env,
// then the config file, then defaults.
func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.v, o.cfgFile)
}
