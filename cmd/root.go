package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/numtide/htmlwalk/build"
	_init "github.com/numtide/htmlwalk/cmd/init"
	"github.com/numtide/htmlwalk/cmd/list"
	"github.com/numtide/htmlwalk/config"
	"github.com/numtide/htmlwalk/stats"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRoot() (*cobra.Command, *stats.Stats) {
	var (
		htmlwalkInit bool
		configFile   string
	)

	// create a viper instance for reading in config
	v := config.NewViper()

	// create a new stats instance
	statz := stats.New()

	// create our root command
	cmd := &cobra.Command{
		Use:     build.Name + " [root]",
		Short:   "List the directories and html files beneath a root directory",
		Version: build.Version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runE(v, &statz, cmd, args)
		},
	}

	// update version template
	cmd.SetVersionTemplate("htmlwalk {{.Version}}")

	fs := cmd.Flags()

	// add our config flags to the command's flag set
	config.SetFlags(fs)

	// add a couple of special flags which don't have a corresponding entry in htmlwalk.toml
	fs.StringVar(
		&configFile, "config-file", "",
		"Load the config file from the given path (defaults to searching upwards for htmlwalk.toml or "+
			".htmlwalk.toml, then the XDG config directories). (env $HTMLWALK_CONFIG)",
	)
	fs.BoolVarP(
		&htmlwalkInit, "init", "i", false,
		"Create a htmlwalk.toml file in the current directory.",
	)

	// bind our command's flags to viper
	if err := v.BindPFlags(fs); err != nil {
		cobra.CheckErr(fmt.Errorf("failed to bind global config to viper: %w", err))
	}

	return cmd, &statz
}

func runE(v *viper.Viper, statz *stats.Stats, cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	// change working directory if required
	workingDir, err := filepath.Abs(v.GetString("working-dir"))
	if err != nil {
		return fmt.Errorf("failed to get absolute path for working directory: %w", err)
	} else if err = os.Chdir(workingDir); err != nil {
		return fmt.Errorf("failed to change working directory: %w", err)
	}

	// check if we are running the init command
	if init, err := flags.GetBool("init"); err != nil {
		return fmt.Errorf("failed to read init flag: %w", err)
	} else if init {
		if err := _init.Run(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to run init command: %w", err)
		}

		return nil
	}

	configFile, err := flags.GetString("config-file")
	if err != nil {
		return fmt.Errorf("failed to read config-file flag: %w", err)
	}

	// a config file is optional, the flag defaults reproduce the classic behaviour
	configFile, err = config.Locate(configFile, workingDir)
	if err != nil {
		return fmt.Errorf("failed to locate htmlwalk config file: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			cmd.SilenceUsage = true

			return fmt.Errorf("failed to read config file '%s': %w", configFile, err)
		}
	}

	// a positional root takes precedence over flags, env and config
	if len(args) == 1 {
		v.Set("root", args[0])
	}

	// configure logging
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)

	if v.GetBool("quiet") {
		// if quiet, we only log errors
		log.SetLevel(log.ErrorLevel)
	} else {
		// otherwise, the verbose flag controls the log level
		switch v.GetInt("verbose") {
		case 0:
			log.SetLevel(log.WarnLevel)
		case 1:
			log.SetLevel(log.InfoLevel)
		default:
			log.SetLevel(log.DebugLevel)
		}
	}

	if configFile != "" {
		log.Debugf("using config file: %s", configFile)
	}

	return list.Run(v, statz, cmd) //nolint:wrapcheck
}
