// Package cmd implements the tracker-deployer CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/torrust/tracker-deployer/internal/adapters/cli"
	"github.com/torrust/tracker-deployer/internal/adapters/config"
	"github.com/torrust/tracker-deployer/internal/adapters/logging"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// Persistent flag values accessible to all subcommands.
var (
	cfgFile         string
	workingDir      string
	logOutput       string
	logDir          string
	logFileFormat   string
	logStderrFormat string
	logLevel        string
)

var rootCmd = &cobra.Command{
	Use:   "tracker-deployer",
	Short: "Deploy and operate torrust-tracker environments",
	Long: `tracker-deployer provisions a VM or cloud instance, configures it with
Ansible, ships a docker compose stack for torrust-tracker, and brings it
up, moving one named environment through a fixed lifecycle: Created,
Provisioning, Provisioned, Configuring, Configured, Releasing, Released,
Running — with a Destroyed escape hatch reachable from any state.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (env: TORRUST_TD_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&workingDir, "working-dir", ".", "working directory holding data/ and build/ (env: TORRUST_TD_WORKING_DIR)")
	rootCmd.PersistentFlags().StringVar(&logOutput, "log-output", "stderr", "log destination: stderr, file, or both")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "logs", "directory for the log file when --log-output includes file")
	rootCmd.PersistentFlags().StringVar(&logFileFormat, "log-file-format", "json", "log file format: text or json")
	rootCmd.PersistentFlags().StringVar(&logStderrFormat, "log-stderr-format", "text", "stderr log format: text or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log filter: debug, info, warn, or error (env: TORRUST_TD_LOG_LEVEL, RUST_LOG-equivalent)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "lifecycle", Title: "Lifecycle"},
		&cobra.Group{ID: "inspection", Title: "Inspection"},
		&cobra.Group{ID: "maintenance", Title: "Maintenance"},
	)
}

// Execute runs the root command. Called from main.go. Every error,
// whether raised by Cobra itself (bad flags, arg validation) or returned
// from a RunE handler, is printed here exactly once.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

// SetVersionInfo sets build-time version information from ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("tracker-deployer %s (commit: %s, built: %s)\n", version, commit, date))
}

// initConfig sets up Viper's full hierarchy: CLI flags > TORRUST_TD_* env
// vars > project deployer.toml > global XDG config.toml > built-in
// defaults, then configures the process-wide logger from the result.
func initConfig() error {
	viper.SetConfigType("toml")

	viper.SetDefault("working_dir", ".")
	viper.SetDefault("log_output", "stderr")
	viper.SetDefault("log_dir", "logs")
	viper.SetDefault("log_file_format", "json")
	viper.SetDefault("log_stderr_format", "text")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("default_provider", "lxd")

	configFile := cfgFile
	if configFile == "" {
		configFile = os.Getenv(config.EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		paths := config.NewXDGPathResolver()
		viper.SetConfigFile(paths.ConfigFile())
		_ = viper.ReadInConfig()
	}

	viper.SetConfigFile("deployer.toml")
	_ = viper.MergeInConfig()

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(config.EnvKeyReplacer)
	viper.AutomaticEnv()

	_ = viper.BindPFlag("working_dir", rootCmd.PersistentFlags().Lookup("working-dir"))
	_ = viper.BindPFlag("log_output", rootCmd.PersistentFlags().Lookup("log-output"))
	_ = viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	_ = viper.BindPFlag("log_file_format", rootCmd.PersistentFlags().Lookup("log-file-format"))
	_ = viper.BindPFlag("log_stderr_format", rootCmd.PersistentFlags().Lookup("log-stderr-format"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	cliCfg, err := config.LoadCLIConfig()
	if err != nil {
		return err
	}
	resolvedConfig = cliCfg

	logger, err := logging.NewFromConfig(logging.Config{
		Output:       cliCfg.LogOutput,
		Dir:          cliCfg.LogDir,
		FileFormat:   logging.Format(cliCfg.LogFileFormat),
		StderrFormat: logging.Format(cliCfg.LogStderrFormat),
		Level:        logging.Level(cliCfg.LogLevel),
	})
	if err != nil {
		return err
	}
	logging.SetGlobal(logger)

	return nil
}

// resolvedConfig holds the CLIConfig decoded by the last initConfig call.
var resolvedConfig config.CLIConfig

// resolvedWorkingDir returns --working-dir, falling back to the merged
// config value (project deployer.toml / global config / default).
func resolvedWorkingDir() string {
	if viper.IsSet("working_dir") {
		return resolvedConfig.WorkingDir
	}
	return workingDir
}

// newDeps builds the adapters every command needs, rooted at the resolved
// working directory and sharing the process-wide progress listener and
// logger.
func newDeps() *cli.Deps {
	return cli.NewDeps(resolvedWorkingDir(), cli.NewProgressReporter(), logging.GetLogger())
}
