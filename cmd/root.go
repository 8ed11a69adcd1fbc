package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/difli/wxo-adk-on-colima/config"
	"github.com/difli/wxo-adk-on-colima/lock"
	"github.com/difli/wxo-adk-on-colima/lock/flock"
	"github.com/difli/wxo-adk-on-colima/provision"
)

// toolEnvFile feeds WXO_ADK_* variables to viper and lets passed-through
// variables (e.g. the downstream health-check timeout) reach child
// processes. Distinct from the downstream server's .env, which this tool
// never reads.
const toolEnvFile = ".wxo-adk.env"

var (
	cfgFile string
	conf    *config.Config
)

var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wxo-adk",
		Short: "Provision a local watsonx Orchestrate ADK stack on Colima",
		Long: "wxo-adk converges a macOS host onto a working ADK development stack:\n" +
			"Homebrew prerequisites, a pinned Python, a colima VM with the declared\n" +
			"resource profile, a reachable docker daemon, and a synced project venv.\n" +
			"Safe to rerun from any partially-provisioned state.",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig()
		},
		RunE: runUp,
		// Failures surface as exactly one formatted line on stderr,
		// printed by main.go.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	viper.SetEnvPrefix("WXO_ADK")
	viper.AutomaticEnv()

	cmd.AddCommand(
		statusCmd,
		versionCmd,
	)

	return cmd
}()

func initConfig() error {
	conf = config.DefaultConfig()

	// Optional tool-local env file; missing file is OK, contents become
	// process environment and are inherited by every child process.
	_ = godotenv.Load(toolEnvFile)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	_ = viper.ReadInConfig() // optional; missing file is OK

	if err := viper.Unmarshal(conf); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	return log.SetupLog(context.Background(), &conf.Log, "")
}

// runUp is the whole tool: one fixed pipeline, no flags, exit 1 on any
// step failure.
func runUp(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	if err := conf.EnsureBaseDir(); err != nil {
		return err
	}

	pipeline, err := initPipeline(conf)
	if err != nil {
		return err
	}

	// Host-global state (brew DB, VM, venv) is single-writer; a concurrent
	// run is rejected, not queued.
	return lock.WithLock(flock.New(conf.LockFile()), func() error {
		result := pipeline.Sequencer().Run(ctx)
		if result.Failed() {
			return result.Err
		}
		fmt.Print(provision.NextSteps(conf.EnvFile, conf.VenvDir))
		return nil
	})
}

// Execute is the main entry point called from main.go.
func Execute() error {
	ctx, cancel := newCommandContext()
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}
