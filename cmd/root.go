package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kilianp07/auslib/app"
	"github.com/kilianp07/auslib/config"
	"github.com/kilianp07/auslib/infra/logger"
)

var (
	cfgPath string
	envFile string
	input   string
)

var rootCmd = &cobra.Command{
	Use:           "auslib",
	Short:         "Building energy schedule library compiler",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnv()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with AUS_ overrides")
	rootCmd.PersistentFlags().StringVarP(&input, "input", "i", "", "workbook path, overrides input.path")
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.New("main").Errorf("%v", err)
	}
	return err
}

// loadEnv loads the dotenv file when it exists. Variables already set in the
// environment win.
func loadEnv() error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}

func newService() (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if input != "" {
		cfg.Input.Path = input
	}
	return app.New(cfg)
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
}
