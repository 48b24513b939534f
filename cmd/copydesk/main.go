package main

import (
	"fmt"
	"os"

	"github.com/georgemunganga/copydesk/internal/config"
	"github.com/georgemunganga/copydesk/internal/logger"
	"github.com/georgemunganga/copydesk/internal/modules/catalog"
	"github.com/georgemunganga/copydesk/internal/modules/endpoint"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	envFile    string
	baseURL    string
	verbose    bool

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "copydesk",
	Short: "Copydesk - product description console",
	Long: `Copydesk manages product description records stored behind the product API
and asks it to generate copy from a product brief.

Run "copydesk serve" to start the browser console, or use the subcommands to work
with the API from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath, envFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("api") {
			cfg.APIBaseURL = &baseURL
		}
		log, err = logger.New(cfg.LogMode)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if verbose {
			log.EnableDebug()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "copydesk.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&baseURL, "api", "", "product API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd, listCmd, showCmd, generateCmd, deleteCmd, pingCmd)
}

// newService wires the remote repository for the configured API.
func newService() (catalog.Service, error) {
	origin, err := cfg.Origin()
	if err != nil {
		return nil, err
	}
	opts := []catalog.RemoteOption{}
	if origin != nil {
		opts = append(opts, catalog.WithOrigin(origin))
	}
	repo := catalog.NewRemoteRepository(endpoint.NewResolver(cfg.BaseURL()), log, opts...)
	return catalog.NewService(repo), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
