package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/unidist/internal/config"
	"github.com/sells-group/unidist/internal/fetcher"
	"github.com/sells-group/unidist/internal/pipeline"
	"github.com/sells-group/unidist/pkg/geocode"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "unidist",
	Short: "Rank Bay Area universities by distance",
	Long: `Scrapes the Wikipedia list of colleges and universities in the San Francisco
Bay Area, geocodes every name with the Google Geocoding API, and writes the
universities sorted by distance from a reference point to a CSV file.

Settings come from config.yaml in the working directory or UNIDIST_* env vars.
The Google API key is read from the file named by geocode.key_file.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{UserAgent: cfg.Source.UserAgent})
		p := pipeline.New(pipeline.OptionsFromConfig(cfg), f, newGeocoder, cmd.OutOrStdout())

		_, err := p.Run(ctx)
		return err
	},
}

// newGeocoder builds the Google geocoder from the loaded API key.
func newGeocoder(apiKey string) (geocode.Client, error) {
	var opts []geocode.Option
	if cfg.Geocode.BaseURL != "" {
		opts = append(opts, geocode.WithBaseURL(cfg.Geocode.BaseURL))
	}
	return geocode.NewGoogle(apiKey, opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
