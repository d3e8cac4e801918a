package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/market-stats/src/cmd/series/run"
	"github.com/jiaming2012/market-stats/src/data"
	"github.com/jiaming2012/market-stats/src/indicators"
	"github.com/jiaming2012/market-stats/src/models"
	"github.com/jiaming2012/market-stats/src/utils"
)

var rootCmd = &cobra.Command{
	Use:          "series",
	Short:        "Compute price series statistics from local CSV files",
	SilenceUsage: true,
}

type seriesFlags struct {
	config   string
	dataRoot string
	source   string
	interval string
}

var flags seriesFlags

func newLoader() (*data.SeriesLoader, error) {
	config, err := utils.LoadServerConfig(flags.config)
	if err != nil {
		return nil, err
	}

	if flags.dataRoot != "" {
		config.DataRoot = flags.dataRoot
	}

	sources, err := config.SourceDirectories()
	if err != nil {
		return nil, err
	}

	return data.NewSeriesLoader(sources), nil
}

func loadOne(ctx context.Context, symbol string) (*models.TimeSeries, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, err
	}

	return loader.Load(ctx, symbol, flags.interval, models.Source(flags.source))
}

func loadPair(ctx context.Context, base, target string) (*models.TimeSeries, *models.TimeSeries, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, nil, err
	}

	a, err := loader.Load(ctx, base, flags.interval, models.Source(flags.source))
	if err != nil {
		return nil, nil, fmt.Errorf("base %s: %w", base, err)
	}

	b, err := loader.Load(ctx, target, flags.interval, models.Source(flags.source))
	if err != nil {
		return nil, nil, fmt.Errorf("target %s: %w", target, err)
	}

	return a, b, nil
}

var priceCmd = &cobra.Command{
	Use:   "price --symbol AAPL",
	Short: "Print the latest row of a series",
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, _ := cmd.Flags().GetString("symbol")

		ts, err := loadOne(cmd.Context(), symbol)
		if err != nil {
			return err
		}

		latest, err := indicators.LatestRow(ts)
		if err != nil {
			return err
		}

		run.RenderKeyValues(cmd.OutOrStdout(), latest)
		return nil
	},
}

var avgCmd = &cobra.Command{
	Use:   "avg --symbol AAPL --days 5",
	Short: "Print the trailing average close",
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, _ := cmd.Flags().GetString("symbol")
		days, _ := cmd.Flags().GetInt("days")

		ts, err := loadOne(cmd.Context(), symbol)
		if err != nil {
			return err
		}

		avg, err := indicators.TrailingMean(ts, days)
		if err != nil {
			return err
		}

		run.RenderStat(cmd.OutOrStdout(), "Average Close", indicators.RoundOrNil(avg, 3), 3, min(days, ts.Len()))
		return nil
	},
}

var similarityCmd = &cobra.Command{
	Use:   "similarity --base AAPL --target MSFT",
	Short: "Print the close price correlation of two series",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("base")
		target, _ := cmd.Flags().GetString("target")

		a, b, err := loadPair(cmd.Context(), base, target)
		if err != nil {
			return err
		}

		result, err := indicators.Correlate(a, b)
		if err != nil {
			return err
		}

		run.RenderStat(cmd.OutOrStdout(), "Correlation", indicators.RoundOrNil(result.Correlation, 4), 4, result.Days)
		return nil
	},
}

var surgeCmd = &cobra.Command{
	Use:   "surge --symbol AAPL --threshold 0.1",
	Short: "List days whose close rose more than threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, _ := cmd.Flags().GetString("symbol")
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		outFile, _ := cmd.Flags().GetString("outFile")

		ts, err := loadOne(cmd.Context(), symbol)
		if err != nil {
			return err
		}

		records, err := indicators.SurgeFlags(ts, threshold)
		if err != nil {
			return err
		}

		run.RenderSurges(cmd.OutOrStdout(), records)

		if outFile != "" {
			if err := run.ExportSurges(records, outFile); err != nil {
				return err
			}

			log.Infof("Exported %d surges to %s", len(records), outFile)
		}

		return nil
	},
}

var surgeSimilarityCmd = &cobra.Command{
	Use:   "surge-similarity --base AAPL --target MSFT",
	Short: "Print how often two series surge on the same days",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("base")
		target, _ := cmd.Flags().GetString("target")

		a, b, err := loadPair(cmd.Context(), base, target)
		if err != nil {
			return err
		}

		result, err := indicators.SurgeSimilarity(a, b)
		if err != nil {
			return err
		}

		run.RenderStat(cmd.OutOrStdout(), "Similarity", indicators.OrNil(result.Similarity), 4, result.Days)
		return nil
	},
}

var leadLagCmd = &cobra.Command{
	Use:   "leadlag --base AAPL --target MSFT --lag 1",
	Short: "Print the correlation of the target against the lagged base",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("base")
		target, _ := cmd.Flags().GetString("target")
		lag, _ := cmd.Flags().GetInt("lag")

		a, b, err := loadPair(cmd.Context(), base, target)
		if err != nil {
			return err
		}

		result, err := indicators.LeadLag(a, b, lag)
		if err != nil {
			return err
		}

		run.RenderStat(cmd.OutOrStdout(), fmt.Sprintf("Correlation (lag %d)", lag), indicators.RoundOrNil(result.Correlation, 4), 4, result.Days)
		return nil
	},
}

var couplingCmd = &cobra.Command{
	Use:   "coupling --base AAPL --target MSFT",
	Short: "Print how often the two series move in opposite directions",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("base")
		target, _ := cmd.Flags().GetString("target")

		a, b, err := loadPair(cmd.Context(), base, target)
		if err != nil {
			return err
		}

		result, err := indicators.DecoupledRate(a, b)
		if err != nil {
			return err
		}

		run.RenderStat(cmd.OutOrStdout(), "Decoupled Rate", indicators.OrNil(result.Rate), 4, result.Days)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.config, "config", utils.DefaultServerConfigFile, "The server config file that lists the sources.")
	rootCmd.PersistentFlags().StringVar(&flags.dataRoot, "dataRoot", "", "Overrides data_root from the config file.")
	rootCmd.PersistentFlags().StringVar(&flags.source, "source", string(models.DefaultSource), "The data source to read from.")
	rootCmd.PersistentFlags().StringVar(&flags.interval, "interval", models.DefaultInterval, "The interval part of the file name.")

	for _, cmd := range []*cobra.Command{priceCmd, avgCmd, surgeCmd} {
		cmd.Flags().String("symbol", "", "The symbol to read.")
		cmd.MarkFlagRequired("symbol")
	}

	for _, cmd := range []*cobra.Command{similarityCmd, surgeSimilarityCmd, leadLagCmd, couplingCmd} {
		cmd.Flags().String("base", "", "The base symbol.")
		cmd.Flags().String("target", "", "The target symbol.")
		cmd.MarkFlagRequired("base")
		cmd.MarkFlagRequired("target")
	}

	avgCmd.Flags().Int("days", models.DefaultDays, "The number of trailing rows to average.")
	surgeCmd.Flags().Float64("threshold", models.DefaultThreshold, "The percent change a surge must exceed.")
	surgeCmd.Flags().String("outFile", "", "Optional CSV file to write the surges to.")
	leadLagCmd.Flags().Int("lag", models.DefaultLag, "The number of rows to shift the base series by.")

	rootCmd.AddCommand(priceCmd, avgCmd, similarityCmd, surgeCmd, surgeSimilarityCmd, leadLagCmd, couplingCmd)
}

func main() {
	if err := utils.InitEnvironmentVariables(utils.EnvFilename(utils.GetEnvOrDefault("GO_ENV", "development"))); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
