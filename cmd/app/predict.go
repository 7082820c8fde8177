package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"StockCast/internal/di"
	"StockCast/internal/domain/models"
	"StockCast/pkg/config"
	"StockCast/pkg/util"

	"github.com/spf13/cobra"
)

func predictCmd() *cobra.Command {
	var (
		ticker string
		month  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Forecast one ticker for one month and print the decision",
		Example: `  stockcast predict --ticker AAPL --month 3
  stockcast predict -t MSFT -m 11 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			// one-shot runs have no scrape endpoint
			cfg.Metrics.Disabled = true

			predictor, cleanup, err := di.InitializePredictor(cfg)
			if err != nil {
				return fmt.Errorf("predictor initialization failed: %w", err)
			}
			defer cleanup()

			p, err := predictor.Predict(cmd.Context(), ticker, month)
			if err != nil {
				return err
			}

			c := di.ProvideCompanyDirectory(cfg).Lookup(p.Ticker)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(models.NewPredictionResponse(p, c))
			}
			return printPrediction(cmd.OutOrStdout(), p, c)
		},
	}

	cmd.Flags().StringVarP(&ticker, "ticker", "t", "", "stock ticker, e.g. AAPL")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "month of the current year (1-12)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API response body as JSON")
	_ = cmd.MarkFlagRequired("ticker")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func printPrediction(w io.Writer, p *models.Prediction, c models.Company) error {
	fmt.Fprintf(w, "%s (%s), month %d\n", c.Name, p.Ticker, p.Month)
	fmt.Fprintf(w, "%s: %s\n\n", p.Decision.Action, p.Decision.Summary)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tACCURACY")
	order := models.ForecastModelsOrder(p.Forecast, p.Accuracy)
	for _, name := range order {
		fmt.Fprintf(tw, "%s\t%.2f%%\n", name, p.Accuracy[name])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if p.Forecast == nil {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprint(tw, "DATE")
	for _, name := range p.Forecast.Models {
		fmt.Fprintf(tw, "\t%s", name)
	}
	fmt.Fprintln(tw)
	for i := range p.Forecast.Indices {
		label := fmt.Sprintf("#%d", p.Forecast.Indices[i])
		if i < len(p.Forecast.Dates) {
			label = util.FormatDay(p.Forecast.Dates[i])
		}
		fmt.Fprint(tw, label)
		for _, name := range p.Forecast.Models {
			fmt.Fprintf(tw, "\t%.2f", p.Forecast.Predictions[name][i])
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
