package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/stockparams"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

func newSimulateCommand() *cobra.Command {
	var (
		scenarioDir  string
		productID    string
		serviceLevel float64
		iterations   int
		seed         uint32
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a standalone Monte Carlo safety stock simulation",
		Long: `simulate draws lead-time demand for one product from its historical
weekly demand and prints the resulting safety stock with a confidence
interval and histogram. Requires at least 12 weekly demand samples.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireScenario(scenarioDir); err != nil {
				return err
			}
			repos, err := loadScenario(scenarioDir)
			if err != nil {
				return err
			}

			service := stockparams.NewService(
				repos.Products, repos.Forecasts, repos.History, repos.Suppliers, repos.StockParams)

			var seedPtr *uint32
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}

			result, err := service.RunMonteCarlo(
				context.Background(), productID, serviceLevel, iterations, seedPtr)
			if err != nil {
				return err
			}

			fmt.Printf("Product:        %s\n", result.ProductID)
			fmt.Printf("Iterations:     %d\n", result.Iterations)
			fmt.Printf("Service level:  %.2f\n", result.ServiceLevel)
			fmt.Printf("Mean demand:    %.4f\n", result.MeanDemand)
			fmt.Printf("Quantile:       %.4f\n", result.QuantileDemand)
			fmt.Printf("Safety stock:   %.4f\n", result.SafetyStock)
			fmt.Printf("90%% interval:   [%.4f, %.4f]\n", result.CILower, result.CIUpper)

			maxCount := 0
			for _, bucket := range result.Histogram {
				if bucket.Count > maxCount {
					maxCount = bucket.Count
				}
			}
			for _, bucket := range result.Histogram {
				width := 0
				if maxCount > 0 {
					width = bucket.Count * 40 / maxCount
				}
				fmt.Printf("%10.2f..%-10.2f %s %d\n",
					bucket.From, bucket.To, strings.Repeat("#", width), bucket.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioDir, "scenario", "", "path to scenario directory containing CSV files")
	cmd.Flags().StringVar(&productID, "product", "", "product id to simulate")
	cmd.Flags().Float64Var(&serviceLevel, "service-level", entities.DefaultServiceLevel, "target service level (0..1)")
	cmd.Flags().IntVar(&iterations, "iterations", entities.DefaultMonteCarloIterations, "simulation iterations")
	cmd.Flags().Uint32Var(&seed, "seed", 0, "seed for reproducible simulations")
	cmd.MarkFlagRequired("scenario")
	cmd.MarkFlagRequired("product")

	return cmd
}
