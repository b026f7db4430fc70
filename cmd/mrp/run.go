package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/actionmsg"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/bomexplosion"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/crp"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/lotsizing"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/mps"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/netreq"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/orchestration"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/ordergen"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/queries"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/stockparams"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/storage"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

func newRunCommand() *cobra.Command {
	var (
		scenarioDir  string
		horizonWeeks int
		firmWeeks    int
		forceRecalc  bool
		startDate    string
		iterations   int
		seed         uint32
		seedSet      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full planning pipeline over a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireScenario(scenarioDir); err != nil {
				return err
			}
			repos, err := loadScenario(scenarioDir)
			if err != nil {
				return err
			}

			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer logger.Sync()

			params := entities.ExecutionParams{
				PlanningHorizonWeeks:  horizonWeeks,
				FirmOrderHorizonWeeks: &firmWeeks,
				ForceRecalculate:      forceRecalc,
				MonteCarloIterations:  iterations,
			}
			if startDate != "" {
				start, err := time.Parse("2006-01-02", startDate)
				if err != nil {
					return fmt.Errorf("invalid --start %q (expected YYYY-MM-DD)", startDate)
				}
				start = start.UTC()
				params.StartDate = &start
			}
			seedSet = cmd.Flags().Changed("seed")
			if seedSet {
				params.MonteCarloSeed = &seed
			}

			orchestrator := buildOrchestrator(logger, repos)
			result, err := orchestrator.Execute(context.Background(), params)
			if err != nil {
				return err
			}

			fmt.Printf("Execution %s: %s\n", result.ExecutionID, result.Status)
			if result.Summary == nil {
				return nil
			}
			for _, stage := range result.Summary.Stages {
				fmt.Printf("  %d. %-20s %6d records  %6d ms\n",
					stage.StepOrder, stage.StepName, stage.Records, stage.DurationMs)
			}
			fmt.Printf("Products planned:    %d\n", result.Summary.ProductsPlanned)
			fmt.Printf("Orders created:      %d\n", result.Summary.OrdersCreated)
			fmt.Printf("Action messages:     %d\n", result.Summary.ActionMessages)
			fmt.Printf("Overloaded centers:  %d\n", result.Summary.OverloadedWorkCenters)
			fmt.Printf("Storage alerts:      %d\n", result.Summary.StorageAlerts)
			for _, warning := range result.Summary.Warnings {
				fmt.Printf("Warning: %s\n", warning)
			}

			querySvc := queries.NewService(repos.Orders, repos.Executions, repos.StepLogs, repos.Loads)
			critical, err := querySvc.ListOrders(context.Background(), repositories.OrderFilter{
				ExecutionID: &result.ExecutionID,
				Priority:    entities.PriorityCritical,
			}, 1, 10)
			if err != nil {
				return err
			}
			if critical.Total > 0 {
				fmt.Printf("Critical orders:     %d (showing %d)\n", critical.Total, len(critical.Items))
				for _, order := range critical.Items {
					fmt.Printf("  %-4s %-12s qty %.4f release %s\n",
						order.Kind, order.ProductID, order.Quantity, order.ReleaseDate.Format("2006-01-02"))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioDir, "scenario", "", "path to scenario directory containing CSV files")
	cmd.Flags().IntVar(&horizonWeeks, "horizon", entities.DefaultPlanningHorizonWeeks, "planning horizon in weeks")
	cmd.Flags().IntVar(&firmWeeks, "firm-horizon", entities.DefaultFirmOrderHorizonWeeks, "firm order horizon in weeks")
	cmd.Flags().BoolVar(&forceRecalc, "force-recalc", false, "recompute stock parameters even when present")
	cmd.Flags().StringVar(&startDate, "start", "", "planning start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().IntVar(&iterations, "iterations", entities.DefaultMonteCarloIterations, "Monte Carlo iterations")
	cmd.Flags().Uint32Var(&seed, "seed", 0, "Monte Carlo seed for reproducible runs")
	cmd.MarkFlagRequired("scenario")

	return cmd
}

// buildOrchestrator wires the stage services against one repository set.
func buildOrchestrator(logger *zap.Logger, repos *repoSet) *orchestration.Orchestrator {
	return orchestration.NewOrchestrator(
		logger,
		repos.Executions,
		repos.StepLogs,
		repos.Products,
		repos.Suppliers,
		repos.Inventory,
		repos.Orders,
		mps.NewService(repos.Products, repos.Orders, repos.Forecasts),
		stockparams.NewService(repos.Products, repos.Forecasts, repos.History, repos.Suppliers, repos.StockParams),
		bomexplosion.NewService(repos.BOM, repos.Products),
		netreq.NewService(),
		lotsizing.NewService(),
		ordergen.NewService(repos.Products, repos.Suppliers, repos.Routings, repos.WorkCenters, repos.Orders),
		actionmsg.NewService(repos.Orders),
		crp.NewService(repos.WorkCenters, repos.Calendar, repos.Routings, repos.Loads),
		storage.NewService(repos.Products, repos.Warehouses, repos.Inventory),
	)
}
