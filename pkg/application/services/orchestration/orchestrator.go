// Package orchestration runs the eight-stage planning pipeline as a single
// guarded batch: one execution record, one step log per stage, and a run
// summary at the end.
package orchestration

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/actionmsg"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/bomexplosion"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/crp"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/lotsizing"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/mps"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/netreq"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/ordergen"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/stockparams"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/services/storage"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
)

// Orchestrator drives one planning execution end to end.
type Orchestrator struct {
	logger *zap.Logger

	executions repositories.ExecutionRepository
	stepLogs   repositories.StepLogRepository
	products   repositories.ProductRepository
	suppliers  repositories.SupplierRepository
	inventory  repositories.InventoryRepository
	orders     repositories.OrderRepository

	mps         *mps.Service
	stockParams *stockparams.Service
	explosion   *bomexplosion.Service
	netting     *netreq.Service
	lotSizing   *lotsizing.Service
	orderGen    *ordergen.Service
	actionMsg   *actionmsg.Service
	capacity    *crp.Service
	storage     *storage.Service
}

// NewOrchestrator wires the pipeline stages.
func NewOrchestrator(
	logger *zap.Logger,
	executions repositories.ExecutionRepository,
	stepLogs repositories.StepLogRepository,
	products repositories.ProductRepository,
	suppliers repositories.SupplierRepository,
	inventory repositories.InventoryRepository,
	orders repositories.OrderRepository,
	mpsService *mps.Service,
	stockParamsService *stockparams.Service,
	explosionService *bomexplosion.Service,
	nettingService *netreq.Service,
	lotSizingService *lotsizing.Service,
	orderGenService *ordergen.Service,
	actionMsgService *actionmsg.Service,
	capacityService *crp.Service,
	storageService *storage.Service,
) *Orchestrator {
	return &Orchestrator{
		logger:      logger,
		executions:  executions,
		stepLogs:    stepLogs,
		products:    products,
		suppliers:   suppliers,
		inventory:   inventory,
		orders:      orders,
		mps:         mpsService,
		stockParams: stockParamsService,
		explosion:   explosionService,
		netting:     nettingService,
		lotSizing:   lotSizingService,
		orderGen:    orderGenService,
		actionMsg:   actionMsgService,
		capacity:    capacityService,
		storage:     storageService,
	}
}

// Execute runs the full pipeline. Only one execution may be RUNNING at a
// time; a second concurrent call fails fast with ErrConcurrencyConflict.
// A stage failure marks both the step log and the execution as failed and
// returns the error; completed executions carry the run summary.
func (o *Orchestrator) Execute(ctx context.Context, params entities.ExecutionParams) (*dto.ExecutionResult, error) {
	running, err := o.executions.AnyRunning(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check running executions: %w", err)
	}
	if running {
		return nil, fmt.Errorf("%w: another planning run is in progress", entities.ErrConcurrencyConflict)
	}

	params = params.WithDefaults()
	execution := entities.NewExecution(params)
	if err := o.executions.CreateExecution(ctx, execution); err != nil {
		return nil, fmt.Errorf("failed to create execution: %w", err)
	}

	startedAt := time.Now().UTC()
	execution.Status = entities.ExecutionRunning
	execution.StartedAt = &startedAt
	if err := o.executions.SaveExecution(ctx, execution); err != nil {
		return nil, fmt.Errorf("failed to start execution: %w", err)
	}

	o.logger.Info("planning run started",
		zap.String("execution_id", execution.ID.String()),
		zap.Int("horizon_weeks", params.PlanningHorizonWeeks))

	summary, err := o.runPipeline(ctx, execution, params)
	completedAt := time.Now().UTC()
	execution.CompletedAt = &completedAt

	if err != nil {
		message := err.Error()
		execution.Status = entities.ExecutionError
		execution.ErrorMessage = &message
		if saveErr := o.executions.SaveExecution(ctx, execution); saveErr != nil {
			o.logger.Error("failed to persist failed execution", zap.Error(saveErr))
		}
		o.logger.Error("planning run failed",
			zap.String("execution_id", execution.ID.String()), zap.Error(err))
		return &dto.ExecutionResult{
			ExecutionID: execution.ID,
			Status:      entities.ExecutionError,
			Message:     message,
		}, err
	}

	execution.Status = entities.ExecutionCompleted
	execution.Summary = map[string]any{
		"products_planned":        summary.ProductsPlanned,
		"stock_params_computed":   summary.StockParamsComputed,
		"stock_params_skipped":    summary.StockParamsSkipped,
		"orders_created":          summary.OrdersCreated,
		"action_messages":         summary.ActionMessages,
		"overloaded_work_centers": summary.OverloadedWorkCenters,
		"storage_alerts":          summary.StorageAlerts,
	}
	if err := o.executions.SaveExecution(ctx, execution); err != nil {
		return nil, fmt.Errorf("failed to complete execution: %w", err)
	}

	o.logger.Info("planning run completed",
		zap.String("execution_id", execution.ID.String()),
		zap.Int("orders_created", summary.OrdersCreated),
		zap.Duration("elapsed", completedAt.Sub(startedAt)))

	return &dto.ExecutionResult{
		ExecutionID: execution.ID,
		Status:      entities.ExecutionCompleted,
		Message:     "planning run completed",
		Summary:     summary,
	}, nil
}

// runPipeline executes the stages in order, threading intermediate results.
func (o *Orchestrator) runPipeline(
	ctx context.Context,
	execution *entities.Execution,
	params entities.ExecutionParams,
) (*dto.RunSummary, error) {
	summary := &dto.RunSummary{}

	var mpsResult *dto.MPSResult
	err := o.runStep(ctx, execution.ID, 1, "mps", summary, func() (int, error) {
		var err error
		mpsResult, err = o.mps.Calculate(ctx, params)
		if err != nil {
			return 0, err
		}
		summary.Warnings = append(summary.Warnings, mpsResult.Warnings...)
		return len(mpsResult.Schedules), nil
	})
	if err != nil {
		return nil, err
	}

	var spResult *dto.StockParamsResult
	err = o.runStep(ctx, execution.ID, 2, "stock_params", summary, func() (int, error) {
		var err error
		spResult, err = o.stockParams.Calculate(ctx, execution.ID, params)
		if err != nil {
			return 0, err
		}
		summary.StockParamsComputed = len(spResult.Params)
		summary.StockParamsSkipped = spResult.Skipped
		summary.Warnings = append(summary.Warnings, spResult.Warnings...)
		return len(spResult.Params), nil
	})
	if err != nil {
		return nil, err
	}

	buckets := services.WeeklyBuckets(mpsResult.StartDate, mpsResult.HorizonWeeks)
	periodStarts := make([]time.Time, len(buckets))
	for i, bucket := range buckets {
		periodStarts[i] = bucket.Start
	}

	safetyStock := make(map[string]float64, len(spResult.Params)+len(spResult.Reused))
	for _, p := range spResult.Params {
		safetyStock[p.ProductID] = p.SafetyStock
	}
	for _, p := range spResult.Reused {
		safetyStock[p.ProductID] = p.SafetyStock
	}

	var explosionResult *dto.ExplosionResult
	grids := make(map[string]dto.NetGrid)
	err = o.runStep(ctx, execution.ID, 3, "explosion_netting", summary, func() (int, error) {
		var err error
		explosionResult, err = o.explosion.Explode(ctx, mpsResult)
		if err != nil {
			return 0, err
		}

		available, err := o.inventory.AvailableByProduct(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to load available stock: %w", err)
		}
		scheduled, err := o.scheduledReceipts(ctx, buckets)
		if err != nil {
			return 0, err
		}

		for _, productID := range sortedProductIDs(explosionResult.Gross) {
			gross := make([]float64, len(buckets))
			for _, demand := range explosionResult.Gross[productID] {
				if idx := services.BucketIndex(buckets, demand.PeriodStart); idx >= 0 {
					gross[idx] += demand.Quantity
				}
			}
			grids[productID] = o.netting.Calculate(netreq.Input{
				ProductID:         productID,
				PeriodStarts:      periodStarts,
				Gross:             gross,
				ScheduledReceipts: scheduled[productID],
				InitialStock:      available[productID],
				SafetyStock:       safetyStock[productID],
			})
		}
		summary.ProductsPlanned = len(grids)
		return len(grids), nil
	})
	if err != nil {
		return nil, err
	}

	eoqByProduct := make(map[string]float64, len(spResult.Params)+len(spResult.Reused))
	for _, p := range spResult.Params {
		eoqByProduct[p.ProductID] = p.EOQ
	}
	for _, p := range spResult.Reused {
		eoqByProduct[p.ProductID] = p.EOQ
	}

	var plans []*dto.LotPlan
	err = o.runStep(ctx, execution.ID, 4, "lot_sizing", summary, func() (int, error) {
		for _, productID := range sortedProductIDs(explosionResult.Gross) {
			product, err := o.products.GetProduct(ctx, productID)
			if err != nil {
				summary.Warnings = append(summary.Warnings,
					fmt.Sprintf("product %s referenced by the BOM is unknown; not lot-sized", productID))
				continue
			}
			moq := 0.0
			if product.Type.IsPurchased() {
				links, err := o.suppliers.ListLinksForProduct(ctx, productID)
				if err != nil {
					return 0, fmt.Errorf("failed to list supplier links for %s: %w", productID, err)
				}
				if link := services.SelectSupplierLink(links); link != nil {
					moq = link.MOQ
				}
			}
			plan, err := o.lotSizing.Plan(grids[productID], periodStarts, lotsizing.ProductMeta{
				ProductID:         productID,
				Method:            product.LotSizingMethod,
				EOQ:               eoqByProduct[productID],
				MinimumLot:        product.MinimumLot,
				PurchaseMultiple:  product.PurchaseMultiple,
				MOQ:               moq,
				LeadTimePeriods:   product.LeadTimePeriods(),
				OrderCost:         product.OrderCost,
				WeeklyHoldingCost: product.WeeklyHoldingCost(),
			})
			if err != nil {
				return 0, err
			}
			plans = append(plans, plan)
		}
		return len(plans), nil
	})
	if err != nil {
		return nil, err
	}

	var orderResult *dto.OrderGenResult
	err = o.runStep(ctx, execution.ID, 5, "order_generation", summary, func() (int, error) {
		var err error
		orderResult, err = o.orderGen.Generate(ctx, execution.ID, plans, mpsResult.StartDate)
		if err != nil {
			return 0, err
		}
		summary.OrdersCreated = len(orderResult.Orders)
		summary.Warnings = append(summary.Warnings, orderResult.Warnings...)
		return len(orderResult.Orders), nil
	})
	if err != nil {
		return nil, err
	}

	err = o.runStep(ctx, execution.ID, 6, "action_messages", summary, func() (int, error) {
		messages, err := o.actionMsg.Reconcile(ctx, orderResult.Orders)
		if err != nil {
			return 0, err
		}
		summary.ActionMessages = len(messages.Messages)
		return len(messages.Messages), nil
	})
	if err != nil {
		return nil, err
	}

	err = o.runStep(ctx, execution.ID, 7, "capacity_planning", summary, func() (int, error) {
		capacityResult, err := o.capacity.Calculate(ctx, execution.ID, buckets, orderResult.Orders)
		if err != nil {
			return 0, err
		}
		overloaded := make(map[string]bool)
		for _, load := range capacityResult.Loads {
			if load.Overloaded {
				overloaded[load.WorkCenterID] = true
			}
		}
		summary.OverloadedWorkCenters = len(overloaded)
		return len(capacityResult.Loads), nil
	})
	if err != nil {
		return nil, err
	}

	err = o.runStep(ctx, execution.ID, 8, "storage_validation", summary, func() (int, error) {
		storageResult, err := o.storage.Validate(ctx, buckets, plans, explosionResult.Gross)
		if err != nil {
			return 0, err
		}
		for _, projection := range storageResult.Projections {
			if projection.Severity != dto.SeverityOK {
				summary.StorageAlerts++
			}
		}
		summary.StorageProjections = storageResult.Projections
		return len(storageResult.Projections), nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// runStep wraps one stage with step logging and timing. The step log is
// appended as RUNNING before the stage executes and finalized afterwards.
func (o *Orchestrator) runStep(
	ctx context.Context,
	executionID uuid.UUID,
	order int,
	name string,
	summary *dto.RunSummary,
	fn func() (int, error),
) error {
	started := time.Now().UTC()
	log := &entities.StepLog{
		ID:          uuid.New(),
		ExecutionID: executionID,
		StepName:    name,
		StepOrder:   order,
		Status:      entities.StepRunning,
		StartedAt:   started,
	}
	if err := o.stepLogs.AppendStepLog(ctx, log); err != nil {
		return fmt.Errorf("failed to append step log %s: %w", name, err)
	}

	records, err := fn()

	completed := time.Now().UTC()
	log.CompletedAt = &completed
	log.DurationMs = completed.Sub(started).Milliseconds()
	log.RecordsProcessed = records

	if err != nil {
		log.Status = entities.StepFailed
		log.Details = map[string]any{"error": err.Error()}
		if saveErr := o.stepLogs.SaveStepLog(ctx, log); saveErr != nil {
			o.logger.Error("failed to persist failed step log",
				zap.String("step", name), zap.Error(saveErr))
		}
		return fmt.Errorf("step %d (%s) failed: %w", order, name, err)
	}

	log.Status = entities.StepCompleted
	if err := o.stepLogs.SaveStepLog(ctx, log); err != nil {
		return fmt.Errorf("failed to save step log %s: %w", name, err)
	}

	o.logger.Info("step completed",
		zap.String("execution_id", executionID.String()),
		zap.Int("step", order),
		zap.String("name", name),
		zap.Int("records", records),
		zap.Int64("duration_ms", log.DurationMs))

	summary.Stages = append(summary.Stages, dto.StageSummary{
		StepOrder:  order,
		StepName:   name,
		DurationMs: log.DurationMs,
		Records:    records,
	})
	return nil
}

// scheduledReceipts buckets the expected receipts of FIRM and RELEASED
// orders into the planning grid, per product.
func (o *Orchestrator) scheduledReceipts(
	ctx context.Context,
	buckets []services.WeekBucket,
) (map[string][]float64, error) {
	orders, err := o.orders.ListByStatus(ctx, entities.StatusFirm, entities.StatusReleased)
	if err != nil {
		return nil, fmt.Errorf("failed to list open orders: %w", err)
	}
	scheduled := make(map[string][]float64)
	for _, order := range orders {
		idx := services.BucketIndex(buckets, order.ExpectedReceipt)
		if idx < 0 {
			continue
		}
		row := scheduled[order.ProductID]
		if row == nil {
			row = make([]float64, len(buckets))
			scheduled[order.ProductID] = row
		}
		row[idx] += order.Quantity
	}
	return scheduled, nil
}

func sortedProductIDs(gross map[string][]dto.PeriodDemand) []string {
	ids := make([]string, 0, len(gross))
	for id := range gross {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
