package production

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vsinha/production/pkg/application/dto"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/repositories"
	"github.com/vsinha/production/pkg/infrastructure/events"
	"github.com/vsinha/production/pkg/infrastructure/logging"
)

// ErrNotEditable is returned when a production is past the draft/request states
var ErrNotEditable = errors.New("production is not editable")

// Locker serialises work on one key. The returned function releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// PreviewRequest carries the field edits a recomputation is run against.
// Nil fields keep the stored value.
type PreviewRequest struct {
	Disassembly *bool
	Quantity    *decimal.Decimal
}

// ProductionService runs the preview, recompute and disassemble lifecycles of production orders
type ProductionService struct {
	repo       repositories.ProductionRepository
	configRepo repositories.ConfigurationRepository
	engine     *Engine
	locker     Locker
	events     events.EventStore
	logger     logrus.FieldLogger
}

// NewProductionService creates a production service. eventStore may be nil.
func NewProductionService(
	repo repositories.ProductionRepository,
	configRepo repositories.ConfigurationRepository,
	engine *Engine,
	locker Locker,
	eventStore events.EventStore,
	logger logrus.FieldLogger,
) *ProductionService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProductionService{
		repo:       repo,
		configRepo: configRepo,
		engine:     engine,
		locker:     locker,
		events:     eventStore,
		logger:     logger,
	}
}

// GetProduction returns one production order
func (s *ProductionService) GetProduction(ctx context.Context, id uuid.UUID) (*entities.Production, error) {
	return s.repo.GetProduction(ctx, id)
}

// ListProductions returns all production orders
func (s *ProductionService) ListProductions(ctx context.Context) ([]*entities.Production, error) {
	return s.repo.ListProductions(ctx)
}

// History returns the recorded events of one production order, oldest first
func (s *ProductionService) History(ctx context.Context, id uuid.UUID) ([]events.Event, error) {
	if _, err := s.repo.GetProduction(ctx, id); err != nil {
		return nil, err
	}
	if s.events == nil {
		return []events.Event{}, nil
	}
	return s.events.History(id, 1)
}

// Preview computes the moves the order would get with req applied, as a
// replace-all delta. Nothing is persisted.
func (s *ProductionService) Preview(ctx context.Context, id uuid.UUID, req PreviewRequest) (*dto.ProductionChanges, error) {
	order, err := s.repo.GetProduction(ctx, id)
	if err != nil {
		return nil, err
	}

	patched, err := patchProduction(order, req)
	if err != nil {
		return nil, err
	}

	cfg, err := s.configRepo.GetConfiguration(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return s.engine.Changes(patched, cfg)
}

// Recompute applies req to the order, replaces its moves with a fresh
// explosion and saves it
func (s *ProductionService) Recompute(ctx context.Context, id uuid.UUID, req PreviewRequest) (*entities.Production, error) {
	release, err := s.locker.Lock(ctx, lockKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to lock production %s: %w", id, err)
	}
	defer release()

	order, err := s.repo.GetProduction(ctx, id)
	if err != nil {
		return nil, err
	}

	patched, err := patchProduction(order, req)
	if err != nil {
		return nil, err
	}

	cfg, err := s.configRepo.GetConfiguration(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	changes, err := s.engine.Changes(patched, cfg)
	if err != nil {
		return nil, err
	}
	ApplyChanges(patched, changes)

	if err := s.repo.SaveProduction(ctx, patched); err != nil {
		logging.LogError(s.logger, "production_service.go", "Recompute", "SaveProduction", patched.Number, err)
		return nil, fmt.Errorf("failed to save production %s: %w", patched.Number, err)
	}

	s.publish(events.NewProductionExplodedEvent(events.ProductionExploded{
		ProductionID: patched.ID,
		Number:       patched.Number,
		Disassembly:  patched.Disassembly,
		Inputs:       len(patched.Inputs),
		Outputs:      len(patched.Outputs),
		Cost:         patched.Cost,
	}))

	return patched, nil
}

// Disassemble runs the one-shot disassembly of each draft production in ids.
// Orders already disassembled or not in draft are skipped. Each order is
// processed and persisted on its own: a failure is reported and the batch
// continues. The returned error joins every per-order failure.
func (s *ProductionService) Disassemble(ctx context.Context, ids []uuid.UUID) (*dto.DisassembleReport, error) {
	report := dto.NewDisassembleReport()
	if len(ids) == 0 {
		return report, nil
	}

	cfg, err := s.configRepo.GetConfiguration(ctx)
	if err != nil {
		logging.LogError(s.logger, "production_service.go", "Disassemble", "GetConfiguration", nil, err)
		return report, fmt.Errorf("failed to load configuration: %w", err)
	}

	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		done, err := s.disassembleOne(ctx, id, cfg)
		switch {
		case err != nil:
			report.Failed = append(report.Failed, dto.DisassembleFailure{ID: id, Err: err})
			errs = append(errs, fmt.Errorf("production %s: %w", id, err))
			logging.LogError(s.logger, "production_service.go", "Disassemble", "disassembleOne", id.String(), err)
			s.publish(events.NewProductionDisassemblyFailedEvent(id, err.Error()))
		case done:
			report.Disassembled = append(report.Disassembled, id)
		default:
			report.Skipped = append(report.Skipped, id)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"disassembled": len(report.Disassembled),
		"skipped":      len(report.Skipped),
		"failed":       len(report.Failed),
	}).Info("disassembly batch finished")

	return report, errors.Join(errs...)
}

// disassembleOne reports false with a nil error when the order is not eligible
func (s *ProductionService) disassembleOne(ctx context.Context, id uuid.UUID, cfg *entities.Configuration) (bool, error) {
	release, err := s.locker.Lock(ctx, lockKey(id))
	if err != nil {
		return false, fmt.Errorf("failed to lock production: %w", err)
	}
	defer release()

	order, err := s.repo.GetProduction(ctx, id)
	if err != nil {
		return false, err
	}
	if order.Disassembly || order.State != entities.Draft {
		return false, nil
	}

	result, err := s.engine.ComputeDisassembly(order, cfg)
	if err != nil {
		return false, err
	}

	updated := *order
	updated.Disassembly = true
	updated.Cost = result.Cost
	updated.Inputs = attachMoves(result.Inputs, id)
	updated.Outputs = attachMoves(result.Outputs, id)

	if err := s.repo.ReplaceMoves(ctx, &updated); err != nil {
		return false, fmt.Errorf("failed to replace moves: %w", err)
	}

	adjustment := decimal.Zero
	if result.Adjustment != nil {
		adjustment = result.Adjustment.Value()
	}
	s.publish(events.NewProductionDisassembledEvent(events.ProductionDisassembled{
		ProductionID: updated.ID,
		Number:       updated.Number,
		Inputs:       len(updated.Inputs),
		Outputs:      len(updated.Outputs),
		Cost:         updated.Cost,
		Adjustment:   adjustment,
	}))

	return true, nil
}

func (s *ProductionService) publish(event events.Event) {
	if s.events == nil {
		return
	}
	if _, err := s.events.Append(event); err != nil {
		s.logger.WithField("event", event.Type).WithError(err).Warn("failed to append event")
	}
}

// patchProduction returns a copy of order with req applied, rejecting
// orders that are no longer editable. A set Disassembly flag cannot be cleared.
func patchProduction(order *entities.Production, req PreviewRequest) (*entities.Production, error) {
	if !order.Editable() {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotEditable, order.Number, order.State)
	}

	patched := *order
	if req.Disassembly != nil {
		if order.Disassembly && !*req.Disassembly {
			return nil, fmt.Errorf("%w: %s is already disassembled", ErrNotEditable, order.Number)
		}
		patched.Disassembly = *req.Disassembly
	}
	if req.Quantity != nil {
		if req.Quantity.IsNegative() {
			return nil, fmt.Errorf("quantity cannot be negative, got %s", *req.Quantity)
		}
		patched.Quantity = *req.Quantity
	}
	return &patched, nil
}

func attachMoves(moves []*entities.Move, productionID uuid.UUID) []*entities.Move {
	for _, move := range moves {
		move.ProductionID = productionID
	}
	return moves
}

func lockKey(id uuid.UUID) string {
	return "production:" + id.String()
}
