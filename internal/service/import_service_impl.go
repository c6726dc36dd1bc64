package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"costbook/internal/db"
	"costbook/internal/domain"
	"costbook/internal/importer"
	"costbook/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer OperationObserver
}

func NewImportService(uow db.UnitOfWork, observers ...OperationObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: operationObserverOrNoop(observers),
	}
}

func (s *importService) ImportProject(ctx context.Context, actor domain.Actor, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportProjectFromSchema(ctx, actor, schema)
}

func (s *importService) ImportProjectFromSchema(ctx context.Context, actor domain.Actor, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"tenant_id": actor.TenantID}
	defer func() {
		s.observer.ObserveOperation(ctx, OperationEvent{
			Name:      "import-project",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = actor.Validate(); err != nil {
		return nil, err
	}

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		err = formatValidationErrors(errs)
		return nil, err
	}

	generated, err := importer.Convert(schema, actor.TenantID)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	fields["project_id"] = generated.Project.ID
	fields["phase_count"] = len(generated.Phases)
	fields["cost_item_count"] = len(generated.CostItems)

	// Persist all entities atomically: a failed insert rolls back the whole
	// import, leaving no half-imported project behind.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txItems := repository.NewSQLiteCostItemRepo(tx)

		if err := txProjects.Create(ctx, generated.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, phase := range generated.Phases {
			if err := txPhases.Create(ctx, phase); err != nil {
				return fmt.Errorf("creating phase %q: %w", phase.Name, err)
			}
		}
		for _, item := range generated.CostItems {
			if err := txItems.Create(ctx, item); err != nil {
				return fmt.Errorf("creating cost item %q: %w", item.Category, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Project:       generated.Project,
		PhaseCount:    len(generated.Phases),
		CostItemCount: len(generated.CostItems),
	}, nil
}

func formatValidationErrors(errs []error) error {
	return fmt.Errorf("import validation failed (%d errors):\n%w", len(errs), errors.Join(errs...))
}
