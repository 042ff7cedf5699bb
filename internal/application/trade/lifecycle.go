package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appinventory "github.com/tilesgalleria/backoffice/internal/application/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
	"go.uber.org/zap"
)

// document is what the lifecycle needs from every order-like aggregate
type document interface {
	trade.StockDocument
	Kind() inventory.DocumentKind
	SetStatus(status string) error
	Renumber(number string)
}

// lifecycle implements create, update, delete and status changes once for
// every document kind. Each mutation persists the document and moves stock
// through the ledger inside the same transaction, holding the document's row
// lock from the first read.
type lifecycle[T any, P interface {
	*T
	document
}] struct {
	kind     inventory.DocumentKind
	resource string
	scope    TransactionScope
	reader   trade.DocumentRepository[T]
	repoOf   func(TransactionalRepositories) trade.DocumentRepository[T]
	ledger   *appinventory.LedgerService
	events   shared.EventPublisher
	logger   *zap.Logger
}

func (lc *lifecycle[T, P]) create(ctx context.Context, number string, build func(number string) (*T, error)) (*T, *inventory.AdjustmentReport, error) {
	var (
		doc    *T
		report *inventory.AdjustmentReport
	)
	err := lc.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		repo := lc.repoOf(repos)
		n, err := lc.assignNumber(ctx, repo, number, nil)
		if err != nil {
			return err
		}
		if doc, err = build(n); err != nil {
			return err
		}
		if err := repo.Save(ctx, doc); err != nil {
			return err
		}
		report, err = lc.ledger.Bind(repos.Stock()).Apply(ctx, lc.kind, P(doc).StockLines())
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	lc.publish(ctx, P(doc).DocumentID(), shared.ActionCreated)
	return doc, report, nil
}

func (lc *lifecycle[T, P]) update(ctx context.Context, id uuid.UUID, number string, mutate func(doc *T) error) (*T, *inventory.AdjustmentReport, error) {
	var (
		doc    *T
		report *inventory.AdjustmentReport
	)
	err := lc.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		repo := lc.repoOf(repos)
		var err error
		if doc, err = repo.FindForUpdate(ctx, id); err != nil {
			return err
		}
		oldLines := P(doc).StockLines()

		if number != "" && number != P(doc).DocumentNumber() {
			n, err := lc.assignNumber(ctx, repo, number, &id)
			if err != nil {
				return err
			}
			P(doc).Renumber(n)
		}
		if err := mutate(doc); err != nil {
			return err
		}
		if err := repo.Save(ctx, doc); err != nil {
			return err
		}
		report, err = lc.ledger.Bind(repos.Stock()).Reconcile(ctx, lc.kind, oldLines, P(doc).StockLines())
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	lc.publish(ctx, id, shared.ActionUpdated)
	return doc, report, nil
}

// remove deletes the document and reverses its stored effect. A missing
// document fails before any stock is touched.
func (lc *lifecycle[T, P]) remove(ctx context.Context, id uuid.UUID) (*inventory.AdjustmentReport, error) {
	var report *inventory.AdjustmentReport
	err := lc.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		repo := lc.repoOf(repos)
		doc, err := repo.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		report, err = lc.ledger.Bind(repos.Stock()).Reverse(ctx, lc.kind, P(doc).StockLines())
		return err
	})
	if err != nil {
		return nil, err
	}
	lc.publish(ctx, id, shared.ActionDeleted)
	return report, nil
}

// setStatus changes the status only; stock is never touched
func (lc *lifecycle[T, P]) setStatus(ctx context.Context, id uuid.UUID, status string) (*T, error) {
	var doc *T
	err := lc.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		repo := lc.repoOf(repos)
		var err error
		if doc, err = repo.FindForUpdate(ctx, id); err != nil {
			return err
		}
		if err := P(doc).SetStatus(status); err != nil {
			return err
		}
		return repo.Save(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	lc.publish(ctx, id, shared.ActionUpdated)
	return doc, nil
}

func (lc *lifecycle[T, P]) get(ctx context.Context, id uuid.UUID) (*T, error) {
	return lc.reader.FindByID(ctx, id)
}

func (lc *lifecycle[T, P]) list(ctx context.Context, filter shared.Filter) ([]T, int64, error) {
	filter = filter.Normalize()
	docs, err := lc.reader.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := lc.reader.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (lc *lifecycle[T, P]) assignNumber(ctx context.Context, repo trade.DocumentRepository[T], requested string, excludeID *uuid.UUID) (string, error) {
	prefix := trade.PrefixFor(lc.kind)
	if requested == "" {
		last, err := repo.LastNumber(ctx, prefix)
		if err != nil {
			return "", err
		}
		return trade.NextNumber(prefix, last), nil
	}
	exists, err := repo.ExistsByNumber(ctx, requested, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("%s number %s already exists", lc.resource, requested))
	}
	return requested, nil
}

func (lc *lifecycle[T, P]) publish(ctx context.Context, id uuid.UUID, action string) {
	if lc.events == nil {
		return
	}
	if err := lc.events.Publish(ctx, shared.NewEntityChangedEvent(lc.resource, id, action)); err != nil {
		lc.logger.Warn("failed to publish change event",
			zap.String("resource", lc.resource),
			zap.String("id", id.String()),
			zap.Error(err),
		)
	}
}
