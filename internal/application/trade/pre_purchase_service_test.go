package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/domain/trade"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type brokenPublisher struct{}

func (brokenPublisher) Publish(context.Context, ...shared.DomainEvent) error {
	return errors.New("bus closed")
}

func TestPrePurchaseService(t *testing.T) {
	ctx := context.Background()
	repo := newMemDocs(func(p *trade.PrePurchase) uuid.UUID { return p.ID }, func(*trade.PrePurchase) string { return "" })
	core, logs := observer.New(zap.WarnLevel)
	svc := NewPrePurchaseService(repo, brokenPublisher{}, zap.New(core))

	created, err := svc.Create(ctx, PrePurchaseRequest{VendorName: "Stone Co", Amount: dec("1200"), Advance: dec("200")})
	require.NoError(t, err)
	assert.True(t, created.Balance.Equal(dec("1000")))
	assert.Equal(t, 1, logs.FilterMessage("failed to publish change event").Len())

	updated, err := svc.Update(ctx, created.ID, PrePurchaseRequest{VendorName: "Stone Co", Amount: dec("1500"), Advance: dec("200")})
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(dec("1300")))

	_, err = svc.Create(ctx, PrePurchaseRequest{VendorName: " ", Amount: dec("1")})
	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))

	items, total, err := svc.List(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), total)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, shared.CodeNotFound, shared.CodeOf(svc.Delete(ctx, created.ID)))
}
