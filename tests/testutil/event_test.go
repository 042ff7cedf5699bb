package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	assert.Empty(t, r.EventTypes())

	go func() {
		_ = r.Handle(context.Background(), shared.NewEntityChangedEvent("invoice", uuid.New(), "created"))
		_ = r.Handle(context.Background(), shared.NewEntityChangedEvent("product", uuid.New(), "deleted"))
	}()
	r.WaitFor(t, 2, time.Second)
	assert.ElementsMatch(t, []string{"invoice:created", "product:deleted"}, r.Changes())
}
