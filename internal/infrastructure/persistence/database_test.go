package persistence

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

func TestDatabase_PingAndStats(t *testing.T) {
	gormDB, _, mockDB := newMockDB(t)
	defer mockDB.Close()

	db := &Database{DB: gormDB}
	require.NoError(t, db.Ping())

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)
	assert.Equal(t, stats.OpenConnections, stats.InUse+stats.Idle)
}

func TestTranslate(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translate("find", "product", nil))
	})

	t.Run("record not found", func(t *testing.T) {
		err := translate("find", "product", gorm.ErrRecordNotFound)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("unique violations", func(t *testing.T) {
		for _, cause := range []error{
			gorm.ErrDuplicatedKey,
			&pgconn.PgError{Code: "23505"},
			errors.New("UNIQUE constraint failed: invoices.number"),
		} {
			err := translate("save", "invoice", cause)
			assert.Equal(t, shared.CodeAlreadyExists, shared.CodeOf(err), cause)
		}
	})

	t.Run("domain errors pass through", func(t *testing.T) {
		in := shared.Validation("bad")
		assert.Same(t, in, translate("save", "invoice", in))
	})

	t.Run("everything else is a persistence failure", func(t *testing.T) {
		err := translate("save", "invoice", errors.New("connection reset"))
		assert.Equal(t, shared.CodePersistenceFailed, shared.CodeOf(err))
	})
}

func TestProductRepository_FindByID_Postgres(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "quantity", "boxes", "price", "tax_rate"}).
			AddRow(id, "Carrara 600x600", "12.5", "3", "49.90", "10"))

	p, err := NewGormProductRepository(gormDB).FindByID(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, "Carrara 600x600", p.Name)
	assert.Equal(t, "12.5", p.Quantity.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_LastNumber_Postgres(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT "number" FROM "invoices" WHERE number LIKE \$1`).
		WithArgs("INV-%").
		WillReturnRows(sqlmock.NewRows([]string{"number"}).
			AddRow("INV-9999").AddRow("INV-2024-07-SPECIAL").AddRow("INV-10000"))

	n, err := NewGormInvoiceRepository(gormDB).LastNumber(t.Context(), "INV")
	require.NoError(t, err)
	assert.Equal(t, "INV-10000", n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_FindForUpdate_Postgres(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "customer_name", "status"}).
			AddRow(id, "INV-0007", "Harbour Builders", "unpaid"))
	mock.ExpectQuery(`SELECT \* FROM "document_items" WHERE owner_type = \$1 AND owner_id IN \(\$2\) ORDER BY position ASC`).
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_type", "owner_id", "quantity"}))

	inv, err := NewGormInvoiceRepository(gormDB).FindForUpdate(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, "INV-0007", inv.Number)
	require.NoError(t, mock.ExpectationsWereMet())
}
