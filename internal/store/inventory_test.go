package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stockroom/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSortColumn(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"id", "id"},
		{"category", "category"},
		{"price", "price"},
		{"PRICE", "price"},
		{" price ", "price"},
		{"", "id"},
		{"name", "id"},
		{"id; DROP TABLE inventory", "id"},
		{"price DESC", "id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveSortColumn(tt.key), "key %q", tt.key)
	}
}

func TestInventoryRepository_Insert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectQuery("INSERT INTO inventory").
		WithArgs("Bolt", 10, "Hardware", 0.5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	item, err := repo.Insert(context.Background(), types.ItemFields{
		Name:     "Bolt",
		Quantity: 10,
		Category: "Hardware",
		Price:    0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, item.ID)
	assert.Equal(t, "Bolt", item.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_List_DefaultOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectQuery(`ORDER BY id, id`).
		WillReturnRows(itemRows().
			AddRow(1, "Widget A", 4, "Widgets", 9.99).
			AddRow(2, "Gadget", 2, "Gadgets", 19.99))

	items, err := repo.List(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Widget A", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_List_SortByPrice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectQuery(`ORDER BY price, id`).
		WillReturnRows(itemRows().
			AddRow(2, "Gadget", 2, "Gadgets", 1.50).
			AddRow(1, "Widget A", 4, "Widgets", 9.99))

	items, err := repo.List(context.Background(), "", "price")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.LessOrEqual(t, items[0].Price, items[1].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A sort key outside the whitelist must never reach the query; it resolves
// to the id ordering instead.
func TestInventoryRepository_List_RejectsUnknownSortKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectQuery(`ORDER BY id, id`).
		WillReturnRows(itemRows())

	_, err := repo.List(context.Background(), "", "id; DROP TABLE inventory")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_List_SearchIsBoundParameter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectQuery(`WHERE name ILIKE \$1`).
		WithArgs("%wid%").
		WillReturnRows(itemRows().
			AddRow(1, "Widget A", 4, "Widgets", 9.99))

	items, err := repo.List(context.Background(), "wid", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget A", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectExec("UPDATE inventory").
		WithArgs("Bolt", 12, "Hardware", 0.75, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 3, types.ItemFields{
		Name:     "Bolt",
		Quantity: 12,
		Category: "Hardware",
		Price:    0.75,
	})
	assert.NoError(t, err)
}

func TestInventoryRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectExec("UPDATE inventory").
		WithArgs("Bolt", 12, "Hardware", 0.75, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 99, types.ItemFields{
		Name:     "Bolt",
		Quantity: 12,
		Category: "Hardware",
		Price:    0.75,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInventoryRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectExec("DELETE FROM inventory").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 3))
}

func TestInventoryRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectExec("DELETE FROM inventory").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 99), ErrNotFound)
}

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "quantity", "category", "price"})
}
