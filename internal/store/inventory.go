package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/stockroom/apiserver/types"
)

// sortColumns is the fixed whitelist of sort keys. Anything not in this map
// resolves to "id"; user input never reaches query construction directly.
var sortColumns = map[string]string{
	"id":       "id",
	"category": "category",
	"price":    "price",
}

const defaultSortColumn = "id"

// ResolveSortColumn maps a requested sort key to a whitelisted column name.
func ResolveSortColumn(key string) string {
	if column, ok := sortColumns[strings.ToLower(strings.TrimSpace(key))]; ok {
		return column
	}
	return defaultSortColumn
}

// InventoryRepository handles persistence for inventory items.
type InventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Insert stores a new item and returns the row with its assigned id.
func (r *InventoryRepository) Insert(ctx context.Context, fields types.ItemFields) (types.InventoryItem, error) {
	const query = `
		INSERT INTO inventory (name, quantity, category, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	item := types.InventoryItem{
		Name:     fields.Name,
		Quantity: fields.Quantity,
		Category: fields.Category,
		Price:    fields.Price,
	}
	if err := r.db.QueryRowContext(
		ctx,
		query,
		fields.Name,
		fields.Quantity,
		fields.Category,
		fields.Price,
	).Scan(&item.ID); err != nil {
		return types.InventoryItem{}, err
	}
	return item, nil
}

// List returns all items, optionally filtered by a case-insensitive name
// substring and ordered ascending by the resolved sort column with id as
// tiebreak. The filter always travels as a bound parameter.
func (r *InventoryRepository) List(ctx context.Context, namePattern, sortKey string) ([]types.InventoryItem, error) {
	column := ResolveSortColumn(sortKey)

	var rows *sql.Rows
	var err error
	if strings.TrimSpace(namePattern) != "" {
		query := fmt.Sprintf(`
			SELECT id, name, quantity, category, price
			FROM inventory
			WHERE name ILIKE $1
			ORDER BY %s, id`, column)
		rows, err = r.db.QueryContext(ctx, query, "%"+namePattern+"%")
	} else {
		query := fmt.Sprintf(`
			SELECT id, name, quantity, category, price
			FROM inventory
			ORDER BY %s, id`, column)
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]types.InventoryItem, 0)
	for rows.Next() {
		var item types.InventoryItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Quantity,
			&item.Category,
			&item.Price,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Update replaces all four mutable fields of the item with the given id.
func (r *InventoryRepository) Update(ctx context.Context, id int, fields types.ItemFields) error {
	const query = `
		UPDATE inventory
		SET name = $1,
			quantity = $2,
			category = $3,
			price = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		fields.Name,
		fields.Quantity,
		fields.Category,
		fields.Price,
		id,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM inventory WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
