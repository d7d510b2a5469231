package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zahrawi-dent/DentaCare-Pro/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type itemRepoPG struct{ pool *pgxpool.Pool }

func NewItemRepoPG(pool *pgxpool.Pool) ItemRepository { return &itemRepoPG{pool: pool} }

func (r *itemRepoPG) conn(ctx context.Context) queryable {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const itemCols = `id, name, description, category, quantity, unit, min_quantity, cost_per_unit_cents,
	supplier, last_order_date, expiry_date, location, notes, created_at, updated_at`

func (r *itemRepoPG) scanItem(row pgx.Row) (*Item, error) {
	var i Item
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Category, &i.Quantity, &i.Unit,
		&i.MinQuantity, &i.CostPerUnitCents, &i.Supplier, &i.LastOrderDate, &i.ExpiryDate,
		&i.Location, &i.Notes, &i.CreatedAt, &i.UpdatedAt)
	return &i, err
}

func (r *itemRepoPG) Create(ctx context.Context, i *Item) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO inventory_items (name, description, category, quantity, unit, min_quantity,
			cost_per_unit_cents, supplier, last_order_date, expiry_date, location, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at, updated_at`,
		i.Name, i.Description, i.Category, i.Quantity, i.Unit, i.MinQuantity,
		i.CostPerUnitCents, i.Supplier, i.LastOrderDate, i.ExpiryDate, i.Location, i.Notes).
		Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
}

func (r *itemRepoPG) GetByID(ctx context.Context, id int64) (*Item, error) {
	return r.scanItem(r.conn(ctx).QueryRow(ctx, `SELECT `+itemCols+` FROM inventory_items WHERE id = $1`, id))
}

func (r *itemRepoPG) Update(ctx context.Context, i *Item) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE inventory_items SET name=$2, description=$3, category=$4, quantity=$5, unit=$6,
			min_quantity=$7, cost_per_unit_cents=$8, supplier=$9, last_order_date=$10,
			expiry_date=$11, location=$12, notes=$13, updated_at=NOW()
		WHERE id = $1`,
		i.ID, i.Name, i.Description, i.Category, i.Quantity, i.Unit,
		i.MinQuantity, i.CostPerUnitCents, i.Supplier, i.LastOrderDate,
		i.ExpiryDate, i.Location, i.Notes)
	return err
}

func (r *itemRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	return err
}

func (r *itemRepoPG) List(ctx context.Context, category string, limit, offset int) ([]*Item, int, error) {
	query := `SELECT ` + itemCols + ` FROM inventory_items WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM inventory_items WHERE 1=1`
	var args []interface{}
	idx := 1

	if category != "" {
		query += fmt.Sprintf(` AND category = $%d`, idx)
		countQuery += fmt.Sprintf(` AND category = $%d`, idx)
		args = append(args, category)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		i, err := r.scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, i)
	}
	return items, total, rows.Err()
}

func (r *itemRepoPG) ListLowStock(ctx context.Context) ([]*Item, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+itemCols+` FROM inventory_items
		WHERE quantity <= min_quantity ORDER BY quantity ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		i, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *itemRepoPG) AdjustQuantity(ctx context.Context, id int64, delta int64) (int64, error) {
	var quantity int64
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE inventory_items SET quantity = GREATEST(quantity + $2, 0), updated_at = NOW()
		WHERE id = $1
		RETURNING quantity`, id, delta).Scan(&quantity)
	return quantity, err
}
