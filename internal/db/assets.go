package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const assetColumns = `id, tag, name, serial_number, description, status, owner_id, department_id, category_id, created_at, updated_at`

func scanAsset(row interface{ Scan(dest ...any) error }) (Asset, error) {
	var a Asset
	err := row.Scan(&a.ID, &a.Tag, &a.Name, &a.SerialNumber, &a.Description, &a.Status,
		&a.OwnerID, &a.DepartmentID, &a.CategoryID, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// AssetWithRefsRow is an asset joined with the names a list or detail page
// shows instead of raw ids.
type AssetWithRefsRow struct {
	Asset
	OwnerEmail     pgtype.Text
	DepartmentName string
	CategoryName   string
}

const assetWithRefsSelect = `
SELECT a.id, a.tag, a.name, a.serial_number, a.description, a.status,
       a.owner_id, a.department_id, a.category_id, a.created_at, a.updated_at,
       u.email AS owner_email, d.name AS department_name, c.name AS category_name
FROM assets a
LEFT JOIN auth_users u ON u.id = a.owner_id
JOIN departments d ON d.id = a.department_id
JOIN categories c ON c.id = a.category_id`

func scanAssetWithRefs(row interface{ Scan(dest ...any) error }) (AssetWithRefsRow, error) {
	var r AssetWithRefsRow
	err := row.Scan(&r.ID, &r.Tag, &r.Name, &r.SerialNumber, &r.Description, &r.Status,
		&r.OwnerID, &r.DepartmentID, &r.CategoryID, &r.CreatedAt, &r.UpdatedAt,
		&r.OwnerEmail, &r.DepartmentName, &r.CategoryName)
	return r, err
}

func (q *Queries) collectAssetWithRefsRows(ctx context.Context, sql string, args ...any) ([]AssetWithRefsRow, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AssetWithRefsRow
	for rows.Next() {
		it, err := scanAssetWithRefs(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (q *Queries) GetAsset(ctx context.Context, id int64) (Asset, error) {
	return scanAsset(q.db.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
}

func (q *Queries) GetAssetWithRefs(ctx context.Context, id int64) (AssetWithRefsRow, error) {
	return scanAssetWithRefs(q.db.QueryRow(ctx, assetWithRefsSelect+` WHERE a.id = $1`, id))
}

type CreateAssetParams struct {
	Tag          string
	Name         string
	SerialNumber string
	Description  string
	Status       string
	OwnerID      pgtype.Int8
	DepartmentID int64
	CategoryID   int64
}

func (q *Queries) CreateAsset(ctx context.Context, arg CreateAssetParams) (Asset, error) {
	return scanAsset(q.db.QueryRow(ctx, `
INSERT INTO assets (tag, name, serial_number, description, status, owner_id, department_id, category_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+assetColumns,
		arg.Tag, arg.Name, arg.SerialNumber, arg.Description, arg.Status,
		arg.OwnerID, arg.DepartmentID, arg.CategoryID))
}

type UpdateAssetParams struct {
	ID           int64
	Name         string
	SerialNumber string
	Description  string
	Status       string
	DepartmentID int64
	CategoryID   int64
}

func (q *Queries) UpdateAsset(ctx context.Context, arg UpdateAssetParams) error {
	_, err := q.db.Exec(ctx, `
UPDATE assets
SET name = $2, serial_number = $3, description = $4, status = $5,
    department_id = $6, category_id = $7, updated_at = now()
WHERE id = $1`,
		arg.ID, arg.Name, arg.SerialNumber, arg.Description, arg.Status,
		arg.DepartmentID, arg.CategoryID)
	return err
}

// DeleteAsset reports how many rows were removed so callers can tell a
// successful delete from an asset that was already gone.
func (q *Queries) DeleteAsset(ctx context.Context, id int64) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const assetSearchFilter = `
  ($1 = '' OR a.name ILIKE '%' || $1 || '%' OR a.serial_number ILIKE '%' || $1 || '%' OR a.tag ILIKE '%' || $1 || '%')`

type ListAssetsPageByQueryAndStatusParams struct {
	Query  string
	Status string
	Limit  int32
	Offset int32
}

func (q *Queries) ListAssetsPageByQueryAndStatus(ctx context.Context, arg ListAssetsPageByQueryAndStatusParams) ([]AssetWithRefsRow, error) {
	return q.collectAssetWithRefsRows(ctx, assetWithRefsSelect+`
WHERE`+assetSearchFilter+`
  AND ($2 = '' OR a.status = $2)
ORDER BY a.created_at DESC, a.id DESC
LIMIT $3 OFFSET $4`,
		arg.Query, arg.Status, arg.Limit, arg.Offset)
}

type CountAssetsByQueryAndStatusParams struct {
	Query  string
	Status string
}

func (q *Queries) CountAssetsByQueryAndStatus(ctx context.Context, arg CountAssetsByQueryAndStatusParams) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `
SELECT count(*)
FROM assets a
WHERE`+assetSearchFilter+`
  AND ($2 = '' OR a.status = $2)`,
		arg.Query, arg.Status).Scan(&n)
	return n, err
}

type ListAssetsPageByOwnerAndQueryParams struct {
	OwnerID int64
	Query   string
	Limit   int32
	Offset  int32
}

func (q *Queries) ListAssetsPageByOwnerAndQuery(ctx context.Context, arg ListAssetsPageByOwnerAndQueryParams) ([]AssetWithRefsRow, error) {
	return q.collectAssetWithRefsRows(ctx, assetWithRefsSelect+`
WHERE a.owner_id = $1
  AND ($2 = '' OR a.name ILIKE '%' || $2 || '%' OR a.serial_number ILIKE '%' || $2 || '%' OR a.tag ILIKE '%' || $2 || '%')
ORDER BY a.created_at DESC, a.id DESC
LIMIT $3 OFFSET $4`,
		arg.OwnerID, arg.Query, arg.Limit, arg.Offset)
}

type CountAssetsByOwnerAndQueryParams struct {
	OwnerID int64
	Query   string
}

func (q *Queries) CountAssetsByOwnerAndQuery(ctx context.Context, arg CountAssetsByOwnerAndQueryParams) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `
SELECT count(*)
FROM assets a
WHERE a.owner_id = $1
  AND ($2 = '' OR a.name ILIKE '%' || $2 || '%' OR a.serial_number ILIKE '%' || $2 || '%' OR a.tag ILIKE '%' || $2 || '%')`,
		arg.OwnerID, arg.Query).Scan(&n)
	return n, err
}

func (q *Queries) CountAssets(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM assets`).Scan(&n)
	return n, err
}

type CountAssetsGroupedByStatusRow struct {
	Status string
	Count  int64
}

func (q *Queries) CountAssetsGroupedByStatus(ctx context.Context) ([]CountAssetsGroupedByStatusRow, error) {
	rows, err := q.db.Query(ctx, `SELECT status, count(*) FROM assets GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CountAssetsGroupedByStatusRow
	for rows.Next() {
		var it CountAssetsGroupedByStatusRow
		if err := rows.Scan(&it.Status, &it.Count); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (q *Queries) CountAssetsByOwnerGroupedByStatus(ctx context.Context, ownerID int64) ([]CountAssetsGroupedByStatusRow, error) {
	rows, err := q.db.Query(ctx, `SELECT status, count(*) FROM assets WHERE owner_id = $1 GROUP BY status`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CountAssetsGroupedByStatusRow
	for rows.Next() {
		var it CountAssetsGroupedByStatusRow
		if err := rows.Scan(&it.Status, &it.Count); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
