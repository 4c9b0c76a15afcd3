package db

import "context"

func (q *Queries) GetCategory(ctx context.Context, id int64) (Category, error) {
	var c Category
	err := q.db.QueryRow(ctx, `SELECT id, name, description, created_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	return c, err
}

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, `SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

type ListCategoriesWithAssetCountsRow struct {
	Category
	AssetCount int64
}

func (q *Queries) ListCategoriesWithAssetCounts(ctx context.Context) ([]ListCategoriesWithAssetCountsRow, error) {
	rows, err := q.db.Query(ctx, `
SELECT c.id, c.name, c.description, c.created_at, count(a.id) AS asset_count
FROM categories c
LEFT JOIN assets a ON a.category_id = c.id
GROUP BY c.id
ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListCategoriesWithAssetCountsRow
	for rows.Next() {
		var it ListCategoriesWithAssetCountsRow
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.CreatedAt, &it.AssetCount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type CreateCategoryParams struct {
	Name        string
	Description string
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	var c Category
	err := q.db.QueryRow(ctx, `
INSERT INTO categories (name, description)
VALUES ($1, $2)
RETURNING id, name, description, created_at`,
		arg.Name, arg.Description).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	return c, err
}

type UpdateCategoryParams struct {
	ID          int64
	Name        string
	Description string
}

func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) error {
	_, err := q.db.Exec(ctx, `UPDATE categories SET name = $2, description = $3 WHERE id = $1`,
		arg.ID, arg.Name, arg.Description)
	return err
}

func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
