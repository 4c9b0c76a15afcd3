package db

import "context"

func (q *Queries) GetDepartment(ctx context.Context, id int64) (Department, error) {
	var d Department
	err := q.db.QueryRow(ctx, `SELECT id, name, description, created_at FROM departments WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	return d, err
}

func (q *Queries) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := q.db.Query(ctx, `SELECT id, name, description, created_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

type ListDepartmentsWithAssetCountsRow struct {
	Department
	AssetCount int64
}

func (q *Queries) ListDepartmentsWithAssetCounts(ctx context.Context) ([]ListDepartmentsWithAssetCountsRow, error) {
	rows, err := q.db.Query(ctx, `
SELECT d.id, d.name, d.description, d.created_at, count(a.id) AS asset_count
FROM departments d
LEFT JOIN assets a ON a.department_id = d.id
GROUP BY d.id
ORDER BY d.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListDepartmentsWithAssetCountsRow
	for rows.Next() {
		var it ListDepartmentsWithAssetCountsRow
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.CreatedAt, &it.AssetCount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type CreateDepartmentParams struct {
	Name        string
	Description string
}

func (q *Queries) CreateDepartment(ctx context.Context, arg CreateDepartmentParams) (Department, error) {
	var d Department
	err := q.db.QueryRow(ctx, `
INSERT INTO departments (name, description)
VALUES ($1, $2)
RETURNING id, name, description, created_at`,
		arg.Name, arg.Description).
		Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	return d, err
}

type UpdateDepartmentParams struct {
	ID          int64
	Name        string
	Description string
}

func (q *Queries) UpdateDepartment(ctx context.Context, arg UpdateDepartmentParams) error {
	_, err := q.db.Exec(ctx, `UPDATE departments SET name = $2, description = $3 WHERE id = $1`,
		arg.ID, arg.Name, arg.Description)
	return err
}

func (q *Queries) DeleteDepartment(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	return err
}
