package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const deletionRequestColumns = `id, asset_id, asset_name, asset_tag, requested_by, reason, status, decided_by, decided_at, decision_note, created_at`

func scanDeletionRequest(row interface{ Scan(dest ...any) error }) (DeletionRequest, error) {
	var r DeletionRequest
	err := row.Scan(&r.ID, &r.AssetID, &r.AssetName, &r.AssetTag, &r.RequestedBy,
		&r.Reason, &r.Status, &r.DecidedBy, &r.DecidedAt, &r.DecisionNote, &r.CreatedAt)
	return r, err
}

// DeletionRequestWithRefsRow joins the emails shown on the review page.
type DeletionRequestWithRefsRow struct {
	DeletionRequest
	RequesterEmail pgtype.Text
	DeciderEmail   pgtype.Text
}

type CreateDeletionRequestParams struct {
	AssetID     int64
	AssetName   string
	AssetTag    string
	RequestedBy int64
	Reason      string
}

func (q *Queries) CreateDeletionRequest(ctx context.Context, arg CreateDeletionRequestParams) (DeletionRequest, error) {
	return scanDeletionRequest(q.db.QueryRow(ctx, `
INSERT INTO deletion_requests (asset_id, asset_name, asset_tag, requested_by, reason, status)
VALUES ($1, $2, $3, $4, $5, 'pending')
RETURNING `+deletionRequestColumns,
		arg.AssetID, arg.AssetName, arg.AssetTag, arg.RequestedBy, arg.Reason))
}

func (q *Queries) GetDeletionRequest(ctx context.Context, id int64) (DeletionRequest, error) {
	return scanDeletionRequest(q.db.QueryRow(ctx, `SELECT `+deletionRequestColumns+` FROM deletion_requests WHERE id = $1`, id))
}

func (q *Queries) HasPendingDeletionRequestForAsset(ctx context.Context, assetID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM deletion_requests WHERE asset_id = $1 AND status = 'pending')`,
		assetID).Scan(&exists)
	return exists, err
}

type ListDeletionRequestsPageByStatusParams struct {
	Status string
	Limit  int32
	Offset int32
}

// ListDeletionRequestsPageByStatus lists requests for the review page,
// pending ones first. An empty status matches all of them.
func (q *Queries) ListDeletionRequestsPageByStatus(ctx context.Context, arg ListDeletionRequestsPageByStatusParams) ([]DeletionRequestWithRefsRow, error) {
	rows, err := q.db.Query(ctx, `
SELECT r.id, r.asset_id, r.asset_name, r.asset_tag, r.requested_by, r.reason, r.status,
       r.decided_by, r.decided_at, r.decision_note, r.created_at,
       ru.email AS requester_email, du.email AS decider_email
FROM deletion_requests r
LEFT JOIN auth_users ru ON ru.id = r.requested_by
LEFT JOIN auth_users du ON du.id = r.decided_by
WHERE ($1 = '' OR r.status = $1)
ORDER BY (r.status = 'pending') DESC, r.created_at DESC, r.id DESC
LIMIT $2 OFFSET $3`,
		arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DeletionRequestWithRefsRow
	for rows.Next() {
		var it DeletionRequestWithRefsRow
		if err := rows.Scan(&it.ID, &it.AssetID, &it.AssetName, &it.AssetTag, &it.RequestedBy,
			&it.Reason, &it.Status, &it.DecidedBy, &it.DecidedAt, &it.DecisionNote, &it.CreatedAt,
			&it.RequesterEmail, &it.DeciderEmail); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (q *Queries) CountDeletionRequestsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM deletion_requests WHERE ($1 = '' OR status = $1)`, status).Scan(&n)
	return n, err
}

func (q *Queries) CountPendingDeletionRequests(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM deletion_requests WHERE status = 'pending'`).Scan(&n)
	return n, err
}

type ListRecentDeletionRequestsByRequesterParams struct {
	RequestedBy int64
	Limit       int32
}

func (q *Queries) ListRecentDeletionRequestsByRequester(ctx context.Context, arg ListRecentDeletionRequestsByRequesterParams) ([]DeletionRequest, error) {
	rows, err := q.db.Query(ctx, `
SELECT `+deletionRequestColumns+`
FROM deletion_requests
WHERE requested_by = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`,
		arg.RequestedBy, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DeletionRequest
	for rows.Next() {
		it, err := scanDeletionRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListDeletionRequestsByAsset returns the request history for one asset,
// newest first. Shown on the asset detail page.
func (q *Queries) ListDeletionRequestsByAsset(ctx context.Context, assetID int64) ([]DeletionRequest, error) {
	rows, err := q.db.Query(ctx, `
SELECT `+deletionRequestColumns+`
FROM deletion_requests
WHERE asset_id = $1
ORDER BY created_at DESC, id DESC`,
		assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DeletionRequest
	for rows.Next() {
		it, err := scanDeletionRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type UpdateDeletionRequestDecisionParams struct {
	ID           int64
	Status       string
	DecidedBy    int64
	DecisionNote string
}

func (q *Queries) UpdateDeletionRequestDecision(ctx context.Context, arg UpdateDeletionRequestDecisionParams) error {
	_, err := q.db.Exec(ctx, `
UPDATE deletion_requests
SET status = $2, decided_by = $3, decided_at = now(), decision_note = $4
WHERE id = $1`,
		arg.ID, arg.Status, arg.DecidedBy, arg.DecisionNote)
	return err
}

// ExpirePendingDeletionRequestsBefore closes pending requests opened before
// the cutoff and reports how many it touched.
func (q *Queries) ExpirePendingDeletionRequestsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := q.db.Exec(ctx, `
UPDATE deletion_requests
SET status = 'expired', decided_at = now(), decision_note = 'Expired automatically.'
WHERE status = 'pending' AND created_at < $1`,
		cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
