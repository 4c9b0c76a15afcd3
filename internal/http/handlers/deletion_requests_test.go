package handlers

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/assetdesk/assetdesk/internal/db"
)

func TestDeletionRequestItemForLiveAsset(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	it := deletionRequestItem(db.DeletionRequest{
		ID:        5,
		AssetID:   pgtype.Int8{Int64: 42, Valid: true},
		AssetName: "MacBook Pro 14",
		AssetTag:  "tag-42",
		Reason:    "Water damage",
		Status:    db.DeletionRequestStatusPending,
		CreatedAt: created,
	})

	if it.AssetGone {
		t.Error("AssetGone = true for a live asset")
	}
	if it.AssetID != 42 {
		t.Errorf("AssetID = %d, want 42", it.AssetID)
	}
	if !it.IsPending {
		t.Error("IsPending = false for a pending request")
	}
	if it.StatusLabel != "Pending" || it.BadgeClass != "badge-warning" {
		t.Errorf("status presentation = (%q, %q)", it.StatusLabel, it.BadgeClass)
	}
	if it.RequesterEmail != "—" || it.DeciderEmail != "—" {
		t.Errorf("emails should default to placeholders, got (%q, %q)", it.RequesterEmail, it.DeciderEmail)
	}
	if it.CreatedAt != "Feb 1, 2026 12:00 UTC" {
		t.Errorf("CreatedAt = %q", it.CreatedAt)
	}
	if it.DecidedAt != "—" {
		t.Errorf("DecidedAt = %q, want placeholder", it.DecidedAt)
	}
}

func TestDeletionRequestItemForDeletedAsset(t *testing.T) {
	t.Parallel()

	it := deletionRequestItem(db.DeletionRequest{
		ID:           6,
		AssetName:    "Old monitor",
		AssetTag:     "tag-6",
		Status:       db.DeletionRequestStatusApproved,
		DecisionNote: "Recycled",
		DecidedAt:    pgtype.Timestamptz{Time: time.Date(2026, time.February, 2, 8, 30, 0, 0, time.UTC), Valid: true},
		CreatedAt:    time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC),
	})

	if !it.AssetGone {
		t.Error("AssetGone = false for a null asset reference")
	}
	if it.IsPending {
		t.Error("IsPending = true for an approved request")
	}
	if it.DecidedAt != "Feb 2, 2026 08:30 UTC" {
		t.Errorf("DecidedAt = %q", it.DecidedAt)
	}
}

func TestDeletionRequestItemsFillEmailsFromJoin(t *testing.T) {
	t.Parallel()

	rows := []db.DeletionRequestWithRefsRow{
		{
			DeletionRequest: db.DeletionRequest{
				ID:      7,
				AssetID: pgtype.Int8{Int64: 1, Valid: true},
				Status:  db.DeletionRequestStatusRejected,
			},
			RequesterEmail: pgtype.Text{String: "user@example.com", Valid: true},
			DeciderEmail:   pgtype.Text{String: "admin@example.com", Valid: true},
		},
		{
			DeletionRequest: db.DeletionRequest{
				ID:     8,
				Status: db.DeletionRequestStatusPending,
			},
		},
	}

	items := deletionRequestItems(rows)
	if items[0].RequesterEmail != "user@example.com" || items[0].DeciderEmail != "admin@example.com" {
		t.Errorf("joined emails not applied: %+v", items[0])
	}
	if items[1].RequesterEmail != "—" {
		t.Errorf("missing requester should stay a placeholder, got %q", items[1].RequesterEmail)
	}
}

func TestOwnDeletionRequestItemsUseGivenEmail(t *testing.T) {
	t.Parallel()

	items := ownDeletionRequestItems([]db.DeletionRequest{
		{ID: 9, Status: db.DeletionRequestStatusPending},
	}, "me@example.com")

	if items[0].RequesterEmail != "me@example.com" {
		t.Errorf("RequesterEmail = %q", items[0].RequesterEmail)
	}
}
