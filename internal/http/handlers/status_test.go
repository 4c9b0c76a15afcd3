package handlers

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/assetdesk/assetdesk/internal/db"
)

func TestAssetStatusLabels(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		db.AssetStatusInService:   "In service",
		db.AssetStatusInStorage:   "In storage",
		db.AssetStatusUnderRepair: "Under repair",
		db.AssetStatusRetired:     "Retired",
		"something_else":          "something_else",
	}
	for status, want := range cases {
		if got := assetStatusLabel(status); got != want {
			t.Errorf("assetStatusLabel(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestAssetStatusOptionsMarksSelection(t *testing.T) {
	t.Parallel()

	options := assetStatusOptions(db.AssetStatusUnderRepair)
	if len(options) != len(assetStatuses) {
		t.Fatalf("len = %d, want %d", len(options), len(assetStatuses))
	}
	for _, opt := range options {
		want := opt.Value == db.AssetStatusUnderRepair
		if opt.Selected != want {
			t.Errorf("option %q Selected = %v, want %v", opt.Value, opt.Selected, want)
		}
	}
}

func TestRequestStatusBadgeClasses(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		db.DeletionRequestStatusPending:  "badge-warning",
		db.DeletionRequestStatusApproved: "badge-success",
		db.DeletionRequestStatusRejected: "badge-danger",
		db.DeletionRequestStatusExpired:  "badge-muted",
	}
	for status, want := range cases {
		if got := requestStatusBadgeClass(status); got != want {
			t.Errorf("requestStatusBadgeClass(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestStatusCountsZeroFillsMissingStatuses(t *testing.T) {
	t.Parallel()

	counts := statusCounts([]db.CountAssetsGroupedByStatusRow{
		{Status: db.AssetStatusRetired, Count: 7},
	})

	if len(counts) != len(assetStatuses) {
		t.Fatalf("len = %d, want %d", len(counts), len(assetStatuses))
	}
	for i, status := range assetStatuses {
		if counts[i].Status != status {
			t.Fatalf("counts[%d].Status = %q, want %q", i, counts[i].Status, status)
		}
		want := int64(0)
		if status == db.AssetStatusRetired {
			want = 7
		}
		if counts[i].Count != want {
			t.Errorf("counts[%d].Count = %d, want %d", i, counts[i].Count, want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	if got := formatTime(time.Time{}); got != "—" {
		t.Fatalf("formatTime(zero) = %q, want em dash", got)
	}

	ts := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	if got := formatTime(ts); got != "Mar 14, 2026 09:26 UTC" {
		t.Fatalf("formatTime = %q", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	if got := formatTimestamp(pgtype.Timestamptz{}); got != "—" {
		t.Fatalf("formatTimestamp(null) = %q, want em dash", got)
	}

	ts := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	if got := formatTimestamp(pgtype.Timestamptz{Time: ts, Valid: true}); got != "Mar 14, 2026 09:26 UTC" {
		t.Fatalf("formatTimestamp = %q", got)
	}
}
