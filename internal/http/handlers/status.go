package handlers

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

// assetStatuses is the canonical display order for asset lifecycle states.
var assetStatuses = []string{
	db.AssetStatusInService,
	db.AssetStatusInStorage,
	db.AssetStatusUnderRepair,
	db.AssetStatusRetired,
}

func assetStatusLabel(status string) string {
	switch status {
	case db.AssetStatusInService:
		return "In service"
	case db.AssetStatusInStorage:
		return "In storage"
	case db.AssetStatusUnderRepair:
		return "Under repair"
	case db.AssetStatusRetired:
		return "Retired"
	default:
		return status
	}
}

func assetStatusBadgeClass(status string) string {
	switch status {
	case db.AssetStatusInService:
		return "badge-success"
	case db.AssetStatusInStorage:
		return "badge-info"
	case db.AssetStatusUnderRepair:
		return "badge-warning"
	default:
		return "badge-muted"
	}
}

func assetStatusOptions(selected string) []viewmodels.StatusOption {
	options := make([]viewmodels.StatusOption, 0, len(assetStatuses))
	for _, status := range assetStatuses {
		options = append(options, viewmodels.StatusOption{
			Value:    status,
			Label:    assetStatusLabel(status),
			Selected: status == selected,
		})
	}
	return options
}

var requestStatuses = []string{
	db.DeletionRequestStatusPending,
	db.DeletionRequestStatusApproved,
	db.DeletionRequestStatusRejected,
	db.DeletionRequestStatusExpired,
}

func requestStatusOptions(selected string) []viewmodels.StatusOption {
	options := make([]viewmodels.StatusOption, 0, len(requestStatuses))
	for _, status := range requestStatuses {
		options = append(options, viewmodels.StatusOption{
			Value:    status,
			Label:    requestStatusLabel(status),
			Selected: status == selected,
		})
	}
	return options
}

func requestStatusLabel(status string) string {
	switch status {
	case db.DeletionRequestStatusPending:
		return "Pending"
	case db.DeletionRequestStatusApproved:
		return "Approved"
	case db.DeletionRequestStatusRejected:
		return "Rejected"
	case db.DeletionRequestStatusExpired:
		return "Expired"
	default:
		return status
	}
}

func requestStatusBadgeClass(status string) string {
	switch status {
	case db.DeletionRequestStatusPending:
		return "badge-warning"
	case db.DeletionRequestStatusApproved:
		return "badge-success"
	case db.DeletionRequestStatusRejected:
		return "badge-danger"
	default:
		return "badge-muted"
	}
}

// statusCounts zero-fills the canonical statuses so dashboards always show
// all four rows.
func statusCounts(rows []db.CountAssetsGroupedByStatusRow) []viewmodels.StatusCount {
	byStatus := make(map[string]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}
	out := make([]viewmodels.StatusCount, 0, len(assetStatuses))
	for _, status := range assetStatuses {
		out = append(out, viewmodels.StatusCount{
			Status:     status,
			Label:      assetStatusLabel(status),
			BadgeClass: assetStatusBadgeClass(status),
			Count:      byStatus[status],
		})
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.UTC().Format("Jan 2, 2006 15:04 UTC")
}

func formatTimestamp(value pgtype.Timestamptz) string {
	if !value.Valid {
		return "—"
	}
	return formatTime(value.Time)
}
