package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Asset lifecycle states. The schema enforces the same set.
const (
	AssetStatusInService   = "in_service"
	AssetStatusInStorage   = "in_storage"
	AssetStatusUnderRepair = "under_repair"
	AssetStatusRetired     = "retired"
)

// Deletion request workflow states.
const (
	DeletionRequestStatusPending  = "pending"
	DeletionRequestStatusApproved = "approved"
	DeletionRequestStatusRejected = "rejected"
	DeletionRequestStatusExpired  = "expired"
)

func ValidAssetStatus(s string) bool {
	switch s {
	case AssetStatusInService, AssetStatusInStorage, AssetStatusUnderRepair, AssetStatusRetired:
		return true
	}
	return false
}

func ValidDeletionRequestStatus(s string) bool {
	switch s {
	case DeletionRequestStatusPending, DeletionRequestStatusApproved,
		DeletionRequestStatusRejected, DeletionRequestStatusExpired:
		return true
	}
	return false
}

type AuthUser struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLoginAt  pgtype.Timestamptz
	LastLoginIp  string
	CreatedAt    time.Time
}

type Department struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

type Asset struct {
	ID           int64
	Tag          string
	Name         string
	SerialNumber string
	Description  string
	Status       string
	OwnerID      pgtype.Int8
	DepartmentID int64
	CategoryID   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type DeletionRequest struct {
	ID           int64
	AssetID      pgtype.Int8
	AssetName    string
	AssetTag     string
	RequestedBy  pgtype.Int8
	Reason       string
	Status       string
	DecidedBy    pgtype.Int8
	DecidedAt    pgtype.Timestamptz
	DecisionNote string
	CreatedAt    time.Time
}
