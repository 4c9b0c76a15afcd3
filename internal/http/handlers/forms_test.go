package handlers

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationMessageForEmptyAssetForm(t *testing.T) {
	t.Parallel()

	err := validate.Struct(assetFormInput{})
	if err == nil {
		t.Fatal("expected validation errors for an empty form")
	}

	msg := validationMessage(err)
	if !strings.HasPrefix(msg, "Name is required") {
		t.Fatalf("message should start with the name error, got %q", msg)
	}
	for _, want := range []string{"status", "department id is required", "category id is required"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q: %q", want, msg)
		}
	}
	if !strings.HasSuffix(msg, ".") {
		t.Errorf("message should end with a period: %q", msg)
	}
}

func TestValidationMessageForBadStatus(t *testing.T) {
	t.Parallel()

	err := validate.Struct(assetFormInput{
		Name:         "MacBook",
		Status:       "lost",
		DepartmentID: 1,
		CategoryID:   1,
	})
	if err == nil {
		t.Fatal("expected a validation error for an unknown status")
	}

	msg := validationMessage(err)
	if !strings.Contains(msg, "status must be one of: in_service, in_storage, under_repair, retired") {
		t.Fatalf("message = %q", msg)
	}
}

func TestValidationMessageForOverlongName(t *testing.T) {
	t.Parallel()

	err := validate.Struct(refFormInput{Name: strings.Repeat("x", 121)})
	if err == nil {
		t.Fatal("expected a validation error for an overlong name")
	}

	msg := validationMessage(err)
	if !strings.Contains(msg, "name must be at most 120 characters") {
		t.Fatalf("message = %q", msg)
	}
}

func TestValidationMessageForNonValidationError(t *testing.T) {
	t.Parallel()

	msg := validationMessage(errors.New("pq: connection reset"))
	if msg != "The submitted form could not be processed." {
		t.Fatalf("message = %q", msg)
	}
	if strings.Contains(msg, "connection") {
		t.Fatalf("message leaked internals: %q", msg)
	}
}

func TestValidAssetFormPasses(t *testing.T) {
	t.Parallel()

	err := validate.Struct(assetFormInput{
		Name:         "MacBook Pro 14",
		SerialNumber: "C02XL0AAJGH5",
		Description:  "Engineering laptop",
		Status:       "in_service",
		DepartmentID: 3,
		CategoryID:   2,
	})
	if err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
}
