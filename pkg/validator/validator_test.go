package validator_test

import (
	"testing"

	"github.com/ghuser/pressroom/pkg/validator"
)

type createArgs struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	Subtitle string `json:"subtitle" validate:"required,min=1,max=255"`
	Body     string `json:"body" validate:"max=65535"`
}

type signUpArgs struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func TestValidate_OK(t *testing.T) {
	if err := validator.Validate(&createArgs{Title: "Hello", Subtitle: "World"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	err := validator.Validate(&createArgs{Body: "text only"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	fields := validator.FormatValidationErrors(err)
	if fields["title"] != "This field is required" {
		t.Errorf("title message: got %q", fields["title"])
	}
	if fields["subtitle"] != "This field is required" {
		t.Errorf("subtitle message: got %q", fields["subtitle"])
	}
}

func TestValidate_PasswordMismatch(t *testing.T) {
	err := validator.Validate(&signUpArgs{
		Email:           "a@example.com",
		Password:        "hunter2hunter2",
		ConfirmPassword: "different",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fields := validator.FormatValidationErrors(err)
	if fields["confirmPassword"] == "" {
		t.Errorf("expected confirmPassword message, got %v", fields)
	}
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	fields := validator.FormatValidationErrors(nil)
	if len(fields) != 0 {
		t.Errorf("expected empty map, got %v", fields)
	}
}
