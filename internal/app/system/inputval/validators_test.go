package inputval

import (
	"testing"

	"github.com/dalemusser/placementhub/internal/domain/models"
)

func TestValidate(t *testing.T) {
	type TestInput struct {
		Name  string `validate:"required,max=10" label:"Full name"`
		Email string `validate:"required,emailaddr" label:"Email address"`
	}

	tests := []struct {
		name       string
		input      TestInput
		wantErrors bool
		wantFirst  string
	}{
		{
			name:       "valid input",
			input:      TestInput{Name: "John", Email: "john@example.com"},
			wantErrors: false,
		},
		{
			name:       "missing name",
			input:      TestInput{Name: "", Email: "john@example.com"},
			wantErrors: true,
			wantFirst:  "Full name is required.",
		},
		{
			name:       "name too long",
			input:      TestInput{Name: "VeryLongNameThatExceedsLimit", Email: "john@example.com"},
			wantErrors: true,
			wantFirst:  "Full name must be at most 10 characters.",
		},
		{
			name:       "invalid email",
			input:      TestInput{Name: "John", Email: "not-an-email"},
			wantErrors: true,
			wantFirst:  "A valid email address is required.",
		},
		{
			name:       "missing both",
			input:      TestInput{Name: "", Email: ""},
			wantErrors: true,
			wantFirst:  "Full name is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)

			if result.HasErrors() != tt.wantErrors {
				t.Errorf("Validate() HasErrors = %v, want %v", result.HasErrors(), tt.wantErrors)
			}
			if tt.wantErrors && result.First() != tt.wantFirst {
				t.Errorf("Validate() First() = %q, want %q", result.First(), tt.wantFirst)
			}
		})
	}
}

func TestValidate_DomainRules(t *testing.T) {
	type PostingInput struct {
		Level    models.Level `validate:"level" label:"Level"`
		Capacity int          `validate:"gt=0" label:"Capacity"`
		Role     models.Role  `validate:"role" label:"Role"`
	}

	ok := Validate(PostingInput{Level: models.LevelAdvanced, Capacity: 2, Role: models.RoleStaff})
	if ok.HasErrors() {
		t.Fatalf("valid input has errors: %v", ok.All())
	}

	bad := Validate(PostingInput{Level: 7, Capacity: 0, Role: "admin"})
	if len(bad.Errors) != 3 {
		t.Fatalf("errors = %d (%s), want 3", len(bad.Errors), bad.All())
	}
	want := []string{
		"Level must be BASIC, INTERMEDIATE or ADVANCED.",
		"Capacity must be greater than 0.",
		"Role must be applicant, organization or staff.",
	}
	for i, w := range want {
		if bad.Errors[i].Message != w {
			t.Errorf("Errors[%d] = %q, want %q", i, bad.Errors[i].Message, w)
		}
	}
}

func TestResult_All(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		r := &Result{}
		if r.All() != "" {
			t.Errorf("All() = %q, want empty", r.All())
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		r := &Result{
			Errors: []FieldError{
				{Message: "Error 1"},
				{Message: "Error 2"},
			},
		}
		want := "Error 1; Error 2"
		if r.All() != want {
			t.Errorf("All() = %q, want %q", r.All(), want)
		}
	})
}

func TestResult_First(t *testing.T) {
	r := &Result{}
	if r.First() != "" {
		t.Errorf("First() = %q, want empty", r.First())
	}
	r.Errors = []FieldError{{Message: "First error"}, {Message: "Second error"}}
	if r.First() != "First error" {
		t.Errorf("First() = %q, want %q", r.First(), "First error")
	}
}
