package utils

import (
	"testing"

	"github.com/samaj-network/app-directory/internal/models"
)

func validInput() *models.ProfileInput {
	return &models.ProfileInput{
		Name:          "Asha Rao",
		DOB:           "1995-03-10",
		Place:         "Pune",
		Occupation:    "Teacher",
		ContactNumber: "9999999999",
	}
}

func TestValidateProfileInput_Valid(t *testing.T) {
	result := ValidateProfileInput(validInput(), false, "IN")
	if !result.IsValid {
		t.Errorf("ValidateProfileInput() invalid, errors = %v", result.Errors)
	}
}

func TestValidateProfileInput_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ProfileInput)
		field  string
	}{
		{"missing name", func(i *models.ProfileInput) { i.Name = "" }, "name"},
		{"missing dob", func(i *models.ProfileInput) { i.DOB = "" }, "dob"},
		{"missing place", func(i *models.ProfileInput) { i.Place = "  " }, "place"},
		{"missing occupation", func(i *models.ProfileInput) { i.Occupation = "" }, "occupation"},
		{"missing contact", func(i *models.ProfileInput) { i.ContactNumber = "" }, "contact_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			result := ValidateProfileInput(input, false, "IN")
			if result.IsValid {
				t.Fatalf("ValidateProfileInput() valid, want error on %q", tt.field)
			}

			found := false
			for _, e := range result.Errors {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("ValidateProfileInput() errors = %v, want error on %q", result.Errors, tt.field)
			}
		})
	}
}

func TestValidateProfileInput_DOBFormat(t *testing.T) {
	input := validInput()
	input.DOB = "10/03/1995"

	result := ValidateProfileInput(input, false, "IN")
	if result.IsValid {
		t.Error("ValidateProfileInput() accepted malformed dob")
	}
}

func TestValidateProfileInput_ContactPolicy(t *testing.T) {
	input := validInput()
	input.ContactNumber = "not-a-number"

	// Disabled policy stores whatever the caller submitted
	if result := ValidateProfileInput(input, false, "IN"); !result.IsValid {
		t.Errorf("ValidateProfileInput() with validation disabled rejected contact, errors = %v", result.Errors)
	}

	// Enabled policy requires a plausible number
	if result := ValidateProfileInput(input, true, "IN"); result.IsValid {
		t.Error("ValidateProfileInput() with validation enabled accepted implausible contact")
	}

	input.ContactNumber = "9999999999"
	if result := ValidateProfileInput(input, true, "IN"); !result.IsValid {
		t.Errorf("ValidateProfileInput() with validation enabled rejected plausible contact, errors = %v", result.Errors)
	}
}
