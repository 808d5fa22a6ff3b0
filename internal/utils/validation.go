package utils

import (
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"github.com/samaj-network/app-directory/internal/models"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// ValidateProfileInput validates submitted profile fields. The required set
// is the minimal common one: name, dob, place, occupation, contact_number.
// Contact numbers are stored verbatim; the plausibility check only runs when
// enabled by policy.
func ValidateProfileInput(input *models.ProfileInput, validateContact bool, phoneRegion string) *ValidationResult {
	result := NewValidationResult()

	if strings.TrimSpace(input.Name) == "" {
		result.AddError("name", "Name is required")
	}
	if strings.TrimSpace(input.DOB) == "" {
		result.AddError("dob", "Date of birth is required")
	}
	if strings.TrimSpace(input.Place) == "" {
		result.AddError("place", "Birth place is required")
	}
	if strings.TrimSpace(input.Occupation) == "" {
		result.AddError("occupation", "Occupation is required")
	}
	if strings.TrimSpace(input.ContactNumber) == "" {
		result.AddError("contact_number", "Contact number is required")
	}

	if input.DOB != "" {
		if _, err := time.Parse(DOBLayout, input.DOB); err != nil {
			result.AddError("dob", "Date of birth must be in format YYYY-MM-DD")
		}
	}

	// Length validations
	if len(input.Name) > 200 {
		result.AddError("name", "Name must not exceed 200 characters")
	}
	if len(input.Place) > 200 {
		result.AddError("place", "Birth place must not exceed 200 characters")
	}
	if len(input.Education) > 200 {
		result.AddError("education", "Education must not exceed 200 characters")
	}
	if len(input.Occupation) > 200 {
		result.AddError("occupation", "Occupation must not exceed 200 characters")
	}
	if len(input.Business) > 200 {
		result.AddError("business", "Business name must not exceed 200 characters")
	}
	if len(input.FatherName) > 200 {
		result.AddError("father_name", "Father's name must not exceed 200 characters")
	}
	if len(input.MotherName) > 200 {
		result.AddError("mother_name", "Mother's name must not exceed 200 characters")
	}

	if validateContact && strings.TrimSpace(input.ContactNumber) != "" {
		if !isPlausibleNumber(input.ContactNumber, phoneRegion) {
			result.AddError("contact_number", "Contact number is not a plausible phone number")
		}
	}

	return result
}

// isPlausibleNumber parses a number against the default region and checks it
// is at least a possible number. Formatting is never applied to the stored
// value.
func isPlausibleNumber(number, region string) bool {
	parsed, err := phonenumbers.Parse(number, region)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(parsed)
}
