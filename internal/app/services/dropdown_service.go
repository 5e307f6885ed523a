package services

import "github.com/campushq/onboarding-api/internal/app/models/dto"

// DropdownService serves the static option lists backing the UI dropdowns.
// The data is fixed at build time; there is no validation logic here.
type DropdownService interface {
	Options() dto.DropdownOptions
}

type dropdownService struct{}

// NewDropdownService creates a new dropdown service instance
func NewDropdownService() DropdownService {
	return &dropdownService{}
}

func (s *dropdownService) Options() dto.DropdownOptions {
	return dto.DropdownOptions{
		Gender: []dto.Option{
			{Value: "M", Label: "Male"},
			{Value: "F", Label: "Female"},
			{Value: "O", Label: "Other"},
		},
		Citizenship: []dto.Option{
			{Value: "US", Label: "United States"},
			{Value: "CA", Label: "Canada"},
			{Value: "UK", Label: "United Kingdom"},
			{Value: "IN", Label: "India"},
			{Value: "AU", Label: "Australia"},
			{Value: "OTHER", Label: "Other"},
		},
		Countries: []dto.Option{
			{Value: "US", Label: "United States"},
			{Value: "CA", Label: "Canada"},
			{Value: "UK", Label: "United Kingdom"},
			{Value: "IN", Label: "India"},
			{Value: "AU", Label: "Australia"},
			{Value: "DE", Label: "Germany"},
			{Value: "FR", Label: "France"},
			{Value: "JP", Label: "Japan"},
		},
		States: []dto.Option{
			{Value: "CA", Label: "California"},
			{Value: "NY", Label: "New York"},
			{Value: "TX", Label: "Texas"},
			{Value: "FL", Label: "Florida"},
			{Value: "IL", Label: "Illinois"},
		},
		Professions: []dto.Option{
			{Value: "engineer", Label: "Engineer"},
			{Value: "doctor", Label: "Doctor"},
			{Value: "teacher", Label: "Teacher"},
			{Value: "lawyer", Label: "Lawyer"},
			{Value: "business", Label: "Business"},
			{Value: "other", Label: "Other"},
		},
	}
}
