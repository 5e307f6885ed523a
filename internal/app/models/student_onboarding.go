package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/campushq/onboarding-api/internal/pkg/apperrors"
	"github.com/campushq/onboarding-api/internal/pkg/helpers"
	"github.com/campushq/onboarding-api/internal/pkg/validation"
)

// Gender choice wire values
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// Citizenship choice wire values
const (
	CitizenshipUS    = "US"
	CitizenshipCA    = "CA"
	CitizenshipUK    = "UK"
	CitizenshipIN    = "IN"
	CitizenshipAU    = "AU"
	CitizenshipOther = "OTHER"
)

// Age bounds derived from date_of_birth at validation time
const (
	MinAgeYears = 5
	MaxAgeYears = 100
)

// Sibling count bounds
const (
	MinSiblings = 0
	MaxSiblings = 20
)

// family_income is a decimal with at most 12 total digits, 2 fractional
const (
	IncomeMaxDigits        = 12
	IncomeMaxDecimalPlaces = 2
)

// Record-level validation errors
var (
	ErrOutOfRangeAge  = errors.New("Age must be between 5 and 100 years")
	ErrNegativeIncome = errors.New("Family income cannot be negative")
)

// StudentOnboarding defines the student onboarding record stored in the
// 'student_onboarding' table. Optional nullable columns are pointers.
type StudentOnboarding struct {
	ID int64 `json:"id" db:"id"`

	// Personal information
	FirstName    string    `json:"first_name" db:"first_name" validate:"required,max=100"`
	LastName     string    `json:"last_name" db:"last_name" validate:"required,max=100"`
	DateOfBirth  time.Time `json:"date_of_birth" db:"date_of_birth" validate:"required"`
	Gender       string    `json:"gender" db:"gender" validate:"required,oneof=M F O"`
	Email        string    `json:"email" db:"email" validate:"required,emailfmt,max=254"`
	MobileNumber string    `json:"mobile_number" db:"mobile_number" validate:"required,phone"`

	// Address information
	AddressLine1 string  `json:"address_line_1" db:"address_line_1" validate:"required,max=255"`
	AddressLine2 *string `json:"address_line_2" db:"address_line_2" validate:"omitempty,max=255"`
	City         string  `json:"city" db:"city" validate:"required,max=100"`
	State        string  `json:"state" db:"state" validate:"required,max=100"`
	Country      string  `json:"country" db:"country" validate:"required,max=100"`
	Zipcode      string  `json:"zipcode" db:"zipcode" validate:"required,zipcode,max=20"`
	Citizenship  string  `json:"citizenship" db:"citizenship" validate:"required,oneof=US CA UK IN AU OTHER"`

	// Guardian information
	GuardianName         string `json:"guardian_name" db:"guardian_name" validate:"required,max=200"`
	GuardianRelationship string `json:"guardian_relationship" db:"guardian_relationship" validate:"required,max=50"`
	GuardianPhone        string `json:"guardian_phone" db:"guardian_phone" validate:"required,phone"`
	GuardianEmail        string `json:"guardian_email" db:"guardian_email" validate:"required,emailfmt,max=254"`

	// Family details
	FatherName       *string `json:"father_name" db:"father_name" validate:"omitempty,max=200"`
	FatherProfession *string `json:"father_profession" db:"father_profession" validate:"omitempty,max=100"`
	MotherName       *string `json:"mother_name" db:"mother_name" validate:"omitempty,max=200"`
	MotherProfession *string `json:"mother_profession" db:"mother_profession" validate:"omitempty,max=100"`

	// Financial information
	FamilyIncome decimal.Decimal `json:"family_income" db:"family_income"`

	// Additional information
	NumberOfSiblings int     `json:"number_of_siblings" db:"number_of_siblings" validate:"min=0,max=20"`
	HasFamilyAbroad  bool    `json:"has_family_abroad" db:"has_family_abroad"`
	CountriesAbroad  *string `json:"countries_abroad" db:"countries_abroad"`

	// Metadata
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// String implements fmt.Stringer for log output
func (s *StudentOnboarding) String() string {
	return fmt.Sprintf("%s %s - %s", s.FirstName, s.LastName, s.Email)
}

// validate is the shared validator instance with the custom format tags
// registered. Field names in validation errors use the json tag.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonTagName)

	// The custom tags delegate to the pure validators so the shape rules
	// live in exactly one place.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		_, err := validation.Phone(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("emailfmt", func(fl validator.FieldLevel) bool {
		_, err := validation.Email(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
		_, err := validation.Zipcode(fl.Field().String())
		return err == nil
	})

	return v
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Validate runs the full field set plus both record-level checks against
// the current time. The persistence layer calls this unconditionally
// before every write, so no entry path can store an invalid record.
func (s *StudentOnboarding) Validate() error {
	return s.ValidateAt(time.Now())
}

// ValidateAt is Validate with an explicit reference time for the age check.
func (s *StudentOnboarding) ValidateAt(now time.Time) error {
	verr := apperrors.NewValidationError()

	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), formatFieldError(fe))
		}
	}

	for _, msg := range s.incomeFieldErrors() {
		verr.Add("family_income", msg)
	}

	// Record-level checks run even when field-level validation failed;
	// the date check only needs a usable date_of_birth.
	if !s.DateOfBirth.IsZero() {
		if err := s.CheckAge(now); err != nil {
			verr.Add(apperrors.NonFieldErrors, err.Error())
		}
	}
	if err := s.CheckIncome(); err != nil {
		verr.Add(apperrors.NonFieldErrors, err.Error())
	}

	return verr.ErrOrNil()
}

// CheckAge verifies the age derived from date_of_birth lies in [5, 100]
// years at the reference time.
func (s *StudentOnboarding) CheckAge(now time.Time) error {
	age := helpers.AgeAt(s.DateOfBirth, now)
	if age < MinAgeYears || age > MaxAgeYears {
		return ErrOutOfRangeAge
	}
	return nil
}

// CheckIncome verifies family_income is not negative.
func (s *StudentOnboarding) CheckIncome() error {
	if s.FamilyIncome.IsNegative() {
		return ErrNegativeIncome
	}
	return nil
}

// incomeFieldErrors validates the decimal shape of family_income:
// at most 12 digits in total, at most 2 decimal places, not negative.
func (s *StudentOnboarding) incomeFieldErrors() []string {
	var msgs []string
	if s.FamilyIncome.Exponent() < -IncomeMaxDecimalPlaces {
		msgs = append(msgs, fmt.Sprintf("Ensure that there are no more than %d decimal places.", IncomeMaxDecimalPlaces))
	}
	if s.FamilyIncome.NumDigits() > IncomeMaxDigits {
		msgs = append(msgs, fmt.Sprintf("Ensure that there are no more than %d digits in total.", IncomeMaxDigits))
	}
	if s.FamilyIncome.IsNegative() {
		msgs = append(msgs, ErrNegativeIncome.Error())
	}
	return msgs
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprintf("%v", fe.Value()))
	case "phone":
		return validation.ErrInvalidPhoneFormat.Error()
	case "emailfmt":
		return validation.ErrInvalidEmailFormat.Error()
	case "zipcode":
		return validation.ErrInvalidZipcodeFormat.Error()
	default:
		return fmt.Sprintf("Validation failed on the %q rule.", fe.Tag())
	}
}
