// Package serializers maps wire-format JSON to validated StudentOnboarding
// records and back. Both directions are driven by one statically declared
// field-descriptor table, so the set of serialized fields and the rules
// applied to each live in a single place.
package serializers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/campushq/onboarding-api/internal/app/models"
	"github.com/campushq/onboarding-api/internal/pkg/apperrors"
	"github.com/campushq/onboarding-api/internal/pkg/validation"
)

// Common field-level messages
const (
	msgRequired    = "This field is required."
	msgBlank       = "This field may not be blank."
	msgNull        = "This field may not be null."
	msgNotString   = "Not a valid string."
	msgNotInteger  = "A valid integer is required."
	msgNotNumber   = "A valid number is required."
	msgNotBoolean  = "Must be a valid boolean."
	msgBadDate     = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	dateOnlyFormat = "2006-01-02"
)

// normalizeFunc validates a raw string and returns the value to store.
type normalizeFunc func(string) (string, error)

// fieldDescriptor declares one serialized field: its wire name, whether a
// create payload must supply it, and the two direction closures. Read-only
// fields (id, timestamps) have no decode closure and are ignored on input.
type fieldDescriptor struct {
	name     string
	required bool
	readOnly bool
	decode   func(rec *models.StudentOnboarding, raw json.RawMessage) []string
	encode   func(rec *models.StudentOnboarding) any
}

// reducedFieldNames is the projection used for bulk listing views.
var reducedFieldNames = []string{"id", "first_name", "last_name", "email", "created_at"}

// StudentOnboardingSerializer is the bidirectional wire contract for
// StudentOnboarding records.
type StudentOnboardingSerializer struct {
	fields []fieldDescriptor
	byName map[string]*fieldDescriptor
}

// NewStudentOnboardingSerializer builds the serializer and its descriptor table.
func NewStudentOnboardingSerializer() *StudentOnboardingSerializer {
	s := &StudentOnboardingSerializer{fields: studentOnboardingFields()}
	s.byName = make(map[string]*fieldDescriptor, len(s.fields))
	for i := range s.fields {
		s.byName[s.fields[i].name] = &s.fields[i]
	}
	return s
}

// Apply decodes data into rec. For a create (partial=false) every required
// field must be present; for a partial update only supplied fields are
// validated and merged, leaving the rest of rec untouched. All field-level
// failures are collected, then the record-level age and income checks run
// against the merged record. Returns nil or a *apperrors.ValidationError;
// a malformed JSON body returns an error wrapping apperrors.ErrBadRequest.
func (s *StudentOnboardingSerializer) Apply(rec *models.StudentOnboarding, data []byte, partial bool) error {
	return s.ApplyAt(rec, data, partial, time.Now())
}

// ApplyAt is Apply with an explicit reference time for the age check.
func (s *StudentOnboardingSerializer) ApplyAt(rec *models.StudentOnboarding, data []byte, partial bool, now time.Time) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: malformed JSON body", apperrors.ErrBadRequest)
	}

	verr := apperrors.NewValidationError()

	for i := range s.fields {
		fd := &s.fields[i]
		if fd.readOnly {
			continue
		}

		raw, present := payload[fd.name]
		if !present {
			if fd.required && !partial {
				verr.Add(fd.name, msgRequired)
			}
			continue
		}

		for _, msg := range fd.decode(rec, raw) {
			verr.Add(fd.name, msg)
		}
	}

	// Record-level checks always evaluate the merged record, not just the
	// supplied delta. A check is skipped only when its own field failed at
	// field level above.
	if !verr.Has("date_of_birth") && !rec.DateOfBirth.IsZero() {
		if err := rec.CheckAge(now); err != nil {
			verr.Add(apperrors.NonFieldErrors, err.Error())
		}
	}
	if !verr.Has("family_income") {
		if err := rec.CheckIncome(); err != nil {
			verr.Add(apperrors.NonFieldErrors, err.Error())
		}
	}

	return verr.ErrOrNil()
}

// Encode emits every persisted field of rec, metadata included.
func (s *StudentOnboardingSerializer) Encode(rec *models.StudentOnboarding) map[string]any {
	out := make(map[string]any, len(s.fields))
	for i := range s.fields {
		fd := &s.fields[i]
		out[fd.name] = fd.encode(rec)
	}
	return out
}

// EncodeReduced emits the abbreviated projection used by list views.
func (s *StudentOnboardingSerializer) EncodeReduced(rec *models.StudentOnboarding) map[string]any {
	out := make(map[string]any, len(reducedFieldNames))
	for _, name := range reducedFieldNames {
		out[name] = s.byName[name].encode(rec)
	}
	return out
}

// studentOnboardingFields declares the full serialization contract: one
// descriptor per wire field, in the order the record schema defines them.
func studentOnboardingFields() []fieldDescriptor {
	return []fieldDescriptor{
		readOnlyField("id", func(r *models.StudentOnboarding) any { return r.ID }),

		// Personal information
		stringField("first_name", true, 100, nil,
			func(r *models.StudentOnboarding) *string { return &r.FirstName }),
		stringField("last_name", true, 100, nil,
			func(r *models.StudentOnboarding) *string { return &r.LastName }),
		dateField("date_of_birth", true,
			func(r *models.StudentOnboarding) *time.Time { return &r.DateOfBirth }),
		choiceField("gender", true, []string{models.GenderMale, models.GenderFemale, models.GenderOther},
			func(r *models.StudentOnboarding) *string { return &r.Gender }),
		stringField("email", true, 254, validation.Email,
			func(r *models.StudentOnboarding) *string { return &r.Email }),
		stringField("mobile_number", true, 15, validation.Phone,
			func(r *models.StudentOnboarding) *string { return &r.MobileNumber }),

		// Address information
		stringField("address_line_1", true, 255, nil,
			func(r *models.StudentOnboarding) *string { return &r.AddressLine1 }),
		optionalStringField("address_line_2", 255,
			func(r *models.StudentOnboarding) **string { return &r.AddressLine2 }),
		stringField("city", true, 100, nil,
			func(r *models.StudentOnboarding) *string { return &r.City }),
		stringField("state", true, 100, nil,
			func(r *models.StudentOnboarding) *string { return &r.State }),
		stringField("country", true, 100, nil,
			func(r *models.StudentOnboarding) *string { return &r.Country }),
		stringField("zipcode", true, 20, validation.Zipcode,
			func(r *models.StudentOnboarding) *string { return &r.Zipcode }),
		choiceField("citizenship", true,
			[]string{models.CitizenshipUS, models.CitizenshipCA, models.CitizenshipUK, models.CitizenshipIN, models.CitizenshipAU, models.CitizenshipOther},
			func(r *models.StudentOnboarding) *string { return &r.Citizenship }),

		// Guardian information
		stringField("guardian_name", true, 200, nil,
			func(r *models.StudentOnboarding) *string { return &r.GuardianName }),
		stringField("guardian_relationship", true, 50, nil,
			func(r *models.StudentOnboarding) *string { return &r.GuardianRelationship }),
		stringField("guardian_phone", true, 15, validation.Phone,
			func(r *models.StudentOnboarding) *string { return &r.GuardianPhone }),
		stringField("guardian_email", true, 254, validation.Email,
			func(r *models.StudentOnboarding) *string { return &r.GuardianEmail }),

		// Family details
		optionalStringField("father_name", 200,
			func(r *models.StudentOnboarding) **string { return &r.FatherName }),
		optionalStringField("father_profession", 100,
			func(r *models.StudentOnboarding) **string { return &r.FatherProfession }),
		optionalStringField("mother_name", 200,
			func(r *models.StudentOnboarding) **string { return &r.MotherName }),
		optionalStringField("mother_profession", 100,
			func(r *models.StudentOnboarding) **string { return &r.MotherProfession }),

		// Financial information
		decimalField("family_income", true,
			func(r *models.StudentOnboarding) *decimal.Decimal { return &r.FamilyIncome }),

		// Additional information
		intField("number_of_siblings", true, models.MinSiblings, models.MaxSiblings,
			func(r *models.StudentOnboarding) *int { return &r.NumberOfSiblings }),
		boolField("has_family_abroad",
			func(r *models.StudentOnboarding) *bool { return &r.HasFamilyAbroad }),
		optionalStringField("countries_abroad", 0,
			func(r *models.StudentOnboarding) **string { return &r.CountriesAbroad }),

		// Metadata
		readOnlyField("created_at", func(r *models.StudentOnboarding) any { return r.CreatedAt.Format(time.RFC3339) }),
		readOnlyField("updated_at", func(r *models.StudentOnboarding) any { return r.UpdatedAt.Format(time.RFC3339) }),
	}
}

func readOnlyField(name string, encode func(*models.StudentOnboarding) any) fieldDescriptor {
	return fieldDescriptor{name: name, readOnly: true, encode: encode}
}

// stringField declares a required string field with an optional maximum
// length and an optional normalizer (phone, email, zipcode).
func stringField(name string, required bool, maxLen int, norm normalizeFunc, sel func(*models.StudentOnboarding) *string) fieldDescriptor {
	return fieldDescriptor{
		name:     name,
		required: required,
		decode: func(rec *models.StudentOnboarding, raw json.RawMessage) []string {
			if isNull(raw) {
				return []string{msgNull}
			}
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return []string{msgNotString}
			}
			if strings.TrimSpace(v) == "" {
				return []string{msgBlank}
			}
			if maxLen > 0 && utf8.RuneCountInString(v) > maxLen {
				return []string{fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen)}
			}
			if norm != nil {
				normalized, err := norm(v)
				if err != nil {
					return []string{err.Error()}
				}
				v = normalized
			}
			*sel(rec) = v
			return nil
		},
		encode: func(rec *models.StudentOnboarding) any { return *sel(rec) },
	}
}

// optionalStringField declares a nullable string field; null clears it.
// maxLen of zero means unbounded (free text).
func optionalStringField(name string, maxLen int, sel func(*models.StudentOnboarding) **string) fieldDescriptor {
	return fieldDescriptor{
		name: name,
		decode: func(rec *models.StudentOnboarding, raw json.RawMessage) []string {
			if isNull(raw) {
				*sel(rec) = nil
				return nil
			}
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return []string{msgNotString}
			}
			if maxLen > 0 && utf8.RuneCountInString(v) > maxLen {
				return []string{fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen)}
			}
			*sel(rec) = &v
			return nil
		},
		encode: func(rec *models.StudentOnboarding) any {
			if p := *sel(rec); p != nil {
				return *p
			}
			return nil
		},
	}
}

// choiceField declares an enumerated string field.
func choiceField(name string, required bool, choices []string, sel func(*models.StudentOnboarding) *string) fieldDescriptor {
	return fieldDescriptor{
		name:     name,
		required: required,
		decode: func(rec *models.StudentOnboarding, raw json.RawMessage) []string {
			if isNull(raw) {
				return []string{msgNull}
			}
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return []string{msgNotString}
			}
			for _, choice := range choices {
				if v == choice {
					*sel(rec) = v
					return nil
				}
			}
			return []string{fmt.Sprintf("%q is not a valid choice.", v)}
		},
		encode: func(rec *models.StudentOnboarding) any { return *sel(rec) },
	}
}

// dateField declares a calendar date field in YYYY-MM-DD form.
func dateField(name string, required bool, sel func(*models.StudentOnboarding) *time.Time) fieldDescriptor {
	return fieldDescriptor{
		name:     name,
		required: required,
		decode: func(rec *models.StudentOnboarding, raw json.RawMessage) []string {
			if isNull(raw) {
				return []string{msgNull}
			}
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return []string{msgBadDate}
			}
			parsed, err := time.Parse(dateOnlyFormat, v)
			if err != nil {
				return []string{msgBadDate}
			}
			*sel(rec) = parsed
			return nil
		},
		encode: func(rec *models.StudentOnboarding) any { return (*sel(rec)).Format(dateOnlyFormat) },
	}
}

// decimalField declares the family_income decimal: accepts a JSON number or
// a numeric string, enforces the digit budget, and emits a fixed 2-decimal
// string so values like "75000.00" round-trip unchanged.
func decimalField(name string, required bool, sel func(*models.StudentOnboarding) *decimal.Decimal) fieldDescriptor {
	return fieldDescriptor{
		name:     name,
		required: required,
		decode: func(rec *models.StudentOnboarding, raw json.RawMessage) []string {
			if isNull(raw) {
				return []string{msgNull}
			}
			var v decimal.Decimal
			if err := json.Unmarshal(raw, &v); err != nil {
				return []string{msgNotNumber}
			}

			var msgs []string
			if v.Exponent() < -models.IncomeMaxDecimalPlaces {
				msgs = append(msgs, fmt.Sprintf("Ensure that there are no more than %d decimal places.", models.IncomeMaxDecimalPlaces))
			}
			if v.NumDigits() > models.IncomeMaxDigits {
				msgs = append(msgs, fmt.Sprintf("Ensure that there are no more than %d digits in total.", models.IncomeMaxDigits))
			}
			if v.IsNegative() {
				msgs = append(msgs, models.ErrNegativeIncome.Error())
			}
			if len(msgs) > 0 {
				return msgs
			}

			*sel(rec) = v
			return nil
		},
		encode: func(rec *models.StudentOnboarding) any { return (*sel(rec)).StringFixed(2) },
	}
}

// intField declares a bounded integer field.
func intField(name string, required bool, min, max int, sel func(*models.StudentOnboarding) *int) fieldDescriptor {
	return fieldDescriptor{
		name:     name,
		required: required,
		decode: func(rec *models.StudentOnboarding, raw json.RawMessage) []string {
			if isNull(raw) {
				return []string{msgNull}
			}
			var v int
			if err := json.Unmarshal(raw, &v); err != nil {
				return []string{msgNotInteger}
			}
			if v < min {
				return []string{fmt.Sprintf("Ensure this value is greater than or equal to %d.", min)}
			}
			if v > max {
				return []string{fmt.Sprintf("Ensure this value is less than or equal to %d.", max)}
			}
			*sel(rec) = v
			return nil
		},
		encode: func(rec *models.StudentOnboarding) any { return *sel(rec) },
	}
}

// boolField declares an optional boolean field (defaults to false).
func boolField(name string, sel func(*models.StudentOnboarding) *bool) fieldDescriptor {
	return fieldDescriptor{
		name: name,
		decode: func(rec *models.StudentOnboarding, raw json.RawMessage) []string {
			if isNull(raw) {
				return []string{msgNull}
			}
			var v bool
			if err := json.Unmarshal(raw, &v); err != nil {
				return []string{msgNotBoolean}
			}
			*sel(rec) = v
			return nil
		},
		encode: func(rec *models.StudentOnboarding) any { return *sel(rec) },
	}
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
