package serializers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/onboarding-api/internal/app/models"
	"github.com/campushq/onboarding-api/internal/pkg/apperrors"
)

var referenceTime = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func validCreatePayload() map[string]any {
	return map[string]any{
		"first_name":            "John",
		"last_name":             "Doe",
		"date_of_birth":         "2005-06-15",
		"gender":                "M",
		"email":                 "john.doe@example.com",
		"mobile_number":         "+1234567890",
		"address_line_1":        "123 Main St",
		"city":                  "Springfield",
		"state":                 "IL",
		"country":               "USA",
		"zipcode":               "62704",
		"citizenship":           "US",
		"guardian_name":         "Jane Doe",
		"guardian_relationship": "Mother",
		"guardian_phone":        "+1987654321",
		"guardian_email":        "jane.doe@example.com",
		"family_income":         "75000.00",
		"number_of_siblings":    2,
	}
}

func marshal(t *testing.T, payload map[string]any) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func applyErr(t *testing.T, rec *models.StudentOnboarding, payload map[string]any, partial bool) map[string][]string {
	t.Helper()
	s := NewStudentOnboardingSerializer()
	err := s.ApplyAt(rec, marshal(t, payload), partial, referenceTime)
	require.Error(t, err)
	verr, ok := apperrors.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	return verr.Fields
}

func TestApplyCreatePopulatesRecord(t *testing.T) {
	s := NewStudentOnboardingSerializer()
	rec := &models.StudentOnboarding{}

	err := s.ApplyAt(rec, marshal(t, validCreatePayload()), false, referenceTime)
	require.NoError(t, err)

	assert.Equal(t, "John", rec.FirstName)
	assert.Equal(t, "Doe", rec.LastName)
	assert.Equal(t, time.Date(2005, time.June, 15, 0, 0, 0, 0, time.UTC), rec.DateOfBirth)
	assert.Equal(t, models.GenderMale, rec.Gender)
	assert.Equal(t, "john.doe@example.com", rec.Email)
	assert.Equal(t, "+1234567890", rec.MobileNumber)
	assert.Equal(t, models.CitizenshipUS, rec.Citizenship)
	assert.True(t, rec.FamilyIncome.Equal(decimal.RequireFromString("75000.00")))
	assert.Equal(t, 2, rec.NumberOfSiblings)
	assert.False(t, rec.HasFamilyAbroad)
	assert.Nil(t, rec.AddressLine2)
}

func TestApplyNormalizesPhoneNumbers(t *testing.T) {
	payload := validCreatePayload()
	payload["mobile_number"] = "123-456-7890"
	payload["guardian_phone"] = "987-654-3210"

	s := NewStudentOnboardingSerializer()
	rec := &models.StudentOnboarding{}
	require.NoError(t, s.ApplyAt(rec, marshal(t, payload), false, referenceTime))

	assert.Equal(t, "1234567890", rec.MobileNumber)
	assert.Equal(t, "9876543210", rec.GuardianPhone)
}

func TestApplyPhoneMaxLengthAppliesToRawValue(t *testing.T) {
	// The length limit is checked on the value as supplied; separators are
	// only stripped afterwards, so a heavily formatted number can exceed it
	// even though its digits alone would fit.
	payload := validCreatePayload()
	payload["guardian_phone"] = "+1 (987) 654-3210"

	fields := applyErr(t, &models.StudentOnboarding{}, payload, false)
	assert.Contains(t, fields["guardian_phone"], "Ensure this field has no more than 15 characters.")
}

func TestApplyAcceptsIncomeAsNumber(t *testing.T) {
	payload := validCreatePayload()
	payload["family_income"] = 80000

	s := NewStudentOnboardingSerializer()
	rec := &models.StudentOnboarding{}
	require.NoError(t, s.ApplyAt(rec, marshal(t, payload), false, referenceTime))

	assert.Equal(t, "80000.00", rec.FamilyIncome.StringFixed(2))
}

func TestApplyMissingRequiredFields(t *testing.T) {
	payload := validCreatePayload()
	delete(payload, "first_name")
	delete(payload, "email")
	delete(payload, "family_income")

	fields := applyErr(t, &models.StudentOnboarding{}, payload, false)

	assert.Contains(t, fields["first_name"], "This field is required.")
	assert.Contains(t, fields["email"], "This field is required.")
	assert.Contains(t, fields["family_income"], "This field is required.")
}

func TestApplyCollectsAllFieldFailures(t *testing.T) {
	payload := validCreatePayload()
	payload["email"] = "not-an-email"
	payload["mobile_number"] = "12345"
	payload["gender"] = "X"
	payload["date_of_birth"] = "15/06/2005"
	payload["number_of_siblings"] = 21

	fields := applyErr(t, &models.StudentOnboarding{}, payload, false)

	assert.Contains(t, fields["email"], "Invalid email format")
	assert.Contains(t, fields["mobile_number"], "Phone number must be entered in the format: +1234567890 or 1234567890")
	assert.Contains(t, fields["gender"], `"X" is not a valid choice.`)
	assert.Contains(t, fields["date_of_birth"], "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
	assert.Contains(t, fields["number_of_siblings"], "Ensure this value is less than or equal to 20.")
	assert.Len(t, fields, 5)
}

func TestApplyWrongTypes(t *testing.T) {
	payload := validCreatePayload()
	payload["first_name"] = 42
	payload["number_of_siblings"] = "two"
	payload["has_family_abroad"] = "yes"
	payload["family_income"] = true

	fields := applyErr(t, &models.StudentOnboarding{}, payload, false)

	assert.Contains(t, fields["first_name"], "Not a valid string.")
	assert.Contains(t, fields["number_of_siblings"], "A valid integer is required.")
	assert.Contains(t, fields["has_family_abroad"], "Must be a valid boolean.")
	assert.Contains(t, fields["family_income"], "A valid number is required.")
}

func TestApplyBlankAndNull(t *testing.T) {
	payload := validCreatePayload()
	payload["first_name"] = "   "
	payload["email"] = nil

	fields := applyErr(t, &models.StudentOnboarding{}, payload, false)

	assert.Contains(t, fields["first_name"], "This field may not be blank.")
	assert.Contains(t, fields["email"], "This field may not be null.")
}

func TestApplyAgeOutOfRange(t *testing.T) {
	payload := validCreatePayload()
	payload["date_of_birth"] = "2023-01-01"

	fields := applyErr(t, &models.StudentOnboarding{}, payload, false)
	assert.Contains(t, fields[apperrors.NonFieldErrors], "Age must be between 5 and 100 years")
}

func TestApplyNegativeIncome(t *testing.T) {
	payload := validCreatePayload()
	payload["family_income"] = "-100.00"

	fields := applyErr(t, &models.StudentOnboarding{}, payload, false)
	assert.Contains(t, fields["family_income"], "Family income cannot be negative")
	// Field-level failure suppresses the duplicate record-level report.
	assert.NotContains(t, fields, apperrors.NonFieldErrors)
}

func TestApplyIncomeDigitBudget(t *testing.T) {
	payload := validCreatePayload()
	payload["family_income"] = "100.123"

	fields := applyErr(t, &models.StudentOnboarding{}, payload, false)
	assert.Contains(t, fields["family_income"], "Ensure that there are no more than 2 decimal places.")
}

func TestApplyMalformedBody(t *testing.T) {
	s := NewStudentOnboardingSerializer()
	err := s.ApplyAt(&models.StudentOnboarding{}, []byte("{not json"), false, referenceTime)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestApplyReadOnlyFieldsIgnored(t *testing.T) {
	payload := validCreatePayload()
	payload["id"] = 999
	payload["created_at"] = "2020-01-01T00:00:00Z"

	s := NewStudentOnboardingSerializer()
	rec := &models.StudentOnboarding{}
	require.NoError(t, s.ApplyAt(rec, marshal(t, payload), false, referenceTime))

	assert.Zero(t, rec.ID)
	assert.True(t, rec.CreatedAt.IsZero())
}

func TestApplyPartialMergesSuppliedFieldsOnly(t *testing.T) {
	s := NewStudentOnboardingSerializer()
	rec := &models.StudentOnboarding{}
	require.NoError(t, s.ApplyAt(rec, marshal(t, validCreatePayload()), false, referenceTime))

	patch := map[string]any{
		"first_name":    "Johnny",
		"family_income": "80000.00",
	}
	require.NoError(t, s.ApplyAt(rec, marshal(t, patch), true, referenceTime))

	assert.Equal(t, "Johnny", rec.FirstName)
	assert.Equal(t, "80000.00", rec.FamilyIncome.StringFixed(2))
	// Everything else stays as loaded.
	assert.Equal(t, "Doe", rec.LastName)
	assert.Equal(t, "john.doe@example.com", rec.Email)
	assert.Equal(t, 2, rec.NumberOfSiblings)
}

func TestApplyPartialValidatesSuppliedFields(t *testing.T) {
	s := NewStudentOnboardingSerializer()
	rec := &models.StudentOnboarding{}
	require.NoError(t, s.ApplyAt(rec, marshal(t, validCreatePayload()), false, referenceTime))

	fields := applyErr(t, rec, map[string]any{"email": "broken"}, true)

	assert.Contains(t, fields["email"], "Invalid email format")
	assert.NotContains(t, fields, "first_name")
}

func TestApplyPartialRunsRecordChecksOnMergedRecord(t *testing.T) {
	s := NewStudentOnboardingSerializer()
	rec := &models.StudentOnboarding{}
	require.NoError(t, s.ApplyAt(rec, marshal(t, validCreatePayload()), false, referenceTime))

	// The patch itself is well-formed; only combined with the stored
	// date_of_birth does the age constraint fail.
	fields := applyErr(t, rec, map[string]any{"date_of_birth": "2024-01-01"}, true)
	assert.Contains(t, fields[apperrors.NonFieldErrors], "Age must be between 5 and 100 years")
}

func TestApplyOptionalFieldNullClears(t *testing.T) {
	s := NewStudentOnboardingSerializer()
	rec := &models.StudentOnboarding{}

	payload := validCreatePayload()
	payload["address_line_2"] = "Apt 4"
	require.NoError(t, s.ApplyAt(rec, marshal(t, payload), false, referenceTime))
	require.NotNil(t, rec.AddressLine2)
	assert.Equal(t, "Apt 4", *rec.AddressLine2)

	require.NoError(t, s.ApplyAt(rec, marshal(t, map[string]any{"address_line_2": nil}), true, referenceTime))
	assert.Nil(t, rec.AddressLine2)
}

func TestEncodeEmitsAllFields(t *testing.T) {
	s := NewStudentOnboardingSerializer()
	rec := &models.StudentOnboarding{}
	require.NoError(t, s.ApplyAt(rec, marshal(t, validCreatePayload()), false, referenceTime))
	rec.ID = 7
	rec.CreatedAt = referenceTime
	rec.UpdatedAt = referenceTime

	out := s.Encode(rec)

	assert.Equal(t, int64(7), out["id"])
	assert.Equal(t, "John", out["first_name"])
	assert.Equal(t, "2005-06-15", out["date_of_birth"])
	assert.Equal(t, "75000.00", out["family_income"])
	assert.Equal(t, nil, out["address_line_2"])
	assert.Equal(t, referenceTime.Format(time.RFC3339), out["created_at"])
	assert.Len(t, out, 28)
}

func TestEncodeReducedProjection(t *testing.T) {
	s := NewStudentOnboardingSerializer()
	rec := &models.StudentOnboarding{}
	require.NoError(t, s.ApplyAt(rec, marshal(t, validCreatePayload()), false, referenceTime))
	rec.ID = 7
	rec.CreatedAt = referenceTime

	out := s.EncodeReduced(rec)

	assert.Len(t, out, 5)
	assert.Equal(t, int64(7), out["id"])
	assert.Equal(t, "John", out["first_name"])
	assert.Equal(t, "Doe", out["last_name"])
	assert.Equal(t, "john.doe@example.com", out["email"])
	assert.Equal(t, referenceTime.Format(time.RFC3339), out["created_at"])
}
