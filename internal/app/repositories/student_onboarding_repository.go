package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/campushq/onboarding-api/internal/app/models"
	"github.com/campushq/onboarding-api/internal/db"
	"github.com/campushq/onboarding-api/internal/pkg/apperrors"
	"github.com/campushq/onboarding-api/internal/pkg/dberrors"
)

// emailUniqueConstraint is the unique constraint name on student_onboarding.email.
const emailUniqueConstraint = "student_onboarding_email_key"

// StudentOnboardingRepository is the persistence boundary for onboarding
// records. The store owns the canonical record; callers hold transient,
// request-scoped copies.
type StudentOnboardingRepository interface {
	// Save persists rec: insert when rec.ID is zero, update otherwise.
	// The record is fully validated before any write, whatever the caller.
	Save(ctx context.Context, rec *models.StudentOnboarding) error
	FindByID(ctx context.Context, id int64) (*models.StudentOnboarding, error)
	// ListRecent returns all records, newest first by creation time.
	ListRecent(ctx context.Context) ([]*models.StudentOnboarding, error)
	// ExistsByEmail reports whether a record other than excludeID already
	// uses email. Pass zero to check against all records.
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

// studentOnboardingRepository is the pgx implementation.
type studentOnboardingRepository struct {
	db *pgxpool.Pool
}

// NewStudentOnboardingRepository creates a new student onboarding repository
func NewStudentOnboardingRepository(pool *pgxpool.Pool) StudentOnboardingRepository {
	return &studentOnboardingRepository{db: pool}
}

const recordColumns = `
	id, first_name, last_name, date_of_birth, gender, email, mobile_number,
	address_line_1, address_line_2, city, state, country, zipcode, citizenship,
	guardian_name, guardian_relationship, guardian_phone, guardian_email,
	father_name, father_profession, mother_name, mother_profession,
	family_income::text, number_of_siblings, has_family_abroad, countries_abroad,
	created_at, updated_at`

// Save validates and persists rec. Validation runs here unconditionally so
// a caller bypassing the serialization layer still cannot store an invalid
// record. A failed write leaves no partial row visible.
func (r *studentOnboardingRepository) Save(ctx context.Context, rec *models.StudentOnboarding) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if rec.ID == 0 {
		return r.insert(ctx, rec)
	}
	return r.update(ctx, rec)
}

func (r *studentOnboardingRepository) insert(ctx context.Context, rec *models.StudentOnboarding) error {
	query := `
		INSERT INTO student_onboarding (
			first_name, last_name, date_of_birth, gender, email, mobile_number,
			address_line_1, address_line_2, city, state, country, zipcode, citizenship,
			guardian_name, guardian_relationship, guardian_phone, guardian_email,
			father_name, father_profession, mother_name, mother_profession,
			family_income, number_of_siblings, has_family_abroad, countries_abroad
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, r.writeArgs(rec)...).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, emailUniqueConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error inserting student onboarding record: %w", err)
	}

	return nil
}

// update refreshes every mutable column and updated_at inside one
// transaction, locking the row first. created_at is never touched.
func (r *studentOnboardingRepository) update(ctx context.Context, rec *models.StudentOnboarding) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var lockedID int64
		err := tx.QueryRow(ctx, `SELECT id FROM student_onboarding WHERE id = $1 FOR UPDATE`, rec.ID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrRecordNotFound
			}
			return fmt.Errorf("error locking student onboarding record: %w", err)
		}

		query := `
			UPDATE student_onboarding SET
				first_name = $1, last_name = $2, date_of_birth = $3, gender = $4,
				email = $5, mobile_number = $6, address_line_1 = $7, address_line_2 = $8,
				city = $9, state = $10, country = $11, zipcode = $12, citizenship = $13,
				guardian_name = $14, guardian_relationship = $15, guardian_phone = $16,
				guardian_email = $17, father_name = $18, father_profession = $19,
				mother_name = $20, mother_profession = $21, family_income = $22,
				number_of_siblings = $23, has_family_abroad = $24, countries_abroad = $25,
				updated_at = now()
			WHERE id = $26
			RETURNING updated_at
		`

		args := append(r.writeArgs(rec), rec.ID)
		if err := tx.QueryRow(ctx, query, args...).Scan(&rec.UpdatedAt); err != nil {
			if dberrors.IsDuplicateConstraintError(err, emailUniqueConstraint) {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error updating student onboarding record: %w", err)
		}

		return nil
	})
}

// writeArgs returns the mutable column values in persisted column order.
func (r *studentOnboardingRepository) writeArgs(rec *models.StudentOnboarding) []any {
	return []any{
		rec.FirstName, rec.LastName, rec.DateOfBirth, rec.Gender, rec.Email, rec.MobileNumber,
		rec.AddressLine1, rec.AddressLine2, rec.City, rec.State, rec.Country, rec.Zipcode, rec.Citizenship,
		rec.GuardianName, rec.GuardianRelationship, rec.GuardianPhone, rec.GuardianEmail,
		rec.FatherName, rec.FatherProfession, rec.MotherName, rec.MotherProfession,
		rec.FamilyIncome.StringFixed(2), rec.NumberOfSiblings, rec.HasFamilyAbroad, rec.CountriesAbroad,
	}
}

// FindByID retrieves a record by ID
func (r *studentOnboardingRepository) FindByID(ctx context.Context, id int64) (*models.StudentOnboarding, error) {
	query := `SELECT` + recordColumns + `
		FROM student_onboarding
		WHERE id = $1
	`

	rec, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("error retrieving student onboarding record: %w", err)
	}

	return rec, nil
}

// ListRecent retrieves all records ordered newest first
func (r *studentOnboardingRepository) ListRecent(ctx context.Context) ([]*models.StudentOnboarding, error) {
	query := `SELECT` + recordColumns + `
		FROM student_onboarding
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing student onboarding records: %w", err)
	}
	defer rows.Close()

	var records []*models.StudentOnboarding
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ExistsByEmail checks the unique email invariant ahead of a write
func (r *studentOnboardingRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM student_onboarding WHERE email = $1 AND id <> $2)`,
		email, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// scanRecord scans one row in recordColumns order. family_income comes back
// as text and is parsed into a decimal.
func scanRecord(row pgx.Row) (*models.StudentOnboarding, error) {
	var rec models.StudentOnboarding
	var income string

	err := row.Scan(
		&rec.ID, &rec.FirstName, &rec.LastName, &rec.DateOfBirth, &rec.Gender, &rec.Email, &rec.MobileNumber,
		&rec.AddressLine1, &rec.AddressLine2, &rec.City, &rec.State, &rec.Country, &rec.Zipcode, &rec.Citizenship,
		&rec.GuardianName, &rec.GuardianRelationship, &rec.GuardianPhone, &rec.GuardianEmail,
		&rec.FatherName, &rec.FatherProfession, &rec.MotherName, &rec.MotherProfession,
		&income, &rec.NumberOfSiblings, &rec.HasFamilyAbroad, &rec.CountriesAbroad,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.FamilyIncome, err = decimal.NewFromString(income)
	if err != nil {
		return nil, fmt.Errorf("error parsing family income %q: %w", income, err)
	}

	return &rec, nil
}
