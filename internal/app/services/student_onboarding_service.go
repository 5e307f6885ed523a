package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campushq/onboarding-api/internal/app/models"
	"github.com/campushq/onboarding-api/internal/app/repositories"
	"github.com/campushq/onboarding-api/internal/app/serializers"
	"github.com/campushq/onboarding-api/internal/pkg/apperrors"
)

// duplicateEmailMessage is the field error reported for a duplicate email,
// whether caught by the pre-check or by the unique constraint itself.
const duplicateEmailMessage = "student onboarding with this email already exists."

// StudentOnboardingService orchestrates the serialization contract and the
// repository for the CRUD operations.
type StudentOnboardingService interface {
	List(ctx context.Context) ([]*models.StudentOnboarding, error)
	Create(ctx context.Context, payload []byte) (*models.StudentOnboarding, error)
	Get(ctx context.Context, id int64) (*models.StudentOnboarding, error)
	Update(ctx context.Context, id int64, payload []byte, partial bool) (*models.StudentOnboarding, error)
}

type studentOnboardingService struct {
	repo       repositories.StudentOnboardingRepository
	serializer *serializers.StudentOnboardingSerializer
	logger     zerolog.Logger
}

// NewStudentOnboardingService creates a new student onboarding service instance
func NewStudentOnboardingService(
	repo repositories.StudentOnboardingRepository,
	serializer *serializers.StudentOnboardingSerializer,
	logger zerolog.Logger,
) StudentOnboardingService {
	return &studentOnboardingService{
		repo:       repo,
		serializer: serializer,
		logger:     logger,
	}
}

// List returns all records, newest first.
func (s *studentOnboardingService) List(ctx context.Context) ([]*models.StudentOnboarding, error) {
	records, err := s.repo.ListRecent(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing student onboarding records: %w", err)
	}
	return records, nil
}

// Create validates payload, enforces email uniqueness and persists a new record.
func (s *studentOnboardingService) Create(ctx context.Context, payload []byte) (*models.StudentOnboarding, error) {
	rec := &models.StudentOnboarding{}
	if err := s.serializer.Apply(rec, payload, false); err != nil {
		return nil, err
	}

	if err := s.checkEmailUnique(ctx, rec.Email, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, translateSaveError(err)
	}

	s.logger.Info().Int64("id", rec.ID).Str("student", rec.String()).Msg("Student onboarding record created")
	return rec, nil
}

// Get retrieves a single record by id.
func (s *studentOnboardingService) Get(ctx context.Context, id int64) (*models.StudentOnboarding, error) {
	return s.repo.FindByID(ctx, id)
}

// Update loads the record, merges the payload into it (all fields for a
// full update, supplied fields only for a partial one) and persists the
// merged result.
func (s *studentOnboardingService) Update(ctx context.Context, id int64, payload []byte, partial bool) (*models.StudentOnboarding, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.serializer.Apply(rec, payload, partial); err != nil {
		return nil, err
	}

	if err := s.checkEmailUnique(ctx, rec.Email, rec.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, translateSaveError(err)
	}

	s.logger.Info().Int64("id", rec.ID).Msg("Student onboarding record updated")
	return rec, nil
}

// checkEmailUnique surfaces a duplicate email as a field error on "email".
func (s *studentOnboardingService) checkEmailUnique(ctx context.Context, email string, excludeID int64) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("error checking email uniqueness: %w", err)
	}
	if exists {
		return apperrors.NewValidationError().Add("email", duplicateEmailMessage).ErrOrNil()
	}
	return nil
}

// translateSaveError converts the unique-constraint backstop into the same
// field error the pre-check produces. Two concurrent creates with one email
// both pass the pre-check; only one survives the constraint.
func translateSaveError(err error) error {
	if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return apperrors.NewValidationError().Add("email", duplicateEmailMessage).ErrOrNil()
	}
	return err
}
