package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushq/onboarding-api/internal/app/models/dto"
	"github.com/campushq/onboarding-api/internal/app/serializers"
	"github.com/campushq/onboarding-api/internal/app/services"
	"github.com/campushq/onboarding-api/internal/middleware"
	"github.com/campushq/onboarding-api/internal/pkg/apperrors"
)

// StudentOnboardingController handles the student onboarding endpoints
type StudentOnboardingController struct {
	service    services.StudentOnboardingService
	serializer *serializers.StudentOnboardingSerializer
}

// NewStudentOnboardingController creates a new StudentOnboardingController
func NewStudentOnboardingController(
	service services.StudentOnboardingService,
	serializer *serializers.StudentOnboardingSerializer,
) *StudentOnboardingController {
	return &StudentOnboardingController{
		service:    service,
		serializer: serializer,
	}
}

// List handles listing all onboarding records
// @Summary List student onboarding records
// @Description Returns all records as reduced projections, newest first
// @Tags student-onboarding
// @Produce json
// @Success 200 {array} object "Reduced records"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student-onboarding/ [get]
func (c *StudentOnboardingController) List(ctx *gin.Context) {
	records, err := c.service.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, c.serializer.EncodeReduced(rec))
	}

	ctx.JSON(http.StatusOK, out)
}

// Create handles creation of a new onboarding record
// @Summary Create a student onboarding record
// @Description Validates the payload and persists a new record
// @Tags student-onboarding
// @Accept json
// @Produce json
// @Success 201 {object} dto.CreateResponse "Record created"
// @Failure 400 {object} map[string][]string "Field validation errors"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student-onboarding/create/ [post]
func (c *StudentOnboardingController) Create(ctx *gin.Context) {
	payload, err := readBody(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rec, err := c.service.Create(ctx, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateResponse{
		Message:   "Student onboarding created successfully",
		StudentID: rec.ID,
		Data:      c.serializer.Encode(rec),
	})
}

// Retrieve handles fetching one onboarding record by id
// @Summary Get a student onboarding record
// @Description Retrieves the full record for the given id
// @Tags student-onboarding
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} object "Full record"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /student-onboarding/{id}/ [get]
func (c *StudentOnboardingController) Retrieve(ctx *gin.Context) {
	id, ok := recordID(ctx)
	if !ok {
		return
	}

	rec, err := c.service.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, c.serializer.Encode(rec))
}

// Update handles full or partial update of an onboarding record
// @Summary Update a student onboarding record
// @Description Validates the supplied fields and merges them into the record
// @Tags student-onboarding
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} dto.UpdateResponse "Record updated"
// @Failure 400 {object} map[string][]string "Field validation errors"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /student-onboarding/{id}/update/ [put]
func (c *StudentOnboardingController) Update(ctx *gin.Context) {
	id, ok := recordID(ctx)
	if !ok {
		return
	}

	payload, err := readBody(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Only supplied fields are validated and merged; the record-level
	// checks still run against the merged record inside the serializer.
	rec, err := c.service.Update(ctx, id, payload, true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateResponse{
		Message: "Student onboarding updated successfully",
		Data:    c.serializer.Encode(rec),
	})
}

// recordID parses the id path parameter. A non-numeric id cannot match any
// record, so it answers 404 rather than 400.
func recordID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.ErrRecordNotFound)
		return 0, false
	}
	return id, true
}

// readBody reads the raw request body for the serialization contract.
func readBody(ctx *gin.Context) ([]byte, error) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return nil, apperrors.ErrBadRequest
	}
	return payload, nil
}
