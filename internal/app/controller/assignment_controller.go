package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jalvarez/washpoint-backend/internal/app/service"
	apperrors "github.com/jalvarez/washpoint-backend/internal/errors"
	"github.com/jalvarez/washpoint-backend/internal/middleware"
)

type AssignmentController struct {
	assignmentService service.AssignmentService
}

func NewAssignmentController(assignmentService service.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

type CreateAssignmentRequest struct {
	CarPlate     string `json:"car_plate" binding:"required"`
	EmployeeName string `json:"employee_name" binding:"required"`
	ServiceType  string `json:"service_type" binding:"required"`
}

// Create opens a wash assignment for a registered car
// POST /assignments
func (ctrl *AssignmentController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid assignment request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Car plate, employee name and service type are required")
		return
	}

	assignment, err := ctrl.assignmentService.Create(businessID, req.CarPlate, req.EmployeeName, req.ServiceType)
	if err != nil {
		if errors.Is(err, service.ErrCarNotFound) {
			apperrors.NotFound(c, apperrors.CarNotFound, "Car not found")
			return
		}
		log.Error("Failed to create assignment", err, map[string]interface{}{
			"plate": req.CarPlate,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create assignment")
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// List returns the business's open assignments
// GET /assignments
func (ctrl *AssignmentController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	assignments, err := ctrl.assignmentService.ListOpen(businessID)
	if err != nil {
		log.Error("Failed to list assignments", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list assignments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": assignments,
		"count":       len(assignments),
	})
}

// Complete finishes a wash and returns the car with its updated balance
// PUT /assignments/:id/complete
func (ctrl *AssignmentController) Complete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid assignment ID")
		return
	}

	car, err := ctrl.assignmentService.Complete(businessID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			apperrors.NotFound(c, apperrors.AssignmentNotFound, "Assignment not found")
		case errors.Is(err, service.ErrAssignmentForbidden):
			apperrors.Forbidden(c, "Assignment belongs to another business")
		case errors.Is(err, service.ErrAssignmentCompleted):
			apperrors.BadRequest(c, apperrors.AssignmentAlreadyCompleted, "Assignment is already completed")
		case errors.Is(err, service.ErrPointsCreditFailed):
			log.Error("Completion succeeded but credit failed", err, map[string]interface{}{
				"assignment_id": id,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDataIntegrity, "Wash recorded but loyalty credit failed")
		default:
			log.Error("Failed to complete assignment", err, map[string]interface{}{
				"assignment_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "complete assignment")
		}
		return
	}

	c.JSON(http.StatusOK, car)
}
