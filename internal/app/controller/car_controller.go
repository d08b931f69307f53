package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jalvarez/washpoint-backend/internal/app/service"
	apperrors "github.com/jalvarez/washpoint-backend/internal/errors"
	"github.com/jalvarez/washpoint-backend/internal/middleware"
)

type CarController struct {
	carService service.CarService
}

func NewCarController(carService service.CarService) *CarController {
	return &CarController{
		carService: carService,
	}
}

type RegisterCarRequest struct {
	Plate      string `json:"plate" binding:"required"`
	CarType    string `json:"car_type"`
	OwnerName  string `json:"owner_name"`
	OwnerPhone string `json:"owner_phone"`
}

// Register registers a car, or returns the existing one for the plate
// POST /cars
func (ctrl *CarController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req RegisterCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid car registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Plate is required")
		return
	}

	car, err := ctrl.carService.Register(businessID, req.Plate, req.CarType, req.OwnerName, req.OwnerPhone)
	if err != nil {
		log.Error("Car registration failed", err, map[string]interface{}{
			"plate": req.Plate,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register car")
		return
	}

	c.JSON(http.StatusCreated, car)
}

// List returns the business's registered cars
// GET /cars
func (ctrl *CarController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	cars, err := ctrl.carService.List(businessID)
	if err != nil {
		log.Error("Failed to list cars", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list cars")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cars":  cars,
		"count": len(cars),
	})
}

// Get looks a car up by plate, case-insensitively
// GET /cars/:plate
func (ctrl *CarController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	plate := c.Param("plate")
	car, err := ctrl.carService.Get(businessID, plate)
	if err != nil {
		if errors.Is(err, service.ErrCarNotFound) {
			apperrors.NotFound(c, apperrors.CarNotFound, "Car not found")
			return
		}
		log.Error("Failed to get car", err, map[string]interface{}{
			"plate": plate,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get car")
		return
	}

	c.JSON(http.StatusOK, car)
}

// History returns the car's completed washes, newest first
// GET /cars/:plate/history
func (ctrl *CarController) History(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	plate := c.Param("plate")
	assignments, err := ctrl.carService.History(businessID, plate)
	if err != nil {
		if errors.Is(err, service.ErrCarNotFound) {
			apperrors.NotFound(c, apperrors.CarNotFound, "Car not found")
			return
		}
		log.Error("Failed to get wash history", err, map[string]interface{}{
			"plate": plate,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "wash history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": assignments,
		"count":       len(assignments),
	})
}
