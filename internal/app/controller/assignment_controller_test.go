package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/internal/app/service"
	"github.com/jalvarez/washpoint-backend/internal/db"
	"github.com/jalvarez/washpoint-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setBusinessIDInContext(c *gin.Context, businessID uint) {
	c.Set(middleware.BusinessIDKey, businessID)
}

func setupAssignmentControllerTest(t *testing.T) (*AssignmentController, *gin.Engine, *gorm.DB, *model.Business, *model.Car) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	assignmentRepo := repository.NewAssignmentRepository(testDB)
	carRepo := repository.NewCarRepository(testDB)
	assignmentService := service.NewAssignmentService(assignmentRepo, carRepo, nil)
	assignmentController := NewAssignmentController(assignmentService)

	business := &model.Business{Name: "Acme Car Wash"}
	testDB.Create(business)

	car := &model.Car{BusinessID: business.ID, Plate: "XYZ999", CarType: "sedan"}
	testDB.Create(car)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return assignmentController, router, testDB, business, car
}

func TestAssignmentController_Create_Success(t *testing.T) {
	controller, router, testDB, business, car := setupAssignmentControllerTest(t)
	defer db.CleanupTestDB(testDB)

	router.POST("/assignments", func(c *gin.Context) {
		setBusinessIDInContext(c, business.ID)
		controller.Create(c)
	})

	payload, _ := json.Marshal(CreateAssignmentRequest{
		CarPlate:     car.Plate,
		EmployeeName: "Sam",
		ServiceType:  "full wash",
	})
	req := httptest.NewRequest(http.MethodPost, "/assignments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var assignment model.Assignment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assignment))
	assert.Equal(t, model.AssignmentStatusWashing, assignment.Status)
	assert.Equal(t, business.ID, assignment.BusinessID)
}

func TestAssignmentController_Create_MissingFields(t *testing.T) {
	controller, router, testDB, business, _ := setupAssignmentControllerTest(t)
	defer db.CleanupTestDB(testDB)

	router.POST("/assignments", func(c *gin.Context) {
		setBusinessIDInContext(c, business.ID)
		controller.Create(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/assignments", bytes.NewReader([]byte(`{"car_plate":"XYZ999"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}

func TestAssignmentController_Create_UnknownCar(t *testing.T) {
	controller, router, testDB, business, _ := setupAssignmentControllerTest(t)
	defer db.CleanupTestDB(testDB)

	router.POST("/assignments", func(c *gin.Context) {
		setBusinessIDInContext(c, business.ID)
		controller.Create(c)
	})

	payload, _ := json.Marshal(CreateAssignmentRequest{
		CarPlate:     "GHOST1",
		EmployeeName: "Sam",
		ServiceType:  "full wash",
	})
	req := httptest.NewRequest(http.MethodPost, "/assignments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CAR_NOT_FOUND")
}

func TestAssignmentController_Complete_InvalidID(t *testing.T) {
	controller, router, testDB, business, _ := setupAssignmentControllerTest(t)
	defer db.CleanupTestDB(testDB)

	router.PUT("/assignments/:id/complete", func(c *gin.Context) {
		setBusinessIDInContext(c, business.ID)
		controller.Complete(c)
	})

	req := httptest.NewRequest(http.MethodPut, "/assignments/abc/complete", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_ID")
}

func TestAssignmentController_Complete_Success(t *testing.T) {
	controller, router, testDB, business, car := setupAssignmentControllerTest(t)
	defer db.CleanupTestDB(testDB)

	assignmentRepo := repository.NewAssignmentRepository(testDB)
	assignment := &model.Assignment{
		BusinessID: business.ID,
		CarPlate:   car.Plate,
		Status:     model.AssignmentStatusWashing,
	}
	require.NoError(t, assignmentRepo.Create(assignment))

	router.PUT("/assignments/:id/complete", func(c *gin.Context) {
		setBusinessIDInContext(c, business.ID)
		controller.Complete(c)
	})

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/assignments/%d/complete", assignment.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Car
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 1, updated.LoyaltyPoints)
}
