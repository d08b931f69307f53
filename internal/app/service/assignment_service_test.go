package service

import (
	"sync"
	"testing"

	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAssignmentServiceTest(t *testing.T) (*gorm.DB, AssignmentService, *model.Business, *model.Car) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	carRepo := repository.NewCarRepository(testDB)
	assignmentRepo := repository.NewAssignmentRepository(testDB)
	svc := NewAssignmentService(assignmentRepo, carRepo, nil)

	business := &model.Business{Name: "Acme Car Wash"}
	testDB.Create(business)

	car := &model.Car{BusinessID: business.ID, Plate: "XYZ999", CarType: "sedan"}
	testDB.Create(car)

	return testDB, svc, business, car
}

func TestAssignmentService_Create(t *testing.T) {
	testDB, svc, business, car := setupAssignmentServiceTest(t)
	defer db.CleanupTestDB(testDB)

	assignment, err := svc.Create(business.ID, "xyz999", "Sam", "full wash")
	require.NoError(t, err)
	assert.Equal(t, model.AssignmentStatusWashing, assignment.Status)
	assert.Equal(t, car.Plate, assignment.CarPlate)
	assert.Zero(t, assignment.PointsEarned)
}

func TestAssignmentService_Create_UnknownCar(t *testing.T) {
	testDB, svc, business, _ := setupAssignmentServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.Create(business.ID, "GHOST1", "Sam", "full wash")
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestAssignmentService_Complete(t *testing.T) {
	testDB, svc, business, car := setupAssignmentServiceTest(t)
	defer db.CleanupTestDB(testDB)

	assignment, err := svc.Create(business.ID, car.Plate, "Sam", "full wash")
	require.NoError(t, err)

	updated, err := svc.Complete(business.ID, assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.LoyaltyPoints)

	open, err := svc.ListOpen(business.ID)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestAssignmentService_Complete_NotFound(t *testing.T) {
	testDB, svc, business, _ := setupAssignmentServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.Complete(business.ID, 12345)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestAssignmentService_Complete_WrongBusiness(t *testing.T) {
	testDB, svc, business, car := setupAssignmentServiceTest(t)
	defer db.CleanupTestDB(testDB)

	other := &model.Business{Name: "Rival Wash"}
	testDB.Create(other)

	assignment, err := svc.Create(business.ID, car.Plate, "Sam", "full wash")
	require.NoError(t, err)

	_, err = svc.Complete(other.ID, assignment.ID)
	assert.ErrorIs(t, err, ErrAssignmentForbidden)

	// Untouched: still open, no points.
	found, err := svc.ListOpen(business.ID)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestAssignmentService_Complete_Twice(t *testing.T) {
	testDB, svc, business, car := setupAssignmentServiceTest(t)
	defer db.CleanupTestDB(testDB)

	assignment, err := svc.Create(business.ID, car.Plate, "Sam", "full wash")
	require.NoError(t, err)

	_, err = svc.Complete(business.ID, assignment.ID)
	require.NoError(t, err)

	_, err = svc.Complete(business.ID, assignment.ID)
	assert.ErrorIs(t, err, ErrAssignmentCompleted)

	carRepo := repository.NewCarRepository(testDB)
	found, err := carRepo.FindByPlate(business.ID, car.Plate)
	require.NoError(t, err)
	assert.Equal(t, 1, found.LoyaltyPoints)
}

func TestAssignmentService_Complete_Concurrent(t *testing.T) {
	testDB, svc, business, car := setupAssignmentServiceTest(t)
	defer db.CleanupTestDB(testDB)

	assignment, err := svc.Create(business.ID, car.Plate, "Sam", "full wash")
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Complete(business.ID, assignment.ID); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	// Exactly one winner, exactly one credit.
	assert.Equal(t, 1, len(successes))

	carRepo := repository.NewCarRepository(testDB)
	found, err := carRepo.FindByPlate(business.ID, car.Plate)
	require.NoError(t, err)
	assert.Equal(t, 1, found.LoyaltyPoints)
}
