package service

import (
	"testing"

	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCarServiceTest(t *testing.T) (*gorm.DB, CarService, *model.Business) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	carRepo := repository.NewCarRepository(testDB)
	assignmentRepo := repository.NewAssignmentRepository(testDB)
	svc := NewCarService(carRepo, assignmentRepo)

	business := &model.Business{Name: "Acme Car Wash"}
	testDB.Create(business)

	return testDB, svc, business
}

func TestCarService_Register(t *testing.T) {
	testDB, svc, business := setupCarServiceTest(t)
	defer db.CleanupTestDB(testDB)

	car, err := svc.Register(business.ID, "xyz999", "sedan", "Jordan Lee", "555-0100")
	require.NoError(t, err)
	assert.NotZero(t, car.ID)
	assert.Equal(t, "XYZ999", car.Plate)
	assert.Equal(t, 0, car.LoyaltyPoints)
}

func TestCarService_Register_Idempotent(t *testing.T) {
	testDB, svc, business := setupCarServiceTest(t)
	defer db.CleanupTestDB(testDB)

	first, err := svc.Register(business.ID, "XYZ999", "sedan", "Jordan Lee", "")
	require.NoError(t, err)

	// Same plate in a different case must hit the same record, and the
	// second registration must not overwrite anything.
	second, err := svc.Register(business.ID, " xyz999 ", "truck", "Someone Else", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "sedan", second.CarType)
	assert.Equal(t, "Jordan Lee", second.OwnerName)
}

func TestCarService_Get_CaseInsensitive(t *testing.T) {
	testDB, svc, business := setupCarServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.Register(business.ID, "XYZ999", "sedan", "", "")
	require.NoError(t, err)

	car, err := svc.Get(business.ID, "xyz999")
	require.NoError(t, err)
	assert.Equal(t, "XYZ999", car.Plate)
}

func TestCarService_Get_NotFound(t *testing.T) {
	testDB, svc, business := setupCarServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.Get(business.ID, "GHOST1")
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestCarService_Get_OtherTenantInvisible(t *testing.T) {
	testDB, svc, business := setupCarServiceTest(t)
	defer db.CleanupTestDB(testDB)

	other := &model.Business{Name: "Rival Wash"}
	testDB.Create(other)

	_, err := svc.Register(business.ID, "XYZ999", "sedan", "", "")
	require.NoError(t, err)

	_, err = svc.Get(other.ID, "XYZ999")
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestCarService_History_UnknownCar(t *testing.T) {
	testDB, svc, business := setupCarServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.History(business.ID, "GHOST1")
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestCarService_History_OnlyCompleted(t *testing.T) {
	testDB, svc, business := setupCarServiceTest(t)
	defer db.CleanupTestDB(testDB)

	car, err := svc.Register(business.ID, "XYZ999", "sedan", "", "")
	require.NoError(t, err)

	testDB.Create(&model.Assignment{
		BusinessID: business.ID,
		CarPlate:   car.Plate,
		Status:     model.AssignmentStatusWashing,
	})
	testDB.Create(&model.Assignment{
		BusinessID:   business.ID,
		CarPlate:     car.Plate,
		Status:       model.AssignmentStatusCompleted,
		PointsEarned: model.PointsPerWash,
	})

	history, err := svc.History(business.ID, "xyz999")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.AssignmentStatusCompleted, history[0].Status)
}

func TestCarService_History_NewestCreatedFirst(t *testing.T) {
	testDB, svc, business := setupCarServiceTest(t)
	defer db.CleanupTestDB(testDB)

	car, err := svc.Register(business.ID, "XYZ999", "sedan", "", "")
	require.NoError(t, err)

	assignmentRepo := repository.NewAssignmentRepository(testDB)
	assignmentSvc := NewAssignmentService(assignmentRepo, repository.NewCarRepository(testDB), nil)

	first, err := assignmentSvc.Create(business.ID, car.Plate, "Sam", "quick wash")
	require.NoError(t, err)
	second, err := assignmentSvc.Create(business.ID, car.Plate, "Sam", "full wash")
	require.NoError(t, err)

	// Finish them in reverse order of creation.
	_, err = assignmentSvc.Complete(business.ID, second.ID)
	require.NoError(t, err)
	_, err = assignmentSvc.Complete(business.ID, first.ID)
	require.NoError(t, err)

	history, err := svc.History(business.ID, car.Plate)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
}
