package service

import (
	"testing"

	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_CompletedWashes(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	business := &model.Business{Name: "Acme Car Wash"}
	testDB.Create(business)

	testDB.Create(&model.Assignment{
		BusinessID:   business.ID,
		CarPlate:     "XYZ999",
		EmployeeName: "Sam",
		ServiceType:  "full wash",
		Status:       model.AssignmentStatusCompleted,
		PointsEarned: model.PointsPerWash,
	})
	testDB.Create(&model.Assignment{
		BusinessID: business.ID,
		CarPlate:   "XYZ999",
		Status:     model.AssignmentStatusWashing,
	})

	svc := NewReportService(repository.NewAssignmentRepository(testDB))

	f, err := svc.CompletedWashes(business.ID)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	// Header plus the single completed wash.
	require.Len(t, rows, 2)
	assert.Equal(t, "XYZ999", rows[1][1])
	assert.Equal(t, "Sam", rows[1][2])
}
