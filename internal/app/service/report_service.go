package service

import (
	"fmt"

	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type ReportService interface {
	CompletedWashes(businessID uint) (*excelize.File, error)
}

type reportService struct {
	assignmentRepo repository.AssignmentRepository
}

func NewReportService(assignmentRepo repository.AssignmentRepository) ReportService {
	return &reportService{assignmentRepo: assignmentRepo}
}

// CompletedWashes builds an XLSX workbook of the business's completed
// assignments, one row per wash, most recent first.
func (s *reportService) CompletedWashes(businessID uint) (*excelize.File, error) {
	assignments, err := s.assignmentRepo.FindCompletedByBusiness(businessID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"ID", "Plate", "Employee", "Service", "Points", "Completed At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write report header: %w", err)
		}
	}

	for row, a := range assignments {
		values := []interface{}{
			a.ID,
			a.CarPlate,
			a.EmployeeName,
			a.ServiceType,
			a.PointsEarned,
			a.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write report row: %w", err)
			}
		}
	}

	logger.Info("Wash report generated", map[string]interface{}{
		"business_id": businessID,
		"rows":        len(assignments),
	})
	return f, nil
}
