package scheduler

import (
	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// AuditScheduler runs the nightly consistency sweep over the assignment
// ledger: washes stuck in progress, and loyalty balances that no longer
// match the sum of completed washes.
type AuditScheduler struct {
	cron           *cron.Cron
	assignmentRepo repository.AssignmentRepository
	carRepo        repository.CarRepository
}

func NewAuditScheduler(assignmentRepo repository.AssignmentRepository, carRepo repository.CarRepository) *AuditScheduler {
	return &AuditScheduler{
		cron:           cron.New(),
		assignmentRepo: assignmentRepo,
		carRepo:        carRepo,
	}
}

// Start schedules the audit for 3 AM every night.
func (s *AuditScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", s.RunAudit)
	if err != nil {
		logger.Error("Failed to add cron job for ledger audit", err)
		return err
	}

	s.cron.Start()
	logger.Info("Ledger audit scheduler started (daily at 3:00 AM)", nil)
	return nil
}

// RunAudit executes one sweep. Exposed so operators can trigger it outside
// the schedule.
func (s *AuditScheduler) RunAudit() {
	logger.Info("Starting nightly ledger audit", nil)

	stale, err := s.assignmentRepo.FindStaleWashing(0)
	if err != nil {
		logger.Error("Ledger audit failed to query stale assignments", err)
	} else {
		for _, a := range stale {
			logger.Warn("Assignment stuck in Washing for over 24 hours", map[string]interface{}{
				"assignment_id": a.ID,
				"business_id":   a.BusinessID,
				"car_plate":     a.CarPlate,
				"created_at":    a.CreatedAt,
			})
		}
	}

	drift, err := s.carRepo.FindLoyaltyDrift()
	if err != nil {
		logger.Error("Ledger audit failed to check loyalty balances", err)
	} else {
		for _, d := range drift {
			logger.Warn("Loyalty balance does not match completed washes", map[string]interface{}{
				"business_id":    d.BusinessID,
				"plate":          d.Plate,
				"loyalty_points": d.LoyaltyPoints,
				"earned_total":   d.EarnedTotal,
			})
		}
	}

	logger.Info("Nightly ledger audit finished", map[string]interface{}{
		"stale_assignments": len(stale),
		"drifted_cars":      len(drift),
	})
}

// Stop halts the scheduler.
func (s *AuditScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Ledger audit scheduler stopped", nil)
}
