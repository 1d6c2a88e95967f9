package status

import (
	"context"
	"time"

	"brother-bridge/core/storage"
	"brother-bridge/feature/machines"
	"brother-bridge/feature/status/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckResult is the outcome of one health check.
type CheckResult struct {
	Status string `json:"status"` // ok, error or disabled
	Error  string `json:"error,omitempty"`
}

// MachineResult is the reachability of one registered printer.
type MachineResult struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Target string `json:"target"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report combines all health checks.
type Report struct {
	Status   string          `json:"status"` // ok or degraded
	Database CheckResult     `json:"database"`
	Storage  CheckResult     `json:"storage"`
	Machines []MachineResult `json:"machines"`
}

// Service handles health checks.
type Service struct {
	db             *gorm.DB
	client         storage.Client
	bucket         string
	storageEnabled bool
	machines       *machines.Service
	logger         *zap.Logger
	discover       checks.DiscoverFunc
}

// NewService creates a new status service.
func NewService(db *gorm.DB, client storage.Client, bucket string, storageEnabled bool,
	machineSvc *machines.Service, logger *zap.Logger) *Service {
	return &Service{
		db:             db,
		client:         client,
		bucket:         bucket,
		storageEnabled: storageEnabled,
		machines:       machineSvc,
		logger:         logger,
	}
}

// Check runs every health check and aggregates the outcome. The report
// itself never errors; individual failures degrade the overall status.
func (s *Service) Check(ctx context.Context) *Report {
	report := &Report{Status: "ok"}

	report.Database = s.run(func() error { return checks.Database(ctx, s.db) })
	if report.Database.Status == "error" {
		report.Status = "degraded"
	}

	if s.storageEnabled {
		report.Storage = s.run(func() error { return checks.Storage(ctx, s.client, s.bucket) })
		if report.Storage.Status == "error" {
			report.Status = "degraded"
		}
	} else {
		report.Storage = CheckResult{Status: "disabled"}
	}

	report.Machines = s.checkMachines(ctx)
	for _, m := range report.Machines {
		if m.Status == "error" {
			report.Status = "degraded"
			break
		}
	}

	return report
}

func (s *Service) run(check func() error) CheckResult {
	if err := check(); err != nil {
		return CheckResult{Status: "error", Error: err.Error()}
	}
	return CheckResult{Status: "ok"}
}

func (s *Service) checkMachines(ctx context.Context) []MachineResult {
	list, err := s.machines.List(ctx)
	if err != nil {
		s.logger.Error("failed to list machines for status check", zap.Error(err))
		return nil
	}

	results := make([]MachineResult, 0, len(list))
	for _, m := range list {
		result := MachineResult{ID: m.ID, Slug: m.Slug, Target: m.Target, Status: "ok"}

		if !m.Enabled {
			result.Status = "disabled"
			results = append(results, result)
			continue
		}

		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := checks.Printer(checkCtx, m.Target, s.discover); err != nil {
			result.Status = "error"
			result.Error = err.Error()
		}
		cancel()

		results = append(results, result)
	}
	return results
}
