package models

import "time"

// Job statuses. A job moves queued -> printing -> done/failed.
const (
	StatusQueued   = "queued"
	StatusPrinting = "printing"
	StatusDone     = "done"
	StatusFailed   = "failed"
)

// PrintJob records one print attempt. Error carries the printer-control
// error text verbatim; ArtifactKey points at the archived label image in
// object storage when archiving is enabled.
type PrintJob struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	MachineID   string    `gorm:"column:machine_id;index" json:"machine_id"`
	Status      string    `gorm:"column:status" json:"status"`
	Error       string    `gorm:"column:error" json:"error,omitempty"`
	ArtifactKey string    `gorm:"column:artifact_key" json:"artifact_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (PrintJob) TableName() string {
	return "print_jobs"
}
