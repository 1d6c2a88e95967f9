package models

import "time"

// Machine is one registered label printer instance. The settings columns
// map 1:1 onto the printer-control conversion options; nothing is
// reinterpreted between the registry and the device.
type Machine struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name" json:"name"`
	Slug        string    `gorm:"column:slug;uniqueIndex" json:"slug"`
	Driver      string    `gorm:"column:driver" json:"driver"`
	Model       string    `gorm:"column:model" json:"model"`
	Media       string    `gorm:"column:media" json:"media"`
	Target      string    `gorm:"column:target" json:"target"`
	Rotation    int       `gorm:"column:rotation" json:"rotation"`
	AutoCut     bool      `gorm:"column:auto_cut" json:"auto_cut"`
	HighQuality bool      `gorm:"column:high_quality" json:"high_quality"`
	Compress    bool      `gorm:"column:compress" json:"compress"`
	Threshold   int       `gorm:"column:threshold" json:"threshold"`
	Enabled     bool      `gorm:"column:enabled" json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (Machine) TableName() string {
	return "machines"
}

// MachineRequest is the create/update payload. Settings values arrive
// loosely typed (the host platform submits everything as strings or JSON
// primitives), keyed by the schema keys.
type MachineRequest struct {
	Name     string         `json:"name"`
	Slug     string         `json:"slug"`
	Settings map[string]any `json:"settings"`
}
