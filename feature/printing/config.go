package printing

// Config holds configuration for print job handling.
type Config struct {
	// TimeoutSeconds bounds one complete send to a printer.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Archive enables copying rendered labels to object storage.
	Archive bool `mapstructure:"archive" default:"false"`
	// JobHistory is the number of jobs returned by the listing endpoint.
	JobHistory int `mapstructure:"job_history" default:"50"`
}
