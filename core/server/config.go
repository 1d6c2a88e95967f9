package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8013"`
	// ApiKey is the secret key required to access the API.
	// When empty, the API is open (development mode).
	ApiKey string `mapstructure:"api_key" default:""`
}

// Addr returns the listen address for the Fiber app.
func (c Config) Addr() string {
	return ":" + c.Port
}
