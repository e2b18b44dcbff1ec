package config

import "os"

// Environment variables recognised by ApplyEnvOverrides.
const (
	EnvHome         = "CARBONTRACK_HOME"
	EnvConfig       = "CARBONTRACK_CONFIG"
	EnvStoreBackend = "CARBONTRACK_STORE_BACKEND"
	EnvDataDir      = "CARBONTRACK_DATA_DIR"
	EnvStoreKey     = "CARBONTRACK_STORE_KEY"
	EnvRedisAddr    = "CARBONTRACK_REDIS_ADDR"
	EnvRedisURL     = "CARBONTRACK_REDIS_URL"
	EnvLogLevel     = "CARBONTRACK_LOG_LEVEL"
	EnvLogFormat    = "CARBONTRACK_LOG_FORMAT"
	EnvOutputFormat = "CARBONTRACK_OUTPUT_FORMAT"
)

// ApplyEnvOverrides replaces settings with any non-empty CARBONTRACK_*
// environment variables.
func (c *Config) ApplyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvStoreBackend, &c.Store.Backend},
		{EnvDataDir, &c.Store.Directory},
		{EnvStoreKey, &c.Store.Key},
		{EnvRedisAddr, &c.Store.Redis.Addr},
		{EnvRedisURL, &c.Store.Redis.URL},
		{EnvLogLevel, &c.Logging.Level},
		{EnvLogFormat, &c.Logging.Format},
		{EnvOutputFormat, &c.Output.DefaultFormat},
	}

	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}
