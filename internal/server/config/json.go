package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/nichedigital/leaddesk/internal/flagx"
	"github.com/nichedigital/leaddesk/internal/timex"
)

// JsonConfig is a DTO used only for JSON unmarshalling. timex.Duration lets
// the file express the shutdown timeout as "10s" or integer nanoseconds.
type JsonConfig struct {
	HTTPAddr          string         `json:"http_addr"`
	DatabaseDSN       string         `json:"database_dsn"`
	AdminUsername     string         `json:"admin_username"`
	AdminPassword     string         `json:"admin_password"`
	AdminPasswordHash string         `json:"admin_password_hash"`
	ShutdownTimeout   timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flags. Missing flag means no JSON is loaded. Empty fields in
// the file leave the current value untouched. Read or unmarshal failures
// panic; configuration is resolved once at startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.HTTPAddr != "" {
		cfg.HTTPAddr = jc.HTTPAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.AdminUsername != "" {
		cfg.AdminUsername = jc.AdminUsername
	}
	if jc.AdminPassword != "" {
		cfg.AdminPassword = jc.AdminPassword
	}
	if jc.AdminPasswordHash != "" {
		cfg.AdminPasswordHash = jc.AdminPasswordHash
	}
	if jc.ShutdownTimeout.Duration != 0 {
		cfg.ShutdownTimeout = time.Duration(jc.ShutdownTimeout.Duration)
	}
}
