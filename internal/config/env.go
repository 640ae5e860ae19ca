package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings read from EVENTBOARD_* variables.
// Headless mode runs from Env alone; the desktop app uses it to seed
// preferences that the user has not set yet.
type Env struct {
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:9997"`
	Token      string        `env:"TOKEN"`
	UserID     string        `env:"USER_ID"`
	AdminID    string        `env:"ADMIN_ID" envDefault:"681c32fccc57fc42d81613c2"`
	Port       string        `env:"PORT" envDefault:"18080"`
	Refresh    time.Duration `env:"REFRESH_INTERVAL" envDefault:"30s"`
}

// LoadEnv parses the process environment into an Env.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Prefix: EnvPrefix}); err != nil {
		return Env{}, fmt.Errorf("%s: %w", ErrEnvConfig, err)
	}
	if e.Refresh <= 0 {
		e.Refresh = DefaultRefreshInterval
	}
	return e, nil
}
