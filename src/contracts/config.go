package contracts

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// ReferenceAPIURL enables the best-effort remote spec lookup when set.
	ReferenceAPIURL     string        `envconfig:"REFERENCE_API_URL" default:""`
	ReferenceAPIKey     string        `envconfig:"REFERENCE_API_KEY" default:"demo"`
	ReferenceAPITimeout time.Duration `envconfig:"REFERENCE_API_TIMEOUT" default:"10s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
