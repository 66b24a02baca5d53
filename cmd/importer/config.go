package importer

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// DefaultAccount is used when no --account flag is given, so a single
	// account setup never has to pass it.
	DefaultAccount string `envconfig:"IMPORT_ACCOUNT" default:"default"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
