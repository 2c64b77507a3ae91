package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type JSONConfig struct {
	Snapshot string
}

func (c JSONConfig) Validate() error {
	if c.Snapshot == "" {
		return fmt.Errorf("missing snapshot file path")
	}
	return nil
}

func LoadJSONConfigFromCLI() JSONConfig {
	return JSONConfig{
		Snapshot: viper.GetString("snapshot"),
	}
}
