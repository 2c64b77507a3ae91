package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/minichain-network/minichain/internal/chain"
)

type ShellConfig struct {
	Difficulty       uint
	MaxAttempts      uint64
	EnablePrometheus bool
	PrometheusAddr   string
}

func (c ShellConfig) Validate() error {
	if c.Difficulty > chain.MaxDifficulty {
		return fmt.Errorf("difficulty %d exceeds the digest length (%d hex characters)", c.Difficulty, chain.MaxDifficulty)
	}
	if c.EnablePrometheus && c.PrometheusAddr == "" {
		return fmt.Errorf("missing Prometheus listen address")
	}
	return nil
}

func LoadShellConfigFromCLI() ShellConfig {
	return ShellConfig{
		Difficulty:       viper.GetUint("difficulty"),
		MaxAttempts:      viper.GetUint64("max-attempts"),
		EnablePrometheus: viper.GetBool("enable-prometheus"),
		PrometheusAddr:   viper.GetString("prometheus-addr"),
	}
}
