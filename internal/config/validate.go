package config

import (
	"fmt"
	"os"
)

// Validate checks the config for errors.
func Validate(cfg *Config) error {
	if cfg.OutputDir != "" {
		info, err := os.Stat(cfg.OutputDir)
		if err != nil {
			return fmt.Errorf("config: output-dir %q not found", cfg.OutputDir)
		}
		if !info.IsDir() {
			return fmt.Errorf("config: output-dir %q is not a directory", cfg.OutputDir)
		}
	}
	return nil
}
