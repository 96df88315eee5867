package models

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// ReadConfigFile reads the config file v is set up to find and loads it as
// v's config layer. Cluster values keep the text written in the file:
// viper on its own turns image-version: 2.0 into the float 2.
func ReadConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	raw, err := os.ReadFile(v.ConfigFileUsed())
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	values, err := ConfigFileValues(raw)
	if err != nil {
		return err
	}
	normalized, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal config values: %w", err)
	}

	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(normalized)); err != nil {
		return fmt.Errorf("failed to load config values: %w", err)
	}
	return nil
}

// ConfigFileValues returns the cluster keys set in a YAML document. String
// fields hold the scalar exactly as written; empty keys are left out.
func ConfigFileValues(data []byte) (map[string]interface{}, error) {
	var present map[string]interface{}
	if err := yaml.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var cfg ClusterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	settings := cfg.settings()
	values := make(map[string]interface{}, len(present))
	for key, value := range present {
		if value == nil {
			continue
		}
		if setting, ok := settings[key]; ok {
			values[key] = setting
		}
	}
	return values, nil
}
