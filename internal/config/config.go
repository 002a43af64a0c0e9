// Package config provides centralized configuration management using viper.
//
// Precedence (highest first): command-line flags, DNA_* environment
// variables, .dna/config.yaml, built-in defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var v *viper.Viper

// Initialize sets up the viper instance with defaults, environment
// bindings, and config file discovery. Call once during CLI startup.
func Initialize() error {
	v = viper.New()

	setDefaults()

	v.SetEnvPrefix("DNA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".dna")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	return nil
}

func setDefaults() {
	v.SetDefault("json", false)
	v.SetDefault("quiet", false)
	v.SetDefault("verbose", false)
	v.SetDefault("constitution-dir", "constitution")
	v.SetDefault("project-dir", "dna")
	v.SetDefault("frontier-top", 10)
	v.SetDefault("editor", "")
}

// GetString returns a string config value. Safe to call before Initialize.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool returns a boolean config value. Safe to call before Initialize.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt returns an integer config value. Safe to call before Initialize.
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetDuration returns a duration config value. Safe to call before Initialize.
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// GetStringSlice returns a string slice config value. Safe to call before
// Initialize.
func GetStringSlice(key string) []string {
	if v == nil {
		return nil
	}
	return v.GetStringSlice(key)
}

// Set overrides a config value, typically from a parsed command-line flag.
func Set(key string, value interface{}) {
	if v == nil {
		return
	}
	v.Set(key, value)
}

// AllSettings returns the merged configuration for debugging.
func AllSettings() map[string]interface{} {
	if v == nil {
		return nil
	}
	return v.AllSettings()
}
