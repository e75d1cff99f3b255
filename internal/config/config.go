/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type GeneralConfig struct {
	AutosaveSeconds int `yaml:"autosave_seconds"`
	KeepAutosaves   int `yaml:"keep_autosaves"`
	KeepBackups     int `yaml:"keep_backups"`
}

type PaginationConfig struct {
	Mode string `yaml:"mode"` // "coarse" | "export"
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int              `yaml:"config_version"`
	General       GeneralConfig    `yaml:"general"`
	Pagination    PaginationConfig `yaml:"pagination"`
	Logging       LoggingConfig    `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{AutosaveSeconds: 60, KeepAutosaves: 50, KeepBackups: 10},
		Pagination:    PaginationConfig{Mode: "coarse"},
		Logging:       LoggingConfig{Level: "info", Format: "console", File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvAutosaveSeconds = "SWR_AUTOSAVE_SECONDS"
	EnvKeepAutosaves   = "SWR_KEEP_AUTOSAVES"
	EnvKeepBackups     = "SWR_KEEP_BACKUPS"
	EnvPaginationMode  = "SWR_PAGINATION_MODE"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "SWR_LOG_LEVEL"
	EnvLogFormat = "SWR_LOG_FORMAT"
	EnvLogFile   = "SWR_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Screenwriter")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Screenwriter")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "screenwriter")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.AutosaveSeconds > 0 {
		dst.General.AutosaveSeconds = src.General.AutosaveSeconds
	}
	if src.General.KeepAutosaves > 0 {
		dst.General.KeepAutosaves = src.General.KeepAutosaves
	}
	if src.General.KeepBackups > 0 {
		dst.General.KeepBackups = src.General.KeepBackups
	}
	if m := strings.ToLower(strings.TrimSpace(src.Pagination.Mode)); m != "" {
		dst.Pagination.Mode = m
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvAutosaveSeconds)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.General.AutosaveSeconds = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvKeepAutosaves)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.General.KeepAutosaves = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvKeepBackups)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.General.KeepBackups = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvPaginationMode)); v != "" {
		cfg.Pagination.Mode = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "general.autosave_seconds":
		if os.Getenv(EnvAutosaveSeconds) != "" {
			return EnvAutosaveSeconds, true
		}
	case "general.keep_autosaves":
		if os.Getenv(EnvKeepAutosaves) != "" {
			return EnvKeepAutosaves, true
		}
	case "general.keep_backups":
		if os.Getenv(EnvKeepBackups) != "" {
			return EnvKeepBackups, true
		}
	case "pagination.mode":
		if os.Getenv(EnvPaginationMode) != "" {
			return EnvPaginationMode, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
