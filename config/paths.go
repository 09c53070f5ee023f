// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelbar configuration.

package config

import (
	"os"
	"path/filepath"
)

// configRoot honours XDG_CONFIG_HOME through os.UserConfigDir.
func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelbar"), nil
}

func systemConfigPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

// ResolvePath expands a config-relative path. Absolute paths and "" are
// returned unchanged; relative ones are placed under the config directory.
func ResolvePath(p string) (string, error) {
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, p), nil
}
