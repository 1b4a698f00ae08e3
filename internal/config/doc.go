// SPDX-License-Identifier: MPL-2.0

// Package config handles capreg configuration using Viper with CUE as the file format.
//
// Configuration is loaded from config.cue in the capreg configuration directory
// ($XDG_CONFIG_HOME/capreg on Linux, ~/Library/Application Support/capreg on
// macOS, %APPDATA%\capreg on Windows) or from an explicit path. The file is
// validated against the embedded config_schema.cue before it is merged over
// the defaults. CAPREG_* environment variables override scalar keys
// (CAPREG_SCAN_BINDING_POLICY, CAPREG_LOG_LEVEL, ...).
package config
