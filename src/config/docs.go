// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the client identity and endpoint settings from a JSON
// or YAML file, falling back to environment variables and built-in defaults.
package config
