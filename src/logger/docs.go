// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides logging abstractions for the Graph UPN lookup tool.
// It defines a common Logger interface with two implementations: CLILogger for
// human-readable terminal output and JSONLogger for structured line-delimited
// JSON suitable for log collection during unattended batch runs.
package logger
