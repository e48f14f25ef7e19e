// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/graph-upn-lookup/src/logger"
)

func TestCLILogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Printf("searching for: %s %s", "Jack", "McClean")

				output := buf.String()
				assert.Contains(t, output, "searching for: Jack McClean", "expected formatted progress line")
			},
		},
		{
			name: "Println",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Println("authentication", "successful")

				output := buf.String()
				assert.Contains(t, output, "authentication successful", "expected output to contain 'authentication successful'")
			},
		},
		{
			name: "SetOutput",
			testFunc: func(t *testing.T) {
				var buf1, buf2 bytes.Buffer
				log := logger.NewCLILogger()

				log.SetOutput(&buf1)
				log.Println("first")

				log.SetOutput(&buf2)
				log.Println("second")

				assert.Contains(t, buf1.String(), "first")
				assert.NotContains(t, buf1.String(), "second")
				assert.Contains(t, buf2.String(), "second")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestJSONLogger(t *testing.T) {
	t.Run("Printf emits one JSON object per line", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.NewJSONLogger(&buf)

		log.Printf("lookup %s: %s", "Jack McClean", "Found")

		line := strings.TrimSpace(buf.String())
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "output must be valid JSON")

		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "lookup Jack McClean: Found", entry["message"])
	})

	t.Run("nil writer discards output", func(t *testing.T) {
		log := logger.NewJSONLogger(nil)
		log.Println("dropped") // must not panic
	})

	t.Run("concurrent writes stay line-delimited", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.NewJSONLogger(&buf)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				log.Println("entry")
			}()
		}
		wg.Wait()

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Len(t, lines, 16)
		for _, line := range lines {
			var entry map[string]any
			assert.NoError(t, json.Unmarshal([]byte(line), &entry), "each line must be valid JSON")
		}
	})
}
