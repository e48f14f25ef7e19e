// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package lookup

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Key identifies one person to look up by exact name match.
type Key struct {
	GivenName string
	Surname   string
}

// String returns the key in "Given Surname" form, used for report keying
// and progress messages.
func (k Key) String() string {
	return k.GivenName + " " + k.Surname
}

// ParseKeys parses a pipe-delimited name list into an ordered key sequence.
//
// Each line is split on "|", empty cells are dropped, and the first two
// remaining cells become the given name and surname. Lines with fewer than
// two cells are skipped. Names are NFC-normalized so visually identical
// input always produces identical query filters. Duplicates are kept;
// aggregation policy for them lives in Report, not here.
//
// Parameters:
//   - text: Raw list contents, e.g. "|Jack |McClean |" per line
//
// Returns:
//   - []Key: Keys in input order
func ParseKeys(text string) []Key {
	var keys []Key
	for _, line := range strings.Split(text, "\n") {
		var cells []string
		for _, cell := range strings.Split(line, "|") {
			if cell = strings.TrimSpace(cell); cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) < 2 {
			continue
		}
		keys = append(keys, Key{
			GivenName: norm.NFC.String(cells[0]),
			Surname:   norm.NFC.String(cells[1]),
		})
	}
	return keys
}
