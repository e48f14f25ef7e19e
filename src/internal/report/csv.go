// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"fmt"
	"io"

	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/lookup"
)

// csvHeader is the fixed export schema. Downstream consumers match on these
// exact column names.
const csvHeader = "First Name,Last Name,UPN,Email,User ID,Status"

// Export status literals. Ambiguous keys export as "Multiple", one row per
// candidate.
const (
	statusFound    = "Found"
	statusMultiple = "Multiple"
	statusNotFound = "NotFound"
)

// WriteCSV renders the report as comma-delimited UTF-8 text.
//
// Row order follows the report's key insertion order, then candidate order
// within a key. A NotFound key still produces one row with empty UPN, Email
// and User ID columns so every input name appears in the export. Field
// values are written verbatim; values containing commas are not quoted,
// which is a known limitation of the export format.
//
// Parameters:
//   - w: Destination for the rendered export
//   - rep: Aggregated lookup results
//
// Returns:
//   - error: Write failure, if any
func WriteCSV(w io.Writer, rep *lookup.Report) error {
	// Get a buffer from the pool
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	buf.WriteString(csvHeader)
	buf.WriteByte('\n')

	for _, res := range rep.Results() {
		switch res.Classify() {
		case lookup.NotFound:
			writeRow(buf, res.Key, "", "", "", statusNotFound)
		case lookup.Found:
			user := res.Candidates[0]
			writeRow(buf, res.Key, user.UserPrincipalName, user.Mail, user.ID, statusFound)
		case lookup.Ambiguous:
			for _, user := range res.Candidates {
				writeRow(buf, res.Key, user.UserPrincipalName, user.Mail, user.ID, statusMultiple)
			}
		}
	}

	_, err := w.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("report: writing export: %w", err)
	}
	return nil
}

func writeRow(buf gc.Buffer, key lookup.Key, upn, mail, id, status string) {
	buf.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s\n",
		key.GivenName, key.Surname, upn, mail, id, status))
}
