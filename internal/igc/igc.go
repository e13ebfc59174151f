// Package igc edits IGC track-log content.
//
// IGC files are line oriented; header records start with "H". The one
// edit this package performs is splicing the pilot-in-charge header
// into a downloaded track log so that flight-log software attributes
// the flight correctly:
//
//	fixed := igc.InsertPilotInCharge(content, "Jane Doe")
//	// line 1 is unchanged, line 2 is now "HFPLTPILOTINCHARGE:Jane Doe"
//
// No other parsing or validation of the track log happens here; the
// content is treated as opaque lines.
package igc

import "strings"

// pilotInChargeRecord is the IGC header record naming the pilot in charge.
const pilotInChargeRecord = "HFPLTPILOTINCHARGE:"

// InsertPilotInCharge returns the track log with an
// "HFPLTPILOTINCHARGE:{pilotName}" line spliced in as the second line.
//
// All existing lines are preserved in order. Content with fewer than
// two lines gets the record appended after the first line. The
// operation never fails; it is plain line surgery on whatever content
// the server returned.
func InsertPilotInCharge(content, pilotName string) string {
	lines := strings.Split(content, "\n")

	record := pilotInChargeRecord + pilotName
	if len(lines) < 2 {
		return strings.Join(append(lines, record), "\n")
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[0], record)
	out = append(out, lines[1:]...)
	return strings.Join(out, "\n")
}
