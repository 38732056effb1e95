package store

import (
	"strconv"
	"strings"
)

const scanCodePrefix = "store"

// ScanCode is the payload carried by a store QR code, colon-delimited as
// "store:<id>:<name>:<branch>".
type ScanCode struct {
	StoreID int64
	Name    string
	Branch  string
}

// ParseScanCode parses a store scan code. Malformed input (wrong prefix, too
// few segments, non-numeric id) yields ok=false; callers ignore it silently
// rather than surfacing an error, matching the scanner UX.
func ParseScanCode(raw string) (ScanCode, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) < 4 || parts[0] != scanCodePrefix {
		return ScanCode{}, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ScanCode{}, false
	}
	return ScanCode{StoreID: id, Name: parts[2], Branch: parts[3]}, true
}
