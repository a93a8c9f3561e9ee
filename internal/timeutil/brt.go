package timeutil

import (
	"time"
)

// BRT is the Brasília time location (UTC-3). All business timestamps are
// interpreted in it.
var BRT *time.Location

func init() {
	var err error
	BRT, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// Fallback: create fixed zone if America/Sao_Paulo not available
		BRT = time.FixedZone("BRT", -3*60*60) // UTC-3
	}
}

// Now returns the current time in BRT.
func Now() time.Time {
	return time.Now().In(BRT)
}

// Common layouts
const (
	DateLayout    = "2006-01-02"
	DisplayLayout = "02 Jan 2006, 15:04"
)
