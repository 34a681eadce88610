package ledger

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// NumberPrefix prefixes every generated entry number.
const NumberPrefix = "ASI"

// NextNumber returns the entry number following latest, the highest existing
// number for the tenant (empty when none exist yet). Numbers look like
// ASI-001, zero-padded to at least three digits. A latest value that does not
// parse falls back to a timestamp-derived number so the write can proceed;
// uniqueness wins over strict sequentiality there.
func NextNumber(latest string, now time.Time) string {
	if latest == "" {
		return fmt.Sprintf("%s-%03d", NumberPrefix, 1)
	}

	n, err := parseSuffix(latest)
	if err != nil {
		slog.Warn("unparseable entry number, falling back to timestamp", "number", latest)
		return FallbackNumber(now)
	}

	return fmt.Sprintf("%s-%03d", NumberPrefix, n+1)
}

// FallbackNumber derives an entry number from the clock, for when the latest
// number cannot be determined at all.
func FallbackNumber(now time.Time) string {
	return fmt.Sprintf("%s-%d", NumberPrefix, now.UnixMilli())
}

func parseSuffix(number string) (int, error) {
	i := strings.LastIndexByte(number, '-')
	if i < 0 || i == len(number)-1 {
		return 0, fmt.Errorf("no numeric suffix in %q", number)
	}

	return strconv.Atoi(number[i+1:])
}
