package payment

import (
	"math"
	"strconv"
	"strings"
)

// courseOrderID prefixes a random suffix with the course the order pays for,
// for gateways that do not keep order metadata we can read back.
func courseOrderID(prefix string, courseID uint, suffix string) string {
	return prefix + strconv.FormatUint(uint64(courseID), 10) + "-" + suffix
}

func parseCourseOrderID(prefix, orderID string) (uint, string, bool) {
	rest, found := strings.CutPrefix(orderID, prefix)
	if !found {
		return 0, "", false
	}
	head, suffix, found := strings.Cut(rest, "-")
	if !found || suffix == "" {
		return 0, "", false
	}
	id, err := strconv.ParseUint(head, 10, 32)
	if err != nil || id == 0 {
		return 0, "", false
	}
	return uint(id), suffix, true
}

// minorUnits parses a decimal amount such as "1500.00" into minor units.
func minorUnits(amount string) (int64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || f <= 0 || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(math.Round(f * 100)), true
}
