package sales

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Document number prefixes
const (
	InvoicePrefix = "INV"
	ReturnPrefix  = "RET"
)

// DayPrefix returns the shared prefix of every number issued on the day of at,
// e.g. "INV-20260501-"
func DayPrefix(kind string, at time.Time) string {
	return fmt.Sprintf("%s-%s-", kind, at.Format("20060102"))
}

// FormatNumber builds a document number such as INV-20260501-0007
func FormatNumber(kind string, at time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", DayPrefix(kind, at), seq)
}

// NextSequence returns the sequence following last, a number issued earlier the
// same day. An empty or malformed last number starts the day at 1.
func NextSequence(last string) int {
	i := strings.LastIndex(last, "-")
	if i < 0 {
		return 1
	}
	n, err := strconv.Atoi(last[i+1:])
	if err != nil || n < 0 {
		return 1
	}
	return n + 1
}
