package util

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatMoney renders a bid amount with thousand separators for
// announcements and notifications. Example: 1250000 -> "1,250,000 pts".
func FormatMoney(amount int64) string {
	return fmt.Sprintf("%s pts", humanize.Comma(amount))
}

func BoolPointer(b bool) *bool {
	return &b
}

func StringPointer(s string) *string {
	return &s
}

func Int64Pointer(i int64) *int64 {
	return &i
}
