// utils/currency.go
package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var viPrinter = message.NewPrinter(language.Vietnamese)

// FormatVND renders an integer VND amount the way the venue's regulars read
// it: grouped digits with the đồng sign, e.g. 50000 → "50.000 ₫".
func FormatVND(amount int64) string {
	return viPrinter.Sprintf("%d ₫", amount)
}
