package agent

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// money renders an amount with digit grouping, e.g. "$12,345.00".
func money(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}
