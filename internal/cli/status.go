package cli

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pfcm/crazysynth/param"
)

var printer = message.NewPrinter(language.English)

// Status is a one line summary of p and what m makes of it.
func Status(p param.InstrumentParams, m param.Mapping) string {
	d := m.Derive(p)
	return printer.Sprintf("%v  period %d samples, duty %.2f, carrier %.1f Hz, delay %d, feedback %.2f, gain %.2f",
		p, d.PeriodSamples, d.DutyCycle, d.Carrier, d.DelayLength, d.Feedback, d.Gain)
}

// Count formats n with thousands separators.
func Count(n uint64) string {
	return printer.Sprintf("%d", n)
}
