package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/gomarkdown/markdown"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nabrah/usage-alert-service/internal/domain/model"
)

// Composer renders the outbound notification for an event. Compose is
// total: missing fields degrade to neutral placeholders, never to an error.
type Composer interface {
	Compose(ev model.Event) model.Message
	ComposeTest() model.Message
}

const signOff = "- The Nabrah Team"

// Canonical escalation buckets. Any other numeric threshold gets the
// generic phrasing.
const (
	bucketHalf     = 50
	bucketWarn     = 75
	bucketUrgent   = 90
	bucketExhaust  = 100
	unknownPercent = "?"
)

type MessageComposer struct {
	printer *message.Printer
}

func NewMessageComposer() *MessageComposer {
	return &MessageComposer{
		// English locale gives thousands separators on large counters.
		printer: message.NewPrinter(language.English),
	}
}

// Compose builds the subject and body for a threshold event.
func (c *MessageComposer) Compose(ev model.Event) model.Message {
	feature := ev.Feature.Display()
	percent, known := ev.Threshold.Percent()

	// Exhaustion overrides the nominal bucket: a subject with no access or
	// zero balance is at 100% no matter what the threshold claims.
	if ev.Usage.Exhausted() {
		percent, known = bucketExhaust, true
	}

	text := c.bodyText(feature, percent, known, ev.Usage)

	return model.Message{
		Subject: c.subjectLine(feature, percent, known),
		Text:    text,
		HTML:    renderHTML(text),
	}
}

// ComposeTest builds the static message for a channel "Send Test" event.
func (c *MessageComposer) ComposeTest() model.Message {
	text := fmt.Sprintf("Hello,\n\nThis is a test email from your OpenMeter notification channel.\n\n%s", signOff)
	return model.Message{
		Subject: "OpenMeter Test Email",
		Text:    text,
		HTML:    renderHTML(text),
	}
}

func (c *MessageComposer) subjectLine(feature string, percent float64, known bool) string {
	if !known {
		return fmt.Sprintf("You've reached %s%% of your %s quota", unknownPercent, feature)
	}

	switch percent {
	case bucketHalf:
		return fmt.Sprintf("Heads up: you've used 50%% of your %s quota", feature)
	case bucketWarn:
		return fmt.Sprintf("You've used 75%% of your %s quota", feature)
	case bucketUrgent:
		return fmt.Sprintf("Warning: you've used 90%% of your %s quota", feature)
	case bucketExhaust:
		return fmt.Sprintf("Action required: your %s quota is exhausted (100%% used)", feature)
	default:
		return fmt.Sprintf("You've reached %s%% of your %s quota", c.formatNumber(percent), feature)
	}
}

func (c *MessageComposer) bodyText(feature string, percent float64, known bool, usage model.Usage) string {
	pct := unknownPercent
	if known {
		pct = c.formatNumber(percent)
	}

	var b strings.Builder
	b.WriteString("Hello,\n\n")
	fmt.Fprintf(&b, "You've now used %s%% of your %s quota.\n", pct, feature)

	if usage.Usage != nil {
		fmt.Fprintf(&b, "Used: %s\n", c.formatNumber(*usage.Usage))
	}
	if usage.Balance != nil {
		fmt.Fprintf(&b, "Remaining: %s\n", c.formatNumber(*usage.Balance))
	}

	b.WriteString("\n")
	b.WriteString(c.callToAction(percent, known))
	b.WriteString("\n\n")
	b.WriteString(signOff)

	return b.String()
}

func (c *MessageComposer) callToAction(percent float64, known bool) string {
	switch {
	case known && percent >= bucketExhaust:
		return "Your quota is used up and further usage is blocked. Upgrade now to restore access."
	case known && percent >= bucketUrgent:
		return "You're almost out. Upgrade soon to avoid an interruption."
	default:
		return "Consider upgrading your plan for more headroom."
	}
}

// formatNumber renders integers bare and everything else with two decimal
// places, both with locale separators.
func (c *MessageComposer) formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < math.MaxInt64 {
		return c.printer.Sprintf("%d", int64(v))
	}
	return c.printer.Sprintf("%.2f", v)
}

// renderHTML produces the rich sibling of the plain-text body for email
// clients that prefer it.
func renderHTML(text string) string {
	return string(markdown.ToHTML(markdown.NormalizeNewlines([]byte(text)), nil, nil))
}
