package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabrah/usage-alert-service/internal/domain/model"
)

func thresholdEvent(value any) model.Event {
	return model.Event{
		Type:      model.EventBalanceThreshold,
		Feature:   model.Feature{Name: "Call Minutes"},
		Threshold: model.Threshold{Type: model.ThresholdPercent, Value: value},
	}
}

func TestComposeBucketTones(t *testing.T) {
	c := NewMessageComposer()

	tests := []struct {
		name        string
		value       any
		wantSubject string
	}{
		{"half bucket", 50, "Heads up: you've used 50% of your Call Minutes quota"},
		{"warn bucket", 75, "You've used 75% of your Call Minutes quota"},
		{"urgent bucket", 90, "Warning: you've used 90% of your Call Minutes quota"},
		{"exhausted bucket", 100, "Action required: your Call Minutes quota is exhausted (100% used)"},
		{"off-bucket value", 42, "You've reached 42% of your Call Minutes quota"},
		{"fractional value", 87.5, "You've reached 87.50% of your Call Minutes quota"},
		{"string value", "90%", "Warning: you've used 90% of your Call Minutes quota"},
		{"unparseable value", "soon", "You've reached ?% of your Call Minutes quota"},
		{"missing value", nil, "You've reached ?% of your Call Minutes quota"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := c.Compose(thresholdEvent(tt.value))
			assert.Equal(t, tt.wantSubject, msg.Subject)
			assert.NotEmpty(t, msg.Text)
			assert.NotEmpty(t, msg.HTML)
		})
	}
}

func TestComposeExhaustionOverridesBucket(t *testing.T) {
	c := NewMessageComposer()
	noAccess := false

	ev := thresholdEvent(75)
	ev.Usage = model.Usage{HasAccess: &noAccess}

	msg := c.Compose(ev)
	assert.Contains(t, msg.Subject, "exhausted")
	assert.Contains(t, msg.Subject, "100%")
	assert.NotContains(t, msg.Subject, "75%")
	assert.Contains(t, msg.Text, "100% of your Call Minutes quota")
	assert.Contains(t, msg.Text, "Upgrade now to restore access")
}

func TestComposeZeroBalanceIsExhaustion(t *testing.T) {
	c := NewMessageComposer()
	zero := 0.0

	ev := thresholdEvent(50)
	ev.Usage = model.Usage{Balance: &zero}

	msg := c.Compose(ev)
	assert.Contains(t, msg.Subject, "exhausted")
	assert.Contains(t, msg.Text, "Remaining: 0")
}

func TestComposeBodyLayout(t *testing.T) {
	c := NewMessageComposer()
	used, remaining := 1500.0, 5.0

	ev := thresholdEvent(90)
	ev.Usage = model.Usage{Usage: &used, Balance: &remaining}

	msg := c.Compose(ev)

	require.True(t, strings.HasPrefix(msg.Text, "Hello,\n"))
	assert.Contains(t, msg.Text, "You've now used 90% of your Call Minutes quota.")
	assert.Contains(t, msg.Text, "Used: 1,500")
	assert.Contains(t, msg.Text, "Remaining: 5")
	assert.Contains(t, msg.Text, "You're almost out")
	assert.True(t, strings.HasSuffix(msg.Text, signOff))
}

func TestComposeOmitsAbsentFigures(t *testing.T) {
	c := NewMessageComposer()

	msg := c.Compose(thresholdEvent(50))
	assert.NotContains(t, msg.Text, "Used:")
	assert.NotContains(t, msg.Text, "Remaining:")
	assert.Contains(t, msg.Text, "Consider upgrading")
}

func TestComposeNumberFormatting(t *testing.T) {
	c := NewMessageComposer()

	assert.Equal(t, "5", c.formatNumber(5.0))
	assert.Equal(t, "12.50", c.formatNumber(12.5))
	assert.Equal(t, "1,500", c.formatNumber(1500))
	assert.Equal(t, "1,234,567", c.formatNumber(1234567))
	assert.Equal(t, "0.33", c.formatNumber(1.0/3))
}

func TestComposeCallToActionEscalates(t *testing.T) {
	c := NewMessageComposer()

	assert.Contains(t, c.Compose(thresholdEvent(50)).Text, "Consider upgrading")
	assert.Contains(t, c.Compose(thresholdEvent(90)).Text, "Upgrade soon to avoid an interruption")
	assert.Contains(t, c.Compose(thresholdEvent(100)).Text, "Upgrade now to restore access")
	// Unknown percentage keeps the generic nudge.
	assert.Contains(t, c.Compose(thresholdEvent(nil)).Text, "Consider upgrading")
}

func TestComposeTotalOnEmptyEvent(t *testing.T) {
	c := NewMessageComposer()

	msg := c.Compose(model.Event{})
	assert.NotEmpty(t, msg.Subject)
	assert.NotEmpty(t, msg.Text)
	assert.Contains(t, msg.Subject, "Unknown feature")
}

func TestComposeHTMLPart(t *testing.T) {
	c := NewMessageComposer()

	msg := c.Compose(thresholdEvent(90))
	assert.Contains(t, msg.HTML, "<p>")
	assert.Contains(t, msg.HTML, "90%")
}

func TestComposeTest(t *testing.T) {
	c := NewMessageComposer()

	msg := c.ComposeTest()
	assert.Equal(t, "OpenMeter Test Email", msg.Subject)
	assert.Contains(t, msg.Text, "test email")
	assert.NotEmpty(t, msg.HTML)
}
