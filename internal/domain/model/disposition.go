package model

// Disposition is the terminal state of one event delivery. The webhook
// acknowledges with 200 regardless; dispositions exist for logs and tests.
type Disposition int16

const (
	DispositionIgnored Disposition = iota + 1
	DispositionSent
	DispositionSendFailed
	DispositionTestSent
	DispositionTestFailed
)

func (d Disposition) String() string {
	switch d {
	case DispositionIgnored:
		return "ignored"
	case DispositionSent:
		return "sent"
	case DispositionSendFailed:
		return "send_failed"
	case DispositionTestSent:
		return "test_sent"
	case DispositionTestFailed:
		return "test_failed"
	default:
		return "unknown"
	}
}
