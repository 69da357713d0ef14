package model

// Message is the composed outbound notification content. Subject and Text
// are always non-empty; HTML is the optional rich rendering of Text.
type Message struct {
	Subject string
	Text    string
	HTML    string
}
