package message

import "time"

// Payload is the variant-typed body of an inbound message. Exactly which
// fields are populated depends on the transport message type; ExtractText
// checks them in a fixed priority order.
type Payload struct {
	ImageCaption    string
	VideoCaption    string
	DocumentCaption string
	Conversation    string
	ExtendedText    string
	Quoted          *Payload // the replied-to message, if any
	QuotedSenderID  string
	ListReplyTitle  string
	ButtonText      string
	Reaction        string
	HasImage        bool
	MediaID         string // transport handle for media download
}

// Envelope is one inbound message as delivered by the transport.
type Envelope struct {
	ChatID    string
	SenderID  string
	IsGroup   bool
	Timestamp time.Time
	Payload   Payload
}

// ExtractText pulls the first non-empty text out of a payload, recursing
// into quoted messages. Returns "" for non-text messages; absence of text
// is a valid state, not an error.
func ExtractText(p *Payload) string {
	if p == nil {
		return ""
	}
	if p.ImageCaption != "" {
		return p.ImageCaption
	}
	if p.VideoCaption != "" {
		return p.VideoCaption
	}
	if p.DocumentCaption != "" {
		return p.DocumentCaption
	}
	if p.Conversation != "" {
		return p.Conversation
	}
	if p.ExtendedText != "" {
		return p.ExtendedText
	}
	if p.Quoted != nil {
		if text := ExtractText(p.Quoted); text != "" {
			return text
		}
	}
	if p.ListReplyTitle != "" {
		return p.ListReplyTitle
	}
	if p.ButtonText != "" {
		return p.ButtonText
	}
	if p.Reaction != "" {
		return p.Reaction
	}
	return ""
}

// Text is a convenience for extracting the envelope's body.
func (e *Envelope) Text() string {
	return ExtractText(&e.Payload)
}
