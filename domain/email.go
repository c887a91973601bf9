package domain

// Email is a composed notification message, transport-agnostic. Attachments
// are local file paths; the mail driver encodes them as base64 octet-stream
// parts with Content-Disposition filenames.
type Email struct {
	From        string
	To          string
	Cc          []string
	Subject     string
	Body        string
	Attachments []string
}
