package mailer

// EmailJob is a rendered or template-backed email ready for a Sender.
// Html is optional; Text is recommended as fallback.
type EmailJob struct {
	To       string `json:"to"`
	Subject  string `json:"subject,omitempty"`
	Text     string `json:"text,omitempty"`
	HTML     string `json:"html,omitempty"`
	Template string `json:"template,omitempty"` // e.g. "welcome"
	Data     any    `json:"data,omitempty"`
}
