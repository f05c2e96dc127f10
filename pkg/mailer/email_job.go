package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template selects a named template under templates/; Subject/Text/HTML are
// used as-is when Template is empty.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}
