package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either give a rendered Subject/Text/HTML, or name a Template ("verify_email",
// "reset_password") with Data and let the worker render it.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
