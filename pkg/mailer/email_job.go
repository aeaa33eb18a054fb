package mailer

// Templates rendered by the email worker.
const (
	TemplateProfileCreated = "profile_created"
	TemplateProfileDeleted = "profile_deleted"
	TemplateWelcome        = "welcome"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending
// email. Subject/Text are used as-is when Template is empty.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
