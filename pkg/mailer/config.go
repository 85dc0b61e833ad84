package mailer

// DefaultSubject is used when neither the message nor the config sets one.
const DefaultSubject = "Welcome to Our Platform!"

// Config holds mailer configuration.
type Config struct {
	Subject string `yaml:"subject"`
	ReplyTo string `yaml:"reply_to"`
}
