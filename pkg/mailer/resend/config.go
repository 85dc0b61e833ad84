package resend

// DefaultFrom is the sender used when neither FromEmail nor Email.From is set.
const DefaultFrom = "Demo App <no-reply@yourdomain.com>"

// Config holds Resend provider configuration.
type Config struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}
