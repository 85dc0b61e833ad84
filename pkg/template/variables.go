package template

// Default display values used when a variable is absent.
const (
	DefaultUsername = "User"
	DefaultMessage  = "Welcome to our platform!"
)

// Placeholder tokens recognised in editor-authored HTML.
const (
	PlaceholderUsername = "username"
	PlaceholderMessage  = "message"
)

// Variables are the values substituted into an email.
type Variables struct {
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
}

// WithDefaults returns a copy with empty fields replaced by default display values.
func (v Variables) WithDefaults() Variables {
	if v.Username == "" {
		v.Username = DefaultUsername
	}
	if v.Message == "" {
		v.Message = DefaultMessage
	}
	return v
}

// IsZero reports whether no variable was supplied.
func (v Variables) IsZero() bool {
	return v.Username == "" && v.Message == ""
}

// Placeholders returns the token-to-value map used for {{token}} substitution.
// Defaults are applied.
func (v Variables) Placeholders() map[string]string {
	d := v.WithDefaults()
	return map[string]string{
		PlaceholderUsername: d.Username,
		PlaceholderMessage:  d.Message,
	}
}
