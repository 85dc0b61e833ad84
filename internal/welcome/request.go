package welcome

import (
	"encoding/json"

	"github.com/dmitrymomot/mailforge/pkg/template"
)

// PreviewRequest asks for the rendered HTML of a composition.
// Design takes precedence over Blocks; with neither, the fixed welcome
// template is rendered.
type PreviewRequest struct {
	Design   json.RawMessage  `json:"design,omitempty"`
	Username string           `json:"username,omitempty" sanitize:"trim,nfc,collapse" validate:"max=100"`
	Message  string           `json:"message,omitempty" sanitize:"trim,nfc" validate:"max=2000"`
	Blocks   []template.Block `json:"blocks,omitempty" validate:"max=50"`
}

// Variables returns the template variables carried by the request.
func (r PreviewRequest) Variables() template.Variables {
	return template.Variables{Username: r.Username, Message: r.Message}
}

// SendRequest asks for one welcome email to be delivered.
// HTML, when present, is sent instead of an assembled template.
type SendRequest struct {
	To       string           `json:"to" sanitize:"trim" validate:"required,email"`
	Username string           `json:"username,omitempty" sanitize:"trim,nfc,collapse" validate:"required_without=HTML,max=100"`
	Message  string           `json:"message,omitempty" sanitize:"trim,nfc" validate:"max=2000"`
	HTML     string           `json:"html,omitempty" validate:"required_without=Username"`
	Blocks   []template.Block `json:"blocks,omitempty" validate:"max=50"`
}

// Variables returns the template variables carried by the request.
func (r SendRequest) Variables() template.Variables {
	return template.Variables{Username: r.Username, Message: r.Message}
}
