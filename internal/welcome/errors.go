package welcome

import "errors"

var (
	// ErrRender indicates the email could not be assembled.
	ErrRender = errors.New("welcome: failed to render email")

	// ErrInvalidDesign indicates the editor design could not be decoded.
	ErrInvalidDesign = errors.New("welcome: invalid design")
)
