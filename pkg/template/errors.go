package template

import "errors"

var (
	// ErrRenderFailed indicates the document could not be rendered.
	ErrRenderFailed = errors.New("template: failed to render email")

	// ErrInvalidDesign indicates the editor design could not be decoded.
	ErrInvalidDesign = errors.New("template: invalid design")

	// ErrBlockNotFound indicates no block with the given ID exists in the composition.
	ErrBlockNotFound = errors.New("template: block not found")
)
