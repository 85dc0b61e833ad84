package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/validator"
)

type sendRequest struct {
	To       string `json:"to" validate:"required,email"`
	Username string `json:"username,omitempty" validate:"required_without=HTML,max=100"`
	Message  string `json:"message,omitempty" validate:"max=1000"`
	HTML     string `json:"html,omitempty" validate:"required_without=Username"`
}

type blockRequest struct {
	Blocks []block `json:"blocks" validate:"dive"`
}

type block struct {
	Kind string `json:"kind" validate:"required,oneof=text button"`
	Link string `json:"link" validate:"omitempty,url"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		fields   []string
		messages []string
	}{
		{
			name:  "valid username request",
			input: sendRequest{To: "ada@example.com", Username: "Ada"},
		},
		{
			name:  "valid html request",
			input: sendRequest{To: "ada@example.com", HTML: "<p>Hi</p>"},
		},
		{
			name:     "empty request",
			input:    sendRequest{},
			fields:   []string{"to", "username", "html"},
			messages: []string{"to is required", "username is required when html is empty", "html is required when username is empty"},
		},
		{
			name:     "malformed email",
			input:    sendRequest{To: "nope", Username: "Ada"},
			fields:   []string{"to"},
			messages: []string{"to must be a valid email address"},
		},
		{
			name:     "message too long",
			input:    sendRequest{To: "ada@example.com", Username: "Ada", Message: string(make([]byte, 1001))},
			fields:   []string{"message"},
			messages: []string{"message must not exceed 1000 characters"},
		},
		{
			name:     "nested slice paths",
			input:    blockRequest{Blocks: []block{{Kind: "text"}, {Kind: "video", Link: "::"}}},
			fields:   []string{"blocks[1].kind", "blocks[1].link"},
			messages: []string{"blocks[1].kind must be one of: text, button", "blocks[1].link must be a valid URL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validator.ValidateStruct(tt.input)
			if tt.fields == nil {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.True(t, validator.IsValidationError(err))
			ve := validator.ExtractValidationErrors(err)
			assert.Equal(t, tt.fields, ve.Fields())
			for i, msg := range tt.messages {
				assert.Equal(t, msg, ve[i].Message)
			}
		})
	}
}

func TestValidateStruct_InvalidInput(t *testing.T) {
	t.Parallel()

	err := validator.ValidateStruct("not a struct")
	require.ErrorIs(t, err, validator.ErrInvalidInput)
	assert.False(t, validator.IsValidationError(err))
	assert.Nil(t, validator.ExtractValidationErrors(err))
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	ve := validator.ValidationErrors{
		{Field: "to", Message: "to is required"},
		{Field: "username", Message: "username is required when html is empty"},
		{Field: "to", Message: "to must be a valid email address"},
	}

	assert.Equal(t, "to is required; username is required when html is empty; to must be a valid email address", ve.Error())
	assert.True(t, ve.Has("to"))
	assert.False(t, ve.Has("html"))
	assert.Equal(t, []string{"to", "username"}, ve.Fields())

	wrapped := errors.Join(errors.New("bind"), ve)
	assert.True(t, validator.IsValidationError(wrapped))
	assert.Len(t, validator.ExtractValidationErrors(wrapped), 3)
}
