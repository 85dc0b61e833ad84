package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/sanitizer"
)

func TestSanitizeStruct(t *testing.T) {
	t.Parallel()

	type Nested struct {
		Label string `sanitize:"collapse"`
	}

	type Form struct {
		Email   string `sanitize:"trim,lower"`
		Name    string `sanitize:"trim,nfc"`
		Body    string `sanitize:"strip_html"`
		Raw     string
		Nested  Nested
		Pointer *Nested
		Count   int `sanitize:"trim"`
	}

	t.Run("applies transforms in order", func(t *testing.T) {
		t.Parallel()

		f := Form{
			Email:   "  Ada@Example.COM ",
			Name:    " Café ",
			Body:    `<p>Hello</p><script>alert('xss')</script>`,
			Raw:     "  untouched  ",
			Nested:  Nested{Label: "  a   b  "},
			Pointer: &Nested{Label: "c \n d"},
		}

		require.NoError(t, sanitizer.SanitizeStruct(&f))
		assert.Equal(t, "ada@example.com", f.Email)
		assert.Equal(t, "Café", f.Name)
		assert.Equal(t, "Hello", f.Body)
		assert.Equal(t, "  untouched  ", f.Raw)
		assert.Equal(t, "a b", f.Nested.Label)
		assert.Equal(t, "c d", f.Pointer.Label)
	})

	t.Run("rejects non pointer", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, sanitizer.SanitizeStruct(Form{}), sanitizer.ErrNotStructPointer)
		require.ErrorIs(t, sanitizer.SanitizeStruct((*Form)(nil)), sanitizer.ErrNotStructPointer)
		s := "x"
		require.ErrorIs(t, sanitizer.SanitizeStruct(&s), sanitizer.ErrNotStructPointer)
	})

	t.Run("unknown transform", func(t *testing.T) {
		t.Parallel()

		type Bad struct {
			Value string `sanitize:"shout"`
		}
		err := sanitizer.SanitizeStruct(&Bad{Value: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shout")
	})
}
