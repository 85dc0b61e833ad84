package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNotStructPointer is returned when SanitizeStruct receives anything but a non-nil struct pointer.
var ErrNotStructPointer = errors.New("sanitizer: expected a non-nil pointer to a struct")

// tagName is the struct tag read by SanitizeStruct.
const tagName = "sanitize"

var transforms = map[string]func(string) string{
	"trim":       strings.TrimSpace,
	"lower":      strings.ToLower,
	"nfc":        norm.NFC.String,
	"collapse":   func(s string) string { return strings.Join(strings.Fields(s), " ") },
	"strip_html": StripHTML,
}

// SanitizeStruct applies the comma-separated transforms from each string
// field's `sanitize` tag, in order. Nested structs and struct pointers are
// walked. Supported transforms: trim, lower, nfc, collapse, strip_html.
//
// Example:
//
//	type Form struct {
//	    Name string `sanitize:"trim,nfc"`
//	}
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}
	return sanitizeValue(rv.Elem())
}

func sanitizeValue(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)

		switch fv.Kind() {
		case reflect.Struct:
			if err := sanitizeValue(fv); err != nil {
				return err
			}
			continue
		case reflect.Pointer:
			if !fv.IsNil() && fv.Elem().Kind() == reflect.Struct {
				if err := sanitizeValue(fv.Elem()); err != nil {
					return err
				}
			}
			continue
		case reflect.String:
		default:
			continue
		}

		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}

		s := fv.String()
		for name := range strings.SplitSeq(tag, ",") {
			fn, ok := transforms[strings.TrimSpace(name)]
			if !ok {
				return fmt.Errorf("sanitizer: unknown transform %q on field %s", name, field.Name)
			}
			s = fn(s)
		}
		fv.SetString(s)
	}
	return nil
}
