package data

import (
	"errors"
	"fmt"
	"reflect"
	"unicode/utf8"
)

// ErrInvalidText marks a string that an XML 1.0 document cannot carry.
var ErrInvalidText = errors.New("text cannot be stored in an XML document")

// TextError names the offending value.
type TextError struct {
	Value string
}

func (e *TextError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidText, e.Value)
}

func (e *TextError) Unwrap() error { return ErrInvalidText }

// ValidText reports whether s is valid UTF-8 made only of XML 1.0 characters.
// Anything else would be replaced with U+FFFD on save.
func ValidText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return false
		}
	}
	return true
}

// Same ranges as the Char production of XML 1.0.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// CheckText returns a *TextError for the first string anywhere in def
// that ValidText rejects.
func CheckText(def Definition) error {
	return checkText(reflect.ValueOf(def))
}

func checkText(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return checkText(v.Elem())
	case reflect.Struct:
		for i := range v.NumField() {
			if err := checkText(v.Field(i)); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			if err := checkText(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.String:
		if s := v.String(); !ValidText(s) {
			return &TextError{Value: s}
		}
	}
	return nil
}
