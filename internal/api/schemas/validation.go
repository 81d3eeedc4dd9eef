// Package schemas holds the request and response bodies of the API and the
// mapping from database rows to them.
package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// FieldError describes one invalid input. Loc is the path to the field, e.g.
// ["body", "email"] or ["path", "llama_id"].
type FieldError struct {
	Type  string   `json:"type"`
	Loc   []string `json:"loc"`
	Msg   string   `json:"msg"`
	Input any      `json:"input,omitempty"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = strings.Join(e.Loc, ".") + ": " + e.Msg
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationErrors) add(typ string, loc []string, msg string, input any) {
	*v = append(*v, FieldError{Type: typ, Loc: loc, Msg: msg, Input: input})
}

func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func bodyLoc(field string) []string { return []string{"body", field} }

// DecodeJSON reads a JSON object from r into dst and turns decoding failures
// into ValidationErrors.
func DecodeJSON(r io.Reader, dst any) error {
	err := json.NewDecoder(r).Decode(dst)
	if err == nil {
		return nil
	}

	var v ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		v.add("missing", []string{"body"}, "Field required", nil)
	case errors.As(err, &typeErr):
		want := typeName(typeErr.Type.Kind())
		v.add(want+"_type", bodyLoc(typeErr.Field), "Input should be a valid "+want, nil)
	case errors.As(err, &syntaxErr):
		v.add("json_invalid", []string{"body"}, fmt.Sprintf("JSON decode error at offset %d", syntaxErr.Offset), nil)
	default:
		v.add("json_invalid", []string{"body"}, err.Error(), nil)
	}
	return v
}

func typeName(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.String:
		return "string"
	case reflect.Struct, reflect.Map:
		return "dictionary"
	default:
		return k.String()
	}
}
