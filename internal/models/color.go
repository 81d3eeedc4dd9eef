package models

import (
	"database/sql/driver"
	"fmt"
)

type LlamaColor string

const (
	ColorBrown LlamaColor = "brown"
	ColorWhite LlamaColor = "white"
	ColorBlack LlamaColor = "black"
	ColorGray  LlamaColor = "gray"
)

// LlamaColors lists every color in declaration order.
var LlamaColors = []LlamaColor{ColorBrown, ColorWhite, ColorBlack, ColorGray}

func ParseLlamaColor(s string) (LlamaColor, error) {
	switch c := LlamaColor(s); c {
	case ColorBrown, ColorWhite, ColorBlack, ColorGray:
		return c, nil
	default:
		return "", fmt.Errorf("unknown llama color %q", s)
	}
}

func (c LlamaColor) Valid() bool {
	_, err := ParseLlamaColor(string(c))
	return err == nil
}

func (c LlamaColor) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown llama color %q", string(c))
	}
	return []byte(c), nil
}

func (c *LlamaColor) UnmarshalText(b []byte) error {
	parsed, err := ParseLlamaColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c LlamaColor) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown llama color %q", string(c))
	}
	return string(c), nil
}

func (c *LlamaColor) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return c.UnmarshalText([]byte(v))
	case []byte:
		return c.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into LlamaColor", src)
	}
}
