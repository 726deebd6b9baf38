// Package option holds dropdown entries. On the wire an entry is either a
// bare string or a {"value","label"} object; both decode into Option once,
// at the JSON boundary.
package option

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type Kind int

const (
	KindPlain Kind = iota
	KindValueLabel
)

type Option struct {
	kind  Kind
	value string
	label string
}

func Plain(label string) Option {
	return Option{kind: KindPlain, value: label, label: label}
}

func ValueLabel(value, label string) Option {
	return Option{kind: KindValueLabel, value: value, label: label}
}

func (o Option) Kind() Kind     { return o.kind }
func (o Option) Value() string  { return o.value }
func (o Option) Label() string  { return o.label }
func (o Option) IsZero() bool   { return o.value == "" && o.label == "" }
func (o Option) String() string { return o.label }

type valueLabel struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (o Option) MarshalJSON() ([]byte, error) {
	if o.kind == KindPlain {
		return json.Marshal(o.label)
	}
	return json.Marshal(valueLabel{Value: o.value, Label: o.label})
}

var ErrInvalidOption = errors.New("option must be a string or a {value,label} object")

func (o *Option) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidOption
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("option: %w", err)
		}
		*o = Plain(s)
		return nil
	case '{':
		var vl valueLabel
		if err := json.Unmarshal(data, &vl); err != nil {
			return fmt.Errorf("option: %w", err)
		}
		if vl.Label == "" {
			vl.Label = vl.Value
		}
		*o = ValueLabel(vl.Value, vl.Label)
		return nil
	}

	return ErrInvalidOption
}

// Plains wraps every string as a plain option.
func Plains(labels ...string) []Option {
	out := make([]Option, 0, len(labels))
	for _, l := range labels {
		out = append(out, Plain(l))
	}
	return out
}

// Values returns the submitted values of opts, in order.
func Values(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.value)
	}
	return out
}

// Merge appends the entries of extra whose value is not already present.
func Merge(base []Option, extra ...Option) []Option {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]Option, 0, len(base)+len(extra))
	for _, o := range append(append([]Option{}, base...), extra...) {
		if o.value == "" {
			continue
		}
		if _, ok := seen[o.value]; ok {
			continue
		}
		seen[o.value] = struct{}{}
		out = append(out, o)
	}
	return out
}
