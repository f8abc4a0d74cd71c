package domain

import (
	"bytes"
	"encoding/json"
)

type attrState uint8

const (
	attrAbsent attrState = iota
	attrBlank
	attrSet
)

// Attr is a profile attribute that may be missing from the source record.
// The zero value is absent. Blank is the deliberate empty value given to
// synthesized users so their rows still render.
type Attr[T any] struct {
	value T
	state attrState
}

func Some[T any](v T) Attr[T] { return Attr[T]{value: v, state: attrSet} }

func Blank[T any]() Attr[T] { return Attr[T]{state: attrBlank} }

// FromPtr maps a nil pointer to an absent attribute.
func FromPtr[T any](p *T) Attr[T] {
	if p == nil {
		return Attr[T]{}
	}
	return Some(*p)
}

func (a Attr[T]) Present() bool { return a.state != attrAbsent }
func (a Attr[T]) IsBlank() bool { return a.state == attrBlank }

// Get returns the value and whether one is set. Blank attributes report false.
func (a Attr[T]) Get() (T, bool) { return a.value, a.state == attrSet }

// Format renders the attribute. Blank renders as "". ok is false only when
// the attribute is absent.
func (a Attr[T]) Format(f func(T) string) (s string, ok bool) {
	switch a.state {
	case attrSet:
		return f(a.value), true
	case attrBlank:
		return "", true
	default:
		return "", false
	}
}

func (a Attr[T]) MarshalJSON() ([]byte, error) {
	switch a.state {
	case attrSet:
		return json.Marshal(a.value)
	case attrBlank:
		return []byte(`""`), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null and "" as blank. A key that is missing from the
// object never reaches here and leaves the attribute absent.
func (a *Attr[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*a = Blank[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Some(v)
	return nil
}

// IsZero reports an absent attribute so omitzero drops it on encode.
func (a Attr[T]) IsZero() bool { return a.state == attrAbsent }
