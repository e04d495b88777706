package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

var ErrMalformedJSON = errors.New("malformed JSON document")

// Object is a decoded JSON object that keeps member order.
type Object struct {
	keys   []string
	fields map[string]any
}

func newObject() *Object {
	return &Object{fields: make(map[string]any)}
}

func (o *Object) set(key string, v any) {
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

func (o *Object) Get(key string) (any, bool) {
	v, ok := o.fields[key]
	return v, ok
}

func (o *Object) Keys() []string {
	return o.keys
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Decode parses data into an untyped tree made of *Object, []any, string,
// float64, bool and nil. Member order of objects is preserved; a repeated
// member keeps its first position and its last value.
func Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedJSON)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: invalid syntax", ErrMalformedJSON)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	root, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrMalformedJSON)
	}
	return root, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (any, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := newObject()
		for {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			if d, ok := tok.(json.Delim); ok && d == '}' {
				return obj, nil
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("object key must be a string, got %T", tok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.set(key, val)
		}
	case '[':
		arr := make([]any, 0)
		for {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			if d, ok := tok.(json.Delim); ok && d == ']' {
				return arr, nil
			}
			val, err := decodeToken(dec, tok)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
	}
	return nil, fmt.Errorf("unexpected delimiter %q", rune(delim))
}
