package jsonview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object with its members in document order.
type Object []Member

// Get returns the value of key.
func (o Object) Get(key string) (any, bool) {
	for i := range o {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Parse parses exactly one JSON value from data. Objects are returned as
// Object, arrays as []any and numbers as json.Number so that their literal
// text is preserved. Trailing non-space data is an error.
func Parse(data []byte) (any, error) {
	d := NewDecoder(bytes.NewReader(data))
	v, err := d.Decode()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("jsonview: %w", io.ErrUnexpectedEOF)
		}
		return nil, err
	}
	if _, err := d.dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("invalid character after top-level value")
		}
		return nil, fmt.Errorf("jsonview: %w", err)
	}
	return v, nil
}

// A Decoder reads a stream of JSON values. Values may be separated by
// whitespace or simply concatenated: `{}{}` is two values.
type Decoder struct {
	dec *json.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Decoder{dec: dec}
}

// Decode returns the next value in the stream, or io.EOF when there are
// no more values.
func (d *Decoder) Decode() (any, error) {
	t, err := d.dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, fmt.Errorf("jsonview: %w", err)
	}
	v, err := d.value(t)
	if err != nil {
		return nil, fmt.Errorf("jsonview: %w", err)
	}
	return v, nil
}

// InputOffset returns the input stream byte offset of the decoder.
func (d *Decoder) InputOffset() int64 { return d.dec.InputOffset() }

// token reads a token from inside a value, where EOF is unexpected.
func (d *Decoder) token() (json.Token, error) {
	t, err := d.dec.Token()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return t, err
}

func (d *Decoder) value(t json.Token) (any, error) {
	delim, ok := t.(json.Delim)
	if !ok {
		// nil, bool, json.Number or string
		return t, nil
	}
	switch delim {
	case '{':
		return d.object()
	case '[':
		return d.array()
	}
	return nil, fmt.Errorf("unexpected delimiter: %q", rune(delim))
}

func (d *Decoder) object() (Object, error) {
	obj := Object{}
	var index map[string]int
	for d.dec.More() {
		t, err := d.token()
		if err != nil {
			return nil, err
		}
		key, ok := t.(string)
		if !ok {
			return nil, fmt.Errorf("invalid object key: %v", t)
		}
		if t, err = d.token(); err != nil {
			return nil, err
		}
		v, err := d.value(t)
		if err != nil {
			return nil, err
		}
		// Duplicate keys keep their first position and take the last value.
		if i, dup := index[key]; dup {
			obj[i].Value = v
			continue
		}
		if index == nil {
			index = make(map[string]int)
		}
		index[key] = len(obj)
		obj = append(obj, Member{Key: key, Value: v})
	}
	// '}'
	if _, err := d.token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func (d *Decoder) array() ([]any, error) {
	arr := []any{}
	for d.dec.More() {
		t, err := d.token()
		if err != nil {
			return nil, err
		}
		v, err := d.value(t)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	// ']'
	if _, err := d.token(); err != nil {
		return nil, err
	}
	return arr, nil
}
