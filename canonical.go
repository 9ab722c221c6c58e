package funcbox

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind enumerates the canonical value variants.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// CanonicalValue is the tagged-union representation a script result takes
// when it crosses the sandbox boundary: null, boolean, number, string,
// array, or object. Numbers keep their sandbox lexical form; object
// members keep the order the sandbox emitted them in.
type CanonicalValue struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []CanonicalValue
	obj  []Member
}

// Member is one key/value pair of a canonical object.
type Member struct {
	Key   string
	Value CanonicalValue
}

func (v CanonicalValue) Kind() Kind { return v.kind }

// Bool returns the boolean payload; meaningful only for KindBool.
func (v CanonicalValue) Bool() bool { return v.b }

// Number returns the numeric payload; meaningful only for KindNumber.
func (v CanonicalValue) Number() json.Number { return v.num }

// Text returns the string payload; meaningful only for KindString.
func (v CanonicalValue) Text() string { return v.str }

// Items returns the element slice; meaningful only for KindArray.
func (v CanonicalValue) Items() []CanonicalValue { return v.arr }

// Members returns the ordered key/value pairs; meaningful only for KindObject.
func (v CanonicalValue) Members() []Member { return v.obj }

// DecodeCanonical parses one complete JSON document into a CanonicalValue.
// Trailing data after the document is an error.
func DecodeCanonical(text string) (CanonicalValue, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return CanonicalValue{}, fmt.Errorf("decoding canonical value: %w", err)
	}
	if dec.More() {
		return CanonicalValue{}, fmt.Errorf("decoding canonical value: trailing data after document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (CanonicalValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return CanonicalValue{}, err
	}
	switch t := tok.(type) {
	case nil:
		return CanonicalValue{kind: KindNull}, nil
	case bool:
		return CanonicalValue{kind: KindBool, b: t}, nil
	case json.Number:
		return CanonicalValue{kind: KindNumber, num: t}, nil
	case string:
		return CanonicalValue{kind: KindString, str: t}, nil
	case json.Delim:
		switch t {
		case '[':
			arr := []CanonicalValue{}
			for dec.More() {
				elem, err := decodeValue(dec)
				if err != nil {
					return CanonicalValue{}, err
				}
				arr = append(arr, elem)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return CanonicalValue{}, err
			}
			return CanonicalValue{kind: KindArray, arr: arr}, nil
		case '{':
			obj := []Member{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return CanonicalValue{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return CanonicalValue{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return CanonicalValue{}, err
				}
				obj = append(obj, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // closing }
				return CanonicalValue{}, err
			}
			return CanonicalValue{kind: KindObject, obj: obj}, nil
		}
	}
	return CanonicalValue{}, fmt.Errorf("unexpected token %v", tok)
}

// EncodeJSON renders the value back to compact JSON text, preserving
// number forms and object member order.
func (v CanonicalValue) EncodeJSON() string {
	var sb strings.Builder
	v.encode(&sb)
	return sb.String()
}

func (v CanonicalValue) encode(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(v.num.String())
	case KindString:
		writeJSONString(sb, v.str)
	case KindArray:
		sb.WriteByte('[')
		for i, elem := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			elem.encode(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, m := range v.obj {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONString(sb, m.Key)
			sb.WriteByte(':')
			m.Value.encode(sb)
		}
		sb.WriteByte('}')
	}
}

func writeJSONString(sb *strings.Builder, s string) {
	b, _ := json.Marshal(s)
	sb.Write(b)
}
