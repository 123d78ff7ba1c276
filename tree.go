package spajsonpo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Kind tags the variant held by a Node.
type Kind int

const (
	// KindOther covers sequences, numbers, booleans and null. Their contents
	// are never traversed.
	KindOther Kind = iota
	KindString
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindMapping:
		return "mapping"
	default:
		return "other"
	}
}

// Node is one value of the generic tree printed by the converter.
type Node struct {
	Kind   Kind
	Str    string
	Fields []Field
}

// Field is one key of a mapping. Fields keep the converter's output order.
type Field struct {
	Key   string
	Value Node
}

// StringNode returns a string leaf.
func StringNode(s string) Node {
	return Node{Kind: KindString, Str: s}
}

// MappingNode returns a mapping with the given fields in order.
func MappingNode(fields ...Field) Node {
	return Node{Kind: KindMapping, Fields: fields}
}

var (
	errEmptyOutput = errors.New("converter output is empty")
	errInvalidJSON = errors.New("converter output is not valid JSON")
	errTrailing    = errors.New("converter output has data after the top-level value")
)

// ParseTree decodes converter output into a Node tree.
//
// The bytes must be a single valid JSON value. The decoder is driven token by
// token so that mapping keys come out in the order the converter wrote them,
// which keeps the walk (and everything downstream of it) deterministic. A key
// repeated within one mapping keeps its first position and its last value.
func ParseTree(data []byte) (Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Node{}, &ParseError{Err: errEmptyOutput}
	}
	if !json.Valid(data) {
		return Node{}, &ParseError{Err: errInvalidJSON}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := decodeNode(dec)
	if err != nil {
		return Node{}, &ParseError{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return Node{}, &ParseError{Err: errTrailing}
	}
	return root, nil
}

func decodeNode(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, err
	}
	switch t := tok.(type) {
	case string:
		return StringNode(t), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeMapping(dec)
		case '[':
			for dec.More() {
				if _, err := decodeNode(dec); err != nil {
					return Node{}, err
				}
			}
			if _, err := dec.Token(); err != nil {
				return Node{}, err
			}
			return Node{}, nil
		}
		return Node{}, fmt.Errorf("unexpected delimiter %q", rune(t))
	default:
		return Node{}, nil
	}
}

func decodeMapping(dec *json.Decoder) (Node, error) {
	var fields []Field
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Node{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Node{}, fmt.Errorf("mapping key is %T, not a string", tok)
		}
		value, err := decodeNode(dec)
		if err != nil {
			return Node{}, err
		}
		if i, dup := seen[key]; dup {
			fields[i].Value = value
			continue
		}
		seen[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: value})
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return Node{}, err
	}
	return MappingNode(fields...), nil
}
