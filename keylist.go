package spajsonpo

import "fmt"

// KeyList is the "key-match" field of a project file. YAML accepts a single
// pattern or a list of patterns.
type KeyList []string

// UnmarshalYAML allows key-match to be given as a string or a list of strings.
func (k *KeyList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*k = nil
		return nil
	case string:
		*k = KeyList{t}
		return nil
	case []interface{}:
		out := make(KeyList, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("key-match[%d] must be string, got %T", i, item)
			}
			out = append(out, s)
		}
		*k = out
		return nil
	default:
		return fmt.Errorf("key-match must be string or list, got %T", v)
	}
}

// MarshalYAML emits a single pattern as a scalar and several as a list.
func (k KeyList) MarshalYAML() (interface{}, error) {
	switch len(k) {
	case 0:
		return nil, nil
	case 1:
		return k[0], nil
	default:
		return []string(k), nil
	}
}
