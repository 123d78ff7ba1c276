package spajsonpo

import "regexp"

// KeyPattern selects key paths. A path matches when the expression matches
// at its start; the end is not anchored and "." also matches newlines.
type KeyPattern struct {
	expr string
	re   *regexp.Regexp
}

// CompilePattern compiles a single key pattern.
func CompilePattern(expr string) (*KeyPattern, error) {
	// Validate on its own first so that unbalanced groups cannot escape the
	// anchoring wrapper below.
	if _, err := regexp.Compile(expr); err != nil {
		return nil, &PatternError{Pattern: expr, Err: err}
	}
	re, err := regexp.Compile(`(?s)^(?:` + expr + `)`)
	if err != nil {
		return nil, &PatternError{Pattern: expr, Err: err}
	}
	return &KeyPattern{expr: expr, re: re}, nil
}

// CompilePatterns compiles exprs in order and stops at the first invalid one.
func CompilePatterns(exprs []string) ([]*KeyPattern, error) {
	patterns := make([]*KeyPattern, 0, len(exprs))
	for _, expr := range exprs {
		p, err := CompilePattern(expr)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Match reports whether path is selected by the pattern.
func (p *KeyPattern) Match(path string) bool {
	return p.re.MatchString(path)
}

func (p *KeyPattern) String() string {
	return p.expr
}
