package spajsonpo

// Walk collects the string leaves of node whose key path matches one of
// patterns. path is the key path of node itself ("" for the root); every
// mapping descent appends "/" and the key. A string matching several
// patterns is recorded once per matching pattern.
//
// Sequences and non-string scalars are not traversed, so nothing inside an
// array is ever reachable.
func Walk(node Node, path string, patterns []*KeyPattern, filename string) *Catalog {
	acc := NewCatalog()
	walk(acc, node, path, patterns, filename)
	return acc
}

func walk(acc *Catalog, node Node, path string, patterns []*KeyPattern, filename string) {
	switch node.Kind {
	case KindString:
		for _, p := range patterns {
			if p.Match(path) {
				acc.Add(node.Str, Occurrence{File: filename, Path: path})
			}
		}
	case KindMapping:
		for _, f := range node.Fields {
			walk(acc, f.Value, path+"/"+f.Key, patterns, filename)
		}
	}
}
