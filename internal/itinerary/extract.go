package itinerary

import (
	"slices"
	"strconv"
)

const rawKey = "raw"

// ExtractRawValues collects every value stored under a "raw" key anywhere in tree.
//
// The walk is depth-first: Object members in document order, sequence elements by index.
// A plain map[string]any has no document order, so its keys are visited lexicographically.
// A captured value is not searched further, so raw keys nested inside it are not repeated.
func ExtractRawValues(tree any) ([]any, error) {
	return extractRawValues(tree, DefaultMaxDepth)
}

func extractRawValues(tree any, maxDepth int) ([]any, error) {
	w := &rawWalker{maxDepth: maxDepth, values: []any{}}
	if err := w.walk(tree, "$", 0); err != nil {
		return nil, err
	}
	return w.values, nil
}

type rawWalker struct {
	maxDepth int
	values   []any
}

func (w *rawWalker) walk(node any, path string, depth int) error {
	if depth > w.maxDepth {
		return &ExtractionError{Path: path, Depth: depth, Err: ErrMaxDepth}
	}

	switch n := node.(type) {
	case Object:
		for _, m := range n {
			if err := w.visit(m.Key, m.Value, path, depth); err != nil {
				return err
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if err := w.visit(k, n[k], path, depth); err != nil {
				return err
			}
		}
	case []any:
		for i, elem := range n {
			if err := w.walk(elem, path+"["+strconv.Itoa(i)+"]", depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *rawWalker) visit(key string, value any, path string, depth int) error {
	if key == rawKey {
		w.values = append(w.values, value)
		return nil
	}
	return w.walk(value, path+"."+key, depth+1)
}
