// Package jsonmerge merges JSON-shaped trees (map[string]any / []any / scalars).
//
// Objects merge key by key and recurse only when both sides are objects.
// Anything else in the source, arrays included, replaces the target value
// wholesale. This is the forward-compatibility rule for persisted documents:
// defaults fill keys that an older stored document does not know about,
// stored leaves always win.
package jsonmerge

import (
	"encoding/json"
	"fmt"
)

// DeepMerge returns a new tree with source merged over target. Neither input
// is mutated and the result shares no maps or slices with them.
func DeepMerge(target, source map[string]any) map[string]any {
	out := make(map[string]any, len(target)+len(source))
	for k, v := range target {
		out[k] = Clone(v)
	}
	for k, sv := range source {
		tv, exists := target[k]
		tObj, tIsObj := tv.(map[string]any)
		sObj, sIsObj := sv.(map[string]any)
		if exists && tIsObj && sIsObj {
			out[k] = DeepMerge(tObj, sObj)
			continue
		}
		out[k] = Clone(sv)
	}
	return out
}

// Clone deep-copies a JSON tree. Values that are not maps or slices are
// returned as-is (strings, numbers, booleans and nil are immutable).
func Clone(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, inner := range typed {
			out[k] = Clone(inner)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, inner := range typed {
			out[i] = Clone(inner)
		}
		return out
	default:
		return v
	}
}

// ToMap converts a struct (or any JSON-encodable object) into its JSON tree.
func ToMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	return out, nil
}

// Decode converts a JSON tree into dest.
func Decode(tree map[string]any, dest any) error {
	raw, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode tree: %w", err)
	}
	return nil
}

// Conform returns a copy of source without the leaves whose JSON kind differs
// from the value at the same path in shape, and the dotted paths it dropped.
// Keys shape does not know and shape values that are null are kept as they
// are. Array elements are checked against the first element of the shape
// array; an empty shape array accepts any elements.
func Conform(source, shape map[string]any) (map[string]any, []string) {
	var dropped []string
	return conformObject(source, shape, "", &dropped), dropped
}

func conformObject(source, shape map[string]any, prefix string, dropped *[]string) map[string]any {
	out := make(map[string]any, len(source))
	for k, sv := range source {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		ref, known := shape[k]
		if !known || ref == nil {
			out[k] = Clone(sv)
			continue
		}
		if v, ok := conformValue(sv, ref, path, dropped); ok {
			out[k] = v
		}
	}
	return out
}

func conformValue(v, ref any, path string, dropped *[]string) (any, bool) {
	if kindOf(v) != kindOf(ref) {
		*dropped = append(*dropped, path)
		return nil, false
	}
	switch typed := v.(type) {
	case map[string]any:
		return conformObject(typed, ref.(map[string]any), path, dropped), true
	case []any:
		refItems := ref.([]any)
		if len(refItems) == 0 || refItems[0] == nil {
			return Clone(typed), true
		}
		out := make([]any, 0, len(typed))
		for i, item := range typed {
			if conformed, ok := conformValue(item, refItems[0], fmt.Sprintf("%s[%d]", path, i), dropped); ok {
				out = append(out, conformed)
			}
		}
		return out, true
	default:
		return v, true
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
