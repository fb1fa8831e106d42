// path: report/normalize.go

// Package report implements the shared report pipeline: sentinel
// normalization of a raw draft, the reverse transform used when a stored
// report is reopened for editing, input masks and the preview/share
// formatter. Every form feeds the same pipeline; forms differ only in the
// declarative schema they pass in.
package report

import "github.com/lgnappsweb/qruuei-sub000/models"

// Sentinel is the token that stands for "field was left empty" in every
// normalized record, so preview, share and storage never have to tell "",
// null and [] apart.
const Sentinel = "NILL"

// Normalize walks a draft value and replaces every empty leaf with the
// sentinel token. Empty strings, nils, empty arrays and empty objects all
// collapse to the sentinel; a non-empty array of primitives (multi-select
// codes) is meaningful data and passes through unchanged; arrays of objects
// (repeatable groups) are normalized element by element.
//
// Normalize is idempotent and total: it never fails for tree-shaped input
// and normalizing twice equals normalizing once.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return Sentinel
	case string:
		if t == "" {
			return Sentinel
		}
		return t
	case []any:
		if len(t) == 0 {
			return Sentinel
		}
		if _, ok := t[0].(map[string]any); !ok {
			return t
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Normalize(e)
		}
		return out
	case []string:
		if len(t) == 0 {
			return Sentinel
		}
		return t
	case []map[string]any:
		if len(t) == 0 {
			return Sentinel
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Normalize(e)
		}
		return out
	case map[string]any:
		if len(t) == 0 {
			return Sentinel
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Normalize(e)
		}
		return out
	default:
		return v
	}
}

// NormalizeRecord normalizes a whole draft. A nil or empty draft yields an
// empty record, never the bare sentinel, since callers index into it.
func NormalizeRecord(draft map[string]any) map[string]any {
	out := make(map[string]any, len(draft))
	for k, v := range draft {
		out[k] = Normalize(v)
	}
	return out
}

// IsSentinel reports whether a value is the sentinel token.
func IsSentinel(v any) bool {
	s, ok := v.(string)
	return ok && s == Sentinel
}

// Reverse rebuilds an editable draft from a normalized record. Each sentinel
// is replaced by the empty value of the field's declared kind; the sentinel
// erased the original type, so the schema, not the stored value, decides
// between "", [] and false. Collapsed groups re-expand to empty arrays and
// group elements recurse with the group's own item shape. Fields the schema
// no longer declares are dropped.
func Reverse(rec map[string]any, fields []models.Field) map[string]any {
	draft := make(map[string]any, len(fields))
	for _, f := range fields {
		v, ok := rec[f.Key]
		if !ok || IsSentinel(v) {
			draft[f.Key] = models.EmptyValue(f)
			continue
		}
		switch f.Kind {
		case models.KindGroup:
			draft[f.Key] = reverseGroup(v, f.Item)
		case models.KindBoolean:
			b, ok := v.(bool)
			if !ok {
				b = false
			}
			draft[f.Key] = b
		case models.KindMultiSelect:
			draft[f.Key] = asList(v)
		default:
			draft[f.Key] = v
		}
	}
	return draft
}

func reverseGroup(v any, item []models.Field) []any {
	items := asList(v)
	out := make([]any, 0, len(items))
	for _, e := range items {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, any(Reverse(m, item)))
	}
	return out
}

func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	default:
		return []any{}
	}
}
