// path: models/schema.go
package models

import (
	"fmt"
	"strings"
	"unicode"
)

// FieldKind tags how a field's value is shaped. The kind drives the
// type-appropriate empty value when a stored report is reopened for editing,
// since the sentinel token erases that information from the record itself.
type FieldKind string

const (
	KindText        FieldKind = "text"
	KindBoolean     FieldKind = "boolean"
	KindSelect      FieldKind = "select"
	KindMultiSelect FieldKind = "multiselect"
	KindGroup       FieldKind = "group"
)

// Field declares one input of a form.
type Field struct {
	Key      string    `json:"key"`
	Kind     FieldKind `json:"kind"`
	Label    string    `json:"label,omitempty"`
	Required bool      `json:"required,omitempty"`
	Options  []string  `json:"options,omitempty"`
	// Item is the shape of one element of a repeatable group (kind == group).
	Item []Field `json:"item,omitempty"`
}

// DisplayLabel returns the declared label, or one derived from the camelCase
// key: a space before each uppercase letter, first letter capitalized.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return LabelFromKey(f.Key)
}

// LabelFromKey derives a human label from a camelCase field key.
func LabelFromKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Section groups fields under a title for preview and share rendering, in
// declaration order.
type Section struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// RuleOp is the predicate kind of a conditional-visibility rule.
type RuleOp string

const (
	// OpTruthy shows the field only while the controlling field is true.
	OpTruthy RuleOp = "truthy"
	// OpEquals shows the field only while the controlling field equals Value.
	OpEquals RuleOp = "equals"
	// OpContains shows the field only while the controlling multi-select
	// includes Value.
	OpContains RuleOp = "contains"
)

// FieldRule suppresses a dependent field unless its controlling field
// satisfies the predicate. The same rule source drives preview suppression
// and editing-time show/hide.
type FieldRule struct {
	Field     string `json:"field"`
	DependsOn string `json:"dependsOn"`
	Op        RuleOp `json:"op"`
	Value     string `json:"value,omitempty"`
}

// FormSchema is the declarative configuration one form contributes: its
// fields, section groupings and conditional rules. Forms supply data only;
// the pipeline algorithms live in the report and session packages.
type FormSchema struct {
	Path          string `json:"path"`
	Title         string `json:"title"`
	CodOcorrencia string `json:"codOcorrencia"`
	// RequireTrackingNumber makes confirm-and-save reject an empty tracking
	// number for this form instead of defaulting it to the sentinel.
	RequireTrackingNumber bool        `json:"requireTrackingNumber"`
	Fields                []Field     `json:"fields"`
	Sections              []Section   `json:"sections"`
	Rules                 []FieldRule `json:"rules,omitempty"`
}

// FieldByKey looks a field declaration up by key.
func (s *FormSchema) FieldByKey(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// RuleFor returns the visibility rule governing key, if any.
func (s *FormSchema) RuleFor(key string) (FieldRule, bool) {
	for _, r := range s.Rules {
		if r.Field == key {
			return r, true
		}
	}
	return FieldRule{}, false
}

// EmptyDraft builds the form's default draft: every field at its
// kind-appropriate empty value.
func (s *FormSchema) EmptyDraft() map[string]any {
	draft := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		draft[f.Key] = EmptyValue(f)
	}
	return draft
}

// EmptyValue returns the kind-appropriate empty value for a field.
func EmptyValue(f Field) any {
	switch f.Kind {
	case KindBoolean:
		return false
	case KindMultiSelect, KindGroup:
		return []any{}
	default:
		return ""
	}
}

// Validate runs the basic required-field check over a raw draft and returns
// the offending field keys. Business rules beyond presence are not checked.
func (s *FormSchema) Validate(draft map[string]any) []string {
	var missing []string
	for _, f := range s.Fields {
		if !f.Required {
			continue
		}
		if isBlank(draft[f.Key]) {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case bool:
		return false
	default:
		return fmt.Sprint(v) == ""
	}
}
