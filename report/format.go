// path: report/format.go
package report

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lgnappsweb/qruuei-sub000/models"
)

// shareTemplate is the messaging-app deep link the formatted text is opened
// with; the text rides percent-encoded in the query string.
const shareTemplate = "https://api.whatsapp.com/send?text="

// trackingLabel is the label of the externally assigned incident number on
// the share text's closing line.
const trackingLabel = "NÚMERO DA OCORRÊNCIA"

// PreviewField is one rendered label/value pair.
type PreviewField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// PreviewGroup is one numbered sub-card of a repeatable group, e.g.
// "Veículo 2".
type PreviewGroup struct {
	Title  string         `json:"title"`
	Fields []PreviewField `json:"fields"`
}

// PreviewSection is a section of the on-screen preview, in declaration
// order. Sections whose every field was suppressed are omitted entirely.
type PreviewSection struct {
	Title  string         `json:"title"`
	Fields []PreviewField `json:"fields,omitempty"`
	Groups []PreviewGroup `json:"groups,omitempty"`
}

// FormatPreview renders a normalized record into label/value listings
// grouped by the schema's sections. Empty and sentinel values are skipped,
// as are fields whose conditional rule is not satisfied; a field declared in
// a section but absent from the record is treated as empty, never an error.
func FormatPreview(rec map[string]any, schema *models.FormSchema) []PreviewSection {
	var out []PreviewSection
	for _, sec := range schema.Sections {
		ps := PreviewSection{Title: sec.Title}
		for _, key := range sec.Fields {
			field, declared := schema.FieldByKey(key)
			if !declared {
				field = models.Field{Key: key, Kind: models.KindText}
			}
			v, ok := rec[key]
			if !ok || suppressed(rec, schema, key) || isEmptyValue(v) {
				continue
			}
			if field.Kind == models.KindGroup {
				ps.Groups = append(ps.Groups, renderGroups(v, field)...)
				continue
			}
			ps.Fields = append(ps.Fields, PreviewField{
				Key:   key,
				Label: field.DisplayLabel(),
				Value: renderValue(v),
			})
		}
		if len(ps.Fields) > 0 || len(ps.Groups) > 0 {
			out = append(out, ps)
		}
	}
	return out
}

// FormatShare flattens a normalized record into the section-delimited text
// block sent to the messaging app: a bolded title line, one bolded line per
// section followed by "*LABEL:* value" lines, sections separated by a blank
// line, and the tracking number as the closing line when present.
func FormatShare(rec map[string]any, schema *models.FormSchema, title, trackingNumber string) string {
	var blocks []string
	blocks = append(blocks, "*"+strings.ToUpper(title)+"*")

	for _, ps := range FormatPreview(rec, schema) {
		var b strings.Builder
		b.WriteString("*" + strings.ToUpper(ps.Title) + "*")
		for _, f := range ps.Fields {
			b.WriteString("\n*" + strings.ToUpper(f.Label) + ":* " + f.Value)
		}
		for _, g := range ps.Groups {
			b.WriteString("\n*" + strings.ToUpper(g.Title) + "*")
			for _, f := range g.Fields {
				b.WriteString("\n*" + strings.ToUpper(f.Label) + ":* " + f.Value)
			}
		}
		blocks = append(blocks, b.String())
	}

	if trackingNumber != "" && trackingNumber != Sentinel {
		blocks = append(blocks, "*"+trackingLabel+":* "+trackingNumber)
	}
	return strings.Join(blocks, "\n\n")
}

// ShareURL embeds a share text into the messaging-app deep link template.
func ShareURL(text string) string {
	return shareTemplate + url.QueryEscape(text)
}

func renderGroups(v any, field models.Field) []PreviewGroup {
	label := field.DisplayLabel()
	items := asList(v)
	out := make([]PreviewGroup, 0, len(items))
	for i, e := range items {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		g := PreviewGroup{Title: fmt.Sprintf("%s %d", label, i+1)}
		for _, f := range field.Item {
			iv, ok := m[f.Key]
			if !ok || isEmptyValue(iv) {
				continue
			}
			g.Fields = append(g.Fields, PreviewField{
				Key:   f.Key,
				Label: f.DisplayLabel(),
				Value: renderValue(iv),
			})
		}
		if len(g.Fields) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// suppressed evaluates the field's conditional rule, if any, against the
// record. Missing controlling values never satisfy a rule.
func suppressed(rec map[string]any, schema *models.FormSchema, key string) bool {
	rule, ok := schema.RuleFor(key)
	if !ok {
		return false
	}
	ctrl := rec[rule.DependsOn]
	switch rule.Op {
	case models.OpTruthy:
		b, ok := ctrl.(bool)
		return !ok || !b
	case models.OpEquals:
		return IsSentinel(ctrl) || fmt.Sprint(ctrl) != rule.Value
	case models.OpContains:
		for _, e := range asList(ctrl) {
			if fmt.Sprint(e) == rule.Value {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "" || t == Sentinel
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	default:
		return false
	}
}

// renderValue stringifies a surviving value: booleans become the localized
// yes/no tokens, arrays join with a comma, everything is upper-cased.
func renderValue(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "SIM"
		}
		return "NÃO"
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = fmt.Sprint(e)
		}
		return strings.ToUpper(strings.Join(parts, ", "))
	case []string:
		return strings.ToUpper(strings.Join(t, ", "))
	default:
		return strings.ToUpper(fmt.Sprint(t))
	}
}
