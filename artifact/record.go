package artifact

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"

	"github.com/apccurtiss/langlang/grammar"
)

// MarshalRecord encodes r produced by the named rule as indented JSON followed by a newline.
// Keys follow the order of rule captures, nested records follow their callee rules.
// HTML characters are not escaped.
func (a *Artifact) MarshalRecord(rule string, r grammar.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if e := enc.Encode(orderedRecord{a.rules, a.rules[rule], r}); e != nil {
		return nil, e
	}
	return buf.Bytes(), nil
}

type orderedRecord struct {
	rules  map[string]*grammar.Rule
	rule   *grammar.Rule
	record grammar.Record
}

// keys returns rule captures present in the record followed by any other keys in sorted order.
func (o orderedRecord) keys() []string {
	result := make([]string, 0, len(o.record))
	seen := make(map[string]bool, len(o.record))
	if o.rule != nil {
		for _, name := range o.rule.Captures {
			if _, ok := o.record[name]; ok && !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}
	for _, name := range slices.Sorted(maps.Keys(o.record)) {
		if !seen[name] {
			result = append(result, name)
		}
	}
	return result
}

// value wraps nested records with the rule that produced them.
func (o orderedRecord) value(name string) any {
	v := o.record[name]
	nested, ok := v.(grammar.Record)
	if !ok || o.rule == nil {
		return v
	}

	for i := len(o.rule.Steps) - 1; i >= 0; i-- {
		s := o.rule.Steps[i]
		if s.Capture != name {
			continue
		}
		if s.Op == grammar.CallRule {
			return orderedRecord{o.rules, o.rules[s.Arg], nested}
		}
		break
	}
	return orderedRecord{o.rules, nil, nested}
}

func (o orderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range o.keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if e := encodeValue(&buf, name); e != nil {
			return nil, e
		}
		buf.WriteByte(':')
		if e := encodeValue(&buf, o.value(name)); e != nil {
			return nil, e
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if e := enc.Encode(v); e != nil {
		return e
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
