package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lexforge/lexforge/internal/domain"
)

// decodeObject decodes raw as exactly one top-level JSON object. Leading or
// trailing prose is not stripped: the model contract requires JSON only, so
// anything beyond a single object is a parse failure.
func decodeObject(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON object")
	}
	// A bare null decodes into a nil map without error.
	if m == nil {
		return nil, fmt.Errorf("top-level value is null, not an object")
	}
	return m, nil
}

// fields wraps a decoded JSON map and coerces values field by field. A type
// mismatch (string where a list was required, number where a string was
// required) is recorded as a violation against that field, never a panic, so
// one bad field does not stop collection of the rest.
type fields struct {
	m  map[string]any
	vs []domain.Violation
}

func newFields(m map[string]any) *fields {
	return &fields{m: m}
}

func (f *fields) mismatch(key, want string, got any) {
	f.vs = append(f.vs, domain.Violation{
		Rule:    "field.type",
		Field:   key,
		Message: fmt.Sprintf("expected %s, got %T", want, got),
	})
}

func (f *fields) has(key string) bool {
	_, ok := f.m[key]
	return ok
}

func (f *fields) str(key string) string {
	v, ok := f.m[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.mismatch(key, "string", v)
		return ""
	}
	return s
}

func (f *fields) strPtr(key string) *string {
	v, ok := f.m[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		f.mismatch(key, "string", v)
		return nil
	}
	return &s
}

func (f *fields) strList(key string) []string {
	v, ok := f.m[key]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		f.mismatch(key, "list of strings", v)
		return nil
	}
	out := make([]string, 0, len(list))
	for i, el := range list {
		s, ok := el.(string)
		if !ok {
			f.mismatch(fmt.Sprintf("%s[%d]", key, i), "string", el)
			continue
		}
		out = append(out, s)
	}
	return out
}

func (f *fields) num(key string) float64 {
	v, ok := f.m[key]
	if !ok || v == nil {
		return 0
	}
	n, ok := v.(float64)
	if !ok {
		f.mismatch(key, "number", v)
		return 0
	}
	return n
}

func (f *fields) intVal(key string) int {
	return int(f.num(key))
}

func (f *fields) obj(key string) *fields {
	v, ok := f.m[key]
	if !ok || v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		f.mismatch(key, "object", v)
		return nil
	}
	return &fields{m: m}
}

// localized reads a nested {en, zh_tw} object at key.
func (f *fields) localized(key string) domain.LocalizedString {
	sub := f.obj(key)
	if sub == nil {
		return domain.LocalizedString{}
	}
	ls := domain.LocalizedString{EN: sub.str("en"), ZhTW: sub.str("zh_tw")}
	f.vs = append(f.vs, sub.vs...)
	return ls
}

// localizedPtr accepts either the nested form {key: {en, zh_tw}} or the flat
// pair key_en / key_zh_tw that question batch prompts ask the model for.
// The nested form wins when both are present.
func (f *fields) localizedPtr(key string) *domain.LocalizedString {
	if f.has(key) {
		ls := f.localized(key)
		return &ls
	}
	flatEN, flatZh := key+"_en", key+"_zh_tw"
	if !f.has(flatEN) && !f.has(flatZh) {
		return nil
	}
	return &domain.LocalizedString{EN: f.str(flatEN), ZhTW: f.str(flatZh)}
}

func (f *fields) choices(key string) []domain.ChoiceDetail {
	v, ok := f.m[key]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		f.mismatch(key, "list of choice objects", v)
		return nil
	}
	out := make([]domain.ChoiceDetail, 0, len(list))
	for i, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			f.mismatch(fmt.Sprintf("%s[%d]", key, i), "choice object", el)
			continue
		}
		sub := &fields{m: m}
		c := domain.ChoiceDetail{Text: sub.str("text")}
		if b, ok := m["isCorrect"].(bool); ok {
			c.IsCorrect = b
		} else if _, present := m["isCorrect"]; present {
			sub.mismatch(fmt.Sprintf("%s[%d].isCorrect", key, i), "bool", m["isCorrect"])
		}
		f.vs = append(f.vs, sub.vs...)
		out = append(out, c)
	}
	return out
}

// difficulty reads a nested difficulty object. The bool reports whether the
// key was present at all, so callers can fall back to a request default.
func (f *fields) difficulty(key string) (domain.DifficultyDetail, bool) {
	if !f.has(key) {
		return domain.DifficultyDetail{}, false
	}
	sub := f.obj(key)
	if sub == nil {
		return domain.DifficultyDetail{}, false
	}
	d := domain.DifficultyDetail{
		Stage: domain.Stage(sub.str("stage")),
		Grade: sub.intVal("grade"),
		Level: sub.intVal("level"),
		Name:  sub.localized("name"),
	}
	f.vs = append(f.vs, sub.vs...)
	return d, true
}

// timeVal parses an RFC 3339 timestamp, or stamps the current time when the
// key is absent. Re-ingesting a serialized entity keeps its original stamps.
func (f *fields) timeVal(key string) time.Time {
	v, ok := f.m[key]
	if !ok || v == nil {
		return domain.Timestamp()
	}
	s, ok := v.(string)
	if !ok {
		f.mismatch(key, "RFC 3339 timestamp", v)
		return domain.Timestamp()
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		f.mismatch(key, "RFC 3339 timestamp", v)
		return domain.Timestamp()
	}
	return t.UTC()
}
