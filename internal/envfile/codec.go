package envfile

import (
	"strings"
)

const exportPrefix = "export "

// Parse reads key/value pairs from env-file text into an ordered EnvMap.
//
// Blank lines and lines whose first non-whitespace character is '#' are
// ignored, as are lines without '='. A leading "export " token is
// stripped. If the value is wrapped in one matching pair of quotes
// covering the whole remaining text (at most a " #" comment may follow
// the close quote), the quoted content is taken verbatim; double-quoted
// content is unescaped. Otherwise an inline comment, recognized only as
// the literal " #", is removed. Duplicate keys resolve to the last
// occurrence.
func Parse(text string) *EnvMap {
	m := NewEnvMap()
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		trimmed = strings.TrimPrefix(trimmed, exportPrefix)
		eq := strings.Index(trimmed, "=")
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(trimmed[:eq])
		if key == "" {
			continue
		}
		m.Set(key, parseValue(trimmed[eq+1:]))
	}
	return m
}

// parseValue interprets the text after the first '='. The quote check
// runs before comment stripping so quoted values may contain " #".
func parseValue(raw string) string {
	v := strings.TrimSpace(raw)
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') {
		if content, ok := unquote(v); ok {
			return content
		}
	}
	if i := strings.Index(v, " #"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	return v
}

// unquote extracts the content of a value that starts with a quote
// character. Double-quoted content honors backslash escapes; single
// quotes end at the next single quote. The quotes must cover the entire
// remaining text: the closing quote is only honored when it is the last
// character or is followed by a " #" comment. Anything else (no closing
// quote, or trailing text after it) returns false and the value is
// treated as unquoted text, so no suffix is ever silently dropped.
func unquote(v string) (string, bool) {
	q := v[0]
	var b strings.Builder
	for i := 1; i < len(v); i++ {
		c := v[i]
		if q == '"' && c == '\\' && i+1 < len(v) {
			b.WriteByte(v[i+1])
			i++
			continue
		}
		if c == q {
			rest := v[i+1:]
			if rest == "" || strings.HasPrefix(rest, " #") {
				return b.String(), true
			}
			return "", false
		}
		b.WriteByte(c)
	}
	return "", false
}

// Serialize writes the map back to env-file text, one KEY=VALUE line per
// key in iteration order, ending with a single trailing newline. Values
// containing whitespace, '#', a quote character, or '=' are emitted in
// escape-safe double quotes so Parse recovers them exactly.
func Serialize(m *EnvMap) string {
	var b strings.Builder
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		b.WriteString(k)
		b.WriteByte('=')
		if needsQuoting(v) {
			b.WriteString(quote(v))
		} else {
			b.WriteString(v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func needsQuoting(v string) bool {
	return strings.ContainsAny(v, " \t#\"'=")
}

func quote(v string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '\\', '"':
			b.WriteByte('\\')
		}
		b.WriteByte(v[i])
	}
	b.WriteByte('"')
	return b.String()
}
