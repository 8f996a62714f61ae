package envfile

import "strings"

// Skeleton derives a value-stripped example text from a secret file's raw
// text. The transform is purely textual and line-for-line: blank lines,
// comment lines, and lines without '=' pass through unchanged; for
// key/value lines the value is dropped while an inline " #" comment is
// kept after the emptied value. Quoted values lose any comment suffix,
// since the marker may sit inside the quotes and the skeleton must never
// carry a fragment of a value. Output always has exactly as many lines
// as input, preserving the original structure a parse/serialize round
// trip would discard.
func Skeleton(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = skeletonLine(line)
	}
	return strings.Join(out, "\n")
}

func skeletonLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return line
	}
	eq := strings.Index(line, "=")
	if eq < 0 {
		return line
	}
	key := strings.TrimSpace(line[:eq])
	value := line[eq+1:]
	// A quoted value may contain " #" inside the quotes; treating that
	// as a comment would copy a fragment of the secret into the
	// skeleton. Quoted values always reduce to a bare key.
	if v := strings.TrimSpace(value); len(v) > 0 && (v[0] == '"' || v[0] == '\'') {
		return key + "="
	}
	if i := strings.Index(value, " #"); i >= 0 {
		return key + "=" + value[i:]
	}
	return key + "="
}
