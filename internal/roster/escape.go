package roster

import (
	"fmt"
	"strings"
)

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape returns the string form of v with the five HTML-significant
// characters replaced by entities, safe in both text and quoted attribute
// positions. It must be applied exactly once, to raw values.
func Escape(v any) string {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return markupEscaper.Replace(s)
}
