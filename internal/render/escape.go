package render

import "strings"

var texReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
)

// EscapeTeX escapes every character LaTeX treats specially in body text.
func EscapeTeX(s string) string {
	return texReplacer.Replace(s)
}

// URLs inside \href keep their backslash-free form; only the characters
// that break the argument are escaped.
var texURLReplacer = strings.NewReplacer(
	`\`, `/`,
	`%`, `\%`,
	`#`, `\#`,
	`{`, `%7B`,
	`}`, `%7D`,
)

func texURL(u string) string {
	return texURLReplacer.Replace(u)
}
