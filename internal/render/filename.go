package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"resume-studio/internal/model"
)

// FileName derives a download name from identity.name, e.g.
// "José Álvarez" and ".pdf" give "Jose_Alvarez_Resume.pdf". Without a
// usable name it returns "resume" plus ext.
func FileName(doc model.Document, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.TrimSpace(doc.Identity.Name),
	)
	if err != nil {
		folded = doc.Identity.Name
	}

	parts := strings.FieldsFunc(folded, func(r rune) bool {
		return r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	if len(parts) == 0 {
		return "resume" + ext
	}
	return strings.Join(parts, "_") + "_Resume" + ext
}
