// Package locale resolves the language prefix of site URLs.
package locale

import "strings"

// Locale is a supported site language.
type Locale string

const (
	English    Locale = "en"
	Indonesian Locale = "id"
	Arabic     Locale = "ar"
)

// Default is used when a path carries no locale segment.
const Default = Indonesian

// Supported lists the site languages in the order they are offered.
var Supported = []Locale{English, Indonesian, Arabic}

// Dir is a text direction as used in the HTML dir attribute.
type Dir string

const (
	LTR Dir = "ltr"
	RTL Dir = "rtl"
)

// Resolve reports whether segment names a supported locale.  An empty
// segment resolves to Default.  Matching is exact: "EN" is not "en".
func Resolve(segment string) (Locale, bool) {
	if segment == "" {
		return Default, true
	}
	for _, l := range Supported {
		if string(l) == segment {
			return l, true
		}
	}
	return "", false
}

// Direction derives the text direction from the locale alone.
func Direction(l Locale) Dir {
	if l == Arabic {
		return RTL
	}
	return LTR
}

// FromPath resolves the first segment of an URL path.
func FromPath(path string) (Locale, bool) {
	path = strings.TrimPrefix(path, "/")
	seg, _, _ := strings.Cut(path, "/")
	return Resolve(seg)
}

// Path joins a locale with a page path: Path("ar", "hostel") == "/ar/hostel".
func Path(l Locale, page string) string {
	page = strings.Trim(page, "/")
	if page == "" {
		return "/" + string(l)
	}
	return "/" + string(l) + "/" + page
}
