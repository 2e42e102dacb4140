package internal

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nocturnecity/image-reframer/pkg"
)

var nonAlnumRE = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s, strips diacritics and collapses every run of other characters into "_".
func Slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Trim(nonAlnumRE.ReplaceAllString(strings.ToLower(folded), "_"), "_")
}

// FileName suggests an output name for a resize driven by intent.
func FileName(intent pkg.Intent, target pkg.Dimensions, percent int, format pkg.Format) string {
	ext := Extension(format)
	switch in := intent.(type) {
	case pkg.Preset:
		return fmt.Sprintf("%s_%s_%s.%s", Slug(in.Platform), Slug(in.Name), target, ext)
	case pkg.Percentage:
		return fmt.Sprintf("resized_%dpercent.%s", percent, ext)
	default:
		return fmt.Sprintf("resized_%s.%s", target, ext)
	}
}

// ConvertedFileName derives "<base>_converted.<ext>" from the source name.
func ConvertedFileName(source string, format pkg.Format) string {
	base := path.Base(strings.ReplaceAll(source, "\\", "/"))
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	return fmt.Sprintf("%s_converted.%s", base, Extension(format))
}
