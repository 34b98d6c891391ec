// Package report renders correlated coverage results into text formats.
// Every renderer is a pure read of a completed CoverageResult.
package report

import (
	"strings"

	"github.com/cockroachdb/errors"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatRaw       Format = "raw"
	FormatHTML      Format = "html"
	FormatHTML2     Format = "html2"
	FormatCobertura Format = "cobertura"
	FormatOpenCover Format = "opencover"
	FormatNull      Format = "null"
)

// Formats lists every supported format in a stable order.
var Formats = []Format{FormatRaw, FormatHTML, FormatHTML2, FormatCobertura, FormatOpenCover, FormatNull}

var fileNames = map[Format]string{
	FormatRaw:       "sqlcover.xml",
	FormatHTML:      "sqlcover.html",
	FormatHTML2:     "sqlcover2.html",
	FormatCobertura: "cobertura.xml",
	FormatOpenCover: "opencover.xml",
	FormatNull:      "ncover.xml",
}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := fileNames[f]; !ok {
		return "", errors.Newf("unknown report format %q", name)
	}

	return f, nil
}

// DefaultFileName returns the file name a format is written to.
func DefaultFileName(f Format) string {
	return fileNames[f]
}

// Options carries per-format settings for Render. A nil Serializer selects
// OpenCoverSerializer.
type Options struct {
	Cobertura  CoberturaOptions
	Serializer Serializer
}

// Render produces the report for format f.
func Render(f Format, result *m.CoverageResult, opts Options) (string, error) {
	switch f {
	case FormatRaw:
		return RawXML(result)
	case FormatHTML:
		return HTML(result)
	case FormatHTML2:
		return HTML2(result)
	case FormatCobertura:
		return Cobertura(result, opts.Cobertura)
	case FormatOpenCover:
		return OpenCover(result, opts.Serializer)
	case FormatNull:
		return Null(result)
	default:
		return "", errors.Newf("unknown report format %q", string(f))
	}
}

// Null is the reserved no-op format. A valid result renders nothing.
func Null(result *m.CoverageResult) (string, error) {
	if err := validate(result); err != nil {
		return "", err
	}

	return "", nil
}
