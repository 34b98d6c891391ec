package report

import (
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// ExcludedMarker hides test framework objects from the ranking table.
const ExcludedMarker = "tSQLt"

const (
	inlineOpen = `<span style="background-color: greenyellow">`
	classOpen  = `<span class="covered-statement">`
	spanClose  = `</span>`
)

type rankRow struct {
	Name       string
	Anchor     string
	Link       bool
	Bold       bool
	Statements int
	Covered    int
	Percent    string
}

type batchView struct {
	Name       string
	Anchor     string
	Statements int
	Covered    int
	Percent    string
	Source     template.HTML
}

type htmlPage struct {
	Header     string
	Rows       []rankRow
	Batches    []batchView
	Exceptions []string
}

const pageHead = `<html>
<head>
    <title>SQLCover Code Coverage Results</title>
    <style>
        html{
            font-family: "Roboto","Helvetica Neue",Arial,Sans-serif;
            font-size: 100%;
            line-height: 26px;
            word-break: break-word;
        }

        i{
            border: solid black;
            border-width: 0 3px 3px 0;
            display: inline-block;
            padding: 3px;
        }

        .up {
            transform: rotate(-135deg);
            -webkit-transform: rotate(-135deg);
        }
{{- block "extraStyle" .}}{{end}}
    </style>
{{- block "extraHead" .}}{{end}}
</head>
<body id="top">
{{- define "ranking"}}<table><thead><td>object name</td><td>statement count</td><td>covered statement count</td><td>coverage %</td></thead>
{{- range .Rows}}<tr><td>{{if .Bold}}<b>{{.Name}}</b>{{else if .Link}}<a href="#{{.Anchor}}">{{.Name}}</a>{{end}}</td><td>{{.Statements}}</td><td>{{.Covered}}</td><td>{{.Percent}}</td></tr>{{end -}}
</table>{{end}}
{{- define "exceptions"}}{{if .Exceptions}}<a name="sql-exceptions"><div class="sql-exceptions">
{{- range .Exceptions}}	<pre class="sql-exception">{{.}}</pre>{{end -}}
</div></a><a href="#top"><i class="up sql-exceptions"></i></a>{{end}}{{end}}`

const htmlBody = `{{template "ranking" .}}
{{- range .Batches}}<pre><a name="{{.Anchor}}"><div class="batch">{{.Source}}</div></a></pre><a href="#top"><i class="up"></i></a>{{end}}
{{- template "exceptions" .}}</body></html>`

const html2Body = `{{define "extraStyle"}}
        .covered-statement{
            background-color: greenyellow;
        }
{{end}}{{define "extraHead"}}
    <link media="all" rel="stylesheet" type="text/css" href="sqlcover.css" />{{end}}<h2 class="header">{{.Header}}</h2>{{template "ranking" .}}
{{- if .Exceptions}}<div class="sql-exceptions">There were sql exceptions running the batch, see <a href="#sql-exceptions">here</a></div>{{end}}
{{- range .Batches}}<a name="{{.Anchor}}"><div class="batch"><div><p class="batch-summary">'{{.Name}}' summary: statement count: {{.Statements}}, covered statement count: {{.Covered}}, coverage %: {{.Percent}}</p></div><pre>{{.Source}}</pre></div></a><a href="#top"><i class="up"></i></a>{{end}}
{{- template "exceptions" .}}</body></html>`

var (
	htmlTemplate  = template.Must(template.New("html").Parse(pageHead + htmlBody))
	html2Template = template.Must(template.New("html2").Parse(pageHead + html2Body))
)

// HTML renders the single-page report with inline highlight styles.
func HTML(result *m.CoverageResult) (string, error) {
	if err := validate(result); err != nil {
		return "", err
	}

	return executePage(htmlTemplate, buildPage(result, inlineOpen))
}

// HTML2 renders the report variant that adds the run header, per-batch
// summaries and class based highlighting styled by sqlcover.css.
func HTML2(result *m.CoverageResult) (string, error) {
	if err := validate(result); err != nil {
		return "", err
	}

	page := buildPage(result, classOpen)
	page.Header = result.Meta.Header()

	return executePage(html2Template, page)
}

func executePage(tmpl *template.Template, page htmlPage) (string, error) {
	var b strings.Builder

	if err := tmpl.Execute(&b, page); err != nil {
		return "", errors.Wrapf(err, "executing %s template", tmpl.Name())
	}

	return b.String(), nil
}

func buildPage(result *m.CoverageResult, open string) htmlPage {
	page := htmlPage{
		Rows:       rankingRows(result),
		Batches:    make([]batchView, 0, len(result.Batches)),
		Exceptions: result.Exceptions,
	}

	for _, b := range result.Batches {
		//nolint:gosec // highlight escapes every text segment itself.
		source := template.HTML(highlight(b.Text, b.Statements, open, spanClose))

		page.Batches = append(page.Batches, batchView{
			Name:       b.ObjectName,
			Anchor:     anchorID(b.ObjectName),
			Statements: b.Summary.StatementCount,
			Covered:    b.Summary.CoveredStatementCount,
			Percent:    percent(b.Summary),
			Source:     source,
		})
	}

	return page
}

// rankingRows returns the Total row followed by every batch whose name does
// not contain ExcludedMarker, best coverage first.
func rankingRows(result *m.CoverageResult) []rankRow {
	rows := []rankRow{{
		Name:       "Total",
		Bold:       true,
		Statements: result.Summary.StatementCount,
		Covered:    result.Summary.CoveredStatementCount,
		Percent:    percent(result.Summary),
	}}

	ranked := make([]m.Batch, 0, len(result.Batches))

	for _, b := range result.Batches {
		if !strings.Contains(b.ObjectName, ExcludedMarker) {
			ranked = append(ranked, b)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Summary.StatementRate() > ranked[j].Summary.StatementRate()
	})

	for _, b := range ranked {
		rows = append(rows, rankRow{
			Name:       b.ObjectName,
			Anchor:     anchorID(b.ObjectName),
			Link:       true,
			Statements: b.Summary.StatementCount,
			Covered:    b.Summary.CoveredStatementCount,
			Percent:    percent(b.Summary),
		})
	}

	return rows
}

func percent(s m.Summary) string {
	return fmt.Sprintf("%.2f", s.StatementRate()*100)
}

// anchorID encodes an object name as a fragment that html/template emits
// unchanged in both href and name attributes. Letters, digits, '.' and '-'
// pass through; every other byte becomes _XX, so distinct names never share
// an anchor.
func anchorID(name string) string {
	var sb strings.Builder

	for i := 0; i < len(name); i++ {
		c := name[i]

		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '-':
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, "_%02X", c)
		}
	}

	return sb.String()
}
