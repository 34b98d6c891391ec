package report

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mouse-blink/sqlcover/internal/coverage"
	m "github.com/mouse-blink/sqlcover/internal/model"
)

// DefaultPackageName labels the single Cobertura package when none is set.
const DefaultPackageName = "sql"

const coberturaDoctype = `<!--DOCTYPE coverage SYSTEM "http://cobertura.sourceforge.net/xml/coverage-03.dtd"-->`

// FileCorrection shifts the positions of one Cobertura class. A non-empty
// Path replaces the batch file name.
type FileCorrection struct {
	LineCorrection   int
	OffsetCorrection int
	Path             string
}

// CoberturaOptions configures Cobertura rendering. Customize, when set, is
// called once per class with the first batch of the group.
type CoberturaOptions struct {
	PackageName string
	Customize   func(batch m.Batch) FileCorrection
	Now         func() time.Time
}

type coberturaCoverage struct {
	XMLName         xml.Name           `xml:"coverage"`
	LinesValid      int                `xml:"lines-valid,attr"`
	LinesCovered    int                `xml:"lines-covered,attr"`
	LineRate        float64            `xml:"line-rate,attr"`
	BranchesValid   int                `xml:"branches-valid,attr"`
	BranchesCovered int                `xml:"branches-covered,attr"`
	BranchRate      float64            `xml:"branch-rate,attr"`
	Complexity      int                `xml:"complexity,attr"`
	Version         string             `xml:"version,attr"`
	Timestamp       int64              `xml:"timestamp,attr"`
	Packages        []coberturaPackage `xml:"packages>package"`
}

type coberturaPackage struct {
	Name       string           `xml:"name,attr"`
	LineRate   float64          `xml:"line-rate,attr"`
	BranchRate float64          `xml:"branch-rate,attr"`
	Complexity int              `xml:"complexity,attr"`
	Classes    []coberturaClass `xml:"classes>class"`
}

type coberturaClass struct {
	Name         string          `xml:"name,attr"`
	Filename     string          `xml:"filename,attr"`
	LinesValid   int             `xml:"lines-valid,attr"`
	LinesCovered int             `xml:"lines-covered,attr"`
	LineRate     float64         `xml:"line-rate,attr"`
	BranchRate   float64         `xml:"branch-rate,attr"`
	Complexity   int             `xml:"complexity,attr"`
	Methods      struct{}        `xml:"methods"`
	Lines        []coberturaLine `xml:"lines>line"`
}

type coberturaLine struct {
	Number int    `xml:"number,attr"`
	Hits   int    `xml:"hits,attr"`
	Branch string `xml:"branch,attr"`
}

type classGroup struct {
	batches []m.Batch
	summary m.Summary
}

// Cobertura renders a Cobertura 1.9 document. Batches whose object names
// differ only by case share one class.
func Cobertura(result *m.CoverageResult, opts CoberturaOptions) (string, error) {
	if err := validate(result); err != nil {
		return "", err
	}

	if opts.PackageName == "" {
		opts.PackageName = DefaultPackageName
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	doc := coberturaCoverage{
		LinesValid:      result.Summary.StatementCount,
		LinesCovered:    result.Summary.CoveredStatementCount,
		LineRate:        result.Summary.StatementRate(),
		BranchesValid:   result.Summary.BranchesCount,
		BranchesCovered: result.Summary.CoveredBranchesCount,
		BranchRate:      result.Summary.BranchRate(),
		Version:         "1.9",
		Timestamp:       opts.Now().Unix(),
	}

	pkg := coberturaPackage{
		Name:       opts.PackageName,
		LineRate:   result.Summary.StatementRate(),
		BranchRate: result.Summary.BranchRate(),
	}

	for _, group := range groupByObject(result.Batches) {
		pkg.Classes = append(pkg.Classes, coberturaClassFor(group, opts.Customize))
	}

	doc.Packages = []coberturaPackage{pkg}

	out, err := xml.MarshalIndent(doc, "", " ")
	if err != nil {
		return "", errors.Wrap(err, "encoding cobertura coverage")
	}

	return xml.Header + coberturaDoctype + "\n" + string(out) + "\n", nil
}

func groupByObject(batches []m.Batch) []*classGroup {
	var groups []*classGroup

	index := make(map[string]*classGroup)

	for _, b := range batches {
		key := strings.ToLower(b.ObjectName)

		g, ok := index[key]
		if !ok {
			g = &classGroup{}
			index[key] = g
			groups = append(groups, g)
		}

		g.batches = append(g.batches, b)
		g.summary = g.summary.Add(b.Summary)
	}

	return groups
}

func coberturaClassFor(g *classGroup, customize func(m.Batch) FileCorrection) coberturaClass {
	first := g.batches[0]

	var fix FileCorrection
	if customize != nil {
		fix = customize(first)
	}

	class := coberturaClass{
		Name:         first.ObjectName,
		Filename:     classFilename(first, fix),
		LinesValid:   g.summary.StatementCount,
		LinesCovered: g.summary.CoveredStatementCount,
		LineRate:     g.summary.StatementRate(),
		BranchRate:   g.summary.BranchRate(),
		Lines:        []coberturaLine{},
	}

	for _, b := range g.batches {
		for _, s := range b.Statements {
			pos, ok := coverage.Locate(s.Offset+fix.OffsetCorrection, s.Length, b.Text, 1+fix.LineCorrection)
			if !ok {
				continue
			}

			// Lines shifted below 1 by a negative correction are dropped one by one.
			for line := max(pos.StartLine, 1); line <= pos.EndLine; line++ {
				class.Lines = append(class.Lines, coberturaLine{Number: line, Hits: s.HitCount, Branch: "false"})
			}
		}
	}

	return class
}

func classFilename(b m.Batch, fix FileCorrection) string {
	switch {
	case fix.Path != "":
		return fix.Path
	case b.FileName != "":
		return b.FileName
	default:
		return b.ObjectName
	}
}
