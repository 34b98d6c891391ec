package report

import (
	"encoding/xml"

	"github.com/cockroachdb/errors"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

type rawCoverage struct {
	XMLName               xml.Name       `xml:"CodeCoverage"`
	StatementCount        int            `xml:"StatementCount,attr"`
	CoveredStatementCount int            `xml:"CoveredStatementCount,attr"`
	Batches               []rawBatch     `xml:"Batch"`
	Exceptions            *rawExceptions `xml:"SqlExceptions,omitempty"`
}

type rawBatch struct {
	Object                string         `xml:"Object,attr"`
	StatementCount        int            `xml:"StatementCount,attr"`
	CoveredStatementCount int            `xml:"CoveredStatementCount,attr"`
	Text                  string         `xml:"Text"`
	Statements            []rawStatement `xml:"Statement"`
}

type rawStatement struct {
	HitCount     int  `xml:"HitCount,attr"`
	Offset       int  `xml:"Offset,attr"`
	Length       int  `xml:"Length,attr"`
	CanBeCovered bool `xml:"CanBeCovered,attr"`
}

type rawExceptions struct {
	Items []string `xml:"SqlException"`
}

// RawXML dumps the complete correlated model: global statement totals, every
// batch with its text and statements, and the recorded exceptions.
func RawXML(result *m.CoverageResult) (string, error) {
	if err := validate(result); err != nil {
		return "", err
	}

	doc := rawCoverage{
		StatementCount:        result.Summary.StatementCount,
		CoveredStatementCount: result.Summary.CoveredStatementCount,
		Batches:               make([]rawBatch, 0, len(result.Batches)),
	}

	for _, b := range result.Batches {
		rb := rawBatch{
			Object:                b.ObjectName,
			StatementCount:        b.Summary.StatementCount,
			CoveredStatementCount: b.Summary.CoveredStatementCount,
			Text:                  b.Text,
			Statements:            make([]rawStatement, 0, len(b.Statements)),
		}

		for _, s := range b.Statements {
			rb.Statements = append(rb.Statements, rawStatement{
				HitCount:     s.HitCount,
				Offset:       s.Offset,
				Length:       s.Length,
				CanBeCovered: s.IsCoverable,
			})
		}

		doc.Batches = append(doc.Batches, rb)
	}

	if len(result.Exceptions) > 0 {
		doc.Exceptions = &rawExceptions{Items: result.Exceptions}
	}

	out, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return "", errors.Wrap(err, "encoding raw coverage")
	}

	return string(out), nil
}
