package report

import (
	"encoding/xml"
	"math"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/mouse-blink/sqlcover/internal/coverage"
	m "github.com/mouse-blink/sqlcover/internal/model"
)

// Serializer turns a correlated result into an OpenCover document.
type Serializer interface {
	Serialize(result *m.CoverageResult) (string, error)
}

// OpenCover renders result through s, defaulting to OpenCoverSerializer.
func OpenCover(result *m.CoverageResult, s Serializer) (string, error) {
	if err := validate(result); err != nil {
		return "", err
	}

	if s == nil {
		s = OpenCoverSerializer{}
	}

	out, err := s.Serialize(result)
	if err != nil {
		return "", errors.Wrap(err, "serializing opencover session")
	}

	return out, nil
}

// OpenCoverSerializer writes one module per database, one class and one
// method per batch, and one sequence point per statement.
type OpenCoverSerializer struct{}

type ocSession struct {
	XMLName xml.Name   `xml:"CoverageSession"`
	Summary ocSummary  `xml:"Summary"`
	Modules []ocModule `xml:"Modules>Module"`
}

type ocSummary struct {
	NumSequencePoints     int     `xml:"numSequencePoints,attr"`
	VisitedSequencePoints int     `xml:"visitedSequencePoints,attr"`
	NumBranchPoints       int     `xml:"numBranchPoints,attr"`
	VisitedBranchPoints   int     `xml:"visitedBranchPoints,attr"`
	SequenceCoverage      float64 `xml:"sequenceCoverage,attr"`
	BranchCoverage        float64 `xml:"branchCoverage,attr"`
	NumClasses            int     `xml:"numClasses,attr"`
	VisitedClasses        int     `xml:"visitedClasses,attr"`
	NumMethods            int     `xml:"numMethods,attr"`
	VisitedMethods        int     `xml:"visitedMethods,attr"`
}

type ocModule struct {
	Hash       string    `xml:"hash,attr"`
	ModulePath string    `xml:"ModulePath"`
	ModuleName string    `xml:"ModuleName"`
	Files      []ocFile  `xml:"Files>File"`
	Classes    []ocClass `xml:"Classes>Class"`
}

type ocFile struct {
	UID      int    `xml:"uid,attr"`
	FullPath string `xml:"fullPath,attr"`
}

type ocClass struct {
	Summary  ocSummary  `xml:"Summary"`
	FullName string     `xml:"FullName"`
	Methods  []ocMethod `xml:"Methods>Method"`
}

type ocMethod struct {
	Visited          bool              `xml:"visited,attr"`
	SequenceCoverage float64           `xml:"sequenceCoverage,attr"`
	BranchCoverage   float64           `xml:"branchCoverage,attr"`
	Summary          ocSummary         `xml:"Summary"`
	MetadataToken    int               `xml:"MetadataToken"`
	Name             string            `xml:"Name"`
	FileRef          ocFileRef         `xml:"FileRef"`
	SequencePoints   []ocSequencePoint `xml:"SequencePoints>SequencePoint"`
	BranchPoints     []ocBranchPoint   `xml:"BranchPoints>BranchPoint"`
}

type ocFileRef struct {
	UID int `xml:"uid,attr"`
}

type ocSequencePoint struct {
	VisitCount  int `xml:"vc,attr"`
	UniqueID    int `xml:"uspid,attr"`
	Ordinal     int `xml:"ordinal,attr"`
	Offset      int `xml:"offset,attr"`
	StartLine   int `xml:"sl,attr"`
	StartColumn int `xml:"sc,attr"`
	EndLine     int `xml:"el,attr"`
	EndColumn   int `xml:"ec,attr"`
	FileID      int `xml:"fileid,attr"`
}

type ocBranchPoint struct {
	VisitCount int `xml:"vc,attr"`
	UniqueID   int `xml:"uspid,attr"`
	Ordinal    int `xml:"ordinal,attr"`
	Offset     int `xml:"offset,attr"`
	StartLine  int `xml:"sl,attr"`
	Path       int `xml:"path,attr"`
	OffsetEnd  int `xml:"offsetend,attr"`
	FileID     int `xml:"fileid,attr"`
}

// Serialize implements Serializer.
func (OpenCoverSerializer) Serialize(result *m.CoverageResult) (string, error) {
	module := ocModule{
		Hash:       strconv.Itoa(len(result.Batches)) + ":" + result.Meta.DatabaseName,
		ModulePath: result.Meta.DatabaseName,
		ModuleName: result.Meta.DatabaseName,
	}

	session := ocSession{Summary: ocSummaryFor(result.Summary)}
	uspid := 1

	for i, b := range result.Batches {
		fileID := i + 1
		classSummary := ocSummaryFor(b.Summary)
		classSummary.NumMethods = 1
		classSummary.NumClasses = 1

		if b.Summary.CoveredStatementCount > 0 {
			classSummary.VisitedMethods = 1
			classSummary.VisitedClasses = 1
			session.Summary.VisitedClasses++
			session.Summary.VisitedMethods++
		}

		session.Summary.NumClasses++
		session.Summary.NumMethods++

		method := ocMethod{
			Visited:          b.Summary.CoveredStatementCount > 0,
			SequenceCoverage: classSummary.SequenceCoverage,
			BranchCoverage:   classSummary.BranchCoverage,
			Summary:          classSummary,
			MetadataToken:    b.ObjectID,
			Name:             b.ObjectName,
			FileRef:          ocFileRef{UID: fileID},
		}

		for ordinal, s := range b.Statements {
			pos := coverage.StatementOffsets(s, b.Text)
			method.SequencePoints = append(method.SequencePoints, ocSequencePoint{
				VisitCount:  s.HitCount,
				UniqueID:    uspid,
				Ordinal:     ordinal,
				Offset:      s.Offset,
				StartLine:   pos.StartLine,
				StartColumn: pos.StartColumn,
				EndLine:     pos.EndLine,
				EndColumn:   pos.EndColumn,
				FileID:      fileID,
			})
			uspid++
		}

		ordinal := 0

		for _, s := range b.Statements {
			for path, br := range s.Branches {
				pos := coverage.Offsets(br.Offset, br.Length, b.Text, 1)
				method.BranchPoints = append(method.BranchPoints, ocBranchPoint{
					VisitCount: br.HitCount,
					UniqueID:   uspid,
					Ordinal:    ordinal,
					Offset:     br.Offset,
					StartLine:  pos.StartLine,
					Path:       path,
					OffsetEnd:  br.Offset + br.Length,
					FileID:     fileID,
				})
				uspid++
				ordinal++
			}
		}

		module.Files = append(module.Files, ocFile{UID: fileID, FullPath: classFilename(b, FileCorrection{})})
		module.Classes = append(module.Classes, ocClass{
			Summary:  classSummary,
			FullName: b.ObjectName,
			Methods:  []ocMethod{method},
		})
	}

	session.Modules = []ocModule{module}

	out, err := xml.MarshalIndent(session, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encoding opencover session")
	}

	return xml.Header + string(out), nil
}

func ocSummaryFor(s m.Summary) ocSummary {
	return ocSummary{
		NumSequencePoints:     s.StatementCount,
		VisitedSequencePoints: s.CoveredStatementCount,
		NumBranchPoints:       s.BranchesCount,
		VisitedBranchPoints:   s.CoveredBranchesCount,
		SequenceCoverage:      round2(s.StatementRate() * 100),
		BranchCoverage:        round2(s.BranchRate() * 100),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
