package report

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// multiLineText spans three lines: "SELECT 1;" ends at 9, line 2 starts at 10
// and line 3 starts at 17.
const multiLineText = "SELECT 1;\nIF 1=1\n  SELECT 2;"

var fixedNow = func() time.Time { return time.Unix(1700000000, 0) }

func multiLineBatch(name string) m.Batch {
	return m.Batch{
		ObjectName: name,
		FileName:   strings.ToLower(name) + ".sql",
		Text:       multiLineText,
		Statements: []m.Statement{
			{Offset: 0, Length: 9, HitCount: 1},
			{Offset: 10, Length: 18, Branches: []m.Branch{{Offset: 13, Length: 3}}},
		},
	}
}

func decodeCobertura(t *testing.T, out string) coberturaCoverage {
	t.Helper()

	var doc coberturaCoverage
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Packages, 1)

	return doc
}

func TestCobertura_Header(t *testing.T) {
	out, err := Cobertura(scenarioResult(), CoberturaOptions{Now: fixedNow})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, xml.Header+coberturaDoctype+"\n<coverage "))

	doc := decodeCobertura(t, out)
	assert.Equal(t, 2, doc.LinesValid)
	assert.Equal(t, 1, doc.LinesCovered)
	assert.InDelta(t, 0.5, doc.LineRate, 1e-9)
	assert.Equal(t, "1.9", doc.Version)
	assert.Equal(t, int64(1700000000), doc.Timestamp)
	assert.Equal(t, DefaultPackageName, doc.Packages[0].Name)
}

func TestCobertura_LinesPerStatement(t *testing.T) {
	out, err := Cobertura(finalize(multiLineBatch("dbo.Multi")), CoberturaOptions{PackageName: "db", Now: fixedNow})
	require.NoError(t, err)

	doc := decodeCobertura(t, out)
	assert.Equal(t, "db", doc.Packages[0].Name)
	require.Len(t, doc.Packages[0].Classes, 1)

	class := doc.Packages[0].Classes[0]
	assert.Equal(t, "dbo.Multi", class.Name)
	assert.Equal(t, "dbo.multi.sql", class.Filename)
	assert.Equal(t, []coberturaLine{
		{Number: 1, Hits: 1, Branch: "false"},
		{Number: 2, Hits: 0, Branch: "false"},
		{Number: 3, Hits: 0, Branch: "false"},
	}, class.Lines)
}

func TestCobertura_StatementEndingPastTextEmitsNoLines(t *testing.T) {
	out, err := Cobertura(scenarioResult(), CoberturaOptions{Now: fixedNow})
	require.NoError(t, err)

	class := decodeCobertura(t, out).Packages[0].Classes[0]
	assert.Equal(t, []coberturaLine{{Number: 1, Hits: 1, Branch: "false"}}, class.Lines)
}

func TestCobertura_GroupsCaseInsensitivelyAndCallsHookOncePerGroup(t *testing.T) {
	second := multiLineBatch("DBO.multi")
	second.Statements[1].HitCount = 4
	result := finalize(multiLineBatch("dbo.Multi"), multiLineBatch("dbo.Other"), second)

	var calls []string

	out, err := Cobertura(result, CoberturaOptions{
		Now: fixedNow,
		Customize: func(b m.Batch) FileCorrection {
			calls = append(calls, b.ObjectName)
			if b.ObjectName == "dbo.Multi" {
				return FileCorrection{LineCorrection: 10, Path: "src/multi.sql"}
			}

			return FileCorrection{}
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dbo.Multi", "dbo.Other"}, calls)

	classes := decodeCobertura(t, out).Packages[0].Classes
	require.Len(t, classes, 2)

	multi := classes[0]
	assert.Equal(t, "dbo.Multi", multi.Name)
	assert.Equal(t, "src/multi.sql", multi.Filename)
	assert.Equal(t, 4, multi.LinesValid)
	assert.Equal(t, 3, multi.LinesCovered)
	assert.Equal(t, []coberturaLine{
		{Number: 11, Hits: 1, Branch: "false"},
		{Number: 12, Hits: 0, Branch: "false"},
		{Number: 13, Hits: 0, Branch: "false"},
		{Number: 11, Hits: 1, Branch: "false"},
		{Number: 12, Hits: 4, Branch: "false"},
		{Number: 13, Hits: 4, Branch: "false"},
	}, multi.Lines)

	assert.Equal(t, "dbo.Other", classes[1].Name)
	assert.Equal(t, 1, classes[1].Lines[0].Number)
}

func TestCobertura_OffsetCorrectionShiftsLines(t *testing.T) {
	result := finalize(m.Batch{
		ObjectName: "dbo.Shift",
		Text:       multiLineText,
		Statements: []m.Statement{{Offset: 0, Length: 3, HitCount: 1}},
	})

	out, err := Cobertura(result, CoberturaOptions{
		Now:       fixedNow,
		Customize: func(m.Batch) FileCorrection { return FileCorrection{OffsetCorrection: 17} },
	})
	require.NoError(t, err)

	class := decodeCobertura(t, out).Packages[0].Classes[0]
	assert.Equal(t, "dbo.Shift", class.Filename)
	assert.Equal(t, []coberturaLine{{Number: 3, Hits: 1, Branch: "false"}}, class.Lines)
}

func TestCobertura_NegativeLineCorrection(t *testing.T) {
	const text = "SELECT 1\nFROM t\nWHERE 1=1;"

	tests := []struct {
		name       string
		correction int
		want       []int
	}{
		{"none", 0, []int{1, 2, 3}},
		{"minus one drops line zero", -1, []int{1, 2}},
		{"minus two keeps last line", -2, []int{1}},
		{"minus three drops everything", -3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := finalize(m.Batch{
				ObjectName: "dbo.Neg",
				Text:       text,
				Statements: []m.Statement{{Offset: 0, Length: 20, HitCount: 1}},
			})

			out, err := Cobertura(result, CoberturaOptions{
				Now:       fixedNow,
				Customize: func(m.Batch) FileCorrection { return FileCorrection{LineCorrection: tt.correction} },
			})
			require.NoError(t, err)

			var got []int
			for _, line := range decodeCobertura(t, out).Packages[0].Classes[0].Lines {
				assert.Equal(t, 1, line.Hits)
				got = append(got, line.Number)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCobertura_EmptyResult(t *testing.T) {
	out, err := Cobertura(&m.CoverageResult{}, CoberturaOptions{Now: fixedNow})
	require.NoError(t, err)

	doc := decodeCobertura(t, out)
	assert.Zero(t, doc.LineRate)
	assert.Empty(t, doc.Packages[0].Classes)
	assert.NotContains(t, out, "NaN")
}
