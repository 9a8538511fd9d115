package minireport

import (
	"regexp"
	"strings"
)

// Field names produced by the rule list.
const (
	fieldClarityCharacteristics = "ClarityCharacteristics"
	fieldReportDate             = "ReportDate"
	fieldReportNumber           = "ReportNumber"
	fieldShape                  = "ShapeandCuttingStyle"
	fieldMeasurements           = "Measurements"
	fieldCaratWeight            = "CaratWeight"
	fieldColorGrade             = "ColorGrade"
	fieldClarityGrade           = "ClarityGrade"
	fieldCutGrade               = "CutGrade"
	fieldPolish                 = "Polish"
	fieldSymmetry               = "Symmetry"
	fieldFluorescence           = "Fluorescence"
)

type fieldRule struct {
	field    string
	patterns []*regexp.Regexp
}

// rx compiles a case-insensitive pattern where "." also matches newlines.
func rx(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)` + pattern)
}

// untilEOL captures a value after label up to the first newline or the end of text.
func untilEOL(label, class string) *regexp.Regexp {
	return rx(label + `\s*[.:\s]*(` + class + `+?)(?:\n|$)`)
}

var fieldRules = []fieldRule{
	{fieldClarityCharacteristics, []*regexp.Regexp{untilEOL(`Clarity\s+Characteristics`, `[A-Za-z\s,]`)}},
	{fieldReportDate, []*regexp.Regexp{rx(`(\w+\s+\d{1,2},\s+\d{4})`)}},
	{fieldReportNumber, []*regexp.Regexp{rx(`GIA\s+Report\s+Number\s*[.:\s]*(\d{7,})`)}},
	{fieldShape, []*regexp.Regexp{
		untilEOL(`Shape\s+and\s+Cutting\s+Style`, `[A-Za-z\s]`),
		rx(`([A-Za-z\s]+?Brilliant)`),
	}},
	{fieldMeasurements, []*regexp.Regexp{rx(`Measurements\s*[.:\s]*([\d\.\s\-]+x\s*[\d\.\s]+mm)`)}},
	{fieldCaratWeight, []*regexp.Regexp{rx(`Carat\s+Weight\s*[.:\s]*([\d\.]+\s*carat)`)}},
	{fieldColorGrade, []*regexp.Regexp{rx(`Color\s+Grade\s*[.:\s]*([A-Z])`)}},
	{fieldClarityGrade, []*regexp.Regexp{
		rx(`Clarity\s+Grade\s*[.:\s]*(Flawless|Internally\s+Flawless|VVS1|VVS2|VS1|VS2|SI1|SI2|I1|I2|I3)`),
	}},
	{fieldCutGrade, []*regexp.Regexp{rx(`Cut\s+Grade\s*[.:\s]*(Excellent|Very Good|Good|Fair|Poor)`)}},
	{fieldPolish, []*regexp.Regexp{untilEOL(`Polish`, `[A-Za-z\s]`)}},
	{fieldSymmetry, []*regexp.Regexp{untilEOL(`Symmetry`, `[A-Za-z\s]`)}},
	{fieldFluorescence, []*regexp.Regexp{untilEOL(`Fluorescence`, `[A-Za-z\s]`)}},
}

// extractFields applies every rule to text. The first matching pattern of a
// rule wins; fields without a match are empty.
func extractFields(text string) map[string]string {
	out := make(map[string]string, len(fieldRules))
	for _, rule := range fieldRules {
		out[rule.field] = ""
		for _, re := range rule.patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if v := strings.TrimSpace(m[1]); v != "" {
				out[rule.field] = v
				break
			}
		}
	}
	return out
}

// ParseText builds a grading record from extracted PDF text. The result is
// always fully shaped; Images is left for the caller.
func ParseText(text string) *GradingReport {
	f := extractFields(text)
	return &GradingReport{
		ReportNumber: f[fieldReportNumber],
		ReportDate:   f[fieldReportDate],
		Identification: Identification{
			GIAReportNumber:      f[fieldReportNumber],
			ShapeAndCuttingStyle: f[fieldShape],
			Measurements:         f[fieldMeasurements],
		},
		Results: GradingResults{
			CaratWeight:  f[fieldCaratWeight],
			ColorGrade:   f[fieldColorGrade],
			ClarityGrade: f[fieldClarityGrade],
			CutGrade:     f[fieldCutGrade],
		},
		Additional: AdditionalInfo{
			Polish:                 f[fieldPolish],
			Symmetry:               f[fieldSymmetry],
			Fluorescence:           f[fieldFluorescence],
			ClarityCharacteristics: f[fieldClarityCharacteristics],
		},
	}
}
