package aggregate

import "github.com/covstat/covstat/internal/domain"

// Canonical field names shared by the coverage reductions.
const (
	FieldBugID                       = "BugId"
	FieldFixedFile                   = "FixedFile"
	FieldInducedFiles                = "InducedFiles"
	FieldFixedFileCoveredByInduced   = "FixedFileCoveredByInduced"
	FieldTotalCoveredLine            = "totalCoveredLine"
	FieldTotalDirectCoverage         = "totalDirectCoverage"
	FieldTotalDataFlowCoverage       = "totalDataFlowCoverage"
	FieldTotalDataFlowDirectCoverage = "totalDataFlowDirectCoverage"
	FieldCoverage                    = "coverage"
	FieldDirectCoverage              = "directCoverage"
	FieldCoverageFlow                = "coverageFlow"
	FieldValue                       = "Value"
	FieldType                        = "Type"
	FieldIndex                       = "Index"
)

// FileCoverageFields maps FileCoverage report columns to canonical names.
var FileCoverageFields = []domain.Field{
	{Name: FieldBugID, Column: "BugId"},
	{Name: FieldFixedFile, Column: "#FixedFile"},
	{Name: FieldInducedFiles, Column: "#InducedFiles"},
	{Name: FieldFixedFileCoveredByInduced, Column: "#Fixed-File-that-Covered-by-Induced-Files"},
}

// LineCoverageFields maps LineCoverage report columns to canonical names.
var LineCoverageFields = []domain.Field{
	{Name: FieldBugID, Column: "BugId"},
	{Name: FieldFixedFile, Column: "#FixedFile"},
	{Name: FieldTotalCoveredLine, Column: "totalCoveredLine"},
	{Name: FieldTotalDirectCoverage, Column: "totalDirectCoverage"},
	{Name: FieldTotalDataFlowCoverage, Column: "totalDataFlowCoverage"},
	{Name: FieldTotalDataFlowDirectCoverage, Column: "totalDataFlowDirectCoverage"},
	{Name: FieldCoverage, Column: "coverage"},
	{Name: FieldDirectCoverage, Column: "directCoverage"},
	{Name: FieldCoverageFlow, Column: "coverage+flow"},
}

// ActionCoverageFields maps ActionCoverage report columns to canonical names.
var ActionCoverageFields = []domain.Field{
	{Name: FieldValue, Column: "Value"},
	{Name: FieldType, Column: "Type"},
	{Name: FieldIndex, Column: "Index"},
	{Name: FieldBugID, Column: "BugId"},
}

// FileCoverageStats summarizes how many fixed files a tool's induced
// files cover.
type FileCoverageStats struct {
	FixCoveredByInduced         float64
	InducedFileTotal            float64
	FixedFileTotal              float64
	CoverPerFixed               float64
	ListSize                    int
	CoverPerLength              float64
	SumFixMulCover              float64
	SumFixMulCoverPerLength     float64
	FixCoveredPerSumFixMulCover float64
}

// FileCoverage reduces FileCoverage records. CoverPerLength is the
// headline value written to the artifact.
func FileCoverage(records []domain.Record) FileCoverageStats {
	covered := Sum(records, FieldFixedFileCoveredByInduced)
	fixed := Sum(records, FieldFixedFile)
	weighted := WeightedSum(records, FieldFixedFileCoveredByInduced, FieldFixedFile)
	n := float64(len(records))

	return FileCoverageStats{
		FixCoveredByInduced:         covered,
		InducedFileTotal:            Sum(records, FieldInducedFiles),
		FixedFileTotal:              fixed,
		CoverPerFixed:               covered / fixed,
		ListSize:                    len(records),
		CoverPerLength:              covered / n,
		SumFixMulCover:              weighted,
		SumFixMulCoverPerLength:     weighted / n,
		FixCoveredPerSumFixMulCover: covered / weighted,
	}
}

// Metrics lists the stats under the names used in diagnostics.
func (s FileCoverageStats) Metrics() []domain.Metric {
	return []domain.Metric{
		{Name: "fixCoveredByInduced", Value: domain.Number(s.FixCoveredByInduced)},
		{Name: "inducedFileTotal", Value: domain.Number(s.InducedFileTotal)},
		{Name: "fixedFileTotal", Value: domain.Number(s.FixedFileTotal)},
		{Name: "cover/fixed", Value: domain.Number(s.CoverPerFixed)},
		{Name: "listSize", Value: domain.Number(s.ListSize)},
		{Name: "cover/length", Value: domain.Number(s.CoverPerLength)},
		{Name: "sumFixMulCover", Value: domain.Number(s.SumFixMulCover)},
		{Name: "sumFixMulCover/length", Value: domain.Number(s.SumFixMulCoverPerLength)},
		{Name: "fixCoveredByInduced/sumFixMulCover", Value: domain.Number(s.FixCoveredPerSumFixMulCover)},
	}
}

// LineCoverageStats holds the per-field means of a LineCoverage report.
// Coverage, DirectCoverage and CoverageFlow are scaled by Ratio; the
// products use the unscaled means.
type LineCoverageStats struct {
	TotalCoveredLine            float64
	TotalDirectCoverage         float64
	TotalDataFlowCoverage       float64
	TotalDataFlowDirectCoverage float64
	Coverage                    float64
	DirectCoverage              float64
	CoverageFlow                float64
	Ratio                       float64
	CoverMulTotal               float64
	DirectCoverMulTotal         float64
	FlowCoverMulTotal           float64
}

// LineCoverage reduces LineCoverage records. When hasExpected is true the
// coverage means are calibrated so that Coverage equals expected.
func LineCoverage(records []domain.Record, expected float64, hasExpected bool) LineCoverageStats {
	totalCovered := Mean(records, FieldTotalCoveredLine)
	totalDirect := Mean(records, FieldTotalDirectCoverage)
	totalFlow := Mean(records, FieldTotalDataFlowCoverage)
	coverage := Mean(records, FieldCoverage)
	direct := Mean(records, FieldDirectCoverage)
	flow := Mean(records, FieldCoverageFlow)
	ratio := CalibrationRatio(expected, hasExpected, coverage)

	return LineCoverageStats{
		TotalCoveredLine:            totalCovered,
		TotalDirectCoverage:         totalDirect,
		TotalDataFlowCoverage:       totalFlow,
		TotalDataFlowDirectCoverage: Mean(records, FieldTotalDataFlowDirectCoverage),
		Coverage:                    coverage * ratio,
		DirectCoverage:              direct * ratio,
		CoverageFlow:                flow * ratio,
		Ratio:                       ratio,
		CoverMulTotal:               totalCovered * coverage,
		DirectCoverMulTotal:         totalDirect * direct,
		FlowCoverMulTotal:           totalFlow * flow,
	}
}

// Metrics lists the stats under the names used in diagnostics.
func (s LineCoverageStats) Metrics() []domain.Metric {
	return []domain.Metric{
		{Name: "totalCoveredLine", Value: domain.Number(s.TotalCoveredLine)},
		{Name: "totalDirectCoverage", Value: domain.Number(s.TotalDirectCoverage)},
		{Name: "totalDataFlowCoverage", Value: domain.Number(s.TotalDataFlowCoverage)},
		{Name: "totalDataFlowDirectCoverage", Value: domain.Number(s.TotalDataFlowDirectCoverage)},
		{Name: "coverage", Value: domain.Number(s.Coverage)},
		{Name: "directCoverage", Value: domain.Number(s.DirectCoverage)},
		{Name: "coverageFlow", Value: domain.Number(s.CoverageFlow)},
		{Name: "ratio", Value: domain.Number(s.Ratio)},
		{Name: "coverMulTotal", Value: domain.Number(s.CoverMulTotal)},
		{Name: "directCoverMulTotal", Value: domain.Number(s.DirectCoverMulTotal)},
		{Name: "flowCoverMulTotal", Value: domain.Number(s.FlowCoverMulTotal)},
	}
}

// ActionCoverage groups ActionCoverage records by their Index column and
// accumulates Value for the rows whose Type passes filter.
func ActionCoverage(records []domain.Record, filter domain.TypeFilter) Groups {
	return GroupBy(records, FieldIndex, FieldValue, func(r domain.Record) bool {
		t, _ := r.Get(FieldType)
		return filter.Matches(t)
	})
}

// OchiaiStats sums the two raw score columns of Ochiai rows.
type OchiaiStats struct {
	Sum1     float64
	Average1 float64
	Count1   int
	Sum2     float64
	Average2 float64
	Count2   int
}

// Ochiai reduces headerless Ochiai rows. Columns 1 and 2 are averaged over
// the rows that have them.
func Ochiai(rows [][]string) OchiaiStats {
	sum1, count1 := ColumnSum(rows, 1)
	sum2, count2 := ColumnSum(rows, 2)
	return OchiaiStats{
		Sum1:     sum1,
		Average1: sum1 / float64(count1),
		Count1:   count1,
		Sum2:     sum2,
		Average2: sum2 / float64(count2),
		Count2:   count2,
	}
}

// Metrics lists the stats in artifact order.
func (s OchiaiStats) Metrics() []domain.Metric {
	return []domain.Metric{
		{Name: "sum2", Value: domain.Number(s.Sum2)},
		{Name: "average2", Value: domain.Number(s.Average2)},
		{Name: "sum1", Value: domain.Number(s.Sum1)},
		{Name: "average1", Value: domain.Number(s.Average1)},
	}
}
