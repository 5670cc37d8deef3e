package exporter

import (
	"fmt"
	"strconv"

	apperrors "github.com/Pckk-solvers/Water-Info-Acquirer/internal/errors"
	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// SheetNames names the five report tables, in workbook order.
type SheetNames struct {
	Main           string
	MainRaw        string
	Peaks          string
	YearSummary    string
	YearSummaryRaw string
}

// DefaultSheetNames returns the standard sheet names.
func DefaultSheetNames() SheetNames {
	return SheetNames{
		Main:           "main",
		MainRaw:        "main_raw_rank",
		Peaks:          "peaks",
		YearSummary:    "year_summary",
		YearSummaryRaw: "year_summary_raw",
	}
}

// List returns the names in workbook order.
func (s SheetNames) List() []string {
	return []string{s.Main, s.MainRaw, s.Peaks, s.YearSummary, s.YearSummaryRaw}
}

// Validate rejects empty or repeated names.
func (s SheetNames) Validate() error {
	seen := make(map[string]bool, 5)
	for _, name := range s.List() {
		if name == "" {
			return apperrors.NewValidationError("sheet name must not be empty", nil)
		}
		if seen[name] {
			return apperrors.NewValidationError(fmt.Sprintf("duplicate sheet name %q", name), nil)
		}
		seen[name] = true
	}
	return nil
}

// table is one logical report table.
type table struct {
	name   string
	header []string
	rows   [][]cell
}

// buildTables lays out the report tables in workbook order.
func buildTables(r *domain.Report, names SheetNames) []table {
	return []table{
		rankedTable(names.Main, r.Main, r.Columns),
		rankedTable(names.MainRaw, r.MainRaw, r.Columns),
		peakTable(names.Peaks, r.Peaks),
		summaryTable(names.YearSummary, r.YearSummary, r.Columns),
		summaryTable(names.YearSummaryRaw, r.YearSummaryRaw, r.Columns),
	}
}

func hasColumn(cols []domain.Column, c domain.Column) bool {
	for _, col := range cols {
		if col == c {
			return true
		}
	}
	return false
}

func rankedTable(name string, rows []domain.RankedRow, cols []domain.Column) table {
	withDaily := hasColumn(cols, domain.ColumnDailyValue)

	header := []string{
		headerDate,
		valueHeader(domain.ColumnVarDen),
		valueHeader(domain.ColumnFixedDen),
		headerNonNull,
	}
	if withDaily {
		header = append(header, valueHeader(domain.ColumnDailyValue))
	}
	header = append(header, headerYear)
	for _, c := range cols {
		header = append(header, rankHeader(c))
	}
	for _, c := range cols {
		for _, l := range domain.FlowLevels {
			header = append(header, levelHeader(l, c))
		}
	}

	out := make([][]cell, 0, len(rows))
	for _, r := range rows {
		line := make([]cell, 0, len(header))
		line = append(line,
			dateCell(r.HydroDate),
			valueCell(r.VarDenAvg),
			valueCell(r.FixedDenAvg),
			nullIntCell(r.NonNullCount),
		)
		if withDaily {
			line = append(line, valueCell(r.DailyValue))
		}
		line = append(line, intCell(r.Year))
		for _, c := range cols {
			line = append(line, nullIntCell(r.Ranks[c]))
		}
		for _, c := range cols {
			for _, l := range domain.FlowLevels {
				line = append(line, valueCell(r.Levels[c][l]))
			}
		}
		out = append(out, line)
	}
	return table{name: name, header: header, rows: out}
}

func peakTable(name string, peaks []domain.PeakRow) table {
	out := make([][]cell, 0, len(peaks))
	for _, p := range peaks {
		out = append(out, []cell{dateCell(p.HydroDate), valueCell(p.Value), timeCell(p.Time)})
	}
	return table{
		name:   name,
		header: []string{headerDate, headerPeakValue, headerPeakTime},
		rows:   out,
	}
}

// summaryField is one row of a transposed year summary.
type summaryField struct {
	label string
	value func(domain.YearSummary) cell
}

func columnField(label string, c domain.Column, value func(domain.ColumnSummary) cell) summaryField {
	return summaryField{label: label, value: func(s domain.YearSummary) cell {
		cs, ok := s.Column(c)
		if !ok {
			return cell{}
		}
		return value(cs)
	}}
}

func summaryFields(cols []domain.Column) []summaryField {
	var fields []summaryField
	for _, c := range cols {
		fields = append(fields,
			columnField(missingHeader(c), c, func(cs domain.ColumnSummary) cell { return intCell(cs.Missing) }),
			columnField(meanHeader(c), c, func(cs domain.ColumnSummary) cell { return valueCell(cs.Mean) }),
		)
		for _, l := range domain.FlowLevels {
			l := l
			fields = append(fields, columnField(summaryLevelHeader(l, c), c, func(cs domain.ColumnSummary) cell {
				return valueCell(cs.Levels[l])
			}))
		}
	}

	fields = append(fields,
		summaryField{headerMaxHourly, func(s domain.YearSummary) cell { return valueCell(s.MaxHourly) }},
		summaryField{headerMaxHourlyAt, func(s domain.YearSummary) cell { return timeCell(s.MaxHourlyAt) }},
		summaryField{headerMinHourly, func(s domain.YearSummary) cell { return valueCell(s.MinHourly) }},
		summaryField{headerMinHourlyAt, func(s domain.YearSummary) cell { return timeCell(s.MinHourlyAt) }},
	)

	for _, c := range cols {
		for _, l := range domain.FlowLevels {
			l := l
			fields = append(fields, columnField(rankUsedHeader(l, c), c, func(cs domain.ColumnSummary) cell {
				return nullIntCell(cs.RanksUsed[l])
			}))
		}
	}
	return fields
}

// summaryTable transposes the year summaries: one row per field, one
// column per year after the item label.
func summaryTable(name string, summaries []domain.YearSummary, cols []domain.Column) table {
	header := make([]string, 0, len(summaries)+1)
	header = append(header, headerItem)
	for _, s := range summaries {
		header = append(header, strconv.Itoa(s.Year))
	}

	fields := summaryFields(cols)
	out := make([][]cell, 0, len(fields))
	for _, f := range fields {
		line := make([]cell, 0, len(header))
		line = append(line, textCell(f.label))
		for _, s := range summaries {
			line = append(line, f.value(s))
		}
		out = append(out, line)
	}
	return table{name: name, header: header, rows: out}
}
