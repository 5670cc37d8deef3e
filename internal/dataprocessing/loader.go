package dataprocessing

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/Pckk-solvers/Water-Info-Acquirer/internal/errors"
	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// FullPeriodSheet is the sheet holding the whole extract. When it is
// absent the per-year sheets are read instead.
const FullPeriodSheet = "全期間"

var yearSheetPattern = regexp.MustCompile(`^(\d{4})年?$`)

// Display layouts used by the extract workbooks when timestamps are text.
var timestampLayouts = []string{
	"2006/1/2 15:04",
	"2006/1/2 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006/1/2",
	"2006-01-02",
}

// rawRow is a data row of the first two columns, cells untouched.
type rawRow struct {
	sheet string
	line  int
	time  string
	value string
}

// Loader reads the hourly and daily extract workbooks.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadHourly reads the hourly extract. Rows are kept in workbook order;
// a row whose timestamp cannot be decoded keeps its value but carries a
// zero timestamp.
func (l *Loader) LoadHourly(ctx context.Context, path string) ([]domain.HourlySample, error) {
	rows, err := l.readTable(ctx, path)
	if err != nil {
		return nil, err
	}

	samples := make([]domain.HourlySample, 0, len(rows))
	undecoded, missing := 0, 0
	for _, r := range rows {
		ts, ok := parseTimestamp(r.time)
		if !ok {
			undecoded++
			l.logger.DebugContext(ctx, "Undecodable timestamp",
				slog.String("sheet", r.sheet),
				slog.Int("line", r.line),
				slog.String("cell", r.time))
		}
		v := domain.ParseValue(r.value)
		if !v.Valid() {
			missing++
		}
		samples = append(samples, domain.HourlySample{Timestamp: ts, Value: v})
	}

	if undecoded > 0 || missing > 0 {
		l.logger.WarnContext(ctx, "Hourly table has unusable cells",
			slog.String("path", path),
			slog.Int("undecodable_timestamps", undecoded),
			slog.Int("missing_values", missing))
	}
	l.logger.InfoContext(ctx, "Loaded hourly table",
		slog.String("path", path),
		slog.Int("rows", len(samples)))

	return samples, nil
}

// LoadDaily reads the daily extract. Dates are used as-is; rows without
// a decodable date cannot be joined and are skipped, and repeated dates
// keep their first row.
func (l *Loader) LoadDaily(ctx context.Context, path string) ([]domain.ExternalDailyRow, error) {
	rows, err := l.readTable(ctx, path)
	if err != nil {
		return nil, err
	}

	daily := make([]domain.ExternalDailyRow, 0, len(rows))
	seen := make(map[time.Time]bool, len(rows))
	undecoded, duplicates, missing := 0, 0, 0
	for _, r := range rows {
		ts, ok := parseTimestamp(r.time)
		if !ok {
			undecoded++
			continue
		}
		date := domain.DateOf(ts)
		if seen[date] {
			duplicates++
			continue
		}
		seen[date] = true

		v := domain.ParseValue(r.value)
		if !v.Valid() {
			missing++
		}
		daily = append(daily, domain.ExternalDailyRow{HydroDate: date, DailyValue: v})
	}

	if undecoded > 0 || duplicates > 0 || missing > 0 {
		l.logger.WarnContext(ctx, "Daily table has unusable cells",
			slog.String("path", path),
			slog.Int("undecodable_dates", undecoded),
			slog.Int("duplicate_dates", duplicates),
			slog.Int("missing_values", missing))
	}
	l.logger.InfoContext(ctx, "Loaded daily table",
		slog.String("path", path),
		slog.Int("rows", len(daily)))

	return daily, nil
}

// readTable returns the data rows of every selected sheet, in sheet order.
func (l *Loader) readTable(ctx context.Context, path string) ([]rawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewFormatError(path, "failed to open workbook", err)
	}
	defer f.Close()

	available := f.GetSheetList()
	sheets := selectSheets(available)
	if len(sheets) == 0 {
		return nil, apperrors.NewFormatError(path, "no full-period or year sheet found", nil).
			WithContext("sheets", available)
	}
	l.logger.DebugContext(ctx, "Selected data sheets",
		slog.String("path", path),
		slog.Any("sheets", sheets))

	var out []rawRow
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, apperrors.NewFormatError(path, "failed to read sheet", err).
				WithContext("sheet", sheet)
		}
		if len(rows) == 0 || strings.TrimSpace(cellAt(rows[0], 0)) == "" || strings.TrimSpace(cellAt(rows[0], 1)) == "" {
			return nil, apperrors.NewFormatError(path, "header row must name the timestamp and value columns", nil).
				WithContext("sheet", sheet)
		}

		for i, row := range rows[1:] {
			ts, val := cellAt(row, 0), cellAt(row, 1)
			if strings.TrimSpace(ts) == "" && strings.TrimSpace(val) == "" {
				continue
			}
			out = append(out, rawRow{sheet: sheet, line: i + 2, time: ts, value: val})
		}
	}
	return out, nil
}

// selectSheets prefers the full-period sheet and otherwise returns the year
// sheets in ascending year order.
func selectSheets(names []string) []string {
	for _, name := range names {
		if strings.TrimSpace(name) == FullPeriodSheet {
			return []string{name}
		}
	}

	type yearSheet struct {
		year int
		name string
	}
	var years []yearSheet
	for _, name := range names {
		m := yearSheetPattern.FindStringSubmatch(strings.TrimSpace(name))
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		years = append(years, yearSheet{year: year, name: name})
	}
	sort.SliceStable(years, func(i, j int) bool { return years[i].year < years[j].year })

	out := make([]string, len(years))
	for i, ys := range years {
		out[i] = ys.name
	}
	return out
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// parseTimestamp decodes a raw timestamp cell: an Excel serial number or
// one of the display layouts. "24:00" is 00:00 of the following day.
func parseTimestamp(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t.Round(time.Second), true
	}

	rollover := false
	if i := strings.Index(s, " 24:"); i >= 0 {
		if rest := s[i+4:]; rest == "00" || rest == "00:00" {
			s = s[:i] + " 00:" + rest
			rollover = true
		}
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if rollover {
				t = t.Add(24 * time.Hour)
			}
			return t, true
		}
	}
	return time.Time{}, false
}
