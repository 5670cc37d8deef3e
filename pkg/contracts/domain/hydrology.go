package domain

import (
	"database/sql"
	"time"
)

// HoursPerDay is the number of hourly readings a complete hydrological day has.
const HoursPerDay = 24

// Column identifies one of the daily series that gets ranked.
type Column int

const (
	// NoColumn is used where a column reference is optional.
	NoColumn Column = iota - 1
	ColumnVarDen
	ColumnFixedDen
	ColumnDailyValue
)

// NumColumns is the number of rankable daily series.
const NumColumns = 3

// HourlyColumns are the series derivable from hourly data alone.
var HourlyColumns = []Column{ColumnVarDen, ColumnFixedDen}

// AllColumns are the series available when an external daily table is supplied.
var AllColumns = []Column{ColumnVarDen, ColumnFixedDen, ColumnDailyValue}

// String returns the column suffix used in field names.
func (c Column) String() string {
	switch c {
	case ColumnVarDen:
		return "var_den"
	case ColumnFixedDen:
		return "fixed_den"
	case ColumnDailyValue:
		return "daily_value"
	default:
		return "none"
	}
}

// FlowLevel is one of the four flow-duration levels.
type FlowLevel int

const (
	LevelHigh FlowLevel = iota
	LevelNormal
	LevelLow
	LevelDrought
)

// NumLevels is the number of flow-duration levels.
const NumLevels = 4

// FlowLevels lists the levels in reporting order.
var FlowLevels = [NumLevels]FlowLevel{LevelHigh, LevelNormal, LevelLow, LevelDrought}

// NominalRank is the exceedance rank a level is read at in a 365-day year.
func (l FlowLevel) NominalRank() int {
	switch l {
	case LevelHigh:
		return 95
	case LevelNormal:
		return 185
	case LevelLow:
		return 275
	case LevelDrought:
		return 355
	default:
		return 0
	}
}

func (l FlowLevel) String() string {
	switch l {
	case LevelHigh:
		return "high"
	case LevelNormal:
		return "normal"
	case LevelLow:
		return "low"
	case LevelDrought:
		return "drought"
	default:
		return "unknown"
	}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// HydroDateOf maps an hourly timestamp to its hydrological day. A reading
// stamped 01:00 through 24:00 (00:00 of the next day) belongs to the day
// the hour ended in, so the timestamp is shifted back one hour first.
func HydroDateOf(ts time.Time) time.Time {
	return DateOf(ts.Add(-time.Hour))
}

// HourlySample is one row of the hourly extract.
type HourlySample struct {
	// Timestamp is zero when the cell could not be decoded.
	Timestamp time.Time
	Value     Value
}

// HasTimestamp reports whether the sample can be placed on a hydrological day.
func (s HourlySample) HasTimestamp() bool {
	return !s.Timestamp.IsZero()
}

// HydroDate returns the sample's hydrological day. Callers must check
// HasTimestamp first.
func (s HourlySample) HydroDate() time.Time {
	return HydroDateOf(s.Timestamp)
}

// DailyAggregateRow is the per-day average of hourly readings.
type DailyAggregateRow struct {
	HydroDate    time.Time
	VarDenAvg    Value
	FixedDenAvg  Value
	NonNullCount int
}

// ExternalDailyRow is one row of the official daily table.
type ExternalDailyRow struct {
	HydroDate  time.Time
	DailyValue Value
}

// MergedRow joins the hourly aggregates with the external daily table.
type MergedRow struct {
	HydroDate   time.Time
	Year        int
	VarDenAvg   Value
	FixedDenAvg Value
	// NonNullCount is absent for days only the daily table reports.
	NonNullCount sql.NullInt64
	DailyValue   Value
}

// Get returns the value of column c.
func (r MergedRow) Get(c Column) Value {
	switch c {
	case ColumnVarDen:
		return r.VarDenAvg
	case ColumnFixedDen:
		return r.FixedDenAvg
	case ColumnDailyValue:
		return r.DailyValue
	default:
		return Missing()
	}
}

// RankedRow is a merged row annotated with exceedance ranks and the level
// values of its year. Entries for columns that were not ranked stay absent.
type RankedRow struct {
	MergedRow
	Ranks  [NumColumns]sql.NullInt64
	Levels [NumColumns][NumLevels]Value
}

// PeakRow is the daily hourly maximum.
type PeakRow struct {
	HydroDate time.Time
	Value     Value
	Time      sql.NullTime
}
