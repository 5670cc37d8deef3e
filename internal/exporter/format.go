package exporter

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// cellKind selects how a cell is written and styled.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellNumber
	cellInt
	cellDate
	cellDateTime
	cellText
)

// cell is one output value, independent of the file format.
type cell struct {
	kind cellKind
	num  domain.Value
	i    int64
	t    time.Time
	s    string
}

// valueCell rounds at the output boundary; a missing value is an empty cell.
func valueCell(v domain.Value) cell {
	if !v.Valid() {
		return cell{}
	}
	return cell{kind: cellNumber, num: v.Rounded()}
}

func nullIntCell(n sql.NullInt64) cell {
	if !n.Valid {
		return cell{}
	}
	return cell{kind: cellInt, i: n.Int64}
}

func intCell(i int) cell {
	return cell{kind: cellInt, i: int64(i)}
}

func dateCell(t time.Time) cell {
	return cell{kind: cellDate, t: t}
}

func timeCell(t sql.NullTime) cell {
	if !t.Valid {
		return cell{}
	}
	return cell{kind: cellDateTime, t: t.Time}
}

func textCell(s string) cell {
	return cell{kind: cellText, s: s}
}

// float returns the workbook value of a number cell.
func (c cell) float() float64 {
	f, _ := c.num.Float64()
	return f
}

// formatCell renders c as text with exactly 2 decimal places for numbers.
func formatCell(c cell) string {
	switch c.kind {
	case cellNumber:
		return c.num.String()
	case cellInt:
		return strconv.FormatInt(c.i, 10)
	case cellDate:
		return c.t.Format("2006/01/02")
	case cellDateTime:
		return c.t.Format("2006/01/02 15:04")
	case cellText:
		return c.s
	default:
		return ""
	}
}
