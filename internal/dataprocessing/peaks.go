package dataprocessing

import (
	"database/sql"
	"time"

	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// BuildPeaks returns the maximum hourly value of each hydrological day with
// its original timestamp. Equal maxima keep the earliest sample in input
// order. A day whose samples are all missing gets an absent peak.
func BuildPeaks(samples []domain.HourlySample) []domain.PeakRow {
	peaks := make(map[time.Time]*domain.PeakRow)

	for _, s := range samples {
		if !s.HasTimestamp() {
			continue
		}
		date := s.HydroDate()
		p, ok := peaks[date]
		if !ok {
			p = &domain.PeakRow{HydroDate: date}
			peaks[date] = p
		}
		if !s.Value.Valid() {
			continue
		}
		if !p.Value.Valid() || s.Value.Cmp(p.Value) > 0 {
			p.Value = s.Value
			p.Time = sql.NullTime{Time: s.Timestamp, Valid: true}
		}
	}

	rows := make([]domain.PeakRow, 0, len(peaks))
	for _, date := range sortedDates(peaks) {
		rows = append(rows, *peaks[date])
	}
	return rows
}
