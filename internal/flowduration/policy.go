package flowduration

import (
	"math"

	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

const (
	// MissingThreshold is the number of missing days at which a year is
	// invalidated under a thresholded policy.
	MissingThreshold = 11

	// ReferenceYearDays is the year length the nominal ranks are defined for.
	ReferenceYearDays = 365
)

// Policy selects the ranking and leveling variant.
type Policy struct {
	Name           string
	ApplyThreshold bool
	UseScaling     bool
	// TieBreak orders rows with equal values before the hydrological date
	// does. NoColumn orders them by date alone.
	TieBreak domain.Column
}

var (
	ThresholdPolicy = Policy{
		Name:           "threshold",
		ApplyThreshold: true,
		UseScaling:     true,
		TieBreak:       domain.NoColumn,
	}

	ReferencePolicy = Policy{
		Name:           "reference",
		ApplyThreshold: false,
		UseScaling:     false,
		TieBreak:       domain.ColumnVarDen,
	}
)

// Invalidates reports whether missing days discard the year.
func (p Policy) Invalidates(missing int) bool {
	return p.ApplyThreshold && missing >= MissingThreshold
}

// tieLess orders two rows whose ranked values are equal.
func (p Policy) tieLess(a, b domain.MergedRow) bool {
	if p.TieBreak != domain.NoColumn {
		if c := a.Get(p.TieBreak).Cmp(b.Get(p.TieBreak)); c != 0 {
			return c < 0
		}
	}
	return a.HydroDate.Before(b.HydroDate)
}

// EffectiveRank returns the 1-based rank a level with the given nominal rank
// is read at, or false when the policy yields no rank for the year.
//
// With scaling the nominal rank is first stretched to the year length and
// then shrunk by the share of days present, each step floored:
//
//	r          = floor(nominal / 365 * totalDays)
//	r_adjusted = floor(r * (totalDays - missing) / totalDays)
func EffectiveRank(nominal, totalDays, missing int, p Policy) (int, bool) {
	if p.Invalidates(missing) || missing >= totalDays {
		return 0, false
	}
	if !p.UseScaling {
		return max(1, nominal), true
	}

	r := int(math.Floor(float64(nominal) / ReferenceYearDays * float64(totalDays)))
	effectiveDays := totalDays - missing
	adjusted := int(math.Floor(float64(r*effectiveDays) / float64(totalDays)))
	return max(1, adjusted), true
}
