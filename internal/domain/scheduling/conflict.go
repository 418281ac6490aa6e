package scheduling

import "time"

// Interval rango semiabierto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps dos intervalos se solapan si a.Start < b.End y a.End > b.Start.
// Turnos consecutivos que comparten un extremo no se solapan.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// HasOverlap indica si candidate se solapa con alguno de los intervalos existentes.
func HasOverlap(existing []Interval, candidate Interval) bool {
	for _, e := range existing {
		if candidate.Overlaps(e) {
			return true
		}
	}
	return false
}
