// Package scheduling contiene los servicios de dominio de tiempo: composición de
// fecha + hora del día en instantes absolutos y detección de solapamientos.
//
// Convención: todos los instantes se guardan en UTC. La hora del día se interpreta
// en la zona de referencia del Normalizer (APP_TIMEZONE) y luego se convierte a UTC.
package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Horarios-api/internal/domain"
)

const dateLayout = "2006-01-02"

// TimeOfDay hora:minuto sin fecha.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String formato HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseDate interpreta "YYYY-MM-DD" como la medianoche UTC de esa fecha calendario.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (formato YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// ParseTimeOfDay acepta "HH:MM" o "HH:MM:SS" (los segundos se descartan).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: hora %q (formato HH:MM)", domain.ErrInvalidInput, s)
}

// Normalizer compone fechas y horas en la zona de referencia configurada.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer construye el normalizador; loc nil equivale a UTC.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

// Location zona de referencia.
func (n *Normalizer) Location() *time.Location { return n.loc }

// Compose ancla la hora del día sobre la fecha calendario en la zona de referencia y devuelve el instante en UTC.
func (n *Normalizer) Compose(date time.Time, tod TimeOfDay) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, tod.Hour, tod.Minute, 0, 0, n.loc).UTC()
}

// ComposeStrings atajo para entradas en texto: fecha "YYYY-MM-DD", horas "HH:MM".
// Devuelve la fecha calendario (medianoche UTC) y los instantes de inicio y fin ya validados.
func (n *Normalizer) ComposeStrings(date, start, end string) (day, from, to time.Time, err error) {
	day, err = ParseDate(date)
	if err != nil {
		return
	}
	startTod, err := ParseTimeOfDay(start)
	if err != nil {
		return
	}
	endTod, err := ParseTimeOfDay(end)
	if err != nil {
		return
	}
	from, to = n.Compose(day, startTod), n.Compose(day, endTod)
	err = ValidateRange(from, to)
	return
}

// TimeOfDayOf extrae la hora del día de un instante visto en la zona de referencia.
func (n *Normalizer) TimeOfDayOf(instant time.Time) TimeOfDay {
	local := instant.In(n.loc)
	return TimeOfDay{Hour: local.Hour(), Minute: local.Minute()}
}

// ValidateRange exige end > start. Es la guarda que corre antes de persistir
// cualquier Shift, Schedule o Availability.
func ValidateRange(start, end time.Time) error {
	if !end.After(start) {
		return domain.ErrInvalidRange
	}
	return nil
}
