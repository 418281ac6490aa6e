package entity

import (
	"strings"

	"github.com/jhoicas/Horarios-api/internal/domain"
)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")

// NormalizePhone quita separadores visuales y valida formato tipo E.164:
// '+' opcional, 2 a 15 dígitos, sin cero inicial. Vacío es válido (campo opcional).
func NormalizePhone(raw string) (string, error) {
	p := phoneSeparators.Replace(strings.TrimSpace(raw))
	if p == "" {
		return "", nil
	}
	digits := strings.TrimPrefix(p, "+")
	if len(digits) < 2 || len(digits) > 15 || digits[0] == '0' {
		return "", domain.ErrInvalidPhone
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return "", domain.ErrInvalidPhone
		}
	}
	return p, nil
}
