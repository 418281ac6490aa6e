package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/observability/metrics"
)

// Clock fuente de tiempo inyectable (tests).
type Clock func() time.Time

func defaultClock(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// rejected cuenta los rechazos de validación por entidad y devuelve el mismo error.
func rejected(entityName string, err error) error {
	if err != nil && errors.Is(err, domain.ErrInvalidInput) {
		metrics.ObserveValidationRejection(entityName)
	}
	return err
}

func requiredText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: %s es obligatorio", domain.ErrInvalidInput, field)
	}
	return v, nil
}
