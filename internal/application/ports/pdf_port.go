package ports

import (
	"context"

	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

// RosterLine una fila del roster: turno más el nombre del asignado ("" si está libre).
type RosterLine struct {
	Shift        *entity.Shift
	AssigneeName string
}

// SchedulePDFGenerator genera la representación en PDF de un horario.
type SchedulePDFGenerator interface {
	GenerateSchedulePDF(
		ctx context.Context,
		restaurant *entity.Restaurant,
		schedule *entity.Schedule,
		lines []RosterLine,
	) ([]byte, error)
}
