package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/infrastructure/pdf"
)

func TestGenerateSchedulePDF(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	user := "u1"
	restaurant := &entity.Restaurant{ID: 12345, Name: "Cafe A"}
	schedule := &entity.Schedule{ID: "s1", Name: "Semana 23", StartDate: day, EndDate: day.AddDate(0, 0, 7)}
	lines := []ports.RosterLine{
		{Shift: &entity.Shift{Role: "cook", Date: day, StartTime: day.Add(9 * time.Hour), EndTime: day.Add(17 * time.Hour), AssignedToID: &user}, AssigneeName: "Ana"},
		{Shift: &entity.Shift{Role: "server", Date: day, StartTime: day.Add(12 * time.Hour), EndTime: day.Add(16*time.Hour + 30*time.Minute)}},
	}

	b, err := pdf.NewMarotoPDFGenerator(nil).GenerateSchedulePDF(context.Background(), restaurant, schedule, lines)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
