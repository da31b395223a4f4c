package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mmercade/shotplan/internal/entity"
)

// Service produces XLSX bytes for extracted schedules.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

const sheet = "Schedule"

// ExportWeeksXLSX returns an XLSX workbook (as bytes) with one row per
// extracted day, grouped by week.
func (s *Service) ExportWeeksXLSX(res *entity.Result) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Week",
		"Scope",
		"Date",
		"Day",
		"Crew Start",
		"Crew End",
		"Precall",
		"Sequences / Locations",
		"Transport",
		"Observations",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, w := range res.Weeks {
		weekLabel := w.Label
		if weekLabel == "" {
			weekLabel = w.StartDate
		}
		for _, idx := range sortedDayIndexes(w) {
			d := w.Days[idx]
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			write(1, weekLabel)
			write(2, string(w.Scope))
			write(3, d.DateISO)
			write(4, dayName(d.DayIndex))
			write(5, d.CrewStart)
			write(6, d.CrewEnd)
			write(7, d.Precall)
			write(8, d.LocationSequencesText)
			write(9, d.TransportText)
			write(10, d.ObservationsText)
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export.xlsx.done",
		"weeks", len(res.Weeks),
		"rows", row-2,
		"elapsed", time.Since(start))
	return buf.Bytes(), nil
}

func sortedDayIndexes(w *entity.Week) []int {
	idxs := make([]int, 0, len(w.Days))
	for i := range w.Days {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	return idxs
}

var dayNames = [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

func dayName(idx int) string {
	if idx < 0 || idx > 6 {
		return ""
	}
	return dayNames[idx]
}
