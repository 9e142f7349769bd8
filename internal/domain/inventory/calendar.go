package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain"
)


// DateLayout formato de fechas de calendario en entradas y salidas.
const DateLayout = "2006-01-02"

// Period intervalo cerrado [From, To] de instantes UTC.
type Period struct {
	From time.Time
	To   time.Time
}

// Contains indica si t cae dentro del intervalo (ambos extremos incluidos).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && !t.After(p.To)
}

// LocalPeriod convierte un rango de días calendario (YYYY-MM-DD) en la zona loc a instantes UTC:
// desde las 00:00:00.000 del día inicial hasta las 23:59:59.999 del día final.
func LocalPeriod(start, end string, loc *time.Location) (Period, error) {
	s, err := time.ParseInLocation(DateLayout, strings.TrimSpace(start), loc)
	if err != nil {
		return Period{}, domain.Invalid("date_start", "formato esperado YYYY-MM-DD")
	}
	e, err := time.ParseInLocation(DateLayout, strings.TrimSpace(end), loc)
	if err != nil {
		return Period{}, domain.Invalid("date_end", "formato esperado YYYY-MM-DD")
	}
	if e.Before(s) {
		return Period{}, domain.Invalid("date_end", "debe ser igual o posterior a date_start")
	}
	last := time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, 999*int(time.Millisecond), loc)
	return Period{From: s.UTC(), To: last.UTC()}, nil
}

// LocalDate devuelve el día calendario (YYYY-MM-DD) de t en la zona loc.
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}
