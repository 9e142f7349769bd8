package reporting

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
)

// DailyReport datos de entrada del PDF del desglose diario.
type DailyReport struct {
	BusinessName string
	From, To     string // YYYY-MM-DD
	TimeZone     string
	Days         []inventory.DailyBucket
	GeneratedAt  time.Time
}

// DailyReportPDFGenerator genera la representación imprimible del desglose diario.
type DailyReportPDFGenerator interface {
	Generate(ctx context.Context, r DailyReport) ([]byte, error)
}
