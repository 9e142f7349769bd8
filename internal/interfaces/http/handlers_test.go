package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/reporting"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/lock"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/sheet"
	apphttp "github.com/jhoicas/Inventario-pos/internal/interfaces/http"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type api struct {
	app    *fiber.App
	db     *memory.DB
	wh     int64
	item   int64
	locker *lock.LocalLocker
}

func newAPI(t *testing.T) *api {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	w := &entity.Warehouse{Name: "Central"}
	require.NoError(t, db.Store().Warehouses.Create(ctx, w))
	it := &entity.Item{Code: "ARROZ", Name: "Arroz 1lb"}
	require.NoError(t, db.Store().Items.Create(ctx, it))

	loc, err := time.LoadLocation(config.DefaultTimeZone)
	require.NoError(t, err)

	log := logger.Nop()
	locker := lock.NewLocalLocker()
	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		Projection: appinventory.NewProjectionUseCase(db, locker, true, log),
		Movements:  appinventory.NewMovementUseCase(db, log),
		Disposals:  appinventory.NewDisposalUseCase(db, log),
		Import:     appinventory.NewImportUseCase(db, log),
		Valuation:  reporting.NewValuationUseCase(db, pdf.NewDailyReportGenerator(), loc, "Pulpería", log),
		ReadSheet:  sheet.Read,
		JWTSecret:  testJWTSecret,
	})
	return &api{app: app, db: db, wh: w.ID, item: it.ID, locker: locker}
}

func (a *api) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_EntradaVentaReconstruccionYReportes(t *testing.T) {
	a := newAPI(t)

	at := "2024-03-01T12:00:00Z"
	resp := a.do(t, http.MethodPost, "/api/movements/bulk", "bodeguero", map[string]any{
		"movements": []map[string]any{{
			"item_id": a.item, "type": "inbound", "quantity": 10, "target_warehouse_id": a.wh,
			"purchase_price": "2.00", "sale_price": "5.00", "timestamp": at,
		}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = a.do(t, http.MethodPost, "/api/sale-groups", "vendedor", dto.CreateGroupRequest{WarehouseID: a.wh})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	group := decode[dto.GroupResponse](t, resp)

	resp = a.do(t, http.MethodPost, "/api/sales/bulk", "vendedor", map[string]any{
		"sale_group_id": group.ID,
		"sales": []map[string]any{
			{"item_id": a.item, "warehouse_id": a.wh, "quantity": 3, "sale_price": "5.00", "paid": true, "sold_at": "2024-03-01T13:00:00Z"},
			{"item_id": a.item, "warehouse_id": a.wh, "quantity": 1, "sale_price": "5.00", "paid": false, "sold_at": "2024-03-01T14:00:00Z"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sales := decode[[]dto.SaleResponse](t, resp)
	require.Len(t, sales, 2)
	assert.NotZero(t, sales[0].MovementID)

	resp = a.do(t, http.MethodPost, "/api/inventory/rebuild", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rebuild := decode[dto.RebuildResponse](t, resp)
	assert.Equal(t, appinventory.RebuildFull, rebuild.Mode)
	assert.Equal(t, 3, rebuild.Movements)

	resp = a.do(t, http.MethodGet, "/api/inventory/summary", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sum := decode[dto.CurrentSummaryResponse](t, resp)
	assert.Equal(t, int64(6), sum.TotalItems)
	assert.Equal(t, "12.00", sum.TotalInvestment.StringFixed(2))
	assert.Equal(t, "5.00", sum.TotalDebt.StringFixed(2))

	resp = a.do(t, http.MethodGet, "/api/reports/range?start=2024-03-01&end=2024-03-01", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rng := decode[dto.RangeSummaryResponse](t, resp)
	assert.Equal(t, "15.00", rng.TotalPaid.StringFixed(2))
	assert.Equal(t, "9.00", rng.TotalProfit.StringFixed(2))

	resp = a.do(t, http.MethodGet, "/api/inventory/grouped/"+itoa(a.wh), "bodeguero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	grouped := decode[[]dto.GroupedSummaryRow](t, resp)
	require.Len(t, grouped, 1)
	assert.Equal(t, "Arroz 1lb", grouped[0].ItemName)

	resp = a.do(t, http.MethodGet, "/api/sale-groups/debtors", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	debtors := decode[[]dto.SaleGroupSummaryResponse](t, resp)
	require.Len(t, debtors, 1)
	assert.Equal(t, "5.00", debtors[0].TotalDebt.StringFixed(2))

	resp = a.do(t, http.MethodPatch, "/api/sales/"+itoa(sales[1].ID)+"/paid", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	paid := decode[dto.SaleResponse](t, resp)
	assert.True(t, paid.Paid)

	resp = a.do(t, http.MethodGet, "/api/reports/daily/pdf?start=2024-03-01&end=2024-03-01", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	doc, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_MapeoDeErrores(t *testing.T) {
	a := newAPI(t)
	tests := []struct {
		name   string
		method string
		path   string
		role   string
		body   any
		status int
		code   string
	}{
		{"rango invertido", http.MethodGet, "/api/reports/range?start=2024-03-05&end=2024-03-01", "admin", nil, http.StatusBadRequest, "VALIDATION"},
		{"fecha mal formada", http.MethodGet, "/api/reports/daily?start=01-03-2024&end=2024-03-01", "admin", nil, http.StatusBadRequest, "VALIDATION"},
		{"venta inexistente", http.MethodPatch, "/api/sales/999/paid", "vendedor", nil, http.StatusNotFound, "NOT_FOUND"},
		{"id no numérico", http.MethodGet, "/api/sale-groups/abc/summary", "vendedor", nil, http.StatusBadRequest, "VALIDATION"},
		{"grupo inexistente", http.MethodGet, "/api/movement-groups/5/summary", "bodeguero", nil, http.StatusNotFound, "NOT_FOUND"},
		{"lote vacío", http.MethodPost, "/api/movements/bulk", "bodeguero", map[string]any{"movements": []any{}}, http.StatusBadRequest, "VALIDATION"},
		{"tipo desconocido", http.MethodPost, "/api/movements/bulk", "admin", map[string]any{
			"movements": []map[string]any{{"item_id": 1, "type": "ajuste", "quantity": 1, "target_warehouse_id": 1}},
		}, http.StatusBadRequest, "VALIDATION"},
		{"vendedor no reconstruye", http.MethodPost, "/api/inventory/rebuild", "vendedor", nil, http.StatusForbidden, "FORBIDDEN"},
		{"bodeguero sin reportes", http.MethodGet, "/api/reports/range?start=2024-03-01&end=2024-03-01", "bodeguero", nil, http.StatusForbidden, "FORBIDDEN"},
		{"sin token", http.MethodGet, "/api/inventory/summary", "", nil, http.StatusUnauthorized, "MISSING_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := a.do(t, tt.method, tt.path, tt.role, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestAPI_ListadosPorGrupoYBodega(t *testing.T) {
	a := newAPI(t)
	wh := itoa(a.wh)

	resp := a.do(t, http.MethodPost, "/api/movement-groups", "bodeguero", dto.CreateGroupRequest{WarehouseID: a.wh})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	movGroup := decode[dto.GroupResponse](t, resp)

	resp = a.do(t, http.MethodPost, "/api/movements/bulk", "bodeguero", map[string]any{
		"item_movement_group_id": movGroup.ID,
		"movements": []map[string]any{{
			"item_id": a.item, "type": "inbound", "quantity": 5, "target_warehouse_id": a.wh,
			"purchase_price": "1.00", "sale_price": "2.00",
		}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = a.do(t, http.MethodGet, "/api/movement-groups/"+itoa(movGroup.ID)+"/movements", "bodeguero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	movs := decode[[]dto.MovementResponse](t, resp)
	require.Len(t, movs, 1)
	assert.Equal(t, "Arroz 1lb", movs[0].ItemName)

	resp = a.do(t, http.MethodGet, "/api/movement-groups/warehouse/"+wh, "bodeguero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	movSummaries := decode[[]dto.MovementGroupSummaryResponse](t, resp)
	require.Len(t, movSummaries, 1)
	assert.Equal(t, int64(5), movSummaries[0].TotalItems)

	resp = a.do(t, http.MethodPost, "/api/sale-groups", "vendedor", dto.CreateGroupRequest{WarehouseID: a.wh})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saleGroup := decode[dto.GroupResponse](t, resp)
	resp = a.do(t, http.MethodPost, "/api/sales/bulk", "vendedor", map[string]any{
		"sale_group_id": saleGroup.ID,
		"sales":         []map[string]any{{"item_id": a.item, "warehouse_id": a.wh, "quantity": 2, "sale_price": "2.00"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = a.do(t, http.MethodGet, "/api/sale-groups/"+itoa(saleGroup.ID)+"/sales", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sales := decode[[]dto.SaleResponse](t, resp)
	require.Len(t, sales, 1)
	assert.Equal(t, "Arroz 1lb", sales[0].ItemName)

	resp = a.do(t, http.MethodGet, "/api/sale-groups/warehouse/"+wh, "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saleSummaries := decode[[]dto.SaleGroupSummaryResponse](t, resp)
	require.Len(t, saleSummaries, 1)
	assert.Equal(t, "4.00", saleSummaries[0].TotalDebt.StringFixed(2))

	resp = a.do(t, http.MethodPost, "/api/inventory/rebuild", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = a.do(t, http.MethodGet, "/api/inventory/warehouse/"+wh, "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decode[[]dto.SnapshotResponse](t, resp)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0].Quantity)

	resp = a.do(t, http.MethodGet, "/api/inventory/warehouse/999", "vendedor", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ErrorDePersistenciaNoExponeDetalle(t *testing.T) {
	a := newAPI(t)
	a.db.FailWrites(func(op string) error {
		return errors.New(`duplicate key value violates unique constraint "item_movement_groups_pkey"`)
	})

	resp := a.do(t, http.MethodPost, "/api/movement-groups", "bodeguero", dto.CreateGroupRequest{WarehouseID: a.wh})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "PERSISTENCE", body.Code)
	assert.NotContains(t, body.Message, "constraint")
	assert.NotEmpty(t, body.Message)
}

func TestAPI_ReconstruccionEnCurso_Retorna409(t *testing.T) {
	a := newAPI(t)
	release, err := a.locker.Obtain(context.Background(), appinventory.RebuildLockKey)
	require.NoError(t, err)
	defer release(context.Background())

	resp := a.do(t, http.MethodPost, "/api/inventory/rebuild", "admin", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_RequestID(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/inventory/summary", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	req.Header.Set(apphttp.HeaderRequestID, "req-123")
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))

	resp = a.do(t, http.MethodGet, "/api/inventory/summary", "admin", nil)
	defer resp.Body.Close()
	assert.Len(t, resp.Header.Get(apphttp.HeaderRequestID), 36, "se genera un uuid")
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

func uploadSheet(t *testing.T, a *api, warehouseID string, rows ...[]interface{}) *http.Response {
	t.Helper()
	f := excelize.NewFile()
	for i, r := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := r
		require.NoError(t, f.SetSheetRow("Sheet1", axis, &r))
	}
	xlsx, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("warehouse_id", warehouseID))
	fw, err := mw.CreateFormFile("file", "conteo.xlsx")
	require.NoError(t, err)
	_, err = io.Copy(fw, xlsx)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, "bodeguero"))
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAPI_ImportarHoja(t *testing.T) {
	a := newAPI(t)
	header := []interface{}{"Nombre", "Cantidad", "Precio de compra", "Precio de venta"}

	resp := uploadSheet(t, a, itoa(a.wh), header,
		[]interface{}{"Café", 4, 3, 4.5},
		[]interface{}{"", 1, 1, 1},
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.ImportResponse](t, resp)
	assert.Equal(t, 2, out.RowsRead)
	assert.Equal(t, 1, out.RowsSkipped)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, int64(4), out.Rows[0].Quantity)

	resp = uploadSheet(t, a, itoa(a.wh), header, []interface{}{"Té", "mucho", 1, 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	msg := decode[dto.ErrorResponse](t, resp).Message
	assert.True(t, strings.Contains(msg, "fila 2"), msg)

	resp = uploadSheet(t, a, "999", header, []interface{}{"Té", 1, 1, 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
