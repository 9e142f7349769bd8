package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Inventario-pos/internal/domain"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := r
		require.NoError(t, f.SetSheetRow("Sheet1", axis, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead_HojaCompleta(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Conteo de marzo"},
		[]interface{}{"NOMBRE", "Cantidad", "Precio de Compra", "precio de venta"},
		[]interface{}{"Arroz 1lb", 10, 2.5, 4},
		[]interface{}{"", 3, 1, 1},
		[]interface{}{"Azúcar", nil, nil, "6,50"},
	)

	rows, err := Read(buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 3, rows[0].Row)
	assert.Equal(t, "Arroz 1lb", rows[0].Name)
	assert.Equal(t, int64(10), rows[0].Quantity)
	assert.Equal(t, "2.5", rows[0].PurchasePrice.String())
	assert.Equal(t, "4", rows[0].SalePrice.String())

	assert.True(t, rows[1].Blank(), "fila sin nombre se marca para omitir")

	assert.Equal(t, "Azúcar", rows[2].Name)
	assert.Zero(t, rows[2].Quantity, "cantidad vacía vale 0")
	assert.True(t, rows[2].PurchasePrice.IsZero())
	assert.Equal(t, "6.5", rows[2].SalePrice.String())
}

func TestRead_CeldasConFormatoNumerico(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Nombre", "Cantidad", "Precio de compra", "Precio de venta"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Arroz", 1500, 1234.5, 2000.25}))
	style, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "D2", style))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := Read(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1500), rows[0].Quantity)
	assert.Equal(t, "1234.5", rows[0].PurchasePrice.String())
	assert.Equal(t, "2000.25", rows[0].SalePrice.String())
}

func TestParseRows_Errores(t *testing.T) {
	header := []string{"Nombre", "Cantidad", "Precio de compra", "Precio de venta"}
	tests := []struct {
		name  string
		rows  [][]string
		field string
		row   int
	}{
		{"sin cabecera", [][]string{{"foo", "bar"}}, colName, 0},
		{"cantidad no numérica", [][]string{header, {"A", "diez"}}, colQuantity, 2},
		{"cantidad fraccionaria", [][]string{header, {"A", "1.5"}}, colQuantity, 2},
		{"cantidad fuera de rango", [][]string{header, {"A", "100000000000000000000"}}, colQuantity, 2},
		{"cantidad negativa fuera de rango", [][]string{header, {"A", "-100000000000000000000"}}, colQuantity, 2},
		{"precio no numérico", [][]string{header, {"A", "1", "x"}}, colPurchase, 2},
		{"precio de venta no numérico", [][]string{header, {"A", "1", "1", "?"}}, colSale, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRows(tt.rows)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var de *domain.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Field)
			assert.Equal(t, tt.row, de.Row)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "precio de compra", normalize("  Précio   de COMPRA "))
	assert.Equal(t, "nombre", normalize("Nombre"))
}

func TestRead_ArchivoInvalido(t *testing.T) {
	_, err := Read(bytes.NewBufferString("no soy un xlsx"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
