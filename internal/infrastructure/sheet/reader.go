// Package sheet lee hojas de conteo de inventario (.xlsx) con excelize.
package sheet

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
)

// Columnas reconocidas. Los títulos se comparan sin mayúsculas ni tildes.
const (
	colName     = "Nombre"
	colQuantity = "Cantidad"
	colPurchase = "Precio de compra"
	colSale     = "Precio de venta"
)

var headerAliases = map[string]string{
	"nombre":           colName,
	"name":             colName,
	"cantidad":         colQuantity,
	"quantity":         colQuantity,
	"precio de compra": colPurchase,
	"purchase price":   colPurchase,
	"purchase_price":   colPurchase,
	"precio de venta":  colSale,
	"sale price":       colSale,
	"sale_price":       colSale,
}

// maxHeaderScan filas que se revisan buscando la cabecera.
const maxHeaderScan = 10

// Read lee la primera hoja del libro y devuelve las filas de conteo. Las filas sin nombre se
// conservan (Blank) para que el llamador las omita; los valores numéricos vacíos valen 0.
func Read(r io.Reader) ([]inventory.StockRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.Invalid("file", "no es un archivo .xlsx válido: "+err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.Invalid("file", "el libro no tiene hojas")
	}
	// Valores crudos: el formato de celda (#,##0.00, moneda) no debe llegar al parseo.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.Invalid("file", fmt.Sprintf("no se pudo leer la hoja %q: %v", sheets[0], err))
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]inventory.StockRow, error) {
	headerAt, cols := findHeader(rows)
	if headerAt < 0 {
		return nil, domain.Invalid(colName, "no se encontró la columna en la cabecera")
	}

	var out []inventory.StockRow
	for i := headerAt + 1; i < len(rows); i++ {
		row := rows[i]
		sr := inventory.StockRow{Row: i + 1, Name: strings.TrimSpace(cell(row, cols, colName))}
		if sr.Blank() {
			out = append(out, sr)
			continue
		}

		qty, err := parseQuantity(cell(row, cols, colQuantity))
		if err != nil {
			return nil, domain.InvalidRow(sr.Row, colQuantity, err.Error())
		}
		sr.Quantity = qty
		if sr.PurchasePrice, err = parseMoney(cell(row, cols, colPurchase)); err != nil {
			return nil, domain.InvalidRow(sr.Row, colPurchase, err.Error())
		}
		if sr.SalePrice, err = parseMoney(cell(row, cols, colSale)); err != nil {
			return nil, domain.InvalidRow(sr.Row, colSale, err.Error())
		}
		out = append(out, sr)
	}
	return out, nil
}

// findHeader devuelve el índice de la fila de cabecera y la posición de cada columna conocida.
func findHeader(rows [][]string) (int, map[string]int) {
	for i := 0; i < len(rows) && i < maxHeaderScan; i++ {
		cols := make(map[string]int)
		for j, title := range rows[i] {
			if canon, ok := headerAliases[normalize(title)]; ok {
				if _, dup := cols[canon]; !dup {
					cols[canon] = j
				}
			}
		}
		if _, ok := cols[colName]; ok {
			return i, cols
		}
	}
	return -1, nil
}

func cell(row []string, cols map[string]int, name string) string {
	j, ok := cols[name]
	if !ok || j >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[j])
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.TrimPrefix(strings.ReplaceAll(s, " ", ""), "C$")
	d, err := decimal.NewFromString(s)
	if err != nil && strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		d, err = decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor no numérico %q", s)
	}
	return d, nil
}

func parseQuantity(s string) (int64, error) {
	d, err := parseMoney(s)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("la cantidad %q debe ser entera", s)
	}
	if d.GreaterThan(maxQuantity) || d.LessThan(minQuantity) {
		return 0, fmt.Errorf("la cantidad %q está fuera de rango", s)
	}
	return d.IntPart(), nil
}

var (
	maxQuantity = decimal.NewFromInt(math.MaxInt64)
	minQuantity = decimal.NewFromInt(math.MinInt64)
)
