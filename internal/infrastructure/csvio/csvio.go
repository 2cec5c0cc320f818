// Package csvio lee importaciones de inventario (CSV y XLSX) y exporta la lista de compras en CSV.
package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
)

// Columnas aceptadas en la cabecera (sin distinguir mayúsculas ni espacios).
var columnAliases = map[string]string{
	"name":              "name",
	"category":          "category",
	"location":          "location",
	"quantity":          "quantity",
	"qty":               "quantity",
	"minstock":          "min_stock",
	"min_stock":         "min_stock",
	"min stock":         "min_stock",
	"reorder_threshold": "min_stock",
	"price":             "price",
}

var (
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
	maxCount = decimal.NewFromInt(entity.MaxCount)
)

// decoder devuelve un lector UTF-8 para el charset indicado (utf-8, latin1, windows-1252).
func decoder(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		br := bufio.NewReader(r)
		if head, err := br.Peek(3); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = br.Discard(3)
		}
		return br, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("csv: charset %q no soportado: %w", charset, domain.ErrInvalidInput)
	}
}

// ParseItems lee un CSV con cabecera Name,Category,Location,Quantity,MinStock,Price.
// Solo Name es obligatoria; las celdas vacías quedan nil para que se apliquen los valores por defecto.
// Filas con números ilegibles o fuera de rango se omiten y se cuentan en skipped.
func ParseItems(r io.Reader, charset string) (rows []dto.ImportRow, skipped int, err error) {
	dr, err := decoder(r, charset)
	if err != nil {
		return nil, 0, err
	}
	cr := csv.NewReader(dr)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("csv: archivo vacío: %w", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("csv: cabecera: %w: %w", domain.ErrInvalidInput, err)
	}
	m, err := newRowMapper(header)
	if err != nil {
		return nil, 0, fmt.Errorf("csv: %w", err)
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("csv: leer fila: %w: %w", domain.ErrInvalidInput, err)
		}
		row, ok := m.row(rec)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

// rowMapper ubica las columnas conocidas a partir de la cabecera. Lo comparten CSV y XLSX.
type rowMapper struct {
	idx map[string]int
}

func newRowMapper(header []string) (*rowMapper, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if col, ok := columnAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			idx[col] = i
		}
	}
	if _, ok := idx["name"]; !ok {
		return nil, fmt.Errorf("falta la columna Name: %w", domain.ErrInvalidInput)
	}
	return &rowMapper{idx: idx}, nil
}

// row convierte un registro; ok=false si algún número es ilegible o no cabe en su columna.
func (m *rowMapper) row(rec []string) (dto.ImportRow, bool) {
	cell := func(col string) string {
		i, ok := m.idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	row := dto.ImportRow{
		Name:     cell("name"),
		Category: cell("category"),
		Location: cell("location"),
	}
	var ok bool
	if row.Quantity, ok = parseInt(cell("quantity")); !ok {
		return row, false
	}
	if row.ReorderThreshold, ok = parseInt(cell("min_stock")); !ok {
		return row, false
	}
	if row.Price, ok = parseDecimal(cell("price")); !ok {
		return row, false
	}
	return row, true
}

// parseInt acepta vacío (nil) o un entero que quepa en INTEGER; "7.0" de hojas de cálculo se acepta como 7.
func parseInt(s string) (*int, bool) {
	if s == "" {
		return nil, true
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		v := int(n)
		return &v, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.Equal(d.Truncate(0)) || d.Abs().GreaterThan(maxCount) {
		return nil, false
	}
	n := int(d.IntPart())
	return &n, true
}

// parseDecimal acepta vacío (nil) o un precio, con "$" opcional, que quepa en NUMERIC(12, 2).
func parseDecimal(s string) (*decimal.Decimal, bool) {
	if s == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "$"))
	if err != nil || (!d.IsNegative() && !entity.PriceInRange(d)) {
		return nil, false
	}
	return &d, true
}

// WriteShoppingList escribe la lista de compras como CSV (UTF-8) con una fila final de total.
func WriteShoppingList(w io.Writer, list *dto.ShoppingListResponse) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Category", "Quantity", "MinStock", "Required", "Price", "EstimatedCost"}); err != nil {
		return err
	}
	for _, it := range list.Items {
		if err := cw.Write([]string{
			it.Name,
			it.Category,
			strconv.Itoa(it.Quantity),
			strconv.Itoa(it.ReorderThreshold),
			strconv.Itoa(it.Required),
			it.Price.StringFixed(2),
			it.EstimatedCost.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"TOTAL", "", "", "", "", "", list.TotalEstimatedCost.StringFixed(2)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
