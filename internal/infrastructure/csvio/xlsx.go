package csvio

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain"
)

// ParseItemsXLSX lee la primera hoja de un libro Excel con la misma cabecera que ParseItems.
// Las filas vacías se ignoran; las de números ilegibles o fuera de rango se cuentan en skipped.
func ParseItemsXLSX(r io.Reader) (rows []dto.ImportRow, skipped int, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("xlsx: abrir libro: %w: %w", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, fmt.Errorf("xlsx: libro sin hojas: %w", domain.ErrInvalidInput)
	}
	it, err := f.Rows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("xlsx: leer hoja %q: %w: %w", sheets[0], domain.ErrInvalidInput, err)
	}
	defer it.Close()

	var m *rowMapper
	for it.Next() {
		// valor crudo: "0.1" y no el formato de la celda ("$0.10")
		rec, err := it.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, 0, fmt.Errorf("xlsx: leer fila: %w: %w", domain.ErrInvalidInput, err)
		}
		if blank(rec) {
			continue
		}
		if m == nil {
			if m, err = newRowMapper(rec); err != nil {
				return nil, 0, fmt.Errorf("xlsx: %w", err)
			}
			continue
		}
		row, ok := m.row(rec)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	if err := it.Error(); err != nil {
		return nil, 0, fmt.Errorf("xlsx: %w: %w", domain.ErrInvalidInput, err)
	}
	if m == nil {
		return nil, 0, fmt.Errorf("xlsx: hoja vacía: %w", domain.ErrInvalidInput)
	}
	return rows, skipped, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
