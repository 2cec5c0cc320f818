package csvio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/csvio"
)

func TestParseItems_CabeceraSinMayusculasYVacios(t *testing.T) {
	in := "NAME,category,Location,QUANTITY,MinStock,price\n" +
		"Arduino Uno,Microcontrollers,A1,20,5,25.50\n" +
		"Resistencia,,,,,\n" +
		",Sensors,B1,3,1,2\n"

	rows, skipped, err := csvio.ParseItems(strings.NewReader(in), "")
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, rows, 3)

	assert.Equal(t, "Arduino Uno", rows[0].Name)
	require.NotNil(t, rows[0].Quantity)
	assert.Equal(t, 20, *rows[0].Quantity)
	assert.Equal(t, 5, *rows[0].ReorderThreshold)
	assert.True(t, rows[0].Price.Equal(decimal.RequireFromString("25.5")))

	assert.Equal(t, "Resistencia", rows[1].Name)
	assert.Nil(t, rows[1].Quantity)
	assert.Nil(t, rows[1].Price)
	assert.Empty(t, rows[1].Category)

	// la fila sin nombre se entrega; el caso de uso la descarta
	assert.Empty(t, rows[2].Name)
}

func TestParseItems_NumerosIlegiblesSeOmiten(t *testing.T) {
	in := "Name,Quantity,Price\nA,diez,1\nB,7.0,abc\nC,4,1\n"
	rows, skipped, err := csvio.ParseItems(strings.NewReader(in), "utf-8")
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, "C", rows[0].Name)
}

func TestParseItems_Latin1(t *testing.T) {
	utf := "Name,Location\nSensor de presión,Cajón 3\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(utf)
	require.NoError(t, err)

	rows, _, err := csvio.ParseItems(strings.NewReader(encoded), "latin1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sensor de presión", rows[0].Name)
	assert.Equal(t, "Cajón 3", rows[0].Location)
}

func TestParseItems_BOMYErrores(t *testing.T) {
	rows, _, err := csvio.ParseItems(strings.NewReader("\xEF\xBB\xBFName\nLED\n"), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "LED", rows[0].Name)

	_, _, err = csvio.ParseItems(strings.NewReader("Category,Price\nx,1\n"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = csvio.ParseItems(strings.NewReader(""), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = csvio.ParseItems(strings.NewReader("Name\nx\n"), "ebcdic")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWriteShoppingList(t *testing.T) {
	list := &dto.ShoppingListResponse{
		Items: []dto.ShoppingListItem{{
			Name: "Arduino Uno", Category: "Microcontrollers", Quantity: 2, ReorderThreshold: 5, Required: 3,
			Price: decimal.RequireFromString("25.5"), EstimatedCost: decimal.RequireFromString("76.5"),
		}},
		TotalEstimatedCost: decimal.RequireFromString("76.5"),
	}
	var buf bytes.Buffer
	require.NoError(t, csvio.WriteShoppingList(&buf, list))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Category,Quantity,MinStock,Required,Price,EstimatedCost", lines[0])
	assert.Equal(t, "Arduino Uno,Microcontrollers,2,5,3,25.50,76.50", lines[1])
	assert.Equal(t, "TOTAL,,,,,,76.50", lines[2])
}

func TestParseItems_NumerosFueraDeRangoSeOmiten(t *testing.T) {
	in := "Name,Quantity,MinStock,Price\n" +
		"Enorme,99999999999999999999,1,1\n" + // no cabe en int64
		"IntPart,1e20,1,1\n" + // decimal.IntPart desbordaría
		"Int32,2147483648,1,1\n" +
		"Umbral,1,3000000000,1\n" +
		"Caro,1,1,10000000000\n" +
		"Limite,2147483647,0,9999999999.99\n"

	rows, skipped, err := csvio.ParseItems(strings.NewReader(in), "")
	require.NoError(t, err)
	assert.Equal(t, 5, skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, "Limite", rows[0].Name)
	assert.Equal(t, 2147483647, *rows[0].Quantity)
}

func xlsxFile(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseItemsXLSX_PrimeraHoja(t *testing.T) {
	buf := xlsxFile(t, [][]any{
		{"Name", "Category", "Location", "Qty", "Min Stock", "Price"},
		{"Arduino Uno", "Microcontrollers", "A1", 20, 5, 25.5},
		{},
		{"Servo", "Motors", "B2", "muchos", 1, 3},
		{"LED rojo", "", "", 100, "", 0.1},
		{"Relay", "Power", "C1", 1e12, 1, 2},
	})

	rows, skipped, err := csvio.ParseItemsXLSX(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, rows, 2)

	assert.Equal(t, "Arduino Uno", rows[0].Name)
	assert.Equal(t, 20, *rows[0].Quantity)
	assert.Equal(t, 5, *rows[0].ReorderThreshold)
	assert.True(t, rows[0].Price.Equal(decimal.RequireFromString("25.5")))

	assert.Equal(t, "LED rojo", rows[1].Name)
	assert.Nil(t, rows[1].ReorderThreshold)
	assert.True(t, rows[1].Price.Equal(decimal.RequireFromString("0.1")))
}

func TestParseItemsXLSX_Errores(t *testing.T) {
	_, _, err := csvio.ParseItemsXLSX(strings.NewReader("Name\nno es un libro\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = csvio.ParseItemsXLSX(xlsxFile(t, [][]any{{"Category", "Price"}, {"x", 1}}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = csvio.ParseItemsXLSX(xlsxFile(t, nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
