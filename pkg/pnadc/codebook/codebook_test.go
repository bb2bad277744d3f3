package codebook

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ibgedata/pnadc-go/pkg/pnadc/models"
)

// Test Plan for the codebook extractor:
// - Load() reads a codebook sheet, skipping the banner rows
// - Load() fails with ErrRead for a missing or unreadable file
// - Load() fails with ErrFormat for a sheet with no data rows
// - Load() fails with ErrFormat when the expected columns are absent
// - Widths() drops blank cells and returns positive integers in order
// - Widths() accepts integral float cells ("2.0" style spreadsheet numerics)
// - Widths() fails with a CoercionError for a non-numeric width
// - Names() drops blank cells and returns variable codes in order
// - Widths() and Names() stay aligned for a well-formed codebook
// - Labels() groups category rows under the preceding variable code
// - Labels() drops non-numeric categories, blank descriptions, and the
//   "Não informado" sentinel
// - derived artifacts are cached across calls

// codebookColumns maps the retained fields to their sheet columns:
// A=start position, B=width, C=variable code, E=description,
// F=category code, G=category description (D is unused filler).
var codebookColumns = []string{"A", "B", "C", "D", "E", "F", "G"}

// writeCodebook builds a temp codebook xlsx with the standard three banner
// rows followed by the given data rows. Nil cells are left unset.
func writeCodebook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "Dicionário de variáveis da PNAD Contínua")
	f.SetCellValue(sheet, "A2", "Microdados")
	f.SetCellValue(sheet, "A3", "Posição Inicial")

	for i, row := range rows {
		rowNum := strconv.Itoa(4 + i)
		for j, v := range row {
			if v == nil {
				continue
			}
			f.SetCellValue(sheet, codebookColumns[j]+rowNum, v)
		}
	}

	path := filepath.Join(t.TempDir(), "codebook.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.ErrorIs(t, err, ErrRead)
}

func TestLoad_NoDataRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Dicionário")
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoad_MissingColumns(t *testing.T) {
	path := writeCodebook(t, [][]any{
		{1},
		{5},
	})

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestWidths_DropsBlanksAndCoerces(t *testing.T) {
	path := writeCodebook(t, [][]any{
		{1, 2, "UF", nil, "Unidade da Federação", 11, "Rondônia"},
		{nil, nil, nil, nil, nil, 12, "Acre"},
		{3, 4, "V1008", nil, "Número de seleção do domicílio", nil, nil},
	})

	cb, err := Load(path)
	require.NoError(t, err)

	widths, err := cb.Widths()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, widths)
}

func TestWidths_AcceptsIntegralFloat(t *testing.T) {
	path := writeCodebook(t, [][]any{
		{1, 2.0, "UF", nil, "Unidade da Federação", nil, nil},
	})

	cb, err := Load(path)
	require.NoError(t, err)

	widths, err := cb.Widths()
	require.NoError(t, err)
	assert.Equal(t, []int{2}, widths)
}

func TestWidths_NonNumericFails(t *testing.T) {
	path := writeCodebook(t, [][]any{
		{1, "two", "UF", nil, "Unidade da Federação", nil, nil},
	})

	cb, err := Load(path)
	require.NoError(t, err)

	_, err = cb.Widths()
	var cerr *models.CoercionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "tamanho", cerr.Field)
	assert.Equal(t, "two", cerr.Value)
}

func TestNames_DropsBlanks(t *testing.T) {
	path := writeCodebook(t, [][]any{
		{1, 2, "UF", nil, "Unidade da Federação", 11, "Rondônia"},
		{nil, nil, nil, nil, nil, 12, "Acre"},
		{3, 4, "V1008", nil, "Número de seleção do domicílio", nil, nil},
	})

	cb, err := Load(path)
	require.NoError(t, err)

	names, err := cb.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"UF", "V1008"}, names)
}

func TestWidthsNamesAligned(t *testing.T) {
	path := writeCodebook(t, [][]any{
		{1, 2, "UF", nil, "Unidade da Federação", 11, "Rondônia"},
		{nil, nil, nil, nil, nil, 12, "Acre"},
		{3, 1, "V2007", nil, "Sexo", 1, "Homem"},
		{nil, nil, nil, nil, nil, 2, "Mulher"},
		{4, 3, "V2009", nil, "Idade do morador", nil, nil},
	})

	cb, err := Load(path)
	require.NoError(t, err)

	widths, err := cb.Widths()
	require.NoError(t, err)
	names, err := cb.Names()
	require.NoError(t, err)
	assert.Len(t, widths, len(names))
}

func TestLabels_GroupsUnderPrecedingVariable(t *testing.T) {
	path := writeCodebook(t, [][]any{
		{1, 1, "V2007", nil, "Sexo", 1, "Homem"},
		{nil, nil, nil, nil, nil, 2, "Mulher"},
		{2, 3, "V2009", nil, "Idade do morador", nil, nil},
		{5, 1, "V2010", nil, "Cor ou raça", 1, "Branca"},
		{nil, nil, nil, nil, nil, 2, "Preta"},
	})

	cb, err := Load(path)
	require.NoError(t, err)

	labels, err := cb.Labels()
	require.NoError(t, err)
	assert.Equal(t, map[string]map[float64]string{
		"V2007": {1: "Homem", 2: "Mulher"},
		"V2010": {1: "Branca", 2: "Preta"},
	}, labels)
}

func TestLabels_DropsSentinelAndNonNumeric(t *testing.T) {
	path := writeCodebook(t, [][]any{
		{1, 1, "V2010", nil, "Cor ou raça", 1, "Branca"},
		{nil, nil, nil, nil, nil, 9, "Não informado"},
		{nil, nil, nil, nil, nil, "1 a 9", "Faixa"},
		{nil, nil, nil, nil, nil, 2, nil},
	})

	cb, err := Load(path)
	require.NoError(t, err)

	labels, err := cb.Labels()
	require.NoError(t, err)
	assert.Equal(t, map[string]map[float64]string{
		"V2010": {1: "Branca"},
	}, labels)

	for _, mapping := range labels {
		for _, desc := range mapping {
			assert.NotEqual(t, "Não informado", desc)
		}
	}
}

func TestLabels_SkipsRowsBeforeAnyVariable(t *testing.T) {
	path := writeCodebook(t, [][]any{
		{nil, nil, nil, nil, nil, 1, "Orphan"},
		{1, 1, "V2007", nil, "Sexo", 1, "Homem"},
	})

	cb, err := Load(path)
	require.NoError(t, err)

	labels, err := cb.Labels()
	require.NoError(t, err)
	assert.Equal(t, map[string]map[float64]string{
		"V2007": {1: "Homem"},
	}, labels)
}

func TestDerivedArtifactsCached(t *testing.T) {
	path := writeCodebook(t, [][]any{
		{1, 1, "V2007", nil, "Sexo", 1, "Homem"},
	})

	cb, err := Load(path)
	require.NoError(t, err)

	w1, err := cb.Widths()
	require.NoError(t, err)
	w2, err := cb.Widths()
	require.NoError(t, err)
	assert.Equal(t, w1, w2)

	l1, err := cb.Labels()
	require.NoError(t, err)
	l2, err := cb.Labels()
	require.NoError(t, err)
	assert.Equal(t, l1, l2)
}
