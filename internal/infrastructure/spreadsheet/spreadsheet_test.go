package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Run("headers are case-insensitive and BOM is stripped", func(t *testing.T) {
		in := "\xEF\xBB\xBFProduct Name, PRICE ,Size\nCarrara,45.5,600x600\n,,\nTravertine, 60 ,\n"
		tbl, err := ReadCSV(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, []string{"Product Name", "PRICE", "Size"}, tbl.Headers)
		require.Len(t, tbl.Rows, 2)
		assert.Equal(t, "Carrara", tbl.Rows[0].Get("product name"))
		assert.Equal(t, "45.5", tbl.Rows[0].Get("Price"))
		assert.Equal(t, "60", tbl.Rows[1].Get("price"))
		assert.Equal(t, 4, tbl.Rows[1].LineNumber)
		assert.True(t, tbl.HasHeader("size"))
		assert.False(t, tbl.HasHeader("texture"))
	})

	t.Run("short rows are padded", func(t *testing.T) {
		tbl, err := ReadCSV(strings.NewReader("a,b,c\n1\n"))
		require.NoError(t, err)
		assert.Equal(t, "", tbl.Rows[0].Get("c"))
	})

	t.Run("empty and invalid", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)

		_, err = ReadCSV(bytes.NewReader([]byte{0xff, 0xfe, 'a'}))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	headers := []string{"Product Name", "Price"}
	require.NoError(t, WriteXLSX(&buf, "Products", headers, [][]string{{"Carrara", "45.5"}, {"Slate", "30"}}))

	tbl, err := ReadXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, headers, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Slate", tbl.Rows[1].Get("product name"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []string{"name", "price"}, [][]string{{"A, B", "1"}}))
	assert.Equal(t, "name,price\n\"A, B\",1\n", buf.String())
}

func TestFormat(t *testing.T) {
	f, err := FormatOf("Products.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = FormatOf("products.xls")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
}

func TestErrorCollection(t *testing.T) {
	ec := NewErrorCollection(1)
	ec.AddRequired(2, "Product Name")
	ec.AddInvalid(3, "Price", "a number", "abc")
	assert.Len(t, ec.Errors(), 1)
	assert.Equal(t, 2, ec.TotalCount())
	assert.Equal(t, "row 2, column 'Product Name': field 'Product Name' is required", ec.Errors()[0].Error())
}
