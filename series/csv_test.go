package series

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date,Temperature,Voltage
03/01/2020,10.5,3.30
03/02/2020,11.0,3.28
03/03/2020,,3.25
03/04/2020,13.5,3.31
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV), ReadOptions{
		TimeLayout: "01/02/2006",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, tbl.NumRows())
	assert.Equal(t, []string{"Temperature", "Voltage"}, tbl.Names())
	assert.Equal(t, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), tbl.Times[0])

	temp, err := tbl.Col("Temperature")
	require.NoError(t, err)
	assert.Equal(t, 10.5, temp[0])
	assert.True(t, IsNull(temp[2]), "empty cell should load as null")
}

func TestReadCSVFieldSubset(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV), ReadOptions{
		TimeLayout: "01/02/2006",
		Fields:     []string{"Voltage"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Voltage"}, tbl.Names())
}

func TestReadCSVUnknownField(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(sampleCSV), ReadOptions{
		TimeLayout: "01/02/2006",
		Fields:     []string{"Current"},
	})
	assert.ErrorIs(t, err, ErrNoColumn)
}

func TestReadCSVBadTimestamp(t *testing.T) {
	in := "Date,Temperature\nnot-a-date,1.0\n"
	_, err := ReadCSV(strings.NewReader(in), ReadOptions{TimeLayout: "01/02/2006"})
	assert.ErrorIs(t, err, ErrBadTimestamp)
}

func TestReadCSVBadNumber(t *testing.T) {
	in := "Date,Temperature\n03/01/2020,abc\n"
	_, err := ReadCSV(strings.NewReader(in), ReadOptions{TimeLayout: "01/02/2006"})
	assert.ErrorIs(t, err, ErrBadNumber)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), ReadOptions{TimeLayout: "01/02/2006"})
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ReadCSV(strings.NewReader("Date,Temperature\n"), ReadOptions{TimeLayout: "01/02/2006"})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReadCSVMissingTimeColumn(t *testing.T) {
	in := "When,Temperature\n03/01/2020,1.0\n"
	_, err := ReadCSV(strings.NewReader(in), ReadOptions{TimeLayout: "01/02/2006"})
	assert.ErrorIs(t, err, ErrNoColumn)
}

func TestReadCSVSortsByTime(t *testing.T) {
	in := `Date,Temperature
03/03/2020,3
03/01/2020,1
03/02/2020,2
`
	tbl, err := ReadCSV(strings.NewReader(in), ReadOptions{TimeLayout: "01/02/2006"})
	require.NoError(t, err)

	temp, err := tbl.Col("Temperature")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, temp)
}

func TestWriteReadRoundTrip(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV), ReadOptions{TimeLayout: "01/02/2006"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl, "01/02/2006"))

	back, err := ReadCSV(&buf, ReadOptions{TimeLayout: "01/02/2006"})
	require.NoError(t, err)

	assert.Equal(t, tbl.Times, back.Times)
	assert.Equal(t, tbl.Names(), back.Names())

	temp, err := back.Col("Temperature")
	require.NoError(t, err)
	assert.True(t, IsNull(temp[2]), "null survives the round trip as an empty cell")
}
