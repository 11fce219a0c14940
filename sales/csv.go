package sales

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Supported source encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows-1252"
)

// ParseError reports a cell that could not be converted.
type ParseError struct {
	Column string
	Row    int // 1-based data row, header excluded
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("column %q: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("column %q row %d: value %q: %v", e.Column, e.Row, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrMissingColumn is returned when a mandatory column is absent.
var ErrMissingColumn = errors.New("missing mandatory column")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	Encoding       string         // Source encoding (default: latin1)
	Delimiter      rune           // Field delimiter (default: ',')
	DateStrategies []DateStrategy // Order date strategies, tried in order
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		Encoding:       EncodingLatin1,
		Delimiter:      ',',
		DateStrategies: DefaultDateStrategies(),
	}
}

// ValidEncoding reports whether name is a supported encoding.
func ValidEncoding(name string) bool {
	switch strings.ToLower(name) {
	case EncodingUTF8, "utf8", EncodingLatin1, "iso-8859-1", EncodingWindows1252, "cp1252":
		return true
	}
	return false
}

func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingLatin1, "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", encoding)
}

// normalizeHeader folds a header so "Order Date", "order_date" and
// "OrderDate" compare equal.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimPrefix(h, "\u00ef\u00bb\u00bf") // UTF-8 BOM read as latin1
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	return strings.ReplaceAll(h, "_", "")
}

type columnIndex struct {
	orderDate, sales int

	profit, orderID, category, region, productName int
}

func indexColumns(headers []string) columnIndex {
	idx := columnIndex{-1, -1, -1, -1, -1, -1, -1}
	for i, h := range headers {
		switch normalizeHeader(h) {
		case "orderdate", "date":
			if idx.orderDate == -1 {
				idx.orderDate = i
			}
		case "sales":
			idx.sales = i
		case "profit":
			idx.profit = i
		case "orderid":
			idx.orderID = i
		case "category":
			idx.category = i
		case "region":
			idx.region = i
		case "productname":
			idx.productName = i
		}
	}
	return idx
}

// LoadCSV loads a sales table from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a sales table from an io.Reader. The Order Date
// and Sales columns are mandatory; other columns are optional and recorded
// in the table's column set.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	strategies := opts.DateStrategies
	if len(strategies) == 0 {
		strategies = DefaultDateStrategies()
	}

	decoded, err := decode(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("empty CSV: no header row")
		}
		return nil, err
	}

	idx := indexColumns(headers)
	if idx.orderDate == -1 {
		return nil, fmt.Errorf("%w: Order Date", ErrMissingColumn)
	}
	if idx.sales == -1 {
		return nil, fmt.Errorf("%w: Sales", ErrMissingColumn)
	}

	table := &Table{}
	optional := []struct {
		col Column
		idx int
	}{
		{ColumnProfit, idx.profit},
		{ColumnOrderID, idx.orderID},
		{ColumnCategory, idx.category},
		{ColumnRegion, idx.region},
		{ColumnProductName, idx.productName},
	}
	for _, o := range optional {
		if o.idx >= 0 {
			table.Columns |= o.col
		}
	}

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var dates []string
	for row := 1; ; row++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		salesStr := cell(rec, idx.sales)
		amount, err := strconv.ParseFloat(salesStr, 64)
		if err != nil {
			return nil, &ParseError{Column: "Sales", Row: row, Value: salesStr, Err: err}
		}

		var profit float64
		if s := cell(rec, idx.profit); s != "" {
			profit, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, &ParseError{Column: "Profit", Row: row, Value: s, Err: err}
			}
		}

		dates = append(dates, cell(rec, idx.orderDate))
		table.Records = append(table.Records, Record{
			OrderID:     cell(rec, idx.orderID),
			Sales:       amount,
			Profit:      profit,
			Category:    cell(rec, idx.category),
			Region:      cell(rec, idx.region),
			ProductName: cell(rec, idx.productName),
		})
	}

	if len(dates) == 0 {
		return table, nil
	}

	parsed, _, err := parseDateColumn("Order Date", dates, strategies)
	if err != nil {
		return nil, err
	}
	for i := range table.Records {
		table.Records[i].OrderDate = parsed[i]
	}

	return table, nil
}
