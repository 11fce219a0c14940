// Package sales holds retail transaction records, their loaders and the
// monthly aggregation that feeds the forecaster.
package sales

import (
	"time"
)

// Record is one order line. Records are treated as immutable once loaded.
type Record struct {
	OrderID     string
	OrderDate   time.Time
	Sales       float64
	Profit      float64
	Category    string
	Region      string
	ProductName string
}

// Column identifies an optional record column.
type Column uint8

const (
	ColumnProfit Column = 1 << iota
	ColumnOrderID
	ColumnCategory
	ColumnRegion
	ColumnProductName
)

// AllColumns is the set with every optional column present.
const AllColumns = ColumnProfit | ColumnOrderID | ColumnCategory | ColumnRegion | ColumnProductName

func (c Column) String() string {
	switch c {
	case ColumnProfit:
		return "Profit"
	case ColumnOrderID:
		return "Order ID"
	case ColumnCategory:
		return "Category"
	case ColumnRegion:
		return "Region"
	case ColumnProductName:
		return "Product Name"
	}
	return "unknown"
}

// Has reports whether every column in c is present in the set.
func (c Column) Has(col Column) bool {
	return c&col == col
}

// Table is a loaded record set together with the optional columns that were
// present in its source. OrderDate and Sales are always present.
type Table struct {
	Records []Record
	Columns Column
}

// NewTable wraps records that carry every column.
func NewTable(records []Record) *Table {
	return &Table{Records: records, Columns: AllColumns}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
