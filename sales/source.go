package sales

import (
	"context"
)

// Source loads a fresh sales table on every call.
type Source interface {
	Load(ctx context.Context) (*Table, error)
}

// CSVSource reads records from a CSV file.
type CSVSource struct {
	Path    string
	Options *CSVOptions
}

// Load reads the file. The context is checked before the file is opened.
func (s *CSVSource) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadCSV(s.Path, s.Options)
}

// TableSource serves an in-memory table, for callers that already hold
// their records.
type TableSource struct {
	Table *Table
}

// Load returns a copy of the table so callers cannot mutate the source.
func (s TableSource) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Table == nil {
		return &Table{}, nil
	}
	records := make([]Record, len(s.Table.Records))
	copy(records, s.Table.Records)
	return &Table{Records: records, Columns: s.Table.Columns}, nil
}
