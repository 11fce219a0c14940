package sales

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// All disables a filter criterion.
const All = "All"

// Filter selects records by exact region, category and order year.
// Empty fields behave like All.
type Filter struct {
	Region   string
	Category string
	Year     string
}

func isAll(v string) bool {
	return v == "" || v == All
}

// year parses the Year criterion. ok is false when the criterion is disabled.
func (f Filter) year() (year int, ok bool, err error) {
	if isAll(f.Year) {
		return 0, false, nil
	}
	year, err = strconv.Atoi(strings.TrimSpace(f.Year))
	if err != nil {
		return 0, false, fmt.Errorf("invalid year filter %q: must be %q or an integer", f.Year, All)
	}
	return year, true, nil
}

// Validate checks that the filter criteria are well formed.
func (f Filter) Validate() error {
	_, _, err := f.year()
	return err
}

// Match reports whether r satisfies every enabled criterion.
func (f Filter) Match(r *Record) bool {
	if !isAll(f.Region) && r.Region != f.Region {
		return false
	}
	if !isAll(f.Category) && r.Category != f.Category {
		return false
	}
	if year, ok, err := f.year(); err != nil || (ok && r.OrderDate.Year() != year) {
		return false
	}
	return true
}

// Apply returns a new table holding copies of the matching records.
// The input table is not modified.
func (f Filter) Apply(t *Table) (*Table, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	out := &Table{Columns: t.Columns}
	for i := range t.Records {
		if f.Match(&t.Records[i]) {
			out.Records = append(out.Records, t.Records[i])
		}
	}
	return out, nil
}

// Options lists the distinct values available for filtering.
type Options struct {
	Regions    []string `json:"regions"`
	Categories []string `json:"categories"`
	Years      []int    `json:"years"`
}

// FilterOptions collects the sorted distinct regions, categories and years.
// Columns absent from the table yield empty lists.
func FilterOptions(t *Table) Options {
	regions := map[string]struct{}{}
	categories := map[string]struct{}{}
	years := map[int]struct{}{}

	for i := range t.Records {
		r := &t.Records[i]
		if t.Columns.Has(ColumnRegion) {
			regions[r.Region] = struct{}{}
		}
		if t.Columns.Has(ColumnCategory) {
			categories[r.Category] = struct{}{}
		}
		years[r.OrderDate.Year()] = struct{}{}
	}

	opts := Options{
		Regions:    sortedKeys(regions),
		Categories: sortedKeys(categories),
		Years:      make([]int, 0, len(years)),
	}
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	sort.Ints(opts.Years)
	return opts
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
