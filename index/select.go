package index

import (
	"sort"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/parquet-pages/parquet"
)

// SelectPages returns the pages of a column chunk that hold at least one of
// the requested rows. Page i covers rows from locations[i].FirstRowIndex up to
// the first row of the next page, the last page ends at totalRows.
//
// requested may come in any order but must not overlap. The pages are
// returned in file order, each with the full row interval of the page.
func SelectPages(requested []Interval, locations []PageLocation, totalRows uint64) ([]FilteredPage, error) {
	requested = SortIntervals(requested)

	if err := validateIntervals(requested, totalRows); err != nil {
		return nil, err
	}

	if err := validateLocations(locations, totalRows); err != nil {
		return nil, err
	}

	var (
		selected []FilteredPage
		j        int
	)

	for i := range locations {
		start := uint64(locations[i].FirstRowIndex)
		end := totalRows
		if i+1 < len(locations) {
			end = uint64(locations[i+1].FirstRowIndex)
		}

		rows := Interval{Start: start, Length: end - start}

		for j < len(requested) && requested[j].End() <= rows.Start {
			j++
		}

		if j == len(requested) {
			break
		}

		if rows.Length == 0 || requested[j].Start >= rows.End() {
			continue
		}

		location := locations[i]
		selected = append(selected, FilteredPage{
			Location: &location,
			Rows:     rows,
		})
	}

	return selected, nil
}

// SortIntervals returns a copy of intervals sorted by first row.
func SortIntervals(intervals []Interval) []Interval {
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	return sorted
}

// validateIntervals checks intervals sorted by SortIntervals.
func validateIntervals(requested []Interval, totalRows uint64) error {
	for i, r := range requested {
		switch {
		case r.Length == 0:
			return invalidInterval(i, r, "empty interval")
		case r.End() < r.Start || r.End() > totalRows:
			return invalidInterval(i, r, "interval ends past the last row")
		case i > 0 && r.Start < requested[i-1].End():
			return invalidInterval(i, r, "intervals overlap")
		}
	}

	return nil
}

func invalidInterval(i int, r Interval, reason string) error {
	return errors.WithFields(
		errors.WithStack(parquet.ErrInvalidParameter),
		errors.Fields{
			"reason": reason,
			"index":  i,
			"start":  r.Start,
			"length": r.Length,
		})
}

func validateLocations(locations []PageLocation, totalRows uint64) error {
	for i, l := range locations {
		if l.FirstRowIndex < 0 || l.Offset < 0 || l.CompressedPageSize < 0 {
			return invalidLocation(i, l, "negative page location")
		}

		if i == 0 {
			continue
		}

		prev := locations[i-1]
		if l.Offset <= prev.Offset || l.FirstRowIndex <= prev.FirstRowIndex {
			return invalidLocation(i, l, "page locations are not strictly increasing")
		}
	}

	if n := len(locations); n > 0 && totalRows < uint64(locations[n-1].FirstRowIndex) {
		return errors.WithFields(
			errors.WithStack(parquet.ErrInvalidParameter),
			errors.Fields{
				"reason":          "total number of rows is lower than the first row of the last page",
				"total-rows":      totalRows,
				"first-row-index": locations[n-1].FirstRowIndex,
			})
	}

	return nil
}

func invalidLocation(i int, l PageLocation, reason string) error {
	return errors.WithFields(
		errors.WithStack(parquet.ErrInvalidParameter),
		errors.Fields{
			"reason":          reason,
			"index":           i,
			"offset":          l.Offset,
			"first-row-index": l.FirstRowIndex,
		})
}
