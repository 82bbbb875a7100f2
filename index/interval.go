package index

// Interval is a range of rows: [Start, Start+Length).
type Interval struct {
	Start  uint64
	Length uint64
}

// NewInterval creates an interval.
func NewInterval(start, length uint64) Interval {
	return Interval{Start: start, Length: length}
}

// End returns the first row after the interval.
func (i Interval) End() uint64 {
	return i.Start + i.Length
}

// Intersect returns the rows common to both intervals. ok is false when the
// intersection is empty.
func (i Interval) Intersect(other Interval) (Interval, bool) {
	start := i.Start
	if other.Start > start {
		start = other.Start
	}

	end := i.End()
	if other.End() < end {
		end = other.End()
	}

	if start >= end {
		return Interval{}, false
	}

	return Interval{Start: start, Length: end - start}, true
}

// PageLocation is the position of a data page in a file.
type PageLocation struct {
	// Offset of the page header in the file.
	Offset int64
	// CompressedPageSize is the size of the page, header included.
	CompressedPageSize int32
	// FirstRowIndex is the index of the first row of the page in its row group.
	FirstRowIndex int64
}

// FilteredPage is a page selected for reading.
type FilteredPage struct {
	// Location is the page position. It is never nil for pages returned by
	// SelectPages.
	Location *PageLocation
	// Rows are all the rows of the page.
	Rows Interval
}

// Clip returns the parts of requested that fall inside the page, in order.
func (p FilteredPage) Clip(requested []Interval) []Interval {
	var res []Interval

	for _, r := range requested {
		if in, ok := p.Rows.Intersect(r); ok {
			res = append(res, in)
		}
	}

	return res
}
