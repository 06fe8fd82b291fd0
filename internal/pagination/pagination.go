// Package pagination walks page-numbered REST collections as a single lazy
// sequence of records.
package pagination

// FetchFunc fetches one page of records. Pages are one-based. An empty page
// signals the end of the collection.
type FetchFunc[T any] func(page int) ([]T, error)

// Enumerator produces the records of a paginated collection one at a time,
// in page order, fetching the next page only once the previous one has been
// fully consumed. It is single-use: construct a new Enumerator to walk the
// collection again from the start.
type Enumerator[T any] struct {
	fetch FetchFunc[T]
	page  int
	buf   []T
	done  bool
}

// New creates an enumerator starting at page 1.
func New[T any](fetch FetchFunc[T]) *Enumerator[T] {
	return &Enumerator[T]{fetch: fetch, page: 1}
}

// Next returns the next record. The boolean is false once the collection is
// exhausted; the terminating empty page is not itself emitted and no further
// pages are fetched after it. A fetch error ends the sequence and is returned
// as-is; records already produced stay produced.
func (e *Enumerator[T]) Next() (T, bool, error) {
	var zero T
	if e.done {
		return zero, false, nil
	}
	if len(e.buf) == 0 {
		records, err := e.fetch(e.page)
		if err != nil {
			e.done = true
			return zero, false, err
		}
		if len(records) == 0 {
			e.done = true
			return zero, false, nil
		}
		e.buf = records
		e.page++
	}
	record := e.buf[0]
	e.buf = e.buf[1:]
	return record, true, nil
}

// ForEach consumes the remaining records, stopping at the first fetch or
// callback error.
func (e *Enumerator[T]) ForEach(fn func(record T) error) error {
	for {
		record, ok, err := e.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(record); err != nil {
			return err
		}
	}
}
