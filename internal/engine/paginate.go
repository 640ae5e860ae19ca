package engine

// Page returns the elements at [index*size, index*size+size), clamped to seq.
// Out-of-range indexes and non-positive sizes yield an empty page.
func Page[T any](seq []T, index, size int) []T {
	// Compare indexes before multiplying: index*size may overflow.
	if size <= 0 || index < 0 || len(seq) == 0 || index > (len(seq)-1)/size {
		return []T{}
	}
	start := index * size
	end := min(start+size, len(seq))
	return seq[start:end:end]
}

// MaxPageIndex is the last valid page index for n items, never below 0.
func MaxPageIndex(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n+size-1)/size - 1
}

// Pager tracks the current page of one list.
// The zero value is not usable; build it with NewPager.
type Pager struct {
	Index int
	Size  int
	Len   int
}

// NewPager returns a pager on page 0.
func NewPager(size int) *Pager {
	return &Pager{Size: size}
}

// Max is the last valid index for the current length.
func (p *Pager) Max() int {
	return MaxPageIndex(p.Len, p.Size)
}

// Next advances one page, staying on the last page.
func (p *Pager) Next() {
	p.Index = min(p.Index+1, p.Max())
}

// Prev goes back one page, staying on the first page.
func (p *Pager) Prev() {
	p.Index = max(p.Index-1, 0)
}

// Reset returns to the first page. Boards call it whenever filters or sort change.
func (p *Pager) Reset() {
	p.Index = 0
}

// Set jumps to index, clamped to the valid range.
func (p *Pager) Set(index int) {
	p.Index = min(max(index, 0), p.Max())
}

// SetLen records a new list length and re-clamps the index.
func (p *Pager) SetLen(n int) {
	p.Len = max(n, 0)
	p.Set(p.Index)
}

// HasNext reports whether Next would move.
func (p *Pager) HasNext() bool {
	return p.Index < p.Max()
}

// HasPrev reports whether Prev would move.
func (p *Pager) HasPrev() bool {
	return p.Index > 0
}

// PageOf slices seq at the pager's current position.
func PageOf[T any](p *Pager, seq []T) []T {
	return Page(seq, p.Index, p.Size)
}
