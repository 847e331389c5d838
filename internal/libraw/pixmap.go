package libraw

import (
	"fmt"
	"runtime"
	"syscall"
)

// Sample is the set of raw sample shapes a Pixmap can hold.
type Sample interface {
	RawPixel | Color3Pixel | Color4Pixel
}

// Pixmap is a read-only, row-major view over cols*rows samples owned by an
// Image. It does not own the memory it reads.
type Pixmap[T Sample] struct {
	samples []T
	cols    int
	rows    int
	lease   *lease
	gen     uint64

	// owner keeps the Image reachable so its finalizer cannot free samples
	// while the view is in use. Nil for caller-owned samples.
	owner *Image
}

// NewPixmap wraps caller-owned samples in a view. The view never goes stale;
// the caller keeps samples alive and unchanged while it is in use.
func NewPixmap[T Sample](samples []T, cols, rows int) (*Pixmap[T], error) {
	if cols < 0 || rows < 0 || len(samples) != cols*rows {
		return nil, newOSErrorf(syscall.EINVAL, "%d samples cannot form a %dx%d pixmap", len(samples), cols, rows)
	}
	return newPixmap(samples, cols, rows, &lease{}, nil), nil
}

// newPixmap builds a view over samples, which must hold exactly cols*rows
// elements that stay valid while l reports the current generation. owner is
// the Image the samples belong to, if any.
func newPixmap[T Sample](samples []T, cols, rows int, l *lease, owner *Image) *Pixmap[T] {
	if len(samples) != cols*rows {
		panic(fmt.Sprintf("libraw: pixmap of %dx%d over %d samples", cols, rows, len(samples)))
	}
	return &Pixmap[T]{
		samples: samples,
		cols:    cols,
		rows:    rows,
		lease:   l,
		gen:     l.current(),
		owner:   owner,
	}
}

// Cols returns the number of columns.
func (p *Pixmap[T]) Cols() int {
	return p.cols
}

// Rows returns the number of rows.
func (p *Pixmap[T]) Rows() int {
	return p.rows
}

// Len returns the number of samples, always Cols()*Rows().
func (p *Pixmap[T]) Len() int {
	return len(p.samples)
}

// Valid reports whether the view can still be read.
func (p *Pixmap[T]) Valid() error {
	return p.lease.check(p.gen)
}

// At returns a copy of the sample at (row, col).
func (p *Pixmap[T]) At(row, col int) (T, error) {
	var zero T
	if err := p.Valid(); err != nil {
		return zero, err
	}
	if row < 0 || row >= p.rows || col < 0 || col >= p.cols {
		return zero, newOSErrorf(syscall.EINVAL, "pixel (%d,%d) outside %dx%d pixmap", row, col, p.rows, p.cols)
	}
	v := p.samples[row*p.cols+col]
	runtime.KeepAlive(p.owner)
	return v, nil
}

// Pixels returns a cursor positioned before the first sample. Each call
// starts a new pass from offset zero.
func (p *Pixmap[T]) Pixels() *Pixels[T] {
	return &Pixels[T]{pixmap: p, err: p.Valid()}
}

// Pixels walks a Pixmap in row-major order.
//
//	px := pm.Pixels()
//	for px.Next() {
//	    pixel := px.Pixel()
//	    ...
//	}
//	if err := px.Err(); err != nil {
//	    ...
//	}
type Pixels[T Sample] struct {
	pixmap *Pixmap[T]
	next   int
	cur    Pixel[T]
	err    error
}

// Next advances to the next sample. It returns false when the pass is done or
// the underlying Image has been unpacked again or closed; Err tells the two
// apart.
func (it *Pixels[T]) Next() bool {
	if it.err != nil || it.next >= len(it.pixmap.samples) {
		return false
	}
	if err := it.pixmap.Valid(); err != nil {
		it.err = err
		return false
	}

	it.cur = Pixel[T]{
		index: it.next,
		cols:  it.pixmap.cols,
		value: it.pixmap.samples[it.next],
	}
	runtime.KeepAlive(it.pixmap.owner)
	it.next++
	return true
}

// Pixel returns the sample the last successful Next stopped on.
func (it *Pixels[T]) Pixel() Pixel[T] {
	return it.cur
}

// Remaining returns the number of samples not yet yielded.
func (it *Pixels[T]) Remaining() int {
	return len(it.pixmap.samples) - it.next
}

// Err returns ErrStaleView if the pass stopped because the view went stale.
func (it *Pixels[T]) Err() error {
	return it.err
}

// Pixel is one sample and its position. The value is a copy.
type Pixel[T Sample] struct {
	index int
	cols  int
	value T
}

// Index returns the linear row-major offset of the sample.
func (p Pixel[T]) Index() int {
	return p.index
}

// Row returns the row of the sample.
func (p Pixel[T]) Row() int {
	return p.index / p.cols
}

// Col returns the column of the sample.
func (p Pixel[T]) Col() int {
	return p.index % p.cols
}

// Value returns the sample.
func (p Pixel[T]) Value() T {
	return p.value
}
