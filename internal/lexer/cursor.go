package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"zigscope/internal/source"
)

// cursor walks the bytes of one file. Reads at or past end yield 0.
type cursor struct {
	src  []byte
	file source.FileID
	off  uint32
	end  uint32
}

func newCursor(f *source.File) cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return cursor{src: f.Content, file: f.ID, end: end}
}

func (c *cursor) EOF() bool { return c.off >= c.end }

// PeekAt reads the byte n positions ahead.
func (c *cursor) PeekAt(n uint32) byte {
	if i := c.off + n; i < c.end {
		return c.src[i]
	}
	return 0
}

func (c *cursor) Peek() byte { return c.PeekAt(0) }

// rest is the unread input.
func (c *cursor) rest() []byte { return c.src[c.off:c.end] }

func (c *cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.off++
	}
	return b
}

func (c *cursor) BumpN(n uint32) {
	c.off = min(c.off+n, c.end)
}

// Eat consumes s when the input continues with it.
func (c *cursor) Eat(s string) bool {
	rest := c.rest()
	if len(rest) < len(s) || string(rest[:len(s)]) != s {
		return false
	}
	c.off += uint32(len(s)) // #nosec G115 -- s is a short literal
	return true
}

// Mark is a saved offset; SpanFrom turns it into the span read since.
type Mark uint32

func (c *cursor) Mark() Mark { return Mark(c.off) }

func (c *cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.off}
}
