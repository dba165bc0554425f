// Package pager owns the on-disk page cache for the database file.
//
// Pages are fixed-size 4096-byte blocks addressed by a zero-based page
// number. The pager materializes pages on demand, never evicts them, and
// writes them back only when explicitly flushed.
package pager

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	// PageSize is the fixed size, in bytes, of every page on disk and in
	// the cache.
	PageSize = 4096
	// TableMaxPages bounds the address space of the pager.
	TableMaxPages = 100
)

// Page is one fixed-size buffer, either resident only in memory (not yet
// flushed) or mirroring a block of the backing file.
type Page struct {
	Data [PageSize]byte
}

// Pager mediates all reads and writes to the database file and caches
// page buffers across the lifetime of an open database.
type Pager struct {
	file     *os.File
	fileLen  int64
	numPages uint32
	pages    [TableMaxPages]*Page
}

// Open opens (creating if necessary) the database file at path and
// prepares the page cache. It fails if the file length is not a whole
// multiple of PageSize.
func Open(path string) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, errors.Wrap(err, "pager: open")
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "pager: stat")
	}
	size := fi.Size()
	if size%PageSize != 0 {
		f.Close()
		return nil, errors.Errorf("pager: db file is not a whole number of pages (length %d)", size)
	}
	return &Pager{
		file:     f,
		fileLen:  size,
		numPages: uint32(size / PageSize),
	}, nil
}

// NumPages reports how many pages the pager currently knows about,
// including pages allocated but not yet flushed to disk.
func (p *Pager) NumPages() uint32 {
	return p.numPages
}

// GetPage returns the in-memory buffer for page n, materializing it on
// first access. Pages beyond the on-disk page count come back zeroed.
func (p *Pager) GetPage(n uint32) (*Page, error) {
	if n > TableMaxPages {
		return nil, errors.Errorf("pager: page number %d out of bounds (max %d)", n, TableMaxPages)
	}
	if p.pages[n] == nil {
		page := &Page{}
		if n < p.numPages {
			if err := p.readPage(n, page); err != nil {
				return nil, errors.Wrapf(err, "pager: read page %d", n)
			}
		}
		p.pages[n] = page
		if n+1 > p.numPages {
			p.numPages = n + 1
		}
	}
	return p.pages[n], nil
}

func (p *Pager) readPage(n uint32, page *Page) error {
	off := int64(n) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return errors.Wrapf(err, "seek to page %d", n)
	}
	if _, err := io.ReadFull(p.file, page.Data[:]); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return errors.Wrapf(err, "read page %d", n)
	}
	return nil
}

// Flush writes the full PageSize bytes of slot n back to the file.
func (p *Pager) Flush(n uint32) error {
	page := p.pages[n]
	if page == nil {
		return errors.Errorf("pager: tried to flush absent page %d", n)
	}
	off := int64(n) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return errors.Wrapf(err, "pager: seek to flush page %d", n)
	}
	if _, err := p.file.Write(page.Data[:]); err != nil {
		return errors.Wrapf(err, "pager: write page %d", n)
	}
	return nil
}

// Close flushes every resident page, releases the cache, and closes the
// underlying file.
func (p *Pager) Close() error {
	for i := uint32(0); i < p.numPages; i++ {
		if p.pages[i] == nil {
			continue
		}
		if err := p.Flush(i); err != nil {
			return err
		}
		p.pages[i] = nil
	}
	if err := p.file.Close(); err != nil {
		return errors.Wrap(err, "pager: close")
	}
	return nil
}
