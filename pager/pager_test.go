package pager

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenEmptyFile(t *testing.T) {
	tmp, err := os.CreateTemp("", "pager_test_empty_*.db")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.NumPages() != 0 {
		t.Errorf("NumPages = %d; want 0", p.NumPages())
	}
}

func TestOpenRejectsCorruptLength(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.db")

	if err := os.WriteFile(path, make([]byte, 100), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("expected error opening a file whose length is not a multiple of PageSize")
	}
}

func TestGetPageOutOfBounds(t *testing.T) {
	tmp, err := os.CreateTemp("", "pager_test_oob_*.db")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if _, err := p.GetPage(TableMaxPages + 1); err == nil {
		t.Errorf("expected error on GetPage beyond TableMaxPages")
	}
}

func TestGetPageAllocatesAndGrowsNumPages(t *testing.T) {
	tmp, err := os.CreateTemp("", "pager_test_grow_*.db")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	page, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if p.NumPages() != 1 {
		t.Errorf("NumPages = %d; want 1", p.NumPages())
	}

	page.Data[0] = 0xAB
	page.Data[PageSize-1] = 0xCD

	again, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if again != page {
		t.Errorf("GetPage returned a different buffer for the same page number")
	}
}

func TestFlushAndReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flush.db")

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	page, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	page.Data[0] = 0x42
	page.Data[PageSize-1] = 0x24

	if err := p.Flush(0); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != PageSize {
		t.Fatalf("file size = %d; want %d", info.Size(), PageSize)
	}

	p2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer p2.Close()
	if p2.NumPages() != 1 {
		t.Fatalf("reopened NumPages = %d; want 1", p2.NumPages())
	}
	reread, err := p2.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage after reopen: %v", err)
	}
	if reread.Data[0] != 0x42 || reread.Data[PageSize-1] != 0x24 {
		t.Fatalf("reread page contents mismatch: first=0x%X last=0x%X", reread.Data[0], reread.Data[PageSize-1])
	}
}

func TestFlushAbsentPageFails(t *testing.T) {
	tmp, err := os.CreateTemp("", "pager_test_flushabsent_*.db")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if err := p.Flush(5); err == nil {
		t.Error("expected error flushing an absent page")
	}
}

func TestPageBeyondFileIsZeroFilled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.db")

	buf := make([]byte, PageSize)
	for i := range buf {
		buf[i] = 0xAA
	}
	if err := os.WriteFile(path, buf, 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.NumPages() != 1 {
		t.Fatalf("NumPages = %d; want 1", p.NumPages())
	}

	// Requesting a page past the on-disk count should come back zeroed,
	// not read from the file.
	newPage, err := p.GetPage(1)
	if err != nil {
		t.Fatalf("GetPage(1): %v", err)
	}
	for i, b := range newPage.Data {
		if b != 0 {
			t.Fatalf("byte %d of fresh page = 0x%X; want 0", i, b)
		}
	}
}
