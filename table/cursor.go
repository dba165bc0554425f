package table

import "minidb/pager"

// Cursor identifies a single cell within a leaf node and supports
// forward iteration across the leaf chain.
type Cursor struct {
	tree       *BTree
	pageNum    uint32
	cellNum    uint32
	endOfTable bool
}

// Value decodes and returns the row the cursor currently points at.
func (c *Cursor) Value() (Row, error) {
	page, err := c.tree.pager.GetPage(c.pageNum)
	if err != nil {
		return Row{}, err
	}
	return DeserializeRow(LeafValue(page, c.cellNum)), nil
}

// Advance moves the cursor to the next cell, following the leaf chain
// when it runs off the end of the current page.
func (c *Cursor) Advance() error {
	page, err := c.tree.pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}
	c.cellNum++
	if c.cellNum >= LeafNumCells(page) {
		next := LeafNextLeaf(page)
		if next == 0 {
			c.endOfTable = true
			return nil
		}
		c.pageNum = next
		c.cellNum = 0
	}
	return nil
}

// EndOfTable reports whether the cursor has advanced past the last row.
func (c *Cursor) EndOfTable() bool {
	return c.endOfTable
}
