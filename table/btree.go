package table

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"

	"minidb/pager"
)

// ErrDuplicateKey is returned by Insert when the key already exists.
var ErrDuplicateKey = errors.New("table: duplicate key")

// BTree is a B+-tree stored across the pages of a pager. The root is
// always page 0.
type BTree struct {
	pager *pager.Pager
}

const rootPageNum = 0

// NewBTree wraps an already-initialized pager. Callers are responsible
// for making sure page 0 holds a valid root node before using the tree;
// Open does this for brand-new files.
func NewBTree(p *pager.Pager) *BTree {
	return &BTree{pager: p}
}

// Start returns a cursor positioned at the first row in key order.
func (t *BTree) Start() (*Cursor, error) {
	c, err := t.find(0)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// find locates key and returns a cursor pointing at it, or at the
// position it would occupy if present.
func (t *BTree) find(key uint32) (*Cursor, error) {
	return t.findFrom(rootPageNum, key)
}

func (t *BTree) findFrom(pageNum uint32, key uint32) (*Cursor, error) {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	if GetNodeType(page) == NodeLeaf {
		return t.leafFind(pageNum, page, key)
	}
	childIndex := internalChildIndexFor(page, key)
	childPageNum := InternalChild(page, childIndex)
	return t.findFrom(childPageNum, key)
}

// leafFind binary-searches the cells of a leaf page for key, returning
// a cursor at the matching cell or at the first cell greater than key.
func (t *BTree) leafFind(pageNum uint32, page *pager.Page, key uint32) (*Cursor, error) {
	numCells := LeafNumCells(page)
	idx := sort.Search(int(numCells), func(i int) bool {
		return LeafKey(page, uint32(i)) >= key
	})
	return &Cursor{
		tree:       t,
		pageNum:    pageNum,
		cellNum:    uint32(idx),
		endOfTable: numCells == 0,
	}, nil
}

// internalChildIndexFor binary-searches an internal node's keys for the
// child that must contain key.
func internalChildIndexFor(page *pager.Page, key uint32) uint32 {
	numKeys := InternalNumKeys(page)
	idx := sort.Search(int(numKeys), func(i int) bool {
		return InternalKey(page, uint32(i)) >= key
	})
	return uint32(idx)
}

// Insert adds key/row to the tree. It returns ErrDuplicateKey without
// modifying the tree if key is already present.
func (t *BTree) Insert(key uint32, row Row) error {
	cursor, err := t.find(key)
	if err != nil {
		return err
	}

	page, err := t.pager.GetPage(cursor.pageNum)
	if err != nil {
		return err
	}
	numCells := LeafNumCells(page)

	if cursor.cellNum < numCells && LeafKey(page, cursor.cellNum) == key {
		return ErrDuplicateKey
	}

	if numCells >= LeafNodeMaxCells {
		return t.leafNodeSplitAndInsert(cursor, key, row)
	}
	return t.leafNodeInsert(cursor, key, row)
}

func (t *BTree) leafNodeInsert(cursor *Cursor, key uint32, row Row) error {
	page, err := t.pager.GetPage(cursor.pageNum)
	if err != nil {
		return err
	}
	numCells := LeafNumCells(page)
	for i := numCells; i > cursor.cellNum; i-- {
		copy(LeafCell(page, i), LeafCell(page, i-1))
	}
	SetLeafNumCells(page, numCells+1)
	SetLeafKey(page, cursor.cellNum, key)
	SerializeRow(row, LeafValue(page, cursor.cellNum))
	return nil
}

// leafNodeSplitAndInsert splits a full leaf into two, inserting key/row
// in its sorted position across the pair. Cells are redistributed by
// walking the combined index range LeafNodeMaxCells down to 0: each
// index at or above the left split count goes to the new (right) leaf,
// the rest stay in place in the old (left) leaf. Because the scan runs
// strictly downward, nothing is overwritten before it is read.
func (t *BTree) leafNodeSplitAndInsert(cursor *Cursor, key uint32, row Row) error {
	oldPage, err := t.pager.GetPage(cursor.pageNum)
	if err != nil {
		return err
	}

	newPageNum := t.pager.NumPages()
	newPage, err := t.pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	InitializeLeafNode(newPage)
	SetParentPointer(newPage, ParentPointer(oldPage))
	SetLeafNextLeaf(newPage, LeafNextLeaf(oldPage))
	SetLeafNextLeaf(oldPage, newPageNum)

	for i := int32(LeafNodeMaxCells); i >= 0; i-- {
		var dest *pager.Page
		var destIndex uint32
		if uint32(i) >= leafNodeLeftSplitCount {
			dest = newPage
			destIndex = uint32(i) - leafNodeLeftSplitCount
		} else {
			dest = oldPage
			destIndex = uint32(i)
		}

		switch {
		case uint32(i) == cursor.cellNum:
			SetLeafKey(dest, destIndex, key)
			SerializeRow(row, LeafValue(dest, destIndex))
		case uint32(i) > cursor.cellNum:
			copy(LeafCell(dest, destIndex), LeafCell(oldPage, uint32(i)-1))
		default:
			copy(LeafCell(dest, destIndex), LeafCell(oldPage, uint32(i)))
		}
	}

	SetLeafNumCells(oldPage, leafNodeLeftSplitCount)
	SetLeafNumCells(newPage, LeafNodeMaxCells+1-leafNodeLeftSplitCount)

	if IsRoot(oldPage) {
		return t.createNewRoot(newPageNum)
	}
	return errors.New("Need to implement updating parent after split")
}

// createNewRoot turns the current root (now holding the left half of the
// split leaf) into an internal node with two children: a freshly allocated
// left leaf holding what used to be the root's contents, and the
// already-split-off right leaf at rightChildPageNum.
func (t *BTree) createNewRoot(rightChildPageNum uint32) error {
	root, err := t.pager.GetPage(rootPageNum)
	if err != nil {
		return err
	}
	rightChild, err := t.pager.GetPage(rightChildPageNum)
	if err != nil {
		return err
	}

	leftChildPageNum := t.pager.NumPages()
	leftChild, err := t.pager.GetPage(leftChildPageNum)
	if err != nil {
		return err
	}
	leftChild.Data = root.Data
	SetIsRoot(leftChild, false)

	InitializeInternalNode(root)
	SetIsRoot(root, true)
	SetInternalNumKeys(root, 1)
	SetInternalChild(root, 0, leftChildPageNum)
	SetInternalKey(root, 0, NodeMaxKey(leftChild))
	SetInternalRightChild(root, rightChildPageNum)

	SetParentPointer(leftChild, rootPageNum)
	SetParentPointer(rightChild, rootPageNum)
	return nil
}

// PrintTree writes a nested, indented outline of the subtree rooted at
// pageNum, in the format the .btree meta-command displays.
func (t *BTree) PrintTree(w io.Writer, pageNum uint32, indentLevel int) error {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return err
	}

	switch GetNodeType(page) {
	case NodeLeaf:
		numCells := LeafNumCells(page)
		indent(w, indentLevel)
		fmt.Fprintf(w, "- leaf (size %d)\n", numCells)
		for i := uint32(0); i < numCells; i++ {
			indent(w, indentLevel+1)
			fmt.Fprintf(w, "- %d\n", LeafKey(page, i))
		}
	case NodeInternal:
		numKeys := InternalNumKeys(page)
		indent(w, indentLevel)
		fmt.Fprintf(w, "- internal (size %d)\n", numKeys)
		for i := uint32(0); i < numKeys; i++ {
			child := InternalChild(page, i)
			if err := t.PrintTree(w, child, indentLevel+1); err != nil {
				return err
			}
			indent(w, indentLevel+1)
			fmt.Fprintf(w, "- key %d\n", InternalKey(page, i))
		}
		if err := t.PrintTree(w, InternalRightChild(page), indentLevel+1); err != nil {
			return err
		}
	}
	return nil
}

func indent(w io.Writer, level int) {
	for i := 0; i < level; i++ {
		fmt.Fprint(w, "  ")
	}
}
