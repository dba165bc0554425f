package table

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"minidb/pager"
)

// NodeType distinguishes a page holding an internal node from one
// holding a leaf node. The numeric values match the on-disk encoding.
type NodeType uint8

const (
	NodeInternal NodeType = 0
	NodeLeaf     NodeType = 1
)

// Common header accessors, shared by leaf and internal pages.

func GetNodeType(p *pager.Page) NodeType {
	return NodeType(p.Data[nodeTypeOffset])
}

func SetNodeType(p *pager.Page, t NodeType) {
	p.Data[nodeTypeOffset] = byte(t)
}

func IsRoot(p *pager.Page) bool {
	return p.Data[isRootOffset] != 0
}

func SetIsRoot(p *pager.Page, isRoot bool) {
	if isRoot {
		p.Data[isRootOffset] = 1
	} else {
		p.Data[isRootOffset] = 0
	}
}

func ParentPointer(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[parentPointerOffset : parentPointerOffset+parentPointerSize])
}

func SetParentPointer(p *pager.Page, pageNum uint32) {
	binary.LittleEndian.PutUint32(p.Data[parentPointerOffset:parentPointerOffset+parentPointerSize], pageNum)
}

// Leaf node accessors.

func LeafNumCells(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[leafNodeNumCellsOffset : leafNodeNumCellsOffset+leafNodeNumCellsSize])
}

func SetLeafNumCells(p *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(p.Data[leafNodeNumCellsOffset:leafNodeNumCellsOffset+leafNodeNumCellsSize], n)
}

func LeafNextLeaf(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[leafNodeNextLeafOffset : leafNodeNextLeafOffset+leafNodeNextLeafSize])
}

func SetLeafNextLeaf(p *pager.Page, pageNum uint32) {
	binary.LittleEndian.PutUint32(p.Data[leafNodeNextLeafOffset:leafNodeNextLeafOffset+leafNodeNextLeafSize], pageNum)
}

// LeafCell returns the raw cell (key followed by serialized row) at
// index i.
func LeafCell(p *pager.Page, i uint32) []byte {
	off := LeafNodeHeaderSize + i*LeafNodeCellSize
	return p.Data[off : off+LeafNodeCellSize]
}

func LeafKey(p *pager.Page, i uint32) uint32 {
	cell := LeafCell(p, i)
	return binary.LittleEndian.Uint32(cell[leafNodeKeyOffset : leafNodeKeyOffset+leafNodeKeySize])
}

func SetLeafKey(p *pager.Page, i uint32, key uint32) {
	cell := LeafCell(p, i)
	binary.LittleEndian.PutUint32(cell[leafNodeKeyOffset:leafNodeKeyOffset+leafNodeKeySize], key)
}

func LeafValue(p *pager.Page, i uint32) []byte {
	cell := LeafCell(p, i)
	return cell[leafNodeKeySize : leafNodeKeySize+leafNodeValueSize]
}

func InitializeLeafNode(p *pager.Page) {
	SetNodeType(p, NodeLeaf)
	SetIsRoot(p, false)
	SetLeafNumCells(p, 0)
	SetLeafNextLeaf(p, 0)
}

// Internal node accessors.

func InternalNumKeys(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[internalNodeNumKeysOffset : internalNodeNumKeysOffset+internalNodeNumKeysSize])
}

func SetInternalNumKeys(p *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(p.Data[internalNodeNumKeysOffset:internalNodeNumKeysOffset+internalNodeNumKeysSize], n)
}

func InternalRightChild(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[internalNodeRightChildOffset : internalNodeRightChildOffset+internalNodeRightChildSize])
}

func SetInternalRightChild(p *pager.Page, pageNum uint32) {
	binary.LittleEndian.PutUint32(p.Data[internalNodeRightChildOffset:internalNodeRightChildOffset+internalNodeRightChildSize], pageNum)
}

func internalCell(p *pager.Page, i uint32) []byte {
	off := internalNodeHeaderSize + i*internalNodeCellSize
	return p.Data[off : off+internalNodeCellSize]
}

// InternalChild returns the page number of child i. Child num_keys is the
// right child; any index beyond that is a programmer error.
func InternalChild(p *pager.Page, i uint32) uint32 {
	numKeys := InternalNumKeys(p)
	if i > numKeys {
		panic(errors.Errorf("table: child index %d out of bounds (num_keys=%d)", i, numKeys))
	}
	if i == numKeys {
		return InternalRightChild(p)
	}
	cell := internalCell(p, i)
	return binary.LittleEndian.Uint32(cell[:internalNodeChildSize])
}

func SetInternalChild(p *pager.Page, i uint32, pageNum uint32) {
	cell := internalCell(p, i)
	binary.LittleEndian.PutUint32(cell[:internalNodeChildSize], pageNum)
}

func InternalKey(p *pager.Page, i uint32) uint32 {
	cell := internalCell(p, i)
	return binary.LittleEndian.Uint32(cell[internalNodeChildSize : internalNodeChildSize+internalNodeKeySize])
}

func SetInternalKey(p *pager.Page, i uint32, key uint32) {
	cell := internalCell(p, i)
	binary.LittleEndian.PutUint32(cell[internalNodeChildSize:internalNodeChildSize+internalNodeKeySize], key)
}

func InitializeInternalNode(p *pager.Page) {
	SetNodeType(p, NodeInternal)
	SetIsRoot(p, false)
	SetInternalNumKeys(p, 0)
}

// NodeMaxKey returns the key of a leaf's last cell, or an internal node's
// last stored key. For an internal node this is not the largest key in its
// subtree: keys under the right child are greater.
func NodeMaxKey(p *pager.Page) uint32 {
	if GetNodeType(p) == NodeLeaf {
		return LeafKey(p, LeafNumCells(p)-1)
	}
	return InternalKey(p, InternalNumKeys(p)-1)
}
