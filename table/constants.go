package table

import (
	"unsafe"

	"minidb/pager"
)

// Fixed row schema: id, username, email. The stored width of a text
// field is its maximum length plus one byte for a trailing NUL.
const (
	IDSize = uint32(unsafe.Sizeof(uint32(0)))

	UsernameMaxLen = 32
	EmailMaxLen    = 255

	usernameFieldWidth = UsernameMaxLen + 1
	emailFieldWidth    = EmailMaxLen + 1

	idOffset       = 0
	usernameOffset = idOffset + IDSize
	emailOffset    = usernameOffset + usernameFieldWidth

	// RowSize is the serialized length of one row.
	RowSize = emailOffset + emailFieldWidth
)

// Common node header layout, identical for leaf and internal pages.
const (
	nodeTypeSize   = 1
	nodeTypeOffset = 0

	isRootSize   = 1
	isRootOffset = nodeTypeOffset + nodeTypeSize

	parentPointerSize   = 4
	parentPointerOffset = isRootOffset + isRootSize

	commonNodeHeaderSize = nodeTypeSize + isRootSize + parentPointerSize

	// CommonNodeHeaderSize is the header shared by every page, leaf or
	// internal, before its type-specific fields.
	CommonNodeHeaderSize = commonNodeHeaderSize
)

// Leaf node header and cell layout.
const (
	leafNodeNumCellsSize   = 4
	leafNodeNumCellsOffset = commonNodeHeaderSize

	leafNodeNextLeafSize   = 4
	leafNodeNextLeafOffset = leafNodeNumCellsOffset + leafNodeNumCellsSize

	LeafNodeHeaderSize = commonNodeHeaderSize + leafNodeNumCellsSize + leafNodeNextLeafSize

	leafNodeKeySize   = 4
	leafNodeKeyOffset = 0
	leafNodeValueSize = RowSize

	LeafNodeCellSize       = leafNodeKeySize + leafNodeValueSize
	LeafNodeSpaceForCells  = pager.PageSize - LeafNodeHeaderSize
	LeafNodeMaxCells       = LeafNodeSpaceForCells / LeafNodeCellSize
	leafNodeRightSplit     = (LeafNodeMaxCells + 1) / 2
	leafNodeLeftSplitCount = (LeafNodeMaxCells + 1) - leafNodeRightSplit
)

// Internal node header and cell layout.
const (
	internalNodeNumKeysSize   = 4
	internalNodeNumKeysOffset = commonNodeHeaderSize

	internalNodeRightChildSize   = 4
	internalNodeRightChildOffset = internalNodeNumKeysOffset + internalNodeNumKeysSize

	internalNodeHeaderSize = commonNodeHeaderSize + internalNodeNumKeysSize + internalNodeRightChildSize

	internalNodeChildSize = 4
	internalNodeKeySize   = 4
	internalNodeCellSize  = internalNodeChildSize + internalNodeKeySize
)
