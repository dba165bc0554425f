package main

import (
	"fmt"
	"os"

	"minidb/table"
)

type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandUnrecognizedCommand
)

func doMetaCommand(input string, db *table.Database) MetaCommandResult {
	switch input {
	case ".exit":
		if err := db.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	case ".btree":
		fmt.Println("Tree:")
		if err := db.Tree.PrintTree(os.Stdout, 0, 0); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case ".constants":
		fmt.Println("Constants:")
		printConstants()
	default:
		return MetaCommandUnrecognizedCommand
	}
	return MetaCommandSuccess
}

func printConstants() {
	fmt.Printf("ROW_SIZE: %d\n", table.RowSize)
	fmt.Printf("COMMON_NODE_HEADER_SIZE: %d\n", table.CommonNodeHeaderSize)
	fmt.Printf("LEAF_NODE_HEADER_SIZE: %d\n", table.LeafNodeHeaderSize)
	fmt.Printf("LEAF_NODE_CELL_SIZE: %d\n", table.LeafNodeCellSize)
	fmt.Printf("LEAF_NODE_SPACE_FOR_CELLS: %d\n", table.LeafNodeSpaceForCells)
	fmt.Printf("LEAF_NODE_MAX_CELLS: %d\n", table.LeafNodeMaxCells)
}
