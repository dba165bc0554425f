package main

import (
	"bufio"
	"fmt"
	"os"

	"minidb/table"
)

type ExecuteResult int

const (
	ExecuteSuccess ExecuteResult = iota
	ExecuteDuplicateKey
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}

	db, err := table.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		printPrompt()
		input, err := readInput(reader)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if input == "" {
			continue
		}

		if input[0] == '.' {
			switch doMetaCommand(input, db) {
			case MetaCommandSuccess:
				continue
			case MetaCommandUnrecognizedCommand:
				fmt.Printf("Unrecognized command '%s'\n", input)
				continue
			}
		}

		var stmt Statement
		switch prepareStatement(input, &stmt) {
		case PrepareSuccess:
		case PrepareNegativeID:
			fmt.Println("ID must be positive.")
			continue
		case PrepareStringTooLong:
			fmt.Println("String is too long.")
			continue
		case PrepareSyntaxError:
			fmt.Println("Syntax error. Could not parse statement.")
			continue
		case PrepareUnrecognizedStatement:
			fmt.Printf("Unrecognized keyword at start of '%s'\n", input)
			continue
		}

		result, err := executeStatement(&stmt, db)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		switch result {
		case ExecuteSuccess:
			fmt.Println("Executed.")
		case ExecuteDuplicateKey:
			fmt.Println("Error: Duplicate key.")
		}
	}
}

func executeStatement(stmt *Statement, db *table.Database) (ExecuteResult, error) {
	switch stmt.Type {
	case StatementInsert:
		return executeInsert(stmt, db)
	case StatementSelect:
		return executeSelect(db)
	}
	return ExecuteSuccess, nil
}

func executeInsert(stmt *Statement, db *table.Database) (ExecuteResult, error) {
	err := db.Tree.Insert(stmt.RowToInsert.ID, stmt.RowToInsert)
	if err == table.ErrDuplicateKey {
		return ExecuteDuplicateKey, nil
	}
	if err != nil {
		return ExecuteSuccess, err
	}
	return ExecuteSuccess, nil
}

func executeSelect(db *table.Database) (ExecuteResult, error) {
	cursor, err := db.Tree.Start()
	if err != nil {
		return ExecuteSuccess, err
	}
	for !cursor.EndOfTable() {
		row, err := cursor.Value()
		if err != nil {
			return ExecuteSuccess, err
		}
		fmt.Printf("(%d, %s, %s)\n", row.ID, row.Username, row.Email)
		if err := cursor.Advance(); err != nil {
			return ExecuteSuccess, err
		}
	}
	return ExecuteSuccess, nil
}
