package main

import (
	"fmt"
	"strings"

	"minidb/table"
)

type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareUnrecognizedStatement
	PrepareSyntaxError
	PrepareStringTooLong
	PrepareNegativeID
)

type Statement struct {
	Type        StatementType
	RowToInsert table.Row
}

func prepareStatement(input string, stmt *Statement) PrepareResult {
	if strings.HasPrefix(input, "insert") {
		return prepareInsert(input, stmt)
	}
	if input == "select" {
		stmt.Type = StatementSelect
		return PrepareSuccess
	}
	return PrepareUnrecognizedStatement
}

func prepareInsert(input string, stmt *Statement) PrepareResult {
	stmt.Type = StatementInsert

	var id int64
	var username, email string
	n, _ := fmt.Sscanf(input, "insert %d %s %s", &id, &username, &email)
	if n < 3 {
		return PrepareSyntaxError
	}
	if id < 0 {
		return PrepareNegativeID
	}
	if len(username) > table.UsernameMaxLen {
		return PrepareStringTooLong
	}
	if len(email) > table.EmailMaxLen {
		return PrepareStringTooLong
	}

	stmt.RowToInsert = table.Row{ID: uint32(id), Username: username, Email: email}
	return PrepareSuccess
}
