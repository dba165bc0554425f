package table

import (
	"encoding/binary"
	"strings"
)

// Row is one record of the table's fixed schema.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// SerializeRow writes row into dst, which must be exactly RowSize bytes.
// Callers are responsible for enforcing the username/email length caps
// before calling this; the REPL parser is the only caller that accepts
// untrusted input and does that check itself.
func SerializeRow(row Row, dst []byte) {
	for i := range dst {
		dst[i] = 0
	}
	binary.LittleEndian.PutUint32(dst[idOffset:idOffset+IDSize], row.ID)
	copy(dst[usernameOffset:usernameOffset+usernameFieldWidth], row.Username)
	copy(dst[emailOffset:emailOffset+emailFieldWidth], row.Email)
}

// DeserializeRow reads a row out of src, which must be exactly RowSize
// bytes (as returned by a leaf cell's value slice).
func DeserializeRow(src []byte) Row {
	return Row{
		ID:       binary.LittleEndian.Uint32(src[idOffset : idOffset+IDSize]),
		Username: trimField(src[usernameOffset : usernameOffset+usernameFieldWidth]),
		Email:    trimField(src[emailOffset : emailOffset+emailFieldWidth]),
	}
}

func trimField(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}
