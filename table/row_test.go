package table

import (
	"encoding/binary"
	"reflect"
	"testing"
)

func TestSerializeDeserializeRow(t *testing.T) {
	orig := Row{ID: 7, Username: "alice", Email: "alice@example.com"}
	buf := make([]byte, RowSize)
	SerializeRow(orig, buf)

	if got := binary.LittleEndian.Uint32(buf[:4]); got != 7 {
		t.Errorf("id bytes = 0x%x; want 7", got)
	}

	got := DeserializeRow(buf)
	if !reflect.DeepEqual(orig, got) {
		t.Errorf("roundtrip mismatch: got %+v; want %+v", got, orig)
	}
}

func TestSerializeRowZeroesDestination(t *testing.T) {
	buf := make([]byte, RowSize)
	for i := range buf {
		buf[i] = 0xFF
	}
	SerializeRow(Row{ID: 1, Username: "a", Email: "b"}, buf)

	if buf[RowSize-1] != 0 {
		t.Errorf("tail byte = 0x%X; want 0 (unused email bytes must be zeroed)", buf[RowSize-1])
	}
}

func TestRowSizeLayout(t *testing.T) {
	if RowSize != 4+33+256 {
		t.Errorf("RowSize = %d; want %d", RowSize, 4+33+256)
	}
}
