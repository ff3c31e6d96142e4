package rw

import (
	"errors"
	"io"
	"testing"
)

func TestWriteRead(t *testing.T) {
	w := NewBinWriter()
	w.WriteInt32(int32(-5))
	w.WriteInt32(42)
	w.WriteInt32(uint32(1 << 31))
	w.WriteFloat64(3.25)
	w.WriteFloat64s([]float64{1, -2})

	data := w.GetWriteBytes()
	if len(data) != 4+4+4+8+16 {
		t.Fatalf("unexpected size %d", len(data))
	}

	r := NewBinReader(data)
	if v := r.ReadInt32(); v != -5 {
		t.Errorf("ReadInt32 = %d", v)
	}
	if v := r.ReadInt32(); v != 42 {
		t.Errorf("ReadInt32 = %d", v)
	}
	if v := r.ReadUInt32(); v != 1<<31 {
		t.Errorf("ReadUInt32 = %d", v)
	}
	if v := r.ReadFloat64(); v != 3.25 {
		t.Errorf("ReadFloat64 = %v", v)
	}
	values := make([]float64, 2)
	r.ReadFloat64s(values)
	if values[0] != 1 || values[1] != -2 {
		t.Errorf("ReadFloat64s = %v", values)
	}
	if r.Size() != 0 {
		t.Errorf("Size = %d", r.Size())
	}
	if r.Err() != nil {
		t.Errorf("unexpected error %v", r.Err())
	}
}

func TestReadPastEnd(t *testing.T) {
	r := NewBinReader([]byte{1, 2})
	if v := r.ReadUInt32(); v != 0 {
		t.Errorf("short read returns %d", v)
	}
	if !errors.Is(r.Err(), io.ErrUnexpectedEOF) {
		t.Errorf("expected unexpected EOF, got %v", r.Err())
	}
	// the error is sticky
	if v := r.ReadFloat64(); v != 0 {
		t.Errorf("read after error returns %v", v)
	}
}

func TestWriteInt32Type(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("WriteInt32 accepts only integer types")
		}
	}()
	NewBinWriter().WriteInt32("1")
}
