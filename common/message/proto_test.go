package message

import (
	"bytes"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"
)

func TestEncodeDecode(t *testing.T) {
	st, err := structpb.NewStruct(map[string]interface{}{"b": 1.5, "a": "x", "c": []interface{}{1.0, 2.0}})
	if err != nil {
		t.Fatal(err)
	}
	data, err := Encode(st)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Encode(st)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Error("encoding is deterministic")
	}

	var out structpb.Struct
	if err := Decode(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.GetFields()["b"].GetNumberValue() != 1.5 || out.GetFields()["a"].GetStringValue() != "x" {
		t.Errorf("decoded %v", out.AsMap())
	}
}

func TestDecodeGarbage(t *testing.T) {
	var out structpb.Struct
	if err := Decode([]byte{0xff, 0xff, 0xff}, &out); err == nil {
		t.Error("garbage is rejected")
	}
}
