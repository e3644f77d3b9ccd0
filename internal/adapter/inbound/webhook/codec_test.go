package webhook

import (
	"errors"
	"testing"

	"github.com/jonny/ranobe-bot/internal/domain/model"
)

func TestDecode_Ping(t *testing.T) {
	in, err := Decode([]byte(`{"id":"1","type":1,"token":"t"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := in.(model.Ping); !ok {
		t.Errorf("got %T, want model.Ping", in)
	}
}

func TestDecode_Command(t *testing.T) {
	body := `{"id":"2","type":2,"token":"tok","data":{"id":"9","name":"search","type":1,
		"options":[{"name":"title","type":3,"value":"  isekai "}]}}`

	in, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cmd, ok := in.(model.Command)
	if !ok {
		t.Fatalf("got %T, want model.Command", in)
	}
	if cmd.Query != "isekai" || cmd.Name != "search" || cmd.Token != "tok" || cmd.ID != "2" {
		t.Errorf("command = %+v", cmd)
	}
}

func TestDecode_ComponentSelect(t *testing.T) {
	body := `{"id":"3","type":3,"token":"tok","data":{"custom_id":"select_book","component_type":3,"values":["11"]}}`

	in, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	sel, ok := in.(model.ComponentSelect)
	if !ok {
		t.Fatalf("got %T, want model.ComponentSelect", in)
	}
	if sel.BookID != 11 || sel.CustomID != "select_book" {
		t.Errorf("select = %+v", sel)
	}
}

func TestDecode_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"not json", `{`, ErrMalformedInteraction},
		{"command without data", `{"id":"1","type":2,"token":"t"}`, ErrMalformedInteraction},
		{"command without options", `{"id":"1","type":2,"token":"t","data":{"name":"search"}}`, ErrMalformedInteraction},
		{"select without values", `{"id":"1","type":3,"token":"t","data":{"custom_id":"select_book","component_type":3,"values":[]}}`, ErrMalformedInteraction},
		{"select with non-numeric value", `{"id":"1","type":3,"token":"t","data":{"custom_id":"select_book","component_type":3,"values":["abc"]}}`, ErrMalformedInteraction},
		{"select from another menu", `{"id":"1","type":3,"token":"t","data":{"custom_id":"select_volume","component_type":3,"values":["11"]}}`, ErrUnsupportedInteraction},
		{"button press", `{"id":"1","type":3,"token":"t","data":{"custom_id":"b","component_type":2}}`, ErrUnsupportedInteraction},
		{"autocomplete", `{"id":"1","type":4,"token":"t","data":{"name":"search"}}`, ErrUnsupportedInteraction},
		{"unknown type", `{"id":"1","type":99,"token":"t"}`, ErrUnsupportedInteraction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body))
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
