package hdl_test

import (
	"reflect"
	"testing"

	"github.com/db47h/syncfifo/internal/hdl"
)

func TestLexer(t *testing.T) {
	l := hdl.NewLexer(" din[0..7]=bus_a[8..15], wr_en =we")
	var types []hdl.Type
	for i := l.Lex(); i.Type != hdl.EOF; i = l.Lex() {
		types = append(types, i.Type)
	}
	exp := []hdl.Type{
		hdl.Ident, hdl.BracketOpen, hdl.Int, hdl.Range, hdl.Int, hdl.BracketClose,
		hdl.Equal,
		hdl.Ident, hdl.BracketOpen, hdl.Int, hdl.Range, hdl.Int, hdl.BracketClose,
		hdl.Comma,
		hdl.Ident, hdl.Equal, hdl.Ident,
	}
	if !reflect.DeepEqual(types, exp) {
		t.Fatalf("got %v, expected %v", types, exp)
	}
}

func TestParser(t *testing.T) {
	data := []struct {
		in    string
		conns bool
		items []interface{}
		err   string
	}{
		{"", false, nil, ""},
		{"a", false, []interface{}{hdl.Pin{"a", 0}}, ""},
		{"din[8], wr_en", false, []interface{}{
			hdl.PinIndex{hdl.Pin{"din", 0}, 8},
			hdl.Pin{"wr_en", 8},
		}, ""},
		{"a=b, c[2..3]=d[0..1]", true, []interface{}{
			hdl.PinAssignment{hdl.Pin{"a", 0}, hdl.Pin{"b", 2}},
			hdl.PinAssignment{hdl.PinRange{hdl.Pin{"c", 5}, 2, 3}, hdl.PinRange{hdl.Pin{"d", 13}, 0, 1}},
		}, ""},
		{"a=b", false, nil, `in "a=b" at pos 2: unexpected '='`},
		{"a[x]", false, nil, `in "a[x]" at pos 3: integer value expected after '['`},
		{"a[1..]", false, nil, `in "a[1..]" at pos 6: integer value expected after '..'`},
		{"a[1", false, nil, `in "a[1" at pos 4: closing ']' expected after index or range`},
		{"a=b c", true, nil, `in "a=b c" at pos 5: unexpected identifier "c"`},
		{"=b", true, nil, `in "=b" at pos 1: expected pin name`},
		{"a, %", false, []interface{}{hdl.Pin{"a", 0}}, `in "a, %" at pos 4: expected pin name`},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			p := &hdl.Parser{Input: d.in}
			var items []interface{}
			var err error
			for {
				var i interface{}
				i, err = p.Next(d.conns)
				if err != nil || i == nil {
					break
				}
				items = append(items, i)
			}
			if err == nil && d.err != "" || err != nil && err.Error() != d.err {
				t.Fatalf("got error %q, expected %q", err, d.err)
			}
			if !reflect.DeepEqual(items, d.items) {
				t.Fatalf("got %#v, expected %#v", items, d.items)
			}
		})
	}
}
