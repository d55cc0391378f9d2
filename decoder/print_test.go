package decoder

import (
	"strings"
	"testing"

	"github.com/FossoresLP/podwire"
)

func TestSprintScalars(t *testing.T) {
	tests := []struct {
		name string
		v    *podwire.Value
		want string
	}{
		{"none", podwire.None(), "none\n"},
		{"bool", podwire.Bool(true), "bool true\n"},
		{"id", podwire.ID(42), "id 42\n"},
		{"int", podwire.Int(-7), "int -7\n"},
		{"long", podwire.Long(1 << 40), "long 1099511627776\n"},
		{"float", podwire.Float(1.5), "float 1.5\n"},
		{"double", podwire.Double(-2.25), "double -2.25\n"},
		{"string", podwire.String("hi\nthere"), "string \"hi\\nthere\"\n"},
		{"bytes", podwire.Bytes([]byte{0xDE, 0xAD}), "bytes (2) dead\n"},
		{"rectangle", podwire.Rect(podwire.Rectangle{Width: 800, Height: 600}), "rectangle 800x600\n"},
		{"fraction", podwire.Frac(podwire.Fraction{Num: 30, Denom: 1}), "fraction 30/1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sprint(tt.v); got != tt.want {
				t.Errorf("Sprint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSprintNested(t *testing.T) {
	v := podwire.Struct(
		podwire.Int(7),
		podwire.Array(podwire.TypeInt, podwire.Int(1), podwire.Int(2)),
		podwire.Struct(podwire.String("x")),
		podwire.Struct(),
	)
	want := strings.Join([]string{
		"struct {",
		"  int 7",
		"  array[int] {",
		"    int 1",
		"    int 2",
		"  }",
		"  struct {",
		"    string \"x\"",
		"  }",
		"  struct {}",
		"}",
		"",
	}, "\n")
	if got := Sprint(v); got != want {
		t.Errorf("Sprint() =\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintWriterError(t *testing.T) {
	v := podwire.Struct(podwire.Int(1))
	if err := Print(failWriter{}, v); err == nil {
		t.Error("Print() on failing writer returned nil error")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errShort
}

var errShort = &shortErr{}

type shortErr struct{}

func (*shortErr) Error() string { return "short write" }
