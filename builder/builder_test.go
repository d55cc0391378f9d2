package builder

import (
	"bytes"
	"math"
	"testing"

	"github.com/FossoresLP/podwire"
	"github.com/FossoresLP/podwire/errors"
)

func TestAppendScalarsGolden(t *testing.T) {
	tests := []struct {
		name   string
		append func(b *Builder) (uint32, error)
		want   []byte
	}{
		{
			name:   "none",
			append: func(b *Builder) (uint32, error) { return b.AppendNone() },
			want:   []byte{0, 0, 0, 0, 1, 0, 0, 0},
		},
		{
			name:   "bool true",
			append: func(b *Builder) (uint32, error) { return b.AppendBool(true) },
			want:   []byte{4, 0, 0, 0, 2, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:   "id",
			append: func(b *Builder) (uint32, error) { return b.AppendID(3) },
			want:   []byte{4, 0, 0, 0, 3, 0, 0, 0, 3, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:   "int",
			append: func(b *Builder) (uint32, error) { return b.AppendInt(42) },
			want:   []byte{4, 0, 0, 0, 4, 0, 0, 0, 42, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:   "int negative",
			append: func(b *Builder) (uint32, error) { return b.AppendInt(-1) },
			want:   []byte{4, 0, 0, 0, 4, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0},
		},
		{
			name:   "long",
			append: func(b *Builder) (uint32, error) { return b.AppendLong(1) },
			want:   []byte{8, 0, 0, 0, 5, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:   "float 1.0",
			append: func(b *Builder) (uint32, error) { return b.AppendFloat(1.0) },
			want:   []byte{4, 0, 0, 0, 6, 0, 0, 0, 0, 0, 0x80, 0x3F, 0, 0, 0, 0},
		},
		{
			name:   "string",
			append: func(b *Builder) (uint32, error) { return b.AppendString("abc") },
			want:   []byte{4, 0, 0, 0, 8, 0, 0, 0, 'a', 'b', 'c', 0, 0, 0, 0, 0},
		},
		{
			name:   "string exact boundary",
			append: func(b *Builder) (uint32, error) { return b.AppendString("1234567") },
			want:   []byte{8, 0, 0, 0, 8, 0, 0, 0, '1', '2', '3', '4', '5', '6', '7', 0},
		},
		{
			name:   "bytes",
			append: func(b *Builder) (uint32, error) { return b.AppendBytes([]byte{0xDE, 0xAD}) },
			want:   []byte{2, 0, 0, 0, 9, 0, 0, 0, 0xDE, 0xAD, 0, 0, 0, 0, 0, 0},
		},
		{
			name:   "rectangle",
			append: func(b *Builder) (uint32, error) { return b.AppendRectangle(podwire.Rectangle{Width: 800, Height: 600}) },
			want:   []byte{8, 0, 0, 0, 10, 0, 0, 0, 0x20, 0x03, 0, 0, 0x58, 0x02, 0, 0},
		},
		{
			name:   "fraction",
			append: func(b *Builder) (uint32, error) { return b.AppendFraction(podwire.Fraction{Num: 30, Denom: 1}) },
			want:   []byte{8, 0, 0, 0, 11, 0, 0, 0, 30, 0, 0, 0, 1, 0, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(make([]byte, len(tt.want)))
			off, err := tt.append(b)
			if err != nil {
				t.Fatalf("append error = %v", err)
			}
			if off != 0 {
				t.Errorf("offset = %d, want 0", off)
			}
			got, err := b.Bytes()
			if err != nil {
				t.Fatalf("Bytes() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("encoded = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestAppendArrayGolden(t *testing.T) {
	data := []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}
	b := New(make([]byte, 32))
	if _, err := b.AppendArray(podwire.TypeInt, data, 3); err != nil {
		t.Fatalf("AppendArray() error = %v", err)
	}
	want := []byte{
		20, 0, 0, 0, 13, 0, 0, 0, // header: size 8+12, type array
		4, 0, 0, 0, 4, 0, 0, 0, // child header: size 4, type int
		1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0,
		0, 0, 0, 0, // pad to 8
	}
	got, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("encoded = % x, want % x", got, want)
	}
}

func TestStructGolden(t *testing.T) {
	encode := func(b *Builder) error {
		f, err := b.PushStruct()
		if err != nil {
			return err
		}
		if _, err := b.AppendInt(7); err != nil {
			return err
		}
		if _, err := b.AppendString("hi"); err != nil {
			return err
		}
		inner, err := b.PushStruct()
		if err != nil {
			return err
		}
		if _, err := b.AppendRectangle(podwire.Rectangle{Width: 800, Height: 600}); err != nil {
			return err
		}
		if err := b.Pop(inner); err != nil {
			return err
		}
		return b.Pop(f)
	}

	got, err := Build(encode)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []byte{
		56, 0, 0, 0, 14, 0, 0, 0, // struct, payload 56
		4, 0, 0, 0, 4, 0, 0, 0, 7, 0, 0, 0, 0, 0, 0, 0, // int 7
		3, 0, 0, 0, 8, 0, 0, 0, 'h', 'i', 0, 0, 0, 0, 0, 0, // string "hi"
		16, 0, 0, 0, 14, 0, 0, 0, // inner struct, payload 16
		8, 0, 0, 0, 10, 0, 0, 0, 0x20, 0x03, 0, 0, 0x58, 0x02, 0, 0, // rectangle
	}
	if !bytes.Equal(got, want) {
		t.Errorf("encoded = % x, want % x", got, want)
	}
}

func TestPushArrayElements(t *testing.T) {
	got, err := Build(func(b *Builder) error {
		f, err := b.PushArray(podwire.TypeInt)
		if err != nil {
			return err
		}
		for _, v := range []int32{1, 2, 3} {
			if _, err := b.AppendInt(v); err != nil {
				return err
			}
		}
		return b.Pop(f)
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	b := New(make([]byte, 32))
	data := []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}
	if _, err := b.AppendArray(podwire.TypeInt, data, 3); err != nil {
		t.Fatalf("AppendArray() error = %v", err)
	}
	want, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("frame-built array = % x, one-shot array = % x", got, want)
	}
}

func TestArrayElementTypeMismatch(t *testing.T) {
	b := New(nil)
	f, err := b.PushArray(podwire.TypeInt)
	if err != nil {
		t.Fatalf("PushArray() error = %v", err)
	}
	before := b.Size()
	if _, err := b.AppendLong(1); err == nil {
		t.Error("AppendLong() inside int array succeeded, want error")
	}
	if b.Size() != before {
		t.Errorf("cursor advanced on rejected element: %d -> %d", before, b.Size())
	}
	if err := b.Pop(f); err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
}

func TestPushInsideArrayRejected(t *testing.T) {
	b := New(nil)
	if _, err := b.PushArray(podwire.TypeInt); err != nil {
		t.Fatalf("PushArray() error = %v", err)
	}
	if _, err := b.PushStruct(); err == nil {
		t.Error("PushStruct() inside array frame succeeded, want error")
	}
	if _, err := b.PushArray(podwire.TypeLong); err == nil {
		t.Error("PushArray() inside array frame succeeded, want error")
	}
}

func TestPushArrayInvalidChild(t *testing.T) {
	b := New(nil)
	if _, err := b.PushArray(podwire.TypeString); err == nil {
		t.Error("PushArray(string) succeeded, want error")
	}
	if _, err := b.PushArray(podwire.TypeNone); err == nil {
		t.Error("PushArray(none) succeeded, want error")
	}
}

func TestDryRunMatchesReal(t *testing.T) {
	encode := func(b *Builder) error {
		f, err := b.PushStruct()
		if err != nil {
			return err
		}
		if _, err := b.AppendString("dry run sizing"); err != nil {
			return err
		}
		if _, err := b.AppendDouble(3.14); err != nil {
			return err
		}
		a, err := b.PushArray(podwire.TypeFraction)
		if err != nil {
			return err
		}
		if _, err := b.AppendFraction(podwire.Fraction{Num: 30, Denom: 1}); err != nil {
			return err
		}
		if err := b.Pop(a); err != nil {
			return err
		}
		return b.Pop(f)
	}

	dry := New(nil)
	if err := encode(dry); err != nil {
		t.Fatalf("dry-run encode error = %v", err)
	}
	if !dry.DryRun() {
		t.Error("DryRun() = false for nil buffer")
	}
	if _, err := dry.Bytes(); !errors.IsOverflow(err) {
		t.Errorf("dry-run Bytes() error = %v, want overflow", err)
	}

	real := New(make([]byte, dry.Size()))
	if err := encode(real); err != nil {
		t.Fatalf("real encode error = %v", err)
	}
	if real.Size() != dry.Size() {
		t.Errorf("real size = %d, dry-run size = %d", real.Size(), dry.Size())
	}
	if _, err := real.Bytes(); err != nil {
		t.Errorf("Bytes() error = %v", err)
	}
}

func TestEmptyBufferIsDryRun(t *testing.T) {
	b := New(make([]byte, 0))
	if !b.DryRun() {
		t.Error("DryRun() = false for an empty buffer")
	}
	if _, err := b.AppendInt(1); err != nil {
		t.Fatalf("AppendInt() error = %v", err)
	}
	if b.Size() != 16 {
		t.Errorf("Size() = %d, want 16", b.Size())
	}
	if !New(nil).DryRun() {
		t.Error("DryRun() = false for a nil buffer")
	}
	if New(make([]byte, 8)).DryRun() {
		t.Error("DryRun() = true for a non-empty buffer")
	}
}

func TestOverflowNeverWritesOutOfBounds(t *testing.T) {
	// A buffer too small for even one POD. The guard byte sits past the
	// slice the builder sees; nothing may touch the visible region either
	// because writes are all-or-nothing.
	backing := make([]byte, 13)
	for i := range backing {
		backing[i] = 0xAA
	}
	b := New(backing[:12])

	if _, err := b.AppendInt(42); err != nil {
		t.Fatalf("AppendInt() error = %v", err)
	}
	if !b.Overflowed() {
		t.Error("Overflowed() = false after overflowing append")
	}
	if b.Size() != 16 {
		t.Errorf("Size() = %d, want 16", b.Size())
	}
	for i, c := range backing {
		if c != 0xAA {
			t.Errorf("byte %d modified to %#x during overflow", i, c)
		}
	}

	_, err := b.Bytes()
	e, ok := err.(*errors.Error)
	if !ok || e.Kind != errors.KindOverflow {
		t.Fatalf("Bytes() error = %v, want overflow", err)
	}

	// Replay into a buffer of the reported size succeeds.
	b.Reset(make([]byte, b.Size()))
	if _, err := b.AppendInt(42); err != nil {
		t.Fatalf("replay AppendInt() error = %v", err)
	}
	if _, err := b.Bytes(); err != nil {
		t.Errorf("replay Bytes() error = %v", err)
	}
}

func TestOverflowMidSequence(t *testing.T) {
	encode := func(b *Builder) error {
		f, err := b.PushStruct()
		if err != nil {
			return err
		}
		for i := 0; i < 8; i++ {
			if _, err := b.AppendLong(int64(i)); err != nil {
				return err
			}
		}
		return b.Pop(f)
	}

	small := New(make([]byte, 40))
	if err := encode(small); err != nil {
		t.Fatalf("encode error = %v", err)
	}
	want := small.Size()

	full := New(make([]byte, want))
	if err := encode(full); err != nil {
		t.Fatalf("replay encode error = %v", err)
	}
	if full.Overflowed() {
		t.Error("replay overflowed in a buffer of the reported size")
	}
	if full.Size() != want {
		t.Errorf("replay size = %d, want %d", full.Size(), want)
	}
}

func TestPopMisuse(t *testing.T) {
	b := New(nil)

	if err := b.Pop(Frame{}); err == nil {
		t.Error("Pop(zero frame) succeeded, want error")
	}

	outer, err := b.PushStruct()
	if err != nil {
		t.Fatalf("PushStruct() error = %v", err)
	}
	inner, err := b.PushStruct()
	if err != nil {
		t.Fatalf("PushStruct() error = %v", err)
	}

	if err := b.Pop(outer); err == nil {
		t.Error("Pop(outer) with inner still open succeeded, want error")
	}

	other := New(nil)
	foreign, err := other.PushStruct()
	if err != nil {
		t.Fatalf("PushStruct() error = %v", err)
	}
	if err := b.Pop(foreign); err == nil {
		t.Error("Pop(foreign frame) succeeded, want error")
	}

	if err := b.Pop(inner); err != nil {
		t.Errorf("Pop(inner) error = %v", err)
	}
	if err := b.Pop(outer); err != nil {
		t.Errorf("Pop(outer) error = %v", err)
	}
	if err := b.Pop(outer); err == nil {
		t.Error("double Pop(outer) succeeded, want error")
	}
}

func TestBytesWithOpenFrame(t *testing.T) {
	b := New(make([]byte, 64))
	if _, err := b.PushStruct(); err != nil {
		t.Fatalf("PushStruct() error = %v", err)
	}
	_, err := b.Bytes()
	e, ok := err.(*errors.Error)
	if !ok || e.Kind != errors.KindInvalidArgument {
		t.Errorf("Bytes() error = %v, want invalid_argument", err)
	}
}

func TestAppendStringRejectsNUL(t *testing.T) {
	b := New(make([]byte, 64))
	_, err := b.AppendString("a\x00b")
	e, ok := err.(*errors.Error)
	if !ok || e.Kind != errors.KindInvalidArgument {
		t.Fatalf("AppendString() error = %v, want invalid_argument", err)
	}
	if b.Size() != 0 {
		t.Errorf("cursor advanced on rejected string: %d", b.Size())
	}
}

// Payloads the u32 size field cannot describe are caller errors, never
// silently truncated sizes. The limit itself is checked directly because a
// multi-gigabyte allocation has no place in a unit test.
func TestBodySizeLimit(t *testing.T) {
	if !bodyFits(0) {
		t.Error("bodyFits(0) = false")
	}
	if !bodyFits(maxBody) {
		t.Errorf("bodyFits(%d) = false at the limit", uint64(maxBody))
	}
	if bodyFits(maxBody + 1) {
		t.Error("bodyFits accepted a payload one past the limit")
	}
	if bodyFits(math.MaxUint32) {
		t.Error("bodyFits accepted a payload the size field cannot hold with header and padding")
	}
	if bodyFits(uint64(math.MaxUint32) + 1) {
		t.Error("bodyFits accepted a payload wider than the size field")
	}
}

func TestAppendArrayValidation(t *testing.T) {
	tests := []struct {
		name  string
		child podwire.Type
		data  []byte
		n     uint32
	}{
		{"variable-size child", podwire.TypeString, nil, 0},
		{"none child", podwire.TypeNone, nil, 0},
		{"length mismatch", podwire.TypeInt, []byte{1, 2, 3}, 1},
		{"count mismatch", podwire.TypeLong, make([]byte, 16), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(make([]byte, 64))
			_, err := b.AppendArray(tt.child, tt.data, tt.n)
			e, ok := err.(*errors.Error)
			if !ok || e.Kind != errors.KindInvalidArgument {
				t.Errorf("AppendArray() error = %v, want invalid_argument", err)
			}
			if b.Size() != 0 {
				t.Errorf("cursor advanced on rejected array: %d", b.Size())
			}
		})
	}
}

func TestAppendValue(t *testing.T) {
	tree := podwire.Struct(
		podwire.Int(7),
		podwire.String("hi"),
		podwire.Struct(podwire.Rect(podwire.Rectangle{Width: 800, Height: 600})),
	)

	fromValue, err := Build(func(b *Builder) error {
		_, err := b.AppendValue(tree)
		return err
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	manual, err := Build(func(b *Builder) error {
		f, err := b.PushStruct()
		if err != nil {
			return err
		}
		if _, err := b.AppendInt(7); err != nil {
			return err
		}
		if _, err := b.AppendString("hi"); err != nil {
			return err
		}
		inner, err := b.PushStruct()
		if err != nil {
			return err
		}
		if _, err := b.AppendRectangle(podwire.Rectangle{Width: 800, Height: 600}); err != nil {
			return err
		}
		if err := b.Pop(inner); err != nil {
			return err
		}
		return b.Pop(f)
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !bytes.Equal(fromValue, manual) {
		t.Errorf("AppendValue bytes = % x, manual bytes = % x", fromValue, manual)
	}
}

func TestAppendValueArrayMismatch(t *testing.T) {
	tree := podwire.Array(podwire.TypeInt, podwire.Int(1), podwire.Long(2))
	_, err := Build(func(b *Builder) error {
		_, err := b.AppendValue(tree)
		return err
	})
	if err == nil {
		t.Fatal("Build() succeeded on mistyped array element, want error")
	}
	e, ok := err.(*errors.Error)
	if !ok || e.Kind != errors.KindInvalidArgument {
		t.Errorf("error = %v, want invalid_argument", err)
	}
}

func TestBuildReportsOpenFrames(t *testing.T) {
	_, err := Build(func(b *Builder) error {
		_, err := b.PushStruct()
		return err
	})
	e, ok := err.(*errors.Error)
	if !ok || e.Kind != errors.KindInvalidArgument {
		t.Errorf("Build() error = %v, want invalid_argument", err)
	}
}

func BenchmarkAppendStruct(b *testing.B) {
	buf := make([]byte, 256)
	bld := New(buf)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bld.Reset(buf)
		f, _ := bld.PushStruct()
		bld.AppendInt(int32(i))
		bld.AppendString("benchmark")
		bld.AppendDouble(3.14)
		bld.Pop(f)
	}
}

func BenchmarkBuild(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Build(func(bld *Builder) error {
			f, err := bld.PushStruct()
			if err != nil {
				return err
			}
			if _, err := bld.AppendLong(int64(i)); err != nil {
				return err
			}
			return bld.Pop(f)
		})
	}
}
