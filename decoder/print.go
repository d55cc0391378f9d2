package decoder

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FossoresLP/podwire"
)

// Print renders a value tree to w, one line per scalar, braces around
// container contents, indentation reflecting nesting depth.
func Print(w io.Writer, v *podwire.Value) error {
	return printNode(w, v, 0)
}

// Sprint renders a value tree to a string.
func Sprint(v *podwire.Value) string {
	var b strings.Builder
	printNode(&b, v, 0)
	return b.String()
}

func printNode(w io.Writer, v *podwire.Value, depth int) error {
	indent := strings.Repeat("  ", depth)
	switch v.Type() {
	case podwire.TypeArray:
		elem, _ := v.ElemType()
		if v.Len() == 0 {
			_, err := fmt.Fprintf(w, "%sarray[%s] {}\n", indent, elem)
			return err
		}
		if _, err := fmt.Fprintf(w, "%sarray[%s] {\n", indent, elem); err != nil {
			return err
		}
		for _, c := range v.Children() {
			if err := printNode(w, c, depth+1); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%s}\n", indent)
		return err
	case podwire.TypeStruct:
		if v.Len() == 0 {
			_, err := fmt.Fprintf(w, "%sstruct {}\n", indent)
			return err
		}
		if _, err := fmt.Fprintf(w, "%sstruct {\n", indent); err != nil {
			return err
		}
		for _, c := range v.Children() {
			if err := printNode(w, c, depth+1); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%s}\n", indent)
		return err
	default:
		_, err := fmt.Fprintf(w, "%s%s\n", indent, scalarLine(v))
		return err
	}
}

// scalarLine renders one leaf as "<type> <value>".
func scalarLine(v *podwire.Value) string {
	switch v.Type() {
	case podwire.TypeNone:
		return "none"
	case podwire.TypeBool:
		b, _ := v.AsBool()
		return "bool " + strconv.FormatBool(b)
	case podwire.TypeID:
		id, _ := v.AsID()
		return "id " + strconv.FormatUint(uint64(id), 10)
	case podwire.TypeInt:
		n, _ := v.AsInt()
		return "int " + strconv.FormatInt(int64(n), 10)
	case podwire.TypeLong:
		n, _ := v.AsLong()
		return "long " + strconv.FormatInt(n, 10)
	case podwire.TypeFloat:
		f, _ := v.AsFloat()
		return "float " + strconv.FormatFloat(float64(f), 'g', -1, 32)
	case podwire.TypeDouble:
		f, _ := v.AsDouble()
		return "double " + strconv.FormatFloat(f, 'g', -1, 64)
	case podwire.TypeString:
		s, _ := v.AsString()
		return "string " + strconv.Quote(s)
	case podwire.TypeBytes:
		b, _ := v.AsBytes()
		return fmt.Sprintf("bytes (%d) %s", len(b), hex.EncodeToString(b))
	case podwire.TypeRectangle:
		r, _ := v.AsRect()
		return fmt.Sprintf("rectangle %dx%d", r.Width, r.Height)
	case podwire.TypeFraction:
		f, _ := v.AsFrac()
		return fmt.Sprintf("fraction %d/%d", f.Num, f.Denom)
	}
	return "unknown"
}
