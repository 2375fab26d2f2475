package ast

// ExpressionType is the closed enumeration of ExifTool expression
// categories. It determines the emitted function's Rust
// return type and which transformations apply.
type ExpressionType int

const (
	PrintConv ExpressionType = iota
	ValueConv
	Condition
)

// String implements fmt.Stringer for diagnostics and snapshot output.
func (t ExpressionType) String() string {
	switch t {
	case PrintConv:
		return "PrintConv"
	case ValueConv:
		return "ValueConv"
	case Condition:
		return "Condition"
	default:
		return "Unknown"
	}
}

// RustReturnType names the Rust type the emitted function returns.
func (t ExpressionType) RustReturnType() string {
	switch t {
	case Condition:
		return "bool"
	default:
		return "TagValue"
	}
}
