package classify

// Path names the emitter path a shape routes to.
type Path string

const (
	// PathVariableOnly projects a bare $val reference.
	PathVariableOnly Path = "variable-only"
	// PathArithmetic covers variable+operator shapes with no function
	// calls and no self-refs.
	PathArithmetic Path = "arithmetic"
	// PathLiteral covers pure arithmetic over literals.
	PathLiteral Path = "literal"
	// PathRegistry defers to the implementation registry.
	PathRegistry Path = "registry"
)

// Route applies the first-match-wins routing policy. Anything carrying a
// function call or a $$self reference defers to the registry before the
// mechanical paths are considered.
func Route(ctx *Context) Path {
	switch {
	case ctx.HasFunctions || ctx.HasSelfRefs:
		return PathRegistry
	case ctx.HasVariables && ctx.HasOperators:
		return PathArithmetic
	case ctx.HasVariables:
		return PathVariableOnly
	case ctx.HasOperators:
		return PathLiteral
	default:
		return PathVariableOnly
	}
}
