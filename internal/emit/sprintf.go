package emit

import (
	"strconv"
	"strings"

	"github.com/cwbudde/exiftrans/internal/errors"
)

// TranslateFormat rewrites a Perl printf-style format string into the
// target language's brace-form placeholders. Any specifier outside the
// mapped set returns an UnsupportedFormatSpec diagnostic so the caller
// can defer to the registry.
func TranslateFormat(format string) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' {
			out.WriteByte(c)
			i++
			continue
		}
		spec, _, consumed, err := parseSpecifier(format[i:])
		if err != nil {
			return "", err
		}
		out.WriteString(spec)
		i += consumed
	}
	return out.String(), nil
}

// parseSpecifier consumes one leading "%..." specifier from s (s[0] ==
// '%') and returns its Rust-side replacement and the number of bytes
// consumed.
func parseSpecifier(s string) (spec string, width int, consumed int, err error) {
	if len(s) < 2 {
		return "", 0, 0, unsupportedFormat(s)
	}
	if s[1] == '%' {
		return "%", 0, 2, nil
	}

	i := 1
	precision := -1
	if s[i] == '.' {
		i++
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return "", 0, 0, unsupportedFormat(s)
		}
		precision, _ = strconv.Atoi(s[start:i])
	} else {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i > start {
			width, _ = strconv.Atoi(s[start:i])
		}
	}
	if i >= len(s) {
		return "", 0, 0, unsupportedFormat(s)
	}
	verb := s[i]
	i++

	switch {
	case precision >= 0 && precision <= 10 && verb == 'f':
		return "{:." + strconv.Itoa(precision) + "}", width, i, nil
	case precision >= 0 && precision <= 10 && verb == 'd':
		return "{:0" + strconv.Itoa(precision) + "}", width, i, nil
	case precision >= 0 && precision <= 10 && (verb == 'x' || verb == 'X'):
		hexCase := "x"
		if verb == 'X' {
			hexCase = "X"
		}
		return "{:0" + strconv.Itoa(precision) + hexCase + "}", width, i, nil
	case precision >= 0:
		return "", 0, 0, unsupportedFormat(s[:i])
	case verb == 'd' || verb == 's' || verb == 'f':
		if width > 0 {
			return "{:" + strconv.Itoa(width) + "}", width, i, nil
		}
		return "{}", width, i, nil
	case verb == 'x':
		return "{:x}", width, i, nil
	case verb == 'X':
		return "{:X}", width, i, nil
	case verb == 'o':
		return "{:o}", width, i, nil
	default:
		return "", 0, 0, unsupportedFormat(s[:i])
	}
}

func unsupportedFormat(spec string) error {
	return errors.New(errors.UnsupportedFormatSpec, spec, "hand-translate this sprintf format or add a placeholder mapping")
}
