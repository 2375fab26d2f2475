// Package registry holds the static, keyed lookup from Perl callable
// spellings to the Rust module path and function name that hand-implement
// them, used as the fallback when the mechanical emitter (internal/emit)
// refuses a shape. The table lives in an embedded YAML document parsed
// once at first use, so entries stay reviewable as data rather than code.
package registry

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/exiftrans/internal/log"
)

// Category is the closed classification of a registry entry.
type Category int

const (
	Builtin Category = iota
	ModuleFunction
	CustomScript
)

// String implements fmt.Stringer for CLI/diagnostic output.
func (c Category) String() string {
	switch c {
	case Builtin:
		return "builtin"
	case ModuleFunction:
		return "module"
	case CustomScript:
		return "script"
	default:
		return "unknown"
	}
}

// MarshalYAML renders the category by its lowercase name so registry.yaml
// stays human-reviewable data rather than magic numbers.
func (c Category) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML parses the lowercase category name back into its enum
// value.
func (c *Category) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "builtin":
		*c = Builtin
	case "module", "exiftool_module", "modulefunction":
		*c = ModuleFunction
	case "script", "custom_script", "customscript":
		*c = CustomScript
	default:
		*c = Builtin
	}
	return nil
}

// Entry is one implementation registry record.
type Entry struct {
	// Key is the exact Perl callable spelling, e.g. "sprintf" or
	// "Image::ExifTool::Canon::CanonEv".
	Key string `yaml:"key"`
	// Category classifies the entry (Builtin/ModuleFunction/CustomScript).
	Category Category `yaml:"category"`
	// ModulePath is the target Rust module path, e.g. "canon".
	ModulePath string `yaml:"module_path"`
	// FunctionName is the target Rust function identifier, e.g. "canon_ev".
	FunctionName string `yaml:"function_name"`
	// Doc is a short description of the expected argument shape.
	Doc string `yaml:"doc"`
}

// QualifiedName renders the fully-qualified Rust path the caller should
// emit for a registry-deferred call, e.g. "canon::canon_ev".
func (e Entry) QualifiedName() string {
	if e.ModulePath == "" {
		return e.FunctionName
	}
	return e.ModulePath + "::" + e.FunctionName
}

//go:embed registry.yaml
var registryYAML []byte

type table struct {
	entries  []Entry
	byKey    map[string]Entry
	patterns []patternEntry // ordered: insertion order, never hash order
}

type patternEntry struct {
	prefix    string
	canonical string
}

var load = sync.OnceValue(func() *table {
	var doc struct {
		Entries  []Entry `yaml:"entries"`
		Patterns []struct {
			Prefix    string `yaml:"prefix"`
			Canonical string `yaml:"canonical"`
		} `yaml:"patterns"`
	}
	if err := yaml.Unmarshal(registryYAML, &doc); err != nil {
		log.L().Sugar().Errorw("failed to parse embedded registry.yaml", "error", err)
		return &table{byKey: map[string]Entry{}}
	}

	t := &table{
		entries: doc.Entries,
		byKey:   make(map[string]Entry, len(doc.Entries)),
	}
	for _, e := range doc.Entries {
		t.byKey[e.Key] = e
	}
	for _, p := range doc.Patterns {
		t.patterns = append(t.patterns, patternEntry{prefix: p.Prefix, canonical: p.Canonical})
	}
	return t
})

// Lookup resolves call against the registry, trying an exact match first
// and then the prefix-pattern table, in that order. A miss is represented
// by the boolean return.
func Lookup(call string) (Entry, bool) {
	t := load()
	if e, ok := t.byKey[call]; ok {
		log.L().Sugar().Debugw("registry exact match", "call", call)
		return e, true
	}
	for _, p := range t.patterns {
		if strings.HasPrefix(call, p.prefix) {
			if e, ok := t.byKey[p.canonical]; ok {
				log.L().Sugar().Debugw("registry pattern match", "call", call, "canonical", p.canonical)
				return e, true
			}
		}
	}
	log.L().Sugar().Debugw("registry miss", "call", call)
	return Entry{}, false
}

// ByCategory returns every entry of the given category, in the embedded
// table's declared order, never hash order.
func ByCategory(cat Category) []Entry {
	t := load()
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// All returns every registered entry in declared order.
func All() []Entry {
	t := load()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// builtinsRequiringLookup is the set of call-shaped Perl builtin prefixes
// NeedsLookup flags. Any occurrence of one of these prefixes is flagged;
// NeedsLookup does not tell a direct top-level sprintf (which the emitter
// handles itself) apart from a nested one. substr/uc/lc have no
// mechanical rule in the emitter.
var builtinsRequiringLookup = []string{"sprintf(", "substr(", "uc(", "lc("}

// NeedsLookup reports whether expr must bypass the mechanical emitter in
// favor of the registry: module-qualified calls, builtins appearing in a
// call-shaped context, multi-line source, or two or more regex delimiters
// on one line.
func NeedsLookup(expr string) bool {
	if strings.Contains(expr, "Image::ExifTool::") {
		return true
	}
	for _, b := range builtinsRequiringLookup {
		if strings.Contains(expr, b) {
			return true
		}
	}
	if strings.Count(expr, "\n") > 0 {
		return true
	}
	if strings.Contains(expr, "=~") && strings.Count(expr, "/") >= 2 {
		return true
	}
	return false
}
