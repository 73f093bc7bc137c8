package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chazu/massing/pkg/compose"
	"github.com/chazu/massing/pkg/footprint"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites scenario source into something zygomys reads:
//
//  1. Keywords become marked strings: :arm-width -> "__kw_arm-width".
//     Builtins recognise the marker, and no keyword symbols need to be
//     registered as globals.
//  2. Kebab-case identifiers become snake_case: half-width -> half_width.
//     zygomys reads a bare hyphen as subtraction.
//  3. Line comments starting with ; become // comments.
//
// String literals pass through untouched.
func preprocessSource(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b)+len(b)/4)
	for i := 0; i < len(b); {
		switch c := b[i]; {
		case c == '"' || c == '`':
			end := stringEnd(b, i)
			out = append(out, b[i:end]...)
			i = end

		case c == ';':
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			out = append(out, '/', '/')
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}

		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++

		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

// stringEnd returns the index just past the string literal starting at
// b[start]. Double-quoted strings honour backslash escapes; backtick
// strings are raw. An unterminated literal runs to the end of input.
func stringEnd(b []byte, start int) int {
	quote := b[start]
	i := start + 1
	for i < len(b) && b[i] != quote {
		if quote == '"' && b[i] == '\\' {
			i++
		}
		i++
	}
	if i < len(b) {
		i++
	}
	return min(i, len(b))
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isIdentChar(c) || c == '-'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Scenario references
// ---------------------------------------------------------------------------

// scenario collects the requests declared by one evaluation.
type scenario struct {
	requests []compose.Request
}

func (sc *scenario) add(r compose.Request) *sexpScenario {
	sc.requests = append(sc.requests, r)
	return &sexpScenario{index: len(sc.requests) - 1, label: r.Label()}
}

// sexpScenario is returned by box and cross so scripts can bind the result.
type sexpScenario struct {
	index int
	label string
}

func (s *sexpScenario) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(scenario %d %q)", s.index, s.label)
}
func (s *sexpScenario) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// Keyword at end with no value.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// check rejects positional arguments and keywords outside allowed.
func (a kwArgs) check(fn string, allowed ...string) error {
	if len(a.positional) > 0 {
		return fmt.Errorf("%s: unexpected positional argument %s", fn, a.positional[0].SexpString(nil))
	}
	var unknown []string
	for k := range a.kw {
		found := false
		for _, name := range allowed {
			if k == name {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, ":"+k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%s: unknown keyword %s", fn, strings.Join(unknown, ", "))
	}
	return nil
}

// floatField binds a numeric keyword to its destination.
type floatField struct {
	key string
	dst *float64
}

// floats reads the numeric keywords that are present, in field order.
func (a kwArgs) floats(fn string, fields []floatField) error {
	for _, f := range fields {
		v, ok := a.kw[f.key]
		if !ok {
			continue
		}
		n, err := toFloat64(v)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", fn, f.key, err)
		}
		*f.dst = n
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a plain string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok && !strings.HasPrefix(str.S, kwPrefix) {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_walls) and plain strings ("walls").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scenario builtins into a zygomys
// environment. Each builtin appends one request to sc.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
// Dimensions are not validated here; the composition driver does that so
// scripts and flags report the same errors.
func registerBuiltins(env *zygo.Zlisp, sc *scenario) {

	// -----------------------------------------------------------------------
	// (box :width 10 :depth 10 :height 10 :radius 1 :name "cube")
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.check("box", "width", "depth", "height", "radius", "name"); err != nil {
			return zygo.SexpNull, err
		}

		req := compose.Request{Shape: compose.ShapeBox, Mode: compose.ModeSpheres}
		if err := pa.floats("box", []floatField{
			{"width", &req.Box.Width},
			{"depth", &req.Box.Depth},
			{"height", &req.Box.Height},
			{"radius", &req.Box.Radius},
		}); err != nil {
			return zygo.SexpNull, err
		}
		if err := nameKW(pa, "box", &req); err != nil {
			return zygo.SexpNull, err
		}

		return sc.add(req), nil
	})

	// -----------------------------------------------------------------------
	// (cross :central-width 4 :central-depth 4 :arm-width 2 :arm-depth 3
	//        :height 5 :wall 0.5 :radius 1 :mode :walls :name "plan")
	//
	// Without :mode, a wall thickness selects walls, a radius selects
	// spheres, and neither selects the contour.
	// -----------------------------------------------------------------------
	env.AddFunction("cross", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.check("cross", "central-width", "central-depth", "arm-width", "arm-depth",
			"height", "wall", "radius", "mode", "name"); err != nil {
			return zygo.SexpNull, err
		}

		var c footprint.Cross
		if err := pa.floats("cross", []floatField{
			{"central-width", &c.CentralWidth},
			{"central-depth", &c.CentralDepth},
			{"arm-width", &c.ArmWidth},
			{"arm-depth", &c.ArmDepth},
			{"height", &c.Height},
			{"wall", &c.WallThickness},
			{"radius", &c.Radius},
		}); err != nil {
			return zygo.SexpNull, err
		}

		req := compose.Request{Shape: compose.ShapeCross, Cross: c}
		switch {
		case pa.kw["mode"] != nil:
			s, err := toKeywordString(pa.kw["mode"])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cross: mode: %w", err)
			}
			m, err := compose.ParseMode(s)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cross: mode: %w", err)
			}
			req.Mode = m
		case c.WallThickness != 0:
			req.Mode = compose.ModeWalls
		case c.Radius != 0:
			req.Mode = compose.ModeSpheres
		default:
			req.Mode = compose.ModeContour
		}
		if err := nameKW(pa, "cross", &req); err != nil {
			return zygo.SexpNull, err
		}

		return sc.add(req), nil
	})
}

// nameKW copies the optional :name keyword into req.
func nameKW(pa kwArgs, fn string, req *compose.Request) error {
	v, ok := pa.kw["name"]
	if !ok {
		return nil
	}
	s, err := toString(v)
	if err != nil {
		return fmt.Errorf("%s: name: %w", fn, err)
	}
	req.Name = s
	return nil
}
