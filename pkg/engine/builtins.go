package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/voxblock/pkg/job"
	"github.com/chazu/voxblock/pkg/voxelize"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites job script source before zygomys sees it:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbols and cannot clash with user variables.
//  2. kebab-case identifiers become snake_case (max-cells -> max_cells),
//     since zygomys reads a hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals (double-quoted and backtick) pass through untouched.
func preprocessSource(source string) string {
	p := &preprocessor{src: []byte(source)}
	p.out = make([]byte, 0, len(source)+len(source)/4)
	for p.i < len(p.src) {
		switch c := p.src[p.i]; {
		case c == '"':
			p.copyQuoted('"', true)
		case c == '`':
			p.copyQuoted('`', false)
		case c == ';':
			p.copyComment()
		case c == ':' && p.peek(1) == '=':
			p.emit(2)
		case c == ':' && isLetter(p.peek(1)):
			p.keyword()
		case c == '-' && p.i > 0 && isIdentChar(p.src[p.i-1]) && isLetter(p.peek(1)):
			p.out = append(p.out, '_')
			p.i++
		default:
			p.emit(1)
		}
	}
	return string(p.out)
}

type preprocessor struct {
	src []byte
	out []byte
	i   int
}

func (p *preprocessor) peek(n int) byte {
	if p.i+n < len(p.src) {
		return p.src[p.i+n]
	}
	return 0
}

// emit copies n bytes through unchanged.
func (p *preprocessor) emit(n int) {
	end := min(p.i+n, len(p.src))
	p.out = append(p.out, p.src[p.i:end]...)
	p.i = end
}

// copyQuoted copies a literal delimited by quote, including both quotes.
func (p *preprocessor) copyQuoted(quote byte, escapes bool) {
	p.emit(1)
	for p.i < len(p.src) && p.src[p.i] != quote {
		if escapes && p.src[p.i] == '\\' {
			p.emit(2)
			continue
		}
		p.emit(1)
	}
	p.emit(1)
}

// copyComment turns ;, ;; etc. into // and copies the rest of the line.
func (p *preprocessor) copyComment() {
	p.out = append(p.out, '/', '/')
	for p.i < len(p.src) && p.src[p.i] == ';' {
		p.i++
	}
	for p.i < len(p.src) && p.src[p.i] != '\n' {
		p.emit(1)
	}
}

func (p *preprocessor) keyword() {
	j := p.i + 1
	for j < len(p.src) && isKWChar(p.src[j]) {
		j++
	}
	p.out = append(p.out, '"')
	p.out = append(p.out, kwPrefix...)
	p.out = append(p.out, p.src[p.i+1:j]...)
	p.out = append(p.out, '"')
	p.i = j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a job.Vec3.
type sexpVec3 struct {
	vec job.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpSolid is an unplaced primitive returned by box, cylinder and sphere
// and consumed by place.
type sexpSolid struct {
	prim job.Primitive
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	switch s.prim.Kind {
	case job.PrimBox:
		return fmt.Sprintf("(box %g %g %g)", s.prim.Size.X, s.prim.Size.Y, s.prim.Size.Z)
	case job.PrimCylinder:
		return fmt.Sprintf("(cylinder :height %g :radius %g)", s.prim.Height, s.prim.Radius)
	default:
		return fmt.Sprintf("(%s :radius %g)", s.prim.Kind, s.prim.Radius)
	}
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpPlacement refers to a primitive already added to the job.
type sexpPlacement struct {
	index int
	name  string
}

func (p *sexpPlacement) SexpString(ps *zygo.PrintState) string {
	if p.name != "" {
		return fmt.Sprintf("(placement %q)", p.name)
	}
	return fmt.Sprintf("(placement %d)", p.index)
}
func (p *sexpPlacement) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
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
			// Trailing keyword with no value: a flag.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// number returns keyword k as a float64, or def when it is absent.
func (a kwArgs) number(fn, k string, def float64) (float64, error) {
	v, ok := a.kw[k]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", fn, k, err)
	}
	return f, nil
}

// vector returns keyword k as a Vec3, or the zero vector when it is absent.
func (a kwArgs) vector(fn, k string) (job.Vec3, error) {
	v, ok := a.kw[k]
	if !ok {
		return job.Vec3{}, nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return job.Vec3{}, fmt.Errorf("%s: %s: %w", fn, k, err)
	}
	return vec, nil
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

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a boolean from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_thin) and plain strings ("thin").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (job.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return job.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts an unplaced primitive.
func toSolid(s zygo.Sexp) (job.Primitive, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.prim, nil
	}
	return job.Primitive{}, fmt.Errorf("expected box, cylinder or sphere, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the job builtins into a zygomys environment.
// They modify j as the script runs.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, j *job.Job) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: job.Vec3{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (mesh "hull.stl" "tower.off")
	// -----------------------------------------------------------------------
	env.AddFunction("mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("mesh requires at least one path")
		}
		for _, a := range args {
			path, err := toString(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("mesh: %w", err)
			}
			j.Meshes = append(j.Meshes, path)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (box 4 3 3) or (box :size (vec3 4 3 3))
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		prim := job.Primitive{Kind: job.PrimBox}
		switch {
		case len(pa.positional) == 3:
			var c [3]float64
			for i, a := range pa.positional {
				f, err := toFloat64(a)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("box: %c: %w", "xyz"[i], err)
				}
				c[i] = f
			}
			prim.Size = job.Vec3{X: c[0], Y: c[1], Z: c[2]}
		case len(pa.positional) == 0:
			size, err := pa.vector("box", "size")
			if err != nil {
				return zygo.SexpNull, err
			}
			prim.Size = size
		default:
			return zygo.SexpNull, fmt.Errorf("box takes 3 dimensions or :size, got %d positional arguments", len(pa.positional))
		}
		return &sexpSolid{prim: prim}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :height 8 :radius 2)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		h, err := pa.number("cylinder", "height", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		r, err := pa.number("cylinder", "radius", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{prim: job.Primitive{Kind: job.PrimCylinder, Height: h, Radius: r}}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere 3) or (sphere :radius 3)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		r, err := pa.number("sphere", "radius", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(pa.positional) == 1 {
			if r, err = toFloat64(pa.positional[0]); err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
			}
		}
		return &sexpSolid{prim: job.Primitive{Kind: job.PrimSphere, Radius: r}}, nil
	})

	// -----------------------------------------------------------------------
	// (place (box 4 3 3) :at (vec3 0 0 19) :rotate (vec3 0 90 0) :name "hull")
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("place requires exactly one solid, got %d", len(pa.positional))
		}
		prim, err := toSolid(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}
		if prim.Translation, err = pa.vector("place", "at"); err != nil {
			return zygo.SexpNull, err
		}
		if prim.Rotation, err = pa.vector("place", "rotate"); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["name"]; ok {
			if prim.Name, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("place: name: %w", err)
			}
		}
		j.Primitives = append(j.Primitives, prim)
		return &sexpPlacement{index: len(j.Primitives) - 1, name: prim.Name}, nil
	})

	// -----------------------------------------------------------------------
	// (scale 2.5)
	// -----------------------------------------------------------------------
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("scale requires exactly 1 argument, got %d", len(args))
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		j.Scale = f
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (mode :thick-smoothed-up)
	// -----------------------------------------------------------------------
	env.AddFunction("mode", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("mode requires exactly 1 argument, got %d", len(args))
		}
		s, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mode: %w", err)
		}
		m, err := voxelize.ParseMode(s)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mode: %w", err)
		}
		j.Mode = m
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (fill true)
	// -----------------------------------------------------------------------
	env.AddFunction("fill", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("fill requires exactly 1 argument, got %d", len(args))
		}
		b, err := toBool(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fill: %w", err)
		}
		j.Fill = b
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (blocks :solid "A" :slope "B" :corner "C" :inverse-corner "D")
	// -----------------------------------------------------------------------
	env.AddFunction("blocks", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("blocks takes keyword arguments only")
		}
		targets := map[string]*string{
			"solid":          &j.Blocks.Solid,
			"slope":          &j.Blocks.Slope,
			"corner":         &j.Blocks.Corner,
			"inverse-corner": &j.Blocks.InverseCorner,
		}
		for k, v := range pa.kw {
			dst, ok := targets[k]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("blocks: unknown family %q", k)
			}
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("blocks: %s: %w", k, err)
			}
			*dst = s
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (output "commands.json") and (preview "cells.stl")
	// -----------------------------------------------------------------------
	for _, target := range []struct {
		fn  string
		dst *string
	}{
		{"output", &j.Output},
		{"preview", &j.Preview},
	} {
		env.AddFunction(target.fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 path, got %d", target.fn, len(args))
			}
			s, err := toString(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", target.fn, err)
			}
			*target.dst = s
			return zygo.SexpNull, nil
		})
	}

	// -----------------------------------------------------------------------
	// (max-cells 1000000)
	// -----------------------------------------------------------------------
	env.AddFunction("max_cells", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("max-cells requires exactly 1 argument, got %d", len(args))
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("max-cells: %w", err)
		}
		j.MaxCells = int(f)
		return zygo.SexpNull, nil
	})
}
