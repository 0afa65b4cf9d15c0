package expr

// Complexity returns a recursive node-count weighted by operator, used by
// the simplify loop and MCTS goal predicate to judge whether a rewrite made
// progress (spec.md §4.1 and §4.9). Weights: atoms 1, arithmetic +1 (i.e.
// the node itself counts 1 plus its children), trig +2, integral +8,
// derivative +5, summation +6, factorial +4; any other node not explicitly
// weighted costs 1 plus its children, matching "arithmetic".
func Complexity(e Expr) int {
	self := 1
	switch e.Tag() {
	case TagSin, TagCos, TagTan, TagArcsin, TagArccos, TagArctan:
		self = 2
	case TagIntegral:
		self = 8
	case TagDerivative:
		self = 5
	case TagSummation, TagBigProduct:
		self = 6
	case TagFactorial:
		self = 4
	}
	total := self
	for _, c := range e.Children() {
		total += Complexity(c)
	}
	return total
}

// Depth returns the number of edges on the longest root-to-leaf path.
func Depth(e Expr) int {
	cs := e.Children()
	if len(cs) == 0 {
		return 0
	}
	max := 0
	for _, c := range cs {
		if d := Depth(c); d > max {
			max = d
		}
	}
	return max + 1
}

// FreeVars collects the set of symbol ids that occur free in e, correctly
// excluding variables captured by ForAll/Exists/Summation/BigProduct/
// Derivative/Integral binders (spec.md §3 invariant 5, §4.1).
func FreeVars(e Expr) map[SymbolID]struct{} {
	out := make(map[SymbolID]struct{})
	freeVarsInto(e, out)
	return out
}

func freeVarsInto(e Expr, out map[SymbolID]struct{}) {
	switch t := e.(type) {
	case *Var:
		out[t.Sym] = struct{}{}
	case *Derivative:
		// Derivative is a binder over its differentiation variable
		// (spec.md §4.13 groups it with ForAll/Exists/Summation/BigProduct
		// for substitution-shadowing purposes); Substitute refuses to
		// rewrite t.Var through it, so FreeVars excludes it symmetrically.
		inner := make(map[SymbolID]struct{})
		freeVarsInto(t.Body, inner)
		delete(inner, t.Var)
		for k := range inner {
			out[k] = struct{}{}
		}
	case *Integral:
		inner := make(map[SymbolID]struct{})
		freeVarsInto(t.Body, inner)
		delete(inner, t.Var)
		for k := range inner {
			out[k] = struct{}{}
		}
	case *ForAll:
		inner := make(map[SymbolID]struct{})
		if t.Domain != nil {
			freeVarsInto(t.Domain, inner)
		}
		freeVarsInto(t.Body, inner)
		delete(inner, t.Var)
		for k := range inner {
			out[k] = struct{}{}
		}
	case *Exists:
		inner := make(map[SymbolID]struct{})
		if t.Domain != nil {
			freeVarsInto(t.Domain, inner)
		}
		freeVarsInto(t.Body, inner)
		delete(inner, t.Var)
		for k := range inner {
			out[k] = struct{}{}
		}
	case *Summation:
		freeVarsInto(t.From, out)
		freeVarsInto(t.To, out)
		inner := make(map[SymbolID]struct{})
		freeVarsInto(t.Body, inner)
		delete(inner, t.Var)
		for k := range inner {
			out[k] = struct{}{}
		}
	case *BigProduct:
		freeVarsInto(t.From, out)
		freeVarsInto(t.To, out)
		inner := make(map[SymbolID]struct{})
		freeVarsInto(t.Body, inner)
		delete(inner, t.Var)
		for k := range inner {
			out[k] = struct{}{}
		}
	default:
		for _, c := range e.Children() {
			freeVarsInto(c, out)
		}
	}
}

// IsFreeIn reports whether sym occurs free in e.
func IsFreeIn(sym SymbolID, e Expr) bool {
	_, ok := FreeVars(e)[sym]
	return ok
}

// Substitute replaces every free occurrence of sym with replacement,
// refusing to descend into a binder that shadows sym (spec.md §3 invariant
// 5, §4.13, §4.7): "substituting a free variable never renames into a
// binder; substitution is a no-op for variables shadowed by an inner
// binder with the same identifier."
func Substitute(e Expr, sym SymbolID, replacement Expr) Expr {
	switch t := e.(type) {
	case *Var:
		if t.Sym == sym {
			return replacement
		}
		return t
	case *Derivative:
		if t.Var == sym {
			return t
		}
		return &Derivative{Body: Substitute(t.Body, sym, replacement), Var: t.Var}
	case *Integral:
		if t.Var == sym {
			return t
		}
		return &Integral{Body: Substitute(t.Body, sym, replacement), Var: t.Var}
	case *ForAll:
		if t.Var == sym {
			return t
		}
		var domain Expr
		if t.Domain != nil {
			domain = Substitute(t.Domain, sym, replacement)
		}
		return &ForAll{Var: t.Var, Domain: domain, Body: Substitute(t.Body, sym, replacement)}
	case *Exists:
		if t.Var == sym {
			return t
		}
		var domain Expr
		if t.Domain != nil {
			domain = Substitute(t.Domain, sym, replacement)
		}
		return &Exists{Var: t.Var, Domain: domain, Body: Substitute(t.Body, sym, replacement)}
	case *Summation:
		from := Substitute(t.From, sym, replacement)
		to := Substitute(t.To, sym, replacement)
		if t.Var == sym {
			return &Summation{Var: t.Var, From: from, To: to, Body: t.Body}
		}
		return &Summation{Var: t.Var, From: from, To: to, Body: Substitute(t.Body, sym, replacement)}
	case *BigProduct:
		from := Substitute(t.From, sym, replacement)
		to := Substitute(t.To, sym, replacement)
		if t.Var == sym {
			return &BigProduct{Var: t.Var, From: from, To: to, Body: t.Body}
		}
		return &BigProduct{Var: t.Var, From: from, To: to, Body: Substitute(t.Body, sym, replacement)}
	case *Sum:
		terms := make([]Term, len(t.Terms))
		for i, term := range t.Terms {
			terms[i] = Term{Coeff: term.Coeff, Body: Substitute(term.Body, sym, replacement)}
		}
		return &Sum{Terms: terms}
	case *Product:
		factors := make([]Factor, len(t.Factors))
		for i, f := range t.Factors {
			factors[i] = Factor{Base: Substitute(f.Base, sym, replacement), Power: Substitute(f.Power, sym, replacement)}
		}
		return &Product{Factors: factors}
	default:
		cs := e.Children()
		if len(cs) == 0 {
			return e
		}
		next := make([]Expr, len(cs))
		for i, c := range cs {
			next[i] = Substitute(c, sym, replacement)
		}
		return e.withChildren(next)
	}
}
