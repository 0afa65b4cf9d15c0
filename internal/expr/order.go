package expr

// Compare imposes a total order on Expr sufficient to sort the children of
// a commutative node deterministically (spec.md §4.1). It is a tool for
// canonicalisation, not a mathematical order: Compare(Const(1), Const(2))
// being negative says nothing about magnitude beyond coincidence.
//
// Tiebreak order: variant rank (Tag) first. Within a variant, Const compares
// by value and Var by symbol id; Sum and Product compare entry by entry
// (body then coefficient, base then power); Derivative, Integral, ForAll,
// Exists, Summation and BigProduct compare their bound variable id before
// any child, not after; every other variant compares its children pairwise,
// a shorter child list ordering first on a common prefix.
func Compare(a, b Expr) int {
	if a.Tag() != b.Tag() {
		return cmpInt(int(a.Tag()), int(b.Tag()))
	}
	switch at := a.(type) {
	case *Const:
		return at.Value.Cmp(b.(*Const).Value)
	case *Var:
		return cmpInt(int(at.Sym), int(b.(*Var).Sym))
	case piConst, eConst:
		return 0
	case *Sum:
		return compareSum(at, b.(*Sum))
	case *Product:
		return compareProduct(at, b.(*Product))
	case *Derivative:
		bt := b.(*Derivative)
		if c := cmpInt(int(at.Var), int(bt.Var)); c != 0 {
			return c
		}
		return Compare(at.Body, bt.Body)
	case *Integral:
		bt := b.(*Integral)
		if c := cmpInt(int(at.Var), int(bt.Var)); c != 0 {
			return c
		}
		return Compare(at.Body, bt.Body)
	case *ForAll:
		bt := b.(*ForAll)
		return compareBinder(int(at.Var), at.Domain, at.Body, int(bt.Var), bt.Domain, bt.Body)
	case *Exists:
		bt := b.(*Exists)
		return compareBinder(int(at.Var), at.Domain, at.Body, int(bt.Var), bt.Domain, bt.Body)
	case *Summation:
		bt := b.(*Summation)
		return compareTriBinder(at.Var, at.From, at.To, at.Body, bt.Var, bt.From, bt.To, bt.Body)
	case *BigProduct:
		bt := b.(*BigProduct)
		return compareTriBinder(at.Var, at.From, at.To, at.Body, bt.Var, bt.From, bt.To, bt.Body)
	default:
		return compareChildren(a.Children(), b.Children())
	}
}

func compareChildren(as, bs []Expr) int {
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		if c := Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(as), len(bs))
}

func compareSum(a, b *Sum) int {
	n := len(a.Terms)
	if len(b.Terms) < n {
		n = len(b.Terms)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a.Terms[i].Body, b.Terms[i].Body); c != 0 {
			return c
		}
		if c := a.Terms[i].Coeff.Cmp(b.Terms[i].Coeff); c != 0 {
			return c
		}
	}
	return cmpInt(len(a.Terms), len(b.Terms))
}

func compareProduct(a, b *Product) int {
	n := len(a.Factors)
	if len(b.Factors) < n {
		n = len(b.Factors)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a.Factors[i].Base, b.Factors[i].Base); c != 0 {
			return c
		}
		if c := Compare(a.Factors[i].Power, b.Factors[i].Power); c != 0 {
			return c
		}
	}
	return cmpInt(len(a.Factors), len(b.Factors))
}

func compareBinder(avar int, adomain, abody Expr, bvar int, bdomain, bbody Expr) int {
	if c := cmpInt(avar, bvar); c != 0 {
		return c
	}
	switch {
	case adomain == nil && bdomain == nil:
		// fallthrough to body comparison
	case adomain == nil:
		return -1
	case bdomain == nil:
		return 1
	default:
		if c := Compare(adomain, bdomain); c != 0 {
			return c
		}
	}
	return Compare(abody, bbody)
}

func compareTriBinder(avar SymbolID, afrom, ato, abody Expr, bvar SymbolID, bfrom, bto, bbody Expr) int {
	if c := cmpInt(int(avar), int(bvar)); c != 0 {
		return c
	}
	if c := Compare(afrom, bfrom); c != 0 {
		return c
	}
	if c := Compare(ato, bto); c != 0 {
		return c
	}
	return Compare(abody, bbody)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SortExprs sorts a slice of Expr in place by Compare, for the
// canonicaliser's commutative-argument ordering (spec.md §4.2).
func SortExprs(es []Expr) {
	insertionSort(es, func(i, j int) bool { return Compare(es[i], es[j]) < 0 })
}

// insertionSort is a small stable sort so this package has no dependency on
// sort's interface boilerplate for the handful of children a node ever has.
func insertionSort(es []Expr, less func(i, j int) bool) {
	for i := 1; i < len(es); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			es[j], es[j-1] = es[j-1], es[j]
		}
	}
}
