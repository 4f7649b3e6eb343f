package pres

import (
	"math/rand"
	"strconv"
	"strings"
)

// instItem is one pending ground instantiation p(c) waiting to be
// dequeued and expanded (§4.C).
type instItem struct {
	name string
	args []DataExpr
}

// todoQueue is the reachability exploration queue discipline of §4.C,
// grounded on the teacher's pluggable SearchStrategy/LabelingStrategy
// pattern (strategy.go): one small interface, several concrete
// implementations selected through Options.
type todoQueue interface {
	push(item instItem)
	pop() (instItem, bool)
}

// fifoQueue implements BreadthFirst (the default): first in, first out.
type fifoQueue struct{ items []instItem }

func (q *fifoQueue) push(item instItem) { q.items = append(q.items, item) }
func (q *fifoQueue) pop() (instItem, bool) {
	if len(q.items) == 0 {
		return instItem{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// lifoQueue implements DepthFirst: last in, first out.
type lifoQueue struct{ items []instItem }

func (q *lifoQueue) push(item instItem) { q.items = append(q.items, item) }
func (q *lifoQueue) pop() (instItem, bool) {
	n := len(q.items)
	if n == 0 {
		return instItem{}, false
	}
	item := q.items[n-1]
	q.items = q.items[:n-1]
	return item, true
}

// highwayQueue implements Highway(N): at most N pending items; beyond
// that, each insertion replaces a uniformly chosen pending item with
// probability N/n, where n is the total number of insertions seen so
// far. The produced RES is a proper under-approximation: states evicted
// before being dequeued never get an equation (§4.C, §9 "Highway strategy
// and determinism" — the PRNG must be seeded from options.random_seed,
// never wall-clock entropy).
type highwayQueue struct {
	cap   int
	items []instItem
	seen  int
	rng   *rand.Rand
}

func newHighwayQueue(cap int, seed uint64) *highwayQueue {
	return &highwayQueue{cap: cap, rng: rand.New(rand.NewSource(int64(seed)))}
}

func (q *highwayQueue) push(item instItem) {
	q.seen++
	if len(q.items) < q.cap {
		q.items = append(q.items, item)
		return
	}
	// Reservoir sampling: replace a uniformly chosen pending slot with
	// probability cap/seen.
	if q.rng.Intn(q.seen) < q.cap {
		slot := q.rng.Intn(len(q.items))
		q.items[slot] = item
	}
}

func (q *highwayQueue) pop() (instItem, bool) {
	n := len(q.items)
	if n == 0 {
		return instItem{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

func newTodoQueue(opts *Options) todoQueue {
	switch opts.TodoStrategy {
	case DepthFirst:
		return &lifoQueue{}
	case Highway:
		return newHighwayQueue(opts.HighwayCap, opts.RandomSeed)
	default:
		return &fifoQueue{}
	}
}

// instKey renders a ground instantiation p(c) to a canonical string,
// used as the "seen" map key, grounded on the teacher's CallPattern
// normalisation (tabling.go NewCallPattern): a predicate identifier plus
// a canonical argument structure.
func instKey(name string, args []DataExpr) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// presBlockRanks assigns each PRES equation's name the index of its
// maximal same-sign run (§2 GLOSSARY "Block"), used by Instantiate to
// restore block alternation after BFS/DFS emission (§4.C "Block
// ordering").
func presBlockRanks(p *PRES) map[string]int {
	ranks := make(map[string]int, len(p.Equations))
	rank := 0
	for i, eq := range p.Equations {
		if i > 0 && eq.Sign != p.Equations[i-1].Sign {
			rank++
		}
		ranks[eq.Name] = rank
	}
	return ranks
}

// emitted is one instantiated RES equation together with the name of the
// original PRES equation it was instantiated from, carried only so the
// final re-sort (§4.C "Block ordering") can look up its block rank.
type emitted struct {
	eq         Equation
	sourceName string
	order      int
}

// Instantiate implements the PRES->RES instantiator of §4.C: breadth
// (or depth, or highway) first exploration from the initial instantiation,
// minting one fresh RES variable per reachable ground instantiation and
// emitting one RES equation per dequeued instantiation, preserving the
// original fixed-point sign.
func Instantiate(p *PRES, oracle DataOracle, opts *Options) (*RES, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := oracle.Configure(opts.rewriteConfig()); err != nil {
		return nil, wrapErr(OracleFailure, err, "configuring oracle")
	}

	equationByName := make(map[string]Equation, len(p.Equations))
	for _, eq := range p.Equations {
		equationByName[eq.Name] = eq
	}
	ranks := presBlockRanks(p)

	seen := make(map[string]string) // ground instantiation key -> minted RES name
	nameOrder := make(map[string]int)
	nextID := 0

	mint := func(name string, args []DataExpr) (string, bool) {
		key := instKey(name, args)
		if existing, ok := seen[key]; ok {
			return existing, false
		}
		nextID++
		fresh := presFreshName(nextID)
		seen[key] = fresh
		nameOrder[fresh] = nextID
		return fresh, true
	}

	queue := newTodoQueue(opts)

	if _, ok := equationByName[p.InitName]; !ok {
		return nil, newErr(InvalidReference, "initial variable %q is not defined", p.InitName)
	}
	initArgs, err := rewriteArgs(p.InitArgs, oracle)
	if err != nil {
		return nil, err
	}
	initRESName, _ := mint(p.InitName, initArgs)
	queue.push(instItem{name: p.InitName, args: initArgs})

	var emittedEqs []emitted
	maxInst := opts.MaxInstantiations
	if maxInst <= 0 {
		maxInst = defaultMaxInstantiations
	}

	for {
		item, ok := queue.pop()
		if !ok {
			break
		}
		if opts.Cancel != nil && opts.Cancel() {
			return nil, newErr(Unbounded, "instantiation cancelled")
		}
		if opts.TodoStrategy != Highway && len(emittedEqs) >= maxInst {
			return nil, newErr(Unbounded, "reachable set exceeds MaxInstantiations=%d with no Highway cap set", maxInst)
		}

		if opts.Trace != nil {
			opts.Trace(TraceEvent{Phase: "instantiate", Message: "expanding " + instKey(item.name, item.args)})
		}

		def, ok := equationByName[item.name]
		if !ok {
			return nil, newErr(InvalidReference, "equation %q referenced but not defined", item.name)
		}
		if len(def.Params) != len(item.args) {
			return nil, newErr(InvariantViolation, "%q applied to %d arguments, expected %d", item.name, len(item.args), len(def.Params))
		}

		env := make(DataEnv, len(def.Params))
		for i, param := range def.Params {
			env[param.Name] = item.args[i]
		}

		rhs, err := SubstituteData(def.RHS, env, oracle)
		if err != nil {
			return nil, err
		}
		rhs, err = Simplify(rhs, oracle)
		if err != nil {
			return nil, err
		}
		rhs, err = EnumerateQuantifiers(rhs, oracle)
		if err != nil {
			return nil, err
		}
		rhs, err = Simplify(rhs, oracle)
		if err != nil {
			return nil, err
		}

		grounded, err := groundVars(rhs, oracle, func(name string, args []DataExpr) (string, error) {
			targetDef, ok := equationByName[name]
			if !ok {
				return "", newErr(InvalidReference, "equation %q referenced but not defined", name)
			}
			if len(targetDef.Params) != len(args) {
				return "", newErr(InvariantViolation, "%q applied to %d arguments, expected %d", name, len(args), len(targetDef.Params))
			}
			fresh, isNew := mint(name, args)
			if isNew {
				queue.push(instItem{name: name, args: args})
			}
			return fresh, nil
		})
		if err != nil {
			return nil, err
		}

		selfName, _ := mint(item.name, item.args)
		emittedEqs = append(emittedEqs, emitted{
			eq:         Equation{Sign: def.Sign, Name: selfName, RHS: grounded},
			sourceName: item.name,
			order:      nameOrder[selfName],
		})
	}

	stableSortByBlockRank(emittedEqs, ranks)

	res := &RES{InitVar: initRESName}
	for _, e := range emittedEqs {
		res.Equations = append(res.Equations, e.eq)
	}
	return res, nil
}

// defaultMaxInstantiations bounds breadth/depth-first exploration so an
// infinite reachable set (spec.md §4.C ErrorKind::Unbounded) terminates
// as a reported error instead of exhausting memory. The spec defines
// Unbounded in terms of true infiniteness, which is undecidable in
// general; this cap is the implementation's finite approximation of
// that check (see DESIGN.md).
const defaultMaxInstantiations = 200000

func presFreshName(id int) string {
	return "X" + strconv.Itoa(id)
}

func rewriteArgs(args []DataExpr, oracle DataOracle) ([]DataExpr, error) {
	out := make([]DataExpr, len(args))
	for i, a := range args {
		d, err := oracle.Rewrite(a, nil)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "rewriting initial argument %s", a)
		}
		out[i] = d
	}
	return out, nil
}

// stableSortByBlockRank re-sorts emitted equations by the block rank of
// the original PRES equation they were instantiated from, preserving
// dequeue order within a rank (§4.C "Block ordering").
func stableSortByBlockRank(eqs []emitted, ranks map[string]int) {
	// Simple stable insertion sort: the emitted lists involved are the
	// reachable set of one PRES, not a hot path, and insertion sort keeps
	// the stability guarantee obvious without importing sort.Stable's
	// less-obvious interface plumbing.
	for i := 1; i < len(eqs); i++ {
		j := i
		for j > 0 && ranks[eqs[j-1].sourceName] > ranks[eqs[j].sourceName] {
			eqs[j-1], eqs[j] = eqs[j], eqs[j-1]
			j--
		}
	}
}

// groundVars replaces every Var(q, d) in e by Var(mint(q,d), nil),
// obtaining the RES name for each ground instantiation from the mint
// callback, which also enqueues q(d) the first time it is seen (§4.C).
func groundVars(e Expr, oracle DataOracle, mint func(name string, args []DataExpr) (string, error)) (Expr, error) {
	switch n := e.(type) {
	case Data:
		return n, nil
	case Var:
		if len(n.Args) == 0 {
			// A reference to a parameter-free equation: its ground
			// instantiation is q() with no arguments.
			name, err := mint(n.Name, nil)
			if err != nil {
				return nil, err
			}
			return Var{Name: name}, nil
		}
		name, err := mint(n.Name, n.Args)
		if err != nil {
			return nil, err
		}
		return Var{Name: name}, nil
	case Minus:
		inner, err := groundVars(n.E, oracle, mint)
		if err != nil {
			return nil, err
		}
		return Minus{E: inner}, nil
	case And:
		l, r, err := groundBinary(n.L, n.R, oracle, mint)
		if err != nil {
			return nil, err
		}
		return And{L: l, R: r}, nil
	case Or:
		l, r, err := groundBinary(n.L, n.R, oracle, mint)
		if err != nil {
			return nil, err
		}
		return Or{L: l, R: r}, nil
	case Imp:
		l, r, err := groundBinary(n.L, n.R, oracle, mint)
		if err != nil {
			return nil, err
		}
		return Imp{L: l, R: r}, nil
	case Plus:
		l, r, err := groundBinary(n.L, n.R, oracle, mint)
		if err != nil {
			return nil, err
		}
		return Plus{L: l, R: r}, nil
	case ConstMul:
		inner, err := groundVars(n.E, oracle, mint)
		if err != nil {
			return nil, err
		}
		return ConstMul{K: n.K, E: inner}, nil
	case ConstMulAlt:
		inner, err := groundVars(n.E, oracle, mint)
		if err != nil {
			return nil, err
		}
		return ConstMulAlt{E: inner, K: n.K}, nil
	case Infimum, Supremum, Sum:
		return nil, newErr(Unsupported, "quantifier survived enumeration: %s", e)
	case EqInf:
		inner, err := groundVars(n.E, oracle, mint)
		if err != nil {
			return nil, err
		}
		return EqInf{E: inner}, nil
	case EqNInf:
		inner, err := groundVars(n.E, oracle, mint)
		if err != nil {
			return nil, err
		}
		return EqNInf{E: inner}, nil
	case CondSm:
		c, t, el, err := groundTernary(n.C, n.T, n.E, oracle, mint)
		if err != nil {
			return nil, err
		}
		return CondSm{C: c, T: t, E: el}, nil
	case CondEq:
		c, t, el, err := groundTernary(n.C, n.T, n.E, oracle, mint)
		if err != nil {
			return nil, err
		}
		return CondEq{C: c, T: t, E: el}, nil
	default:
		return nil, newErr(InvariantViolation, "unknown expression variant %T", e)
	}
}

func groundBinary(l, r Expr, oracle DataOracle, mint func(string, []DataExpr) (string, error)) (Expr, Expr, error) {
	nl, err := groundVars(l, oracle, mint)
	if err != nil {
		return nil, nil, err
	}
	nr, err := groundVars(r, oracle, mint)
	if err != nil {
		return nil, nil, err
	}
	return nl, nr, nil
}

func groundTernary(c, t, e Expr, oracle DataOracle, mint func(string, []DataExpr) (string, error)) (Expr, Expr, Expr, error) {
	nc, err := groundVars(c, oracle, mint)
	if err != nil {
		return nil, nil, nil, err
	}
	nt, err := groundVars(t, oracle, mint)
	if err != nil {
		return nil, nil, nil, err
	}
	ne, err := groundVars(e, oracle, mint)
	if err != nil {
		return nil, nil, nil, err
	}
	return nc, nt, ne, nil
}
