package pres

import "testing"

func TestBlocksPartitionsBySign(t *testing.T) {
	res := &RES{
		Equations: []Equation{
			{Sign: Mu, Name: "X1"},
			{Sign: Mu, Name: "X2"},
			{Sign: Nu, Name: "X3"},
			{Sign: Mu, Name: "X4"},
		},
	}
	blocks := res.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("Blocks() returned %d blocks, want 3", len(blocks))
	}
	want := []Block{
		{Sign: Mu, Start: 0, End: 2},
		{Sign: Nu, Start: 2, End: 3},
		{Sign: Mu, Start: 3, End: 4},
	}
	for i, b := range want {
		if blocks[i] != b {
			t.Errorf("blocks[%d] = %+v, want %+v", i, blocks[i], b)
		}
	}
}

func TestBlocksSingleSign(t *testing.T) {
	res := &RES{Equations: []Equation{{Sign: Nu, Name: "X"}}}
	blocks := res.Blocks()
	if len(blocks) != 1 || blocks[0] != (Block{Sign: Nu, Start: 0, End: 1}) {
		t.Errorf("Blocks() = %+v, want a single [0,1) Nu block", blocks)
	}
}

func TestLookupEquationAndIndexOf(t *testing.T) {
	res := &RES{Equations: []Equation{
		{Name: "X1", Sign: Mu},
		{Name: "X2", Sign: Nu},
	}}

	if _, ok := res.LookupEquation("X3"); ok {
		t.Error("LookupEquation(X3) should fail, no such equation")
	}
	eq, ok := res.LookupEquation("X2")
	if !ok || eq.Sign != Nu {
		t.Errorf("LookupEquation(X2) = %+v, %v", eq, ok)
	}

	if got := res.IndexOf("X1"); got != 0 {
		t.Errorf("IndexOf(X1) = %d, want 0", got)
	}
	if got := res.IndexOf("X3"); got != -1 {
		t.Errorf("IndexOf(X3) = %d, want -1", got)
	}
}

func TestSignString(t *testing.T) {
	if Mu.String() != "mu" {
		t.Errorf("Mu.String() = %q, want mu", Mu.String())
	}
	if Nu.String() != "nu" {
		t.Errorf("Nu.String() = %q, want nu", Nu.String())
	}
}

func TestVarStringWithAndWithoutArgs(t *testing.T) {
	bare := Var{Name: "X"}
	if bare.String() != "X" {
		t.Errorf("bare Var.String() = %q, want X", bare.String())
	}
	applied := Var{Name: "X", Args: []DataExpr{DataVar{Name: "n", SortName: RealSort}, DataVar{Name: "m", SortName: RealSort}}}
	if applied.String() != "X(n, m)" {
		t.Errorf("applied Var.String() = %q, want X(n, m)", applied.String())
	}
}
