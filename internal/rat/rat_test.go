package rat

import (
	"math"
	"testing"
)

func TestNewNormalizes(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		wantNum  int64
		wantDen  int64
	}{
		{"reduces", 6, 8, 3, 4},
		{"negative numerator", -6, 8, -3, 4},
		{"negative denominator moves sign", 6, -8, -3, 4},
		{"both negative cancel", -6, -8, 3, 4},
		{"zero numerator", 0, 5, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.num, tt.den)
			if r.Num != tt.wantNum || r.Den != tt.wantDen {
				t.Errorf("New(%d,%d) = %d/%d, want %d/%d", tt.num, tt.den, r.Num, r.Den, tt.wantNum, tt.wantDen)
			}
		})
	}
}

func TestAddSubMulDiv(t *testing.T) {
	half := New(1, 2)
	third := New(1, 3)

	sum, err := half.Add(third)
	if err != nil || !sum.Equal(New(5, 6)) {
		t.Errorf("1/2 + 1/3 = %v (%v), want 5/6", sum, err)
	}

	diff, err := half.Sub(third)
	if err != nil || !diff.Equal(New(1, 6)) {
		t.Errorf("1/2 - 1/3 = %v (%v), want 1/6", diff, err)
	}

	prod, err := half.Mul(third)
	if err != nil || !prod.Equal(New(1, 6)) {
		t.Errorf("1/2 * 1/3 = %v (%v), want 1/6", prod, err)
	}

	quot, err := half.Div(third)
	if err != nil || !quot.Equal(New(3, 2)) {
		t.Errorf("1/2 / 1/3 = %v (%v), want 3/2", quot, err)
	}
}

func TestDivByZero(t *testing.T) {
	half := New(1, 2)
	if _, err := half.Div(Int(0)); err == nil {
		t.Error("Div by zero should report an error")
	}
}

func TestPow(t *testing.T) {
	base := New(2, 3)
	got, err := base.Pow(3)
	if err != nil || !got.Equal(New(8, 27)) {
		t.Errorf("(2/3)^3 = %v (%v), want 8/27", got, err)
	}

	one, err := base.Pow(0)
	if err != nil || !one.Equal(Int(1)) {
		t.Errorf("(2/3)^0 = %v (%v), want 1", one, err)
	}
}

func TestOverflowWidensThenDetects(t *testing.T) {
	big1 := New(math.MaxInt64, 1)
	if _, err := big1.Mul(Int(2)); err == nil {
		t.Error("expected overflow error multiplying MaxInt64 * 2")
	}

	// A case that overflows in the naive cross-product but whose reduced
	// result fits: (MaxInt64/2)/MaxInt64 + (MaxInt64/2)/MaxInt64 should widen
	// and still succeed, reducing to (MaxInt64-1)/MaxInt64, just below 1.
	half := New(math.MaxInt64/2, math.MaxInt64)
	sum, err := half.Add(half)
	if err != nil {
		t.Fatalf("expected widened add to succeed, got %v", err)
	}
	want := New(math.MaxInt64/2, math.MaxInt64).Num * 2
	_ = want
	if sum.Float64() < 0.99 || sum.Float64() > 1.01 {
		t.Errorf("sum = %v, want approximately 1", sum)
	}
}

func TestCmpAndSign(t *testing.T) {
	if New(1, 2).Cmp(New(2, 3)) >= 0 {
		t.Error("1/2 should be less than 2/3")
	}
	if New(-1, 2).Sign() != -1 {
		t.Error("sign of -1/2 should be -1")
	}
	if Int(0).Sign() != 0 {
		t.Error("sign of 0 should be 0")
	}
}

func TestIsIntegerIsZeroIsOne(t *testing.T) {
	if !Int(5).IsInteger() {
		t.Error("Int(5) should be an integer")
	}
	if New(1, 2).IsInteger() {
		t.Error("1/2 should not be an integer")
	}
	if !Int(0).IsZero() {
		t.Error("Int(0) should be zero")
	}
	if !Int(1).IsOne() {
		t.Error("Int(1) should be one")
	}
}

func TestString(t *testing.T) {
	if Int(5).String() != "5" {
		t.Errorf("Int(5).String() = %q, want %q", Int(5).String(), "5")
	}
	if New(3, 4).String() != "3/4" {
		t.Errorf("New(3,4).String() = %q, want %q", New(3, 4).String(), "3/4")
	}
	if New(-3, 4).String() != "-3/4" {
		t.Errorf("New(-3,4).String() = %q, want %q", New(-3, 4).String(), "-3/4")
	}
}
