package billing

import (
	"math"
	"testing"
)

func TestComputeAmountMTK(t *testing.T) {
	mtk, amount := ComputeAmount(10, true, 2, 60)
	if mtk != 120 {
		t.Fatalf("mtk = %v, want 120", mtk)
	}
	if math.Abs(amount-1200) > 1e-9 {
		t.Fatalf("amount = %v, want rate*mt*km = 1200", amount)
	}
}

func TestComputeAmountFlatIgnoresKM(t *testing.T) {
	_, a1 := ComputeAmount(10, false, 3, 60)
	_, a2 := ComputeAmount(10, false, 3, 900)
	if a1 != a2 {
		t.Fatalf("flat amount depends on km: %v vs %v", a1, a2)
	}
	if math.Abs(a1-30) > 1e-9 {
		t.Fatalf("flat amount = %v, want rate*mt = 30", a1)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{117.994, 117.99},
		{117.995, 118},
		{0.1 + 0.2, 0.3},
		{-1.005, -1.01},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRatePerMTZeroGuard(t *testing.T) {
	if _, ok := RatePerMT(500, 0); ok {
		t.Fatal("RatePerMT with zero qty must report not-ok")
	}
	v, ok := RatePerMT(500, 20)
	if !ok || v != 25 {
		t.Fatalf("RatePerMT(500, 20) = %v, %v; want 25, true", v, ok)
	}
}
