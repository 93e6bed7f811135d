package models

import (
	"reflect"
	"testing"
)

func fullValues() map[string]float64 {
	m := make(map[string]float64, len(FeatureNames))
	for i, n := range FeatureNames {
		m[n] = float64(i)
	}
	m["Amount"] = 149.62
	return m
}

func TestVectorNaturalOrder(t *testing.T) {
	tx := NewTransaction(fullValues())
	got, err := tx.Vector(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 30 || got[0] != 0 || got[1] != 1 || got[29] != 149.62 {
		t.Fatalf("unexpected vector %v", got)
	}
}

func TestVectorFollowsDeclaredOrder(t *testing.T) {
	tx := NewTransaction(fullValues())
	got, err := tx.Vector([]string{"Amount", "V28", "Time"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []float64{149.62, 28, 0}) {
		t.Fatalf("unexpected vector %v", got)
	}
}

func TestVectorUnknownColumn(t *testing.T) {
	tx := NewTransaction(fullValues())
	if _, err := tx.Vector([]string{"Time", "Merchant"}); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}

func TestVectorMissingColumn(t *testing.T) {
	v := fullValues()
	delete(v, "V7")
	tx := NewTransaction(v)
	if _, err := tx.Vector(nil); err == nil {
		t.Fatalf("expected error for missing column")
	}
}

func TestNewTransactionKeepsExplicitZero(t *testing.T) {
	tx := NewTransaction(map[string]float64{"Time": 0, "Ignored": 5})
	if tx.Time == nil || *tx.Time != 0 {
		t.Fatalf("explicit zero lost")
	}
	if got := tx.Values(); len(got) != 1 {
		t.Fatalf("unexpected values %v", got)
	}
}

func TestRiskFromProbabilityBoundary(t *testing.T) {
	cases := map[float64]RiskLevel{0: RiskLow, 0.0327: RiskLow, 0.8: RiskLow, 0.8000001: RiskHigh, 0.95: RiskHigh, 1: RiskHigh}
	for p, want := range cases {
		if got := RiskFromProbability(p); got != want {
			t.Fatalf("p=%v: got %s want %s", p, got, want)
		}
	}
}
