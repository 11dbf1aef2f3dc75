package components

import (
	"math"
	"strings"
	"testing"
)

func TestEmbeddedRailDatabase(t *testing.T) {
	rails := Rails()
	if len(rails) < 2 {
		t.Fatalf("expected at least 2 embedded profiles, got %d", len(rails))
	}

	uic60, ok := rails["UIC60"]
	if !ok {
		t.Fatal("UIC60 missing from embedded database")
	}
	if uic60.E != 2.1e11 {
		t.Errorf("UIC60 E: expected 2.1e11, got %v", uic60.E)
	}
	if uic60.Mr != 60.2 {
		t.Errorf("UIC60 mr: expected 60.2, got %v", uic60.Mr)
	}
	if math.Abs(uic60.Iyr-3.0383e-5) > 1e-12 {
		t.Errorf("UIC60 Iyr: expected 3.0383e-5, got %v", uic60.Iyr)
	}
	if math.Abs(uic60.BendingStiffness()-2.1e11*3.0383e-5) > 1 {
		t.Errorf("unexpected bending stiffness: %v", uic60.BendingStiffness())
	}
}

func TestRailByNameUnknown(t *testing.T) {
	if _, err := RailByName("UIC999"); err == nil {
		t.Error("expected an error for an unknown profile")
	}
}

func TestLoadRailTableCommaDecimals(t *testing.T) {
	table := "name;E;G;nu;kap;mr;rho;etar;fresr;dr;Iyr;Izr;Itr;Ar;Asr;Vr\n" +
		"TEST;2,1e11;8,1e10;0,3;0,4;60,2;7850;0,01;1000;1000;3,0383e-5;5,123e-6;2,092e-6;7,67e-3;0,688;7,67e-3\n"

	rails, err := LoadRailTable(strings.NewReader(table))
	if err != nil {
		t.Fatalf("LoadRailTable failed: %v", err)
	}
	r := rails["TEST"]
	if math.Abs(r.Nu-0.3) > 1e-12 {
		t.Errorf("expected nu 0.3, got %v", r.Nu)
	}
	if math.Abs(r.Mr-60.2) > 1e-12 {
		t.Errorf("expected mr 60.2, got %v", r.Mr)
	}
}

func TestLoadRailTableBadHeader(t *testing.T) {
	table := "name;E;G\nUIC60;1;2\n"
	if _, err := LoadRailTable(strings.NewReader(table)); err == nil {
		t.Error("expected an error for a malformed header")
	}
}

func TestPadVerticalDamping(t *testing.T) {
	viscous := DiscrPad{Sp: [2]float64{1.8e8, 0}, Dp: [2]float64{3.0e4, 0}}
	if viscous.VerticalDamping() != 3.0e4 {
		t.Errorf("expected explicit damping 3e4, got %v", viscous.VerticalDamping())
	}

	lossy := DiscrPad{Sp: [2]float64{1.8e8, 0}, Etap: 0.25, Fresp: [2]float64{500, 0}}
	want := 0.25 * 1.8e8 / (2 * math.Pi * 500)
	if math.Abs(lossy.VerticalDamping()-want) > 1e-9 {
		t.Errorf("expected derived damping %v, got %v", want, lossy.VerticalDamping())
	}
}
