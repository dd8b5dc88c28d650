package main

import "testing"

func TestCloseEnoughRespectsAbsoluteAndRelativeTolerance(t *testing.T) {
	if !closeEnough(100.004, 100.0, 0.001, 0.01) {
		t.Fatalf("expected within atol=0.01")
	}
	if closeEnough(100.5, 100.0, 0.001, 0.01) {
		t.Fatalf("expected outside tolerance")
	}
	if !closeEnough(1000.5, 1000.0, 0.001, 0.01) {
		t.Fatalf("expected within rtol=0.001 of 1000 (+-1.0)")
	}
}

func TestErrRequiredFlagMessage(t *testing.T) {
	err := errRequiredFlag("-inp")
	if err.Error() != "missing required flag -inp" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
