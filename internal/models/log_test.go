package models

import "testing"

func TestNormalizeNote(t *testing.T) {
	if NormalizeNote("") != nil {
		t.Error("empty note must normalize to nil")
	}
	n := NormalizeNote("slept in")
	if n == nil || *n != "slept in" {
		t.Errorf("NormalizeNote = %v", n)
	}
}
