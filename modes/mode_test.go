package modes

import "testing"

func TestModeString(t *testing.T) {
	if str := ModeProduction.String(); str != "production" {
		t.Fatalf("got %s", str)
	}
	if str := ModeDevelopment.String(); str != "development" {
		t.Fatalf("got %s", str)
	}
	if str := Mode(0).String(); str != "invalid" {
		t.Fatalf("got %s", str)
	}
}
