package cpf

import "testing"

func TestValidate_KnownGood(t *testing.T) {
	if !Validate("52998224725") {
		t.Fatalf("expected valid cpf")
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []string{
		"",
		"123",
		"529982247251",  // too long
		"5299822472a",   // non-digit
		"00000000000",   // uniform
		"11111111111",   // uniform
		"52998224724",   // wrong second check digit
		"52998224735",   // wrong first check digit
	}
	for _, c := range cases {
		if Validate(c) {
			t.Fatalf("expected %q to be invalid", c)
		}
	}
}

func TestGenerate_ProducesValid(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := Generate()
		if len(c) != 11 {
			t.Fatalf("expected 11 digits, got %q", c)
		}
		if !Validate(c) {
			t.Fatalf("generated cpf %q failed validation", c)
		}
	}
}
