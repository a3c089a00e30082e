package plan

import "testing"

func TestResolveKnownCodes(t *testing.T) {
	resolver := NewResolver("PLN_premium", "PLN_pro")

	if got := resolver.Resolve("PLN_premium"); got != KeyPremium {
		t.Fatalf("expected premium, got %s", got)
	}
	if got := resolver.Resolve("PLN_pro"); got != KeyPro {
		t.Fatalf("expected pro, got %s", got)
	}
}

func TestResolveUnknownCodes(t *testing.T) {
	resolver := NewResolver("PLN_premium", "PLN_pro")

	for _, code := range []string{"", "  ", "PLN_other", "pln_premium"} {
		if got := resolver.Resolve(code); got != KeyUnknown {
			t.Fatalf("expected unknown for %q, got %s", code, got)
		}
	}
}

func TestResolveEmptyConfigNeverMatchesEmptyCode(t *testing.T) {
	resolver := NewResolver("", "")

	if got := resolver.Resolve(""); got != KeyUnknown {
		t.Fatalf("expected unknown for empty code with empty config, got %s", got)
	}
}
