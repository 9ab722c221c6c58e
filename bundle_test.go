package funcbox

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckSource_Valid(t *testing.T) {
	out, err := CheckSource("1 + 1")
	if err != nil {
		t.Fatalf("CheckSource: %v", err)
	}
	if !strings.Contains(out, "1 + 1") {
		t.Fatalf("transformed source lost the expression: %q", out)
	}
}

func TestCheckSource_SyntaxError(t *testing.T) {
	_, err := CheckSource("function {")
	if !errors.Is(err, ErrInvalidSource) {
		t.Fatalf("CheckSource error = %v, want ErrInvalidSource", err)
	}
}

func TestCheckSource_LowersModernSyntax(t *testing.T) {
	out, err := CheckSource("var v; v ??= 5; v")
	if err != nil {
		t.Fatalf("CheckSource: %v", err)
	}
	if strings.Contains(out, "??=") {
		t.Fatalf("logical assignment survived lowering: %q", out)
	}
}
