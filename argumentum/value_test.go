package argumentum

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// TestBindScalarRoundTrip tests assignment and reset of a scalar binding
func TestBindScalarRoundTrip(t *testing.T) {
	var num int
	v := Bind(&num)

	if err := v.SetValue("42", nil); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if num != 42 {
		t.Errorf("Expected num=42, got %d", num)
	}
	if v.AssignCount() != 1 {
		t.Errorf("Expected assign count 1, got %d", v.AssignCount())
	}

	v.Reset()
	if v.AssignCount() != 0 {
		t.Errorf("Expected assign count 0 after reset, got %d", v.AssignCount())
	}
	if num != 0 {
		t.Errorf("Expected num=0 after reset, got %d", num)
	}
}

// TestBindConversionFailureLeavesTarget tests that a failed conversion does
// not touch the variable
func TestBindConversionFailureLeavesTarget(t *testing.T) {
	num := 7
	v := Bind(&num)

	if err := v.SetValue("not-a-number", nil); err == nil {
		t.Fatal("Expected a conversion error")
	}
	if num != 7 {
		t.Errorf("Expected num untouched, got %d", num)
	}
	if v.WasAssigned() {
		t.Error("Expected WasAssigned=false after a failed conversion")
	}
	if !v.HadError() {
		t.Error("Expected HadError=true after a failed conversion")
	}
}

// TestBindSliceAppends tests that every assignment appends one element
func TestBindSliceAppends(t *testing.T) {
	var items []string
	v := BindSlice(&items)

	v.SetValue("a", nil)
	v.SetValue("b", nil)
	if len(items) != 2 || items[0] != "a" || items[1] != "b" {
		t.Errorf("Expected items=[a b], got %v", items)
	}

	v.Reset()
	if items != nil {
		t.Errorf("Expected nil slice after reset, got %v", items)
	}
}

// TestBindOptional tests the set/unset distinction
func TestBindOptional(t *testing.T) {
	var port Optional[int]
	v := BindOptional(&port)

	if port.Has() {
		t.Fatal("Expected Optional to start unset")
	}
	if err := v.SetValue("8080", nil); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if got, ok := port.Get(); !ok || got != 8080 {
		t.Errorf("Expected (8080, true), got (%d, %v)", got, ok)
	}

	v.Reset()
	if port.Has() {
		t.Error("Expected Optional unset after reset")
	}
}

// TestBindWithCustomConverter tests an explicit converter
func TestBindWithCustomConverter(t *testing.T) {
	var level int
	v := BindWith(&level, func(s string) (int, error) {
		return len(s), nil
	})

	v.SetValue("warning", nil)
	if level != 7 {
		t.Errorf("Expected level=7, got %d", level)
	}
}

// TestBindDuration tests the built-in duration conversion
func TestBindDuration(t *testing.T) {
	var timeout time.Duration
	v := Bind(&timeout)

	if err := v.SetValue("1m30s", nil); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if timeout != 90*time.Second {
		t.Errorf("Expected 90s, got %v", timeout)
	}
}

// TestBindIntegerBases tests that integers accept prefixed bases
func TestBindIntegerBases(t *testing.T) {
	var num int
	v := Bind(&num)

	v.SetValue("0x10", nil)
	if num != 16 {
		t.Errorf("Expected 16 from '0x10', got %d", num)
	}
	v.SetValue("0b101", nil)
	if num != 5 {
		t.Errorf("Expected 5 from '0b101', got %d", num)
	}
}

// TestUnconvertibleTypeWarns tests the warn-and-skip conversion tier
func TestUnconvertibleTypeWarns(t *testing.T) {
	type opaque struct{ a, b int }

	var errBuf bytes.Buffer
	p := New("test", "")
	p.Config().Err(&errBuf)

	var target opaque
	mustAdd(t, p, Bind(&target), "--opaque").NArgs(1)

	res := mustParse(t, p, []string{"--opaque", "text"})
	if !res.Ok() {
		t.Fatalf("Expected clean parse, got errors %v", res.Errors)
	}
	if (target != opaque{}) {
		t.Errorf("Expected target untouched, got %+v", target)
	}

	msgs := p.IO().Warnings().Messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "not implemented") {
		t.Fatalf("Expected one 'not implemented' warning, got %v", msgs)
	}
	if !strings.Contains(errBuf.String(), "[WARN]") {
		t.Errorf("Expected the warning rendered to the error stream, got %q", errBuf.String())
	}
}

// TestTargetIDIdentity tests that identity follows the bound variable
func TestTargetIDIdentity(t *testing.T) {
	var a, b int
	if Bind(&a).TargetID() != Bind(&a).TargetID() {
		t.Error("Expected equal TargetIDs for one variable")
	}
	if Bind(&a).TargetID() == Bind(&b).TargetID() {
		t.Error("Expected different TargetIDs for different variables")
	}
}

// TestDefaultNotAppliedOverAssignment tests applyDefault precedence
func TestDefaultNotAppliedOverAssignment(t *testing.T) {
	var name string
	v := Bind(&name)

	v.SetValue("given", nil)
	if !v.applyDefault("fallback") {
		t.Fatal("Expected applyDefault to succeed")
	}
	if name != "given" {
		t.Errorf("Expected assignment to win over default, got '%s'", name)
	}
}
