package argumentum

import (
	"github.com/xiaohunqupo/argumentum/argio"
)

// TargetID identifies the program variable an option writes to. Two options
// bound to the same variable compare equal and share one assignment counter.
type TargetID struct {
	typeName string
	target   any
}

// Environment is handed to assignment actions while a parse is running. It
// gives actions access to the parser's diagnostics and lets them stop the
// parse early.
type Environment struct {
	res *resultBuilder
	io  *argio.Manager
}

// IO returns the parser's output manager.
func (e *Environment) IO() *argio.Manager {
	return e.io
}

// ExitParser requests that the parse stops after the current token.
func (e *Environment) ExitParser() {
	e.res.requestExit()
}

// NotifyHelpWasShown records that help output was produced, so the caller
// can tell a help exit apart from an error exit.
func (e *Environment) NotifyHelpWasShown() {
	e.res.helpShown = true
}

// AssignAction is a user-supplied action that replaces the default
// convert-and-assign behavior of an option.
type AssignAction func(raw string, env *Environment) error

// Value binds one externally owned variable. The typed behavior (conversion,
// default assignment, reset) is captured in closures when the binding is
// created, so the parse engine never inspects the bound type.
type Value struct {
	assignCount int
	badArgument bool
	occurrences int

	id       TargetID
	isVector bool

	assign   func(text string, env *Environment) error
	setAny   func(v any) bool
	checkAny func(v any) bool
	clear    func()
}

// SetValue converts text and writes it into the bound variable. On
// conversion failure the variable is left untouched and the error flag is
// set.
func (v *Value) SetValue(text string, env *Environment) error {
	if err := v.assign(text, env); err != nil {
		v.badArgument = true
		return err
	}
	v.assignCount++
	return nil
}

// AssignCount reports how many assignments were made through this value
// during the current parse, totalled across every option that shares the
// underlying variable.
func (v *Value) AssignCount() int {
	return v.assignCount
}

// WasAssigned reports whether any assignment happened during this parse.
func (v *Value) WasAssigned() bool {
	return v.assignCount > 0
}

// HadError reports whether a conversion failed during this parse.
func (v *Value) HadError() bool {
	return v.badArgument
}

// TargetID returns the identity of the bound variable.
func (v *Value) TargetID() TargetID {
	return v.id
}

func (v *Value) markBadArgument() {
	v.badArgument = true
}

// noteAssigned records an assignment made outside the default conversion
// path (custom actions).
func (v *Value) noteAssigned() {
	v.assignCount++
}

// onOptionStarted is called once per option occurrence, before any of the
// occurrence's arguments are consumed.
func (v *Value) onOptionStarted() {
	v.occurrences++
}

// applyDefault writes def into the bound variable when nothing was assigned
// during the parse. It reports whether the default was type-compatible.
func (v *Value) applyDefault(def any) bool {
	if v.assignCount > 0 {
		return true
	}
	return v.setAny(def)
}

// Reset restores the bound variable to its empty representation and clears
// the per-parse counters. Called at the start of every parse.
func (v *Value) Reset() {
	v.clear()
	v.assignCount = 0
	v.badArgument = false
	v.occurrences = 0
}

// Optional holds a value that records whether it was ever set. Binding an
// Optional lets callers distinguish "not given" from a zero value.
type Optional[T any] struct {
	value T
	has   bool
}

// Get returns the held value and whether it was set.
func (o *Optional[T]) Get() (T, bool) {
	return o.value, o.has
}

// Value returns the held value, or the zero value when unset.
func (o *Optional[T]) Value() T {
	return o.value
}

// Has reports whether a value was set.
func (o *Optional[T]) Has() bool {
	return o.has
}

// Set stores a value.
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.has = true
}

// Clear removes the held value.
func (o *Optional[T]) Clear() {
	var zero T
	o.value = zero
	o.has = false
}
