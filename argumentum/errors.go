package argumentum

import "fmt"

// Declaration errors report mistakes in the parser definition itself. They
// surface from the declaration calls and again from ParseArgs, so that a
// misconfigured parser never silently parses.

// OptionNameError reports an unusable option or parameter name.
type OptionNameError struct {
	Name   string
	Reason string
}

func (e *OptionNameError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid argument name: %s", e.Reason)
	}
	return fmt.Sprintf("invalid argument name '%s': %s", e.Name, e.Reason)
}

// DuplicateOptionError reports a name already claimed by another option.
type DuplicateOptionError struct {
	Name string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("option '%s' is already defined", e.Name)
}

// DuplicateCommandError reports a command name registered twice.
type DuplicateCommandError struct {
	Name string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command '%s' is already defined", e.Name)
}

// CommandError reports an unusable command declaration.
type CommandError struct {
	Name   string
	Reason string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("invalid command '%s': %s", e.Name, e.Reason)
}

// GroupKindError reports a group redeclared with a different kind.
type GroupKindError struct {
	Name string
}

func (e *GroupKindError) Error() string {
	return fmt.Sprintf("group '%s' was already defined with a different kind", e.Name)
}

// RequiredExclusiveError reports a required option inside an exclusive
// group, a combination that can never be satisfied together with the
// group's constraint.
type RequiredExclusiveError struct {
	Option string
	Group  string
}

func (e *RequiredExclusiveError) Error() string {
	return fmt.Sprintf("required option '%s' must not be in exclusive group '%s'", e.Option, e.Group)
}

// DefaultTypeError reports a default value whose type does not match the
// bound variable.
type DefaultTypeError struct {
	Name string
}

func (e *DefaultTypeError) Error() string {
	return fmt.Sprintf("default value for '%s' does not match the bound type", e.Name)
}
