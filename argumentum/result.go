package argumentum

import (
	"fmt"

	"github.com/xiaohunqupo/argumentum/internal/pool"
)

// ErrorKind classifies a problem found while parsing arguments.
type ErrorKind int

const (
	// UnknownOption marks an option-shaped token that matches no
	// declaration.
	UnknownOption ErrorKind = iota
	// ExclusiveOption marks a second option from an exclusive group.
	ExclusiveOption
	// MissingOption marks a required option that never occurred.
	MissingOption
	// MissingOptionGroup marks a required group with no member assigned.
	MissingOptionGroup
	// MissingArgument marks an option that received fewer arguments than
	// its minimum arity.
	MissingArgument
	// ConversionError marks an argument that could not be converted to the
	// bound type.
	ConversionError
	// InvalidChoice marks an argument outside the declared choices.
	InvalidChoice
	// FlagParameter marks an inline value given to an option that takes no
	// arguments.
	FlagParameter
	// ExitRequested marks a parse stopped on request, typically by a help
	// option.
	ExitRequested
	// ActionError marks a custom assignment action that failed.
	ActionError
	// InvalidArgv marks an unusable argument vector.
	InvalidArgv
)

var errorKindNames = map[ErrorKind]string{
	UnknownOption:      "UNKNOWN_OPTION",
	ExclusiveOption:    "EXCLUSIVE_OPTION",
	MissingOption:      "MISSING_OPTION",
	MissingOptionGroup: "MISSING_OPTION_GROUP",
	MissingArgument:    "MISSING_ARGUMENT",
	ConversionError:    "CONVERSION_ERROR",
	InvalidChoice:      "INVALID_CHOICE",
	FlagParameter:      "FLAG_PARAMETER",
	ExitRequested:      "EXIT_REQUESTED",
	ActionError:        "ACTION_ERROR",
	InvalidArgv:        "INVALID_ARGV",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError describes one problem found during a parse. Option holds the
// name the problem relates to; for ActionError it carries the action's
// message instead.
type ParseError struct {
	Option string
	Kind   ErrorKind
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: '%s'", e.Kind, e.Option)
}

// ParseResult reports the outcome of parsing one argument vector.
type ParseResult struct {
	// Errors lists every problem found, in the order of detection.
	Errors []ParseError
	// Ignored lists plain arguments that no positional could consume.
	Ignored []string
	// ExitRequested is true when an option stopped the parse, typically
	// after printing help.
	ExitRequested bool
	// HelpWasShown is true when a help option ran during the parse.
	HelpWasShown bool
	// Command names the sub-command that took over the parse, if any.
	Command string
	// CommandOptions holds the options instance the sub-command's factory
	// produced, if a sub-command was parsed.
	CommandOptions CommandOptions

	// commandNames holds the declared names of parsers that merged their
	// outcome into this result, so spelling suggestions for a problem found
	// inside a sub-command rank against the names the user actually faced.
	commandNames []string
}

// Ok reports a clean parse: no errors and no ignored arguments. A help
// exit is clean; any other requested exit carries an EXIT_REQUESTED entry
// and is not.
func (r *ParseResult) Ok() bool {
	return len(r.Errors) == 0 && len(r.Ignored) == 0
}

// resultBuilder accumulates the outcome while parsing. Builders are pooled
// because a parser is often reused in a loop.
type resultBuilder struct {
	errors        []ParseError
	ignored       []string
	exitRequested bool
	helpShown     bool
	command       string
	commandOpts   CommandOptions
	extraNames    []string
}

var builderPool = pool.NewWithReset(
	func() *resultBuilder { return &resultBuilder{} },
	func(b *resultBuilder) { b.reset() },
)

func newResultBuilder() *resultBuilder {
	return builderPool.Get()
}

func (b *resultBuilder) reset() {
	b.errors = b.errors[:0]
	b.ignored = b.ignored[:0]
	b.exitRequested = false
	b.helpShown = false
	b.command = ""
	b.commandOpts = nil
	b.extraNames = b.extraNames[:0]
}

func (b *resultBuilder) addError(option string, kind ErrorKind) {
	b.errors = append(b.errors, ParseError{Option: option, Kind: kind})
}

func (b *resultBuilder) addParseError(err *ParseError) {
	if err != nil {
		b.errors = append(b.errors, *err)
	}
}

func (b *resultBuilder) addIgnored(arg string) {
	b.ignored = append(b.ignored, arg)
}

// requestExit only raises the flag; whether the exit also counts as an
// error depends on help having been shown, which the parser decides after
// the token walk.
func (b *resultBuilder) requestExit() {
	b.exitRequested = true
}

func (b *resultBuilder) hasExitError() bool {
	for _, e := range b.errors {
		if e.Kind == ExitRequested {
			return true
		}
	}
	return false
}

// finish copies the accumulated state into an independent result and
// returns the builder to the pool.
func (b *resultBuilder) finish() ParseResult {
	res := ParseResult{
		ExitRequested:  b.exitRequested,
		HelpWasShown:   b.helpShown,
		Command:        b.command,
		CommandOptions: b.commandOpts,
	}
	if len(b.errors) > 0 {
		res.Errors = make([]ParseError, len(b.errors))
		copy(res.Errors, b.errors)
	}
	if len(b.ignored) > 0 {
		res.Ignored = make([]string, len(b.ignored))
		copy(res.Ignored, b.ignored)
	}
	if len(b.extraNames) > 0 {
		res.commandNames = make([]string, len(b.extraNames))
		copy(res.commandNames, b.extraNames)
	}
	builderPool.Put(b)
	return res
}
