package argumentum

import (
	"slices"
	"strings"
)

// unboundedArgs marks an arity with no upper limit.
const unboundedArgs = -1

// Option describes one declared option or positional parameter. The shape
// is fixed after declaration; only the per-parse assignment state mutates.
type Option struct {
	value *Value

	longName   string
	shortName  string
	help       string
	metavar    string
	positional bool
	required   bool
	minArgs    int
	maxArgs    int // unboundedArgs means no limit
	group      *Group

	defaultValue any
	hasDefault   bool
	envVars      []string
	choices      []string
	flagValue    string
	action       AssignAction

	// per-parse state, reset before every parse
	occurrences    int
	totalArgs      int
	occurrenceArgs int
	starved        bool // an earlier occurrence closed below its minimum
}

func newOption(value *Value) *Option {
	return &Option{value: value, flagValue: "1"}
}

// Name returns the primary name of the option.
func (o *Option) Name() string {
	if o.longName != "" {
		return o.longName
	}
	return o.shortName
}

// HelpName returns the name used when reporting the option to the user.
func (o *Option) HelpName() string {
	return o.Name()
}

func (o *Option) hasName(name string) bool {
	return name != "" && (name == o.longName || name == o.shortName)
}

// Value returns the binding that receives parsed arguments.
func (o *Option) Value() *Value {
	return o.value
}

// IsRequired reports whether the option must be assigned during a parse.
func (o *Option) IsRequired() bool {
	return o.required
}

// Group returns the group the option belongs to, or nil.
func (o *Option) Group() *Group {
	return o.group
}

// ArgumentCounts returns the arity range; max below zero means unbounded.
func (o *Option) ArgumentCounts() (min, max int) {
	return o.minArgs, o.maxArgs
}

func (o *Option) acceptsArguments() bool {
	return o.maxArgs != 0
}

// wasAssigned reflects assignments through every alias of the bound target.
func (o *Option) wasAssigned() bool {
	return o.value.WasAssigned()
}

// needsMoreArguments reports whether the option ended the parse below its
// minimum arity. Positionals are measured across the whole parse, options
// per occurrence.
func (o *Option) needsMoreArguments() bool {
	if o.positional {
		return o.totalArgs < o.minArgs
	}
	if o.starved {
		return true
	}
	return o.occurrences > 0 && o.occurrenceArgs < o.minArgs
}

// canAcceptMore reports whether the current occurrence may consume another
// argument.
func (o *Option) canAcceptMore() bool {
	if o.maxArgs == unboundedArgs {
		return true
	}
	if o.positional {
		return o.totalArgs < o.maxArgs
	}
	return o.occurrenceArgs < o.maxArgs
}

func (o *Option) onOptionStarted() {
	if o.occurrences > 0 && o.occurrenceArgs < o.minArgs {
		o.starved = true
	}
	o.occurrences++
	o.occurrenceArgs = 0
	o.value.onOptionStarted()
}

// acceptValue converts raw and assigns it through the binding. A non-nil
// result describes the failure; the token stream is never aborted. The
// token counts toward the arity even when it is invalid, it was consumed.
func (o *Option) acceptValue(raw string, env *Environment) *ParseError {
	o.totalArgs++
	o.occurrenceArgs++

	if len(o.choices) > 0 && !slices.Contains(o.choices, raw) {
		o.value.markBadArgument()
		return &ParseError{Option: o.HelpName(), Kind: InvalidChoice}
	}

	if o.action != nil {
		if err := o.action(raw, env); err != nil {
			o.value.markBadArgument()
			return &ParseError{Option: err.Error(), Kind: ActionError}
		}
		o.value.noteAssigned()
	} else if err := o.value.SetValue(raw, env); err != nil {
		return &ParseError{Option: o.HelpName(), Kind: ConversionError}
	}
	return nil
}

// acceptFlag assigns the flag value of an arity-0 option.
func (o *Option) acceptFlag(env *Environment) *ParseError {
	if o.action != nil {
		if err := o.action(o.flagValue, env); err != nil {
			o.value.markBadArgument()
			return &ParseError{Option: err.Error(), Kind: ActionError}
		}
		o.value.noteAssigned()
		return nil
	}
	if err := o.value.SetValue(o.flagValue, env); err != nil {
		return &ParseError{Option: o.HelpName(), Kind: ConversionError}
	}
	return nil
}

func (o *Option) hasDefaultValue() bool {
	return o.hasDefault
}

func (o *Option) resetState() {
	o.occurrences = 0
	o.totalArgs = 0
	o.occurrenceArgs = 0
	o.starved = false
	o.value.Reset()
}

// metavarOrDefault derives the placeholder shown in usage fragments.
func (o *Option) metavarOrDefault() string {
	if o.metavar != "" {
		return o.metavar
	}
	name := strings.TrimLeft(o.Name(), "-")
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// OptionConfig configures a declared option or positional parameter.
type OptionConfig struct {
	opt    *Option
	parser *Parser
}

// Help sets the help text.
func (c *OptionConfig) Help(text string) *OptionConfig {
	c.opt.help = text
	return c
}

// Metavar sets the placeholder used in usage fragments.
func (c *OptionConfig) Metavar(metavar string) *OptionConfig {
	c.opt.metavar = metavar
	return c
}

// Required marks the option as mandatory. Positional parameters are always
// required.
func (c *OptionConfig) Required() *OptionConfig {
	c.opt.required = true
	return c
}

// NArgs requires exactly count arguments per occurrence.
func (c *OptionConfig) NArgs(count int) *OptionConfig {
	if count < 0 {
		count = 0
	}
	c.opt.minArgs = count
	c.opt.maxArgs = count
	return c
}

// MinArgs requires at least count arguments, with no upper limit.
func (c *OptionConfig) MinArgs(count int) *OptionConfig {
	if count < 0 {
		count = 0
	}
	c.opt.minArgs = count
	c.opt.maxArgs = unboundedArgs
	return c
}

// NArgsRange accepts between min and max arguments per occurrence.
func (c *OptionConfig) NArgsRange(min, max int) *OptionConfig {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	c.opt.minArgs = min
	c.opt.maxArgs = max
	return c
}

// MaxArgs accepts up to count arguments.
func (c *OptionConfig) MaxArgs(count int) *OptionConfig {
	if count < 0 {
		count = 0
	}
	c.opt.minArgs = 0
	c.opt.maxArgs = count
	return c
}

// Default registers a value assigned after the parse when the option was
// not given. The value must match the bound type.
func (c *OptionConfig) Default(value any) *OptionConfig {
	if !c.opt.value.checkAny(value) {
		c.parser.recordDeclError(&DefaultTypeError{Name: c.opt.Name()})
		return c
	}
	c.opt.defaultValue = value
	c.opt.hasDefault = true
	return c
}

// FromEnv names environment variables consulted, in order, before the
// default value when the option was not given on the command line.
func (c *OptionConfig) FromEnv(vars ...string) *OptionConfig {
	c.opt.envVars = append(c.opt.envVars, vars...)
	return c
}

// Choices restricts the accepted raw argument texts.
func (c *OptionConfig) Choices(values ...string) *OptionConfig {
	c.opt.choices = append(c.opt.choices, values...)
	return c
}

// FlagValue sets the text assigned when an arity-0 option occurs. The
// default is "1".
func (c *OptionConfig) FlagValue(value string) *OptionConfig {
	c.opt.flagValue = value
	return c
}

// Action installs a custom assignment action replacing the default
// convert-and-assign behavior.
func (c *OptionConfig) Action(fn AssignAction) *OptionConfig {
	c.opt.action = fn
	return c
}

// Value returns the binding the option writes through. Options bound to the
// same variable share one binding.
func (c *OptionConfig) Value() *Value {
	return c.opt.value
}
