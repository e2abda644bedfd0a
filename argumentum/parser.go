package argumentum

import (
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/xiaohunqupo/argumentum/argio"
)

// Parser owns one argument definition and parses argument vectors against
// it. A parser may be reused sequentially; every ParseArgs call resets the
// bound variables first.
type Parser struct {
	def         *definition
	io          *argio.Manager
	activeGroup *Group
	declErr     error
	inVerify    bool
}

// New creates a parser for the named program.
func New(program, description string) *Parser {
	p := &Parser{def: newDefinition(), io: argio.New()}
	p.def.program = program
	p.def.description = description
	return p
}

// Config returns the fluent configuration surface of the parser.
func (p *Parser) Config() *ParserConfig {
	return &ParserConfig{parser: p}
}

// IO returns the output manager used for help, errors and warnings.
func (p *Parser) IO() *argio.Manager {
	return p.io
}

// ParserConfig configures parser-level presentation settings.
type ParserConfig struct {
	parser *Parser
}

// Program sets the program name shown in usage lines.
func (c *ParserConfig) Program(name string) *ParserConfig {
	c.parser.def.program = name
	return c
}

// Usage replaces the generated usage line.
func (c *ParserConfig) Usage(usage string) *ParserConfig {
	c.parser.def.usage = usage
	return c
}

// Description sets the text shown before the argument list in help output.
func (c *ParserConfig) Description(text string) *ParserConfig {
	c.parser.def.description = text
	return c
}

// Epilog sets the text shown after the argument list in help output.
func (c *ParserConfig) Epilog(text string) *ParserConfig {
	c.parser.def.epilog = text
	return c
}

// Out redirects help output.
func (c *ParserConfig) Out(w io.Writer) *ParserConfig {
	c.parser.io.SetOutput(w)
	return c
}

// Err redirects error and warning output.
func (c *ParserConfig) Err(w io.Writer) *ParserConfig {
	c.parser.io.SetError(w)
	return c
}

// Add declares an option or positional parameter writing through value.
// Dash-prefixed names declare an option, others a positional parameter; the
// two kinds must not be mixed in one call. The returned config is always
// usable, but after an error it configures a detached option.
func (p *Parser) Add(value *Value, names ...string) (*OptionConfig, error) {
	if value == nil {
		value = newVoidValue()
	}

	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			cleaned = append(cleaned, name)
		}
	}
	if err := p.checkNames(cleaned); err != nil {
		p.recordDeclError(err)
		return &OptionConfig{opt: newOption(value), parser: p}, err
	}
	positional := !strings.HasPrefix(cleaned[0], "-")

	// Aliases of an already bound variable share its binding, so the
	// assignment counter totals across every spelling.
	if value.id.target != nil {
		for _, opt := range p.def.allOptions() {
			if opt.value.TargetID() == value.TargetID() {
				value = opt.value
				break
			}
		}
	}

	opt := newOption(value)
	for _, name := range cleaned {
		switch {
		case strings.HasPrefix(name, "--"):
			opt.longName = name
		case strings.HasPrefix(name, "-"):
			opt.shortName = name
		default:
			opt.longName = name
		}
	}

	if positional {
		opt.positional = true
		opt.required = true
		if value.isVector {
			opt.minArgs = 0
			opt.maxArgs = unboundedArgs
		} else {
			opt.minArgs = 1
			opt.maxArgs = 1
		}
		if p.activeGroup != nil && !p.activeGroup.exclusive {
			opt.group = p.activeGroup
		}
		p.def.positionals = append(p.def.positionals, opt)
	} else {
		opt.group = p.activeGroup
		p.def.options = append(p.def.options, opt)
	}
	return &OptionConfig{opt: opt, parser: p}, nil
}

func (p *Parser) checkNames(names []string) error {
	if len(names) == 0 {
		return &OptionNameError{Reason: "an argument must have a name"}
	}
	for _, name := range names {
		if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
			return &OptionNameError{Name: name, Reason: "names must not contain whitespace"}
		}
	}
	positional := !strings.HasPrefix(names[0], "-")
	for _, name := range names {
		if strings.HasPrefix(name, "-") == positional {
			return &OptionNameError{Name: name, Reason: "option and positional names must not be mixed"}
		}
		if positional {
			continue
		}
		if strings.HasPrefix(name, "--") {
			if len(name) < 3 {
				return &OptionNameError{Name: name, Reason: "long option names need at least one character"}
			}
		} else if len(name) != 2 {
			return &OptionNameError{Name: name, Reason: "short option names have exactly one character"}
		}
	}
	for _, name := range names {
		if p.def.hasName(name) {
			return &DuplicateOptionError{Name: name}
		}
	}
	return nil
}

// AddCommand declares a sub-command. The factory runs only when the command
// name appears on the command line.
func (p *Parser) AddCommand(name string, factory OptionsFactory) (*CommandConfig, error) {
	var err error
	switch {
	case name == "":
		err = &CommandError{Reason: "a command must have a name"}
	case strings.HasPrefix(name, "-"):
		err = &CommandError{Name: name, Reason: "command names must not start with '-'"}
	case factory == nil:
		err = &CommandError{Name: name, Reason: "a command needs an options factory"}
	case p.def.hasName(name):
		err = &DuplicateCommandError{Name: name}
	}
	if err != nil {
		p.recordDeclError(err)
		return &CommandConfig{command: &Command{name: name}}, err
	}
	cmd := &Command{name: name, factory: factory}
	p.def.commands = append(p.def.commands, cmd)
	return &CommandConfig{command: cmd}, nil
}

// AddGroup opens a group; options declared until EndGroup belong to it.
// Redeclaring a group with the same kind reopens it.
func (p *Parser) AddGroup(name string) (*GroupConfig, error) {
	return p.addGroup(name, false)
}

// AddExclusiveGroup opens a group whose members exclude each other.
func (p *Parser) AddExclusiveGroup(name string) (*GroupConfig, error) {
	return p.addGroup(name, true)
}

func (p *Parser) addGroup(name string, exclusive bool) (*GroupConfig, error) {
	if g := p.def.findGroup(name); g != nil {
		if g.exclusive != exclusive {
			err := &GroupKindError{Name: name}
			p.recordDeclError(err)
			return &GroupConfig{group: g}, err
		}
		p.activeGroup = g
		return &GroupConfig{group: g}, nil
	}
	g := newGroup(name, exclusive)
	p.def.addGroup(g)
	p.activeGroup = g
	return &GroupConfig{group: g}, nil
}

// EndGroup closes the open group; later options are declared outside any
// group.
func (p *Parser) EndGroup() {
	p.activeGroup = nil
}

// AddHelpOption declares an option that prints help and stops the parse.
func (p *Parser) AddHelpOption(names ...string) (*OptionConfig, error) {
	for _, name := range names {
		if name != "" && !strings.HasPrefix(name, "-") {
			err := &OptionNameError{Name: name, Reason: "help options must start with '-'"}
			p.recordDeclError(err)
			return &OptionConfig{opt: newOption(newVoidValue()), parser: p}, err
		}
	}
	cfg, err := p.Add(newVoidValue(), names...)
	if err != nil {
		return cfg, err
	}
	cfg.Help("Display this help message and exit.").
		Action(func(_ string, env *Environment) error {
			p.printHelp(env.IO().Out())
			env.NotifyHelpWasShown()
			env.ExitParser()
			return nil
		})
	for _, name := range names {
		if name != "" {
			p.def.helpNames = append(p.def.helpNames, name)
		}
	}
	return cfg, nil
}

// AddDefaultHelpOption declares the conventional --help/-h pair. It is
// added automatically before the first parse when no help option exists.
func (p *Parser) AddDefaultHelpOption() (*OptionConfig, error) {
	return p.AddHelpOption("--help", "-h")
}

func (p *Parser) recordDeclError(err error) {
	if err == nil || p.inVerify {
		return
	}
	if p.declErr == nil {
		p.declErr = err
	}
}

// verify finalizes the definition before a parse: it adds the default help
// option when none was declared and rejects constraint combinations that
// can never be satisfied.
func (p *Parser) verify() error {
	if len(p.def.helpNames) == 0 {
		p.EndGroup()
		p.inVerify = true
		if _, err := p.AddDefaultHelpOption(); err != nil {
			p.io.Warnings().Warnf("could not add the default help option: %v", err)
		}
		p.inVerify = false
	}
	for _, opt := range p.def.options {
		if opt.required && opt.group != nil && opt.group.exclusive {
			return &RequiredExclusiveError{Option: opt.Name(), Group: opt.group.name}
		}
	}
	return nil
}

// Parse parses the process arguments.
func (p *Parser) Parse() (ParseResult, error) {
	return p.ParseArgs(os.Args[1:])
}

// ParseArgs parses one argument vector. The error reports definition
// mistakes; problems with the arguments themselves are collected in the
// result and described on the error stream.
func (p *Parser) ParseArgs(args []string) (ParseResult, error) {
	res, err := p.parseArgs(args)
	if err != nil {
		return res, err
	}
	if hasArgumentProblems(&res) {
		p.describeErrors(&res)
	}
	return res, nil
}

func hasArgumentProblems(r *ParseResult) bool {
	for _, e := range r.Errors {
		if e.Kind != ExitRequested {
			return true
		}
	}
	return len(r.Ignored) > 0
}

func (p *Parser) parseArgs(args []string) (ParseResult, error) {
	if p.declErr != nil {
		return ParseResult{}, p.declErr
	}
	if err := p.verify(); err != nil {
		return ParseResult{}, err
	}

	res := newResultBuilder()
	env := &Environment{res: res, io: p.io}

	if args == nil {
		res.addError("", InvalidArgv)
		return res.finish(), nil
	}
	if len(args) == 0 && p.def.hasRequired() {
		p.printHelp(p.io.Out())
		res.helpShown = true
		res.requestExit()
		return res.finish(), nil
	}

	p.def.resetState()

	// Help wins over everything else on the line, even invalid input.
	for _, arg := range args {
		if p.def.isHelpName(arg) {
			p.printHelp(p.io.Out())
			res.helpShown = true
			res.requestExit()
			return res.finish(), nil
		}
	}

	if err := newEngine(p, res, env).run(args); err != nil {
		res.finish()
		return ParseResult{}, err
	}
	if res.exitRequested {
		// A help exit is a clean outcome; any other requested exit keeps
		// the result from reporting success.
		if !res.helpShown && !res.hasExitError() {
			res.addError("", ExitRequested)
		}
		return res.finish(), nil
	}

	p.applyDeferredValues(res, env)
	p.reportMissingOptions(res)
	p.reportExclusiveViolations(res)
	p.reportMissingGroups(res)
	return res.finish(), nil
}

// runCommand delegates the remaining tokens to a fresh parser built from
// the command's options factory and merges its outcome.
func (p *Parser) runCommand(cmd *Command, args []string, res *resultBuilder) error {
	opts := cmd.createOptions()
	if opts == nil {
		return &CommandError{Name: cmd.name, Reason: "the options factory returned nil"}
	}
	child := New(cmd.name, cmd.help)
	child.io = p.io
	opts.AddArguments(child)

	childRes, err := child.parseArgs(args)
	if err != nil {
		return err
	}
	res.errors = append(res.errors, childRes.Errors...)
	res.ignored = append(res.ignored, childRes.Ignored...)
	res.extraNames = append(res.extraNames, child.def.knownNames()...)
	res.extraNames = append(res.extraNames, childRes.commandNames...)
	if childRes.ExitRequested {
		res.exitRequested = true
	}
	if childRes.HelpWasShown {
		res.helpShown = true
	}
	res.command = cmd.name
	res.commandOpts = opts
	return nil
}

// applyDeferredValues fills unassigned options from their environment
// variables first and declared defaults second.
func (p *Parser) applyDeferredValues(res *resultBuilder, env *Environment) {
	for _, opt := range p.def.allOptions() {
		if opt.wasAssigned() {
			continue
		}
		if p.assignFromEnv(opt, res, env) {
			continue
		}
		if opt.hasDefault {
			opt.value.applyDefault(opt.defaultValue)
		}
	}
}

func (p *Parser) assignFromEnv(opt *Option, res *resultBuilder, env *Environment) bool {
	for _, name := range opt.envVars {
		if text, ok := os.LookupEnv(name); ok {
			res.addParseError(opt.acceptValue(text, env))
			return true
		}
	}
	return false
}

func (p *Parser) reportMissingOptions(res *resultBuilder) {
	for _, opt := range p.def.options {
		if opt.required && !opt.wasAssigned() {
			res.addError(opt.HelpName(), MissingOption)
		} else if opt.needsMoreArguments() {
			res.addError(opt.HelpName(), MissingArgument)
		}
	}
	for _, opt := range p.def.positionals {
		if opt.needsMoreArguments() {
			res.addError(opt.HelpName(), MissingArgument)
		}
	}
}

func (p *Parser) reportExclusiveViolations(res *resultBuilder) {
	assigned := make(map[string][]string)
	var order []string
	for _, opt := range p.def.options {
		g := opt.group
		if g == nil || !g.exclusive || !opt.wasAssigned() {
			continue
		}
		if _, seen := assigned[g.name]; !seen {
			order = append(order, g.name)
		}
		assigned[g.name] = append(assigned[g.name], opt.HelpName())
	}
	for _, name := range order {
		if len(assigned[name]) > 1 {
			res.addError(assigned[name][0], ExclusiveOption)
		}
	}
}

func (p *Parser) reportMissingGroups(res *resultBuilder) {
	counts := make(map[string]int)
	var order []string
	for _, opt := range p.def.options {
		g := opt.group
		if g == nil || !g.required {
			continue
		}
		if _, seen := counts[g.name]; !seen {
			order = append(order, g.name)
		}
		if opt.wasAssigned() {
			counts[g.name]++
		}
	}
	for _, name := range order {
		if counts[name] < 1 {
			res.addError(name, MissingOptionGroup)
		}
	}
}
