package argumentum

import (
	"fmt"
	"io"
	"strings"

	"github.com/xiaohunqupo/argumentum/internal/fuzzy"
)

// GroupDescription is the group part of an argument description.
type GroupDescription struct {
	Name        string
	Title       string
	Description string
	Exclusive   bool
	Required    bool
}

// ArgumentDescription is the presentation record of one declared argument
// or command, consumed by help formatters.
type ArgumentDescription struct {
	HelpName  string
	ShortName string
	LongName  string
	Metavar   string
	Help      string
	Arguments string
	Required  bool
	IsCommand bool
	Group     GroupDescription
}

// DescribeArgument returns the description of the argument with the given
// name, option or positional.
func (p *Parser) DescribeArgument(name string) (ArgumentDescription, error) {
	args := p.def.positionals
	if strings.HasPrefix(name, "-") {
		args = p.def.options
	}
	for _, opt := range args {
		if opt.hasName(name) {
			return describeOption(opt), nil
		}
	}
	return ArgumentDescription{}, fmt.Errorf("unknown option '%s'", name)
}

// DescribeArguments returns descriptions of every declared option,
// positional parameter and command, in declaration order.
func (p *Parser) DescribeArguments() []ArgumentDescription {
	var out []ArgumentDescription
	for _, opt := range p.def.options {
		out = append(out, describeOption(opt))
	}
	for _, opt := range p.def.positionals {
		out = append(out, describeOption(opt))
	}
	for _, cmd := range p.def.commands {
		out = append(out, ArgumentDescription{
			HelpName:  cmd.name,
			LongName:  cmd.name,
			Help:      cmd.help,
			IsCommand: true,
		})
	}
	return out
}

func describeOption(opt *Option) ArgumentDescription {
	desc := ArgumentDescription{
		HelpName:  opt.HelpName(),
		ShortName: opt.shortName,
		LongName:  opt.longName,
		Metavar:   opt.metavarOrDefault(),
		Help:      opt.help,
		Required:  opt.required,
	}
	if opt.acceptsArguments() {
		desc.Arguments = usageArguments(opt, desc.Metavar)
	}
	if g := opt.group; g != nil {
		desc.Group = GroupDescription{
			Name:        g.name,
			Title:       g.title,
			Description: g.description,
			Exclusive:   g.exclusive,
			Required:    g.required,
		}
	}
	return desc
}

// usageArguments renders the arity of an option as a usage fragment, e.g.
// "N", "N [N ...]" or "[N {0..2}]".
func usageArguments(opt *Option, metavar string) string {
	min, max := opt.ArgumentCounts()
	var b strings.Builder
	for i := 0; i < min; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(metavar)
	}
	optional := func(inner string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("[" + inner + "]")
	}
	switch {
	case max == unboundedArgs:
		optional(metavar + " ...")
	case max-min == 1:
		optional(metavar)
	case max > min:
		optional(fmt.Sprintf("%s {0..%d}", metavar, max-min))
	}
	return b.String()
}

// printHelp renders the whole definition: usage line, description, grouped
// argument lists and the epilog.
func (p *Parser) printHelp(w io.Writer) {
	d := p.def

	usage := d.usage
	if usage == "" {
		usage = generatedUsage(d)
	}
	fmt.Fprintf(w, "usage: %s\n", usage)
	if d.description != "" {
		fmt.Fprintf(w, "\n%s\n", d.description)
	}

	if len(d.positionals) > 0 {
		fmt.Fprintf(w, "\npositional arguments:\n")
		for _, opt := range d.positionals {
			printArgumentLine(w, opt.Name(), opt.help)
		}
	}
	if len(d.commands) > 0 {
		fmt.Fprintf(w, "\ncommands:\n")
		for _, cmd := range d.commands {
			printArgumentLine(w, cmd.name, cmd.help)
		}
	}

	var ungrouped []*Option
	var groupOrder []*Group
	grouped := make(map[*Group][]*Option)
	for _, opt := range d.options {
		if opt.group == nil {
			ungrouped = append(ungrouped, opt)
			continue
		}
		if _, seen := grouped[opt.group]; !seen {
			groupOrder = append(groupOrder, opt.group)
		}
		grouped[opt.group] = append(grouped[opt.group], opt)
	}

	if len(ungrouped) > 0 {
		fmt.Fprintf(w, "\noptions:\n")
		for _, opt := range ungrouped {
			printArgumentLine(w, optionInvocation(opt), opt.help)
		}
	}
	for _, g := range groupOrder {
		fmt.Fprintf(w, "\n%s:\n", g.title)
		if g.description != "" {
			fmt.Fprintf(w, "  %s\n", g.description)
		}
		for _, opt := range grouped[g] {
			printArgumentLine(w, optionInvocation(opt), opt.help)
		}
	}

	if d.epilog != "" {
		fmt.Fprintf(w, "\n%s\n", d.epilog)
	}
}

func generatedUsage(d *definition) string {
	var b strings.Builder
	b.WriteString(d.program)
	if len(d.options) > 0 {
		b.WriteString(" [options]")
	}
	for _, opt := range d.positionals {
		frag := usageArguments(opt, opt.metavarOrDefault())
		if frag == "" {
			frag = opt.metavarOrDefault()
		}
		b.WriteByte(' ')
		b.WriteString(frag)
	}
	if len(d.commands) > 0 {
		b.WriteString(" <command> [<args>]")
	}
	return b.String()
}

func optionInvocation(opt *Option) string {
	names := make([]string, 0, 2)
	if opt.shortName != "" {
		names = append(names, opt.shortName)
	}
	if opt.longName != "" {
		names = append(names, opt.longName)
	}
	inv := strings.Join(names, ", ")
	if args := usageArguments(opt, opt.metavarOrDefault()); args != "" {
		inv += " " + args
	}
	return inv
}

func printArgumentLine(w io.Writer, invocation, help string) {
	if help == "" {
		fmt.Fprintf(w, "  %s\n", invocation)
		return
	}
	if len(invocation) > 22 {
		fmt.Fprintf(w, "  %s\n%26s%s\n", invocation, "", help)
		return
	}
	fmt.Fprintf(w, "  %-24s%s\n", invocation, help)
}

// describeErrors writes one fixed-template line per collected problem to
// the error stream. Unknown options additionally get a spelling
// suggestion when a declared name is close enough.
func (p *Parser) describeErrors(res *ParseResult) {
	w := p.io.Err()
	matcher := fuzzy.NewMatcher(2)
	// Errors merged from a sub-command relate to names the sub-command
	// declared, so those names take part in the suggestion ranking too.
	names := append(p.def.knownNames(), res.commandNames...)

	for _, e := range res.Errors {
		switch e.Kind {
		case UnknownOption:
			fmt.Fprintf(w, "Error: Unknown option: '%s'\n", e.Option)
			if best := matcher.Best(e.Option, names); best != "" {
				fmt.Fprintf(w, "Did you mean '%s'?\n", best)
			}
		case ExclusiveOption:
			fmt.Fprintf(w, "Error: Only one option from an exclusive group can be set. '%s'\n", e.Option)
		case MissingOption:
			fmt.Fprintf(w, "Error: A required option is missing: '%s'\n", e.Option)
		case MissingOptionGroup:
			fmt.Fprintf(w, "Error: A required option from a group is missing: '%s'\n", e.Option)
		case MissingArgument:
			fmt.Fprintf(w, "Error: An argument is missing: '%s'\n", e.Option)
		case ConversionError:
			fmt.Fprintf(w, "Error: The argument could not be converted: '%s'\n", e.Option)
		case InvalidChoice:
			fmt.Fprintf(w, "Error: The value is not in the list of valid values: '%s'\n", e.Option)
		case FlagParameter:
			fmt.Fprintf(w, "Error: Flag options do not accept parameters: '%s'\n", e.Option)
		case ExitRequested:
			// not an error, nothing to describe
		case ActionError:
			fmt.Fprintf(w, "Error: %s\n", e.Option)
		case InvalidArgv:
			fmt.Fprintf(w, "Error: Parser input is invalid.\n")
		}
	}

	if len(res.Ignored) > 0 {
		fmt.Fprintf(w, "Error: Ignored arguments: %s\n", strings.Join(res.Ignored, ", "))
	}
}
