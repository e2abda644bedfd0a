package argumentum

import "strings"

// definition is the queryable model built from declarations: options and
// positional parameters in declaration order, sub-commands, and groups.
type definition struct {
	program     string
	usage       string
	description string
	epilog      string

	options     []*Option
	positionals []*Option
	commands    []*Command
	groups      map[string]*Group
	helpNames   []string
}

func newDefinition() *definition {
	return &definition{groups: make(map[string]*Group)}
}

// findOption resolves a name with leading dashes against declared options.
func (d *definition) findOption(name string) *Option {
	for _, opt := range d.options {
		if opt.hasName(name) {
			return opt
		}
	}
	return nil
}

func (d *definition) findShortOption(c byte) *Option {
	return d.findOption(shortNameOf(c))
}

func (d *definition) findCommand(name string) *Command {
	for _, cmd := range d.commands {
		if cmd.name == name {
			return cmd
		}
	}
	return nil
}

func (d *definition) findGroup(name string) *Group {
	return d.groups[strings.ToLower(name)]
}

func (d *definition) addGroup(g *Group) {
	d.groups[strings.ToLower(g.name)] = g
}

// hasName reports whether any option, positional or command claims name.
func (d *definition) hasName(name string) bool {
	if d.findOption(name) != nil {
		return true
	}
	for _, pos := range d.positionals {
		if pos.hasName(name) {
			return true
		}
	}
	return d.findCommand(name) != nil
}

func (d *definition) isHelpName(name string) bool {
	for _, h := range d.helpNames {
		if h == name {
			return true
		}
	}
	return false
}

// requiredOptions returns declared options and positionals that must be
// assigned, in declaration order with positionals first.
func (d *definition) requiredOptions() []*Option {
	var required []*Option
	for _, pos := range d.positionals {
		if pos.required {
			required = append(required, pos)
		}
	}
	for _, opt := range d.options {
		if opt.required {
			required = append(required, opt)
		}
	}
	return required
}

func (d *definition) hasRequired() bool {
	return len(d.requiredOptions()) > 0
}

// allOptions returns options and positionals in one slice, positionals last.
func (d *definition) allOptions() []*Option {
	all := make([]*Option, 0, len(d.options)+len(d.positionals))
	all = append(all, d.options...)
	all = append(all, d.positionals...)
	return all
}

// knownNames returns every user-visible option and command name, used for
// suggesting corrections of misspelled input.
func (d *definition) knownNames() []string {
	var names []string
	for _, opt := range d.options {
		if opt.longName != "" {
			names = append(names, opt.longName)
		}
		if opt.shortName != "" {
			names = append(names, opt.shortName)
		}
	}
	for _, cmd := range d.commands {
		names = append(names, cmd.name)
	}
	return names
}

func (d *definition) resetState() {
	for _, opt := range d.allOptions() {
		opt.resetState()
	}
}
