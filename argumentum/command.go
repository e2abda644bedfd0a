package argumentum

// CommandOptions declares the arguments of a sub-command. Implementations
// hold the bound variables and register them in AddArguments.
type CommandOptions interface {
	AddArguments(parser *Parser)
}

// OptionsFactory creates the options of a sub-command. It is invoked only
// when the command name is seen on the command line, so bound variables are
// instantiated lazily.
type OptionsFactory func(name string) CommandOptions

// Command is a named sub-command with its own argument definition.
type Command struct {
	name    string
	help    string
	factory OptionsFactory
}

// Name returns the name that activates the command.
func (c *Command) Name() string {
	return c.name
}

// Help returns the help text of the command.
func (c *Command) Help() string {
	return c.help
}

func (c *Command) createOptions() CommandOptions {
	return c.factory(c.name)
}

// CommandConfig configures a declared sub-command.
type CommandConfig struct {
	command *Command
}

// Help sets the help text of the command.
func (c *CommandConfig) Help(text string) *CommandConfig {
	c.command.help = text
	return c
}
