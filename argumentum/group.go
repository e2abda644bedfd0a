package argumentum

// Group collects options that are presented together and can carry shared
// constraints. In an exclusive group at most one member may occur; a
// required group demands that at least one member occurs.
type Group struct {
	name        string
	title       string
	description string
	exclusive   bool
	required    bool
}

func newGroup(name string, exclusive bool) *Group {
	return &Group{name: name, title: name, exclusive: exclusive}
}

// Name returns the group key used to look the group up.
func (g *Group) Name() string {
	return g.name
}

// Title returns the heading shown in help output.
func (g *Group) Title() string {
	return g.title
}

// IsExclusive reports whether at most one member may occur in a parse.
func (g *Group) IsExclusive() bool {
	return g.exclusive
}

// IsRequired reports whether at least one member must occur in a parse.
func (g *Group) IsRequired() bool {
	return g.required
}

// GroupConfig configures a declared group.
type GroupConfig struct {
	group *Group
}

// Title sets the heading shown in help output.
func (c *GroupConfig) Title(title string) *GroupConfig {
	c.group.title = title
	return c
}

// Description sets the text shown under the group heading.
func (c *GroupConfig) Description(text string) *GroupConfig {
	c.group.description = text
	return c
}

// Required demands that at least one member of the group occurs.
func (c *GroupConfig) Required() *GroupConfig {
	c.group.required = true
	return c
}
