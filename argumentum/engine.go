package argumentum

import "strings"

// engine consumes one token stream against a definition. It keeps the
// currently consuming option and the index of the next positional; all
// findings go through the shared result builder.
type engine struct {
	parser *Parser
	def    *definition
	res    *resultBuilder
	env    *Environment

	tokens     []string
	pos        int
	active     *Option
	posIndex   int
	valuesOnly bool
}

func newEngine(p *Parser, res *resultBuilder, env *Environment) *engine {
	return &engine{parser: p, def: p.def, res: res, env: env}
}

func (e *engine) run(args []string) error {
	e.tokens = args
	e.pos = 0
	e.active = nil
	e.posIndex = 0
	e.valuesOnly = false

	for e.pos < len(e.tokens) {
		tok := e.tokens[e.pos]
		e.pos++
		if err := e.step(tok); err != nil {
			return err
		}
		if e.res.exitRequested {
			return nil
		}
	}
	return nil
}

func (e *engine) step(tok string) error {
	if e.valuesOnly {
		e.dispatchValue(tok)
		return nil
	}
	if tok == "--" {
		e.active = nil
		e.valuesOnly = true
		return nil
	}

	// An option that is still collecting arguments consumes everything
	// that does not look like an option, negative numbers included.
	if e.active != nil && e.active.canAcceptMore() && e.consumableByActive(tok) {
		e.res.addParseError(e.active.acceptValue(tok, e.env))
		if !e.active.canAcceptMore() {
			e.active = nil
		}
		return nil
	}

	if strings.HasPrefix(tok, "--") {
		e.active = nil
		e.startLong(tok)
		return nil
	}
	if len(tok) > 1 && tok[0] == '-' {
		if e.isNegativeNumber(tok) && e.positionalAccepts() {
			e.active = nil
			e.dispatchValue(tok)
			return nil
		}
		e.active = nil
		e.startShort(tok)
		return nil
	}

	e.active = nil
	if cmd := e.def.findCommand(tok); cmd != nil {
		rest := e.tokens[e.pos:]
		e.pos = len(e.tokens)
		return e.parser.runCommand(cmd, rest, e.res)
	}
	e.dispatchValue(tok)
	return nil
}

// consumableByActive reports whether tok is an argument for the consuming
// option rather than the start of another option.
func (e *engine) consumableByActive(tok string) bool {
	if tok == "--" {
		return false
	}
	if len(tok) > 1 && tok[0] == '-' {
		return e.isNegativeNumber(tok)
	}
	return true
}

// isNegativeNumber applies the disambiguation rule for tokens like "-5":
// they are values, not options, as long as no short option claims the
// leading character.
func (e *engine) isNegativeNumber(tok string) bool {
	return negativeNumber.MatchString(tok) && e.def.findShortOption(tok[1]) == nil
}

// positionalAccepts reports whether some positional can still take a value.
func (e *engine) positionalAccepts() bool {
	for i := e.posIndex; i < len(e.def.positionals); i++ {
		if e.def.positionals[i].canAcceptMore() {
			return true
		}
	}
	return false
}

func (e *engine) startLong(tok string) {
	name, val, hasVal := splitLongOption(tok)
	opt := e.def.findOption(name)
	if opt == nil {
		e.res.addError(name, UnknownOption)
		return
	}
	e.startOption(opt, name, val, hasVal)
}

// startShort resolves a short token: an option with an inline argument, a
// cluster of flags, or a plain value when the cluster does not scan.
func (e *engine) startShort(tok string) {
	body := tok[1:]
	first := e.def.findShortOption(body[0])

	if first != nil && len(body) > 1 {
		if first.acceptsArguments() {
			e.startOption(first, shortNameOf(body[0]), body[1:], true)
			return
		}
		for i := 1; i < len(body); i++ {
			if e.def.findShortOption(body[i]) == nil {
				// a value forced onto a flag, as in "-vQUIET"
				e.startOption(first, shortNameOf(body[0]), body[1:], true)
				return
			}
		}
	}

	if first == nil {
		if len(body) > 1 {
			// unrecognized character turns the cluster into a value
			e.dispatchValue(tok)
			return
		}
		e.res.addError(tok, UnknownOption)
		return
	}

	for i := 0; i < len(body); i++ {
		e.startOption(e.def.findShortOption(body[i]), shortNameOf(body[i]), "", false)
		if e.res.exitRequested {
			return
		}
	}
}

func (e *engine) startOption(opt *Option, name, val string, hasVal bool) {
	opt.onOptionStarted()
	if !opt.acceptsArguments() {
		if hasVal {
			e.res.addError(name, FlagParameter)
			return
		}
		e.res.addParseError(opt.acceptFlag(e.env))
		return
	}
	if hasVal {
		e.res.addParseError(opt.acceptValue(val, e.env))
		return
	}
	e.active = opt
}

// dispatchValue hands a value token to the positionals in declaration
// order. A satisfied greedy positional yields when later positionals would
// otherwise be starved. Values nobody can take are recorded as ignored.
func (e *engine) dispatchValue(tok string) {
	for e.posIndex < len(e.def.positionals) {
		p := e.def.positionals[e.posIndex]
		if !p.canAcceptMore() {
			e.posIndex++
			continue
		}
		if p.totalArgs >= p.minArgs && e.shouldYield(e.posIndex) {
			e.posIndex++
			continue
		}
		if p.occurrences == 0 {
			p.onOptionStarted()
		}
		e.res.addParseError(p.acceptValue(tok, e.env))
		return
	}
	e.res.addIgnored(tok)
}

// shouldYield is true when the tokens still ahead, plus the current one,
// are no more than what the positionals after index i minimally require.
func (e *engine) shouldYield(i int) bool {
	need := 0
	for _, p := range e.def.positionals[i+1:] {
		need += p.minArgs
	}
	if need == 0 {
		return false
	}
	return 1+e.remainingValueTokens() <= need
}

// remainingValueTokens counts unread tokens that would reach a positional.
func (e *engine) remainingValueTokens() int {
	n := 0
	sawSeparator := e.valuesOnly
	for _, tok := range e.tokens[e.pos:] {
		if sawSeparator {
			n++
			continue
		}
		if tok == "--" {
			sawSeparator = true
			continue
		}
		if looksLikeValue(tok) || e.isNegativeNumber(tok) {
			n++
		}
	}
	return n
}
