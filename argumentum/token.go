package argumentum

import (
	"regexp"
	"strings"

	"github.com/xiaohunqupo/argumentum/internal/intern"
)

type tokenKind int

const (
	tokenValue tokenKind = iota
	tokenLongOption
	tokenShortOption
	tokenSeparator // the bare "--" that ends option parsing
)

// negativeNumber matches tokens like -1, -12.5 and -.5 that look like
// options but should be treated as plain values when an option is waiting
// for an argument.
var negativeNumber = regexp.MustCompile(`^-(\d+(\.\d*)?|\.\d+)$`)

// classifyToken decides how a raw token is treated. acceptsValue is true
// when the active option can still consume an argument; in that position a
// negative number is a value, not an unknown option.
func classifyToken(token string, acceptsValue bool) tokenKind {
	if token == "--" {
		return tokenSeparator
	}
	if strings.HasPrefix(token, "--") {
		return tokenLongOption
	}
	if len(token) > 1 && token[0] == '-' {
		if acceptsValue && negativeNumber.MatchString(token) {
			return tokenValue
		}
		return tokenShortOption
	}
	return tokenValue
}

// looksLikeValue reports whether a token would be consumed as a value in a
// position where no option is expecting one.
func looksLikeValue(token string) bool {
	return classifyToken(token, false) == tokenValue
}

// splitLongOption separates "--name=value" into its parts.
func splitLongOption(token string) (name, value string, hasValue bool) {
	if i := strings.IndexByte(token, '='); i >= 0 {
		return token[:i], token[i+1:], true
	}
	return token, "", false
}

// shortNameOf returns the interned "-c" spelling of a clustered character.
func shortNameOf(c byte) string {
	return intern.ShortName(c)
}
