package pattern

import "github.com/siftql/sift/pkg/engine/planner/logical"

// Token is an identity key for a capture binding. Tokens are compared by
// pointer identity, so each [NewToken] call yields a distinct key even for
// equal names; the name only serves debugging.
type Token struct {
	name string
}

// NewToken creates a new capture token with the given debug name.
func NewToken(name string) *Token {
	return &Token{name: name}
}

func (t *Token) String() string {
	return t.name
}

// Captures maps capture tokens to the nodes bound during a successful
// match. A table is populated fresh per match attempt and discarded after
// the rule's transform has run.
type Captures map[*Token]logical.Node

// Node returns the node bound to token. It panics if the token was never
// bound, which is a programmer error: rules must only look up tokens that
// occur in their own pattern.
func (c Captures) Node(token *Token) logical.Node {
	node, ok := c[token]
	if !ok {
		panic("pattern: no capture bound for token " + token.name)
	}
	return node
}
