package cql

// node is a parsed boolean expression tree. Term and phrase atoms, NOT, and
// n-ary AND/OR groups; precedence NOT > AND > OR is encoded by the parser.
type node interface {
	isNode()
}

type termNode struct {
	value  string
	phrase bool // quoted phrases always match exact, regardless of query mode
}

type notNode struct {
	child node
}

type andNode struct {
	children []node
}

type orNode struct {
	children []node
}

func (termNode) isNode() {}
func (notNode) isNode()  {}
func (andNode) isNode()  {}
func (orNode) isNode()   {}
