package syntax

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n Node, fn func(Node) bool) {
	if !Present(n) {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Tokens returns every leaf under n in source order.
func Tokens(n Node) []*Token {
	var out []*Token
	Walk(n, func(c Node) bool {
		if t, ok := c.(*Token); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Directives returns the keyword of every directive under n that the binder
// resolved to a descriptor.
func Directives(n Node) []string {
	var out []string
	Walk(n, func(c Node) bool {
		if d, ok := c.(*Directive); ok && d.Descriptor != nil {
			out = append(out, d.Descriptor.Name)
		}
		return true
	})
	return out
}
