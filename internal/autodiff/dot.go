package autodiff

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// formatNode renders a node as Value(data=..., grad=...), prefixed with its
// name when it has one.
func formatNode(n *Node) string {
	if n.name != "" {
		return fmt.Sprintf("%s=Value(data=%g, grad=%g)", n.name, n.value, n.grad)
	}
	return fmt.Sprintf("Value(data=%g, grad=%g)", n.value, n.grad)
}

// recordEscaper quotes the characters that are structural inside a Graphviz
// record label or a double-quoted DOT string.
var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`|`, `\|`,
	`{`, `\{`,
	`}`, `\}`,
	`<`, `\<`,
	`>`, `\>`,
	"\n", `\n`,
)

// WriteDot writes the graph reachable from root in Graphviz DOT format.
//
// Each node becomes a record "name | data | grad"; each interior node also
// gets a small op node (e.g. "+") with an edge into it, laid out left to
// right from leaves to root:
//
//	dot -Tsvg graph.dot > graph.svg
func WriteDot(w io.Writer, root *Node) error {
	order, err := TopologicalOrder(root)
	if err != nil {
		return err
	}

	ids := make(map[*Node]int, len(order))
	for i, n := range order {
		ids[n] = i
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "  rankdir=LR;")

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		id := ids[n]
		fmt.Fprintf(bw, "  n%d [shape=record, label=\"{ %s | data %.4f | grad %.4f }\"];\n",
			id, recordEscaper.Replace(n.name), n.value, n.grad)
		if n.IsLeaf() {
			continue
		}
		fmt.Fprintf(bw, "  n%d_op [label=%q];\n", id, n.op.String())
		fmt.Fprintf(bw, "  n%d_op -> n%d;\n", id, id)
		for _, operand := range n.operands {
			fmt.Fprintf(bw, "  n%d -> n%d_op;\n", ids[operand], id)
		}
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
