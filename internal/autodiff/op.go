package autodiff

import (
	"fmt"
	"math"
	"strconv"
)

// OpKind identifies the operator that produced a node.
type OpKind uint8

// Operator kinds. OpLeaf is the zero value so a Node literal is a leaf.
const (
	OpLeaf OpKind = iota
	OpAdd
	OpMul
	OpPow
	OpExp
	OpLog
	OpReLU
	OpTanh
)

// String returns the diagnostic label of the operator.
func (k OpKind) String() string {
	switch k {
	case OpLeaf:
		return ""
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpPow:
		return "pow"
	case OpExp:
		return "exp"
	case OpLog:
		return "log"
	case OpReLU:
		return "relu"
	case OpTanh:
		return "tanh"
	default:
		return "op(" + strconv.Itoa(int(k)) + ")"
	}
}

// Op is the local backward rule of a node expressed as data.
//
// Exponent is only meaningful for OpPow.
type Op struct {
	Kind     OpKind
	Exponent float64
}

// String returns the operator label; Pow includes its exponent.
func (o Op) String() string {
	if o.Kind == OpPow {
		return fmt.Sprintf("**%g", o.Exponent)
	}
	return o.Kind.String()
}

// propagate runs the local backward rule of n: it reads n's gradient and the
// forward values of its operands and adds the partial derivative
// contribution to each operand. It never assigns an operand gradient.
func propagate(n *Node) {
	g := n.grad
	switch n.op.Kind {
	case OpLeaf:
		// Nothing below a leaf.
	case OpAdd:
		a, b := n.operands[0], n.operands[1]
		a.grad += g
		b.grad += g
	case OpMul:
		a, b := n.operands[0], n.operands[1]
		a.grad += b.value * g
		b.grad += a.value * g
	case OpPow:
		a := n.operands[0]
		k := n.op.Exponent
		a.grad += k * math.Pow(a.value, k-1) * g
	case OpExp:
		// d(e^x)/dx = e^x, which is the cached output.
		n.operands[0].grad += n.value * g
	case OpLog:
		a := n.operands[0]
		a.grad += g / a.value
	case OpReLU:
		if n.value > 0 {
			n.operands[0].grad += g
		}
	case OpTanh:
		n.operands[0].grad += (1 - n.value*n.value) * g
	default:
		panic(fmt.Sprintf("autodiff: no backward rule for operator %s", n.op.Kind))
	}
}
