package logical

import (
	"fmt"
	"strings"

	"github.com/siftql/sift/pkg/internal/types"
)

// ExpressionType represents the type of expression in a logical plan.
type ExpressionType uint32

const (
	_ ExpressionType = iota // zero-value is an invalid type

	ExprTypeUnary
	ExprTypeBinary
	ExprTypeLiteral
	ExprTypeColumn
)

// String returns the string representation of the [ExpressionType].
func (t ExpressionType) String() string {
	switch t {
	case ExprTypeUnary:
		return "UnaryExpression"
	case ExprTypeBinary:
		return "BinaryExpression"
	case ExprTypeLiteral:
		return "LiteralExpression"
	case ExprTypeColumn:
		return "ColumnExpression"
	default:
		panic(fmt.Sprintf("unknown expression type %d", t))
	}
}

// Expression is the common interface for all expressions in a logical plan.
type Expression interface {
	fmt.Stringer
	Type() ExpressionType
	isExpr()
}

// UnaryExpr applies a unary operator to a single expression.
type UnaryExpr struct {
	// Value is the expression being operated on.
	Value Expression
	// Op is the unary operator to apply to the expression.
	Op types.UnaryOp
}

func (*UnaryExpr) isExpr() {}

func (e *UnaryExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Op, e.Value)
}

// Type returns the type of the [UnaryExpr].
func (*UnaryExpr) Type() ExpressionType {
	return ExprTypeUnary
}

// BinaryExpr applies a binary operator to a pair of expressions.
type BinaryExpr struct {
	Left, Right Expression
	Op          types.BinaryOp
}

func (*BinaryExpr) isExpr() {}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("%s(%s, %s)", e.Op, e.Left, e.Right)
}

// Type returns the type of the [BinaryExpr].
func (*BinaryExpr) Type() ExpressionType {
	return ExprTypeBinary
}

// LiteralExpr is a constant value in a logical plan.
type LiteralExpr struct {
	Value any
}

func (*LiteralExpr) isExpr() {}

// String returns the string representation of the literal value.
func (e *LiteralExpr) String() string {
	return fmt.Sprintf("%v", e.Value)
}

// Type returns the type of the [LiteralExpr].
func (*LiteralExpr) Type() ExpressionType {
	return ExprTypeLiteral
}

// NewLiteral creates a new literal expression from the given value.
func NewLiteral(value any) *LiteralExpr {
	return &LiteralExpr{Value: value}
}

// ColumnExpr is a reference to a named column of the scanned relation.
type ColumnExpr struct {
	Column string
}

func (*ColumnExpr) isExpr() {}

// String returns the name of the referenced column.
func (e *ColumnExpr) String() string {
	return e.Column
}

// Type returns the type of the [ColumnExpr].
func (*ColumnExpr) Type() ExpressionType {
	return ExprTypeColumn
}

// NewColumn creates a new column reference expression.
func NewColumn(column string) *ColumnExpr {
	return &ColumnExpr{Column: column}
}

// AggregateExpr is a single aggregator of an [Aggregation] node: an
// aggregation function applied to a column, with an optional output name.
type AggregateExpr struct {
	Op     types.AggregateOp
	Column string
	// As is the name of the aggregated output column. Empty means the
	// default name derived from the operation and column.
	As string
}

// Name returns the output name of the aggregator.
func (e AggregateExpr) Name() string {
	if e.As != "" {
		return e.As
	}
	return strings.ToLower(e.Op.String()) + "(" + e.Column + ")"
}

func (e AggregateExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Op, e.Column)
}
