package types

import "fmt"

// UnaryOp denotes the kind of unary operation to perform on an expression.
type UnaryOp int

// Recognized values of [UnaryOp].
const (
	// UnaryOpInvalid indicates an invalid unary operation.
	UnaryOpInvalid UnaryOp = iota

	UnaryOpNot // Logical NOT operation (!).
)

var unaryOpStrings = map[UnaryOp]string{
	UnaryOpInvalid: "invalid",

	UnaryOpNot: "NOT",
}

// String returns the string representation of the UnaryOp.
func (op UnaryOp) String() string {
	if s, ok := unaryOpStrings[op]; ok {
		return s
	}
	return fmt.Sprintf("UnaryOp(%d)", op)
}

// BinaryOp denotes the kind of binary operation to perform on a pair of
// expressions.
type BinaryOp int

// Recognized values of [BinaryOp].
const (
	// BinaryOpInvalid indicates an invalid binary operation.
	BinaryOpInvalid BinaryOp = iota

	BinaryOpEq  // Equality comparison (==).
	BinaryOpNeq // Inequality comparison (!=).
	BinaryOpGt  // Greater than comparison (>).
	BinaryOpGte // Greater than or equal comparison (>=).
	BinaryOpLt  // Less than comparison (<).
	BinaryOpLte // Less than or equal comparison (<=).
	BinaryOpAnd // Logical AND operation (&&).
	BinaryOpOr  // Logical OR operation (||).
)

var binaryOpStrings = map[BinaryOp]string{
	BinaryOpInvalid: "invalid",

	BinaryOpEq:  "EQ",
	BinaryOpNeq: "NEQ",
	BinaryOpGt:  "GT",
	BinaryOpGte: "GTE",
	BinaryOpLt:  "LT",
	BinaryOpLte: "LTE",
	BinaryOpAnd: "AND",
	BinaryOpOr:  "OR",
}

// String returns a human-readable representation of the binary operation kind.
func (op BinaryOp) String() string {
	if s, ok := binaryOpStrings[op]; ok {
		return s
	}
	return fmt.Sprintf("BinaryOp(%d)", op)
}

// AggregateOp denotes the aggregation function applied by an aggregator.
type AggregateOp int

// Recognized values of [AggregateOp].
const (
	// AggregateOpInvalid indicates an invalid aggregate operation.
	AggregateOpInvalid AggregateOp = iota

	AggregateOpCount // Count of rows or values.
	AggregateOpSum   // Sum of values.
	AggregateOpMin   // Minimum value.
	AggregateOpMax   // Maximum value.
	AggregateOpAvg   // Arithmetic mean of values.
)

var aggregateOpStrings = map[AggregateOp]string{
	AggregateOpInvalid: "invalid",

	AggregateOpCount: "COUNT",
	AggregateOpSum:   "SUM",
	AggregateOpMin:   "MIN",
	AggregateOpMax:   "MAX",
	AggregateOpAvg:   "AVG",
}

// String returns a human-readable representation of the aggregate operation kind.
func (op AggregateOp) String() string {
	if s, ok := aggregateOpStrings[op]; ok {
		return s
	}
	return fmt.Sprintf("AggregateOp(%d)", op)
}

// SortOrder denotes the direction of a sort field.
type SortOrder int

// Recognized values of [SortOrder].
const (
	// SortOrderInvalid indicates an invalid sort order.
	SortOrderInvalid SortOrder = iota

	SortOrderAsc  // Ascending order.
	SortOrderDesc // Descending order.
)

var sortOrderStrings = map[SortOrder]string{
	SortOrderInvalid: "invalid",

	SortOrderAsc:  "ASC",
	SortOrderDesc: "DESC",
}

// String returns the string representation of the SortOrder.
func (o SortOrder) String() string {
	if s, ok := sortOrderStrings[o]; ok {
		return s
	}
	return fmt.Sprintf("SortOrder(%d)", o)
}
