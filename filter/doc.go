// Package filter defines the boolean filter expression tree.
//
// An [Expr] is either a [Pred] (one field lookup such as age > 18) or a
// connective ([And], [Or], [Not]) over child expressions. Trees are built
// from decoded GraphQL filter arguments by the root gqlfilter package,
// normalized here, and translated into backend predicates.
//
// Expressions print in a compact textual form, mainly for logs and tests:
//
//	expr := filter.NewAnd(
//	    filter.NewPred("age", filter.OpGT, 18),
//	    filter.NewOr(
//	        filter.NewPred("city", filter.OpEQ, "NYC"),
//	        filter.NewPred("city", filter.OpEQ, "LA"),
//	    ),
//	)
//	fmt.Println(expr) // age > 18 && (city == "NYC" || city == "LA")
package filter
