// Package batch applies one operation to a list of identifiers with
// best-effort semantics: items run sequentially in input order, a failure is
// recorded and the next item is attempted, and every identifier ends up in
// exactly one of the success or failure lists.
package batch
