// Package aggregates implements the order write contract on top of the
// table repos in internal/data/repos.
//
// Every write runs in exactly one transaction owned by this package. Repos
// are always called with the transaction handle carried in dbctx.Context.
package aggregates
