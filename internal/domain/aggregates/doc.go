// Package aggregates defines the write contracts of the orders domain.
//
// Contracts carry no persistence or transport details; each method is one
// atomic boundary where the order invariants are enforced.
package aggregates
