// Package models defines the core domain models for tripsplit.
//
// # Models
//
//   - Trip: top-level partition; owns participants and expenses
//   - Participant: a family on the trip, contributing either a fixed amount
//     or an equal share of whatever the fixed contributions do not cover
//   - Expense: a dated record of money one participant spent for the group
//   - Snapshot: the full roster and ledger of one trip, loaded or replaced
//     as a unit
//
// Balances and payment suggestions are derived values and live in the
// calculator package; they are never persisted.
//
// # Design Principles
//
//  1. Participants are identified by name within a trip; expenses reference
//     them by that name.
//  2. All currency values are decimal.Decimal, never float64.
//  3. Contribution mode is an explicit enumerated field, not inferred from a
//     numeric amount.
package models
