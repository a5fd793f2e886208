// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the freight forwarding
// engine. It implements workflows that don't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - PartyGrouper: normalizes heterogeneous raw party/item submissions into
//     a shipping-party -> items grouping consumed by the order aggregate builder
package services
