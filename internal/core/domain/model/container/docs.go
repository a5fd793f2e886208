// Package container implements the container aggregate: the master identity
// record, its append-only status ledger, and the owned purchase or hire
// detail selected by owner type.
//
// A container's current status is never stored. It is derived on read from
// the latest ledger event, the active hire record, and an optional
// administrative override, evaluated in a strict precedence order. The ledger
// itself is monotonically append-only: no operation updates or deletes a
// recorded event.
package container
