// Package order implements the shipment order aggregate: the Order root with
// its single Sender, one-or-more Receivers, their OrderItems, the
// TransportDetail record, and the append-only tracking event stream.
//
// The aggregate maintains these invariants:
//   - A receiver's total quantity and weight are always computed from its
//     items, never stored independently.
//   - The order's overall status is a deterministic reduction over its
//     receivers' statuses and is recomputed on every receiver status change.
//   - Assigned quantity accumulates additively and may never exceed a
//     receiver's requested total.
//   - Orders are never physically deleted; cancellation is a status.
package order
