// Package kernel provides core domain primitives for the freight forwarding
// engine. It implements fundamental building blocks following Domain-Driven
// Design principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Date: A value object for calendar dates exchanged in YYYY-MM-DD form
//   - ItemRef: A value object linking flat item submissions to their owning shipping party
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
