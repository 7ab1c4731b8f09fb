// Package accounting provides the core types and logic for keeping the books
// of a small farm. It is designed to be local-first and auditable: the book is
// a plain JSON file that can be read, versioned and carried around, and every
// change to it is an explicit, dated event.
//
// The core functionalities include:
//   - Book Keeping: Categories, accounts and transactions recording the money
//     side of the farm, plus livestock (species and animal logs), inventory
//     (items and stock movements), and estate (assets and liabilities).
//   - Event Model: Every mutation is an event applied to the book through a
//     single fold, so a book can be rebuilt, diffed and mirrored faithfully.
//   - Snapshots: A stateless valuation of the book at a date, producing cash
//     positions, net worth, herd counts, mortality and upcoming installments.
//   - Persistence: Encoding and decoding of books and events to a stable,
//     human-readable JSON format.
//   - Synchronization: A Session that folds events locally and pushes the book
//     to a remote Store (SQLite, HTTP bin, MongoDB or S3) with a debounce,
//     resolving concurrent writers last-writer-wins.
//
// This package serves as the foundational logic for the `fbk` command-line
// tool and the bundled HTTP server, ensuring that all operations are
// consistent and based on a single source of truth.
package accounting
