// Package gridstore persists grid snapshots to SQLite.
//
// Responsibilities: schema migrations, snapshot insert/lookup/list/delete,
// generic Persist/Restore helpers over grid.Serialize, and admin debug routes
// for live SQL over the snapshot database.
// Key types: Store, Snapshot.
package gridstore
