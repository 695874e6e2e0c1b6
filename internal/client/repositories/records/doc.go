// Package records implements the local entity store of the planner client.
//
// One generic SQLiteRepository serves every entity type; each type supplies
// a table mapping (columns, bind values, scan targets). Repositories are
// built over dbx.DBTX, so the same constructors work on *sql.DB and inside a
// dbx.WithTx transaction:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    store := records.NewStore(tx)
//	    projects, err := store.Projects.Fetch(ctx, records.Synced())
//	    ...
//	})
//
// Relationship delete rules (cascade / nullify) are enforced by SQLite
// foreign keys, which requires the connection to run with foreign_keys on;
// see client.InitDatabase.
package records
