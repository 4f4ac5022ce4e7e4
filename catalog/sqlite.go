package catalog

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/zhulcher/supera-atomic/event"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS particles (
	event_id          INTEGER NOT NULL,
	id                INTEGER NOT NULL,
	type              TEXT NOT NULL,
	shape             TEXT NOT NULL,
	track_id          INTEGER NOT NULL,
	gen_id            INTEGER NOT NULL,
	pdg               INTEGER NOT NULL,
	px                REAL NOT NULL,
	py                REAL NOT NULL,
	pz                REAL NOT NULL,
	vtx_x             REAL NOT NULL,
	vtx_y             REAL NOT NULL,
	vtx_z             REAL NOT NULL,
	vtx_t             REAL NOT NULL,
	end_x             REAL NOT NULL,
	end_y             REAL NOT NULL,
	end_z             REAL NOT NULL,
	end_t             REAL NOT NULL,
	dist_travel       REAL NOT NULL,
	energy_init       REAL NOT NULL,
	energy_deposit    REAL NOT NULL,
	process           TEXT NOT NULL,
	parent_track_id   INTEGER NOT NULL,
	parent_id         INTEGER NOT NULL,
	ancestor_track_id INTEGER NOT NULL,
	ancestor_id       INTEGER NOT NULL,
	group_id          INTEGER NOT NULL,
	interaction_id    INTEGER NOT NULL,
	num_voxels        INTEGER NOT NULL,
	PRIMARY KEY (event_id, id)
);
`

const insertSQL = `
INSERT INTO particles (
	event_id, id, type, shape, track_id, gen_id, pdg,
	px, py, pz,
	vtx_x, vtx_y, vtx_z, vtx_t,
	end_x, end_y, end_z, end_t,
	dist_travel, energy_init, energy_deposit, process,
	parent_track_id, parent_id, ancestor_track_id, ancestor_id,
	group_id, interaction_id, num_voxels
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// SQLiteSink writes the particle catalog into a SQLite database, one
// row per output particle per event, inside a transaction per event.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLiteSink opens (creating if absent) the SQLite database at
// dsn and ensures its schema exists.
func OpenSQLiteSink(dsn string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// WriteEvent inserts eventID's particles inside a single transaction.
func (s *SQLiteSink) WriteEvent(eventID uint64, out *event.EventOutput) error {
	rows := rowsForEvent(eventID, out)
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(
			r.EventID, r.ID, r.Type, r.Shape, r.TrackID, r.GenID, r.PDG,
			r.Px, r.Py, r.Pz,
			r.VtxX, r.VtxY, r.VtxZ, r.VtxT,
			r.EndX, r.EndY, r.EndZ, r.EndT,
			r.DistTravel, r.EnergyInit, r.EnergyDeposit, r.Process,
			r.ParentTrackID, r.ParentID, r.AncestorTrackID, r.AncestorID,
			r.GroupID, r.InteractionID, r.NumVoxels,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert particle row: %w", err)
		}
	}
	return tx.Commit()
}

// DB exposes the underlying connection for ad-hoc queries.
func (s *SQLiteSink) DB() *sql.DB { return s.db }

// Close closes the underlying database connection.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
