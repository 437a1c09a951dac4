package eventlog

import (
	"context"
	"database/sql"
	"time"

	"escrow-market/internal/domain/offer"
	"escrow-market/internal/infra"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS market_events (
	seq      INTEGER PRIMARY KEY AUTOINCREMENT,
	type     TEXT    NOT NULL,
	kind     TEXT    NOT NULL,
	offer_id INTEGER NOT NULL,
	at       INTEGER NOT NULL
);
`

// Journal is the append-only sqlite record of emitted marketplace events.
// Offers themselves stay in memory; the journal is the durable audit feed.
type Journal struct {
	db *sql.DB
}

func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindStorageFailure, "open event journal", err)
	}
	// The journal is written under the engine lock; a single connection keeps
	// modernc's file locking out of the picture.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, infra.WrapRepoErr(infra.KindStorageFailure, "create event journal schema", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Append stores the event and returns it with its journal sequence set.
func (j *Journal) Append(ctx context.Context, evt offer.Event) (offer.Event, error) {
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO market_events (type, kind, offer_id, at) VALUES (?, ?, ?, ?)`,
		string(evt.Type), string(evt.Kind), evt.OfferID, evt.At.UnixMilli(),
	)
	if err != nil {
		return offer.Event{}, infra.WrapRepoErr(infra.KindStorageFailure, "append event", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return offer.Event{}, infra.WrapRepoErr(infra.KindStorageFailure, "read event sequence", err)
	}
	evt.Seq = seq
	return evt, nil
}

// List returns up to limit events with seq > afterSeq, in append order.
func (j *Journal) List(ctx context.Context, afterSeq int64, limit int) ([]offer.Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT seq, type, kind, offer_id, at FROM market_events WHERE seq > ? ORDER BY seq ASC LIMIT ?`,
		afterSeq, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindStorageFailure, "list events", err)
	}
	defer rows.Close()

	var out []offer.Event
	for rows.Next() {
		var (
			evt      offer.Event
			typ      string
			kind     string
			atMillis int64
		)
		if err := rows.Scan(&evt.Seq, &typ, &kind, &evt.OfferID, &atMillis); err != nil {
			return nil, infra.WrapRepoErr(infra.KindStorageFailure, "scan event", err)
		}
		evt.Type = offer.EventType(typ)
		evt.Kind = offer.Kind(kind)
		evt.At = time.UnixMilli(atMillis).UTC()
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindStorageFailure, "iterate events", err)
	}
	return out, nil
}
