package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/dimfu/musictime"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Session is one finished metronome run.
type Session struct {
	ID       int64
	Preset   string
	Tempo    float64
	Position musictime.MusicTime // where the transport stopped
	EndedAt  time.Time
}

// Seconds returns the session length at its tempo.
func (s Session) Seconds() float64 {
	return s.Position.ElapsedSeconds(s.Tempo)
}

type Store struct {
	db *sql.DB
}

const schema = `
create table if not exists sessions
  (
	  id integer not null primary key,
	  preset text,
	  tempo real not null,
	  beats_per_bar integer not null,
	  subdivisions_per_beat integer not null,
	  total_beats real not null,
	  position text not null,
	  ended_at integer not null
  );
`

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open history")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create sessions table")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a session and returns its ID.
func (s *Store) Record(ctx context.Context, session Session) (int64, error) {
	sig := session.Position.Signature()
	res, err := s.db.ExecContext(ctx,
		"insert into sessions(preset, tempo, beats_per_bar, subdivisions_per_beat, total_beats, position, ended_at) values(?, ?, ?, ?, ?, ?, ?)",
		session.Preset,
		session.Tempo,
		sig.BeatsPerBar,
		sig.SubdivisionsPerBeat,
		session.Position.TotalBeats(),
		session.Position.String(),
		session.EndedAt.UnixMilli(),
	)
	if err != nil {
		return 0, errors.Wrap(err, "insert session")
	}
	return res.LastInsertId()
}

// Recent returns up to limit sessions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"select id, preset, tempo, beats_per_bar, subdivisions_per_beat, total_beats, ended_at from sessions order by ended_at desc, id desc limit ?",
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query sessions")
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var (
			session    Session
			sig        musictime.TimeSignature
			totalBeats float64
			endedAt    int64
		)
		if err := rows.Scan(&session.ID, &session.Preset, &session.Tempo, &sig.BeatsPerBar, &sig.SubdivisionsPerBeat, &totalBeats, &endedAt); err != nil {
			return nil, errors.Wrap(err, "scan session")
		}
		pos, err := musictime.NewWithSignature(sig, 0, totalBeats, 0)
		if err != nil {
			return nil, errors.Wrapf(err, "session %d", session.ID)
		}
		session.Position = pos
		session.EndedAt = time.UnixMilli(endedAt)
		sessions = append(sessions, session)
	}
	return sessions, errors.Wrap(rows.Err(), "iterate sessions")
}

// Total returns the sum of all recorded positions expressed in sig. Sessions
// recorded under another signature are converted through their total beats.
func (s *Store) Total(ctx context.Context, sig musictime.TimeSignature) (musictime.MusicTime, error) {
	var beats sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, "select sum(total_beats) from sessions").Scan(&beats); err != nil {
		return musictime.MusicTime{}, errors.Wrap(err, "sum sessions")
	}
	return musictime.NewWithSignature(sig, 0, beats.Float64, 0)
}
