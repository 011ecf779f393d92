package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store keeps finished sessions in a sqlite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// History is a stored session
type History struct {
	ID       string
	Sum      string
	PlayedAt time.Time
	Result   Result
	Inputs   []game.Input
}

const initStatement = `
create table if not exists sessions
  (
	  id text not null primary key,
	  sum text not null,
	  played_at integer not null,
	  score integer not null,
	  max_combo integer not null,
	  accuracy real not null,
	  perfect integer not null,
	  good integer not null,
	  miss integer not null,
	  rank text not null,
	  full_combo integer not null,
	  all_perfect integer not null,
	  inputs blob
  );
create index if not exists sessions_sum on sessions(sum, played_at);
`

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open score database: %w", err)
	}
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to create score tables: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if nil != s.db {
		return s.db.Close()
	}
	return nil
}

// HashChart identifies a chart by its note schedule, so the same notes under
// another title share a history.
func HashChart(c *game.Chart) string {
	h := sha256.New()
	for _, n := range c.Notes {
		head := n.Start()
		fmt.Fprintf(h, "%s %d %d", game.Kind(n), head.Time, head.Lane)
		switch n := n.(type) {
		case game.Tap:
		case game.Hold:
			fmt.Fprintf(h, " %d", n.Duration)
		case game.Path:
			for _, seg := range n.Segments {
				fmt.Fprintf(h, " %d:%d", seg.Time, seg.Lane)
			}
		default:
			panic("score: unknown note variant")
		}
		h.Write([]byte{'\n'})
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Save stores a result with the inputs that produced it and returns the id
// of the new session.
func (s *Store) Save(c *game.Chart, r Result, inputs []game.Input) (string, error) {
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		return "", fmt.Errorf("unable to marshal inputs: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.Exec(
		`insert into sessions(id, sum, played_at, score, max_combo, accuracy, perfect, good, miss, rank, full_combo, all_perfect, inputs)
		values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, HashChart(c), s.now().UnixNano(),
		r.Score, r.MaxCombo, r.Accuracy, r.Perfect, r.Good, r.Miss, r.Rank, r.FullCombo, r.AllPerfect,
		data,
	)
	if nil != err {
		return "", fmt.Errorf("unable to save session: %w", err)
	}
	return id, nil
}

// Load returns every stored session of a chart, newest first.
func (s *Store) Load(c *game.Chart) ([]History, error) {
	rows, err := s.db.Query(
		`select id, sum, played_at, score, max_combo, accuracy, perfect, good, miss, rank, full_combo, all_perfect, inputs
		from sessions where sum = ? order by played_at desc`,
		HashChart(c),
	)
	if nil != err {
		return nil, fmt.Errorf("unable to load sessions: %w", err)
	}
	defer rows.Close()

	histories := []History{}
	for rows.Next() {
		var h History
		var playedAt int64
		var data []byte
		r := &h.Result
		if err := rows.Scan(&h.ID, &h.Sum, &playedAt, &r.Score, &r.MaxCombo, &r.Accuracy,
			&r.Perfect, &r.Good, &r.Miss, &r.Rank, &r.FullCombo, &r.AllPerfect, &data); nil != err {
			return nil, fmt.Errorf("unable to read session: %w", err)
		}
		var ins []InputsCompact
		if err := json.Unmarshal(data, &ins); nil != err {
			log.Println("unable to unmarshal input history of", h.ID, err)
			continue
		}
		h.PlayedAt = time.Unix(0, playedAt)
		h.Inputs = uncompactInputs(ins)
		histories = append(histories, h)
	}
	return histories, rows.Err()
}

// Best returns the highest scoring session of a chart, if any
func (s *Store) Best(c *game.Chart) (*History, error) {
	histories, err := s.Load(c)
	if nil != err || len(histories) == 0 {
		return nil, err
	}
	best := &histories[0]
	for i := range histories[1:] {
		if histories[i+1].Result.Score > best.Result.Score {
			best = &histories[i+1]
		}
	}
	return best, nil
}
