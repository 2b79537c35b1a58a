package score

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"git.lost.host/meutraa/lanes/internal/game"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNoReplay = errors.New("no replay recorded for chart")

// History is one recorded session of a chart. Only presses are kept; the
// score is always recomputed from them.
type History struct {
	ID      string
	Sum     string
	Seed    int64
	Created time.Time
	Inputs  []game.Input
}

// Store keeps recorded sessions in SQLite.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, fmt.Errorf("unable to open replay database: %w", err)
	}
	if err := db.Ping(); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to connect to replay database: %w", err)
	}
	db.SetMaxOpenConns(1)

	initStatement := `
	create table if not exists replays
	  (
		  id text not null primary key,
		  sum text not null,
		  seed integer not null,
		  created integer not null,
		  inputs blob not null
	  );
	create index if not exists replays_sum on replays(sum);
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to create replay schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if nil == s.db {
		return nil
	}
	return s.db.Close()
}

// Save records the presses of a session of c and returns the replay id.
func (s *Store) Save(c *game.Chart, inputs []game.Input, seed int64) (string, error) {
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		return "", fmt.Errorf("unable to marshal inputs: %w", err)
	}
	id := uuid.Must(uuid.NewV7()).String()
	_, err = s.db.Exec("insert into replays(id, sum, seed, created, inputs) values(?, ?, ?, ?, ?)",
		id, c.Sum(), seed, time.Now().UnixMilli(), data)
	if nil != err {
		return "", fmt.Errorf("unable to save replay: %w", err)
	}
	return id, nil
}

// Load returns every session recorded for c, oldest first.
func (s *Store) Load(c *game.Chart) ([]History, error) {
	rows, err := s.db.Query("select id, sum, seed, created, inputs from replays where sum = ? order by created, id", c.Sum())
	if nil != err {
		return nil, fmt.Errorf("unable to load replays: %w", err)
	}
	defer rows.Close()

	histories := []History{}
	for rows.Next() {
		var h History
		var created int64
		var data []byte
		if err := rows.Scan(&h.ID, &h.Sum, &h.Seed, &created, &data); nil != err {
			return nil, fmt.Errorf("unable to read replay: %w", err)
		}
		var ins []InputsCompact
		if err := json.Unmarshal(data, &ins); nil != err {
			log.Println("unable to unmarshal replay", h.ID, err)
			continue
		}
		h.Created = time.UnixMilli(created)
		h.Inputs = uncompactInputs(ins)
		histories = append(histories, h)
	}
	if err := rows.Err(); nil != err {
		return nil, fmt.Errorf("unable to load replays: %w", err)
	}
	if len(histories) == 0 {
		return nil, ErrNoReplay
	}
	return histories, nil
}
