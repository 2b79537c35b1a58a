package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"git.lost.host/meutraa/lanes/internal/game"
)

type JSONParser struct{}

type jsonNote struct {
	T    *float64 `json:"t"`
	Lane *int     `json:"lane"`
}

type jsonChart struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Artist          string     `json:"artist"`
	Audio           string     `json:"audio"`
	ApproachSeconds *float64   `json:"approachSeconds"`
	Lanes           int        `json:"lanes"`
	Notes           []jsonNote `json:"notes"`
}

func (p *JSONParser) Parse(file string) ([]*game.Chart, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	chart, err := p.Decode(f)
	if nil != err {
		return nil, fmt.Errorf("%v: %w", file, err)
	}
	return []*game.Chart{chart}, nil
}

// Decode reads one chart document. Missing approachSeconds falls back to
// game.DefaultApproachSeconds and missing lanes to the widest of
// game.DefaultLanes and the highest lane used.
func (p *JSONParser) Decode(r io.Reader) (*game.Chart, error) {
	var raw jsonChart
	if err := json.NewDecoder(r).Decode(&raw); nil != err {
		return nil, fmt.Errorf("%w: %v", ErrMalformedChart, err)
	}
	if raw.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrMalformedChart)
	}

	chart := &game.Chart{
		ID:              raw.ID,
		Title:           raw.Title,
		Artist:          raw.Artist,
		Audio:           raw.Audio,
		ApproachSeconds: game.DefaultApproachSeconds,
		Lanes:           raw.Lanes,
		Notes:           make([]game.ChartNote, 0, len(raw.Notes)),
	}
	if nil != raw.ApproachSeconds {
		chart.ApproachSeconds = *raw.ApproachSeconds
	}
	if chart.ApproachSeconds <= 0 || math.IsNaN(chart.ApproachSeconds) {
		return nil, fmt.Errorf("%w: approachSeconds must be positive", ErrMalformedChart)
	}

	used := 0
	for i, n := range raw.Notes {
		if nil == n.T || nil == n.Lane {
			return nil, fmt.Errorf("%w: note %d needs both t and lane", ErrMalformedChart, i)
		}
		if *n.Lane < 0 || math.IsNaN(*n.T) || math.IsInf(*n.T, 0) {
			return nil, fmt.Errorf("%w: note %d has lane %d at %v", ErrMalformedChart, i, *n.Lane, *n.T)
		}
		if *n.Lane+1 > used {
			used = *n.Lane + 1
		}
		chart.Notes = append(chart.Notes, game.ChartNote{Time: *n.T, Lane: *n.Lane})
	}

	switch {
	case chart.Lanes < 0:
		return nil, fmt.Errorf("%w: negative lane count", ErrMalformedChart)
	case chart.Lanes == 0:
		chart.Lanes = game.DefaultLanes
		if used > chart.Lanes {
			chart.Lanes = used
		}
	case used > chart.Lanes:
		return nil, fmt.Errorf("%w: notes use %d lanes but chart declares %d", ErrMalformedChart, used, chart.Lanes)
	}
	return chart, nil
}
