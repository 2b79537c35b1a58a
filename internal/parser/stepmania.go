package parser

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/lanes/internal/game"
)

// StepManiaParser reads .sm simfiles. Taps and hold heads become notes,
// everything else in a row is ignored.
type StepManiaParser struct{}

type bpm struct {
	StartingBeat float64
	Value        float64
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note
func isTap(c byte) bool {
	return c == '1' || c == '2' || c == '4'
}

func (p *StepManiaParser) secondsPerRow(rates []bpm, currentBeat, beatsPerRow float64) float64 {
	sel := rates[0].Value
	for _, r := range rates {
		if currentBeat >= r.StartingBeat {
			sel = r.Value
		} else {
			break
		}
	}
	return beatsPerRow * 60.0 / sel
}

func (p *StepManiaParser) Parse(file string) ([]*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	charts, err := p.ParseString(string(data))
	if nil != err {
		return nil, fmt.Errorf("%v: %w", file, err)
	}
	return charts, nil
}

func (p *StepManiaParser) ParseString(data string) ([]*game.Chart, error) {
	str := strings.ReplaceAll(data, "\r", "")
	sections := strings.Split(str, "#NOTES:")

	base := game.Chart{}
	offset := 0.0
	rates := []bpm{}

	for _, tag := range strings.Split(sections[0], "#") {
		name, value, ok := strings.Cut(strings.TrimSpace(tag), ":")
		if !ok {
			continue
		}
		if end := strings.Index(value, ";"); end >= 0 {
			value = value[:end]
		}
		value = strings.TrimSpace(value)
		switch name {
		case "TITLE":
			base.Title = value
		case "ARTIST":
			base.Artist = value
		case "MUSIC":
			base.Audio = value
		case "OFFSET":
			offs, err := strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, fmt.Errorf("%w: offset %q", ErrMalformedChart, value)
			}
			offset = -offs
		case "BPMS":
			for _, pair := range strings.Split(strings.ReplaceAll(value, "\n", ""), ",") {
				beat, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
				if !ok {
					return nil, fmt.Errorf("%w: bpm %q", ErrMalformedChart, pair)
				}
				sb, err := strconv.ParseFloat(beat, 64)
				if nil != err {
					return nil, fmt.Errorf("%w: bpm beat %q", ErrMalformedChart, beat)
				}
				v, err := strconv.ParseFloat(value, 64)
				if nil != err || v <= 0 {
					return nil, fmt.Errorf("%w: bpm value %q", ErrMalformedChart, value)
				}
				rates = append(rates, bpm{StartingBeat: sb, Value: v})
			}
		}
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: no BPMS", ErrMalformedChart)
	}

	charts := []*game.Chart{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			return nil, fmt.Errorf("%w: truncated #NOTES header", ErrMalformedChart)
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		nKeys, ok := game.NKeyMap[chartType]
		if !ok {
			continue
		}
		difficulty := game.Difficulty{
			Name:  strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			Msd:   strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			NKeys: nKeys,
		}

		notes, err := p.parseNotes(lines[6], int(nKeys), rates, offset)
		if nil != err {
			return nil, fmt.Errorf("%v: %w", difficulty.Name, err)
		}

		chart := base
		chart.ID = chartType + "/" + difficulty.Name
		chart.Lanes = int(nKeys)
		chart.Difficulty = difficulty
		chart.Notes = notes
		charts = append(charts, &chart)
	}

	return charts, nil
}

func (p *StepManiaParser) parseNotes(section string, nKeys int, rates []bpm, offset float64) ([]game.ChartNote, error) {
	if end := strings.Index(section, ";"); end >= 0 {
		section = section[:end]
	}

	// Start time of first note
	seconds := offset
	currentBeat := 0.0
	notes := []game.ChartNote{}

	for _, block := range strings.Split(section, ",") {
		rows := []string{}
		for _, l := range strings.Split(block, "\n") {
			if i := strings.Index(l, "//"); i >= 0 {
				l = l[:i]
			}
			l = strings.TrimSpace(l)
			if l == "" {
				continue
			}
			if len(l) != nKeys {
				return nil, fmt.Errorf("%w: row %q is not %d wide", ErrMalformedChart, l, nKeys)
			}
			rows = append(rows, l)
		}
		if len(rows) == 0 {
			continue
		}

		// Beat count is 4 per block
		beatsPerRow := 4.0 / float64(len(rows)) // 1/4, 1/8, 1/16, 1/24 etc

		for _, row := range rows {
			for lane := 0; lane < nKeys; lane++ {
				if isTap(row[lane]) {
					notes = append(notes, game.ChartNote{Time: seconds, Lane: lane})
				}
			}
			seconds += p.secondsPerRow(rates, currentBeat, beatsPerRow)
			currentBeat += beatsPerRow
		}
	}

	return notes, nil
}
