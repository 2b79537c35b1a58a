package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"git.lost.host/meutraa/lanes/internal/engine"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

const Version = "0.3.0"

type Options struct {
	Chart         string
	Difficulty    int
	Tuning        string
	Seed          int64
	Offset        time.Duration
	Delay         time.Duration
	FramePeriod   time.Duration
	ColumnSpacing uint
	BarRow        uint
	Keys          string
	KeepSeconds   float64
	Generate      bool
	BPM           float64
	Length        time.Duration
	Database      string
	Replay        bool
}

// Parse reads the command line. args excludes the program name.
func Parse(args []string) (*Options, error) {
	o := &Options{}
	app := kingpin.New("lanes", "Lane based rhythm game in the terminal")
	app.Version(Version)

	app.Arg("chart", "Chart file (.json or .sm) or a directory holding one").StringVar(&o.Chart)
	app.Flag("difficulty", "Index of the chart to play when a file holds several").Default("0").Short('D').IntVar(&o.Difficulty)
	app.Flag("tuning", "YAML file overriding engine tuning").Short('t').ExistingFileVar(&o.Tuning)
	app.Flag("seed", "Seed for procedural notes").Default("0").Int64Var(&o.Seed)
	app.Flag("offset", "Global input offset").Default("0ms").Short('o').DurationVar(&o.Offset)
	app.Flag("delay", "Start delay").Default("1.5s").Short('d').DurationVar(&o.Delay)
	app.Flag("frame-period", "Render frame period").Default("4ms").Short('p').DurationVar(&o.FramePeriod)
	app.Flag("spacing", "Columns between lanes").Default("6").Short('S').UintVar(&o.ColumnSpacing)
	app.Flag("bar-row", "Rows from the bottom to render the hit bar").Default("4").UintVar(&o.BarRow)
	app.Flag("keys", "One key per lane, left to right").Default("dfjk").Short('k').StringVar(&o.Keys)
	app.Flag("keep", "Seconds judged notes stay on screen").Default("2.0").Float64Var(&o.KeepSeconds)
	app.Flag("generate", "Play procedural notes instead of a chart").Short('g').BoolVar(&o.Generate)
	app.Flag("bpm", "Tempo of procedural notes").Default("120").Float64Var(&o.BPM)
	app.Flag("length", "Length of a procedural session").Default("60s").DurationVar(&o.Length)
	app.Flag("db", "Replay database").Default("./replays.db").StringVar(&o.Database)
	app.Flag("replay", "Score the stored replays of the chart instead of playing").Short('r').BoolVar(&o.Replay)

	if _, err := app.Parse(args); nil != err {
		return nil, err
	}
	if o.Chart == "" && !o.Generate {
		return nil, errors.New("a chart is required unless --generate is set")
	}
	if o.KeepSeconds < 0 {
		return nil, errors.New("--keep must not be negative")
	}
	return o, nil
}

// EngineConfig returns the engine defaults with the tuning file, if any,
// applied on top. An approach time above zero overrides the tuned one, which
// lets a chart's own approach time win.
func (o *Options) EngineConfig(approachSeconds float64) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if o.Tuning != "" {
		data, err := os.ReadFile(o.Tuning)
		if nil != err {
			return cfg, err
		}
		if err := LoadTuning(bytes.NewReader(data), &cfg); nil != err {
			return cfg, fmt.Errorf("%v: %w", o.Tuning, err)
		}
	}
	if approachSeconds > 0 {
		cfg.ApproachSeconds = approachSeconds
	}
	return cfg, cfg.Validate()
}

// LoadTuning overlays a YAML document onto cfg. Unknown keys are rejected.
func LoadTuning(r io.Reader, cfg *engine.Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); nil != err && err != io.EOF {
		return err
	}
	return nil
}
