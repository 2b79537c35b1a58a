package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/lanes/internal/config"
	"git.lost.host/meutraa/lanes/internal/engine"
	"git.lost.host/meutraa/lanes/internal/game"
	"git.lost.host/meutraa/lanes/internal/parser"
	"git.lost.host/meutraa/lanes/internal/score"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	opts, err := config.Parse(args)
	if nil != err {
		return err
	}

	var chart *game.Chart
	var dir string
	if !opts.Generate {
		chart, dir, err = loadChart(opts.Chart, opts.Difficulty)
		if nil != err {
			if opts.Replay {
				return err
			}
			log.Println("unable to load chart, playing procedural notes instead:", err)
			opts.Generate = true
		}
	}

	if opts.Replay {
		return replay(opts, chart)
	}

	p, err := NewProgram(opts, chart, dir)
	if nil != err {
		return err
	}
	defer p.Close()
	return p.Run()
}

// loadChart accepts a chart file or a song directory holding one.
func loadChart(file string, difficulty int) (*game.Chart, string, error) {
	info, err := os.Stat(file)
	if nil != err {
		return nil, "", err
	}
	if info.IsDir() {
		file, err = findChart(file)
		if nil != err {
			return nil, "", err
		}
	}

	psr, err := parser.ForFile(file)
	if nil != err {
		return nil, "", err
	}
	charts, err := psr.Parse(file)
	if nil != err {
		return nil, "", err
	}
	if len(charts) == 0 {
		return nil, "", fmt.Errorf("%w: %v holds no playable chart", parser.ErrMalformedChart, file)
	}
	if difficulty < 0 || difficulty >= len(charts) {
		for i, c := range charts {
			fmt.Printf("%2v) %3v  %5v  %v\n", i, c.Difficulty.Msd, len(c.Notes), c.Difficulty.Name)
		}
		return nil, "", fmt.Errorf("difficulty %d not in [0, %d)", difficulty, len(charts))
	}
	return charts[difficulty], filepath.Dir(file), nil
}

func findChart(dir string) (string, error) {
	var found string
	if err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch strings.ToLower(path.Ext(info.Name())) {
		case ".json":
			found = p
		case ".sm":
			if found == "" {
				found = p
			}
		}
		return nil
	}); nil != err {
		return "", fmt.Errorf("unable to walk song directory: %w", err)
	}
	if found == "" {
		return "", errors.New("unable to find a .json or .sm chart in given directory")
	}
	return found, nil
}

func replay(opts *config.Options, chart *game.Chart) error {
	if nil == chart {
		return errors.New("replays need a chart")
	}
	cfg, err := chartConfig(opts, chart)
	if nil != err {
		return err
	}

	store, err := score.Open(opts.Database)
	if nil != err {
		return err
	}
	defer store.Close()

	histories, err := store.Load(chart)
	if nil != err {
		return err
	}
	for _, h := range histories {
		sum, err := score.Replay(cfg, chart, h.Inputs)
		if nil != err {
			return err
		}
		fmt.Printf("%v  %v\n%v\n", h.ID, h.Created.Format("2006-01-02 15:04"), sum.Report())
	}
	return nil
}

// chartConfig is the engine tuning for a chart: its approach time and lane
// count win over the tuning file.
func chartConfig(opts *config.Options, chart *game.Chart) (cfg engine.Config, err error) {
	approach := 0.0
	if nil != chart {
		approach = chart.ApproachSeconds
	}
	cfg, err = opts.EngineConfig(approach)
	if nil != err {
		return cfg, err
	}
	if nil != chart && chart.Lanes > 0 {
		cfg.Lanes = chart.Lanes
	}
	return cfg, cfg.Validate()
}
