package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/lanes/internal/clock"
	"git.lost.host/meutraa/lanes/internal/config"
	"git.lost.host/meutraa/lanes/internal/engine"
	"git.lost.host/meutraa/lanes/internal/game"
	"git.lost.host/meutraa/lanes/internal/input"
	"git.lost.host/meutraa/lanes/internal/render"
	"git.lost.host/meutraa/lanes/internal/score"
	"git.lost.host/meutraa/lanes/internal/theme"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
)

type Program struct {
	opts  *config.Options
	chart *game.Chart

	engine   *engine.Engine
	clock    clock.Clock
	renderer *render.DefaultRenderer
	theme    theme.Theme
	listener *input.Listener
	keymap   input.Keymap
	streamer beep.StreamSeekCloser

	end              float64 // song time at which the session stops
	decorationFrames int
	inputs           []game.Input
	err              error
}

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// NewProgram prepares a session for chart, or a procedural one when chart
// is nil. dir is where the chart's audio is looked up.
func NewProgram(opts *config.Options, chart *game.Chart, dir string) (*Program, error) {
	if opts.FramePeriod <= 0 {
		return nil, errors.New("frame period must be positive")
	}
	cfg, err := chartConfig(opts, chart)
	if nil != err {
		return nil, err
	}
	e, err := engine.New(cfg, opts.Seed)
	if nil != err {
		return nil, err
	}

	p := &Program{
		opts:             opts,
		chart:            chart,
		engine:           e,
		theme:            &theme.DefaultTheme{Lanes: cfg.Lanes},
		decorationFrames: int(500 * time.Millisecond / opts.FramePeriod),
	}

	if opts.Generate {
		p.chart = nil
		p.end = opts.Length.Seconds()
	} else {
		if err := e.SpawnChart(chart); nil != err {
			return nil, err
		}
		p.end = chart.End() + cfg.Windows.Miss + opts.KeepSeconds
	}

	var base clock.Clock = clock.NewWall(opts.Delay)
	if nil != p.chart && p.chart.Audio != "" {
		streamer, format, err := openAudio(filepath.Join(dir, p.chart.Audio))
		if nil != err {
			log.Println("playing without audio:", err)
		} else {
			p.streamer = streamer
			base = clock.NewStream(streamer, format, speakerLock{})
		}
	}
	p.clock = clock.Offset{Clock: base, Seconds: opts.Offset.Seconds()}

	if opts.Generate {
		if _, err := e.GenerateAhead(opts.BPM, p.clock.Now()); nil != err {
			p.Close()
			return nil, err
		}
	}

	if p.keymap, err = input.NewKeymap(opts.Keys, cfg.Lanes); nil != err {
		p.Close()
		return nil, err
	}
	if p.renderer, err = render.NewDefaultRenderer(cfg.Lanes, int(opts.ColumnSpacing), int(opts.BarRow)); nil != err {
		p.Close()
		return nil, err
	}
	if p.listener, err = input.Open(p.keymap, p.clock); nil != err {
		p.Close()
		return nil, err
	}
	return p, nil
}

func openAudio(file string) (beep.StreamSeekCloser, beep.Format, error) {
	log.Printf("Opening %v\n", file)
	f, err := os.Open(file)
	if nil != err {
		return nil, beep.Format{}, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(file)) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio %v", file)
	}
	if nil != err {
		f.Close()
		return nil, beep.Format{}, err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		streamer.Close()
		return nil, beep.Format{}, err
	}
	return streamer, format, nil
}

func (p *Program) Close() {
	if nil != p.listener {
		p.listener.Close()
	}
	if nil != p.streamer {
		speaker.Clear()
		p.streamer.Close()
	}
}

func (p *Program) Run() error {
	if err := p.renderer.Init(); nil != err {
		return err
	}

	if nil != p.streamer {
		go func() {
			time.Sleep(p.opts.Delay)
			speaker.Play(p.streamer)
		}()
	}

	p.renderer.RenderLoop(p.opts.FramePeriod, p.frame)

	if err := p.renderer.Deinit(); nil != err {
		log.Println("unable to restore terminal", err)
	}
	if nil != p.err {
		return p.err
	}

	s := p.engine.Score()
	notes := 0
	for _, c := range s.Counts {
		notes += c
	}
	fmt.Print(score.Summarize(p.chart, notes, s).Report())
	p.save()

	fmt.Println("Press any key to exit")
	p.listener.Wait()
	return nil
}

func (p *Program) save() {
	if nil == p.chart || len(p.inputs) == 0 {
		return
	}
	store, err := score.Open(p.opts.Database)
	if nil != err {
		log.Println("unable to save replay", err)
		return
	}
	defer store.Close()
	if _, err := store.Save(p.chart, p.inputs, p.opts.Seed); nil != err {
		log.Println(err)
	}
}

// frame is one tick of the host loop: judge the presses that arrived, miss
// what has expired, drop old notes, top up procedural notes and draw.
func (p *Program) frame() bool {
	now := p.clock.Now()
	if now > p.end {
		return false
	}

	presses, quit := p.listener.Poll()
	for _, in := range presses {
		p.inputs = append(p.inputs, in)
		if j, ok := score.Apply(p.engine, in); ok {
			p.decorate(in.Lane, j)
		}
	}
	if quit {
		return false
	}

	for _, v := range p.engine.SweepMisses(now) {
		p.decorate(v.Lane, v.Judgement)
	}
	p.engine.CleanupJudged(now, p.opts.KeepSeconds)

	if p.opts.Generate {
		if _, err := p.engine.GenerateAhead(p.opts.BPM, now); nil != err {
			p.err = err
			return false
		}
	}

	p.renderer.Frame(now, p.engine.Snapshot(), p.theme)
	p.panel(now)
	return true
}

func (p *Program) decorate(lane int, j game.Judgement) {
	l := p.renderer.Layout
	p.renderer.AddDecoration(l.Column(lane)-3, l.HitRow()+1, p.theme.RenderJudgement(j), p.decorationFrames)
}

func (p *Program) panel(now float64) {
	col := p.renderer.Layout.SideColumn()
	s := p.engine.Score()
	p.renderer.Fill(2, col, fmt.Sprintf("       Time:  %8.2f", now))
	p.renderer.Fill(3, col, fmt.Sprintf("      Score:  %8d", s.Score))
	p.renderer.Fill(4, col, fmt.Sprintf("      Combo:  %8d", s.Combo))
	p.renderer.Fill(5, col, fmt.Sprintf("  Max combo:  %8d", s.MaxCombo))
	for i, j := range game.Judgements {
		p.renderer.Fill(7+i, col, fmt.Sprintf("%11v:  %8d", j, s.Counts[j]))
	}
	for lane, r := range p.keymap {
		p.renderer.Fill(13+lane, col, fmt.Sprintf("%11v:  %8c", game.LaneName(lane, len(p.keymap)), r))
	}
}
