package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ivlev/kimaybe/internal/anim"
	"github.com/ivlev/kimaybe/internal/config"
	"github.com/ivlev/kimaybe/internal/director"
	"github.com/ivlev/kimaybe/internal/engine"
	"github.com/ivlev/kimaybe/internal/layout"
	"github.com/ivlev/kimaybe/internal/prefs"
	"github.com/ivlev/kimaybe/internal/renderer"
	"github.com/ivlev/kimaybe/internal/source"
	"github.com/ivlev/kimaybe/internal/viewer"
)

var (
	scenarioFlag = flag.String("scenario", "", "Сценарий (по умолчанию: самый свежий в internal/scenarios/)")
	configFlag   = flag.String("config", "", "YAML с настройками анимации")
	scaleFlag    = flag.Int("scale", 3, "Масштаб окна")
	slowFlag     = flag.Int("slow", 1, "Замедление времени")
)

// Preview shows the watch display in a window. Up/Down page through the
// hours, A toggles the animation, V flips the wind vane, Space replays the
// scenario presses, Q quits.
type Preview struct {
	scenario *director.Scenario
	src      source.Source
	prefs    *prefs.Manager

	timeline *anim.Timeline
	canvas   *renderer.Canvas
	viewer   *viewer.Viewer

	// воспроизведение шагов сценария
	replay  bool
	elapsed time.Duration
	steps   []director.Step
}

func NewPreview(cfg *config.Config, scenario *director.Scenario, src source.Source, pm *prefs.Manager) (*Preview, error) {
	opts := viewer.DefaultOptions()
	slotOpts, err := cfg.SlotOptions()
	if err != nil {
		return nil, err
	}
	opts.Slots = slotOpts
	opts.Animate = pm.Prefs().Animate
	opts.Offsets = scenario.Display.Offsets

	d := scenario.Display
	p := &Preview{
		scenario: scenario,
		src:      src,
		prefs:    pm,
		timeline: anim.NewTimeline(),
		canvas:   renderer.NewCanvas(d.Width, d.Height, color.RGBA{255, 255, 255, 255}),
	}
	p.viewer = viewer.New(layout.New(d.Width, d.Height, d.Round), p.canvas, p.timeline, opts)
	if err := p.reload(pm.Prefs().LastHour); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Preview) reload(hour int) error {
	if p.scenario.Vane != nil {
		p.scenario.Vane.Origin = p.prefs.Prefs().WindVaneOrigin
	}
	slots, err := engine.LoadSlots(p.scenario, p.src)
	if err != nil {
		return err
	}
	p.viewer.SetSlots(slots, hour)
	return nil
}

func (p *Preview) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyK) {
		p.viewer.NavigateUp()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		p.viewer.NavigateDown()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		on := p.prefs.ToggleAnimate()
		p.viewer.SetAnimate(on)
		log.Printf("[preview] animation: %v", on)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) && p.scenario.Page == director.PageWind {
		pr := p.prefs.Prefs()
		pr.WindVaneOrigin = !pr.WindVaneOrigin
		if err := p.reload(p.viewer.Hour()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.replay = true
		p.elapsed = 0
		p.steps = p.scenario.Steps
		p.viewer.SetSlots(p.viewer.Slots(), p.scenario.StartHour)
	}

	dt := time.Second / time.Duration(ebiten.TPS()) / time.Duration(*slowFlag)
	if p.replay {
		p.elapsed += dt
		for len(p.steps) > 0 && time.Duration(p.steps[0].Time*float64(time.Second)) <= p.elapsed {
			p.apply(p.steps[0])
			p.steps = p.steps[1:]
		}
		p.replay = len(p.steps) > 0
	}
	p.timeline.Advance(dt)
	return nil
}

func (p *Preview) apply(st director.Step) {
	switch st.Action {
	case director.ActionUp:
		p.viewer.NavigateUp()
	case director.ActionDown:
		p.viewer.NavigateDown()
	case director.ActionStop:
		p.viewer.Stop()
	case director.ActionAnimate:
		p.viewer.SetAnimate(true)
	case director.ActionStatic:
		p.viewer.SetAnimate(false)
	}
}

func (p *Preview) Draw(screen *ebiten.Image) {
	p.canvas.Render()
	screen.WritePixels(p.canvas.Image().Pix)
}

func (p *Preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.canvas.Width(), p.canvas.Height()
}

func (p *Preview) Close() {
	p.prefs.SetLastHour(p.viewer.Hour())
	if err := p.prefs.Save(); err != nil {
		log.Printf("[!] %v", err)
	}
}

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		if err := config.Load(*configFlag, cfg); err != nil {
			log.Fatalf("[-] Ошибка конфигурации: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] %v", err)
	}
	if *slowFlag < 1 {
		*slowFlag = 1
	}

	path := *scenarioFlag
	if path == "" {
		latest, err := director.FindLatestScenario()
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Создайте сценарий: go run ./cmd/kmscenario", err)
		}
		path = latest
	}
	scenario, err := director.ReadScenario(path)
	if err != nil {
		log.Fatalf("[-] Ошибка чтения сценария: %v", err)
	}
	src, err := source.NewFileSource(filepath.Dir(path))
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	defer src.Close()

	pm := prefs.Open(prefs.AppName)
	preview, err := NewPreview(cfg, scenario, src, pm)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	defer preview.Close()

	d, scale := scenario.Display, *scaleFlag
	ebiten.SetWindowSize(d.Width*scale, d.Height*scale)
	ebiten.SetWindowTitle(fmt.Sprintf("kimaybe - %s", filepath.Base(path)))

	if err := ebiten.RunGame(preview); err != nil {
		log.Fatal(err)
	}
}
