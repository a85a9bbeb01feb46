package engine

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/kimaybe/internal/analyzer"
	"github.com/ivlev/kimaybe/internal/anim"
	"github.com/ivlev/kimaybe/internal/config"
	"github.com/ivlev/kimaybe/internal/director"
	"github.com/ivlev/kimaybe/internal/effects"
	"github.com/ivlev/kimaybe/internal/layout"
	"github.com/ivlev/kimaybe/internal/renderer"
	"github.com/ivlev/kimaybe/internal/source"
	"github.com/ivlev/kimaybe/internal/system"
	"github.com/ivlev/kimaybe/internal/video"
	"github.com/ivlev/kimaybe/internal/viewer"
)

// FramePattern names the PNG frames inside the frames directory.
const FramePattern = "f_%05d.png"

var background = color.RGBA{255, 255, 255, 255}

// VideoProject replays a scenario on a virtual watch display and records it.
type VideoProject struct {
	Config  *config.Config
	Source  source.Source
	Encoder video.VideoEncoder
	Effect  effects.Effect
	Pool    *system.ImagePool

	Stats Stats
}

// Stats describes the last Run.
type Stats struct {
	Frames      int
	Redraws     int
	Transitions int
	Refused     int // нажатия во время анимации или на краю прогноза
	Misplaced   int
	Duration    float64
	Render      time.Duration
	Write       time.Duration
	Encode      time.Duration
	Total       time.Duration
}

func NewVideoProject(cfg *config.Config, src source.Source, ve video.VideoEncoder, eff effects.Effect) *VideoProject {
	return &VideoProject{
		Config:  cfg,
		Source:  src,
		Encoder: ve,
		Effect:  eff,
		Pool:    system.NewImagePool(),
	}
}

// session is the display state of one Run.
type session struct {
	scenario *director.Scenario
	timeline *anim.Timeline
	canvas   *renderer.Canvas
	viewer   *viewer.Viewer
	detector *analyzer.InkDetector
}

func (p *VideoProject) Run(ctx context.Context) error {
	startTime := time.Now()
	p.Stats = Stats{}

	scenario, err := director.ReadScenario(p.Config.ScenarioPath)
	if err != nil {
		return fmt.Errorf("ошибка чтения сценария: %w", err)
	}
	src := p.Source
	if src == nil {
		base := p.Config.IconsPath
		if base == "" {
			base = filepath.Dir(p.Config.ScenarioPath)
		}
		fs, err := source.NewFileSource(base)
		if err != nil {
			return err
		}
		defer fs.Close()
		src = fs
	}

	s, err := p.newSession(scenario, src)
	if err != nil {
		return err
	}

	framesDir := p.Config.FramesDir
	if framesDir == "" {
		framesDir, err = os.MkdirTemp("", "kimaybe_")
		if err != nil {
			return err
		}
		defer os.RemoveAll(framesDir)
	} else if err := os.MkdirAll(framesDir, 0755); err != nil {
		return err
	}

	fmt.Println("--- [PROJECT: KM RECORDER] ---")
	fmt.Printf("[*] Сценарий: %s | Страница: %s | Шагов: %d\n", p.Config.ScenarioPath, page(scenario), len(scenario.Steps))
	fmt.Printf("[*] Дисплей: %dx%d @ %d FPS | Длительность: %.2fs\n", scenario.Display.Width, scenario.Display.Height, p.Config.FPS, scenario.Duration)
	fmt.Println("-----------------------------")

	if err := p.record(ctx, s, framesDir); err != nil {
		return err
	}

	if p.Config.Verify && p.Stats.Misplaced > 0 {
		return fmt.Errorf("проверка не пройдена: %d иконок вне своих слотов", p.Stats.Misplaced)
	}

	if !p.Config.SkipVideo {
		if err := p.encode(ctx, scenario, framesDir); err != nil {
			return err
		}
	}

	p.Stats.Total = time.Since(startTime)
	if p.Config.ShowStats {
		p.report()
	}
	return nil
}

func page(s *director.Scenario) string {
	if s.Page == "" {
		return director.PageForecast
	}
	return s.Page
}

func (p *VideoProject) newSession(scenario *director.Scenario, src source.Source) (*session, error) {
	slotOpts, err := p.Config.SlotOptions()
	if err != nil {
		return nil, err
	}
	slots, err := LoadSlots(scenario, src)
	if err != nil {
		return nil, err
	}

	d := scenario.Display
	s := &session{
		scenario: scenario,
		timeline: anim.NewTimeline(),
		canvas:   renderer.NewCanvas(d.Width, d.Height, background),
		detector: analyzer.NewInkDetector(background),
	}
	opts := viewer.DefaultOptions()
	opts.Animate = d.Animate
	opts.Offsets = d.Offsets
	opts.Slots = slotOpts
	s.viewer = viewer.New(layout.New(d.Width, d.Height, d.Round), s.canvas, s.timeline, opts)
	s.viewer.SetSlots(slots, scenario.StartHour)
	return s, nil
}

// LoadSlots builds the viewer slots of a scenario page from src.
func LoadSlots(scenario *director.Scenario, src source.Source) ([]viewer.Slot, error) {
	if scenario.Page == director.PageWind {
		v := scenario.Vane
		cardinal, err := src.Load(v.Cardinal)
		if err != nil {
			return nil, fmt.Errorf("стрелка %s: %w", v.Cardinal, err)
		}
		diagonal, err := src.Load(v.Diagonal)
		if err != nil {
			return nil, fmt.Errorf("стрелка %s: %w", v.Diagonal, err)
		}
		hours := make([]viewer.Wind, len(v.Hours))
		for i, h := range v.Hours {
			hours[i] = viewer.Wind{Label: h.Label, Degrees: h.Degrees, Speed: h.Speed}
		}
		return viewer.VaneSlots(hours, cardinal, diagonal, v.Origin), nil
	}

	out := make([]viewer.Slot, len(scenario.Slots))
	for i, sl := range scenario.Slots {
		img, err := src.Load(sl.Icon)
		if err != nil {
			return nil, fmt.Errorf("слот %d (%s): %w", i, sl.Label, err)
		}
		out[i] = viewer.Slot{Label: sl.Label, Text: sl.Text, Icon: img, Accessory: sl.Accessory}
	}
	return out, nil
}

// record steps the virtual clock frame by frame and writes every frame as
// PNG. Writers run in parallel; the display itself is single threaded.
func (p *VideoProject) record(ctx context.Context, s *session, dir string) error {
	fps := p.Config.FPS
	total := frameCount(s.scenario.Duration, fps)
	p.Stats.Duration = s.scenario.Duration

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Config.Workers + 1)

	renderStart := time.Now()
	steps := s.scenario.Steps
	animating := false

	for i := 0; i < total; i++ {
		if err := gctx.Err(); err != nil {
			break
		}
		at := frameTime(i, fps)
		for len(steps) > 0 && seconds(steps[0].Time) <= at {
			s.timeline.Advance(seconds(steps[0].Time) - s.timeline.Now())
			p.apply(s, steps[0])
			steps = steps[1:]
		}
		s.timeline.Advance(at - s.timeline.Now())

		if s.canvas.Render() {
			p.Stats.Redraws++
		}
		active := s.viewer.Coordinator().IsActive()
		if animating && !active {
			p.Stats.Misplaced += p.verify(s)
		}
		animating = active

		frame := s.canvas.Snapshot(p.Pool.Get(s.canvas.Bounds()))
		path := filepath.Join(dir, fmt.Sprintf(FramePattern, i))
		g.Go(func() error {
			defer p.Pool.Put(frame)
			return writePNG(path, frame)
		})
		p.Stats.Frames++
	}
	p.Stats.Render = time.Since(renderStart)

	writeStart := time.Now()
	if err := g.Wait(); err != nil {
		return fmt.Errorf("запись кадров: %w", err)
	}
	p.Stats.Write = time.Since(writeStart)

	s.viewer.Stop()
	p.Stats.Misplaced += p.verify(s)
	if live := s.timeline.Live(); live != 0 {
		log.Printf("[!] %d анимаций не освобождено", live)
	}
	fmt.Printf("[>] Кадров: %d | Перерисовок: %d | Переходов: %d\n", p.Stats.Frames, p.Stats.Redraws, p.Stats.Transitions)
	return ctx.Err()
}

func (p *VideoProject) apply(s *session, st director.Step) {
	v := s.viewer
	moved := true
	switch st.Action {
	case director.ActionUp:
		moved = v.NavigateUp()
	case director.ActionDown:
		moved = v.NavigateDown()
	case director.ActionStop:
		v.Stop()
		return
	case director.ActionAnimate:
		v.SetAnimate(true)
		return
	case director.ActionStatic:
		v.SetAnimate(false)
		return
	}
	if !moved {
		p.Stats.Refused++
		if p.Config.Debug {
			log.Printf("[*] %.2fs: %s пропущено (%s)", st.Time, st.Action, v)
		}
		return
	}
	if v.Animate() {
		p.Stats.Transitions++
	}
}

// verify checks that every icon of the current hour is drawn inside its
// slot. It returns the number of misplaced icons.
func (p *VideoProject) verify(s *session) int {
	if !p.Config.Verify {
		return 0
	}
	s.canvas.Render()
	l := s.viewer.Layout()
	hour := s.viewer.Hour()
	n := len(s.viewer.Slots())
	bad := 0
	for _, slot := range []layout.Slot{layout.Prev, layout.Current, layout.Next} {
		h := hour + int(slot) - 1
		if h < 0 || h >= n {
			continue
		}
		r := l.Icon(slot)
		want := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
		got, ok := s.detector.InkBounds(s.canvas.Image(), want.Inset(-2))
		if ok && !got.In(want) {
			log.Printf("[!] час %d, слот %s: изображение %v вне %v", h, slot, got, want)
			bad++
		}
	}
	return bad
}

func (p *VideoProject) encode(ctx context.Context, scenario *director.Scenario, dir string) error {
	if !system.HasFFmpeg() {
		log.Printf("[!] ffmpeg не найден, видео не собрано. Кадры: %s", dir)
		return nil
	}
	encodeStart := time.Now()
	d := scenario.Display
	params := p.Config.EncodeParams(d.Width, d.Height, float64(p.Stats.Frames)/float64(p.Config.FPS))
	if p.Effect != nil {
		params.Filter = p.Effect.GenerateFilter(params)
	}

	fmt.Println("[*] Сборка видео...")
	if err := p.Encoder.EncodeFrames(ctx, filepath.Join(dir, FramePattern), p.Config.OutputVideo, params); err != nil {
		return fmt.Errorf("ошибка сборки видео: %w", err)
	}
	p.Stats.Encode = time.Since(encodeStart)

	if p.Config.Verify {
		got, err := system.ProbeDuration(p.Config.OutputVideo)
		if err != nil {
			log.Printf("[!] %v", err)
		} else if diff := got - params.Duration; diff > 0.1 || diff < -0.1 {
			return fmt.Errorf("длительность видео %.2fs, ожидалось %.2fs", got, params.Duration)
		}
	}
	fmt.Printf("[+++] Успех! Видео сохранено: %s\n", p.Config.OutputVideo)
	return nil
}

func (p *VideoProject) report() {
	st := p.Stats
	fps := float64(st.Frames) / st.Total.Seconds()
	mem, err := system.ReadMemory()
	if err != nil {
		log.Printf("[!] %v", err)
	}

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Writing frames: %.2fs\n"+
			"Encoding (GPU/CPU): %.2fs\n"+
			"Frames: %d | Redraws: %d | Transitions: %d | Refused: %d\n"+
			"Effective FPS: %.2f\n"+
			"Memory: %s\n"+
			"Frame buffers: %d\n"+
			"----------------------------\n",
		p.Config.BuildVersion, st.Total.Seconds(), st.Render.Seconds(), st.Write.Seconds(), st.Encode.Seconds(),
		st.Frames, st.Redraws, st.Transitions, st.Refused, fps, mem, p.Pool.Allocated(),
	)
	fmt.Print(report)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Scenario: %s | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f | RSS: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.ScenarioPath),
		st.Frames,
		st.Total.Seconds(),
		st.Render.Seconds(),
		st.Encode.Seconds(),
		fps,
		system.FormatBytes(mem.RSS),
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// frameCount returns the number of frames covering duration seconds.
func frameCount(duration float64, fps int) int {
	n := int(duration*float64(fps) + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

// frameTime is the virtual instant of frame i. Computed from i, not
// accumulated, so rounding never drifts.
func frameTime(i, fps int) time.Duration {
	return time.Duration(i) * time.Second / time.Duration(fps)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
