package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ivlev/kimaybe/internal/config"
	"github.com/ivlev/kimaybe/internal/director"
	"github.com/ivlev/kimaybe/internal/effects"
	"github.com/ivlev/kimaybe/internal/engine"
	"github.com/ivlev/kimaybe/internal/kimaybe"
	"github.com/ivlev/kimaybe/internal/system"
	"github.com/ivlev/kimaybe/internal/video"
)

var buildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits(2048)

	cfg := config.Default()

	configPtr := flag.String("config", "", "YAML с настройками (флаги имеют приоритет)")
	scenarioPtr := flag.String("scenario", "", "Путь к сценарию (по умолчанию: самый свежий в internal/scenarios/)")
	iconsPtr := flag.String("icons", "", "Каталог иконок (по умолчанию: каталог сценария)")
	outputPtr := flag.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	framesPtr := flag.String("frames", "", "Сохранить PNG-кадры в каталог")
	fpsPtr := flag.Int("fps", cfg.FPS, "FPS")
	scalePtr := flag.Int("scale", cfg.Scale, "Увеличение кадра в видео")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Потоки записи кадров")
	durationPtr := flag.Duration("km-duration", cfg.KMDuration, "Длительность анимации одной иконки")
	delayPtr := flag.Duration("delay", cfg.Delay, "Задержка входящей иконки")
	slicesPtr := flag.Int("slices", cfg.Slices, "Число срезов")
	ratioPtr := flag.Float64("delay-ratio", cfg.DelayRatio, "Задержка между срезами, доля длительности")
	completionPtr := flag.String("completion", cfg.Completion, "Когда анимация считается законченной: all, middle")
	curvePtr := flag.String("curve", cfg.Curve, "Кривая: ease-in-out, linear, ease-in, ease-out, back-out, out-and-back")
	fadePtr := flag.Float64("fade", 0, "Затемнение в начале и конце (сек)")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	noVideoPtr := flag.Bool("no-video", false, "Только кадры, без ffmpeg")
	verifyPtr := flag.Bool("verify", false, "Проверить положение иконок после каждого перехода")
	statsPtr := flag.Bool("stats", true, "Отчет о производительности")
	debugPtr := flag.Bool("debug", false, "Подробный лог и подписи нажатий в видео")

	flag.Parse()

	if *configPtr != "" {
		if err := config.Load(*configPtr, cfg); err != nil {
			log.Fatalf("[-] Ошибка конфигурации: %v", err)
		}
	}
	// явно заданные флаги перекрывают файл
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scenario":
			cfg.ScenarioPath = *scenarioPtr
		case "icons":
			cfg.IconsPath = *iconsPtr
		case "output":
			cfg.OutputVideo = *outputPtr
		case "frames":
			cfg.FramesDir = *framesPtr
		case "fps":
			cfg.FPS = *fpsPtr
		case "scale":
			cfg.Scale = *scalePtr
		case "workers":
			cfg.Workers = *workersPtr
		case "km-duration":
			cfg.KMDuration = *durationPtr
		case "delay":
			cfg.Delay = *delayPtr
		case "slices":
			cfg.Slices = *slicesPtr
		case "delay-ratio":
			cfg.DelayRatio = *ratioPtr
		case "completion":
			cfg.Completion = *completionPtr
		case "curve":
			cfg.Curve = *curvePtr
		case "fade":
			cfg.FadeDuration = *fadePtr
		case "quality":
			cfg.Quality = *qualityPtr
		case "no-video":
			cfg.SkipVideo = *noVideoPtr
		case "verify":
			cfg.Verify = *verifyPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		case "debug":
			cfg.Debug = *debugPtr
		}
	})
	if *configPtr == "" {
		cfg.Workers = *workersPtr
		cfg.ShowStats = *statsPtr
	}
	cfg.BuildVersion = buildVersion
	kimaybe.Debug = cfg.Debug

	if cfg.ScenarioPath == "" {
		latest, err := director.FindLatestScenario()
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Создайте сценарий: go run ./cmd/kmscenario", err)
		}
		cfg.ScenarioPath = latest
		fmt.Printf("[*] Выбран сценарий: %s\n", cfg.ScenarioPath)
	}

	if cfg.OutputVideo == "" || cfg.OutputVideo == config.Default().OutputVideo {
		os.MkdirAll("output", 0755)
		baseName := filepath.Base(cfg.ScenarioPath)
		nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", nameOnly, timestamp))
	}

	if !cfg.SkipVideo {
		encoderName := system.GetBestH264Encoder()
		if encoderName != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
		}
		cfg.VideoEncoder = encoderName
		if cfg.Quality == 0 || cfg.Quality == config.Default().Quality {
			switch encoderName {
			case "h264_videotoolbox":
				cfg.Quality = 75 // Хорошее качество для VideoToolbox
			case "h264_nvenc":
				cfg.Quality = 28 // Эквивалент CRF для NVENC
			default:
				cfg.Quality = 23 // Стандартный CRF для x264
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] %v", err)
	}

	scenario, err := director.ReadScenario(cfg.ScenarioPath)
	if err != nil {
		log.Fatalf("[-] Ошибка чтения сценария: %v", err)
	}
	eff := effects.NewScenarioEffect(scenario)
	eff.Debug = cfg.Debug

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Инициализируем зависимости, иконки читаются из каталога сценария
	project := engine.NewVideoProject(cfg, nil, &video.FFmpegEncoder{}, eff)
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	if cfg.SkipVideo {
		fmt.Printf("[+++] Успех! Кадров записано: %d\n", project.Stats.Frames)
	}
}
