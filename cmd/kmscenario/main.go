package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/ivlev/kimaybe/internal/analyzer"
	"github.com/ivlev/kimaybe/internal/config"
	"github.com/ivlev/kimaybe/internal/director"
	"github.com/ivlev/kimaybe/internal/renderer"
)

func main() {
	cfg := config.Default()

	outputPtr := flag.String("output", "", "Путь к сценарию (по умолчанию: internal/scenarios/scenario_<время>.yaml)")
	hoursPtr := flag.Int("hours", 6, "Число часов прогноза")
	dwellPtr := flag.Float64("dwell", 1.0, "Время на одном часе (сек)")
	pagePtr := flag.String("page", director.PageForecast, "Страница: forecast, wind")
	widthPtr := flag.Int("width", cfg.Width, "Ширина дисплея")
	heightPtr := flag.Int("height", cfg.Height, "Высота дисплея")
	roundPtr := flag.Bool("round", false, "Круглый дисплей")
	staticPtr := flag.Bool("static", false, "Без анимации переходов")
	flag.Parse()

	scenarioPath := *outputPtr
	if scenarioPath == "" {
		scenarioPath = director.GenerateScenarioPath()
	}

	fmt.Println("=== KM Scenario Generation ===")
	fmt.Printf("Output: %s\n\n", scenarioPath)

	// Step 1: Generate scenario
	fmt.Println("[1/3] Generating YAML scenario...")
	d := director.NewDirector(*widthPtr, *heightPtr)
	d.Round = *roundPtr
	scenario, err := d.GenerateScenario(*hoursPtr, *dwellPtr)
	if err != nil {
		log.Fatalf("[-] Failed to generate scenario: %v", err)
	}
	scenario.Page = *pagePtr
	scenario.Display.Animate = !*staticPtr
	if err := scenario.Validate(); err != nil {
		log.Fatalf("[-] %v", err)
	}

	// Ensure directory exists
	os.MkdirAll(filepath.Dir(scenarioPath), 0755)

	if err := director.WriteScenario(scenario, scenarioPath); err != nil {
		log.Fatalf("[-] Failed to write scenario: %v", err)
	}
	fmt.Printf("✓ Scenario saved to: %s\n\n", scenarioPath)

	// Step 2: Icons next to the scenario
	fmt.Println("[2/3] Writing icons...")
	icons := d.Icons()
	if err := director.WriteIcons(filepath.Dir(scenarioPath), icons); err != nil {
		log.Fatalf("[-] Failed to write icons: %v", err)
	}
	fmt.Printf("✓ %d icons in %s\n\n", len(icons), filepath.Dir(scenarioPath))

	// Step 3: Check that every icon actually draws something
	fmt.Println("[3/3] Analyzing icons...")
	white := color.RGBA{255, 255, 255, 255}
	detector, err := analyzer.NewDetector("ink", white)
	if err != nil {
		log.Fatalf("[-] Failed to create detector: %v", err)
	}
	names := make([]string, 0, len(icons))
	for name := range icons {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		img := icons[name]
		canvas := renderer.NewCanvas(int(img.Bounds.W), int(img.Bounds.H), white)
		canvas.DrawImage(img, renderer.Identity)
		blocks, err := detector.Detect(canvas.Image())
		if err != nil {
			log.Fatalf("[-] %s: %v", name, err)
		}
		fmt.Printf("  %-28s %2d commands, %3d points, %d ink blocks\n", name, len(img.Commands), img.NumPoints(), len(blocks))
	}
	fmt.Println()

	// Display scenario summary
	fmt.Println("=== Scenario Summary ===")
	fmt.Printf("Version: %s\n", scenario.Version)
	fmt.Printf("Page: %s\n", scenario.Page)
	fmt.Printf("Display: %dx%d round=%v\n", scenario.Display.Width, scenario.Display.Height, scenario.Display.Round)
	fmt.Printf("Duration: %.1fs\n", scenario.Duration)
	fmt.Printf("Slots: %d\n", len(scenario.Slots))
	fmt.Println("\nSteps:")
	for i, st := range scenario.Steps {
		fmt.Printf("  %d. t=%.1fs, %s\n", i+1, st.Time, st.Action)
	}

	fmt.Println("\n✅ Scenario ready!")
	fmt.Printf("📄 Render it: go run ./cmd/kmanim -scenario %s\n", scenarioPath)
}
