package pdc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// imageDoc is the YAML form of an Image, used for hand-written icons
// and for icons embedded in scenario files.
type imageDoc struct {
	Bounds   Size         `yaml:"bounds"`
	Commands []commandDoc `yaml:"commands"`
}

type commandDoc struct {
	Type        string     `yaml:"type"`
	Hidden      bool       `yaml:"hidden,omitempty"`
	StrokeColor uint8      `yaml:"stroke_color"`
	StrokeWidth uint8      `yaml:"stroke_width"`
	FillColor   uint8      `yaml:"fill_color"`
	Open        bool       `yaml:"open,omitempty"`
	Radius      uint16     `yaml:"radius,omitempty"`
	Points      [][2]int16 `yaml:"points,flow"`
}

func parseCommandType(s string) (CommandType, error) {
	switch s {
	case "path", "":
		return CommandPath, nil
	case "circle":
		return CommandCircle, nil
	case "precise_path", "precise":
		return CommandPrecisePath, nil
	}
	return CommandInvalid, fmt.Errorf("pdc: unknown command type %q", s)
}

func (img *Image) MarshalYAML() (interface{}, error) {
	doc := imageDoc{Bounds: img.Bounds}
	for _, cmd := range img.Commands {
		cd := commandDoc{
			Type:        cmd.Type.String(),
			Hidden:      cmd.Hidden,
			StrokeColor: cmd.StrokeColor,
			StrokeWidth: cmd.StrokeWidth,
			FillColor:   cmd.FillColor,
			Open:        cmd.PathOpen,
			Radius:      cmd.Radius,
		}
		for _, p := range cmd.Points {
			cd.Points = append(cd.Points, [2]int16{p.X, p.Y})
		}
		doc.Commands = append(doc.Commands, cd)
	}
	return doc, nil
}

func (img *Image) UnmarshalYAML(value *yaml.Node) error {
	var doc imageDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	img.Bounds = doc.Bounds
	img.Commands = make([]*DrawCommand, 0, len(doc.Commands))
	for i, cd := range doc.Commands {
		t, err := parseCommandType(cd.Type)
		if err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
		cmd := &DrawCommand{
			Type:        t,
			Hidden:      cd.Hidden,
			StrokeColor: cd.StrokeColor,
			StrokeWidth: cd.StrokeWidth,
			FillColor:   cd.FillColor,
			PathOpen:    cd.Open,
			Radius:      cd.Radius,
			Points:      make([]Point, len(cd.Points)),
		}
		for j, xy := range cd.Points {
			cmd.Points[j] = Point{X: xy[0], Y: xy[1]}
		}
		img.Commands = append(img.Commands, cmd)
	}
	return nil
}

// LoadYAML reads an icon described in YAML
func LoadYAML(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img := &Image{}
	if err := yaml.Unmarshal(data, img); err != nil {
		return nil, fmt.Errorf("pdc: %s: %w", path, err)
	}
	return img, nil
}

// SaveYAML writes an icon as YAML
func SaveYAML(path string, img *Image) error {
	data, err := yaml.Marshal(img)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
