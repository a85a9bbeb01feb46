package pdc

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	magic         = "PDCI"
	formatVersion = 1
)

var (
	ErrBadMagic   = errors.New("pdc: bad magic")
	ErrBadVersion = errors.New("pdc: unsupported version")
)

type fileHeader struct {
	Version  uint8
	Reserved uint8
	ViewW    int16
	ViewH    int16
}

type commandHeader struct {
	Type        uint8
	Hidden      uint8
	StrokeColor uint8
	StrokeWidth uint8
	FillColor   uint8
	OpenRadius  uint16
}

// Decode reads a draw command image in the watch resource format.
func Decode(r io.Reader) (*Image, error) {
	var tag [4]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return nil, fmt.Errorf("pdc: read magic: %w", err)
	}
	if string(tag[:]) != magic {
		return nil, ErrBadMagic
	}
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("pdc: read size: %w", err)
	}
	body := io.LimitReader(r, int64(size))

	var hdr fileHeader
	if err := binary.Read(body, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("pdc: read header: %w", err)
	}
	if hdr.Version != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, hdr.Version)
	}

	var count uint16
	if err := binary.Read(body, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("pdc: read command count: %w", err)
	}

	img := &Image{
		Bounds:   Size{W: hdr.ViewW, H: hdr.ViewH},
		Commands: make([]*DrawCommand, 0, count),
	}
	for i := 0; i < int(count); i++ {
		var ch commandHeader
		if err := binary.Read(body, binary.LittleEndian, &ch); err != nil {
			return nil, fmt.Errorf("pdc: command %d: %w", i, err)
		}
		var n uint16
		if err := binary.Read(body, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("pdc: command %d points: %w", i, err)
		}
		cmd := &DrawCommand{
			Type:        CommandType(ch.Type),
			Hidden:      ch.Hidden != 0,
			StrokeColor: ch.StrokeColor,
			StrokeWidth: ch.StrokeWidth,
			FillColor:   ch.FillColor,
			Points:      make([]Point, n),
		}
		if cmd.Type == CommandCircle {
			cmd.Radius = ch.OpenRadius
		} else {
			cmd.PathOpen = ch.OpenRadius&1 != 0
		}
		if err := binary.Read(body, binary.LittleEndian, cmd.Points); err != nil {
			return nil, fmt.Errorf("pdc: command %d points: %w", i, err)
		}
		img.Commands = append(img.Commands, cmd)
	}
	return img, nil
}

// Encode writes img in the watch resource format.
func Encode(w io.Writer, img *Image) error {
	var body bytes.Buffer
	hdr := fileHeader{Version: formatVersion, ViewW: img.Bounds.W, ViewH: img.Bounds.H}
	binary.Write(&body, binary.LittleEndian, hdr)
	binary.Write(&body, binary.LittleEndian, uint16(len(img.Commands)))
	for _, cmd := range img.Commands {
		ch := commandHeader{
			Type:        uint8(cmd.Type),
			StrokeColor: cmd.StrokeColor,
			StrokeWidth: cmd.StrokeWidth,
			FillColor:   cmd.FillColor,
		}
		if cmd.Hidden {
			ch.Hidden = 1
		}
		if cmd.Type == CommandCircle {
			ch.OpenRadius = cmd.Radius
		} else if cmd.PathOpen {
			ch.OpenRadius = 1
		}
		binary.Write(&body, binary.LittleEndian, ch)
		binary.Write(&body, binary.LittleEndian, uint16(len(cmd.Points)))
		binary.Write(&body, binary.LittleEndian, cmd.Points)
	}

	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(body.Len())); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}

func WriteFile(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, img); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
