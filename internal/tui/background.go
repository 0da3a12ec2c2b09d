// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

// Background image handling: the configured image is scaled to cover the
// terminal, rendered as half-block cells (foreground = upper pixel,
// background = lower pixel), and re-rendered only when the terminal size or
// the file itself changes.
package tui

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/image/draw"
)

// background holds a decoded image plus the render cache for the last
// terminal size.
type background struct {
	path string
	img  image.Image

	w, h     int
	rendered string
}

// loadBackground decodes the image at path.
func loadBackground(path string) (*background, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("background: open: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("background: decode %s: %w", path, err)
	}
	return &background{path: path, img: img}, nil
}

// loadBackgroundCmd loads the image off the UI loop.
func loadBackgroundCmd(path string) tea.Cmd {
	return func() tea.Msg {
		bg, err := loadBackground(path)
		return bgLoadedMsg{bg: bg, err: err}
	}
}

// render returns the image as width x height terminal cells, cached until
// the size changes. Each cell stacks two pixels via the upper half block.
func (b *background) render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if b.rendered != "" && b.w == width && b.h == height {
		return b.rendered
	}

	scaled := coverScale(b.img, width, height*2)
	b.w, b.h = width, height
	b.rendered = renderHalfBlocks(scaled)
	return b.rendered
}

// coverScale scales src so it covers a pw x ph pixel grid, cropping the
// overhang around the center the way the original fits its wallpaper.
func coverScale(src image.Image, pw, ph int) *image.RGBA {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()

	crop := sb
	// Compare aspect ratios via cross multiplication to stay in integers.
	if sw*ph > pw*sh {
		// Source is wider than the target: crop the sides.
		cw := sh * pw / ph
		x0 := sb.Min.X + (sw-cw)/2
		crop = image.Rect(x0, sb.Min.Y, x0+cw, sb.Max.Y)
	} else if sw*ph < pw*sh {
		// Source is taller than the target: crop top and bottom.
		ch := sw * ph / pw
		y0 := sb.Min.Y + (sh-ch)/2
		crop = image.Rect(sb.Min.X, y0, sb.Max.X, y0+ch)
	}

	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}

// renderHalfBlocks emits one '▀' per cell with the upper pixel as the
// foreground color and the lower pixel as the background color.
func renderHalfBlocks(img *image.RGBA) string {
	bounds := img.Bounds()
	width := bounds.Dx()
	rows := bounds.Dy() / 2

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < width; col++ {
			upper := hexColor(img, col, row*2)
			lower := hexColor(img, col, row*2+1)
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(upper)).
				Background(lipgloss.Color(lower))
			b.WriteString(cell.Render("▀"))
		}
	}
	return b.String()
}

func hexColor(img *image.RGBA, x, y int) string {
	r, g, b, _ := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// backgroundWatcher reloads the wallpaper when the file changes on disk.
// It watches the directory because most tools replace files via rename.
type backgroundWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

func watchBackground(path string) (*backgroundWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &backgroundWatcher{watcher: w, path: path}, nil
}

// wait blocks until the watched image is written or replaced.
func (bw *backgroundWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-bw.watcher.Events:
				if !ok {
					return nil
				}
				if ev.Name == bw.path && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					return bgChangedMsg{}
				}
			case _, ok := <-bw.watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func (bw *backgroundWatcher) close() {
	bw.watcher.Close()
}
