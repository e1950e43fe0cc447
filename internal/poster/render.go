package poster

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"shopsmith/internal/config"
	"shopsmith/internal/logging"
	"shopsmith/internal/services"
)

// Palette for the fixed draw sequence. The poster is regenerated from
// config, so the colors live here rather than in the config file.
var (
	backgroundTop    = color.RGBA{R: 0x1f, G: 0x24, B: 0x38, A: 0xff}
	backgroundBottom = color.RGBA{R: 0x3d, G: 0x2b, B: 0x56, A: 0xff}
	accent           = color.RGBA{R: 0xe8, G: 0xa8, B: 0x4c, A: 0xff}
	panel            = color.RGBA{R: 0x12, G: 0x14, B: 0x20, A: 0xd8}
	textPrimary      = color.RGBA{R: 0xf5, G: 0xf2, B: 0xea, A: 0xff}
	textSecondary    = color.RGBA{R: 0xc9, G: 0xc3, B: 0xb4, A: 0xff}
)

// Render draws the poster and writes it to <output_dir>/<output_file>,
// overwriting any previous render. A configured photo that is missing on
// disk is skipped with a log line; everything else about the canvas is
// deterministic for a given config.
func Render(cfg *config.Config, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logging.WithComponent(logger, "poster")

	p := cfg.Poster
	if p.FontPath == "" {
		return "", services.Wrap(services.ErrConfiguration, "poster", "render",
			"poster.font_path is required", nil)
	}
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	width := float64(p.Width)
	height := float64(p.Height)
	dc := gg.NewContext(p.Width, p.Height)

	drawBackground(dc, width, height)
	drawAccents(dc, width, height)
	if err := drawPhoto(dc, p.PhotoFile, width, height, log); err != nil {
		return "", err
	}
	if err := drawText(dc, p, width, height); err != nil {
		return "", err
	}

	outPath := filepath.Join(cfg.Paths.OutputDir, p.OutputFile)
	if err := dc.SavePNG(outPath); err != nil {
		return "", fmt.Errorf("write poster %s: %w", outPath, err)
	}
	log.Info("poster written",
		logging.String("path", outPath),
		logging.Int("width", p.Width),
		logging.Int("height", p.Height),
	)
	return outPath, nil
}

func drawBackground(dc *gg.Context, width, height float64) {
	grad := gg.NewLinearGradient(0, 0, 0, height)
	grad.AddColorStop(0, backgroundTop)
	grad.AddColorStop(1, backgroundBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, width, height)
	dc.Fill()
}

// drawAccents places the fixed decorative shapes: an offset accent disc in
// the upper right and the translucent text panel across the lower third.
func drawAccents(dc *gg.Context, width, height float64) {
	dc.SetColor(accent)
	dc.DrawCircle(width*0.85, height*0.12, width*0.18)
	dc.Fill()

	dc.SetColor(panel)
	dc.DrawRoundedRectangle(width*0.06, height*0.66, width*0.88, height*0.28, width*0.02)
	dc.Fill()

	dc.SetColor(accent)
	dc.DrawRectangle(width*0.06, height*0.66, width*0.88, height*0.008)
	dc.Fill()
}

// drawPhoto insets the product photo above the text panel, scaled to fit a
// centered square. A missing file is logged and skipped; any other read
// failure fails the render.
func drawPhoto(dc *gg.Context, path string, width, height float64, log *slog.Logger) error {
	if path == "" {
		return nil
	}
	img, err := gg.LoadImage(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info("skipping missing poster photo", logging.String("path", path))
			return nil
		}
		return services.Wrap(services.ErrValidation, "poster", "render",
			fmt.Sprintf("load photo %s", path), err)
	}

	bounds := img.Bounds()
	side := width * 0.6
	scale := side / float64(bounds.Dx())
	if vertical := side / float64(bounds.Dy()); vertical < scale {
		scale = vertical
	}
	drawnW := float64(bounds.Dx()) * scale
	drawnH := float64(bounds.Dy()) * scale
	x := (width - drawnW) / 2
	y := height*0.36 - drawnH/2

	dc.Push()
	dc.Translate(x, y)
	dc.Scale(scale, scale)
	dc.DrawImage(img, 0, 0)
	dc.Pop()
	return nil
}

func drawText(dc *gg.Context, p config.Poster, width, height float64) error {
	titleFace, err := loadFace(p.FontPath, width*0.065)
	if err != nil {
		return err
	}
	subtitleFace, err := loadFace(p.FontPath, width*0.034)
	if err != nil {
		return err
	}

	dc.SetFontFace(titleFace)
	dc.SetColor(textPrimary)
	dc.DrawStringWrapped(p.Title, width/2, height*0.73, 0.5, 0.5, width*0.8, 1.2, gg.AlignCenter)

	dc.SetFontFace(subtitleFace)
	dc.SetColor(textSecondary)
	dc.DrawStringWrapped(p.Subtitle, width/2, height*0.85, 0.5, 0.5, width*0.8, 1.3, gg.AlignCenter)
	return nil
}

func loadFace(path string, points float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "poster", "render",
			fmt.Sprintf("read font %s", path), err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "poster", "render",
			fmt.Sprintf("parse font %s", path), err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "poster", "render",
			fmt.Sprintf("build font face %s", path), err)
	}
	return face, nil
}
