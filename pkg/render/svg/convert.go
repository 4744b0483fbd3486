package svg

import (
	"context"

	"github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/render"
)

// RenderPDF renders the scene as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, doc io.Document, layers io.Layers, opts ...Option) ([]byte, error) {
	return render.ToPDF(ctx, Render(doc, layers, opts...))
}

// RenderPNG renders the scene as PNG via SVG conversion at the given scale.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, doc io.Document, layers io.Layers, scale float64, opts ...Option) ([]byte, error) {
	return render.ToPNG(ctx, Render(doc, layers, opts...), scale)
}
