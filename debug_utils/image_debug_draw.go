package debug_utils

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/vector"

	"gostraightskeleton/common"
)

type imageVertex struct {
	x, y  float32
	color Colorb
}

// ImageDebugDraw rasterizes primitives into an RGBA image. World y points up,
// the world box passed to NewImageDebugDraw is fitted into the image.
type ImageDebugDraw struct {
	img    *image.NRGBA
	raster *vector.Rasterizer

	bmin   common.Vec2
	scale  float64
	margin float64

	prim  DuDebugDrawPrimitives
	size  float64
	verts []imageVertex

	font     *truetype.Font
	FontSize float64
}

func NewImageDebugDraw(width, height int, bmin, bmax common.Vec2) (*ImageDebugDraw, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("debug_utils: invalid image size %dx%d", width, height)
	}
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("debug_utils: parse font: %w", err)
	}
	d := &ImageDebugDraw{
		img:      image.NewNRGBA(image.Rect(0, 0, width, height)),
		raster:   vector.NewRasterizer(width, height),
		bmin:     bmin,
		margin:   math.Min(float64(width), float64(height)) * 0.05,
		font:     f,
		FontSize: 10,
	}
	ex := math.Max(bmax[0]-bmin[0], common.DblEpsilon)
	ey := math.Max(bmax[1]-bmin[1], common.DblEpsilon)
	d.scale = math.Min((float64(width)-2*d.margin)/ex, (float64(height)-2*d.margin)/ey)
	d.Clear(ColorBackground)
	return d, nil
}

func (d *ImageDebugDraw) Image() *image.NRGBA { return d.img }

func (d *ImageDebugDraw) Clear(col Colorb) {
	draw.Draw(d.img, d.img.Bounds(), image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

// ToPixel maps a world point to image coordinates.
func (d *ImageDebugDraw) ToPixel(x, y float64) (float32, float32) {
	px := d.margin + (x-d.bmin[0])*d.scale
	py := float64(d.img.Bounds().Dy()) - d.margin - (y-d.bmin[1])*d.scale
	return float32(px), float32(py)
}

func (d *ImageDebugDraw) Begin(prim DuDebugDrawPrimitives, size ...float64) {
	d.prim = prim
	d.size = 1.0
	if len(size) > 0 {
		d.size = size[0]
	}
	d.verts = d.verts[:0]
}

func (d *ImageDebugDraw) Vertex(x, y float64, color Colorb) {
	px, py := d.ToPixel(x, y)
	d.verts = append(d.verts, imageVertex{x: px, y: py, color: color})
}

func (d *ImageDebugDraw) End() {
	switch d.prim {
	case DU_DRAW_POINTS:
		s := float32(math.Max(d.size, 1)) / 2
		for _, v := range d.verts {
			d.fill(v.color, [2]float32{v.x - s, v.y - s}, [2]float32{v.x + s, v.y - s},
				[2]float32{v.x + s, v.y + s}, [2]float32{v.x - s, v.y + s})
		}
	case DU_DRAW_LINES:
		for i := 0; i+1 < len(d.verts); i += 2 {
			d.line(d.verts[i], d.verts[i+1])
		}
	case DU_DRAW_TRIS:
		for i := 0; i+2 < len(d.verts); i += 3 {
			a, b, c := d.verts[i], d.verts[i+1], d.verts[i+2]
			d.fill(a.color, [2]float32{a.x, a.y}, [2]float32{b.x, b.y}, [2]float32{c.x, c.y})
		}
	case DU_DRAW_POLY:
		if len(d.verts) < 3 {
			break
		}
		path := make([][2]float32, len(d.verts))
		for i, v := range d.verts {
			path[i] = [2]float32{v.x, v.y}
		}
		d.fill(d.verts[0].color, path...)
	}
	d.verts = d.verts[:0]
}

// line draws a segment as a quad of the current width.
func (d *ImageDebugDraw) line(a, b imageVertex) {
	dx, dy := float64(b.x-a.x), float64(b.y-a.y)
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	hw := math.Max(d.size, 1) / 2
	nx, ny := float32(-dy/l*hw), float32(dx/l*hw)
	d.fill(a.color,
		[2]float32{a.x + nx, a.y + ny}, [2]float32{b.x + nx, b.y + ny},
		[2]float32{b.x - nx, b.y - ny}, [2]float32{a.x - nx, a.y - ny})
}

func (d *ImageDebugDraw) fill(col Colorb, path ...[2]float32) {
	b := d.img.Bounds()
	d.raster.Reset(b.Dx(), b.Dy())
	d.raster.DrawOp = draw.Over
	d.raster.MoveTo(path[0][0], path[0][1])
	for _, p := range path[1:] {
		d.raster.LineTo(p[0], p[1])
	}
	d.raster.ClosePath()
	d.raster.Draw(d.img, b, image.NewUniform(col.NRGBA()), image.Point{})
}

// Label draws text with its baseline starting next to the world point.
func (d *ImageDebugDraw) Label(x, y float64, text string, color Colorb) {
	px, py := d.ToPixel(x, y)
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(d.font)
	ctx.SetFontSize(d.FontSize)
	ctx.SetClip(d.img.Bounds())
	ctx.SetDst(d.img)
	ctx.SetSrc(image.NewUniform(color.NRGBA()))
	if _, err := ctx.DrawString(text, freetype.Pt(int(px)+3, int(py)-3)); err != nil {
		common.Logger().Debug("label not drawn", zap.String("text", text), zap.Error(err))
	}
}
