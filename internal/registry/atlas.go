package registry

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"

	"voxelmesh/internal/meshing"
	"voxelmesh/internal/world"
)

// Atlas packs named square tiles into one texture and hands out normalized
// regions for the mesher's UV stream.
type Atlas struct {
	tile    int
	img     *image.RGBA
	regions map[string]meshing.Region
}

// BuildAtlas scales each tile to tileSize and packs them into a near-square
// grid. Tile names are laid out in sorted order, so the same tile set always
// produces the same atlas.
func BuildAtlas(tileSize int, tiles map[string]image.Image) (*Atlas, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("atlas: tile size %d", tileSize)
	}
	if len(tiles) == 0 {
		return nil, fmt.Errorf("atlas: no tiles")
	}

	names := make([]string, 0, len(tiles))
	for name := range tiles {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := int(math.Ceil(math.Sqrt(float64(len(names)))))
	rows := (len(names) + cols - 1) / cols
	w := cols * tileSize
	h := rows * tileSize

	a := &Atlas{
		tile:    tileSize,
		img:     image.NewRGBA(image.Rect(0, 0, w, h)),
		regions: make(map[string]meshing.Region, len(names)),
	}
	for i, name := range names {
		x0 := (i % cols) * tileSize
		y0 := (i / cols) * tileSize
		cell := image.Rect(x0, y0, x0+tileSize, y0+tileSize)
		src := tiles[name]
		xdraw.NearestNeighbor.Scale(a.img, cell, src, src.Bounds(), xdraw.Src, nil)
		a.regions[name] = meshing.Region{
			U0: float32(x0) / float32(w),
			V0: float32(y0) / float32(h),
			U1: float32(x0+tileSize) / float32(w),
			V1: float32(y0+tileSize) / float32(h),
		}
	}
	return a, nil
}

// Region returns the normalized rectangle of a named tile.
func (a *Atlas) Region(name string) (meshing.Region, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Image returns the packed atlas pixels for upload.
func (a *Atlas) Image() *image.RGBA { return a.img }

// TileSize returns the edge length of one packed tile.
func (a *Atlas) TileSize() int { return a.tile }

// BuildSolidColorAtlas builds an atlas from the registry's definitions using
// each block's color as a flat tile. Handy when no texture art is shipped.
// A tile named after a block (or prefixed with its name, like "grass_top")
// takes that block's color even when another block references it.
func (r *Registry) BuildSolidColorAtlas(tileSize int) (*Atlas, error) {
	defs := r.Definitions()
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })

	colors := make(map[string]world.RGB)
	for _, def := range defs {
		for _, name := range []string{def.TextureTop, def.TextureSide, def.TextureBottom} {
			if name == "" {
				continue
			}
			owned := name == def.Name || strings.HasPrefix(name, def.Name+"_")
			if _, ok := colors[name]; !ok || owned {
				colors[name] = def.Color
			}
		}
	}

	tiles := make(map[string]image.Image, len(colors))
	for name, c := range colors {
		px := image.NewRGBA(image.Rect(0, 0, 1, 1))
		px.Set(0, 0, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		tiles[name] = px
	}
	a, err := BuildAtlas(tileSize, tiles)
	if err != nil {
		return nil, err
	}
	r.atlas = a
	return a, nil
}
