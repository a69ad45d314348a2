package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	"github.com/h2non/filetype"
)

type TextureKind int

const (
	Texture2D TextureKind = iota
	TextureCubemap
)

type PixelFormat int

const (
	PixelR8Unorm PixelFormat = iota
	PixelRGBA8
)

// CubemapFaces is the number of faces of a cubemap texture.
const CubemapFaces = 6

type Texture struct {
	Name   string
	Kind   TextureKind
	Format PixelFormat
	Width  int
	Height int
	// Source is the file the texture came from; empty for generated textures.
	Source string
	// Faces holds one image for 2D textures and six for cubemaps.
	Faces []image.Image
}

// NewSolidCubemap builds a size x size cubemap with every face filled with c.
func NewSolidCubemap(name string, size int, c color.Gray) *Texture {
	faces := make([]image.Image, CubemapFaces)
	for i := range faces {
		img := image.NewGray(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				img.SetGray(x, y, c)
			}
		}
		faces[i] = img
	}
	return &Texture{
		Name:   name,
		Kind:   TextureCubemap,
		Format: PixelR8Unorm,
		Width:  size,
		Height: size,
		Faces:  faces,
	}
}

// NewGridTexture draws a cells x cells grid of cellSize pixels with one-pixel
// lines, the stand-in for a missing grid image.
func NewGridTexture(name string, cells, cellSize int) *Texture {
	size := cells * cellSize
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	line := color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := fill
			if x%cellSize == 0 || y%cellSize == 0 {
				c = line
			}
			img.SetRGBA(x, y, c)
		}
	}
	return &Texture{
		Name:   name,
		Kind:   Texture2D,
		Format: PixelRGBA8,
		Width:  size,
		Height: size,
		Faces:  []image.Image{img},
	}
}

// ErrNotImage is returned when a texture file is not a supported image.
var ErrNotImage = errors.New("not an image")

// LoadTexture reads an image file into a 2D texture. The type is sniffed from
// the file header, not the extension.
func LoadTexture(name, path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("sniff %s: %w", path, err)
	}
	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("texture %s (%s): %w", path, kind.MIME.Value, ErrNotImage)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s texture %s: %w", kind.Extension, path, err)
	}
	b := img.Bounds()
	return &Texture{
		Name:   name,
		Kind:   Texture2D,
		Format: PixelRGBA8,
		Width:  b.Dx(),
		Height: b.Dy(),
		Source: path,
		Faces:  []image.Image{img},
	}, nil
}

// LoadOrGenerateGrid loads the grid texture from path, falling back to a
// generated 8x8 grid when the file does not exist.
func LoadOrGenerateGrid(name, path string) (*Texture, error) {
	tex, err := LoadTexture(name, path)
	if err == nil {
		return tex, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return NewGridTexture(name, 8, 16), nil
	}
	return nil, err
}
