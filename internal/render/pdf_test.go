package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFPackager_Package(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 28))
	for y := 0; y < 28; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 230, A: 255})
		}
	}

	out, err := NewPDFPackager("Panfleto Rede Única", "flyerapi").Package(img)

	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "output is a PDF document")
}

func TestPDFPackager_NilBitmap(t *testing.T) {
	out, err := NewPDFPackager("t", "c").Package(nil)

	assert.Error(t, err)
	assert.Nil(t, out)
}
