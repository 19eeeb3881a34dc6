package location

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/vacation-cam-go/domain/capture"
)

type ifdEntry struct {
	tag, typ uint16
	count    uint32
	value    uint32
	inline   []byte
}

func writeEntry(b *bytes.Buffer, e ifdEntry) {
	binary.Write(b, binary.LittleEndian, e.tag)
	binary.Write(b, binary.LittleEndian, e.typ)
	binary.Write(b, binary.LittleEndian, e.count)
	if e.inline != nil {
		v := make([]byte, 4)
		copy(v, e.inline)
		b.Write(v)
		return
	}
	binary.Write(b, binary.LittleEndian, e.value)
}

func writeDMS(b *bytes.Buffer, d, m, s uint32) {
	for _, v := range []uint32{d, 1, m, 1, s, 1} {
		binary.Write(b, binary.LittleEndian, v)
	}
}

// gpsJPEG builds a JPEG whose EXIF block holds a GPS IFD with the given
// degree/minute/second coordinates and hemisphere refs.
func gpsJPEG(t *testing.T, lat [3]uint32, ns string, lon [3]uint32, ew string) []byte {
	t.Helper()
	const (
		ifd0   = 8
		gpsIFD = ifd0 + 2 + 12 + 4
		latOff = gpsIFD + 2 + 4*12 + 4
		lonOff = latOff + 24
	)
	var tiff bytes.Buffer
	tiff.WriteString("II*\x00")
	binary.Write(&tiff, binary.LittleEndian, uint32(ifd0))
	binary.Write(&tiff, binary.LittleEndian, uint16(1))
	writeEntry(&tiff, ifdEntry{tag: 0x8825, typ: 4, count: 1, value: gpsIFD})
	binary.Write(&tiff, binary.LittleEndian, uint32(0))

	binary.Write(&tiff, binary.LittleEndian, uint16(4))
	writeEntry(&tiff, ifdEntry{tag: 0x0001, typ: 2, count: 2, inline: []byte(ns)})
	writeEntry(&tiff, ifdEntry{tag: 0x0002, typ: 5, count: 3, value: latOff})
	writeEntry(&tiff, ifdEntry{tag: 0x0003, typ: 2, count: 2, inline: []byte(ew)})
	writeEntry(&tiff, ifdEntry{tag: 0x0004, typ: 5, count: 3, value: lonOff})
	binary.Write(&tiff, binary.LittleEndian, uint32(0))
	writeDMS(&tiff, lat[0], lat[1], lat[2])
	writeDMS(&tiff, lon[0], lon[1], lon[2])

	var body bytes.Buffer
	require.NoError(t, jpeg.Encode(&body, image.NewGray(image.Rect(0, 0, 2, 2)), nil))
	raw := body.Bytes()
	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)
	var out bytes.Buffer
	out.Write(raw[:2])
	out.Write([]byte{0xFF, 0xE1})
	binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(raw[2:])
	return out.Bytes()
}

func TestNewValidates(t *testing.T) {
	l, err := New(48.8583, 2.2945)
	require.NoError(t, err)
	assert.Equal(t, "48.858300, 2.294500", l.String())

	for _, c := range [][2]float64{{91, 0}, {-91, 0}, {0, 181}, {0, -181}, {math.NaN(), 0}} {
		_, err := New(c[0], c[1])
		assert.ErrorIs(t, err, ErrOutOfRange, "lat=%v lon=%v", c[0], c[1])
	}
}

func TestFromEXIF(t *testing.T) {
	data := gpsJPEG(t, [3]uint32{48, 51, 30}, "N", [3]uint32{2, 17, 42}, "W")
	l, err := FromEXIF(bytes.NewReader(data))
	require.NoError(t, err)
	assert.InDelta(t, 48.858333, l.Latitude, 1e-5)
	assert.InDelta(t, -2.295, l.Longitude, 1e-5)
}

func TestFromEXIFSouthernHemisphere(t *testing.T) {
	data := gpsJPEG(t, [3]uint32{33, 52, 0}, "S", [3]uint32{151, 12, 0}, "E")
	l, err := FromEXIF(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Less(t, l.Latitude, 0.0)
	assert.Greater(t, l.Longitude, 0.0)
}

func TestExifProviderWithoutGPS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2)), nil))
	path := filepath.Join(t.TempDir(), "20240101120000.jpg")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err := ExifProvider{}.Locate(context.Background(), capture.AssetRef(path))
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestExifProviderReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "20240101120000.jpg")
	require.NoError(t, os.WriteFile(path, gpsJPEG(t, [3]uint32{10, 0, 0}, "N", [3]uint32{20, 30, 0}, "E"), 0o644))

	l, err := ExifProvider{}.Locate(context.Background(), capture.AssetRef(path))
	require.NoError(t, err)
	assert.InDelta(t, 10.0, l.Latitude, 1e-9)
	assert.InDelta(t, 20.5, l.Longitude, 1e-9)
}

func TestExifProviderMissingFile(t *testing.T) {
	_, err := ExifProvider{}.Locate(context.Background(), capture.AssetRef(filepath.Join(t.TempDir(), "nope.jpg")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
