package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.RGBA{R: uint8(60 * x), G: uint8(80 * y), B: 200, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func TestNormalizePNG_PNGIsUnchanged(t *testing.T) {
	raw := encodePNG(t)
	out, err := NormalizePNG(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestNormalizePNG_ConvertsJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), &jpeg.Options{Quality: 100}))

	out, err := NormalizePNG(buf.Bytes())
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 3, cfg.Height)

	// Pixels must match what a JPEG decoder produces for the same input.
	want, err := jpeg.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	got, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			wr, wg, wb, wa := want.At(x, y).RGBA()
			gr, gg, gb, ga := got.At(x, y).RGBA()
			assert.Equal(t, []uint32{wr >> 8, wg >> 8, wb >> 8, wa >> 8}, []uint32{gr >> 8, gg >> 8, gb >> 8, ga >> 8})
		}
	}
}

func TestNormalizePNG_Rejects(t *testing.T) {
	raw := encodePNG(t)
	cases := map[string][]byte{
		"empty":     nil,
		"text":      []byte("definitely not a picture"),
		"truncated": raw[:len(raw)/2],
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizePNG(in)
			assert.ErrorIs(t, err, ErrInvalidImage)
		})
	}
}

// pngHeader returns a PNG that holds only a signature, an IHDR chunk for a
// width x height RGBA image and IEND.
func pngHeader(width, height uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	chunk := func(typ string, data []byte) {
		_ = binary.Write(&buf, binary.BigEndian, uint32(len(data)))
		body := append([]byte(typ), data...)
		buf.Write(body)
		_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(body))
	}
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], width)
	binary.BigEndian.PutUint32(ihdr[4:], height)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // truecolor with alpha
	chunk("IHDR", ihdr)
	chunk("IEND", nil)
	return buf.Bytes()
}

func TestNormalizePNG_RejectsHugeDimensions(t *testing.T) {
	for _, size := range [][2]uint32{{20000, 20000}, {65535, 65535}, {MaxPixels + 1, 1}} {
		raw := pngHeader(size[0], size[1])
		cfg, err := png.DecodeConfig(bytes.NewReader(raw))
		require.NoError(t, err, "header is well formed")
		require.EqualValues(t, size[0], cfg.Width)

		_, err = NormalizePNG(raw)
		assert.ErrorIs(t, err, ErrInvalidImage)
		assert.ErrorContains(t, err, "exceeds")
	}
}

func TestNormalizePNG_LimitIsInclusive(t *testing.T) {
	// 5000x5000 sits exactly on the limit and must still be decoded, not
	// refused on size; the empty pixel data is what makes it invalid.
	_, err := NormalizePNG(pngHeader(5000, 5000))
	require.ErrorIs(t, err, ErrInvalidImage)
	assert.NotContains(t, err.Error(), "exceeds")
}

func TestPictureKey(t *testing.T) {
	assert.Equal(t, "42.png", PictureKey(42))
}

func TestLocalStore_PutOpenRemove(t *testing.T) {
	root := filepath.Join(t.TempDir(), "pictures")
	s := NewLocalStore(root)
	ctx := context.Background()

	loc, err := s.Put(ctx, "7.png", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "7.png"), loc)

	loc2, err := s.Put(ctx, "7.png", []byte("second"))
	require.NoError(t, err)
	assert.Equal(t, loc, loc2, "same key reuses the path")

	rc, err := s.Open(ctx, loc)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	require.NoError(t, s.Remove(ctx, loc))
	_, err = s.Open(ctx, loc)
	assert.ErrorIs(t, err, ErrNotExist)

	assert.NoError(t, s.Remove(ctx, loc), "removing twice is fine")
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut {
		return nil, errors.New("boom")
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestR2Store_RoundTrip(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	s := &R2Store{client: fake, bucket: "llamas", prefix: "pictures/"}
	ctx := context.Background()

	loc, err := s.Put(ctx, "3.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "pictures/3.png", loc)

	rc, err := s.Open(ctx, loc)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.Remove(ctx, loc))
	_, err = s.Open(ctx, loc)
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestR2Store_PutError(t *testing.T) {
	s := &R2Store{client: &fakeS3{objects: map[string][]byte{}, failPut: true}, bucket: "b"}
	_, err := s.Put(context.Background(), "1.png", []byte("x"))
	assert.Error(t, err)
}

func TestNewR2Store_RequiresAccountAndBucket(t *testing.T) {
	_, err := NewR2Store(R2Options{BucketName: "b"})
	assert.Error(t, err)

	s, err := NewR2Store(R2Options{AccountID: "acc", BucketName: "b", Region: "auto"})
	require.NoError(t, err)
	assert.NotNil(t, s)
}
