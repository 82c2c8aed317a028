package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// copyProcessor stands in for the JPEG recompressor.
type copyProcessor struct{ calls int }

func (p *copyProcessor) Compress(src, dst string) error {
	p.calls++
	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, b, 0o644)
}

func pngBytes(t *testing.T, shade uint8) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: shade, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func memFile(name string, body []byte) UploadFile {
	return UploadFile{
		Name: name,
		Size: int64(len(body)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(body)), nil },
	}
}

func newUploadService(t *testing.T) (*UploadService, *fakeStore, string) {
	t.Helper()
	dir := t.TempDir()
	store := &fakeStore{}
	return &UploadService{Store: store, Images: &copyProcessor{}, TmpDir: dir}, store, dir
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary files must be removed")
}

func TestUploadService_UploadOne(t *testing.T) {
	t.Parallel()

	svc, store, dir := newUploadService(t)

	res, err := svc.UploadOne(context.Background(), memFile("My Sofa Cover.png", pngBytes(t, 10)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Key, "products/"))
	assert.True(t, strings.HasSuffix(res.Key, "-My_Sofa_Cover.jpg"))
	assert.Equal(t, "https://bucket.s3.amazonaws.com/"+res.Key, res.URL)
	require.Len(t, store.objects, 1)
	assert.Equal(t, "image/jpeg", store.objects[0].ContentType)
	assertDirEmpty(t, dir)
}

func TestUploadService_CDNOverride(t *testing.T) {
	t.Parallel()

	svc, _, _ := newUploadService(t)
	svc.CDNDomain = "d123.cloudfront.net"

	res, err := svc.UploadOne(context.Background(), memFile("a.png", pngBytes(t, 1)))
	require.NoError(t, err)
	assert.Equal(t, "https://d123.cloudfront.net/"+res.Key, res.URL)
}

func TestUploadService_RejectsNonImages(t *testing.T) {
	t.Parallel()

	svc, store, dir := newUploadService(t)
	ctx := context.Background()

	_, err := svc.UploadOne(ctx, memFile("notes.txt", []byte("hello")))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UploadOne(ctx, memFile("fake.jpg", []byte("plain text pretending to be an image")))
	assert.ErrorIs(t, err, ErrValidation)

	big := memFile("big.png", nil)
	big.Size = MaxUploadSize + 1
	_, err = svc.UploadOne(ctx, big)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, store.objects)
	assertDirEmpty(t, dir)
}

func TestUploadService_StorageFailureCleansUp(t *testing.T) {
	t.Parallel()

	svc, store, dir := newUploadService(t)
	store.err = errBoom

	_, err := svc.UploadOne(context.Background(), memFile("a.png", pngBytes(t, 1)))
	require.ErrorIs(t, err, errBoom)
	assertDirEmpty(t, dir)
}

func TestUploadService_UploadManyKeepsOrder(t *testing.T) {
	t.Parallel()

	svc, store, dir := newUploadService(t)
	files := []UploadFile{
		memFile("first.png", pngBytes(t, 1)),
		memFile("second.png", pngBytes(t, 2)),
		memFile("third.png", pngBytes(t, 3)),
	}

	res, err := svc.UploadMany(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Contains(t, res[0].Key, "-first.jpg")
	assert.Contains(t, res[1].Key, "-second.jpg")
	assert.Contains(t, res[2].Key, "-third.jpg")
	assert.Len(t, store.objects, 3)
	assertDirEmpty(t, dir)

	_, err = svc.UploadMany(context.Background(), nil)
	assert.ErrorIs(t, err, ErrValidation)

	tooMany := make([]UploadFile, MaxUploadFiles+1)
	for i := range tooMany {
		tooMany[i] = memFile("x.png", pngBytes(t, 1))
	}
	_, err = svc.UploadMany(context.Background(), tooMany)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestObjectKey(t *testing.T) {
	digest := strings.Repeat("ab", 32)
	assert.Equal(t, "products/abababababababab-Living_Room.jpg", objectKey("Living Room.PNG", digest, ".jpg"))
	assert.Equal(t, "products/abababababababab-image.jpg", objectKey("(*).png", digest, ".jpg"))
}

func TestUploadService_StoreFile(t *testing.T) {
	t.Parallel()

	svc, store, dir := newUploadService(t)
	src := t.TempDir() + "/Curtain.PNG"
	require.NoError(t, os.WriteFile(src, pngBytes(t, 3), 0o644))

	res, err := svc.StoreFile(context.Background(), src, "categories/curtain")
	require.NoError(t, err)
	assert.Equal(t, "categories/curtain.jpg", res.Key)
	require.Len(t, store.objects, 1)
	assertDirEmpty(t, dir)

	_, err = svc.StoreFile(context.Background(), t.TempDir()+"/readme.md", "x")
	assert.ErrorIs(t, err, ErrValidation)
}
