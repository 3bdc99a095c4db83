package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aig-studio/artist-image-generator/common/storage"
	"github.com/aig-studio/artist-image-generator/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	inserted []*model.Media
	err      error
}

func (f *fakeRecorder) Insert(ctx context.Context, media *model.Media) error {
	if f.err != nil {
		return f.err
	}
	media.Id = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, media)
	return nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func newImageServer(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing.png") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestImporter(t *testing.T, recorder MediaRecorder) (*MediaImporter, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	return NewMediaImporter(local, recorder, nil), dir
}

func TestImportStoresSluggedFile(t *testing.T) {
	server := newImageServer(t, pngBytes(t))
	recorder := &fakeRecorder{}
	importer, dir := newTestImporter(t, recorder)

	id, err := importer.Import(context.Background(), server.URL+"/private/img-abc.png?sig=1", "Crème brûlée au soleil")
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)

	require.Len(t, recorder.inserted, 1)
	media := recorder.inserted[0]
	assert.Equal(t, "creme-brulee-au-soleil.png", media.FileName)
	assert.Equal(t, "Crème brûlée au soleil", media.AltText)
	assert.Equal(t, "image/png", media.MimeType)
	assert.True(t, strings.HasPrefix(media.Url, "/uploads/"))

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(media.StorageKey)))
	assert.NoError(t, err)
}

func TestImportFallsBackToSniffedExtension(t *testing.T) {
	server := newImageServer(t, pngBytes(t))
	recorder := &fakeRecorder{}
	importer, _ := newTestImporter(t, recorder)

	_, err := importer.Import(context.Background(), server.URL+"/blob/abc123", "")
	require.NoError(t, err)
	require.Len(t, recorder.inserted, 1)
	assert.Equal(t, "abc123.png", recorder.inserted[0].FileName)
	assert.Equal(t, "abc123", recorder.inserted[0].Title)
}

func TestImportRejects(t *testing.T) {
	recorder := &fakeRecorder{}
	importer, _ := newTestImporter(t, recorder)
	ctx := context.Background()

	textServer := newImageServer(t, []byte("<html>not an image</html>"))
	_, err := importer.Import(ctx, textServer.URL+"/page.png", "x")
	assert.Error(t, err)

	imageServer := newImageServer(t, pngBytes(t))
	_, err = importer.Import(ctx, imageServer.URL+"/missing.png", "x")
	assert.Error(t, err)

	_, err = importer.Import(ctx, "file:///etc/passwd", "x")
	assert.ErrorIs(t, err, ErrInvalidSourceURL)

	importer.maxBytes = 10
	_, err = importer.Import(ctx, imageServer.URL+"/big.png", "x")
	assert.ErrorIs(t, err, ErrDownloadTooLarge)

	assert.Empty(t, recorder.inserted)
}

func TestImportRemovesFileWhenRecordFails(t *testing.T) {
	server := newImageServer(t, pngBytes(t))
	importer, dir := newTestImporter(t, &fakeRecorder{err: errors.New("db down")})

	_, err := importer.Import(context.Background(), server.URL+"/a.png", "a")
	require.Error(t, err)

	var files []string
	_ = filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	assert.Empty(t, files)
}
