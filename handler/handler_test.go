package handler

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
)

const (
	TEST_MODEL     = "image-stylization-v1"
	TEST_MAX_BYTES = 1 << 20
)

type generateCall struct {
	Model string
	Img   []byte
}

// records calls and hands back Urls in order (or Err)
type fakeGenerator struct {
	mu    sync.Mutex
	Calls []generateCall
	Urls  []string
	Err   error
}

func (fg *fakeGenerator) Generate(ctx context.Context, model_id string, img []byte) (string, error) {
	fg.mu.Lock()
	defer fg.mu.Unlock()

	fg.Calls = append(fg.Calls, generateCall{Model: model_id, Img: img})
	if fg.Err != nil {
		return "", fg.Err
	}
	if len(fg.Urls) == 0 {
		return fmt.Sprintf("https://x/%d.png", len(fg.Calls)), nil
	}
	url := fg.Urls[0]
	fg.Urls = fg.Urls[1:]
	return url, nil
}

func newTestRelay(t *testing.T, gen *fakeGenerator) *Relay {
	t.Helper()
	return &Relay{
		Generator:      gen,
		Model:          TEST_MODEL,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: TEST_MAX_BYTES,
	}
}

// roughly 10KB of noisy JPEG
func testJPEG(t *testing.T) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newUploadRequest(t *testing.T, field_name, file_name string, payload []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field_name, file_name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodPost, "/generate-image", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func assertStagingEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected staging dir to be empty, found %d file(s) (first: %s)", len(entries), entries[0].Name())
	}
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	text, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal("unable to read response body bytes")
	}
	return string(text)
}
