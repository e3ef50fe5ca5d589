package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"formula-pad/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRequestURL(t *testing.T) {
	rs := NewRenderService("http://chart.example/chart", time.Second, logger.NewNop())

	got := rs.RequestURL(`a \land b`)
	assert.Equal(t, `http://chart.example/chart?cht=tx&chl=a+%5Cwedge+b`, got)

	rs = NewRenderService("http://chart.example/chart?key=1", time.Second, logger.NewNop())
	assert.Equal(t, `http://chart.example/chart?key=1&cht=tx&chl=x%3D1`, rs.RequestURL("x=1"))
}

func TestRenderDecodesImage(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes(t, 4, 3))
	}))
	defer srv.Close()

	rs := NewRenderService(srv.URL+"/chart", time.Second, logger.NewNop())
	img, err := rs.Render(context.Background(), `\lnot p & q`)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	assert.Equal(t, []string{"tx"}, gotQuery["cht"])
	assert.Equal(t, []string{`\neg p & q`}, gotQuery["chl"])
}

func TestRenderFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"bad status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadRequest)
		}},
		{"empty body", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}},
		{"not an image", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>error</html>"))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			rs := NewRenderService(srv.URL, time.Second, logger.NewNop())
			img, err := rs.Render(context.Background(), "x")
			assert.Error(t, err)
			assert.Nil(t, img)
		})
	}
}

func TestRenderHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rs := NewRenderService(srv.URL, 5*time.Second, logger.NewNop())
	_, err := rs.Render(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rs := NewRenderService(url, time.Second, logger.NewNop())
	_, err := rs.Render(context.Background(), "x")
	assert.Error(t, err)
}
