package export

import (
	"bytes"
	"context"
	stderrors "errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/elementview/internal/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", Auto, false},
		{"auto", Auto, false},
		{"raster", Raster, false},
		{"vector", Vector, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := ParseFormat("pdf"); !stderrors.Is(err, errors.New("E302")) {
		t.Errorf("expected E302, got %v", err)
	}
}

func TestAutoResolvesToRaster(t *testing.T) {
	if Auto.Resolve() != Raster || Vector.Resolve() != Vector {
		t.Error("Resolve mapping is wrong")
	}
}

func TestNewRasterHiDPI(t *testing.T) {
	target, err := New(Auto, 120, 40, 2)
	if err != nil {
		t.Fatal(err)
	}
	if target.Format() != Raster {
		t.Fatalf("Format = %q, want raster", target.Format())
	}
	if target.Width() != 120 || target.Height() != 40 {
		t.Errorf("logical size = %dx%d, want 120x40", target.Width(), target.Height())
	}
	raster := target.(*RasterTarget)
	if w, h := raster.PixelSize(); w != 240 || h != 80 {
		t.Errorf("pixel size = %dx%d, want 240x80", w, h)
	}
	if b := raster.Logical().Bounds(); b.Dx() != 120 || b.Dy() != 40 {
		t.Errorf("Logical bounds = %v", b)
	}
}

func TestRasterEncodePNG(t *testing.T) {
	target := NewRaster(10, 5, 1)
	dc := target.Context()
	dc.SetRGB(1, 0, 0)
	dc.DrawRectangle(0, 0, 10, 5)
	dc.Fill()

	var buf bytes.Buffer
	if err := target.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("decoded bounds = %v", b)
	}
	r, _, _, _ := img.At(5, 2).RGBA()
	if r>>8 != 255 {
		t.Errorf("expected red pixel, got r=%d", r>>8)
	}
}

func TestEmptyRasterEncodeFails(t *testing.T) {
	target, _ := New(Raster, 0, 0, 1)
	err := target.Encode(&bytes.Buffer{})
	if !stderrors.Is(err, errors.New("E300")) {
		t.Errorf("expected E300, got %v", err)
	}
}

func TestNewClampsInputs(t *testing.T) {
	target, err := New(Vector, -5, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if target.Width() != 0 || target.PixelRatio() != 1 {
		t.Errorf("got %dx%d @%v", target.Width(), target.Height(), target.PixelRatio())
	}
	if _, err := New("bogus", 1, 1, 1); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestVectorEncode(t *testing.T) {
	target := NewVector(120, 40, 2)
	target.Canvas().Rect(0, 0, 120, 40, "fill:red")

	var first, second bytes.Buffer
	if err := target.Encode(&first); err != nil {
		t.Fatal(err)
	}
	if err := target.Encode(&second); err != nil {
		t.Fatal(err)
	}
	out := first.String()
	for _, want := range []string{`width="120"`, `height="40"`, `data-pixel-ratio="2"`, "<rect", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q:\n%s", want, out)
		}
	}
	if strings.Count(second.String(), "</svg>") != 1 {
		t.Error("document should be closed exactly once")
	}
	if target.ContentType() != "image/svg+xml" || target.Extension() != ".svg" {
		t.Error("vector metadata is wrong")
	}
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := FileSink{Dir: dir}

	path, err := sink.Put(context.Background(), "plot", NewVector(10, 10, 1))
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "plot.svg") {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not written: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sink.Put(ctx, "late", NewVector(1, 1, 1)); !stderrors.Is(err, errors.New("E301")) {
		t.Errorf("expected E301 on cancelled context, got %v", err)
	}
}

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	body   []byte
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, in)
	var buf bytes.Buffer
	buf.ReadFrom(in.Body)
	f.body = buf.Bytes()
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink(t *testing.T) {
	client := &fakeS3{}
	sink := NewS3Sink(client, "exports", "plots/")

	url, err := sink.Put(context.Background(), "p1", NewVector(4, 4, 2))
	if err != nil {
		t.Fatal(err)
	}
	if url != "s3://exports/plots/p1.svg" {
		t.Errorf("url = %q", url)
	}
	in := client.inputs[0]
	if aws.ToString(in.Bucket) != "exports" || aws.ToString(in.Key) != "plots/p1.svg" {
		t.Errorf("bucket/key = %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if aws.ToString(in.ContentType) != "image/svg+xml" {
		t.Errorf("content type = %s", aws.ToString(in.ContentType))
	}
	if in.Metadata["logical-size"] != "4x4" || in.Metadata["pixel-ratio"] != "2" {
		t.Errorf("metadata = %v", in.Metadata)
	}
	if !bytes.Contains(client.body, []byte("</svg>")) {
		t.Error("uploaded body should be the encoded document")
	}
}

func TestS3SinkError(t *testing.T) {
	sink := NewS3Sink(&fakeS3{err: stderrors.New("denied")}, "b", "")
	_, err := sink.Put(context.Background(), "p", NewVector(1, 1, 1))
	if !stderrors.Is(err, errors.New("E301")) {
		t.Fatalf("expected E301, got %v", err)
	}
	if !strings.Contains(err.Error(), "denied") {
		t.Errorf("error should carry the cause: %v", err)
	}
}
