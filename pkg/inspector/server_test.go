package inspector

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/elementview/pkg/element"
	"github.com/vango-dev/elementview/pkg/geom"
	"github.com/vango-dev/elementview/pkg/instrument"
	"github.com/vango-dev/elementview/pkg/scene"
)

const testScene = `
viewport: {width: 400, height: 300}
devicePixelRatio: 2
elements:
  - id: page
    kind: column
    sizing: stretch_both
    children:
      - id: plot
        kind: plot
        rect: {left: 10, top: 20, width: 120, height: 40}
        classes: [figure]
        styles: {background: "#ff0000"}
`

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	doc, err := scene.Parse([]byte(testScene), "test.yaml")
	if err != nil {
		t.Fatal(err)
	}
	registry := prometheus.NewRegistry()
	sc, err := scene.Build(doc, scene.WithRecorder(instrument.New(instrument.WithRegistry(registry))))
	if err != nil {
		t.Fatal(err)
	}
	srv := New(sc, append([]Option{WithGatherer(registry)}, opts...)...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Shutdown(context.Background())
		sc.Close()
	})
	return srv, ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	var body map[string]any
	if code := getJSON(t, ts.URL+"/health", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestViews(t *testing.T) {
	_, ts := newTestServer(t)
	var states []element.State
	if code := getJSON(t, ts.URL+"/views", &states); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(states) != 2 || states[0].ID != "page" || states[1].ID != "plot" {
		t.Fatalf("states = %+v", states)
	}
	if states[1].BBox != (geom.BBox{Left: 10, Top: 20, Width: 120, Height: 40}) {
		t.Errorf("plot bbox = %+v", states[1].BBox)
	}
}

func TestViewDetail(t *testing.T) {
	_, ts := newTestServer(t)
	var detail struct {
		View struct {
			ID      string   `json:"id"`
			State   string   `json:"state"`
			Classes []string `json:"classes"`
		} `json:"view"`
		Node struct {
			Parent string `json:"parent"`
		} `json:"node"`
		Stylesheets []string `json:"stylesheets"`
	}
	if code := getJSON(t, ts.URL+"/views/plot", &detail); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if detail.View.ID != "plot" || detail.View.State != "resized" {
		t.Errorf("view = %+v", detail.View)
	}
	if len(detail.View.Classes) != 2 || detail.View.Classes[0] != "bk-plot" {
		t.Errorf("classes = %v", detail.View.Classes)
	}
	if detail.Node.Parent != "page" {
		t.Errorf("node parent = %q", detail.Node.Parent)
	}

	var errBody map[string]any
	if code := getJSON(t, ts.URL+"/views/ghost", &errBody); code != http.StatusNotFound {
		t.Errorf("unknown view status = %d", code)
	}
	if errBody["code"] != "E203" {
		t.Errorf("error body = %v", errBody)
	}
}

// syncBuffer guards a buffer written by handler goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFailedRequestIsLoggedCompactly(t *testing.T) {
	var logs syncBuffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	_, ts := newTestServer(t, WithLogger(logger))

	if code := getJSON(t, ts.URL+"/views/ghost", nil); code != http.StatusNotFound {
		t.Fatalf("status = %d", code)
	}
	out := logs.String()
	for _, want := range []string{"request failed", "path=/views/ghost", "status=404", `error="E203: Unknown element"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestExportEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/views/plot/export?format=vector")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("status = %d type = %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(body), `width="120"`) {
		t.Errorf("svg = %s", body)
	}

	resp, err = http.Get(ts.URL + "/views/plot/export?hidpi=true")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get("Content-Type") != "image/png" {
		t.Errorf("auto export type = %q", resp.Header.Get("Content-Type"))
	}

	resp, err = http.Get(ts.URL + "/views/plot/export?format=pdf")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad format status = %d", resp.StatusCode)
	}
}

func TestResizeEndpointStreamsFinish(t *testing.T) {
	srv, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for srv.hub.clientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("websocket client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Post(ts.URL+"/views/plot/resize", "application/json", strings.NewReader(`{"width": 60, "height": 30}`))
	if err != nil {
		t.Fatal(err)
	}
	var state element.State
	json.NewDecoder(resp.Body).Decode(&state)
	resp.Body.Close()
	if state.BBox != (geom.BBox{Left: 10, Top: 20, Width: 60, Height: 30}) {
		t.Errorf("state bbox = %+v", state.BBox)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatal(err)
	}
	if ev.Type != EventFinish || ev.ID != "plot" || ev.BBox.Width != 60 {
		t.Errorf("event = %+v", ev)
	}

	resp, err = http.Post(ts.URL+"/views/plot/resize", "application/json", strings.NewReader(`{"width": -1}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("negative size status = %d", resp.StatusCode)
	}
}

func TestViewportEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/viewport", "application/json", strings.NewReader(`{"width": 200, "height": 100}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	var states []element.State
	getJSON(t, ts.URL+"/views", &states)
	if states[0].BBox != (geom.BBox{Width: 200, Height: 100}) {
		t.Errorf("page bbox = %+v", states[0].BBox)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{"elementview_renders_total", "elementview_live_views 2"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestStartAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t)
	addr, err := srv.Start("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	again, _ := srv.Start("127.0.0.1:0")
	if again != addr {
		t.Errorf("second Start = %q, want %q", again, addr)
	}

	var body map[string]any
	if code := getJSON(t, "http://"+addr+"/health", &body); code != http.StatusOK {
		t.Errorf("status = %d", code)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatal(err)
	}
}
