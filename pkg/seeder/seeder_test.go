package seeder_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/OluchukwuJoseph/alx-files-manager/pkg/filemanager"
	"github.com/OluchukwuJoseph/alx-files-manager/pkg/seeder"
)

func TestPlan(t *testing.T) {
	plan := seeder.Plan(20, 0)
	if len(plan) != 20 {
		t.Fatalf("expected 20 requests, got %d", len(plan))
	}
	for i, req := range plan {
		n := i + 1
		if req.Name != fmt.Sprintf("file_%d", n) {
			t.Fatalf("request %d name: %s", n, req.Name)
		}
		if req.Type != filemanager.TypeFile || req.ParentID != 0 {
			t.Fatalf("request %d shape: %#v", n, req)
		}
		decoded, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			t.Fatalf("request %d data is not base64: %v", n, err)
		}
		if string(decoded) != fmt.Sprintf("File %d contents", n) {
			t.Fatalf("request %d payload: %q", n, string(decoded))
		}
	}

	// Known vector: the third payload base64-encodes "File 3 contents".
	if plan[2].Data != "RmlsZSAzIGNvbnRlbnRz" {
		t.Fatalf("request 3 data: %s", plan[2].Data)
	}

	custom := seeder.Plan(3, 7)
	if len(custom) != 3 || custom[0].ParentID != 7 {
		t.Fatalf("unexpected custom plan: %#v", custom)
	}
	if len(seeder.Plan(-1, 0)) != 0 {
		t.Fatalf("negative count should yield an empty plan")
	}
}

type recordedRequest struct {
	Name     string
	Data     string
	Type     string
	ParentID int64
	Token    string
}

func TestRunSeedsTwentyFiles(t *testing.T) {
	var (
		mu       sync.Mutex
		received []recordedRequest
	)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/files" {
			http.NotFound(w, r)
			return
		}
		defer r.Body.Close()
		var payload struct {
			Type     string `json:"type"`
			ParentID int64  `json:"parentId"`
			Name     string `json:"name"`
			Data     string `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mu.Lock()
		received = append(received, recordedRequest{
			Name:     payload.Name,
			Data:     payload.Data,
			Type:     payload.Type,
			ParentID: payload.ParentID,
			Token:    r.Header.Get("X-Token"),
		})
		n := len(received)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id":       fmt.Sprintf("doc-%d", n),
			"userId":   "user-1",
			"name":     payload.Name,
			"type":     payload.Type,
			"isPublic": false,
			"parentId": payload.ParentID,
		})
	})
	srv := newLocalHTTPServer(t, handler)
	defer srv.Close()

	client, err := filemanager.New(srv.URL, "abc")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out := &bytes.Buffer{}
	if err := seeder.New(client, out).Run(context.Background(), 0, 0); err != nil {
		t.Fatalf("Run: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 20 {
		t.Fatalf("expected 20 requests, got %d", len(received))
	}
	for i, req := range received {
		n := i + 1
		if req.Name != fmt.Sprintf("file_%d", n) {
			t.Fatalf("request %d out of order: %s", n, req.Name)
		}
		if req.Type != "file" || req.ParentID != 0 {
			t.Fatalf("request %d shape: %#v", n, req)
		}
		if req.Token != "abc" {
			t.Fatalf("request %d token: %q", n, req.Token)
		}
		decoded, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil || string(decoded) != fmt.Sprintf("File %d contents", n) {
			t.Fatalf("request %d payload: %q (%v)", n, req.Data, err)
		}
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 output lines, got %d", len(lines))
	}
	for i, line := range lines {
		var doc struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			t.Fatalf("line %d is not JSON: %q", i+1, line)
		}
		if doc.Name != fmt.Sprintf("file_%d", i+1) {
			t.Fatalf("line %d name: %q", i+1, line)
		}
	}
}

func TestRunHaltsOnServerError(t *testing.T) {
	var (
		mu    sync.Mutex
		count int
	)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		mu.Lock()
		count++
		n := count
		mu.Unlock()
		if n == 5 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": fmt.Sprintf("doc-%d", n), "parentId": 0})
	})
	srv := newLocalHTTPServer(t, handler)
	defer srv.Close()

	client, err := filemanager.New(srv.URL, "abc")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out := &bytes.Buffer{}
	err = seeder.New(client, out).Run(context.Background(), 20, 0)
	if err == nil {
		t.Fatalf("expected Run to fail")
	}
	if !strings.Contains(err.Error(), "file_5") {
		t.Fatalf("error should name the failing file: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if count != 5 {
		t.Fatalf("expected the run to halt after request 5, saw %d requests", count)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 printed responses, got %d", len(lines))
	}
}

func TestRunRejectsNonJSONResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, "<html>created</html>")
	})
	srv := newLocalHTTPServer(t, handler)
	defer srv.Close()

	client, err := filemanager.New(srv.URL, "abc")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = seeder.New(client, &bytes.Buffer{}).Run(context.Background(), 1, 0)
	if err == nil {
		t.Fatalf("expected Run to fail on a non-JSON body")
	}
}

type testServer struct {
	URL      string
	listener net.Listener
	server   *http.Server
}

func (s *testServer) Close() {
	_ = s.server.Shutdown(context.Background())
	_ = s.listener.Close()
}

func newLocalHTTPServer(t *testing.T, handler http.Handler) *testServer {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("network disabled for tests: %v", err)
	}
	srv := &http.Server{Handler: handler}
	ts := &testServer{
		URL:      "http://" + ln.Addr().String(),
		listener: ln,
		server:   srv,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			t.Logf("test server serve error: %v", err)
		}
	}()
	return ts
}
