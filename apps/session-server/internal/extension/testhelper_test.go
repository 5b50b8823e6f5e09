package extension

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const testAddress = "GAAZI4TCR3TY5OJHCTJC2A4QSY6CJWJH5IAJTGKIN2ER7LBNVKOCCWN7"

// fakeBridge はパスごとの応答を差し替え可能なテスト用ブリッジ
type fakeBridge struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
	bodies   map[string][]byte
}

func newFakeBridge(t *testing.T) *fakeBridge {
	t.Helper()
	fb := &fakeBridge{
		t:        t,
		handlers: make(map[string]http.HandlerFunc),
		calls:    make(map[string]int),
		bodies:   make(map[string][]byte),
	}
	fb.server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBridge) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	var body []byte
	if r.Body != nil {
		var raw json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
			body = raw
		}
	}

	fb.mu.Lock()
	fb.calls[key]++
	fb.bodies[key] = body
	h, ok := fb.handlers[key]
	fb.mu.Unlock()

	if r.Header.Get(HeaderTraceID) == "" {
		fb.t.Errorf("%s: missing %s header", key, HeaderTraceID)
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

// on はメソッドとパスに対する応答を設定する
func (fb *fakeBridge) on(method, path string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.handlers[method+" "+path] = h
}

// onJSON はステータス200で固定JSONを返す応答を設定する
func (fb *fakeBridge) onJSON(method, path string, v any) {
	fb.on(method, path, jsonHandler(http.StatusOK, v))
}

func (fb *fakeBridge) callCount(method, path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.calls[method+" "+path]
}

func (fb *fakeBridge) lastBody(method, path string) map[string]any {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	var m map[string]any
	_ = json.Unmarshal(fb.bodies[method+" "+path], &m)
	return m
}

func (fb *fakeBridge) URL() string {
	return fb.server.URL
}

func jsonHandler(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderContentType, ContentTypeJSON)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func errorBody(code int, msg string) map[string]any {
	return map[string]any{"error": map[string]any{"code": code, "message": msg}}
}
