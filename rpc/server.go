package rpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	"github.com/powerman/rpc-codec/jsonrpc2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/net/netutil"
	"golang.org/x/net/websocket"

	"github.com/clawnch/ledger/common"
	"github.com/clawnch/ledger/common/util"
	"github.com/clawnch/ledger/core"
	"github.com/clawnch/ledger/metrics"
)

var logger = util.GetLoggerForModule("rpc")

// ServiceName prefixes every RPC method, e.g. "clawnch.Stake".
const ServiceName = "clawnch"

// ClawnchRPCService exposes the ledger operations as net/rpc methods.
type ClawnchRPCService struct {
	ledger  core.Ledger
	metrics *metrics.Metrics

	// Life cycle
	wg      *sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
}

// ClawnchRPCServer is an instance of RPC service.
type ClawnchRPCServer struct {
	*ClawnchRPCService

	server   *http.Server
	handler  *rpc.Server
	router   *mux.Router
	listener net.Listener
}

// NewClawnchRPCServer creates a new instance of ClawnchRPCServer. metrics may be nil.
func NewClawnchRPCServer(ledger core.Ledger, m *metrics.Metrics) *ClawnchRPCServer {
	t := &ClawnchRPCServer{
		ClawnchRPCService: &ClawnchRPCService{
			wg: &sync.WaitGroup{},
		},
	}

	t.ledger = ledger
	t.metrics = m

	s := rpc.NewServer()
	s.RegisterName(ServiceName, t.ClawnchRPCService)

	t.handler = s

	timeout := viper.GetDuration(common.CfgRPCTimeoutSecs) * time.Second
	t.router = mux.NewRouter()
	t.router.Use(requestIDMiddleware)
	t.router.Handle("/", &defaultHTTPHandler{})
	t.router.Handle("/rpc", corsMiddleware(TimeoutHandler(jsonrpc2.HTTPHandler(s), timeout, "")))
	t.router.Handle("/ws", websocket.Handler(func(ws *websocket.Conn) {
		s.ServeCodec(jsonrpc2.NewServerCodec(ws, s))
	}))
	if m != nil {
		t.router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	t.server = &http.Server{
		Handler:           t.router,
		ReadHeaderTimeout: timeout,
	}

	return t
}

// Handler returns the HTTP handler serving every endpoint.
func (t *ClawnchRPCServer) Handler() http.Handler {
	return t.router
}

// Start binds the listener and creates the main goroutine.
func (t *ClawnchRPCServer) Start(ctx context.Context) error {
	address := viper.GetString(common.CfgRPCAddress)
	port := viper.GetString(common.CfgRPCPort)
	l, err := net.Listen("tcp", net.JoinHostPort(address, port))
	if err != nil {
		return errors.Wrap(err, "failed to create listener")
	}
	logger.WithFields(log.Fields{"address": address, "port": port}).Info("RPC server started")

	t.listener = netutil.LimitListener(l, viper.GetInt(common.CfgRPCMaxConnections))

	c, cancel := context.WithCancel(ctx)
	t.ctx = c
	t.cancel = cancel

	t.wg.Add(1)
	go t.mainLoop()
	return nil
}

// Addr returns the address the server listens on, once started.
func (t *ClawnchRPCServer) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *ClawnchRPCServer) mainLoop() {
	defer t.wg.Done()

	go t.serve()

	<-t.ctx.Done()
	t.stopped = true

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	t.server.Shutdown(shutdownCtx)
}

func (t *ClawnchRPCServer) serve() {
	err := t.server.Serve(t.listener)
	if err != nil && err != http.ErrServerClosed {
		logger.Error(err)
	}
}

func corsMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		//Allow CORS here By * or specific origin
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

// requestIDMiddleware tags every request with an X-Request-Id, keeping the one
// supplied by the client.
func requestIDMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New()
		}
		w.Header().Set("X-Request-Id", id)
		logger.WithFields(log.Fields{"id": id, "path": r.URL.Path}).Debug("Request")
		handler.ServeHTTP(w, r)
	})
}

// Stop notifies all goroutines to stop without blocking.
func (t *ClawnchRPCServer) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
}

// Wait blocks until all goroutines stop.
func (t *ClawnchRPCServer) Wait() {
	t.wg.Wait()
}

type defaultHTTPHandler struct {
}

func (dh *defaultHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Clawnch ledger is up and running!")
}

//
// Adapted from https://golang.org/src/net/http/server.go
//

// TimeoutHandler returns a Handler that runs h with the given time limit.
//
// The new Handler calls h.ServeHTTP to handle each request, but if a
// call runs for longer than its time limit, the handler responds with
// a 503 Service Unavailable error and the given message in its body.
// (If msg is empty, a suitable default message will be sent.)
// After such a timeout, writes by h to its ResponseWriter will return
// ErrHandlerTimeout.
//
// TimeoutHandler supports the Pusher interface but does not support
// the Hijacker or Flusher interfaces.
func TimeoutHandler(h http.Handler, dt time.Duration, msg string) http.Handler {
	return &timeoutHandler{
		handler: h,
		body:    msg,
		dt:      dt,
	}
}

type timeoutHandler struct {
	handler http.Handler
	body    string
	dt      time.Duration

	// When set, no context will be created and this context will
	// be used instead.
	testContext context.Context
}

func (h *timeoutHandler) errorBody() string {
	if h.body != "" {
		return h.body
	}
	return "{\"error\": {\"message\":\"Timeout\"}}"
}

func (h *timeoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := h.testContext
	if ctx == nil {
		var cancelCtx context.CancelFunc
		ctx, cancelCtx = context.WithTimeout(r.Context(), h.dt)
		defer cancelCtx()
	}
	r = r.WithContext(ctx)
	done := make(chan struct{})
	tw := &timeoutWriter{
		w:   w,
		h:   make(http.Header),
		req: r,
	}
	panicChan := make(chan interface{}, 1)

	buf, bodyErr := io.ReadAll(r.Body)
	if bodyErr != nil {
		http.Error(w, bodyErr.Error(), http.StatusInternalServerError)
		return
	}

	r.Body = io.NopCloser(bytes.NewBuffer(buf))

	go func() {
		defer func() {
			if p := recover(); p != nil {
				panicChan <- p
			}
		}()
		h.handler.ServeHTTP(tw, r)
		close(done)
	}()
	select {
	case p := <-panicChan:
		panic(p)
	case <-done:
		tw.mu.Lock()
		defer tw.mu.Unlock()

		dst := w.Header()
		for k, vv := range tw.h {
			dst[k] = vv
		}
		if !tw.wroteHeader {
			tw.code = http.StatusOK
		}
		w.WriteHeader(tw.code)
		w.Write(tw.wbuf.Bytes())
	case <-ctx.Done():
		tw.mu.Lock()
		defer tw.mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, h.errorBody())
		tw.timedOut = true
		logger.Errorf("HTTP request timed out: requestBody=%q", buf)
	}
}

type timeoutWriter struct {
	w    http.ResponseWriter
	h    http.Header
	wbuf bytes.Buffer
	req  *http.Request

	mu          sync.Mutex
	timedOut    bool
	wroteHeader bool
	code        int
}

var _ http.Pusher = (*timeoutWriter)(nil)

// Push implements the Pusher interface.
func (tw *timeoutWriter) Push(target string, opts *http.PushOptions) error {
	if pusher, ok := tw.w.(http.Pusher); ok {
		return pusher.Push(target, opts)
	}
	return http.ErrNotSupported
}

func (tw *timeoutWriter) Header() http.Header { return tw.h }

func (tw *timeoutWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.writeHeaderLocked(http.StatusOK)
	}
	return tw.wbuf.Write(p)
}

func (tw *timeoutWriter) writeHeaderLocked(code int) {
	switch {
	case tw.timedOut:
		return
	case tw.wroteHeader:
	default:
		tw.wroteHeader = true
		tw.code = code
	}
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.writeHeaderLocked(code)
}
