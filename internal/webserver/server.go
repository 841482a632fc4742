// Package webserver is the browser-facing HTTP front end over engine.Pipeline.
package webserver

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
)

const readHeaderTimeout = 10 * time.Second

//go:embed static
var embedded embed.FS

// Options configures the router.
type Options struct {
	Pipeline    *engine.Pipeline
	StaticDir   string   // replaces the built-in page and assets; "" uses them
	CORSOrigins []string // empty disables CORS
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), recovery(), accessLog())
	if len(opts.CORSOrigins) > 0 {
		r.Use(corsMiddleware(opts.CORSOrigins))
	}

	h := &handler{pipeline: opts.Pipeline}
	r.POST("/analyze_transcript", h.analyzeTranscript)
	r.POST("/generate_script", h.generateScript)
	r.GET("/health", health)
	r.GET("/metrics", metrics)

	assets := staticAssets(opts.StaticDir)
	r.StaticFS("/static", http.FS(assets))
	if page, err := fs.ReadFile(assets, "index.html"); err == nil {
		index := func(c *gin.Context) { c.Data(http.StatusOK, "text/html; charset=utf-8", page) }
		r.GET("/", index)
		r.GET("/app", index)
	} else {
		slog.Warn("web: no index.html", slog.Any("error", err))
	}
	return r
}

// staticAssets returns dir when set, else the built-in bundle.
func staticAssets(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}
	return sub
}

// NewServer wraps the router in an http.Server bound to addr.
func NewServer(addr string, opts Options) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(opts),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
