// Package api serves the compressor over HTTP.
package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/klauspost/compress/gzhttp/writer"

	"github.com/zarghol/zpack/flate"
	"github.com/zarghol/zpack/internal/config"
)

// NewRouter returns a gin engine with every route registered.
func NewRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	h := &handlers{cfg: cfg}

	router.GET("/health", h.health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/compress", h.compress)
		v1.POST("/checksum", h.checksum)
		v1.POST("/stats", h.stats)
		v1.GET("/levels", h.levels)
	}
	return router
}

// gzipFactory makes gzhttp compress responses with zpack's own gzip
// writer.
var gzipFactory = writer.GzipWriterFactory{
	Levels: func() (int, int) {
		return flate.DefaultCompression, flate.BestCompression
	},
	New: func(w io.Writer, level int) writer.GzipWriter {
		return flate.NewGZIPWriter(w, level)
	},
}

// NewHandler returns the router wrapped in response compression.
func NewHandler(cfg *config.Config) (http.Handler, error) {
	wrapper, err := gzhttp.NewWrapper(
		gzhttp.Implementation(gzipFactory),
		gzhttp.CompressionLevel(cfg.DefaultLevel),
		gzhttp.MinSize(cfg.GzipMinSize),
	)
	if err != nil {
		return nil, err
	}
	return wrapper(NewRouter(cfg)), nil
}
