package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zarghol/zpack/checksum"
	"github.com/zarghol/zpack/flate"
	"github.com/zarghol/zpack/internal/compare"
	"github.com/zarghol/zpack/internal/config"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ChecksumResponse is the body returned by the checksum endpoint.
type ChecksumResponse struct {
	Kind  string `json:"kind"`
	Value uint32 `json:"value"`
	Hex   string `json:"hex"`
}

type handlers struct {
	cfg *config.Config
}

func fail(c *gin.Context, status int, title string, err error) {
	c.JSON(status, ErrorResponse{
		Error:   title,
		Code:    status,
		Message: err.Error(),
	})
}

// readBody reads the request body, refusing bodies larger than the
// configured limit. It writes the error response itself and reports
// whether the handler may continue.
func (h *handlers) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusRequestEntityTooLarge, "Body too large",
				fmt.Errorf("maximum body size is %d bytes", h.cfg.MaxBodySize))
			return nil, false
		}
		fail(c, http.StatusBadRequest, "Body read error", err)
		return nil, false
	}
	return body, true
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// compressConfig builds the compressor configuration from the query
// string.
func (h *handlers) compressConfig(c *gin.Context) (flate.Config, error) {
	cfg := flate.DefaultConfig()
	cfg.Level = h.cfg.DefaultLevel

	if s := c.Query("level"); s != "" {
		level, err := strconv.Atoi(s)
		if err != nil {
			return cfg, fmt.Errorf("level: %w", err)
		}
		cfg.Level = level
	}
	if s := c.Query("wrap"); s != "" {
		wrap, err := flate.ParseWrap(s)
		if err != nil {
			return cfg, err
		}
		cfg.Wrap = wrap
	}
	if s := c.Query("strategy"); s != "" {
		strategy, err := flate.ParseStrategy(s)
		if err != nil {
			return cfg, err
		}
		cfg.Strategy = strategy
	}
	return cfg, cfg.Validate()
}

func (h *handlers) compress(c *gin.Context) {
	cfg, err := h.compressConfig(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid parameters", err)
		return
	}
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	w, err := flate.NewWriterConfig(&buf, cfg)
	if err == nil {
		_, err = w.Write(body)
	}
	if err == nil {
		err = w.Close()
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Compression failed", err)
		return
	}

	c.Header("X-Original-Size", strconv.Itoa(len(body)))
	c.Header("X-Compressed-Size", strconv.Itoa(buf.Len()))
	if cfg.Wrap != flate.Raw {
		c.Header("X-Checksum", fmt.Sprintf("%08x", w.Checksum()))
	}
	c.Data(http.StatusOK, contentType(cfg.Wrap), buf.Bytes())
}

func contentType(wrap flate.Wrap) string {
	switch wrap {
	case flate.GZIP:
		return "application/gzip"
	case flate.Zlib:
		return "application/zlib"
	}
	return "application/octet-stream"
}

func (h *handlers) checksum(c *gin.Context) {
	var sum checksum.Checksum
	kind := c.DefaultQuery("kind", "adler32")
	switch kind {
	case "adler32":
		sum = checksum.NewAdler32()
	case "crc32":
		sum = checksum.NewCRC32()
	default:
		fail(c, http.StatusBadRequest, "Invalid parameters",
			fmt.Errorf("unknown checksum %q, want adler32 or crc32", kind))
		return
	}
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	sum.Update(body)
	c.JSON(http.StatusOK, ChecksumResponse{
		Kind:  kind,
		Value: sum.Value(),
		Hex:   fmt.Sprintf("%08x", sum.Value()),
	})
}

func (h *handlers) stats(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	report, err := compare.Run(body)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Comparison failed", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *handlers) levels(c *gin.Context) {
	c.JSON(http.StatusOK, flate.Levels())
}
