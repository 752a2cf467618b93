package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
	"github.com/nguyentantai21042004/slide-narrator/internal/models"
	"github.com/nguyentantai21042004/slide-narrator/internal/processor"
)

// formOverhead is the room left for multipart headers and form fields on top of the file limit
const formOverhead = 64 << 10

// Options configures the upload handler
type Options struct {
	OutputDir   string
	MaxUploadMB int64
	DefaultMode models.RenderMode
	Model       string
}

// Handler serves the upload page and runs one narration at a time
type Handler struct {
	proc   processor.Processor
	opts   Options
	logger logger.Logger
	busy   sync.Mutex

	// running mirrors busy for status reads that must not contend for the lock
	running atomic.Bool
}

func NewHandler(proc processor.Processor, opts Options, log logger.Logger) *Handler {
	if opts.DefaultMode == "" {
		opts.DefaultMode = models.RenderPersisted
	}
	return &Handler{proc: proc, opts: opts, logger: log}
}

func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (h *Handler) Narrate(c *gin.Context) {
	ctx := c.Request.Context()
	runID := uuid.NewString()

	if !h.busy.TryLock() {
		c.JSON(http.StatusConflict, ErrorResponse{RunID: runID, Error: "A narration is already running, try again when it finishes"})
		return
	}
	defer h.busy.Unlock()
	h.running.Store(true)
	defer h.running.Store(false)

	limit := h.opts.MaxUploadMB << 20
	if limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+formOverhead)
	}

	fh, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || (err == nil && limit > 0 && fh.Size > limit) {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{RunID: runID, Error: fmt.Sprintf("File is larger than %d MB", h.opts.MaxUploadMB), Kind: string(processor.KindInput)})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{RunID: runID, Error: "Upload a deck in the \"file\" field", Kind: string(processor.KindInput)})
		return
	}

	mode := h.opts.DefaultMode
	if v := c.PostForm("mode"); v != "" {
		mode, err = models.ParseRenderMode(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{RunID: runID, Error: err.Error(), Kind: string(processor.KindInput)})
			return
		}
	}

	data, err := readUpload(fh)
	if err != nil {
		h.logger.Error(ctx, "[%s] Failed to read upload %s: %v", runID, fh.Filename, err)
		c.JSON(http.StatusBadRequest, ErrorResponse{RunID: runID, Error: "Could not read the uploaded file", Kind: string(processor.KindInput)})
		return
	}

	h.logger.Info(ctx, "[%s] Narrating upload %s (%d bytes, %s)", runID, fh.Filename, len(data), mode)

	res, err := h.proc.Process(ctx, models.Source{Name: filepath.Base(fh.Filename), Data: data}, mode)
	if err != nil {
		h.logger.Error(ctx, "[%s] %v", runID, err)
		c.JSON(statusFor(err), ErrorResponse{RunID: runID, Error: err.Error(), Kind: string(processor.KindOf(err))})
		return
	}

	out := NarrateResponse{
		RunID:          runID,
		Source:         res.Source,
		Model:          res.Model,
		Template:       res.Template,
		State:          string(res.State),
		Narration:      res.Narration,
		ElapsedSeconds: res.Elapsed.Seconds(),
	}
	if res.Audio.Path != "" {
		out.AudioURL = "/audio/" + filepath.Base(res.Audio.Path)
	}
	if res.RenderErr != nil {
		h.logger.Warn(ctx, "[%s] %v", runID, res.RenderErr)
		out.RenderError = res.RenderErr.Error()
	}

	c.JSON(http.StatusOK, out)
}

// Audio serves a rendered file from the output directory by bare name
func (h *Handler) Audio(c *gin.Context) {
	name := c.Param("name")
	if name != filepath.Base(name) || name == "." || name == ".." || name[0] == '.' {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Audio not found"})
		return
	}

	path := filepath.Join(h.opts.OutputDir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Audio not found"})
		return
	}

	c.File(path)
}

func (h *Handler) Health(c *gin.Context) {
	status := "idle"
	if h.running.Load() {
		status = "busy"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"runner": status,
		"model":  h.opts.Model,
	})
}

func statusFor(err error) int {
	switch processor.KindOf(err) {
	case processor.KindInput:
		return http.StatusBadRequest
	case processor.KindTransport:
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case processor.KindResponseFormat:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
