package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/init-js/jshint-mode/pkg/history"
	"github.com/init-js/jshint-mode/pkg/lintconf"
	"github.com/init-js/jshint-mode/pkg/linter"
)

// GreetingBody is the fixed response for every route except POST /check.
const GreetingBody = "hello from jshint-mode"

// Memory limit handed to the multipart parser; larger parts spill to disk.
const maxFormMemory = 32 << 20

// CheckRequest is the parsed form of a POST /check body. Absent fields keep
// their zero values; defaulting happens where the field is consumed.
type CheckRequest struct {
	// Source is the raw text to lint.
	Source string

	// Filename is used in log lines and the report; never opened.
	Filename string

	// Mode selects the linter. Only the exact value "jslint" picks the
	// strict profile.
	Mode string

	// ShowCode includes each finding's source line in the report. True
	// only when the form value is exactly "1".
	ShowCode bool

	// ConfigPath points at a .jshintrc readable by this process.
	ConfigPath string
}

// CheckHandler handles POST /check requests
type CheckHandler struct {
	configs *lintconf.Cache
	linters *linter.Registry
	history *history.Storage // nil disables recording
}

// NewCheckHandler creates a new check handler
func NewCheckHandler(configs *lintconf.Cache, linters *linter.Registry, store *history.Storage) *CheckHandler {
	return &CheckHandler{
		configs: configs,
		linters: linters,
		history: store,
	}
}

// Check handles POST /check
func (h *CheckHandler) Check(c *gin.Context) {
	req, err := parseCheckRequest(c.Request)
	if err != nil {
		c.String(http.StatusBadRequest, "cannot parse form: %v\n", err)
		return
	}

	// Placeholder for buffers the editor has not saved yet.
	logName := req.Filename
	if logName == "" {
		logName = "anonymous"
	}

	mode := linter.ModeJSHint
	if req.Mode == linter.ModeJSLint {
		mode = linter.ModeJSLint
	}

	log.Infof("Linting %s with mode %s", logName, mode)
	start := time.Now()

	config := h.configs.Get(req.ConfigPath)

	findings, err := h.linters.Lint(mode, req.Source, req.Filename, config)
	if err != nil {
		log.Errorf("Lint failed for %s: %v", logName, err)
		c.String(http.StatusInternalServerError, "lint failed: %v\n", err)
		return
	}

	elapsed := time.Since(start)
	log.Infof("Checked %s in %s", logName, elapsed)

	if h.history != nil {
		record := &history.CheckRecord{
			Filename:   logName,
			Mode:       mode,
			Findings:   len(findings),
			DurationMs: elapsed.Milliseconds(),
		}
		if err := h.history.Record(record); err != nil {
			// The response is the source of truth; history is best effort.
			log.Warnf("Failed to record check for %s: %v", logName, err)
		}
	}

	c.String(http.StatusOK, "%s", linter.FormatReport(findings, req.Filename, req.ShowCode))
}

// parseCheckRequest reads the multipart or url-encoded form into an explicit
// request structure.
func parseCheckRequest(r *http.Request) (*CheckRequest, error) {
	// ParseMultipartForm falls through to ParseForm for url-encoded
	// bodies, signalled by ErrNotMultipart.
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}

	return &CheckRequest{
		Source:     r.PostFormValue("source"),
		Filename:   r.PostFormValue("filename"),
		Mode:       r.PostFormValue("mode"),
		ShowCode:   r.PostFormValue("showCode") == "1",
		ConfigPath: r.PostFormValue("jshintrc"),
	}, nil
}

// Greeting answers every route other than POST /check.
func Greeting(c *gin.Context) {
	c.String(http.StatusOK, GreetingBody)
}
