// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause
package handlers

import (
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-js/jshint-mode/pkg/lintconf"
	"github.com/init-js/jshint-mode/pkg/linter"
)

// fakeLinter is a canned-findings linter that records its invocations
type fakeLinter struct {
	findings   []linter.Finding
	lastSource string
	lastConfig lintconf.Config
	calls      int
}

func (f *fakeLinter) Lint(source, filename string, config lintconf.Config) ([]linter.Finding, error) {
	f.calls++
	f.lastSource = source
	f.lastConfig = config
	return f.findings, nil
}

// setupCheckTestRouter creates a test router with fake jshint/jslint linters
func setupCheckTestRouter(jshint, jslint *fakeLinter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewCheckHandler(lintconf.NewCache(), linter.NewRegistryWith(jshint, jslint), nil)

	router.POST("/check", handler.Check)
	router.NoRoute(Greeting)

	return router
}

// postForm sends a url-encoded POST /check with the given fields
func postForm(router *gin.Engine, fields map[string]string) *httptest.ResponseRecorder {
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}

	req, _ := http.NewRequest(http.MethodPost, "/check", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestGreeting_RootPath tests that GET / returns the greeting
func TestGreeting_RootPath(t *testing.T) {
	router := setupCheckTestRouter(&fakeLinter{}, &fakeLinter{})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello from jshint-mode", w.Body.String())
}

// TestGreeting_GetCheck tests that GET /check is not the lint path
func TestGreeting_GetCheck(t *testing.T) {
	jshint := &fakeLinter{}
	router := setupCheckTestRouter(jshint, &fakeLinter{})

	req, _ := http.NewRequest(http.MethodGet, "/check", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello from jshint-mode", w.Body.String())
	assert.Equal(t, 0, jshint.calls)
}

// TestCheck_NoProblems tests the success response body
func TestCheck_NoProblems(t *testing.T) {
	router := setupCheckTestRouter(&fakeLinter{}, &fakeLinter{})

	w := postForm(router, map[string]string{
		"source":   "var x = 1;",
		"filename": "app.js",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "js: No problems found in app.js\n", w.Body.String())
}

// TestCheck_FindingsWithoutCode tests the failure response without evidence
func TestCheck_FindingsWithoutCode(t *testing.T) {
	jshint := &fakeLinter{findings: []linter.Finding{
		{Line: 3, Character: 5, Reason: "Missing semicolon", Evidence: " foo(); "},
	}}
	router := setupCheckTestRouter(jshint, &fakeLinter{})

	w := postForm(router, map[string]string{
		"source":   "foo()",
		"filename": "app.js",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lint at line 3 character 5: Missing semicolon\n", w.Body.String())
}

// TestCheck_FindingsWithCode tests that showCode=1 appends trimmed evidence
func TestCheck_FindingsWithCode(t *testing.T) {
	jshint := &fakeLinter{findings: []linter.Finding{
		{Line: 3, Character: 5, Reason: "Missing semicolon", Evidence: " foo(); "},
	}}
	router := setupCheckTestRouter(jshint, &fakeLinter{})

	w := postForm(router, map[string]string{
		"source":   "foo()",
		"filename": "app.js",
		"showCode": "1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lint at line 3 character 5: Missing semicolon\nfoo();\n\n", w.Body.String())
}

// TestCheck_ShowCodeRequiresExactOne tests that only "1" enables evidence
func TestCheck_ShowCodeRequiresExactOne(t *testing.T) {
	for _, value := range []string{"0", "true", "yes", ""} {
		jshint := &fakeLinter{findings: []linter.Finding{
			{Line: 1, Character: 1, Reason: "nope", Evidence: "code"},
		}}
		router := setupCheckTestRouter(jshint, &fakeLinter{})

		w := postForm(router, map[string]string{
			"source":   "x",
			"filename": "app.js",
			"showCode": value,
		})

		assert.Equal(t, "Lint at line 1 character 1: nope\n", w.Body.String(),
			"showCode=%q must not include evidence", value)
	}
}

// TestCheck_DefaultModeIsJSHint tests that an absent mode selects jshint
func TestCheck_DefaultModeIsJSHint(t *testing.T) {
	jshint := &fakeLinter{}
	jslint := &fakeLinter{}
	router := setupCheckTestRouter(jshint, jslint)

	postForm(router, map[string]string{"source": "var x = 1;"})

	assert.Equal(t, 1, jshint.calls)
	assert.Equal(t, 0, jslint.calls)
}

// TestCheck_ExplicitJSHintMode tests mode=jshint and absent mode behave the same
func TestCheck_ExplicitJSHintMode(t *testing.T) {
	jshint := &fakeLinter{}
	jslint := &fakeLinter{}
	router := setupCheckTestRouter(jshint, jslint)

	postForm(router, map[string]string{"source": "var x = 1;", "mode": "jshint"})

	assert.Equal(t, 1, jshint.calls)
	assert.Equal(t, 0, jslint.calls)
}

// TestCheck_JSLintMode tests that mode=jslint selects the strict linter
func TestCheck_JSLintMode(t *testing.T) {
	jshint := &fakeLinter{}
	jslint := &fakeLinter{}
	router := setupCheckTestRouter(jshint, jslint)

	postForm(router, map[string]string{"source": "var x = 1;", "mode": "jslint"})

	assert.Equal(t, 0, jshint.calls)
	assert.Equal(t, 1, jslint.calls)
}

// TestCheck_ModeMatchIsCaseSensitive tests that "JSLint" falls back to jshint
func TestCheck_ModeMatchIsCaseSensitive(t *testing.T) {
	jshint := &fakeLinter{}
	jslint := &fakeLinter{}
	router := setupCheckTestRouter(jshint, jslint)

	postForm(router, map[string]string{"source": "var x = 1;", "mode": "JSLint"})

	assert.Equal(t, 1, jshint.calls)
	assert.Equal(t, 0, jslint.calls)
}

// TestCheck_ConfigPathResolvedThroughCache tests that the jshintrc field
// reaches the linter as a parsed config
func TestCheck_ConfigPathResolvedThroughCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".jshintrc")
	require.NoError(t, os.WriteFile(path, []byte(`{/* strict */"esversion": 5}`), 0644))

	jshint := &fakeLinter{}
	router := setupCheckTestRouter(jshint, &fakeLinter{})

	postForm(router, map[string]string{
		"source":   "var x = 1;",
		"jshintrc": path,
	})

	require.Equal(t, 1, jshint.calls)
	assert.Equal(t, float64(5), jshint.lastConfig["esversion"])
}

// TestCheck_AbsentConfigPathYieldsEmptyConfig tests the no-jshintrc default
func TestCheck_AbsentConfigPathYieldsEmptyConfig(t *testing.T) {
	jshint := &fakeLinter{}
	router := setupCheckTestRouter(jshint, &fakeLinter{})

	postForm(router, map[string]string{"source": "var x = 1;"})

	require.Equal(t, 1, jshint.calls)
	assert.Empty(t, jshint.lastConfig)
}

// TestCheck_MultipartForm tests the multipart submission path editors use
func TestCheck_MultipartForm(t *testing.T) {
	jshint := &fakeLinter{}
	router := setupCheckTestRouter(jshint, &fakeLinter{})

	var body strings.Builder
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("source", "var x = 1;\n"))
	require.NoError(t, mw.WriteField("filename", "buffer.js"))
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest(http.MethodPost, "/check", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "js: No problems found in buffer.js\n", w.Body.String())
	assert.Equal(t, "var x = 1;\n", jshint.lastSource)
}

// TestCheck_MalformedMultipartRejected tests the explicit 400 policy for
// unparseable bodies
func TestCheck_MalformedMultipartRejected(t *testing.T) {
	jshint := &fakeLinter{}
	router := setupCheckTestRouter(jshint, &fakeLinter{})

	req, _ := http.NewRequest(http.MethodPost, "/check", strings.NewReader("this is not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, jshint.calls)
}
