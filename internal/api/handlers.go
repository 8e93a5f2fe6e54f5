package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/style"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// outlineResponse is the body returned by POST /api/outline.
type outlineResponse struct {
	Roots  []string       `json:"roots"`
	Count  int            `json:"count"`
	Depth  int            `json:"depth"`
	Forest outline.Forest `json:"forest"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	forest, err := s.runner.Parse(r.Context(), doc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if forest == nil {
		forest = outline.Forest{}
	}
	writeJSON(w, http.StatusOK, outlineResponse{
		Roots:  forest.Roots(),
		Count:  forest.Count(),
		Depth:  forest.Depth(),
		Forest: forest,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	opts, err := s.drawOptions(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}
	s.execute(w, r, doc, opts)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	opts, err := s.drawOptions(q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	s.execute(w, r, doc, opts)
}

// execute runs the pipeline for the single format in opts and writes the artifact.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, doc []byte, opts pipeline.Options) {
	res, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := opts.Formats[0]

	cacheState := "miss"
	if res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheState)
	w.Header().Set("X-Outline-Hash", res.OutlineHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// readDocument reads the request body, rejecting documents over the size limit.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body := http.MaxBytesReader(w, r.Body, errors.MaxDocumentSize)
	doc, err := io.ReadAll(body)
	if err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document"))
		return nil, false
	}
	return doc, true
}

// drawOptions is optionsFromQuery plus the named theme.
func (s *Server) drawOptions(q url.Values) (pipeline.Options, error) {
	opts, err := optionsFromQuery(q)
	if err != nil {
		return opts, err
	}
	if name := q.Get("theme"); name != "" {
		t, err := s.loadTheme(name)
		if err != nil {
			return opts, err
		}
		opts.Theme = &t
	}
	return opts, nil
}

// loadTheme reads name (".toml" optional) from the theme directory.
func (s *Server) loadTheme(name string) (style.Theme, error) {
	if s.themeDir == "" {
		return style.Theme{}, errors.New(errors.ErrCodeUnsupported, "server has no theme directory")
	}
	if err := errors.ValidatePath(name); err != nil {
		return style.Theme{}, err
	}
	if filepath.Ext(name) != ".toml" {
		name += ".toml"
	}
	t, err := style.Load(filepath.Join(s.themeDir, name))
	switch {
	case os.IsNotExist(err):
		return style.Theme{}, errors.New(errors.ErrCodeNotFound, "theme %q not found", name)
	case err != nil:
		return style.Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "load theme %q", name)
	}
	return t, nil
}

// optionsFromQuery builds pipeline options from query parameters.
// Unset parameters keep their pipeline defaults.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Parser:  q.Get("parser"),
		VizType: q.Get("viz"),
		Measure: q.Get("measure"),
	}

	var err error
	if opts.Root, err = intParam(q, "root"); err != nil {
		return opts, err
	}
	if opts.Width, err = floatParam(q, "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q, "height"); err != nil {
		return opts, err
	}
	if opts.Scale, err = floatParam(q, "scale"); err != nil {
		return opts, err
	}
	if opts.NoText, err = boolParam(q, "no_text"); err != nil {
		return opts, err
	}
	if opts.Detailed, err = boolParam(q, "detailed"); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
	}
	return n, nil
}

func floatParam(q url.Values, name string) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
	}
	return f, nil
}

func boolParam(q url.Values, name string) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
	}
	return b, nil
}

// fail writes err as a JSON error response and reports it to the HTTP hooks.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, map[string]string{
		"error":      errors.UserMessage(err),
		"code":       string(code),
		"request_id": requestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
