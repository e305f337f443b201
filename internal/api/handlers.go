package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/matzehuels/venn/pkg/buildinfo"
	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/core/label"
	"github.com/matzehuels/venn/pkg/core/solve"
	"github.com/matzehuels/venn/pkg/core/subsets"
	"github.com/matzehuels/venn/pkg/errors"
	"github.com/matzehuels/venn/pkg/pipeline"
	"github.com/matzehuels/venn/pkg/render/style"
)

// request is the body of /v1/layout and /v1/render.
type request struct {
	Sizes   subsets.Tuple   `json:"sizes,omitempty"`
	Subsets subsets.Mapping `json:"subsets,omitempty"`
	Sets    [][]string      `json:"sets,omitempty"`

	Layout solve.Config `json:"layout"`
	Labels label.Config `json:"labels"`
	Style  style.Config `json:"style"`

	Title       string  `json:"title,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	PNGScale    float64 `json:"png_scale,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`
}

// decode reads r's body over the server defaults.
func (s *Server) decode(r *http.Request) (pipeline.Options, error) {
	req := request{
		Layout:   s.defaults.Layout,
		Labels:   s.defaults.Labels,
		Style:    s.defaults.Style,
		PNGScale: pipeline.DefaultPNGScale,
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return pipeline.Options{}, err
		}
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}

	in, err := req.input()
	if err != nil {
		return pipeline.Options{}, err
	}
	v, err := subsets.Infer(in)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Sizes:       v,
		Diagram:     diagram.Config{Layout: req.Layout, Labels: req.Labels},
		Style:       req.Style,
		PNGScale:    req.PNGScale,
		Title:       req.Title,
		Interactive: req.Interactive,
		Refresh:     req.Refresh,
	}, nil
}

func (req request) input() (subsets.Input, error) {
	var in subsets.Input
	n := 0
	if req.Sizes != nil {
		in, n = req.Sizes, n+1
	}
	if req.Subsets != nil {
		in, n = req.Subsets, n+1
	}
	if req.Sets != nil {
		in, n = subsets.FromSets(req.Sets...), n+1
	}
	if n != 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "exactly one of sizes, subsets or sets is required")
	}
	return in, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}
	s.execute(w, r, opts)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := s.decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	s.execute(w, r, opts)
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		if errors.GetCode(err) == "" || errors.GetCode(err) == errors.ErrCodeInternal {
			opts.Logger.Error("pipeline failed", "err", err)
		}
		writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Layout-Hash", res.LayoutHash)
	h.Set("X-Fit-Error", strconv.FormatFloat(res.Stats.FitError, 'g', 6, 64))
	h.Set("X-Cache", cacheStatus(res.CacheInfo))
	if format == pipeline.FormatPDF || format == pipeline.FormatPNG {
		h.Set("Content-Disposition", fmt.Sprintf(`inline; filename="venn.%s"`, format))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func cacheStatus(ci pipeline.CacheInfo) string {
	switch {
	case ci.LayoutHit && ci.RenderHit:
		return "hit"
	case ci.LayoutHit:
		return "layout"
	default:
		return "miss"
	}
}
