package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/core/subsets"
	"github.com/matzehuels/venn/pkg/errors"
	"github.com/matzehuels/venn/pkg/observability"
	"github.com/matzehuels/venn/pkg/render/style"
)

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats(" SVG,png,,svg ,json")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"svg", "png", "json"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ParseFormats = %v, want %v", got, want)
	}
	if _, err := ParseFormats("svg,gif"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Sizes: subsets.Vector{1, 2, 3}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Diagram != diagram.DefaultConfig() {
		t.Errorf("Diagram = %+v", opts.Diagram)
	}
	if !reflect.DeepEqual(opts.Style, style.Default()) {
		t.Errorf("Style = %+v", opts.Style)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale || opts.Logger == nil {
		t.Errorf("PNGScale = %v, Logger = %v", opts.PNGScale, opts.Logger)
	}

	def := DefaultOptions()
	def.Sizes = subsets.Vector{1, 2, 3}
	if err := def.ValidateAndSetDefaults(); err != nil {
		t.Errorf("DefaultOptions should validate: %v", err)
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no sizes", Options{}},
		{"negative size", Options{Sizes: subsets.Vector{1, -2, 3}}},
		{"bad format", Options{Sizes: subsets.Vector{1, 2, 3}, Formats: []string{"gif"}}},
		{"bad scale", Options{Sizes: subsets.Vector{1, 2, 3}, PNGScale: 100}},
		{"partial style", Options{Sizes: subsets.Vector{1, 2, 3}, Style: style.Config{SubsetFontSize: 14}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Sizes: subsets.Vector{1, 2, 3}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Formats, opts.Formats) || first.Diagram != opts.Diagram {
		t.Error("second call should not change options")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := DefaultOptions()
	opts.Interactive = true

	svg := opts.ArtifactKeyOpts(FormatSVG)
	pdf := opts.ArtifactKeyOpts(FormatPDF)
	png := opts.ArtifactKeyOpts(FormatPNG)
	if !svg.Interactive || pdf.Interactive {
		t.Errorf("interaction only applies to svg: %+v %+v", svg, pdf)
	}
	if png.Scale != DefaultPNGScale || svg.Scale != 0 {
		t.Errorf("scale only applies to png: %+v %+v", png, svg)
	}

	before := opts.StyleHash()
	opts.Style.SubsetFontSize = 20
	if opts.StyleHash() == before {
		t.Error("StyleHash should change with the style")
	}
}

func TestRender(t *testing.T) {
	d, err := diagram.Build(subsets.Vector{3, 2, 1}, diagram.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.Formats = []string{FormatSVG, FormatPNG, FormatJSON}
	opts.Title = "pets"

	artifacts, handles, err := Render(d, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(artifacts[FormatSVG], []byte("<title>pets</title>")) {
		t.Error("svg should carry the title")
	}
	if !bytes.HasPrefix(artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png output should be a PNG")
	}
	if !bytes.Contains(artifacts[FormatJSON], []byte(`"fit_error"`)) {
		t.Error("json output should carry the layout document")
	}
	for _, id := range []string{"10", "01", "11", "A", "B"} {
		if _, ok := handles[id]; !ok {
			t.Errorf("missing handle %s", id)
		}
	}
}

func TestRunnerCaches(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Sizes: subsets.Vector{3, 2, 1, 2, 1, 1, 1}, Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}
	if first.Stats.Sets != 3 || first.Stats.Regions != 7 {
		t.Errorf("Stats = %+v", first.Stats)
	}
	if c.sets != 3 {
		t.Errorf("cache writes = %d, want 3", c.sets)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if second.LayoutHash != first.LayoutHash {
		t.Error("cached layout should hash the same")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}
	if !reflect.DeepEqual(first.Labels, second.Labels) {
		t.Error("cached labels differ")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass cache: %+v", third.CacheInfo)
	}
}

func TestRunnerStyleChangeRerenders(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	opts := Options{Sizes: subsets.Vector{3, 2, 1}}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}

	opts.Style = style.Default()
	opts.Style.SubsetFontSize = 18
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("style change should reuse layout only: %+v", res.CacheInfo)
	}
	if res.Labels["11"].FontSize != 18 {
		t.Errorf("subset font size = %v", res.Labels["11"].FontSize)
	}
	if res.Labels["A"].FontSize != style.DefaultSetFontSize {
		t.Errorf("set font size = %v", res.Labels["A"].FontSize)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu             sync.Mutex
	layouts, draws int
}

func (h *countingHooks) OnLayoutStart(context.Context, int) {
	h.mu.Lock()
	h.layouts++
	h.mu.Unlock()
}

func (h *countingHooks) OnRenderStart(context.Context, []string) {
	h.mu.Lock()
	h.draws++
	h.mu.Unlock()
}

func TestRunnerHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)

	r := NewRunner(newMemCache(), nil, nil)
	opts := Options{Sizes: subsets.Vector{1, 1, 1}}
	for i := 0; i < 3; i++ {
		if _, err := r.Execute(context.Background(), opts); err != nil {
			t.Fatal(err)
		}
	}
	if h.layouts != 1 || h.draws != 1 {
		t.Errorf("layouts = %d, renders = %d, want 1 each", h.layouts, h.draws)
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(ctx, Options{Sizes: subsets.Vector{1, 2, 3}})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunnerInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Sizes: subsets.Vector{1, 2}})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, err := r.Layout(context.Background(), Options{}); err == nil {
		t.Error("Layout without sizes should fail")
	}
}
