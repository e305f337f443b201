package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venn/pkg/config"
	"github.com/matzehuels/venn/pkg/core/subsets"
	"github.com/matzehuels/venn/pkg/errors"
)

// inputFlags selects the size vector. Exactly one source must be given.
type inputFlags struct {
	sizes     string
	subsets   []string
	sets      int
	fromFiles []string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sizes, "sizes", "", "region sizes in canonical order: 3 values (10,01,11) or 7 (100,010,110,001,101,011,111)")
	cmd.Flags().StringArrayVar(&f.subsets, "subset", nil, "region size as key=size, e.g. 110=3 (repeatable)")
	cmd.Flags().IntVar(&f.sets, "sets", 0, "number of sets for --subset (default: inferred from key length)")
	cmd.Flags().StringSliceVar(&f.fromFiles, "from-files", nil, "2 or 3 files with one element per line")
}

func (f *inputFlags) vector() (subsets.Vector, error) {
	var (
		in subsets.Input
		n  int
	)
	if f.sizes != "" {
		t, err := subsets.ParseTuple(f.sizes)
		if err != nil {
			return nil, err
		}
		in, n = t, n+1
	}
	if len(f.subsets) > 0 {
		m, err := subsets.ParseMapping(f.subsets)
		if err != nil {
			return nil, err
		}
		in, n = m, n+1
	}
	if len(f.fromFiles) > 0 {
		sets, err := readSets(f.fromFiles)
		if err != nil {
			return nil, err
		}
		in, n = subsets.FromSets(sets...), n+1
	}
	if n != 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "give exactly one of --sizes, --subset or --from-files")
	}
	if f.sets > 0 {
		return subsets.Normalize(in, f.sets)
	}
	return subsets.Infer(in)
}

// readSets reads one set per file, one element per non-blank line.
func readSets(paths []string) ([][]string, error) {
	sets := make([][]string, 0, len(paths))
	for _, p := range paths {
		file, err := os.Open(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open set file %s", p)
		}
		var elems []string
		sc := bufio.NewScanner(file)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				elems = append(elems, line)
			}
		}
		file.Close()
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		sets = append(sets, elems)
	}
	return sets, nil
}

// styleFlags layers command-line overrides over the config file.
type styleFlags struct {
	config         string
	subsetFontSize float64
	setFontSize    float64
	labels         string
}

func (f *styleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.config, "config", "", "TOML config file")
	cmd.Flags().Float64Var(&f.subsetFontSize, "subset-font-size", 0, "font size of region count labels")
	cmd.Flags().Float64Var(&f.setFontSize, "set-font-size", 0, "font size of set name labels")
	cmd.Flags().StringVar(&f.labels, "labels", "", "set names, comma-separated (e.g. Cats,Dogs,Birds)")
}

// changed reports whether any style flag was set.
func (f *styleFlags) changed(cmd *cobra.Command) bool {
	for _, name := range []string{"config", "subset-font-size", "set-font-size", "labels"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func (f *styleFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadFile(f.config)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("subset-font-size") {
		cfg.Style.SubsetFontSize = f.subsetFontSize
	}
	if cmd.Flags().Changed("set-font-size") {
		cfg.Style.SetFontSize = f.setFontSize
	}
	if cmd.Flags().Changed("labels") {
		names := strings.Split(f.labels, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		cfg.Style.SetLabels = names
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
