// Package pipeline runs the scrape → geocode → measure → save sequence that
// produces the distance table.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/unidist/internal/config"
	"github.com/sells-group/unidist/internal/fetcher"
	"github.com/sells-group/unidist/internal/model"
	"github.com/sells-group/unidist/internal/scrape"
	"github.com/sells-group/unidist/internal/table"
	"github.com/sells-group/unidist/pkg/geocode"
)

// Options carries the fixed inputs of a run.
type Options struct {
	SourceURL  string
	Selector   string
	KeyFile    string
	OutputPath string
	Reference  model.Coordinate
}

// OptionsFromConfig maps the loaded configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SourceURL:  cfg.Source.URL,
		Selector:   cfg.Source.Selector,
		KeyFile:    cfg.Geocode.KeyFile,
		OutputPath: cfg.Output.Path,
		Reference:  cfg.Reference,
	}
}

// GeocoderFactory builds the geocoding client once the API key has been read.
type GeocoderFactory func(apiKey string) (geocode.Client, error)

// Pipeline fetches the source page, geocodes every extracted name, and writes
// the distance table. It runs strictly sequentially and stops at the first
// error; nothing is written unless every name succeeds.
type Pipeline struct {
	opts        Options
	fetcher     fetcher.Fetcher
	newGeocoder GeocoderFactory
	out         io.Writer
}

// New creates a Pipeline. Progress lines and the final table are written to out.
func New(opts Options, f fetcher.Fetcher, newGeocoder GeocoderFactory, out io.Writer) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{
		opts:        opts,
		fetcher:     f,
		newGeocoder: newGeocoder,
		out:         out,
	}
}

// Run executes one full pass and returns the sorted table that was saved.
func (p *Pipeline) Run(ctx context.Context) (*table.Table, error) {
	log := zap.L().With(zap.String("source", p.opts.SourceURL))

	names, err := p.universityNames(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("pipeline: extracted university names", zap.Int("count", len(names)))
	if len(names) == 0 {
		log.Warn("pipeline: selector matched nothing, output will have no rows",
			zap.String("selector", p.opts.Selector),
		)
	}

	apiKey, err := config.LoadAPIKey(p.opts.KeyFile)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load credential")
	}

	gc, err := p.newGeocoder(apiKey)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: init geocoder")
	}

	results := table.New()
	for i, name := range names {
		u, err := p.locate(ctx, gc, name)
		if err != nil {
			return nil, eris.Wrapf(err, "pipeline: university %d/%d", i+1, len(names))
		}
		results.Set(u.Name, u.DistanceKM)
		_, _ = fmt.Fprintln(p.out, u.Name, u.Location, u.DistanceKM)
	}

	results.Sort()
	if err := results.Save(p.opts.OutputPath); err != nil {
		return nil, eris.Wrap(err, "pipeline: save results")
	}
	log.Info("pipeline: results written",
		zap.String("path", p.opts.OutputPath),
		zap.Int("rows", results.Len()),
	)

	results.Print(p.out)
	return results, nil
}

// universityNames downloads the source page and extracts the names from it.
func (p *Pipeline) universityNames(ctx context.Context) ([]string, error) {
	body, err := p.fetcher.Download(ctx, p.opts.SourceURL)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: fetch source page")
	}
	defer body.Close() //nolint:errcheck

	names, err := scrape.UniversityNames(body, p.opts.Selector)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: extract names")
	}
	return names, nil
}
