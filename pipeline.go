package pdflayout

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pdflayout/graphicsstate"
	"github.com/tsawler/pdflayout/layout"
	"github.com/tsawler/pdflayout/model"
	"github.com/tsawler/pdflayout/ocr"
	"github.com/tsawler/pdflayout/render"
)

// pageProcessor holds what every page task needs. It is shared read-only
// between tasks.
type pageProcessor struct {
	source     Source
	options    Options
	clusterer  *layout.LineClusterer
	cropper    *render.Cropper
	rasterizer func() (render.Rasterizer, error)
	recognizer ocr.Recognizer
	logger     *zap.Logger
}

// ocrClient is a recognizer owned by the pipeline.
type ocrClient interface {
	ocr.Recognizer
	Close() error
}

// newOCRClient creates the recognizer used when none was supplied.
var newOCRClient = func(lang string) (ocrClient, error) {
	client, err := ocr.New(lang)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// parseRaw runs one task per selected page and collects the results in page
// order.
func (e *Extractor) parseRaw(ctx context.Context, src Source) ([]model.PageResult, error) {
	indices, err := e.resolvePages(src.PageCount())
	if err != nil {
		return nil, err
	}

	proc, cleanup, err := e.newPageProcessor(src)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	logger := e.log()
	logger.Debug("parsing document",
		zap.Int("pages", len(indices)),
		zap.Int("concurrency", e.options.Concurrency),
	)

	results := make([]model.PageResult, len(indices))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	if e.options.Concurrency > 0 {
		g.SetLimit(e.options.Concurrency)
	}

	for i, index := range indices {
		g.Go(func() error {
			res, err := proc.process(gctx, index)
			if err != nil {
				return fmt.Errorf("page %d: %w", index, err)
			}
			results[i] = res

			if e.observer != nil {
				mu.Lock()
				e.observer.OnPage(res)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Debug("parsing failed", zap.Error(err))
		return nil, err
	}

	if e.observer != nil {
		e.observer.OnDone(len(results))
	}
	return results, nil
}

// newPageProcessor prepares the shared collaborators. The returned cleanup
// function releases an OCR client created here.
func (e *Extractor) newPageProcessor(src Source) (*pageProcessor, func(), error) {
	proc := &pageProcessor{
		source:  src,
		options: e.options,
		clusterer: layout.NewLineClustererWithConfig(layout.LineConfig{
			Threshold:       e.options.LineThreshold,
			IgnoreEmptyText: e.options.IgnoreEmptyText,
		}),
		logger: e.log(),
	}
	cleanup := func() {}

	if !e.options.ExtractImages {
		return proc, cleanup, nil
	}

	enc, err := render.EncoderFor(e.options.ImageOutputFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	proc.cropper = render.NewCropper(e.options.ImageScale, enc)

	// The rasterizer is resolved lazily so that documents without images
	// never need one.
	var once sync.Once
	var raster render.Rasterizer
	var rasterErr error
	proc.rasterizer = func() (render.Rasterizer, error) {
		once.Do(func() { raster, rasterErr = e.ensureRasterizer() })
		return raster, rasterErr
	}

	if e.options.OCRImages {
		proc.recognizer = e.recognizer
		if proc.recognizer == nil {
			client, err := newOCRClient(e.options.OCRLanguage)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to start OCR: %w", err)
			}
			proc.recognizer = client
			cleanup = func() {
				if err := client.Close(); err != nil {
					proc.logger.Warn("failed to close OCR client", zap.Error(err))
				}
			}
		}

		if seg, ok := proc.recognizer.(ocr.PageSegmenter); ok {
			mode := ocr.PageSegMode(e.options.OCRPageSegMode)
			if err := seg.SetPageSegMode(mode); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("failed to set page segmentation mode %d: %w", mode, err)
			}
		}
	}

	return proc, cleanup, nil
}

// process turns one page into a PageResult: normalize and cluster text, then
// locate, rasterize and crop images.
func (p *pageProcessor) process(ctx context.Context, index int) (model.PageResult, error) {
	content, err := p.source.Page(ctx, index)
	if err != nil {
		return model.PageResult{}, err
	}

	runs := layout.NormalizeRuns(content.Runs, content.Height)
	lines := p.clusterer.Cluster(runs)

	result := model.PageResult{
		Index:         index,
		Width:         content.Width,
		Height:        content.Height,
		TextElements:  lines,
		ImageElements: []model.ImageElement{},
	}

	var regions []model.ImageRegion
	if p.options.ExtractImages {
		regions = graphicsstate.ExtractImageRegions(content.Operations, content.Width, content.Height)
		for i, r := range regions {
			if r.IsEmpty() {
				p.logger.Debug("degenerate image region",
					zap.Int("page", index),
					zap.Int("image", i),
					zap.Float64("width", r.Width),
					zap.Float64("height", r.Height),
				)
			}
		}
		if len(regions) > 0 {
			images, err := p.cropImages(ctx, index, content.Width, content.Height, regions)
			if err != nil {
				return model.PageResult{}, err
			}
			result.ImageElements = images
		}
	}

	p.logger.Debug("page processed",
		zap.Int("page", index),
		zap.Int("runs", len(runs)),
		zap.Int("lines", len(lines)),
		zap.Int("regions", len(regions)),
	)

	return result, nil
}

// cropImages renders the page once and cuts every region out of it.
func (p *pageProcessor) cropImages(ctx context.Context, index int, width, height float64, regions []model.ImageRegion) ([]model.ImageElement, error) {
	w, h, err := render.CanvasSize(width, height, p.options.ImageScale)
	if err != nil {
		return nil, err
	}

	raster, err := p.rasterizer()
	if err != nil {
		return nil, err
	}

	bitmap, err := raster.RenderPage(ctx, index, p.options.ImageScale)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	bitmap = render.FitCanvas(bitmap, w, h)

	images, err := p.cropper.Crop(bitmap, regions)
	if err != nil {
		return nil, err
	}

	if p.recognizer != nil {
		if err := ocr.Annotate(p.recognizer, images); err != nil {
			return nil, err
		}
	}
	return images, nil
}
