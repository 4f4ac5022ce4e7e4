package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/zhulcher/supera-atomic/bboxselect"
	"github.com/zhulcher/supera-atomic/catalog"
	"github.com/zhulcher/supera-atomic/config"
	"github.com/zhulcher/supera-atomic/event"
	"github.com/zhulcher/supera-atomic/labeling"
)

type runOptions struct {
	configPath string
	inputDir   string
	outPath    string
	format     string
	workers    int
	watch      bool
}

// runConfig is the config-derived state a worker needs to process one
// event: independent of any other event in flight.
type runConfig struct {
	bbox  bboxselect.Config
	label labeling.Config
	log   *config.Config
}

func buildRunConfig(cfg *config.Config) (*runConfig, error) {
	bcfg, err := cfg.BuildBBoxConfig()
	if err != nil {
		return nil, err
	}
	lcfg, err := cfg.BuildLabelConfig()
	if err != nil {
		return nil, err
	}
	return &runConfig{bbox: bcfg, label: lcfg, log: cfg}, nil
}

// configHolder lets the hot-reload watcher swap in a new runConfig
// without a worker mid-event ever observing a torn read: a worker
// loads the pointer once at the start of each event and runs that
// event to completion under it.
type configHolder struct {
	v atomic.Pointer[runConfig]
}

func (h *configHolder) Load() *runConfig    { return h.v.Load() }
func (h *configHolder) Store(c *runConfig) { h.v.Store(c) }

func runGenerate(ctx context.Context, opts runOptions) error {
	runID := uuid.New().String()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	rcfg, err := buildRunConfig(cfg)
	if err != nil {
		return fmt.Errorf("building run config: %w", err)
	}

	holder := &configHolder{}
	holder.Store(rcfg)

	logger, err := cfg.BuildLogger("superagen[" + runID + "]")
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger.Infof("starting run %s over %s", runID, opts.inputDir)

	if opts.watch && opts.configPath != "" {
		watcher, err := watchConfig(opts.configPath, holder, logger)
		if err != nil {
			return fmt.Errorf("starting config watcher: %w", err)
		}
		defer watcher.Close()
	}

	sink, err := openSink(opts.format, opts.outPath, rcfg.label.SemanticPriority)
	if err != nil {
		return fmt.Errorf("opening %s sink at %s: %w", opts.format, opts.outPath, err)
	}
	defer sink.Close()

	files, err := listEventFiles(opts.inputDir)
	if err != nil {
		return err
	}
	logger.Infof("found %d event files", len(files))

	return processFiles(ctx, files, opts.workers, holder, sink, logger)
}

func openSink(format, path string, priority []event.SemanticType) (catalog.Sink, error) {
	switch format {
	case "csv":
		return catalog.NewCSVSink(path)
	case "sqlite":
		return catalog.OpenSQLiteSink(path)
	case "json":
		return catalog.NewJSONSink(path, priority)
	default:
		return nil, fmt.Errorf("unrecognized catalog format %q (want csv, sqlite, or json)", format)
	}
}

func listEventFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// eventResult pairs a processed event's index (for deterministic
// ordering at the sink) with its generated output or error.
type eventResult struct {
	index int
	out   *event.EventOutput
	err   error
}

// processFiles runs up to workers goroutines over files concurrently,
// each loading the current config once per event, and serializes the
// results to sink in file order.
func processFiles(ctx context.Context, files []string, workers int, holder *configHolder, sink catalog.Sink, logger interface {
	Errorf(string, ...any)
	Warnf(string, ...any)
}) error {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	results := make([]eventResult, len(files))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					results[i] = eventResult{index: i, err: ctx.Err()}
					continue
				default:
				}
				out, err := processOneEvent(files[i], holder.Load())
				results[i] = eventResult{index: i, out: out, err: err}
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var firstErr error
	for i, r := range results {
		if r.err != nil {
			logger.Errorf("event %d (%s): %v", i, files[i], r.err)
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if err := sink.WriteEvent(uint64(i), r.out); err != nil {
			logger.Errorf("event %d (%s): writing to sink: %v", i, files[i], err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func processOneEvent(path string, rcfg *runConfig) (*event.EventOutput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var in event.EventInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	meta, err := bboxselect.Generate(rcfg.bbox, &in)
	if err != nil {
		return nil, fmt.Errorf("deriving bbox for %s: %w", path, err)
	}

	eng, err := labeling.NewEngine(rcfg.label, nil)
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}
	return eng.Generate(&in, &meta)
}

// watchConfig reloads configPath into holder whenever it changes on
// disk. A reload only ever affects events a worker has not yet
// started — in-flight events keep running under the runConfig they
// already loaded.
func watchConfig(configPath string, holder *configHolder, logger interface {
	Warnf(string, ...any)
	Infof(string, ...any)
}) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(configPath) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := config.Load(configPath)
				if err != nil {
					logger.Warnf("config reload of %s failed, keeping previous config: %v", configPath, err)
					continue
				}
				rcfg, err := buildRunConfig(cfg)
				if err != nil {
					logger.Warnf("config reload of %s failed, keeping previous config: %v", configPath, err)
					continue
				}
				holder.Store(rcfg)
				logger.Infof("reloaded config from %s", configPath)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("config watcher error: %v", err)
			}
		}
	}()

	return watcher, nil
}
