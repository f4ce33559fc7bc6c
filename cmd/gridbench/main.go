// Command gridbench runs the voxel grid workloads (writes, lookups, edits)
// over cubes of several sizes and reports timing summaries. It can also
// snapshot the final grids to SQLite, plot a slice of each, and serve a
// debug HTTP endpoint over the results.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/banshee-data/voxelgrid/internal/config"
	"github.com/banshee-data/voxelgrid/internal/grid"
	"github.com/banshee-data/voxelgrid/internal/gridplot"
	"github.com/banshee-data/voxelgrid/internal/gridstore"
	"github.com/banshee-data/voxelgrid/internal/timeutil"
	"github.com/banshee-data/voxelgrid/internal/version"
)

var (
	configPath  = flag.String("config", "", "Path to a bench config JSON file (defaults apply when empty)")
	sizes       = flag.String("sizes", "", "Comma-separated cube sizes, overrides config (e.g. 5,10,20)")
	iterations  = flag.Int("iterations", 0, "Iterations per group and size, overrides config")
	snapshotDB  = flag.String("snapshot-db", "", "SQLite path for final grid snapshots, overrides config")
	plotDir     = flag.String("plot-dir", "", "Directory for slice plots, overrides config")
	debugListen = flag.String("debug-listen", "", "Address for the debug HTTP server, overrides config")
	gridLog     = flag.String("grid-log", "ops", "Grid log streams to enable: none, ops, diag, trace")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("gridbench"))
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := configureGridLogs(*gridLog); err != nil {
		log.Fatal(err)
	}
	if err := runMain(cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// runMain owns the snapshot store for the whole run, so it is closed on
// every return path.
func runMain(cfg *config.BenchConfig, out io.Writer) error {
	var (
		store    *gridstore.Store
		inserter gridstore.SnapshotInserter
	)
	if path := cfg.GetSnapshotDB(); path != "" {
		var err error
		store, err = gridstore.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open snapshot database: %w", err)
		}
		defer store.Close()
		inserter = store
	}

	res, err := run(cfg, inserter, timeutil.RealClock{}, out)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	if addr := cfg.GetDebugListen(); addr != "" {
		if err := serveDebug(addr, cfg.GetDebugLinger(), store, res); err != nil {
			return fmt.Errorf("debug server: %w", err)
		}
	}
	return nil
}

// loadConfig reads the config file (if any) and applies flag overrides.
func loadConfig() (*config.BenchConfig, error) {
	cfg := config.EmptyBenchConfig()
	if *configPath != "" {
		loaded, err := config.LoadBenchConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *sizes != "" {
		parsed, err := parseSizes(*sizes)
		if err != nil {
			return nil, err
		}
		cfg.Sizes = parsed
	}
	if *iterations > 0 {
		cfg.Iterations = iterations
	}
	if *snapshotDB != "" {
		cfg.SnapshotDB = snapshotDB
	}
	if *plotDir != "" {
		cfg.PlotDir = plotDir
	}
	if *debugListen != "" {
		cfg.DebugListen = debugListen
	}
	return cfg, cfg.Validate()
}

func parseSizes(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", part, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func configureGridLogs(level string) error {
	switch level {
	case "none":
		grid.SetLogWriters(nil, nil, nil)
	case "ops":
		grid.SetLogWriters(os.Stderr, nil, nil)
	case "diag":
		grid.SetLogWriters(os.Stderr, os.Stderr, nil)
	case "trace":
		grid.SetLogWriters(os.Stderr, os.Stderr, os.Stderr)
	default:
		return fmt.Errorf("unknown grid-log level %q", level)
	}
	return nil
}

// debugMux builds the debug routes: snapshot DB admin (when a store is open)
// and one slice heatmap per benchmarked size at /debug/grid/<size>.
func debugMux(store *gridstore.Store, res *result) (*http.ServeMux, error) {
	mux := http.NewServeMux()
	if store != nil {
		if err := store.AttachAdminRoutes(mux); err != nil {
			return nil, err
		}
	}
	for size, g := range res.Grids {
		route := fmt.Sprintf("/debug/grid/%d", size)
		mux.Handle(route, gridplot.SliceHandler(g, dataValue, fmt.Sprintf("bench %d", size)))
	}
	return mux, nil
}

// serveDebug serves debugMux on addr until linger elapses (forever when
// linger is zero) or the process is interrupted.
func serveDebug(addr string, linger time.Duration, store *gridstore.Store, res *result) error {
	mux, err := debugMux(store, res)
	if err != nil {
		return err
	}
	srv := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if linger > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, linger)
		defer cancel()
	}

	errCh := make(chan error, 1)
	go func() {
		logf("debug server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
