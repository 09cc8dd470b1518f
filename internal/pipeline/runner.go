package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/mkv2mp4/internal/config"
	"github.com/backmassage/mkv2mp4/internal/display"
	"github.com/backmassage/mkv2mp4/internal/ffmpeg"
	"github.com/backmassage/mkv2mp4/internal/history"
	"github.com/backmassage/mkv2mp4/internal/inventory"
	"github.com/backmassage/mkv2mp4/internal/logging"
	"github.com/backmassage/mkv2mp4/internal/planner"
)

// executeFunc runs one ffmpeg invocation.
type executeFunc func(ctx context.Context, args []string, onLine func(string)) ffmpeg.ExecResult

// runner carries the per-batch state shared by workers.
type runner struct {
	cfg      *config.Config
	log      *logging.Logger
	acquire  acquireFunc
	execute  executeFunc
	resolver *CollisionResolver
	store    *history.Store // nil when --history is unset
	runID    string

	mu    sync.Mutex
	stats RunStats
}

// Run is the top-level batch entry point. It resolves the inputs, converts
// each file (in parallel when cfg.Jobs > 1), and returns aggregate stats.
// A non-nil error means the batch could not start; per-file failures are
// only counted.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	files, err := ResolveInputs(cfg)
	if err != nil {
		return RunStats{}, fmt.Errorf("file discovery failed: %w", err)
	}

	r := newRunner(cfg, log)
	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return RunStats{}, err
		}
		defer store.Close()
		r.store = store
	}

	return r.run(ctx, files), nil
}

func newRunner(cfg *config.Config, log *logging.Logger) *runner {
	return &runner{
		cfg:      cfg,
		log:      log,
		acquire:  acquirerFor(cfg.ProbeMode),
		execute:  ffmpeg.Execute,
		resolver: NewCollisionResolver(),
		runID:    uuid.NewString(),
	}
}

func (r *runner) run(ctx context.Context, files []string) RunStats {
	r.stats = RunStats{Total: len(files)}
	r.logBatchHeader()

	if len(files) == 0 {
		r.log.Warn("No .mkv files found")
		return r.stats
	}

	jobs := r.cfg.Jobs
	if jobs < 1 {
		jobs = 1
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	type job struct {
		n    int
		path string
	}
	queue := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				res := r.processFile(ctx, j.n, j.path)
				r.mu.Lock()
				r.stats.add(res)
				r.mu.Unlock()
			}
		}()
	}

	for i, path := range files {
		if ctx.Err() != nil {
			r.log.Warn("Interrupted")
			break
		}
		queue <- job{n: i + 1, path: path}
	}
	close(queue)
	wg.Wait()

	r.logSummary()
	return r.stats
}

// processFile handles one source: probe → classify → plan → execute.
func (r *runner) processFile(ctx context.Context, n int, src string) fileResult {
	cfg, log := r.cfg, r.log
	basename := filepath.Base(src)
	log.Info("[%d/%d] %s", n, r.stats.Total, basename)

	fi, err := os.Stat(src)
	if err != nil {
		log.Error("File not found: %s", src)
		return fileResult{outcome: outcomeFailed}
	}

	// --- Inventory ---
	analysis, raw, err := r.acquire(ctx, src)
	if err != nil {
		log.Error("Cannot read stream inventory: %v", err)
		return fileResult{outcome: outcomeFailed}
	}
	r.logInventory(basename, analysis)

	// --- Destination ---
	dst := r.resolver.Resolve(src, OutputPath(src, cfg.OutputDir))
	if sameFile(src, dst) {
		log.Error("Output would overwrite the source: %s", dst)
		return fileResult{outcome: outcomeFailed}
	}

	fingerprint := history.Fingerprint(raw)
	if r.store != nil && !cfg.Overwrite {
		done, err := r.store.Converted(ctx, src, fingerprint)
		if err != nil {
			log.Warn("History lookup failed: %v", err)
		} else if done {
			log.Warn("Skip (already converted): %s", basename)
			return fileResult{outcome: outcomeSkipped}
		}
	}
	if !cfg.Overwrite {
		if _, err := os.Stat(dst); err == nil {
			log.Warn("Skip (exists): %s", filepath.Base(dst))
			return fileResult{outcome: outcomeSkipped}
		}
	}

	// --- Plan ---
	plan := planner.Build(analysis)
	log.Info("  -> %s", dst)
	log.Debug(cfg.Verbose, "  Plan: %s", plan)

	if cfg.DryRun {
		args := ffmpeg.Build(cfg, plan, src, dst)
		log.Success("[DRY] Would run: %s", shellJoin(args))
		return fileResult{outcome: outcomeConverted}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		return fileResult{outcome: outcomeFailed}
	}

	// --- Execute with retry ---
	start := time.Now()
	plan, res := r.executeWithRetry(ctx, analysis, plan, src, dst)
	r.record(ctx, src, dst, fingerprint, plan, res)

	switch res {
	case outcomeSkipped:
		log.Warn("Skip (exists): %s", filepath.Base(dst))
		return fileResult{outcome: outcomeSkipped}
	case outcomeFailed:
		log.Error("Conversion failed: %s", basename)
		os.Remove(dst)
		return fileResult{outcome: outcomeFailed}
	}

	inSize := fi.Size()
	var outSize int64
	if outInfo, err := os.Stat(dst); err == nil {
		outSize = outInfo.Size()
	}
	ratio := int64(100)
	if inSize > 0 {
		ratio = outSize * 100 / inSize
	}
	log.Success("Converted in %ds (%d%% of original)", int(time.Since(start).Seconds()), ratio)
	return fileResult{outcome: outcomeConverted, inBytes: inSize, outBytes: outSize}
}

// executeWithRetry runs ffmpeg, classifies stderr on failure, rebuilds the
// plan with the first matching fallback, and retries. It returns the plan
// that was last attempted.
func (r *runner) executeWithRetry(
	ctx context.Context,
	analysis *inventory.Analysis,
	plan planner.Plan,
	src, dst string,
) (planner.Plan, outcome) {
	cfg, log := r.cfg, r.log
	rs := ffmpeg.NewRetryState(analysis)

	onLine := func(line string) {
		if cfg.Jobs <= 1 {
			log.Render("  %s", line)
		} else {
			log.Debug(cfg.Verbose, "  [%s] %s", filepath.Base(src), line)
		}
	}

	for {
		args := ffmpeg.Build(cfg, plan, src, dst)
		log.Debug(cfg.Verbose, "  %s", shellJoin(args))

		result := r.execute(ctx, args, onLine)
		if result.Err == nil {
			return plan, outcomeConverted
		}

		if ctx.Err() != nil {
			log.Warn("Interrupted, aborting retries")
			return plan, outcomeFailed
		}
		if !cfg.Overwrite && ffmpeg.MatchOutputExists(result.Stderr) {
			return plan, outcomeSkipped
		}
		if cfg.StrictMode {
			log.Error("ffmpeg failed (strict mode, no retry)")
			logStderr(log, result.Stderr)
			return plan, outcomeFailed
		}

		action := rs.Advance(result.Stderr)
		if action == ffmpeg.RetryNone {
			log.Error("ffmpeg failed (no applicable retry)")
			logStderr(log, result.Stderr)
			return plan, outcomeFailed
		}

		log.Warn("Retry %d: %s", rs.Attempt, action)
		os.Remove(dst)
		plan = planner.BuildWith(analysis, rs.Options)
	}
}

// record stores the conversion outcome when history is enabled. Skips are
// not recorded.
func (r *runner) record(ctx context.Context, src, dst, fingerprint string, plan planner.Plan, res outcome) {
	if r.store == nil || res == outcomeSkipped {
		return
	}
	status := history.StatusConverted
	if res == outcomeFailed {
		status = history.StatusFailed
	}
	err := r.store.Record(context.WithoutCancel(ctx), history.Entry{
		RunID:       r.runID,
		Source:      src,
		Destination: dst,
		Fingerprint: fingerprint,
		Plan:        plan.String(),
		Status:      status,
	})
	if err != nil {
		r.log.Warn("History write failed: %v", err)
	}
}

func (r *runner) logInventory(basename string, a *inventory.Analysis) {
	r.log.Info("  Streams: %d video, %d audio, %d subtitle",
		a.Count(inventory.KindVideo), a.Count(inventory.KindAudio), a.Count(inventory.KindSubtitle))
	if a.HasTrueHDAudio {
		r.log.Info("  TrueHD audio: relaxed compliance (-strict -2)")
	}
	for _, s := range a.Excluded() {
		r.log.Warn("  Dropping subtitle 0:s:%d (%s): no MP4 conversion", s.Ordinal, s.CodecName())
	}
	if a.Ignored > 0 {
		r.log.Debug(r.cfg.Verbose, "  %s: %d stream entries not video/audio/subtitle", basename, a.Ignored)
	}
}

func logStderr(log *logging.Logger, stderr string) {
	if stderr == "" {
		return
	}
	log.Error("Last ffmpeg output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}

// sameFile reports whether a and b name the same path or the same file.
func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// shellJoin renders args for display, quoting tokens that contain spaces.
func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t'\"") {
			quoted[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		} else {
			quoted[i] = a
		}
	}
	return strings.Join(quoted, " ")
}

// --- Logging helpers ---

func (r *runner) logBatchHeader() {
	cfg, log := r.cfg, r.log
	log.Info("Found %d files", r.stats.Total)
	log.Debug(cfg.Verbose, "Run ID: %s", r.runID)
	log.Info("Probe: %s inventory", cfg.ProbeMode)
	if cfg.OutputDir != "" {
		log.Info("Output: %s", cfg.OutputDir)
	} else {
		log.Info("Output: next to each source")
	}
	if cfg.Jobs > 1 {
		log.Info("Workers: %d", cfg.Jobs)
	}
	if cfg.StrictMode {
		log.Info("Retry policy: Strict mode (no auto-retry)")
	}
	if r.store != nil {
		log.Info("History: %s", cfg.HistoryPath)
	}
	fmt.Println()
}

func (r *runner) logSummary() {
	cfg, log, stats := r.cfg, r.log, &r.stats
	log.Info("==============================")
	log.Info("Done: %d converted, %d skipped, %d failed", stats.Converted, stats.Skipped, stats.Failed)
	log.Info("Summary report:")
	log.Info("  Total files: %d", stats.Total)

	if cfg.DryRun {
		log.Info("  Total size change: n/a (dry run)")
		return
	}

	change := display.SizeChange(stats.TotalInputBytes, stats.TotalOutputBytes)
	if stats.SpaceSaved() >= 0 {
		log.Success("  Total size: %s", change)
	} else {
		log.Warn("  Total size: %s (overall output is larger)", change)
	}
}
