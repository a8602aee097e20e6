package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"EquitySentinel/internal/calculator"
	"EquitySentinel/internal/collector"
	"EquitySentinel/internal/llm"
	"EquitySentinel/internal/model"
	"EquitySentinel/internal/notifier"
	"EquitySentinel/internal/recorder"
	"EquitySentinel/internal/trace"
	"EquitySentinel/internal/watchlist"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"
)

// Analyzer produces a scored analysis for a symbol.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.Analysis, error)
}

// Sender delivers a message to the operator.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

const helpText = `<b>Commands</b>
/analyze SYMBOL - score a symbol now
/watch SYMBOL - add to the scan list
/unwatch SYMBOL - remove from the scan list
/list - show watched symbols and last labels
/scan - run the watchlist scan now
/help - this message

Any other text is answered by the market assistant.`

// Scheduler runs the watchlist scan on a cron schedule and serves chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  Analyzer
	Watchlist *watchlist.Manager
	Notifier  Sender
	Recorder  recorder.Recorder
	Chatter   llm.Chatter // optional
	Ctx       context.Context

	scanMu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an Analyzer, wl *watchlist.Manager, sender Sender, rec recorder.Recorder, chatter llm.Chatter) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Analyzer:  an,
		Watchlist: wl,
		Notifier:  sender,
		Recorder:  rec,
		Chatter:   chatter,
		Ctx:       ctx,
	}
}

// Register adds the watchlist scan task.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, func() { s.Scan(s.Ctx) }); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// ScanResult summarizes one watchlist pass.
type ScanResult struct {
	Analyzed int
	Changed  int
	Failed   int
}

// Scan analyzes every watched symbol, records the result and notifies on label changes.
// Concurrent calls are serialized.
func (s *Scheduler) Scan(ctx context.Context) ScanResult {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	ctx, span := trace.StartSpan(ctx, "scheduler.scan")
	defer span.End()

	symbols := s.Watchlist.Symbols()
	log.Printf("[INFO] scanning %d symbols", len(symbols))

	var res ScanResult
	for _, sym := range symbols {
		if ctx.Err() != nil {
			log.Printf("[WARN] scan interrupted: %v", ctx.Err())
			break
		}
		a, err := s.Analyzer.Analyze(ctx, sym)
		if err != nil {
			log.Printf("[ERROR] scan %s: %v", sym, err)
			res.Failed++
			continue
		}
		res.Analyzed++
		s.record(a, "scan")

		previous, changed := s.Watchlist.UpdateLabel(sym, a.Result.Label)
		if !changed {
			continue
		}
		res.Changed++
		log.Printf("[INFO] %s label %q -> %q", sym, previous, a.Result.Label)
		s.trySend(ctx, notifier.FormatLabelChange(a, previous))
	}
	span.SetAttributes(
		attribute.Int("scan.analyzed", res.Analyzed),
		attribute.Int("scan.changed", res.Changed),
		attribute.Int("scan.failed", res.Failed),
	)
	return res
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	cmd := strings.ToLower(fields[0])
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i] // "/list@MyBot"
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "/analyze":
		if arg == "" {
			return "Usage: /analyze SYMBOL"
		}
		a, err := s.Analyzer.Analyze(ctx, arg)
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", arg, err)
			return UserError(err)
		}
		s.record(a, "telegram")
		return notifier.FormatAnalysis(a)
	case "/watch":
		if arg == "" {
			return "Usage: /watch SYMBOL"
		}
		if !s.Watchlist.Add(arg) {
			return fmt.Sprintf("%s is already watched.", strings.ToUpper(arg))
		}
		return fmt.Sprintf("👀 Watching %s.", strings.ToUpper(arg))
	case "/unwatch":
		if arg == "" {
			return "Usage: /unwatch SYMBOL"
		}
		if !s.Watchlist.Remove(arg) {
			return fmt.Sprintf("%s is not watched.", strings.ToUpper(arg))
		}
		return fmt.Sprintf("Stopped watching %s.", strings.ToUpper(arg))
	case "/list":
		symbols := s.Watchlist.Symbols()
		labels := make(map[string]model.Label, len(symbols))
		for _, sym := range symbols {
			if l, ok := s.Watchlist.LastLabel(sym); ok {
				labels[sym] = l
			}
		}
		return notifier.FormatWatchlist(symbols, labels)
	case "/scan":
		res := s.Scan(ctx)
		return fmt.Sprintf("Scan done: %d analyzed, %d changed, %d failed.", res.Analyzed, res.Changed, res.Failed)
	case "/help", "/start":
		return helpText
	}

	if strings.HasPrefix(cmd, "/") {
		return "Unknown command.\n\n" + helpText
	}
	if s.Chatter == nil {
		return "The assistant is not configured."
	}
	reply, err := s.Chatter.Chat(ctx, text)
	if err != nil {
		log.Printf("[ERROR] chat: %v", err)
		return "The assistant is not available right now."
	}
	return reply
}

// UserError turns an analysis error into a short message for end users.
func UserError(err error) string {
	var invalid *calculator.InvalidInputError
	switch {
	case errors.Is(err, collector.ErrNoData):
		return "No data found for that symbol."
	case errors.As(err, &invalid):
		return "The price data for that symbol is not usable: " + invalid.Reason
	default:
		return "Data could not be fetched."
	}
}

func (s *Scheduler) record(a *model.Analysis, source string) {
	if err := s.Recorder.RecordAnalysis(recorder.NewAnalysisRecord(a, source)); err != nil {
		log.Printf("[ERROR] record analysis %s: %v", a.Symbol, err)
	}
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	err := s.Notifier.SendWithRetry(ctx, text, 3)
	switch {
	case errors.Is(err, notifier.ErrNotConfigured):
		log.Printf("[INFO] notification (telegram off): %s", text)
	case err != nil:
		log.Printf("[ERROR] send notification: %v", err)
	}
}
