// Package promptsync keeps a structured prompt and its flattened full-text
// form consistent under bidirectional edits. Field edits are resolved locally
// by text surgery; full-text edits trigger a debounced external re-analysis.
package promptsync

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/promptstudio/internal/domain"
	"github.com/promptstudio/internal/infra"
)

// Gateway is the slice of the AI boundary the engine needs.
type Gateway interface {
	AnalyzeImage(ctx context.Context, img *domain.UploadedImage) (*domain.StructuredPrompt, error)
	ReanalyzeText(ctx context.Context, text string) (*domain.StructuredPrompt, error)
	GenerateImage(ctx context.Context, prompt string) (*domain.ImageAsset, error)
}

// Phase is the lifecycle of the prompt owned by an Engine.
type Phase int

const (
	// PhaseUninitialized means analysis has not been started.
	PhaseUninitialized Phase = iota
	// PhaseAnalyzing means the initial analysis call is in flight.
	PhaseAnalyzing
	// PhaseReady means a prompt is present and editable.
	PhaseReady
	// PhaseFailed means the initial analysis failed; the prompt stays absent
	// and no automatic retry happens.
	PhaseFailed
)

// String implements fmt.Stringer for API payloads and logs.
func (p Phase) String() string {
	switch p {
	case PhaseAnalyzing:
		return "analyzing"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

const (
	defaultDebounce    = 500 * time.Millisecond
	defaultCallTimeout = 60 * time.Second
)

// Options tunes an Engine. Zero values pick the defaults.
type Options struct {
	Debounce    time.Duration
	CallTimeout time.Duration
	Logger      *infra.Logger
}

// Engine owns one StructuredPrompt across its lifetime. All state transitions
// go through the engine's mutex; gateway calls run outside it. In-flight
// calls are never cancelled by newer input: if a superseded re-analysis
// completes, its result is still applied (last response wins).
type Engine struct {
	gw          Gateway
	img         *domain.UploadedImage
	debounce    time.Duration
	callTimeout time.Duration
	logger      infra.Logger

	mu              sync.Mutex
	phase           Phase
	prompt          *domain.StructuredPrompt
	pendingUserEdit bool
	timer           *time.Timer
	lastErr         error
	closed          bool
}

// New creates an engine for one uploaded image.
func New(gw Gateway, img *domain.UploadedImage, opts Options) *Engine {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	callTimeout := opts.CallTimeout
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	logger := infra.Logger(zerolog.New(io.Discard))
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Engine{
		gw:          gw,
		img:         img,
		debounce:    debounce,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// Snapshot is a point-in-time view of the engine for rendering.
type Snapshot struct {
	Phase     Phase
	Prompt    *domain.StructuredPrompt
	LastError error
}

// Snapshot returns the current phase, an independent copy of the prompt (nil
// while absent), and the last surfaced error.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Phase:     e.phase,
		Prompt:    e.prompt.Clone(),
		LastError: e.lastErr,
	}
}

// StartAnalysis runs the initial image analysis. Exactly one initial analysis
// happens per engine; repeat calls return ErrAnalysisStarted. On failure the
// prompt stays absent and the engine moves to PhaseFailed with no retry.
func (e *Engine) StartAnalysis(ctx context.Context) error {
	e.mu.Lock()
	if e.closed || e.phase != PhaseUninitialized {
		e.mu.Unlock()
		return domain.ErrAnalysisStarted
	}
	e.phase = PhaseAnalyzing
	e.mu.Unlock()

	prompt, err := e.gw.AnalyzeImage(ctx, e.img)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	if err != nil {
		e.phase = PhaseFailed
		e.lastErr = err
		e.logger.Error().Err(err).Msg("initial analysis failed")
		return err
	}
	e.phase = PhaseReady
	e.prompt = prompt
	e.lastErr = nil
	return nil
}

// SetField edits one named field and patches the full prompt locally, with no
// external call. The field's old value is replaced at its first verbatim
// occurrence in the full text; if the old value was empty, the new value is
// appended instead. When the old value does not occur verbatim (after earlier
// normalization, say) the full text keeps the stale fragment; that silent
// no-op is the documented behavior of literal substring surgery.
func (e *Engine) SetField(name, value string) (*domain.StructuredPrompt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.prompt == nil {
		return nil, domain.ErrPromptNotReady
	}
	oldValue, ok := e.prompt.Field(name)
	if !ok {
		return nil, domain.ErrUnknownField
	}

	full := e.prompt.FullPrompt
	switch {
	case oldValue != "":
		full = strings.Replace(full, oldValue, value, 1)
	case value != "":
		if strings.TrimSpace(full) == "" {
			full = value
		} else {
			full = full + ", " + value
		}
	}

	e.prompt.SetField(name, value)
	e.prompt.FullPrompt = normalizeCommaList(full)
	return e.prompt.Clone(), nil
}

// SetFullPrompt commits raw user text as the full prompt immediately, leaving
// the named fields untouched, and restarts the debounce window. Only the last
// edit inside a window survives to trigger re-analysis.
func (e *Engine) SetFullPrompt(value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.prompt == nil {
		return domain.ErrPromptNotReady
	}
	e.prompt.FullPrompt = value
	e.pendingUserEdit = true
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, e.reanalyze)
	return nil
}

// reanalyze fires when the debounce window closes. The pendingUserEdit flag is
// cleared before the call so that committing the result below cannot re-arm
// the timer; only genuine user edits set the flag.
func (e *Engine) reanalyze() {
	e.mu.Lock()
	if e.closed || e.phase != PhaseReady || !e.pendingUserEdit || e.prompt == nil {
		e.mu.Unlock()
		return
	}
	e.pendingUserEdit = false
	submitted := e.prompt.FullPrompt
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), e.callTimeout)
	defer cancel()
	prompt, err := e.gw.ReanalyzeText(ctx, submitted)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if err != nil {
		// The named fields keep their pre-attempt values and the user's
		// typed text is not rolled back.
		e.lastErr = err
		e.logger.Error().Err(err).Msg("full prompt re-analysis failed")
		return
	}
	// Keep the submitted text verbatim; the model's own echo of the full
	// prompt is discarded so the editable text is never silently rewritten.
	prompt.FullPrompt = submitted
	e.prompt = prompt
	e.lastErr = nil
}

// Generate fires a single generation call from the current full prompt.
// Concurrent invocations are not deduplicated; disabling the trigger while a
// call is outstanding is the caller's concern.
func (e *Engine) Generate(ctx context.Context) (*domain.ImageAsset, error) {
	e.mu.Lock()
	if e.prompt == nil {
		e.mu.Unlock()
		return nil, domain.ErrPromptNotReady
	}
	prompt := e.prompt.FullPrompt
	e.mu.Unlock()
	return e.gw.GenerateImage(ctx, prompt)
}

// FullPrompt returns the current full prompt text, or "" while absent.
func (e *Engine) FullPrompt() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.prompt == nil {
		return ""
	}
	return e.prompt.FullPrompt
}

// Close cancels the debounce timer and blocks any late results from being
// applied against disposed state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// normalizeCommaList splits on commas, trims each segment, drops empty
// segments, and rejoins with ", ". Applying it twice equals applying it once.
func normalizeCommaList(s string) string {
	segments := strings.Split(s, ",")
	kept := segments[:0]
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment != "" {
			kept = append(kept, segment)
		}
	}
	return strings.Join(kept, ", ")
}
