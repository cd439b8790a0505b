// Package tour drives one guided-tour run through its steps.
//
// The [Controller] is a small state machine:
//
//	Inactive --Start--> Running(0) --Next--> Running(i+1) ... Running(N-1) --Next--> Complete
//	Running(i) --Back--> Running(i-1)          (i > 0)
//	Running(i) --Skip--> Inactive              (records steps [0, i), dismissed)
//	Complete   --Finish/Next--> Inactive       (records every step of the run)
//	any        --Reset--> Inactive             (host closed the tour, nothing recorded)
//
// Progress is written only on Finish and Skip. A failed write is logged and
// the transition completes anyway.
//
// Key types:
//   - [Controller] owns the run and its transient reward/confetti signals
//   - [View] is a read-only snapshot for rendering
//   - [Outcome] is passed to the host's close callback
package tour

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stairtour/internal/catalog"
	"stairtour/internal/progress"
)

// Default effect durations.
const (
	DefaultRewardDuration   = 700 * time.Millisecond
	DefaultConfettiDuration = 3000 * time.Millisecond
)

// ErrNoSteps is returned by [Controller.Start] for an empty step sequence.
// The controller is left untouched.
var ErrNoSteps = errors.New("tour has no steps")

// State is the controller's position in the state machine.
type State string

const (
	StateInactive State = "inactive"
	StateRunning  State = "running"
	StateComplete State = "complete"
)

// OutcomeKind says how a run ended.
type OutcomeKind string

const (
	OutcomeFinished OutcomeKind = "finished"
	OutcomeSkipped  OutcomeKind = "skipped"
)

// Outcome describes a finalized run.
type Outcome struct {
	Kind   OutcomeKind
	RunID  string
	Record progress.Record

	// SaveErr is the persistence error, if the record could not be written.
	SaveErr error
}

// Option configures a [Controller].
type Option func(*Controller)

// WithOnClose sets the callback invoked once each time a run is finished or skipped.
func WithOnClose(fn func(Outcome)) Option {
	return func(c *Controller) { c.onClose = fn }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimings overrides the reward and confetti durations.
func WithTimings(reward, confetti time.Duration) Option {
	return func(c *Controller) {
		c.rewardDuration = reward
		c.confettiDuration = confetti
	}
}

// WithScheduler replaces the timer source for the transient signals.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithSignalListener registers fn to be called whenever the reward or
// confetti signal switches on or off. fn runs on the timer goroutine.
func WithSignalListener(fn func()) Option {
	return func(c *Controller) { c.signalListener = fn }
}

// Controller runs one tour at a time. It is driven from a single event loop
// and is not safe for concurrent use; only its signals may change from timer
// goroutines.
type Controller struct {
	catalog *catalog.Catalog
	store   *progress.Store
	logger  *zap.Logger
	onClose func(Outcome)

	sched            Scheduler
	rewardDuration   time.Duration
	confettiDuration time.Duration
	signalListener   func()

	state State
	steps []catalog.Step
	index int
	runID string

	reward   *Signal
	confetti *Signal
}

// New creates an inactive [Controller]. The catalog supplies the version
// written on finish and skip; store persists the record.
func New(cat *catalog.Catalog, store *progress.Store, opts ...Option) *Controller {
	c := &Controller{
		catalog:          cat,
		store:            store,
		logger:           zap.NewNop(),
		sched:            realScheduler{},
		rewardDuration:   DefaultRewardDuration,
		confettiDuration: DefaultConfettiDuration,
		state:            StateInactive,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.reward = newSignal(c.rewardDuration, c.sched)
	c.confetti = newSignal(c.confettiDuration, c.sched)
	if c.signalListener != nil {
		listener := c.signalListener
		c.reward.onChange = func(bool) { listener() }
		c.confetti.onChange = func(bool) { listener() }
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Active reports whether a run is in progress (running or complete).
func (c *Controller) Active() bool {
	return c.state != StateInactive
}

// Index returns the current step index. Zero when inactive.
func (c *Controller) Index() int {
	return c.index
}

// Steps returns the sequence being walked. Nil when inactive.
func (c *Controller) Steps() []catalog.Step {
	return c.steps
}

// Current returns the current step, or false when inactive.
func (c *Controller) Current() (catalog.Step, bool) {
	if c.state == StateInactive || len(c.steps) == 0 {
		return catalog.Step{}, false
	}
	return c.steps[c.index], true
}

// Reward is the short flash shown after each advance.
func (c *Controller) Reward() *Signal {
	return c.reward
}

// Confetti is the celebration shown when the last step is passed.
func (c *Controller) Confetti() *Signal {
	return c.confetti
}

// Start begins a run over steps at index 0, replacing any run in progress.
// An empty sequence returns [ErrNoSteps] and changes nothing.
func (c *Controller) Start(steps []catalog.Step) error {
	if len(steps) == 0 {
		return ErrNoSteps
	}

	c.clearRun()
	c.steps = append([]catalog.Step(nil), steps...)
	c.state = StateRunning
	c.runID = uuid.NewString()

	c.logger.Debug("tour started",
		zap.String("run_id", c.runID),
		zap.Int("steps", len(c.steps)),
		zap.String("first_step", c.steps[0].ID),
	)
	return nil
}

// Next advances one step. On the last step it moves to [StateComplete];
// in [StateComplete] it finishes the run. Returns false when inactive.
func (c *Controller) Next() bool {
	switch c.state {
	case StateComplete:
		return c.Finish()
	case StateRunning:
	default:
		return false
	}

	c.reward.Fire()

	if c.index < len(c.steps)-1 {
		c.index++
		c.logger.Debug("tour advanced",
			zap.String("run_id", c.runID),
			zap.Int("index", c.index),
			zap.String("step", c.steps[c.index].ID),
		)
		return true
	}

	c.state = StateComplete
	c.confetti.Fire()
	c.logger.Debug("tour complete", zap.String("run_id", c.runID))
	return true
}

// Back returns to the previous step. It is a no-op at index 0 and outside
// [StateRunning].
func (c *Controller) Back() bool {
	if c.state != StateRunning || c.index == 0 {
		return false
	}
	c.index--
	c.logger.Debug("tour back",
		zap.String("run_id", c.runID),
		zap.Int("index", c.index),
	)
	return true
}

// Skip abandons a running tour. The steps before the current one are
// recorded as seen and the record is marked dismissed.
func (c *Controller) Skip() bool {
	if c.state != StateRunning {
		return false
	}
	seen := catalog.StepIDs(c.steps[:c.index])
	c.finalize(OutcomeSkipped, seen, true)
	return true
}

// Finish closes a completed tour, recording every step of the run.
func (c *Controller) Finish() bool {
	if c.state != StateComplete {
		return false
	}
	c.finalize(OutcomeFinished, catalog.StepIDs(c.steps), false)
	return true
}

// Reset forces the controller back to [StateInactive] without recording
// anything, as when the host hides the tour. The next Start begins at step 0.
func (c *Controller) Reset() {
	if c.state != StateInactive {
		c.logger.Debug("tour reset", zap.String("run_id", c.runID))
	}
	c.clearRun()
}

func (c *Controller) finalize(kind OutcomeKind, ids []string, dismissed bool) {
	runID := c.runID
	version := c.catalog.Version

	rec, err := c.store.Update(func(r *progress.Record) {
		r.CompletedVersion = version
		r.CompletedStepIDs = ids
		r.Dismissed = dismissed
	})
	if err != nil {
		c.logger.Warn("tour progress not saved",
			zap.String("run_id", runID),
			zap.String("outcome", string(kind)),
			zap.Error(err),
		)
		err = fmt.Errorf("failed to save tour progress: %w", err)
	} else {
		c.logger.Info("tour closed",
			zap.String("run_id", runID),
			zap.String("outcome", string(kind)),
			zap.Int("completed_steps", len(ids)),
		)
	}

	c.clearRun()

	if c.onClose != nil {
		c.onClose(Outcome{Kind: kind, RunID: runID, Record: rec, SaveErr: err})
	}
}

func (c *Controller) clearRun() {
	c.reward.Cancel()
	c.confetti.Cancel()
	c.state = StateInactive
	c.steps = nil
	c.index = 0
	c.runID = ""
}

// View is a read-only snapshot of the controller for rendering.
type View struct {
	State    State
	RunID    string
	Index    int
	Total    int
	Step     catalog.Step
	Counter  string
	Progress float64
	IsFirst  bool
	IsLast   bool
	Reward   bool
	Confetti bool
}

// Snapshot returns the current [View]. When inactive only State is set.
func (c *Controller) Snapshot() View {
	v := View{
		State:    c.state,
		Reward:   c.reward.On(),
		Confetti: c.confetti.On(),
	}
	if c.state == StateInactive || len(c.steps) == 0 {
		return v
	}

	total := len(c.steps)
	v.RunID = c.runID
	v.Index = c.index
	v.Total = total
	v.Step = c.steps[c.index]
	v.Counter = fmt.Sprintf("Step %d of %d", c.index+1, total)
	v.Progress = float64(c.index+1) / float64(total)
	v.IsFirst = c.index == 0
	v.IsLast = c.index == total-1
	return v
}
