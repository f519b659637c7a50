package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/aretw0/cadence/pkg/wizard"
)

// Step positions of the creator.
const (
	StepNewSchedule = iota
	StepReviewSessions
	StepAddParticipants
	StepReviewSchedule
)

// Input carries what the step forms currently hold.
type Input struct {
	// Schedule is the new-schedule form, read on the first step.
	Schedule domain.Record
	// Participants is the participant selector, read on the third step.
	// nil means nothing was selected; an empty slice is a valid choice.
	Participants []domain.Record
}

// Validator checks the new-schedule form.
type Validator func(schedule domain.Record) error

// RequireName accepts a schedule with a non-empty Name.
func RequireName(schedule domain.Record) error {
	name, _ := schedule[domain.FieldName].(string)
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("schedule %s is required", domain.FieldName)
	}
	return nil
}

// Creator drives the schedule creator wizard over a working copy of the model.
// It is not safe for concurrent use.
type Creator struct {
	seq       *wizard.Sequence
	original  domain.ScheduleModel
	model     domain.ScheduleModel
	serviceID string
	labels    map[string]string
	closed    bool

	persister ports.SchedulePersister
	validate  Validator
	onSave    func(domain.ScheduleModel)
	onClose   func()
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option configures a Creator.
type Option func(*Creator)

// WithPersister sets where saved schedules go.
func WithPersister(p ports.SchedulePersister) Option {
	return func(c *Creator) {
		c.persister = p
	}
}

// WithValidator replaces RequireName as the new-schedule form check.
func WithValidator(v Validator) Option {
	return func(c *Creator) {
		c.validate = v
	}
}

// WithServiceID presets the service every new schedule belongs to.
func WithServiceID(id string) Option {
	return func(c *Creator) {
		c.serviceID = id
	}
}

// WithOnSave is called after every successful save.
func WithOnSave(fn func(domain.ScheduleModel)) Option {
	return func(c *Creator) {
		c.onSave = fn
	}
}

// WithOnClose is called when the wizard is dismissed by Finish.
func WithOnClose(fn func()) Option {
	return func(c *Creator) {
		c.onClose = fn
	}
}

// WithHooks registers step lifecycle hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Creator) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Creator) {
		c.logger = logger
	}
}

// NewCreator builds the wizard around the model delivered by the backend.
func NewCreator(model domain.ScheduleModel, opts ...Option) (*Creator, error) {
	c := &Creator{
		original: model.Clone(),
		labels:   DefaultLabels(),
		validate: RequireName,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	seq, err := wizard.New().
		AddDefinitions(Definitions(c.labels)...).
		Hooks(c.hooks).
		Build()
	if err != nil {
		return nil, err
	}
	c.seq = seq

	c.Init()
	mergeLabels(c.labels, model.Labels)
	return c, nil
}

// Load fetches the model from src and builds a creator around it.
func Load(ctx context.Context, src ports.ModelSource, opts ...Option) (*Creator, error) {
	model, err := src.ScheduleModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule model: %w", err)
	}
	return NewCreator(model, opts...)
}

// Init returns to the first step with a fresh copy of the original model,
// stamped with the current service.
func (c *Creator) Init() {
	c.seq.Restart()
	c.model = c.original.Clone()
	if c.model.Schedule == nil {
		c.model.Schedule = domain.Record{}
	}
	if c.serviceID != "" {
		c.model.Schedule[domain.FieldService] = c.serviceID
	}
}

// Next runs the current step's check and advances. On the last step it saves
// and starts over for the next schedule.
func (c *Creator) Next(ctx context.Context, in Input) error {
	switch c.seq.Index() {
	case StepNewSchedule:
		if in.Schedule == nil {
			return &domain.ValidationError{StepIndex: StepNewSchedule, Reason: "schedule form is missing"}
		}
		if err := c.validate(in.Schedule); err != nil {
			return &domain.ValidationError{StepIndex: StepNewSchedule, Reason: err.Error()}
		}
		c.model.Schedule = in.Schedule
		if id, ok := in.Schedule[domain.FieldService].(string); ok {
			c.serviceID = id
		}
		c.seq.Step(ctx, wizard.ActionNext)

	case StepReviewSessions:
		c.seq.Step(ctx, wizard.ActionNext)

	case StepAddParticipants:
		if in.Participants == nil {
			return &domain.ValidationError{StepIndex: StepAddParticipants, Reason: "no participants selected"}
		}
		c.model.SelectedParticipants = in.Participants
		c.seq.Step(ctx, wizard.ActionNext)

	case StepReviewSchedule:
		return c.save(ctx)
	}
	return nil
}

// Back returns to the previous step. Leaving the participant step discards
// the selection.
func (c *Creator) Back(ctx context.Context) {
	if c.seq.Index() == StepAddParticipants {
		c.model.SelectedParticipants = c.original.Clone().SelectedParticipants
	}
	c.seq.Step(ctx, wizard.ActionBack)
}

// Finish saves and closes the wizard. The wizard closes even if the save
// fails; the save error is returned.
func (c *Creator) Finish(ctx context.Context) error {
	err := c.save(ctx)
	c.close()
	return err
}

func (c *Creator) save(ctx context.Context) error {
	if c.persister == nil {
		return fmt.Errorf("failed to save schedule: no persister configured")
	}

	saved := c.model.Clone()
	if err := c.persister.Persist(ctx, saved); err != nil {
		c.logger.Error("failed to save schedule", "error", err)
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	c.logger.Info(c.labels[LabelSuccess], "schedule", saved.Schedule[domain.FieldName], "participants", len(saved.SelectedParticipants))
	if c.onSave != nil {
		c.onSave(saved)
	}

	c.Init()
	return nil
}

func (c *Creator) close() {
	c.closed = true
	if c.onClose != nil {
		c.onClose()
	}
}

// Current returns the step under the cursor.
func (c *Creator) Current() domain.Step {
	return c.seq.Current()
}

// Steps returns every step, for a progress indicator.
func (c *Creator) Steps() []domain.Step {
	return c.seq.All()
}

// Model returns a copy of the working model.
func (c *Creator) Model() domain.ScheduleModel {
	return c.model.Clone()
}

// ServiceID returns the service new schedules are stamped with.
func (c *Creator) ServiceID() string {
	return c.serviceID
}

// Label returns a label by key, or the key itself when unknown.
func (c *Creator) Label(key string) string {
	if v, ok := c.labels[key]; ok {
		return v
	}
	return key
}

// Closed reports whether Finish has dismissed the wizard.
func (c *Creator) Closed() bool {
	return c.closed
}
