package roster

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster/internal/models"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("roster: cancelled")

// Endpoint sends one descriptor to the student endpoint and returns the decoded envelope.
// A non-nil error means no envelope could be obtained.
type Endpoint interface {
	Do(ctx context.Context, d Descriptor) (*models.Envelope, error)
}

// Confirmer answers a yes/no question on behalf of the user.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

// Controller drives a Screen against an Endpoint, one request at a time.
type Controller struct {
	screen   *Screen
	endpoint Endpoint
	confirm  Confirmer
	logger   *zap.Logger
}

// NewController wires a screen to an endpoint.
func NewController(screen *Screen, endpoint Endpoint, confirm Confirmer, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &Controller{screen: screen, endpoint: endpoint, confirm: confirm, logger: logger}
}

// Screen exposes the driven screen.
func (c *Controller) Screen() *Screen {
	return c.screen
}

// Load runs the initial query.
func (c *Controller) Load(ctx context.Context) error {
	return c.run(ctx, c.screen.Load())
}

// SubmitFilters queries page 1 with the given filters.
func (c *Controller) SubmitFilters(ctx context.Context, filters models.FilterCriteria) error {
	return c.run(ctx, c.screen.SubmitFilters(filters))
}

// Reset clears filters and sort.
func (c *Controller) Reset(ctx context.Context) error {
	return c.run(ctx, c.screen.Reset())
}

// ChangePageSize switches the page size and goes to page 1.
func (c *Controller) ChangePageSize(ctx context.Context, size int) error {
	p, err := c.screen.ChangePageSize(size)
	if err != nil {
		return err
	}
	return c.run(ctx, p)
}

// Sort toggles the sort on column.
func (c *Controller) Sort(ctx context.Context, column models.SortField) error {
	p, err := c.screen.SortBy(column)
	if err != nil {
		return err
	}
	return c.run(ctx, p)
}

// Seek queries an explicit state with the given filters.
func (c *Controller) Seek(ctx context.Context, state models.QueryState, filters models.FilterCriteria) error {
	p, err := c.screen.Seek(state, filters)
	if err != nil {
		return err
	}
	return c.run(ctx, p)
}

// GoTo follows a pagination control. A disabled control does nothing.
func (c *Controller) GoTo(ctx context.Context, kind ControlKind) error {
	p, err := c.screen.GoTo(kind)
	if errors.Is(err, ErrDisabled) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.run(ctx, p)
}

// Save validates and sends the form, then refreshes the page on success.
func (c *Controller) Save(ctx context.Context, values FormValues, mode FormMode) error {
	d, err := c.screen.BeginSave(values, mode)
	if err != nil {
		return err
	}
	env, err := c.endpoint.Do(ctx, d)
	p, err := c.screen.FinishSave(env, err)
	if err != nil {
		c.logger.Warn("save failed", zap.String("action", string(d.Action)), zap.Error(err))
		return err
	}
	return c.run(ctx, p)
}

// DeleteOne deletes one record after confirmation.
func (c *Controller) DeleteOne(ctx context.Context, id string) error {
	confirmation, err := c.screen.BeginDelete(id)
	if err != nil {
		return err
	}
	return c.delete(ctx, confirmation)
}

// DeleteBatch deletes every checked row after confirmation.
func (c *Controller) DeleteBatch(ctx context.Context) error {
	confirmation, err := c.screen.BeginDeleteBatch()
	if err != nil {
		return err
	}
	return c.delete(ctx, confirmation)
}

func (c *Controller) delete(ctx context.Context, confirmation Confirmation) error {
	if !c.confirm.Confirm(confirmation.Prompt) {
		c.screen.Cancel()
		return ErrCancelled
	}
	d, ok := c.screen.Confirm()
	if !ok {
		return ErrCancelled
	}
	env, err := c.endpoint.Do(ctx, d)
	p, err := c.screen.FinishDelete(env, err)
	if err != nil {
		c.logger.Warn("delete failed", zap.String("action", string(d.Action)), zap.Error(err))
		return err
	}
	return c.run(ctx, p)
}

// LoadForEdit fetches a record and opens the form in edit mode.
func (c *Controller) LoadForEdit(ctx context.Context, id string) (FormValues, error) {
	d, err := c.screen.BeginLoadForEdit(id)
	if err != nil {
		return FormValues{}, err
	}
	env, err := c.endpoint.Do(ctx, d)
	return c.screen.FinishLoadForEdit(env, err)
}

func (c *Controller) run(ctx context.Context, p Pending) error {
	env, err := c.endpoint.Do(ctx, p.Descriptor)
	if err := c.screen.FinishQuery(p, env, err); err != nil {
		if !errors.Is(err, ErrSuperseded) {
			c.logger.Warn("query failed",
				zap.Int("page", p.State.Page),
				zap.Int("page_size", p.State.PageSize),
				zap.Error(err),
			)
		}
		return err
	}
	c.logger.Debug("query applied",
		zap.Int("page", c.screen.State().Page),
		zap.Int("total", c.screen.Page().TotalCount),
	)
	return nil
}
