package form

import (
	"context"

	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/items"
)

// Saver persists records.
type Saver interface {
	Create(ctx context.Context, it items.Item) (string, error)
	Update(ctx context.Context, id string, it items.Item) error
}

// Result describes a successful submit.
type Result struct {
	Created bool
	ID      string
	Message string

	// Values is the form after the submit, always cleared.
	Values Values
}

// Controller validates submitted forms and saves them.
type Controller struct {
	saver Saver
}

// NewController creates a form controller saving through s.
func NewController(s Saver) *Controller {
	return &Controller{saver: s}
}

// Submit validates v and then updates the record when v carries an ID or
// creates it otherwise. Nothing is saved when validation fails.
func (c *Controller) Submit(ctx context.Context, v Values) (Result, error) {
	if err := Validate(v); err != nil {
		return Result{}, err
	}

	it := v.Item()
	if v.IsEdit() {
		if err := c.saver.Update(ctx, v.ItemID, it); err != nil {
			return Result{}, saveFailure("update", v.ItemID, err)
		}
		return Result{ID: v.ItemID, Message: constants.MsgUpdated}, nil
	}

	id, err := c.saver.Create(ctx, it)
	if err != nil {
		return Result{}, saveFailure("create", "", err)
	}
	return Result{Created: true, ID: id, Message: constants.MsgCreated}, nil
}

func saveFailure(operation, id string, err error) error {
	message := err.Error()
	var resErr *errors.ResourceError
	if errors.As(err, &resErr) && resErr.Message != "" {
		message = resErr.Message
	}
	return &errors.ResourceError{
		Operation: operation,
		Resource:  "item",
		ID:        id,
		Message:   constants.MsgSaveFailed + message,
		Err:       err,
	}
}
