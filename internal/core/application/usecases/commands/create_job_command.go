package commands

import (
	"errors"
	"strings"

	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/pkg/errs"
	"fieldsync/internal/pkg/guard"
)

var (
	ErrCreateJobCommandIsNotConstructed = errors.New(
		"CreateJobCommand must be created via NewCreateJobCommand constructor",
	)
	ErrTeamIsRequired     = errs.NewValueIsRequiredError("team")
	ErrCustomerIsRequired = errs.NewValueIsRequiredError("customer or contact_name")
)

// CreateJobCommand is a job intake request. The job id is drawn from the store
// when the command is handled, never supplied by the caller.
//
// Example:
//
//	cmd, err := NewCreateJobCommand(job.Fields{
//	    job.FieldTeam:       "Team A",
//	    job.FieldCustomer:   "Acme",
//	    job.FieldDate:       "2025-08-01",
//	    job.FieldTimeWindow: "AM",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid job: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	fields job.Fields
	status job.Status

	guard guard.ConstructorGuard
}

// NewCreateJobCommand validates the intake fields. A team and a customer or
// contact name are required; an explicit status must be a known one; the event
// link is owned by the sync engine and cannot be supplied.
func NewCreateJobCommand(fields job.Fields) (CreateJobCommand, error) {
	command := CreateJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setFields(fields),
		command.setStatus(fields[job.FieldStatus]),
	); err != nil {
		return CreateJobCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// Fields returns a copy of the intake fields.
func (c CreateJobCommand) Fields() job.Fields {
	out := make(job.Fields, len(c.fields))
	for k, v := range c.fields {
		out[k] = v
	}
	return out
}

// Status returns the explicit status, or "" when it should be derived.
func (c CreateJobCommand) Status() job.Status {
	return c.status
}

func (c *CreateJobCommand) setFields(fields job.Fields) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	if _, ok := fields[job.FieldEventID]; ok {
		return errs.NewValueIsInvalidError("event_id")
	}
	if strings.TrimSpace(fields[job.FieldTeam]) == "" {
		return ErrTeamIsRequired
	}
	if strings.TrimSpace(fields[job.FieldCustomer]) == "" && strings.TrimSpace(fields[job.FieldContactName]) == "" {
		return ErrCustomerIsRequired
	}

	c.fields = fields
	return nil
}

func (c *CreateJobCommand) setStatus(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	status, err := job.ParseStatus(raw)
	if err != nil {
		return err
	}

	c.status = status
	return nil
}
