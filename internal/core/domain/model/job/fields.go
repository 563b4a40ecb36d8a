package job

import (
	"fmt"

	"fieldsync/internal/pkg/errs"
)

// Field names a patchable column of the job record.
type Field string

const (
	FieldTeam        Field = "team"
	FieldZone        Field = "zone"
	FieldDate        Field = "date"
	FieldDateType    Field = "date_type"
	FieldStartDate   Field = "start_date"
	FieldEndDate     Field = "end_date"
	FieldTimeWindow  Field = "time_window"
	FieldStartTime   Field = "start_time"
	FieldEndTime     Field = "end_time"
	FieldStatus      Field = "status"
	FieldEventID     Field = "event_id"
	FieldCustomer    Field = "customer"
	FieldContactName Field = "contact_name"
	FieldPhone       Field = "phone"
	FieldAddress     Field = "address"
	FieldType        Field = "type"
	FieldDetails     Field = "details"
	FieldNotes       Field = "notes"
)

var patchable = map[Field]struct{}{
	FieldTeam: {}, FieldZone: {}, FieldDate: {}, FieldDateType: {}, FieldStartDate: {},
	FieldEndDate: {}, FieldTimeWindow: {}, FieldStartTime: {}, FieldEndTime: {},
	FieldStatus: {}, FieldEventID: {}, FieldCustomer: {}, FieldContactName: {},
	FieldPhone: {}, FieldAddress: {}, FieldType: {}, FieldDetails: {}, FieldNotes: {},
}

// Fields is a partial patch of a job record. The job id is never patchable.
type Fields map[Field]string

// Validate rejects empty patches and unknown fields.
func (f Fields) Validate() error {
	if len(f) == 0 {
		return errs.NewValueIsRequiredError("fields")
	}
	for name := range f {
		if _, ok := patchable[name]; !ok {
			return errs.NewValueIsInvalidErrorWithCause("fields", fmt.Errorf("%q is not patchable", name))
		}
	}
	return nil
}

// Apply writes the patch onto j. Unknown fields are ignored; call Validate first
// to reject them.
func (f Fields) Apply(j *Job) {
	for name, value := range f {
		switch name {
		case FieldTeam:
			j.Team = value
		case FieldZone:
			j.Zone = value
		case FieldDate:
			j.Date = value
		case FieldDateType:
			j.DateType = value
		case FieldStartDate:
			j.StartDate = value
		case FieldEndDate:
			j.EndDate = value
		case FieldTimeWindow:
			j.TimeWindow = ParseTimeWindow(value)
		case FieldStartTime:
			j.StartTime = value
		case FieldEndTime:
			j.EndTime = value
		case FieldStatus:
			j.Status = Status(value)
		case FieldEventID:
			j.EventID = value
		case FieldCustomer:
			j.Customer = value
		case FieldContactName:
			j.ContactName = value
		case FieldPhone:
			j.Phone = value
		case FieldAddress:
			j.Address = value
		case FieldType:
			j.Type = value
		case FieldDetails:
			j.Details = value
		case FieldNotes:
			j.Notes = value
		}
	}
}
