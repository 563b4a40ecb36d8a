package kernel_test

import (
	"testing"

	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobID(t *testing.T) {
	t.Run("pads to six digits", func(t *testing.T) {
		id, err := kernel.NewJobID(42)
		require.NoError(t, err)
		assert.Equal(t, "JOB-000042", id.String())
		assert.Equal(t, 42, id.Sequence())
		require.NoError(t, id.Validate())
	})

	t.Run("grows past six digits", func(t *testing.T) {
		id, err := kernel.NewJobID(1234567)
		require.NoError(t, err)
		assert.Equal(t, "JOB-1234567", id.String())
	})

	t.Run("rejects non-positive sequence", func(t *testing.T) {
		_, err := kernel.NewJobID(0)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestParseJobID(t *testing.T) {
	valid := map[string]string{
		"JOB-000001":   "JOB-000001",
		" JOB-000123 ": "JOB-000123",
		"JOB-1000000":  "JOB-1000000",
	}
	for raw, want := range valid {
		t.Run("accepts "+raw, func(t *testing.T) {
			id, err := kernel.ParseJobID(raw)
			require.NoError(t, err)
			assert.Equal(t, want, id.String())
		})
	}

	invalid := []string{"", "/", "JOB-", "JOB-12", "job-000001", "JOB-00000A", "JOB-000000", "X-000001"}
	for _, raw := range invalid {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := kernel.ParseJobID(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestNextJobID(t *testing.T) {
	t.Run("ignores malformed ids", func(t *testing.T) {
		next := kernel.NextJobID([]string{"JOB-000001", "JOB-000002", "/", ""})
		assert.Equal(t, "JOB-000003", next.String())
	})

	t.Run("uses the maximum, not the last", func(t *testing.T) {
		next := kernel.NextJobID([]string{"JOB-000010", "JOB-000002", "JOB-000007"})
		assert.Equal(t, "JOB-000011", next.String())
	})

	t.Run("starts at one for an empty store", func(t *testing.T) {
		assert.Equal(t, "JOB-000001", kernel.NextJobID(nil).String())
		assert.Equal(t, "JOB-000001", kernel.NextJobID([]string{"", "n/a"}).String())
	})
}

func TestJobID_ZeroValue(t *testing.T) {
	var id kernel.JobID
	assert.ErrorIs(t, id.Validate(), errs.ErrValueIsRequired)
	assert.True(t, id.IsEqual(kernel.JobID{}))
}
