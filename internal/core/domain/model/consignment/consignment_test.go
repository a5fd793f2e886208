package consignment_test

import (
	"testing"

	"freight/internal/core/domain/model/consignment"
	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() consignment.Fields {
	return consignment.Fields{
		ConsignmentNumber: "CSG-2025-001",
		EformRef:          "ABC-123456",
		Value:             15000,
		GrossWeight:       2400,
		NetWeight:         2200,
		Vessel:            "MV Meridian",
		VoyageNo:          "V-118",
		SealNo:            "SL-4471",
		Containers:        []string{"CONT-1001"},
		Orders:            []string{"BK-100200"},
	}
}

func createValidConsignment(t *testing.T) *consignment.Consignment {
	t.Helper()
	c, err := consignment.NewConsignment(kernel.NewUUID(), validFields())
	require.NoError(t, err)
	return c
}

func TestNewConsignment(t *testing.T) {
	t.Run("should create a consignment in Draft", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := consignment.NewConsignment(id, validFields())

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, consignment.Draft, c.Status())
	})

	t.Run("should collect every invalid field", func(t *testing.T) {
		fields := validFields()
		fields.ConsignmentNumber = ""
		fields.Value = -1
		fields.VoyageNo = "V"

		_, err := consignment.NewConsignment(kernel.NewUUID(), fields)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "consignmentNumber")
		assert.Contains(t, err.Error(), "value")
		assert.Contains(t, err.Error(), "voyageNo")
	})
}

func TestValidateFields(t *testing.T) {
	t.Run("eform reference must match the fixed pattern", func(t *testing.T) {
		testCases := []struct {
			name  string
			eform string
			valid bool
		}{
			{"canonical", "ABC-123456", true},
			{"five digits", "ABC-12345", false},
			{"seven digits", "ABC-1234567", false},
			{"lowercase letters", "abc-123456", false},
			{"two letters", "AB-123456", false},
			{"missing dash", "ABC123456", false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				fields := validFields()
				fields.EformRef = tc.eform

				err := consignment.ValidateFields(fields).AsError()

				if tc.valid {
					assert.NoError(t, err)
				} else {
					require.Error(t, err)
					assert.Contains(t, err.Error(), "eform")
				}
			})
		}
	})

	t.Run("container and order references are required", func(t *testing.T) {
		fields := validFields()
		fields.Containers = nil
		fields.Orders = nil

		err := consignment.ValidateFields(fields).AsError()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "containers")
		assert.Contains(t, err.Error(), "orders")
	})

	t.Run("weights must not be negative", func(t *testing.T) {
		fields := validFields()
		fields.GrossWeight = -0.5
		fields.NetWeight = -0.5

		err := consignment.ValidateFields(fields).AsError()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "grossWeight")
		assert.Contains(t, err.Error(), "netWeight")
	})
}

func TestAdvance(t *testing.T) {
	t.Run("should walk the linear chain to Delivered", func(t *testing.T) {
		c := createValidConsignment(t)

		expected := []consignment.Status{
			consignment.Submitted,
			consignment.InTransit,
			consignment.Delivered,
		}
		for _, want := range expected {
			next, err := c.Advance()
			require.NoError(t, err)
			assert.Equal(t, want, next)
			assert.Equal(t, want, c.Status())
		}
	})

	t.Run("should fail on a terminal status", func(t *testing.T) {
		c := createValidConsignment(t)
		for i := 0; i < 3; i++ {
			_, err := c.Advance()
			require.NoError(t, err)
		}

		_, err := c.Advance()

		assert.ErrorIs(t, err, consignment.ErrNoNextStatus)
		assert.Equal(t, consignment.Delivered, c.Status())
	})

	t.Run("should never yield Cancelled", func(t *testing.T) {
		c := createValidConsignment(t)

		for {
			next, err := c.Advance()
			if err != nil {
				break
			}
			assert.NotEqual(t, consignment.Cancelled, next)
		}
	})
}

func TestCancel(t *testing.T) {
	t.Run("should cancel a non-terminal consignment", func(t *testing.T) {
		c := createValidConsignment(t)
		_, err := c.Advance()
		require.NoError(t, err)

		require.NoError(t, c.Cancel())
		assert.Equal(t, consignment.Cancelled, c.Status())
	})

	t.Run("should fail for a delivered consignment", func(t *testing.T) {
		c := createValidConsignment(t)
		for i := 0; i < 3; i++ {
			_, err := c.Advance()
			require.NoError(t, err)
		}

		err := c.Cancel()

		assert.ErrorIs(t, err, consignment.ErrAlreadyTerminal)
		assert.Equal(t, consignment.Delivered, c.Status())
	})

	t.Run("should fail for an already cancelled consignment", func(t *testing.T) {
		c := createValidConsignment(t)
		require.NoError(t, c.Cancel())

		assert.ErrorIs(t, c.Cancel(), consignment.ErrAlreadyTerminal)
	})
}

func TestRestoreConsignment(t *testing.T) {
	c, err := consignment.RestoreConsignment(kernel.NewUUID(), validFields(), consignment.InTransit)

	require.NoError(t, err)
	assert.Equal(t, consignment.InTransit, c.Status())

	next, err := c.Advance()
	require.NoError(t, err)
	assert.Equal(t, consignment.Delivered, next)
}
