package order_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransportDetail(t *testing.T) {
	t.Run("should reject an invalid mode", func(t *testing.T) {
		_, err := order.NewTransportDetail(order.TransportParams{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "transportMode")
	})

	t.Run("should reject a malformed driver contact", func(t *testing.T) {
		_, err := order.NewTransportDetail(order.TransportParams{
			Mode:          order.Collection,
			DriverContact: "not-a-phone",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "driverContact")
	})
}

func TestValidateForRoute(t *testing.T) {
	hubs := []string{"North Port", "West Port"}
	inlandRoute := order.Route{Origin: "Inland Depot", Destination: "Warehouse 7"}
	hubRoute := order.Route{Origin: "North Port Terminal 2", Destination: "Warehouse 7"}

	dropOffDate, err := kernel.ParseDate("2025-10-01")
	require.NoError(t, err)

	t.Run("drop-off requires location and date", func(t *testing.T) {
		transport, err := order.NewTransportDetail(order.TransportParams{Mode: order.DropOff})
		require.NoError(t, err)

		verrs := transport.ValidateForRoute(inlandRoute, hubs)

		fields := fieldNames(verrs)
		assert.Contains(t, fields, "transport.dropOffLocation")
		assert.Contains(t, fields, "transport.dropOffDate")
	})

	t.Run("collection requires vehicle and driver", func(t *testing.T) {
		transport, err := order.NewTransportDetail(order.TransportParams{Mode: order.Collection})
		require.NoError(t, err)

		verrs := transport.ValidateForRoute(inlandRoute, hubs)

		fields := fieldNames(verrs)
		assert.Contains(t, fields, "transport.vehicleNo")
		assert.Contains(t, fields, "transport.driverName")
	})

	t.Run("third-party requires a vendor", func(t *testing.T) {
		transport, err := order.NewTransportDetail(order.TransportParams{Mode: order.ThirdParty})
		require.NoError(t, err)

		verrs := transport.ValidateForRoute(inlandRoute, hubs)

		assert.Contains(t, fieldNames(verrs), "transport.vendorName")
	})

	t.Run("hub route requires a gate pass", func(t *testing.T) {
		transport, err := order.NewTransportDetail(order.TransportParams{
			Mode:            order.DropOff,
			DropOffLocation: "Gate 3",
			DropOffDate:     &dropOffDate,
		})
		require.NoError(t, err)

		verrs := transport.ValidateForRoute(hubRoute, hubs)

		assert.Contains(t, fieldNames(verrs), "transport.hubPassRef")
	})

	t.Run("complete drop-off record on a non-hub route passes", func(t *testing.T) {
		transport, err := order.NewTransportDetail(order.TransportParams{
			Mode:            order.DropOff,
			DropOffLocation: "Gate 3",
			DropOffDate:     &dropOffDate,
		})
		require.NoError(t, err)

		verrs := transport.ValidateForRoute(inlandRoute, hubs)

		assert.NoError(t, verrs.AsError())
	})

	t.Run("hub matching is case-insensitive", func(t *testing.T) {
		transport, err := order.NewTransportDetail(order.TransportParams{
			Mode:       order.ThirdParty,
			VendorName: "Haulage Co",
			HubPassRef: "GP-771",
		})
		require.NoError(t, err)

		route := order.Route{Origin: "north port berth 1", Destination: "Warehouse 7"}

		assert.NoError(t, transport.ValidateForRoute(route, hubs).AsError())
	})
}

func fieldNames(verrs *errs.ValidationErrors) []string {
	names := make([]string, 0)
	for _, f := range verrs.Fields() {
		names = append(names, f.Field)
	}
	return names
}
