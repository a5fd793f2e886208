package services_test

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrouper() services.PartyGrouper {
	return services.NewPartyGrouper(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func intPtr(i int) *int { return &i }

func twoParties() []services.RawParty {
	return []services.RawParty{
		{
			SenderName:      "Globex",
			SenderContact:   "+65 6100 3000",
			ReceiverName:    "Acme Importers",
			ReceiverContact: "+65 6100 2000",
			ReceiverAddress: "1 Quay Rd",
			ReceiverEmail:   "ops@acme.test",
			ETA:             "2025-10-01",
			FullPartial:     "Full",
		},
		{
			SenderName:   "Globex",
			ReceiverName: "Border Traders",
			FullPartial:  "Partial",
		},
	}
}

func TestGroup(t *testing.T) {
	grouper := newGrouper()

	t.Run("should partition items by typed party sequence", func(t *testing.T) {
		items := []services.RawItem{
			{PartySeq: intPtr(0), ItemSeq: intPtr(0), Category: "Machinery", TotalNumber: 10, Weight: 1200},
			{PartySeq: intPtr(1), ItemSeq: intPtr(0), Category: "Textiles", TotalNumber: 4, Weight: 300},
			{PartySeq: intPtr(0), ItemSeq: intPtr(1), Category: "Spares", TotalNumber: 2, Weight: 80},
		}

		grouped := grouper.Group(order.RoleSender, twoParties(), items)

		require.Len(t, grouped, 2)
		assert.Len(t, grouped[0].Items, 2)
		assert.Len(t, grouped[1].Items, 1)
		assert.Equal(t, 12, grouped[0].TotalQty)
		assert.InDelta(t, 1280.0, grouped[0].TotalWeight, 0.001)
		assert.Equal(t, 4, grouped[1].TotalQty)
	})

	t.Run("should fall back to the legacy encoded reference", func(t *testing.T) {
		items := []services.RawItem{
			{ItemRef: "REF-1-0", Category: "Textiles", TotalNumber: 4},
		}

		grouped := grouper.Group(order.RoleSender, twoParties(), items)

		assert.Empty(t, grouped[0].Items)
		assert.Len(t, grouped[1].Items, 1)
	})

	t.Run("typed sequence wins over a conflicting legacy reference", func(t *testing.T) {
		items := []services.RawItem{
			{ItemRef: "REF-1-0", PartySeq: intPtr(0), Category: "Textiles", TotalNumber: 4},
		}

		grouped := grouper.Group(order.RoleSender, twoParties(), items)

		assert.Len(t, grouped[0].Items, 1)
		assert.Empty(t, grouped[1].Items)
	})

	t.Run("unparsable references fall back to the first party", func(t *testing.T) {
		items := []services.RawItem{
			{ItemRef: "garbled", Category: "Textiles", TotalNumber: 4},
			{Category: "Spares", TotalNumber: 1},
		}

		grouped := grouper.Group(order.RoleSender, twoParties(), items)

		assert.Len(t, grouped[0].Items, 2)
		assert.Empty(t, grouped[1].Items)
	})

	t.Run("out-of-range party index falls back to the first party", func(t *testing.T) {
		items := []services.RawItem{
			{PartySeq: intPtr(7), Category: "Textiles", TotalNumber: 4},
		}

		grouped := grouper.Group(order.RoleSender, twoParties(), items)

		assert.Len(t, grouped[0].Items, 1)
	})

	t.Run("a party with zero items is permitted", func(t *testing.T) {
		grouped := grouper.Group(order.RoleSender, twoParties(), nil)

		require.Len(t, grouped, 2)
		assert.Empty(t, grouped[0].Items)
		assert.Zero(t, grouped[0].TotalQty)
	})

	t.Run("grouping is idempotent", func(t *testing.T) {
		items := []services.RawItem{
			{PartySeq: intPtr(0), Category: "Machinery", TotalNumber: 10, Weight: 1200},
			{ItemRef: "REF-1-0", Category: "Textiles", TotalNumber: 4, Weight: 300},
		}

		first := grouper.Group(order.RoleSender, twoParties(), items)
		second := grouper.Group(order.RoleSender, twoParties(), items)

		assert.Equal(t, first, second)
	})

	t.Run("empty party list yields an empty grouping and logs the drop", func(t *testing.T) {
		var buf bytes.Buffer
		logging := services.NewPartyGrouper(slog.New(slog.NewTextHandler(&buf, nil)))

		grouped := logging.Group(order.RoleSender, nil, []services.RawItem{
			{Category: "Machinery", TotalNumber: 10},
			{Category: "Spares", TotalNumber: 1},
		})

		assert.Empty(t, grouped)
		assert.Contains(t, buf.String(), "discarding items")
		assert.Contains(t, buf.String(), "items=2")
	})
}

func TestNormalization(t *testing.T) {
	grouper := newGrouper()

	t.Run("sender-owned orders read the receiver field group", func(t *testing.T) {
		grouped := grouper.Group(order.RoleSender, twoParties(), nil)

		assert.Equal(t, "Acme Importers", grouped[0].Party.Name)
		assert.Equal(t, "+65 6100 2000", grouped[0].Party.Contact)
		assert.Equal(t, "2025-10-01", grouped[0].Party.ETA)
		assert.Equal(t, "Full", grouped[0].Party.FullPartial)
	})

	t.Run("receiver-owned orders swap to the sender field group", func(t *testing.T) {
		grouped := grouper.Group(order.RoleReceiver, twoParties(), nil)

		assert.Equal(t, "Globex", grouped[0].Party.Name)
		assert.Equal(t, "+65 6100 3000", grouped[0].Party.Contact)
		// ETA/ETD and delivery mode always describe the shipping party.
		assert.Equal(t, "2025-10-01", grouped[0].Party.ETA)
	})
}
