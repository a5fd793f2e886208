package services

import (
	"log/slog"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// RawParty is one loosely structured shipping-party submission. Clients send
// both sender_* and receiver_* field groups; which group describes the
// shipping party depends on the order's sender_type flag, and normalization
// remaps them so downstream components always see the same shape.
type RawParty struct {
	SenderName      string
	SenderContact   string
	SenderAddress   string
	SenderEmail     string
	ReceiverName    string
	ReceiverContact string
	ReceiverAddress string
	ReceiverEmail   string
	ETA             string
	ETD             string
	FullPartial     string
}

// RawItem is one flat item submission. The typed PartySeq/ItemSeq pair is
// the preferred link to the owning party; the legacy encoded ItemRef string
// is parsed as a fallback for older clients.
type RawItem struct {
	ItemRef         string
	PartySeq        *int
	ItemSeq         *int
	Category        string
	Subcategory     string
	ItemType        string
	PickupLocation  string
	DeliveryAddress string
	TotalNumber     int
	Weight          float64
}

// NormalizedParty is a shipping party with sender/receiver field groups
// resolved to a single shape.
type NormalizedParty struct {
	Name        string
	Contact     string
	Address     string
	Email       string
	ETA         string
	ETD         string
	FullPartial string
}

// GroupedParty is one shipping party with its resolved item subset and the
// totals recomputed as the sum over those items.
type GroupedParty struct {
	Party       NormalizedParty
	Items       []RawItem
	TotalQty    int
	TotalWeight float64
}

// PartyGrouper is the domain service that turns flat, loosely structured
// party and item arrays into a party -> items grouping.
//
// Resolution of an item's owning party, in order:
//  1. the typed PartySeq field, when present;
//  2. the legacy encoded ItemRef string, when parsable;
//  3. party index 0.
//
// Fallbacks are logged, never rejected: a malformed reference must not fail
// the whole request. An out-of-range party index also falls back to 0. A
// party ending up with zero items is permitted, supporting incremental and
// partial submissions.
type PartyGrouper struct {
	logger *slog.Logger
}

// NewPartyGrouper creates a grouper logging fallbacks through logger.
func NewPartyGrouper(logger *slog.Logger) PartyGrouper {
	return PartyGrouper{logger: logger.With("component", "party_grouper")}
}

// Group normalizes the parties for ownerRole, partitions the items among
// them, and recomputes each party's totals. Grouping is deterministic and
// idempotent: the same input always yields the same partition.
func (g PartyGrouper) Group(ownerRole order.OwnerRole, parties []RawParty, items []RawItem) []GroupedParty {
	grouped := make([]GroupedParty, len(parties))
	for i, p := range parties {
		grouped[i] = GroupedParty{Party: normalizeParty(ownerRole, p)}
	}
	if len(grouped) == 0 {
		if len(items) > 0 {
			g.logger.Warn("no parties submitted, discarding items",
				"items", len(items))
		}
		return grouped
	}

	for _, item := range items {
		idx := g.resolvePartyIndex(item)
		if idx < 0 || idx >= len(grouped) {
			g.logger.Warn("item party index out of range, assigning to first party",
				"itemRef", item.ItemRef, "partyIndex", idx, "parties", len(grouped))
			idx = 0
		}
		grouped[idx].Items = append(grouped[idx].Items, item)
		grouped[idx].TotalQty += item.TotalNumber
		grouped[idx].TotalWeight += item.Weight
	}

	return grouped
}

// resolvePartyIndex picks the owning party: typed sequence first, legacy
// string second, party 0 as the lenient default.
func (g PartyGrouper) resolvePartyIndex(item RawItem) int {
	if item.PartySeq != nil {
		return *item.PartySeq
	}

	if item.ItemRef == "" {
		g.logger.Warn("item carries no party reference, assigning to first party")
		return 0
	}

	ref, err := kernel.ParseItemRef(item.ItemRef)
	if err != nil {
		g.logger.Warn("item reference unparsable, assigning to first party",
			"itemRef", item.ItemRef, "error", err)
		return 0
	}
	return ref.PartySeq()
}

// normalizeParty resolves the sender_*/receiver_* field groups. When the
// order owner is the receiver, the roles are swapped: the shipping party's
// own details arrive in the sender_* group.
func normalizeParty(ownerRole order.OwnerRole, p RawParty) NormalizedParty {
	normalized := NormalizedParty{
		Name:        p.ReceiverName,
		Contact:     p.ReceiverContact,
		Address:     p.ReceiverAddress,
		Email:       p.ReceiverEmail,
		ETA:         p.ETA,
		ETD:         p.ETD,
		FullPartial: p.FullPartial,
	}

	if ownerRole == order.RoleReceiver {
		normalized.Name = p.SenderName
		normalized.Contact = p.SenderContact
		normalized.Address = p.SenderAddress
		normalized.Email = p.SenderEmail
	}

	return normalized
}
