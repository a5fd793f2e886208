package commands

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
)

// TransportPolicy names the hub locations that trigger the conditional
// transport requirements: a route whose origin or destination matches one of
// them needs a gate pass reference on the transport record.
type TransportPolicy struct {
	HubLocations []string
}

// DefaultTransportPolicy covers the two port hubs the standard routes touch.
func DefaultTransportPolicy() TransportPolicy {
	return TransportPolicy{HubLocations: []string{"North Port", "West Port"}}
}

// assembleReceivers turns the grouper's output into receiver entities with
// their items. Each item gets a typed party/item reference: the submitted
// typed sequences when present, the parsed legacy string otherwise, and the
// positional slot as the last resort.
func assembleReceivers(grouped []services.GroupedParty) ([]*order.Receiver, error) {
	receivers := make([]*order.Receiver, 0, len(grouped))

	for partyIdx, group := range grouped {
		eta, err := optionalDate(group.Party.ETA)
		if err != nil {
			return nil, err
		}
		etd, err := optionalDate(group.Party.ETD)
		if err != nil {
			return nil, err
		}

		mode := order.FullDelivery
		if group.Party.FullPartial != "" {
			mode, err = order.DeliveryModeFromString(group.Party.FullPartial)
			if err != nil {
				return nil, err
			}
		}

		receiver, err := order.NewReceiver(
			kernel.NewUUID(),
			group.Party.Name,
			group.Party.Contact,
			group.Party.Address,
			group.Party.Email,
			eta, etd,
			mode,
		)
		if err != nil {
			return nil, err
		}

		for itemIdx, raw := range group.Items {
			ref, err := resolveItemRef(raw, partyIdx, itemIdx)
			if err != nil {
				return nil, err
			}

			item, err := order.NewItem(
				kernel.NewUUID(),
				ref,
				raw.Category, raw.Subcategory, raw.ItemType,
				raw.PickupLocation, raw.DeliveryAddress,
				raw.TotalNumber,
				raw.Weight,
			)
			if err != nil {
				return nil, err
			}
			if err := receiver.AddItem(item); err != nil {
				return nil, err
			}
		}

		receivers = append(receivers, receiver)
	}

	return receivers, nil
}

// resolveItemRef issues the typed reference for an item: submitted typed
// sequences win, then a parsable legacy string, then the positional slot.
func resolveItemRef(raw services.RawItem, partyIdx, itemIdx int) (kernel.ItemRef, error) {
	if raw.PartySeq != nil && raw.ItemSeq != nil {
		return kernel.NewItemRef(*raw.PartySeq, *raw.ItemSeq)
	}
	if raw.ItemRef != "" {
		if ref, err := kernel.ParseItemRef(raw.ItemRef); err == nil {
			return ref, nil
		}
	}
	return kernel.NewItemRef(partyIdx, itemIdx)
}

// assembleTransport turns the raw transport input into the domain record.
func assembleTransport(input TransportInput) (*order.TransportDetail, error) {
	mode, err := order.TransportModeFromString(input.Mode)
	if err != nil {
		return nil, err
	}

	dropOffDate, err := optionalDate(input.DropOffDate)
	if err != nil {
		return nil, err
	}

	return order.NewTransportDetail(order.TransportParams{
		Mode:            mode,
		DropOffLocation: input.DropOffLocation,
		DropOffDate:     dropOffDate,
		VehicleNo:       input.VehicleNo,
		DriverName:      input.DriverName,
		DriverContact:   input.DriverContact,
		VendorName:      input.VendorName,
		VendorContact:   input.VendorContact,
		HubPassRef:      input.HubPassRef,
	})
}

func optionalDate(s string) (*kernel.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := kernel.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
