// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between the domain party graph and its
// relational representation.
package orderrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order roots.
// Enum values are stored in their wire form so raw projections read naturally.
type OrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingRef       string    `gorm:"uniqueIndex"`
	Status           string    `gorm:"index"`
	Origin           string
	LoadingPoint     string
	Destination      string
	DeliveryPoint    string
	Remarks          string
	Attachments      pq.StringArray `gorm:"type:text[]"`
	TotalAssignedQty int
}

// TableName specifies the database table name for order roots.
func (OrderDTO) TableName() string {
	return "orders"
}

// SenderDTO represents the order owner row, one per order.
type SenderDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Role    string
	Name    string
	Contact string
	Address string
	Email   string
}

// TableName specifies the database table name for order owners.
func (SenderDTO) TableName() string {
	return "senders"
}

// ReceiverDTO represents one shipping party row. Position preserves the
// submission order of parties within an order; assigned container numbers
// are denormalized into a text array.
type ReceiverDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	Position     int
	Name         string
	Contact      string
	Address      string
	Email        string
	ETA          *time.Time `gorm:"type:date"`
	ETD          *time.Time `gorm:"type:date"`
	DeliveryMode string
	QtyDelivered int
	Status       string
	Containers   pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for shipping parties.
func (ReceiverDTO) TableName() string {
	return "receivers"
}

// ItemDTO represents one cargo line row. The typed party/item sequences are
// stored alongside the encoded reference string.
type ItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReceiverID      uuid.UUID `gorm:"type:uuid;index"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	Position        int
	ItemRef         string
	PartySeq        int
	ItemSeq         int
	Category        string
	Subcategory     string
	ItemType        string
	PickupLocation  string
	DeliveryAddress string
	TotalNumber     int
	Weight          float64
	AssignedQty     int
}

// TableName specifies the database table name for cargo lines.
func (ItemDTO) TableName() string {
	return "items"
}

// TransportDTO represents the one-to-one transport record of an order.
type TransportDTO struct {
	OrderID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Mode            string
	DropOffLocation string
	DropOffDate     *time.Time `gorm:"type:date"`
	VehicleNo       string
	DriverName      string
	DriverContact   string
	VendorName      string
	VendorContact   string
	HubPassRef      string
}

// TableName specifies the database table name for transport records.
func (TransportDTO) TableName() string {
	return "transports"
}

// TrackingEventDTO represents one append-only tracking row.
type TrackingEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	ReceiverID uuid.UUID `gorm:"type:uuid"`
	Status     string
	Note       string
	Actor      string
	OccurredAt time.Time
}

// TableName specifies the database table name for tracking rows.
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

// orderFromDomain converts the order root to its database representation.
func orderFromDomain(aggregate *order.Order) OrderDTO {
	route := aggregate.Route()
	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		BookingRef:       aggregate.BookingRef(),
		Status:           aggregate.Status().String(),
		Origin:           route.Origin,
		LoadingPoint:     route.LoadingPoint,
		Destination:      route.Destination,
		DeliveryPoint:    route.DeliveryPoint,
		Remarks:          aggregate.Remarks(),
		Attachments:      pq.StringArray(aggregate.Attachments()),
		TotalAssignedQty: aggregate.TotalAssignedQty(),
	}
}

// senderFromDomain converts the order owner to its database representation.
func senderFromDomain(orderID kernel.UUID, sender *order.Sender) SenderDTO {
	return SenderDTO{
		ID:      sender.ID().Bytes(),
		OrderID: orderID.Bytes(),
		Role:    sender.Role().String(),
		Name:    sender.Name(),
		Contact: sender.Contact(),
		Address: sender.Address(),
		Email:   sender.Email(),
	}
}

// receiverFromDomain converts one shipping party to its database representation.
func receiverFromDomain(orderID kernel.UUID, position int, receiver *order.Receiver) ReceiverDTO {
	return ReceiverDTO{
		ID:           receiver.ID().Bytes(),
		OrderID:      orderID.Bytes(),
		Position:     position,
		Name:         receiver.Name(),
		Contact:      receiver.Contact(),
		Address:      receiver.Address(),
		Email:        receiver.Email(),
		ETA:          dateToTime(receiver.ETA()),
		ETD:          dateToTime(receiver.ETD()),
		DeliveryMode: receiver.DeliveryMode().String(),
		QtyDelivered: receiver.QtyDelivered(),
		Status:       receiver.Status().String(),
		Containers:   pq.StringArray(receiver.Containers()),
	}
}

// itemFromDomain converts one cargo line to its database representation.
func itemFromDomain(orderID, receiverID kernel.UUID, position int, item *order.Item) ItemDTO {
	return ItemDTO{
		ID:              item.ID().Bytes(),
		ReceiverID:      receiverID.Bytes(),
		OrderID:         orderID.Bytes(),
		Position:        position,
		ItemRef:         item.Ref().String(),
		PartySeq:        item.Ref().PartySeq(),
		ItemSeq:         item.Ref().ItemSeq(),
		Category:        item.Category(),
		Subcategory:     item.Subcategory(),
		ItemType:        item.ItemType(),
		PickupLocation:  item.PickupLocation(),
		DeliveryAddress: item.DeliveryAddress(),
		TotalNumber:     item.TotalNumber(),
		Weight:          item.Weight(),
		AssignedQty:     item.AssignedQty(),
	}
}

// transportFromDomain converts the transport record to its database representation.
func transportFromDomain(orderID kernel.UUID, transport *order.TransportDetail) TransportDTO {
	return TransportDTO{
		OrderID:         orderID.Bytes(),
		Mode:            transport.Mode().String(),
		DropOffLocation: transport.DropOffLocation(),
		DropOffDate:     dateToTime(transport.DropOffDate()),
		VehicleNo:       transport.VehicleNo(),
		DriverName:      transport.DriverName(),
		DriverContact:   transport.DriverContact(),
		VendorName:      transport.VendorName(),
		VendorContact:   transport.VendorContact(),
		HubPassRef:      transport.HubPassRef(),
	}
}

// trackingFromDomain converts one tracking event to its database representation.
func trackingFromDomain(event order.TrackingEvent) TrackingEventDTO {
	return TrackingEventDTO{
		ID:         event.ID().Bytes(),
		OrderID:    event.OrderID().Bytes(),
		ReceiverID: event.ReceiverID().Bytes(),
		Status:     event.Status().String(),
		Note:       event.Note(),
		Actor:      event.Actor(),
		OccurredAt: event.OccurredAt(),
	}
}

// toDomain reconstructs the full aggregate from its rows. Receivers and
// their items arrive ordered by position.
func toDomain(
	dto OrderDTO,
	senderDTO *SenderDTO,
	receiverDTOs []ReceiverDTO,
	itemDTOs []ItemDTO,
	transportDTO *TransportDTO,
) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var sender *order.Sender
	if senderDTO != nil {
		sender, err = senderToDomain(*senderDTO)
		if err != nil {
			return nil, err
		}
	}

	itemsByReceiver := make(map[uuid.UUID][]ItemDTO)
	for _, itemDTO := range itemDTOs {
		itemsByReceiver[itemDTO.ReceiverID] = append(itemsByReceiver[itemDTO.ReceiverID], itemDTO)
	}

	receivers := make([]*order.Receiver, 0, len(receiverDTOs))
	for _, receiverDTO := range receiverDTOs {
		receiver, recvErr := receiverToDomain(receiverDTO, itemsByReceiver[receiverDTO.ID])
		if recvErr != nil {
			return nil, recvErr
		}
		receivers = append(receivers, receiver)
	}

	var transport *order.TransportDetail
	if transportDTO != nil {
		transport, err = transportToDomain(*transportDTO)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		dto.BookingRef,
		status,
		order.Route{
			Origin:        dto.Origin,
			LoadingPoint:  dto.LoadingPoint,
			Destination:   dto.Destination,
			DeliveryPoint: dto.DeliveryPoint,
		},
		dto.Remarks,
		[]string(dto.Attachments),
		dto.TotalAssignedQty,
		sender,
		receivers,
		transport,
	)
}

func senderToDomain(dto SenderDTO) (*order.Sender, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := order.OwnerRoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}
	return order.NewSender(id, role, dto.Name, dto.Contact, dto.Address, dto.Email)
}

func receiverToDomain(dto ReceiverDTO, itemDTOs []ItemDTO) (*order.Receiver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	mode, err := order.DeliveryModeFromString(dto.DeliveryMode)
	if err != nil {
		return nil, err
	}

	status, err := order.ReceiverStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreReceiver(
		id,
		dto.Name, dto.Contact, dto.Address, dto.Email,
		timeToDate(dto.ETA), timeToDate(dto.ETD),
		mode,
		dto.QtyDelivered,
		status,
		[]string(dto.Containers),
		items,
	)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ref, err := kernel.NewItemRef(dto.PartySeq, dto.ItemSeq)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		id,
		ref,
		dto.Category, dto.Subcategory, dto.ItemType,
		dto.PickupLocation, dto.DeliveryAddress,
		dto.TotalNumber,
		dto.Weight,
		dto.AssignedQty,
	)
}

func transportToDomain(dto TransportDTO) (*order.TransportDetail, error) {
	mode, err := order.TransportModeFromString(dto.Mode)
	if err != nil {
		return nil, err
	}

	return order.NewTransportDetail(order.TransportParams{
		Mode:            mode,
		DropOffLocation: dto.DropOffLocation,
		DropOffDate:     timeToDate(dto.DropOffDate),
		VehicleNo:       dto.VehicleNo,
		DriverName:      dto.DriverName,
		DriverContact:   dto.DriverContact,
		VendorName:      dto.VendorName,
		VendorContact:   dto.VendorContact,
		HubPassRef:      dto.HubPassRef,
	})
}

func dateToTime(d *kernel.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}

func timeToDate(t *time.Time) *kernel.Date {
	if t == nil {
		return nil
	}
	d := kernel.DateFromTime(*t)
	return &d
}
