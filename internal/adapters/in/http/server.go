// Package http exposes the engine's operations over a JSON REST API.
// Handlers translate requests into commands and queries and map domain
// errors onto HTTP status codes; no business rules live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/consignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderHandler       commands.UpdateOrderCommandHandler
	assignContainersHandler  commands.AssignContainersCommandHandler
	setReceiverStatusHandler commands.SetReceiverStatusCommandHandler

	createContainerHandler     commands.CreateContainerCommandHandler
	recordContainerHandler     commands.RecordContainerEventCommandHandler
	overrideContainerHandler   commands.OverrideContainerStatusCommandHandler
	createConsignmentHandler   commands.CreateConsignmentCommandHandler
	advanceConsignmentHandler  commands.AdvanceConsignmentCommandHandler
	cancelConsignmentHandler   commands.CancelConsignmentCommandHandler
	getOrderHandler            queries.GetOrderQueryHandler
	getActiveOrdersHandler     queries.GetActiveOrdersQueryHandler
	getOrderTrackingHandler    queries.GetOrderTrackingQueryHandler
	getContainerStatusHandler  queries.GetContainerStatusQueryHandler
	getConsignmentHandler      queries.GetConsignmentQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	assignContainersHandler commands.AssignContainersCommandHandler,
	setReceiverStatusHandler commands.SetReceiverStatusCommandHandler,
	createContainerHandler commands.CreateContainerCommandHandler,
	recordContainerHandler commands.RecordContainerEventCommandHandler,
	overrideContainerHandler commands.OverrideContainerStatusCommandHandler,
	createConsignmentHandler commands.CreateConsignmentCommandHandler,
	advanceConsignmentHandler commands.AdvanceConsignmentCommandHandler,
	cancelConsignmentHandler commands.CancelConsignmentCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler,
	getContainerStatusHandler queries.GetContainerStatusQueryHandler,
	getConsignmentHandler queries.GetConsignmentQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		updateOrderHandler:        updateOrderHandler,
		assignContainersHandler:   assignContainersHandler,
		setReceiverStatusHandler:  setReceiverStatusHandler,
		createContainerHandler:    createContainerHandler,
		recordContainerHandler:    recordContainerHandler,
		overrideContainerHandler:  overrideContainerHandler,
		createConsignmentHandler:  createConsignmentHandler,
		advanceConsignmentHandler: advanceConsignmentHandler,
		cancelConsignmentHandler:  cancelConsignmentHandler,
		getOrderHandler:           getOrderHandler,
		getActiveOrdersHandler:    getActiveOrdersHandler,
		getOrderTrackingHandler:   getOrderTrackingHandler,
		getContainerStatusHandler: getContainerStatusHandler,
		getConsignmentHandler:     getConsignmentHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.GET("/orders/:id/tracking", s.GetOrderTracking)
	api.PUT("/orders/:id/receivers/:receiverId/status", s.SetReceiverStatus)

	api.POST("/assignments", s.AssignContainers)

	api.POST("/containers", s.CreateContainer)
	api.GET("/containers/:number/status", s.GetContainerStatus)
	api.POST("/containers/:id/events", s.RecordContainerEvent)
	api.PUT("/containers/:id/status-override", s.OverrideContainerStatus)

	api.POST("/consignments", s.CreateConsignment)
	api.GET("/consignments/:id", s.GetConsignment)
	api.POST("/consignments/:id/advance", s.AdvanceConsignment)
	api.POST("/consignments/:id/cancel", s.CancelConsignment)
}

// ErrorResponse is the uniform error body. Fields is populated only for
// validation failures, one entry per invalid field.
type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError names one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeError maps domain errors onto HTTP status codes: collected validation
// failures and malformed values map to 400, missing objects to 404,
// uniqueness violations to 409, and rejected business rules to 422.
func writeError(ctx echo.Context, err error) error {
	var verrs *errs.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs.Fields()))
		for _, f := range verrs.Fields() {
			fields = append(fields, FieldError{Field: f.Field, Message: f.Message})
		}
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "validation failed",
			Fields:  fields,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code: http.StatusNotFound, Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code: http.StatusConflict, Message: err.Error(),
		})
	case errors.Is(err, order.ErrOverAssignment),
		errors.Is(err, consignment.ErrNoNextStatus),
		errors.Is(err, consignment.ErrAlreadyTerminal):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code: http.StatusUnprocessableEntity, Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code: http.StatusInternalServerError, Message: "internal error",
	})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// PartyRequest is one shipping-party submission; which field group describes
// the shipping party depends on the order's senderType flag.
type PartyRequest struct {
	SenderName      string `json:"sender_name"`
	SenderContact   string `json:"sender_contact"`
	SenderAddress   string `json:"sender_address"`
	SenderEmail     string `json:"sender_email"`
	ReceiverName    string `json:"receiver_name"`
	ReceiverContact string `json:"receiver_contact"`
	ReceiverAddress string `json:"receiver_address"`
	ReceiverEmail   string `json:"receiver_email"`
	ETA             string `json:"eta"`
	ETD             string `json:"etd"`
	FullPartial     string `json:"full_partial"`
}

// ItemRequest is one flat cargo-line submission.
type ItemRequest struct {
	ItemRef         string  `json:"item_ref"`
	PartySeq        *int    `json:"party_seq"`
	ItemSeq         *int    `json:"item_seq"`
	Category        string  `json:"category"`
	Subcategory     string  `json:"subcategory"`
	ItemType        string  `json:"item_type"`
	PickupLocation  string  `json:"pickup_location"`
	DeliveryAddress string  `json:"delivery_address"`
	TotalNumber     int     `json:"total_number"`
	Weight          float64 `json:"weight"`
}

// TransportRequest is the transport record of a submission.
type TransportRequest struct {
	Mode            string `json:"mode"`
	DropOffLocation string `json:"drop_off_location"`
	DropOffDate     string `json:"drop_off_date"`
	VehicleNo       string `json:"vehicle_no"`
	DriverName      string `json:"driver_name"`
	DriverContact   string `json:"driver_contact"`
	VendorName      string `json:"vendor_name"`
	VendorContact   string `json:"vendor_contact"`
	HubPassRef      string `json:"hub_pass_ref"`
}

// CreateOrderRequest is the order submission payload.
type CreateOrderRequest struct {
	BookingRef    string           `json:"booking_ref"`
	SenderType    string           `json:"sender_type"`
	SenderName    string           `json:"sender_name"`
	SenderContact string           `json:"sender_contact"`
	SenderAddress string           `json:"sender_address"`
	SenderEmail   string           `json:"sender_email"`
	Origin        string           `json:"origin"`
	LoadingPoint  string           `json:"loading_point"`
	Destination   string           `json:"destination"`
	DeliveryPoint string           `json:"delivery_point"`
	Remarks       string           `json:"remarks"`
	Attachments   []string         `json:"attachments"`
	Parties       []PartyRequest   `json:"parties"`
	Items         []ItemRequest    `json:"items"`
	Transport     TransportRequest `json:"transport"`
	Actor         string           `json:"actor"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		OrderID:    orderID,
		BookingRef: req.BookingRef,
		SenderType: req.SenderType,
		Sender: commands.SenderInput{
			Name:    req.SenderName,
			Contact: req.SenderContact,
			Address: req.SenderAddress,
			Email:   req.SenderEmail,
		},
		Route: order.Route{
			Origin:        req.Origin,
			LoadingPoint:  req.LoadingPoint,
			Destination:   req.Destination,
			DeliveryPoint: req.DeliveryPoint,
		},
		Remarks:     req.Remarks,
		Attachments: req.Attachments,
		Parties:     toRawParties(req.Parties),
		Items:       toRawItems(req.Items),
		Transport:   toTransportInput(req.Transport),
		Actor:       req.Actor,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// UpdateOrderRequest is the order patch payload. Absent fields stay as they
// are; the party list, when present, replaces the existing one wholesale.
type UpdateOrderRequest struct {
	Origin        *string           `json:"origin"`
	LoadingPoint  *string           `json:"loading_point"`
	Destination   *string           `json:"destination"`
	DeliveryPoint *string           `json:"delivery_point"`
	Remarks       *string           `json:"remarks"`
	Attachments   *[]string         `json:"attachments"`
	SenderName    *string           `json:"sender_name"`
	SenderContact *string           `json:"sender_contact"`
	SenderAddress *string           `json:"sender_address"`
	SenderEmail   *string           `json:"sender_email"`
	Parties       []PartyRequest    `json:"parties"`
	Items         []ItemRequest     `json:"items"`
	Transport     *TransportRequest `json:"transport"`
	Actor         string            `json:"actor"`
}

// UpdateOrder handles PATCH /api/v1/orders/:id.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	params := commands.UpdateOrderParams{
		OrderID: orderID,
		Patch: order.OrderPatch{
			Origin:        req.Origin,
			LoadingPoint:  req.LoadingPoint,
			Destination:   req.Destination,
			DeliveryPoint: req.DeliveryPoint,
			Remarks:       req.Remarks,
			Attachments:   req.Attachments,
		},
		ReplaceParties: len(req.Parties) > 0,
		Parties:        toRawParties(req.Parties),
		Items:          toRawItems(req.Items),
		Actor:          req.Actor,
	}
	if req.SenderName != nil || req.SenderContact != nil || req.SenderAddress != nil || req.SenderEmail != nil {
		params.SenderPatch = &order.SenderPatch{
			Name:    req.SenderName,
			Contact: req.SenderContact,
			Address: req.SenderAddress,
			Email:   req.SenderEmail,
		}
	}
	if req.Transport != nil {
		transport := toTransportInput(*req.Transport)
		params.Transport = &transport
	}

	cmd, err := commands.NewUpdateOrderCommand(params)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignmentLineRequest books containers against one receiver's item.
type AssignmentLineRequest struct {
	ReceiverID       string   `json:"receiver_id"`
	ItemIndex        int      `json:"item_index"`
	ContainerNumbers []string `json:"container_numbers"`
	Qty              int      `json:"qty"`
}

// OrderAssignmentRequest is the assignment lines targeting one order.
type OrderAssignmentRequest struct {
	OrderID string                  `json:"order_id"`
	Lines   []AssignmentLineRequest `json:"lines"`
}

// AssignContainersRequest is an all-or-nothing assignment batch spanning one
// or more orders.
type AssignContainersRequest struct {
	Batches []OrderAssignmentRequest `json:"batches"`
	Actor   string                   `json:"actor"`
}

// AssignContainers handles POST /api/v1/assignments.
func (s *Server) AssignContainers(ctx echo.Context) error {
	var req AssignContainersRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	batches := make([]commands.OrderAssignment, 0, len(req.Batches))
	for _, batch := range req.Batches {
		orderID, idErr := kernel.UUIDFromString(batch.OrderID)
		if idErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("order_id", idErr))
		}
		lines := make([]commands.AssignmentLine, 0, len(batch.Lines))
		for _, line := range batch.Lines {
			receiverID, idErr := kernel.UUIDFromString(line.ReceiverID)
			if idErr != nil {
				return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("receiver_id", idErr))
			}
			lines = append(lines, commands.AssignmentLine{
				ReceiverID:       receiverID,
				ItemIndex:        line.ItemIndex,
				ContainerNumbers: line.ContainerNumbers,
				Qty:              line.Qty,
			})
		}
		batches = append(batches, commands.OrderAssignment{OrderID: orderID, Lines: lines})
	}

	cmd, err := commands.NewAssignContainersCommand(commands.AssignContainersParams{
		Batches: batches,
		Actor:   req.Actor,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.assignContainersHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetReceiverStatusRequest moves one shipping party to a new workflow status.
type SetReceiverStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
	Actor  string `json:"actor"`
}

// SetReceiverStatus handles PUT /api/v1/orders/:id/receivers/:receiverId/status.
func (s *Server) SetReceiverStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}
	receiverID, err := pathUUID(ctx, "receiverId")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("receiverId", err))
	}

	var req SetReceiverStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	cmd, err := commands.NewSetReceiverStatusCommand(commands.SetReceiverStatusParams{
		OrderID:    orderID,
		ReceiverID: receiverID,
		Status:     req.Status,
		Note:       req.Note,
		Actor:      req.Actor,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setReceiverStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrderTracking handles GET /api/v1/orders/:id/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.getOrderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, entries)
}

// PurchaseRequest is the acquisition record of an owned container.
type PurchaseRequest struct {
	Vendor       string  `json:"vendor"`
	Reference    string  `json:"reference"`
	PurchaseDate string  `json:"purchase_date"`
	Price        float64 `json:"price"`
}

// HireRequest is the hire terms of a hired-in container.
type HireRequest struct {
	Hirer     string  `json:"hirer"`
	Reference string  `json:"reference"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	DailyRate float64 `json:"daily_rate"`
}

// CreateContainerRequest registers a container master with the detail record
// selected by its owner type.
type CreateContainerRequest struct {
	Number        string           `json:"number"`
	Size          string           `json:"size"`
	ContainerType string           `json:"container_type"`
	OwnerType     string           `json:"owner_type"`
	Purchase      *PurchaseRequest `json:"purchase"`
	Hire          *HireRequest     `json:"hire"`
}

// CreateContainer handles POST /api/v1/containers.
func (s *Server) CreateContainer(ctx echo.Context) error {
	var req CreateContainerRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	containerID := kernel.NewUUID()
	params := commands.CreateContainerParams{
		ContainerID:   containerID,
		Number:        req.Number,
		Size:          req.Size,
		ContainerType: req.ContainerType,
		OwnerType:     req.OwnerType,
	}
	if req.Purchase != nil {
		params.Purchase = &commands.PurchaseInput{
			Vendor:       req.Purchase.Vendor,
			Reference:    req.Purchase.Reference,
			PurchaseDate: req.Purchase.PurchaseDate,
			Price:        req.Purchase.Price,
		}
	}
	if req.Hire != nil {
		params.Hire = &commands.HireInput{
			Hirer:     req.Hire.Hirer,
			Reference: req.Hire.Reference,
			StartDate: req.Hire.StartDate,
			EndDate:   req.Hire.EndDate,
			DailyRate: req.Hire.DailyRate,
		}
	}

	cmd, err := commands.NewCreateContainerCommand(params)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createContainerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": containerID.String()})
}

// GetContainerStatus handles GET /api/v1/containers/:number/status.
func (s *Server) GetContainerStatus(ctx echo.Context) error {
	query, err := queries.NewGetContainerStatusQuery(ctx.Param("number"))
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getContainerStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// RecordContainerEventRequest appends one event to a container's ledger.
type RecordContainerEventRequest struct {
	Location     string    `json:"location"`
	Availability string    `json:"availability"`
	Note         string    `json:"note"`
	Actor        string    `json:"actor"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// RecordContainerEvent handles POST /api/v1/containers/:id/events.
func (s *Server) RecordContainerEvent(ctx echo.Context) error {
	containerID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req RecordContainerEventRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	cmd, err := commands.NewRecordContainerEventCommand(commands.RecordContainerEventParams{
		ContainerID:  containerID,
		Location:     req.Location,
		Availability: req.Availability,
		Note:         req.Note,
		Actor:        req.Actor,
		OccurredAt:   req.OccurredAt,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.recordContainerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// OverrideContainerStatusRequest sets or clears the administrative override;
// an empty status clears it.
type OverrideContainerStatusRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
}

// OverrideContainerStatus handles PUT /api/v1/containers/:id/status-override.
func (s *Server) OverrideContainerStatus(ctx echo.Context) error {
	containerID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req OverrideContainerStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	cmd, err := commands.NewOverrideContainerStatusCommand(commands.OverrideContainerStatusParams{
		ContainerID: containerID,
		Status:      req.Status,
		Actor:       req.Actor,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.overrideContainerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateConsignmentRequest registers a consignment in Draft status.
type CreateConsignmentRequest struct {
	ConsignmentNumber string   `json:"consignment_number"`
	EformRef          string   `json:"eform_ref"`
	Value             float64  `json:"value"`
	GrossWeight       float64  `json:"gross_weight"`
	NetWeight         float64  `json:"net_weight"`
	Vessel            string   `json:"vessel"`
	VoyageNo          string   `json:"voyage_no"`
	SealNo            string   `json:"seal_no"`
	Containers        []string `json:"containers"`
	Orders            []string `json:"orders"`
}

// CreateConsignment handles POST /api/v1/consignments.
func (s *Server) CreateConsignment(ctx echo.Context) error {
	var req CreateConsignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	consignmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateConsignmentCommand(commands.CreateConsignmentParams{
		ConsignmentID: consignmentID,
		Fields: consignment.Fields{
			ConsignmentNumber: req.ConsignmentNumber,
			EformRef:          req.EformRef,
			Value:             req.Value,
			GrossWeight:       req.GrossWeight,
			NetWeight:         req.NetWeight,
			Vessel:            req.Vessel,
			VoyageNo:          req.VoyageNo,
			SealNo:            req.SealNo,
			Containers:        req.Containers,
			Orders:            req.Orders,
		},
	})
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createConsignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": consignmentID.String()})
}

// GetConsignment handles GET /api/v1/consignments/:id.
func (s *Server) GetConsignment(ctx echo.Context) error {
	consignmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetConsignmentQuery(consignmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getConsignmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// AdvanceConsignment handles POST /api/v1/consignments/:id/advance.
func (s *Server) AdvanceConsignment(ctx echo.Context) error {
	consignmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewAdvanceConsignmentCommand(consignmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	next, err := s.advanceConsignmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": next.String()})
}

// CancelConsignment handles POST /api/v1/consignments/:id/cancel.
func (s *Server) CancelConsignment(ctx echo.Context) error {
	consignmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewCancelConsignmentCommand(consignmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.cancelConsignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toRawParties(parties []PartyRequest) []services.RawParty {
	raw := make([]services.RawParty, 0, len(parties))
	for _, p := range parties {
		raw = append(raw, services.RawParty{
			SenderName:      p.SenderName,
			SenderContact:   p.SenderContact,
			SenderAddress:   p.SenderAddress,
			SenderEmail:     p.SenderEmail,
			ReceiverName:    p.ReceiverName,
			ReceiverContact: p.ReceiverContact,
			ReceiverAddress: p.ReceiverAddress,
			ReceiverEmail:   p.ReceiverEmail,
			ETA:             p.ETA,
			ETD:             p.ETD,
			FullPartial:     p.FullPartial,
		})
	}
	return raw
}

func toRawItems(items []ItemRequest) []services.RawItem {
	raw := make([]services.RawItem, 0, len(items))
	for _, item := range items {
		raw = append(raw, services.RawItem{
			ItemRef:         item.ItemRef,
			PartySeq:        item.PartySeq,
			ItemSeq:         item.ItemSeq,
			Category:        item.Category,
			Subcategory:     item.Subcategory,
			ItemType:        item.ItemType,
			PickupLocation:  item.PickupLocation,
			DeliveryAddress: item.DeliveryAddress,
			TotalNumber:     item.TotalNumber,
			Weight:          item.Weight,
		})
	}
	return raw
}

func toTransportInput(transport TransportRequest) commands.TransportInput {
	return commands.TransportInput{
		Mode:            transport.Mode,
		DropOffLocation: transport.DropOffLocation,
		DropOffDate:     transport.DropOffDate,
		VehicleNo:       transport.VehicleNo,
		DriverName:      transport.DriverName,
		DriverContact:   transport.DriverContact,
		VendorName:      transport.VendorName,
		VendorContact:   transport.VendorContact,
		HubPassRef:      transport.HubPassRef,
	}
}
