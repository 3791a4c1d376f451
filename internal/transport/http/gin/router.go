package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ridesched/busgo/internal/domain"
	redisrepo "github.com/ridesched/busgo/internal/repository/redis"
	"github.com/ridesched/busgo/internal/service"
	"github.com/ridesched/busgo/internal/service/booking"
	"github.com/ridesched/busgo/internal/service/fleet"
	"github.com/ridesched/busgo/internal/service/query"
	"github.com/ridesched/busgo/internal/service/trips"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	operatorID int64,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.GET("/trips/search", handleSearchTrips(svcs))
	r.GET("/trips/:id", handleGetTrip(svcs))
	r.GET("/trips/:id/availability", handleGetAvailability(svcs))
	r.GET("/trips/:id/seatmap", handleGetSeatMap(svcs))

	r.POST("/trips/:id/bookings", handleCreateBooking(svcs, idem))

	r.POST("/bookings/:id/payment", handleConfirmBooking(svcs))
	r.GET("/bookings/:id", handleGetBooking(svcs))

	// Operator API
	// TODO: add operator auth middleware
	op := r.Group("/operator")
	{
		op.POST("/locations", handleCreateLocation(svcs))
		op.GET("/locations", handleListLocations(svcs))
		op.DELETE("/locations/:id", handleDeleteLocation(svcs))

		op.POST("/routes", handleCreateRoute(svcs))
		op.GET("/routes", handleListRoutes(svcs))
		op.DELETE("/routes/:id", handleDeleteRoute(svcs))

		op.POST("/vehicles", handleCreateVehicle(svcs, operatorID))
		op.GET("/vehicles/:id", handleGetVehicle(svcs))
		op.DELETE("/vehicles/:id", handleDeleteVehicle(svcs))

		op.POST("/seat-templates", handleSaveTemplate(svcs))
		op.GET("/seat-templates", handleListTemplates(svcs))
		op.DELETE("/seat-templates/:id", handleDeleteTemplate(svcs))

		op.POST("/trips", handleScheduleTrip(svcs))
		op.POST("/trips/:id/cancel", handleCancelTrip(svcs))
		op.POST("/trips/:id/blocked-seats", handleBlockSeats(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Search bookable trips
// @Param    route_id  query  int     true  "Route ID"
// @Param    date      query  string  true  "YYYY-MM-DD"
// @Success  200  {array}   domain.Trip
// @Failure  404  {object}  ErrorResponse
// @Router   /trips/search [get]
func handleSearchTrips(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		routeID, err := strconv.ParseInt(c.Query("route_id"), 10, 64)
		if err != nil {
			badRequest(c, "invalid route_id")
			return
		}
		date, err := parseDate(c.Query("date"))
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}
		found, err := svcs.Query.SearchTrips(c.Request.Context(), routeID, date)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, found, "public, max-age=15", true)
	}
}

// @Summary  Get trip summary
// @Param    id  path  int  true  "Trip ID"
// @Success  200  {object}  query.TripSummary
// @Failure  404  {object}  ErrorResponse
// @Router   /trips/{id} [get]
func handleGetTrip(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		tripID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		t, err := svcs.Query.GetTrip(c.Request.Context(), tripID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, t, "public, max-age=60", true)
	}
}

// @Summary  Get availability counters
// @Param    id  path  int  true  "Trip ID"
// @Success  200  {object}  query.TripAvailability
// @Router   /trips/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		tripID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		avail, err := svcs.Query.Availability(c.Request.Context(), tripID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, avail, "public, max-age=15", true)
	}
}

// @Summary  Get seat map with per-seat status
// @Param    id  path  int  true  "Trip ID"
// @Success  200  {object}  query.SeatMap
// @Router   /trips/{id}/seatmap [get]
func handleGetSeatMap(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		tripID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		sm, err := svcs.Query.GetSeatMap(c.Request.Context(), tripID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, sm, "public, max-age=15", true)
	}
}

// @Summary  Create booking (idempotent)
// @Param    id  path  int  true  "Trip ID"
// @Param    req body  CreateBookingRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} BookingResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "seats taken / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /trips/{id}/bookings [post]
func handleCreateBooking(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		tripID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemBooking(tripID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		b, err := svcs.Booking.Create(c.Request.Context(), booking.CreateParams{
			TripID:         tripID,
			PassengerEmail: req.Email,
			PassengerName:  req.Name,
			SeatLabels:     req.SeatLabels,
			PickupPoint:    req.PickupPoint,
			DropPoint:      req.DropPoint,
		}, rlKey)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if isRateLimitedErr(err) {
				c.Header("Retry-After", "60")
				c.JSON(
					http.StatusTooManyRequests,
					ErrorResponse{Error: err.Error()},
				)
				return
			}
			respondErr(c, err)
			return
		}

		resp := toBookingResponse(b)

		if idemStorageKey != "" && idem != nil {
			payload, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(payload))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Confirm payment (mock) and finalize booking
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  200 {object} BookingResponse
// @Failure  409 {object} ErrorResponse "capacity exhausted / already finalized"
// @Router   /bookings/{id}/payment [post]
func handleConfirmBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid booking id")
			return
		}
		b, err := svcs.Booking.Confirm(c.Request.Context(), bookingID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toBookingResponse(b))
	}
}

// @Summary  Get booking
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  200 {object} BookingResponse
// @Router   /bookings/{id} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid booking id")
			return
		}
		b, err := svcs.Booking.Get(c.Request.Context(), bookingID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toBookingResponse(b))
	}
}

// @Summary  Create location
// @Param    req body  CreateLocationRequest true "payload"
// @Success  201 {object} IDResponse
// @Router   /operator/locations [post]
func handleCreateLocation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateLocationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Fleet.CreateLocation(c.Request.Context(), req.Name, req.District)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  List locations
// @Success  200 {array} domain.Location
// @Router   /operator/locations [get]
func handleListLocations(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Fleet.ListLocations(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Delete location
// @Param    id  path  int  true  "Location ID"
// @Success  204
// @Failure  409 {object} ErrorResponse "referenced by routes"
// @Router   /operator/locations/{id} [delete]
func handleDeleteLocation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Fleet.DeleteLocation(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create route
// @Param    req body  CreateRouteRequest true "payload"
// @Success  201 {object} IDResponse
// @Failure  400 {object} ErrorResponse "start equals end"
// @Router   /operator/routes [post]
func handleCreateRoute(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRouteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Fleet.CreateRoute(c.Request.Context(), fleet.RouteParams{
			StartLocationID: req.StartLocationID,
			EndLocationID:   req.EndLocationID,
			DurationMinutes: req.DurationMinutes,
			Stops:           req.Stops,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  List routes
// @Success  200 {array} domain.Route
// @Router   /operator/routes [get]
func handleListRoutes(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Fleet.ListRoutes(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Delete route
// @Param    id  path  int  true  "Route ID"
// @Success  204
// @Router   /operator/routes/{id} [delete]
func handleDeleteRoute(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Fleet.DeleteRoute(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Register vehicle
// @Param    req body  CreateVehicleRequest true "payload"
// @Success  201 {object} IDResponse
// @Failure  409 {object} ErrorResponse "plate already registered"
// @Router   /operator/vehicles [post]
func handleCreateVehicle(svcs *service.Services, operatorID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateVehicleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Fleet.CreateVehicle(c.Request.Context(), fleet.VehicleParams{
			PlateNumber:      req.PlateNumber,
			Type:             domain.VehicleType(req.Type),
			Columns:          req.Columns,
			Rows:             req.Rows,
			Amenities:        req.Amenities,
			ScheduleType:     domain.ScheduleType(req.ScheduleType),
			OperatorName:     req.OperatorName,
			OperatorWhatsapp: req.OperatorWhatsapp,
			OwnerID:          operatorID,
			Layout:           req.Layout,
			TemplateID:       req.TemplateID,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  Get vehicle
// @Param    id  path  int  true  "Vehicle ID"
// @Success  200 {object} domain.Vehicle
// @Router   /operator/vehicles/{id} [get]
func handleGetVehicle(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		v, err := svcs.Fleet.GetVehicle(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

// @Summary  Delete vehicle
// @Param    id  path  int  true  "Vehicle ID"
// @Success  204
// @Failure  409 {object} ErrorResponse "has scheduled trips"
// @Router   /operator/vehicles/{id} [delete]
func handleDeleteVehicle(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Fleet.DeleteVehicle(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create or update seat template
// @Param    req body  SaveTemplateRequest true "payload"
// @Success  201 {object} IDResponse
// @Router   /operator/seat-templates [post]
func handleSaveTemplate(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveTemplateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Fleet.SaveSeatTemplate(c.Request.Context(), fleet.TemplateParams{
			ID:      req.ID,
			Name:    req.Name,
			Columns: req.Columns,
			Rows:    req.Rows,
			Layout:  req.Layout,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  List seat templates
// @Success  200 {array} domain.SeatTemplate
// @Router   /operator/seat-templates [get]
func handleListTemplates(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Fleet.ListSeatTemplates(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Delete seat template
// @Param    id  path  int  true  "Template ID"
// @Success  204
// @Router   /operator/seat-templates/{id} [delete]
func handleDeleteTemplate(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Fleet.DeleteSeatTemplate(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Schedule trip
// @Param    req body  ScheduleTripRequest true "payload"
// @Success  201 {object} domain.Trip
// @Router   /operator/trips [post]
func handleScheduleTrip(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScheduleTripRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}
		t, err := svcs.Trips.Schedule(c.Request.Context(), trips.ScheduleParams{
			VehicleID:         req.VehicleID,
			RouteID:           req.RouteID,
			Date:              date,
			DepartureTime:     req.DepartureTime,
			PricePerSeatCents: req.PricePerSeatCents,
			BookingWindowDays: req.BookingWindowDays,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

// @Summary  Cancel trip
// @Param    id  path  int  true  "Trip ID"
// @Success  200 {object} domain.Trip
// @Failure  409 {object} ErrorResponse "inside 24h window / already final"
// @Router   /operator/trips/{id}/cancel [post]
func handleCancelTrip(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		t, err := svcs.Trips.Cancel(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// @Summary  Block seats on a trip
// @Param    id  path  int  true  "Trip ID"
// @Param    req body  BlockSeatsRequest true "payload"
// @Success  200 {object} domain.Trip
// @Failure  409 {object} ErrorResponse "labels actively claimed"
// @Router   /operator/trips/{id}/blocked-seats [post]
func handleBlockSeats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req BlockSeatsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		t, err := svcs.Trips.BlockSeats(c.Request.Context(), id, req.SeatLabels)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func isRateLimitedErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "rate limited")
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var seatConflict booking.SeatConflictError
	if errors.As(err, &seatConflict) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: seatConflict.Error()})
		return
	}

	var unknownSeat booking.UnknownSeatError
	if errors.As(err, &unknownSeat) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: unknownSeat.Error()})
		return
	}

	switch {
	// booking service
	case errors.Is(err, booking.ErrTripNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "trip not found"})
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
	case errors.Is(err, booking.ErrNoSeatsSelected):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no seats selected"})
	case errors.Is(err, booking.ErrSeatConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "seats already taken"})
	case errors.Is(err, booking.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "not enough seats remaining"})
	case errors.Is(err, booking.ErrAlreadyFinalized):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking already finalized"})
	case errors.Is(err, booking.ErrTripNotBookable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "trip is not open for booking"})
	case errors.Is(err, booking.ErrTooCloseToDeparture):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "too close to departure"})
	case errors.Is(err, booking.ErrOutsideBookingWindow):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "outside the advance-booking window"})
	// trips service
	case errors.Is(err, trips.ErrTripNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "trip not found"})
	case errors.Is(err, trips.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "vehicle not found"})
	case errors.Is(err, trips.ErrRouteNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "route not found"})
	case errors.Is(err, trips.ErrTooLateToCancel):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "too late to cancel"})
	case errors.Is(err, trips.ErrAlreadyFinal):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "trip already cancelled or completed"})
	case errors.Is(err, trips.ErrSeatsUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "cannot block claimed seats"})
	case errors.Is(err, trips.ErrUnknownSeat):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "seat label not in vehicle layout"})
	// fleet service
	case errors.Is(err, fleet.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "location not found"})
	case errors.Is(err, fleet.ErrRouteNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "route not found"})
	case errors.Is(err, fleet.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "vehicle not found"})
	case errors.Is(err, fleet.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "seat template not found"})
	case errors.Is(err, fleet.ErrSameEndpoints):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "route start and end must differ"})
	case errors.Is(err, fleet.ErrPlateConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "plate number already registered"})
	case errors.Is(err, fleet.ErrLocationInUse):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "location is referenced by routes"})
	case errors.Is(err, fleet.ErrRouteInUse):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "route is referenced by trips"})
	case errors.Is(err, fleet.ErrVehicleInUse):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "vehicle has scheduled trips"})
	// query service
	case errors.Is(err, query.ErrTripNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "trip not found"})
	case errors.Is(err, query.ErrRouteNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "route not found"})
	case errors.Is(err, query.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
