package utils

import (
	"database/sql"
	"errors"
	"fmt"
	"gbs/src/config"
	"gbs/src/db"
	"gbs/src/lib"
	"gbs/src/models"
	"gbs/src/types"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Statuses that hold a room. A confirmed reservation is intentionally not
// part of the overlap guard.
var activeReservationStatuses = []string{
	string(types.RESERVATION_PENDING),
	string(types.RESERVATION_PAID),
}

var codeGenerator = lib.NewCodeGenerator()

func parseStayDates(checkIn string, checkOut string) (time.Time, time.Time, int, error) {
	in, err := time.Parse(config.DATE_PARSE_FORMAT, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	out, err := time.Parse(config.DATE_PARSE_FORMAT, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	ci := lib.CanonicalInstant(in)
	co := lib.CanonicalInstant(out)
	nights := lib.NightCount(ci, co)
	if nights <= 0 {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("stay must cover at least one night")
	}
	return ci, co, nights, nil
}

// ResolveRooms batch-loads the referenced rooms and fails when any id is
// unknown.
func ResolveRooms(tx *gorm.DB, ids []uint) (map[uint]models.Room, error) {
	var rooms []models.Room
	err := tx.Where("id IN ?", ids).Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: room %d", types.ErrRoomNotFound, id)
		}
	}
	return byID, nil
}

// ValidateCapacity checks every requested room/guest pair against the room
// registry. Pure validation, no side effects.
func ValidateCapacity(items []types.ReservationRoomItem, rooms map[uint]models.Room) error {
	seen := make(map[uint]bool, len(items))
	for _, item := range items {
		room, ok := rooms[item.RoomID]
		if !ok {
			return fmt.Errorf("%w: room %d", types.ErrRoomNotFound, item.RoomID)
		}
		if seen[item.RoomID] {
			return fmt.Errorf("%w: room %d requested more than once", types.ErrCapacityExceeded, item.RoomID)
		}
		seen[item.RoomID] = true
		if item.Guests < 1 || item.Guests > room.Capacity {
			return fmt.Errorf("%w: room %d holds at most %d guests", types.ErrCapacityExceeded, item.RoomID, room.Capacity)
		}
	}
	return nil
}

// CheckRoomConflicts runs the overlap guard for the given rooms against the
// handle's snapshot: first active reservations on the half-open interval
// [checkIn, checkOut), then administrator blocks on any covered night.
func CheckRoomConflicts(tx *gorm.DB, roomIDs []uint, checkIn time.Time, checkOut time.Time) error {
	var conflicts int64
	err := tx.
		Model(&models.Reservation{}).
		Distinct("reservations.id").
		Joins("JOIN reservation_items ON reservation_items.reservation_id = reservations.id AND reservation_items.deleted_at IS NULL").
		Where("reservation_items.room_id IN ?", roomIDs).
		Where("reservations.status IN ?", activeReservationStatuses).
		Where("reservations.check_in < ? AND reservations.check_out > ?", checkOut, checkIn).
		Count(&conflicts).
		Error
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return types.ErrDatesNotAvailable
	}
	var blocked int64
	err = tx.
		Model(&models.RoomBlock{}).
		Where("room_id IN ?", roomIDs).
		Where("date >= ? AND date < ?", checkIn, checkOut).
		Count(&blocked).
		Error
	if err != nil {
		return err
	}
	if blocked > 0 {
		return types.ErrDatesNotAvailable
	}
	return nil
}

// ConflictingRoomIDs returns the subset of roomIDs that cannot host the
// range, either through an active reservation or an administrator block.
func ConflictingRoomIDs(tx *gorm.DB, roomIDs []uint, checkIn time.Time, checkOut time.Time) (map[uint]bool, error) {
	var reserved []uint
	err := tx.
		Model(&models.ReservationItem{}).
		Joins("JOIN reservations ON reservations.id = reservation_items.reservation_id AND reservations.deleted_at IS NULL").
		Where("reservation_items.room_id IN ?", roomIDs).
		Where("reservations.status IN ?", activeReservationStatuses).
		Where("reservations.check_in < ? AND reservations.check_out > ?", checkOut, checkIn).
		Distinct().
		Pluck("reservation_items.room_id", &reserved).
		Error
	if err != nil {
		return nil, err
	}
	var blocked []uint
	err = tx.
		Model(&models.RoomBlock{}).
		Where("room_id IN ?", roomIDs).
		Where("date >= ? AND date < ?", checkIn, checkOut).
		Distinct().
		Pluck("room_id", &blocked).
		Error
	if err != nil {
		return nil, err
	}
	busy := make(map[uint]bool, len(reserved)+len(blocked))
	for _, id := range reserved {
		busy[id] = true
	}
	for _, id := range blocked {
		busy[id] = true
	}
	return busy, nil
}

func allocPriority(room models.Room) int {
	if room.Capacity == 2 {
		return 0
	}
	return 1
}

// PlanAllocation splits guests across the free rooms: double rooms fill
// first, then the rest in ascending capacity. Display-only suggestion, not
// enforced at booking time.
func PlanAllocation(guests uint, free []models.Room) ([]types.ReservationRoomItem, error) {
	sorted := make([]models.Room, len(free))
	copy(sorted, free)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := allocPriority(sorted[i]), allocPriority(sorted[j])
		if pi != pj {
			return pi < pj
		}
		return sorted[i].Capacity < sorted[j].Capacity
	})
	items := make([]types.ReservationRoomItem, 0, len(sorted))
	remaining := guests
	for _, room := range sorted {
		if remaining == 0 {
			break
		}
		take := room.Capacity
		if remaining < take {
			take = remaining
		}
		items = append(items, types.ReservationRoomItem{RoomID: room.ID, Guests: take})
		remaining -= take
	}
	if remaining > 0 {
		return nil, types.ErrNotEnoughCapacity
	}
	return items, nil
}

// ResolveProperty looks a property up by numeric id or slug. An empty ref
// falls back to the first property, which is the whole inventory for a
// single-guesthouse deployment. Slug lookups go through redis first.
func ResolveProperty(ref string) (*models.Property, error) {
	d := db.GetDb()
	var property models.Property
	if ref == "" {
		if err := d.Order("id").First(&property).Error; err != nil {
			return nil, types.ErrPropertyNotFound
		}
		return &property, nil
	}
	if id, err := strconv.Atoi(ref); err == nil && id > 0 {
		if err := d.Where(&models.Property{ID: uint(id)}).First(&property).Error; err != nil {
			return nil, types.ErrPropertyNotFound
		}
		return &property, nil
	}
	cacheKey := fmt.Sprintf("property_slug:%s", ref)
	if cached, ok := lib.CacheGet(cacheKey); ok {
		if id, err := strconv.Atoi(cached); err == nil {
			if err := d.Where(&models.Property{ID: uint(id)}).First(&property).Error; err == nil {
				return &property, nil
			}
		}
	}
	if err := d.Where(&models.Property{Slug: ref}).First(&property).Error; err != nil {
		return nil, types.ErrPropertyNotFound
	}
	lib.CacheSet(cacheKey, strconv.FormatUint(uint64(property.ID), 10), 10*time.Minute)
	return &property, nil
}

// CheckAvailability answers the read-only availability query: which rooms
// are free for the range and how the party could be split across them.
// Nothing is persisted.
func CheckAvailability(query *types.AvailabilityQuery) (*types.AvailabilityResult, error) {
	checkIn, checkOut, nights, err := parseStayDates(query.CheckIn, query.CheckOut)
	if err != nil {
		return nil, err
	}
	property, err := ResolveProperty(query.Property)
	if err != nil {
		return nil, err
	}
	d := db.GetDb()
	var rooms []models.Room
	if err := d.Where(&models.Room{PropertyID: property.ID}).Order("id").Find(&rooms).Error; err != nil {
		return nil, err
	}
	roomIDs := make([]uint, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}
	busy := map[uint]bool{}
	if len(roomIDs) > 0 {
		busy, err = ConflictingRoomIDs(d, roomIDs, checkIn, checkOut)
		if err != nil {
			return nil, err
		}
	}
	free := make([]models.Room, 0, len(rooms))
	freeRooms := make([]types.AvailabilityRoom, 0, len(rooms))
	for _, room := range rooms {
		if busy[room.ID] {
			continue
		}
		free = append(free, room)
		freeRooms = append(freeRooms, types.AvailabilityRoom{ID: room.ID, Capacity: room.Capacity})
	}
	items, err := PlanAllocation(query.Guests, free)
	if err != nil {
		return nil, err
	}
	result := types.AvailabilityResult{
		Property: types.AvailabilityProperty{
			ID:                 property.ID,
			BasePricePerPerson: property.BasePricePerPerson,
		},
		FreeRooms: freeRooms,
		Suggested: types.AvailabilitySuggestion{
			Items: items,
			Price: types.PriceBreakdown{
				NightlyBasePerPerson: property.BasePricePerPerson,
				Nights:               uint(nights),
				Persons:              query.Guests,
				Total:                int64(nights) * int64(query.Guests) * property.BasePricePerPerson,
			},
		},
	}
	return &result, nil
}

// txMaxAttempts bounds how often a serializable transaction is re-run
// after losing a serialization race.
const txMaxAttempts = 3

// Postgres aborts the losing writer of two concurrent serializable
// transactions with SQLSTATE 40001.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

// retryOnDuplicate runs fn up to attempts times, retrying only uniqueness
// violations. Anything else propagates immediately.
func retryOnDuplicate[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	for range attempts {
		v, err := fn()
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return zero, err
		}
		log.Printf("Duplicate key on insert, retrying: %s\n", err.Error())
	}
	return zero, types.ErrCodeGenerationFailed
}

// CreateReservation is the single write path for new reservations. Capacity
// and property resolution run outside the transaction; the overlap guard
// and the insert share one serializable snapshot, so two overlapping
// requests for the same room can never both commit.
func CreateReservation(params *types.CreateReservationRequestBody) (*models.Reservation, error) {
	checkIn, checkOut, nights, err := parseStayDates(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}
	roomIDs := make([]uint, 0, len(params.Items))
	for _, item := range params.Items {
		roomIDs = append(roomIDs, item.RoomID)
	}

	d := db.GetDb()
	rooms, err := ResolveRooms(d, roomIDs)
	if err != nil {
		return nil, err
	}
	if err := ValidateCapacity(params.Items, rooms); err != nil {
		return nil, err
	}
	property, err := ResolveProperty(params.Property)
	if err != nil {
		return nil, err
	}

	var guests uint
	for _, item := range params.Items {
		guests += item.Guests
	}
	requestId := uuid.New()

	var reservation *models.Reservation
	createTx := func(tx *gorm.DB) error {
		if err := CheckRoomConflicts(tx, roomIDs, checkIn, checkOut); err != nil {
			return err
		}
		holdExpiresAt := time.Now().Add(config.HoldWindow())
		created, err := retryOnDuplicate(config.CODE_MAX_ATTEMPTS, func() (*models.Reservation, error) {
			code, err := codeGenerator.Generate()
			if err != nil {
				return nil, err
			}
			items := make([]models.ReservationItem, 0, len(params.Items))
			for _, item := range params.Items {
				items = append(items, models.ReservationItem{RoomID: item.RoomID, Guests: item.Guests})
			}
			r := models.Reservation{
				Code:           code,
				PropertyID:     property.ID,
				CheckIn:        checkIn,
				CheckOut:       checkOut,
				Nights:         uint(nights),
				Guests:         guests,
				PricePerPerson: property.BasePricePerPerson,
				PriceTotal:     int64(nights) * int64(guests) * property.BasePricePerPerson,
				Status:         string(types.RESERVATION_PENDING),
				Channel:        params.Channel,
				HoldExpiresAt:  &holdExpiresAt,
				RequestID:      &requestId,
				Items:          items,
			}
			if params.Customer != nil {
				r.Customer = &params.Customer
			}
			if params.Payment != nil {
				r.Payment = &params.Payment
			}
			// Savepoint per attempt so a duplicate code does not poison
			// the outer transaction.
			if err := tx.Transaction(func(tx2 *gorm.DB) error {
				return tx2.Create(&r).Error
			}); err != nil {
				return nil, err
			}
			return &r, nil
		})
		if err != nil {
			return err
		}
		reservation = created
		return nil
	}
	// A serialization failure means a concurrent writer committed first,
	// before this snapshot could observe its rows. Re-running the
	// transaction lets the overlap guard see the committed winner and
	// report the conflict as a date clash rather than an internal error.
	for attempt := 1; ; attempt++ {
		err = d.Transaction(createTx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err == nil || !isSerializationFailure(err) {
			break
		}
		if attempt >= txMaxAttempts {
			err = types.ErrDatesNotAvailable
			break
		}
		log.Printf("Serialization conflict while creating reservation, retrying: %s\n", err.Error())
	}
	if err != nil {
		log.Printf("CreateReservation failed: %s\n", err.Error())
		return nil, err
	}

	return reservation, nil
}

// UpdateReservationStatus applies an administrator transition to the
// reservation's state machine. paid and cancelled are terminal.
func UpdateReservationStatus(code string, next types.ReservationStatus) (*models.Reservation, error) {
	d := db.GetDb()
	var reservation models.Reservation
	err := d.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where(&models.Reservation{Code: code}).
			First(&reservation).
			Error
		if err != nil {
			return err
		}
		current := types.ReservationStatus(reservation.Status)
		if !types.CanTransition(current, next) {
			return fmt.Errorf("cannot transition reservation %s from %s to %s", code, current, next)
		}
		err = tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{ID: reservation.ID}).
			Update("status", string(next)).
			Error
		if err != nil {
			return err
		}
		reservation.Status = string(next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// PurgeExpiredHolds removes reservations still pending past their hold
// window, returning their rooms to the pool. Runs from the scheduler.
func PurgeExpiredHolds() (int64, error) {
	d := db.GetDb()
	var purged int64
	err := d.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		err := tx.
			Model(&models.Reservation{}).
			Where("status = ?", string(types.RESERVATION_PENDING)).
			Where("hold_expires_at < ?", time.Now()).
			Pluck("id", &ids).
			Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("reservation_id IN ?", ids).Delete(&models.ReservationItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Reservation{}).Error; err != nil {
			return err
		}
		purged = int64(len(ids))
		return nil
	})
	return purged, err
}
