package bookings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"campbnb-backend/internal/domain"
	"campbnb-backend/internal/pkg/pagination"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBookingsTest(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Listing{},
		&domain.Booking{}, &domain.BookingEvent{},
	))
	return &Service{DB: db}, db
}

func createUser(t *testing.T, db *gorm.DB, email string, isHost bool) domain.User {
	t.Helper()
	user := domain.User{Email: email, PasswordHash: "hashed", Name: "Test User", IsHost: isHost}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createListing(t *testing.T, db *gorm.DB, hostID uuid.UUID, price float64, maxGuests int) domain.Listing {
	t.Helper()
	listing := domain.Listing{
		Title:       "Lakeside Cabin Retreat",
		Description: "A quiet cabin on the shore with a private dock.",
		Type:        domain.TypeCabin,
		Price:       price,
		Location:    "Banff, Alberta",
		Province:    "Alberta",
		Images:      domain.StringList{"https://example.com/cabin.jpg"},
		Amenities:   domain.StringList{"Firepit", "Wifi"},
		MaxGuests:   maxGuests,
		Bedrooms:    1,
		Beds:        2,
		Bathrooms:   1,
		CleaningFee: domain.DefaultCleaningFee,
		IsActive:    true,
		HostID:      hostID,
	}
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

func TestCreateBooking(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	booking, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID,
		CheckIn:   day(10),
		CheckOut:  day(12),
		Adults:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	assert.Equal(t, 2, booking.Guests)
	assert.Equal(t, 100.0, booking.NightlyRate)
	assert.Equal(t, 35.0, booking.CleaningFee)
	assert.Equal(t, 24.0, booking.ServiceFee)
	assert.Equal(t, 26.0, booking.Taxes)
	assert.Equal(t, 285.0, booking.TotalPrice)

	events, err := svc.Events(context.Background(), booking.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventBookingCreated, events[0].EventType)
	require.NotNil(t, events[0].ActorID)
	assert.Equal(t, guest.ID, *events[0].ActorID)
}

func TestCreateBooking_ListingNotFound(t *testing.T) {
	svc, db := setupBookingsTest(t)
	guest := createUser(t, db, "guest@example.com", false)

	_, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: uuid.New(),
		CheckIn:   day(10),
		CheckOut:  day(12),
		Adults:    1,
	})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestCreateBooking_CapacityExceeded(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	listing := createListing(t, db, host.ID, 100, 2)

	_, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID,
		CheckIn:   day(10),
		CheckOut:  day(12),
		Adults:    2,
		Children:  1,
	})
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 2, capErr.MaxGuests)
	assert.Equal(t, "Maximum 2 guests allowed", capErr.Error())
}

func TestCreateBooking_InfantsAndPetsDontCount(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	listing := createListing(t, db, host.ID, 100, 2)

	booking, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID,
		CheckIn:   day(10),
		CheckOut:  day(12),
		Adults:    2,
		Infants:   3,
		Pets:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, booking.Guests)
}

func TestCreateBooking_InvalidDateRange(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	_, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID,
		CheckIn:   day(12),
		CheckOut:  day(12),
		Adults:    1,
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateBooking_DateConflicts(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	other := createUser(t, db, "other@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	_, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID, CheckIn: day(10), CheckOut: day(15), Adults: 1,
	})
	require.NoError(t, err)

	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"inside existing stay", day(12), day(13)},
		{"straddles existing stay", day(8), day(20)},
		{"back-to-back after checkout", day(15), day(18)},
		{"back-to-back before checkin", day(7), day(10)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), other.ID, CreateBookingInput{
				ListingID: listing.ID, CheckIn: tc.checkIn, CheckOut: tc.checkOut, Adults: 1,
			})
			assert.ErrorIs(t, err, ErrDatesUnavailable)
		})
	}

	// Fully clear of the existing stay.
	_, err = svc.Create(context.Background(), other.ID, CreateBookingInput{
		ListingID: listing.ID, CheckIn: day(16), CheckOut: day(18), Adults: 1,
	})
	require.NoError(t, err)
}

func TestCreateBooking_CancelledDoesNotBlock(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	first, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID, CheckIn: day(10), CheckOut: day(15), Adults: 1,
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), first.ID, guest.ID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID, CheckIn: day(10), CheckOut: day(15), Adults: 1,
	})
	require.NoError(t, err)
}

func TestCancelBooking(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	stranger := createUser(t, db, "stranger@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	booking, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID, CheckIn: day(10), CheckOut: day(12), Adults: 1,
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	cancelled, err := svc.Cancel(context.Background(), booking.ID, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)

	_, err = svc.Cancel(context.Background(), booking.ID, guest.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	events, err := svc.Events(context.Background(), booking.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventBookingCancelled, events[1].EventType)
}

func TestCancelBooking_CompletedGuard(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	booking, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID, CheckIn: day(10), CheckOut: day(12), Adults: 1,
	})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), booking.ID, host.ID, day(13))
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID, guest.ID)
	assert.ErrorIs(t, err, ErrCancelCompleted)
}

func TestRejectBooking(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	booking, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID, CheckIn: day(10), CheckOut: day(12), Adults: 1,
	})
	require.NoError(t, err)

	// Only the host may reject.
	_, err = svc.Reject(context.Background(), booking.ID, guest.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	rejected, err := svc.Reject(context.Background(), booking.ID, host.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, rejected.Status)

	events, err := svc.Events(context.Background(), booking.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventBookingRejected, events[1].EventType)
}

func TestConfirmBooking_HostOnly(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	booking, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID, CheckIn: day(10), CheckOut: day(12), Adults: 1,
	})
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), booking.ID, guest.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	confirmed, err := svc.Confirm(context.Background(), booking.ID, host.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, confirmed.Status)
}

func TestCompleteBooking_Guards(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	booking, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID, CheckIn: day(10), CheckOut: day(12), Adults: 1,
	})
	require.NoError(t, err)

	// Before check-out has passed.
	_, err = svc.Complete(context.Background(), booking.ID, host.ID, day(11))
	assert.ErrorIs(t, err, ErrNotCheckedOut)

	// Guest cannot complete.
	_, err = svc.Complete(context.Background(), booking.ID, guest.ID, day(13))
	assert.ErrorIs(t, err, ErrNotAuthorized)

	completed, err := svc.Complete(context.Background(), booking.ID, host.ID, day(13))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, completed.Status)

	// Cancelled bookings cannot be completed.
	_, err = svc.Cancel(context.Background(), booking.ID, guest.ID)
	assert.ErrorIs(t, err, ErrCancelCompleted)
	other, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID, CheckIn: day(20), CheckOut: day(22), Adults: 1,
	})
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), other.ID, guest.ID)
	require.NoError(t, err)
	_, err = svc.Complete(context.Background(), other.ID, host.ID, day(23))
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestGetBookingByID_Access(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	stranger := createUser(t, db, "stranger@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	booking, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: listing.ID, CheckIn: day(10), CheckOut: day(12), Adults: 1,
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), booking.ID, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)
	require.NotNil(t, got.Listing)
	assert.Equal(t, listing.ID, got.Listing.ID)

	_, err = svc.GetByID(context.Background(), booking.ID, host.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), booking.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.GetByID(context.Background(), uuid.New(), guest.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListBookings(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
			ListingID: listing.ID,
			CheckIn:   day(1 + i*5),
			CheckOut:  day(3 + i*5),
			Adults:    1,
		})
		require.NoError(t, err)
	}

	bookings, total, err := svc.ListForUser(context.Background(), guest.ID, "", pagination.Params{Page: 1, Limit: 2, Skip: 0})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, bookings, 2)

	hostBookings, hostTotal, err := svc.ListForHost(context.Background(), host.ID, domain.BookingConfirmed, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 3, hostTotal)
	assert.Len(t, hostBookings, 3)

	// Host with no listings sees nothing.
	empty, emptyTotal, err := svc.ListForHost(context.Background(), guest.ID, "", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 0, emptyTotal)
	assert.Empty(t, empty)
}

func TestListBookings_StatusFilter(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	listing := createListing(t, db, host.ID, 100, 4)

	var ids []uuid.UUID
	for i := 0; i < 2; i++ {
		b, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
			ListingID: listing.ID,
			CheckIn:   day(1 + i*5),
			CheckOut:  day(3 + i*5),
			Adults:    1,
		})
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}
	_, err := svc.Cancel(context.Background(), ids[0], guest.ID)
	require.NoError(t, err)

	cancelled, total, err := svc.ListForUser(context.Background(), guest.ID, domain.BookingCancelled, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, cancelled, 1)
	assert.Equal(t, ids[0], cancelled[0].ID)
}

func TestCreateBooking_PerListingConflictsOnly(t *testing.T) {
	svc, db := setupBookingsTest(t)
	host := createUser(t, db, "host@example.com", true)
	guest := createUser(t, db, "guest@example.com", false)
	a := createListing(t, db, host.ID, 100, 4)

	b := createListing2(t, db, host.ID)

	_, err := svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: a.ID, CheckIn: day(10), CheckOut: day(15), Adults: 1,
	})
	require.NoError(t, err)

	// Same dates on a different listing are fine.
	_, err = svc.Create(context.Background(), guest.ID, CreateBookingInput{
		ListingID: b.ID, CheckIn: day(10), CheckOut: day(15), Adults: 1,
	})
	require.NoError(t, err)
}

func createListing2(t *testing.T, db *gorm.DB, hostID uuid.UUID) domain.Listing {
	t.Helper()
	listing := domain.Listing{
		Title:       fmt.Sprintf("Forest Yurt %s", uuid.NewString()[:8]),
		Description: "A canvas yurt deep in the old growth forest.",
		Type:        domain.TypeYurt,
		Price:       80,
		Location:    "Tofino, British Columbia",
		Province:    "British Columbia",
		Images:      domain.StringList{"https://example.com/yurt.jpg"},
		MaxGuests:   4,
		Bedrooms:    1,
		Beds:        1,
		Bathrooms:   1,
		CleaningFee: domain.DefaultCleaningFee,
		IsActive:    true,
		HostID:      hostID,
	}
	require.NoError(t, db.Create(&listing).Error)
	return listing
}
