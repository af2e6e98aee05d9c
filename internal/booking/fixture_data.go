package booking

import (
	"time"

	"github.com/Mitch2826/Hostel-Hunt/internal/model"
)

// Seed data for the fixture store.

const fixtureUserID = 1

var fixtureFavorites = []int{1, 3}

var fixtureHostels = []model.Hostel{
	{
		ID:          1,
		Name:        "Sunset Backpackers",
		Location:    "Barcelona, Spain",
		Price:       25,
		Rating:      4.5,
		Amenities:   []string{"WiFi", "Kitchen", "Bar", "Lockers"},
		Description: "A vibrant hostel in the heart of Barcelona with rooftop views.",
		Image:       "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=400",
	},
	{
		ID:          2,
		Name:        "Mountain View Lodge",
		Location:    "Bern, Switzerland",
		Price:       35,
		Rating:      4.8,
		Amenities:   []string{"WiFi", "Breakfast", "Laundry", "Mountain Views"},
		Description: "Cozy hostel with stunning alpine views and modern facilities.",
		Image:       "https://images.unsplash.com/photo-1571003123894-1f0594d2b5d9?w=400",
	},
	{
		ID:          3,
		Name:        "City Central Hostel",
		Location:    "Amsterdam, Netherlands",
		Price:       28,
		Rating:      4.3,
		Amenities:   []string{"WiFi", "Bike Rental", "Bar", "Tours"},
		Description: "Perfect location for exploring Amsterdam's canals and culture.",
		Image:       "https://images.unsplash.com/photo-1555854877-bab0e564b8d5?w=400",
	},
}

var fixtureBookings = []model.Booking{
	{
		ID:          1,
		HostelID:    1,
		UserID:      fixtureUserID,
		CheckIn:     model.NewDate(2024, time.February, 15),
		CheckOut:    model.NewDate(2024, time.February, 18),
		Guests:      2,
		TotalPrice:  75,
		Status:      model.StatusConfirmed,
		BookingDate: model.NewDate(2024, time.January, 20),
	},
	{
		ID:          2,
		HostelID:    2,
		UserID:      fixtureUserID,
		CheckIn:     model.NewDate(2024, time.March, 10),
		CheckOut:    model.NewDate(2024, time.March, 15),
		Guests:      1,
		TotalPrice:  175,
		Status:      model.StatusUpcoming,
		BookingDate: model.NewDate(2024, time.January, 25),
	},
	{
		ID:          3,
		HostelID:    3,
		UserID:      fixtureUserID,
		CheckIn:     model.NewDate(2024, time.January, 5),
		CheckOut:    model.NewDate(2024, time.January, 8),
		Guests:      3,
		TotalPrice:  84,
		Status:      model.StatusCompleted,
		BookingDate: model.NewDate(2023, time.December, 15),
	},
}
