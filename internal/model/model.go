// Package model holds the data types shared between the stores and
// the remote API client.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Identity is the authenticated user as returned by the auth endpoints.
type Identity struct {
	ID    int    `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// BookingStatus is the lifecycle state of a booking. The remote
// service owns transitions; clients only request cancellation.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusUpcoming  BookingStatus = "upcoming"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking is a reservation of a hostel stay. The authoritative copy
// lives on the remote service; local copies are caches.
type Booking struct {
	ID          int           `json:"id"`
	HostelID    int           `json:"hostelId"`
	UserID      int           `json:"userId"`
	CheckIn     Date          `json:"checkIn"`
	CheckOut    Date          `json:"checkOut"`
	Guests      int           `json:"guests"`
	TotalPrice  float64       `json:"totalPrice"`
	Status      BookingStatus `json:"status"`
	BookingDate Date          `json:"bookingDate"`
}

// BookingRequest is the payload accepted by the create endpoint.
type BookingRequest struct {
	HostelID   int     `json:"hostelId"`
	CheckIn    Date    `json:"checkIn"`
	CheckOut   Date    `json:"checkOut"`
	Guests     int     `json:"guests"`
	TotalPrice float64 `json:"totalPrice"`
}

// Hostel is a read-only listing fetched on demand and never cached
// past the request that produced it.
type Hostel struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Amenities   []string `json:"amenities,omitempty"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// Date is a calendar day serialised as "2006-01-02", the wire format
// the booking endpoints use.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}
