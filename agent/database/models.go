package database

import (
	"time"

	"github.com/uptrace/bun"
)

type Customer struct {
	bun.BaseModel `bun:"table:customer"`

	CustomerID int64  `bun:"customer_id,pk,autoincrement"`
	FirstName  string `bun:"first_name"`
	LastName   string `bun:"last_name"`
	Phone      string `bun:"phone"`
	Email      string `bun:"email"`
	// Support rep assigned to the customer.
	SupportRepID int64 `bun:"support_rep_id"`
}

type Employee struct {
	bun.BaseModel `bun:"table:employee"`

	EmployeeID int64  `bun:"employee_id,pk,autoincrement"`
	FirstName  string `bun:"first_name"`
	LastName   string `bun:"last_name"`
	Title      string `bun:"title"`
	Email      string `bun:"email"`
}

type Invoice struct {
	bun.BaseModel `bun:"table:invoice"`

	InvoiceID      int64     `bun:"invoice_id,pk,autoincrement"`
	CustomerID     int64     `bun:"customer_id"`
	InvoiceDate    time.Time `bun:"invoice_date"`
	BillingAddress string    `bun:"billing_address"`
	Total          float64   `bun:"total"`
}

type InvoiceLine struct {
	bun.BaseModel `bun:"table:invoice_line"`

	InvoiceLineID int64   `bun:"invoice_line_id,pk,autoincrement"`
	InvoiceID     int64   `bun:"invoice_id"`
	TrackID       int64   `bun:"track_id"`
	UnitPrice     float64 `bun:"unit_price"`
	Quantity      int     `bun:"quantity"`
}

type Artist struct {
	bun.BaseModel `bun:"table:artist"`

	ArtistID int64  `bun:"artist_id,pk,autoincrement"`
	Name     string `bun:"name"`
}

type Album struct {
	bun.BaseModel `bun:"table:album"`

	AlbumID  int64  `bun:"album_id,pk,autoincrement"`
	ArtistID int64  `bun:"artist_id"`
	Title    string `bun:"title"`
}

type Genre struct {
	bun.BaseModel `bun:"table:genre"`

	GenreID int64  `bun:"genre_id,pk,autoincrement"`
	Name    string `bun:"name"`
}

type Track struct {
	bun.BaseModel `bun:"table:track"`

	TrackID   int64   `bun:"track_id,pk,autoincrement"`
	AlbumID   int64   `bun:"album_id"`
	GenreID   int64   `bun:"genre_id"`
	Name      string  `bun:"name"`
	UnitPrice float64 `bun:"unit_price"`
}
