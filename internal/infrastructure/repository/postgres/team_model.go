package postgres

import "time"

type teamTableModel struct {
	ID           string     `db:"id"`
	Name         string     `db:"name"`
	ShortName    string     `db:"short_name"`
	CaptainName  string     `db:"captain_name"`
	ContactEmail string     `db:"contact_email"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type teamInsertModel struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	ShortName    string    `db:"short_name"`
	CaptainName  string    `db:"captain_name"`
	ContactEmail string    `db:"contact_email"`
	CreatedAt    time.Time `db:"created_at"`
}
