package postgres

type playerTableModel struct {
	ID           string `db:"id"`
	TeamID       string `db:"team_id"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	JerseyNumber int    `db:"jersey_number"`
	IsActive     bool   `db:"is_active"`
}
