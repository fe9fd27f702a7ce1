package httpapi

type loginRequest struct {
	Username string `json:"username" validate:"required,max=40"`
	Password string `json:"password" validate:"required,max=72"`
}

type teamRequest struct {
	Name         string `json:"name" validate:"required,max=80"`
	ShortName    string `json:"short_name" validate:"omitempty,max=8"`
	CaptainName  string `json:"captain_name" validate:"omitempty,max=80"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

type playerRequest struct {
	TeamID       string `json:"team_id" validate:"required"`
	FirstName    string `json:"first_name" validate:"required,max=60"`
	LastName     string `json:"last_name" validate:"required,max=60"`
	JerseyNumber int    `json:"jersey_number" validate:"min=0,max=99"`
	IsActive     *bool  `json:"is_active"`
}

type matchRequest struct {
	Competition string `json:"competition" validate:"omitempty,oneof=league cup playoff"`
	Round       int    `json:"round" validate:"min=0"`
	BracketSlot int    `json:"bracket_slot" validate:"min=0"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	Location    string `json:"location" validate:"omitempty,max=120"`
	HomeTeamID  string `json:"home_team_id" validate:"required"`
	AwayTeamID  string `json:"away_team_id" validate:"required,nefield=HomeTeamID"`
	RefereeID   string `json:"referee_id"`
	Status      string `json:"status" validate:"omitempty,oneof=scheduled played cancelled"`
	HomeScore   *int   `json:"home_score" validate:"omitempty,min=0"`
	AwayScore   *int   `json:"away_score" validate:"omitempty,min=0"`
}

type lineupRequest struct {
	TeamID    string   `json:"team_id" validate:"required"`
	PlayerIDs []string `json:"player_ids" validate:"required,min=1,max=12,dive,required"`
}

type matchEventRequest struct {
	Type     string `json:"type" validate:"required,oneof=goal own_goal yellow_card red_card"`
	PlayerID string `json:"player_id" validate:"required"`
	TeamID   string `json:"team_id" validate:"required"`
	Minute   int    `json:"minute" validate:"min=0,max=130"`
}

type resultRequest struct {
	HomeScore int                 `json:"home_score" validate:"min=0,max=99"`
	AwayScore int                 `json:"away_score" validate:"min=0,max=99"`
	Events    []matchEventRequest `json:"events" validate:"omitempty,dive"`
}

type userRequest struct {
	Username string `json:"username" validate:"required,min=3,max=40"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin referee player_manager"`
	TeamID   string `json:"team_id" validate:"required_if=Role player_manager"`
}

type suspensionRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Reason   string `json:"reason" validate:"required,max=200"`
	Matches  int    `json:"matches" validate:"required,min=1,max=20"`
}

type transactionRequest struct {
	TeamID      string `json:"team_id" validate:"required"`
	Kind        string `json:"kind" validate:"required,oneof=fee fine payment"`
	Amount      string `json:"amount" validate:"required,numeric"`
	Description string `json:"description" validate:"omitempty,max=200"`
	OccurredOn  string `json:"occurred_on" validate:"omitempty,datetime=2006-01-02"`
}
