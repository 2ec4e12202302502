package ui

// State is one node of the navigation state machine.
type State int

const (
	StateMainMenu State = iota
	StateRules
	StateRegistration
	StateLogin
	StateAdminKey
	StateAdminMenu
	StateUserMenu
	StatePlacesList
	StatePlaceDetail
	StatePlaceActions
	StatePlaceAdd
	StatePlaceEdit
	StateReviewsMenu
	StateReviewList
	StateReviewPlacePick
	StateReviewAdd
	StateUserList
	StateSettings
	StateConfirm
	StateExit

	// stay is returned by a screen that keeps the current state and its input.
	stay State = -1
)

var stateNames = map[State]string{
	StateMainMenu:        "main_menu",
	StateRules:           "rules",
	StateRegistration:    "registration",
	StateLogin:           "login",
	StateAdminKey:        "admin_key",
	StateAdminMenu:       "admin_menu",
	StateUserMenu:        "user_menu",
	StatePlacesList:      "places_list",
	StatePlaceDetail:     "place_detail",
	StatePlaceActions:    "place_actions",
	StatePlaceAdd:        "place_add",
	StatePlaceEdit:       "place_edit",
	StateReviewsMenu:     "reviews_menu",
	StateReviewList:      "review_list",
	StateReviewPlacePick: "review_place_pick",
	StateReviewAdd:       "review_add",
	StateUserList:        "user_list",
	StateSettings:        "settings",
	StateConfirm:         "confirm",
	StateExit:            "exit",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
