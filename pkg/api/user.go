package api

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type CreateUserResponse struct {
	User *User `json:"user"`
}

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type GetUserResponse struct {
	User *User `json:"user"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type UpdateUserRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
}

type UpdateUserResponse struct {
	User *User `json:"user"`
}

// GetUserActivityRequest asks for a user's expenses and settlements across all groups.
// Limit <= 0 returns everything.
type GetUserActivityRequest struct {
	UserID string `json:"user_id"`
	Limit  int32  `json:"limit,omitempty"`
}

type GetUserActivityResponse struct {
	Activities []*Activity `json:"activities"`
}
