package user

type Role string

const (
	RoleProvider  Role = "provider"
	RoleRequester Role = "requester"
)
