package types

const (
	USER_ROLE_SUBSCRIBER    = "subscriber"
	USER_ROLE_CONTRIBUTOR   = "contributor"
	USER_ROLE_AUTHOR        = "author"
	USER_ROLE_EDITOR        = "editor"
	USER_ROLE_ADMINISTRATOR = "administrator"
)

// User is a viewer account on the hosting platform. The FAQ system only
// reads it: the role gates restricted documents and feeds the viewer
// context block of the AI prompt.
type User struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Username    string `json:"username" bson:"username"`
	Password    string `json:"password" bson:"password"`
	DisplayName string `json:"display_name" bson:"display_name"`
	Role        string `json:"role" bson:"role"`
	CreatedAt   int64  `json:"created_at" bson:"created_at"`
	UpdatedAt   int64  `json:"updated_at" bson:"updated_at"`
}
