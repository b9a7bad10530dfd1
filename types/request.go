package types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateFaqRequest struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Body     string `json:"body"`
	Category string `json:"category"`
	Access   string `json:"access"`
	Status   string `json:"status"`
}

type UpdateFaqRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Body     string `json:"body"`
	Category string `json:"category"`
	Access   string `json:"access"`
	Status   string `json:"status"`
}
