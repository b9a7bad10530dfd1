package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
