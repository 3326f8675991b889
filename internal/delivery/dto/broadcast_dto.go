package dto

type CreateBroadcastRequest struct {
	Title    string `json:"title" validate:"required,min=2,max=200"`
	Body     string `json:"body" validate:"required"`
	Audience string `json:"audience" validate:"required,oneof=all doctors patients"`
}
