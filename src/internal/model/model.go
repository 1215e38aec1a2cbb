package model

type Event interface {
	GetId() string
}

type PageRequest struct {
	Page int `query:"page" validate:"min=1"`
	Size int `query:"size" validate:"min=1,max=100"`
}

type PageMetadata struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItem  int64 `json:"total_item"`
	TotalPages int64 `json:"total_pages"`
}
