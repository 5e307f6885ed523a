package dto

// CreateResponse is the body returned after a successful create.
type CreateResponse struct {
	Message   string `json:"message"`
	StudentID int64  `json:"student_id"`
	Data      any    `json:"data"`
}

// UpdateResponse is the body returned after a successful update.
type UpdateResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
