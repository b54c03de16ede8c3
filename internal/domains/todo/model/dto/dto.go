package dto

import (
	"mytodos/internal/domains/todo/model"
)

type CreateTodoRequest struct {
	Title string `form:"title" json:"title" validate:"required,notblank"`
}

type CreateTodoResponse struct {
	ID string `json:"id"`
}

func (r *CreateTodoResponse) FromModel(model model.Todo) {
	r.ID = model.IDString()
}

type TodoResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completedAt"`
	UpdatedAt   *string `json:"updatedAt"`
}

func (r *TodoResponse) FromModel(model model.Todo) {
	r.ID = model.IDString()
	r.Title = model.Title
	r.Completed = model.Completed
	r.CompletedAt = timestamp(model.CompletedAt)
	r.UpdatedAt = timestamp(model.UpdatedAt)
}

func timestamp(ts *model.Timestamp) *string {
	if ts == nil {
		return nil
	}

	value := ts.String()

	return &value
}

// TodosFromModels maps stored documents to the list payload. The result is never nil
// so an empty collection serialises as [].
func TodosFromModels(models []model.Todo) []TodoResponse {
	res := make([]TodoResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
