package api

import (
	"encoding/json"
	"time"
)

// Wire-формат ресурсов удаленной CRM.
// Имена полей следуют контракту CRM API и отличаются от локальных моделей;
// маппинг между формами выполняют gateways.

// Project представляет проект в wire-формате CRM
type Project struct {
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	State       string    `json:"state"`     // active, archived, completed
	ClientID    string    `json:"client_id"` // владелец проекта в CRM
	OwnerID     string    `json:"owner_id"`  // ответственный пользователь
	Archived    bool      `json:"archived"`
}

// Task представляет задачу в wire-формате CRM
type Task struct {
	UpdatedAt  time.Time `json:"updated_at"`
	CreatedAt  time.Time `json:"created_at"`
	DueOn      time.Time `json:"due_on,omitempty"`
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	AssigneeID string    `json:"assignee_id,omitempty"`
	Subject    string    `json:"subject"` // локально: title
	Body       string    `json:"body,omitempty"`
	State      string    `json:"state"`    // локально: status
	Priority   string    `json:"priority"` // low, medium, high, urgent
	Archived   bool      `json:"archived"`
}

// User представляет пользователя в wire-формате CRM
type User struct {
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"` // локально: name
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
}

// Client представляет клиента (компанию) в wire-формате CRM
type Client struct {
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Company   string    `json:"company"` // локально: name
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Website   string    `json:"website,omitempty"`
	Archived  bool      `json:"archived"`
}

// Comment представляет комментарий в wire-формате CRM
type Comment struct {
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	Deleted   bool      `json:"deleted"`
}

// ListResponse представляет постраничный ответ GET /api/{version}/{family}.
// Data содержит сырые объекты ресурса: декодирование в конкретный wire-тип
// выполняет gateway соответствующего семейства.
type ListResponse struct {
	Data       []json.RawMessage `json:"data"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// HasMore возвращает true, если за текущей страницей есть следующая
func (r *ListResponse) HasMore() bool {
	return r.Page < r.TotalPages
}
