package models

import "time"

// Локальные формы сущностей project-management хранилища.
// Это те структуры, в которые сериализуется Entity.Payload;
// wire-формат удаленной CRM описан в pkg/api.

// Project представляет проект в локальной форме
type Project struct {
	ID          string `json:"id"`          // ID уникальный идентификатор (общий с CRM)
	Name        string `json:"name"`        // Name название проекта
	Description string `json:"description"` // Description описание проекта
	Status      string `json:"status"`      // Status статус: active, archived, completed
	ClientID    string `json:"client_id"`   // ClientID клиент-владелец проекта
	OwnerID     string `json:"owner_id"`    // OwnerID ответственный пользователь
}

// Task представляет задачу в локальной форме
type Task struct {
	DueDate     time.Time `json:"due_date,omitempty"` // DueDate срок выполнения
	ID          string    `json:"id"`                 // ID уникальный идентификатор (общий с CRM)
	ProjectID   string    `json:"project_id"`         // ProjectID проект задачи
	AssigneeID  string    `json:"assignee_id"`        // AssigneeID исполнитель
	Title       string    `json:"title"`              // Title заголовок задачи (в CRM: subject)
	Description string    `json:"description"`        // Description описание (в CRM: body)
	Status      string    `json:"status"`             // Status статус: todo, in_progress, done (в CRM: state)
	Priority    string    `json:"priority"`           // Priority приоритет: low, medium, high, urgent
}

// User представляет пользователя в локальной форме
type User struct {
	ID     string `json:"id"`     // ID уникальный идентификатор (общий с CRM)
	Email  string `json:"email"`  // Email адрес электронной почты
	Name   string `json:"name"`   // Name полное имя (в CRM: full_name)
	Role   string `json:"role"`   // Role роль пользователя
	Active bool   `json:"active"` // Active флаг активности
}

// Client представляет клиента (компанию) в локальной форме
type Client struct {
	ID      string `json:"id"`      // ID уникальный идентификатор (общий с CRM)
	Name    string `json:"name"`    // Name название компании (в CRM: company)
	Email   string `json:"email"`   // Email контактный адрес
	Phone   string `json:"phone"`   // Phone контактный телефон
	Website string `json:"website"` // Website сайт компании
}

// Comment представляет комментарий в локальной форме
type Comment struct {
	ID       string `json:"id"`        // ID уникальный идентификатор (общий с CRM)
	TaskID   string `json:"task_id"`   // TaskID задача комментария
	AuthorID string `json:"author_id"` // AuthorID автор комментария
	Body     string `json:"body"`      // Body текст комментария
}
