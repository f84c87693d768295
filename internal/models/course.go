package models

import "time"

// Course представляет курс в каталоге. Цена хранится в целых единицах
// валюты (major units), перевод в минорные единицы выполняется при
// создании платёжной сессии.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedBy   string    `json:"created_by"`
	Duration    int       `json:"duration"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyCourse используется для приёма данных из JSON-запроса
// при создании курса администратором.
type DummyCourse struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	CreatedBy   string `json:"created_by" validate:"required"`
	Duration    int    `json:"duration" validate:"required,gt=0"`
	Price       int64  `json:"price" validate:"required,gt=0"`
}
