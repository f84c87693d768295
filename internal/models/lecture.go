package models

import "time"

// Lecture представляет лекцию курса. CourseID указывает на владеющий курс,
// доступ к лекции определяется подпиской на этот курс.
type Lecture struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyLecture используется для приёма данных из JSON-запроса
// при добавлении лекции администратором.
type DummyLecture struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Position    int    `json:"position" validate:"gte=0"`
}
