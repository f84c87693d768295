package models

import "time"

// Progress — запись прохождения курса пользователем, одна на пару
// (пользователь, курс). CompletedLectures — множество идентификаторов
// завершённых лекций.
type Progress struct {
	ID                int       `json:"id"`
	UserUID           string    `json:"user_uid"`
	CourseID          string    `json:"course_id"`
	CompletedLectures []string  `json:"completed_lectures"`
	CreatedAt         time.Time `json:"created_at"`
}

// ProgressStats — агрегированная статистика прохождения курса.
// Percentage равен нулю, если в курсе нет лекций.
type ProgressStats struct {
	Percentage        float64   `json:"course_progress_percentage"`
	CompletedLectures int       `json:"completed_lectures"`
	AllLectures       int       `json:"all_lectures"`
	Progress          *Progress `json:"progress"`
}
