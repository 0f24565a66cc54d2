package domain

import "time"

const (
	DifficultyEasy   = "easy"
	DifficultyNormal = "normal"
	DifficultyHard   = "hard"
)

type Todo struct {
	TodoID     string    `json:"id" dynamodbav:"todo_id"`
	OwnerID    string    `json:"-" dynamodbav:"owner_id"`
	Title      string    `json:"title" dynamodbav:"title"`
	Difficulty string    `json:"difficulty" dynamodbav:"difficulty"`
	Date       string    `json:"date" dynamodbav:"date"`
	Time       string    `json:"time" dynamodbav:"time"`
	Status     string    `json:"status" dynamodbav:"status"`
	Category   string    `json:"category" dynamodbav:"category"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateTodoRequest struct {
	Title      string `json:"title" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy normal hard"`
	Date       string `json:"date" validate:"required"`
	Time       string `json:"time" validate:"required"`
	Status     string `json:"status" validate:"required"`
	Category   string `json:"category" validate:"required"`
}
