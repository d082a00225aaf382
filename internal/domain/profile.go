package domain

import "time"

type Profile struct {
	Id                UserId    `json:"id"`
	Email             Email     `json:"email"`
	Name              string    `json:"name"`
	Points            int       `json:"points"`
	QuestionsAsked    int       `json:"questionsAsked"`
	QuestionsAnswered int       `json:"questionsAnswered"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Caller is the identity resolved from a bearer credential.
// Carries only what handlers need; the full Profile lives in storage.
type Caller struct {
	Id    UserId
	Email Email
	Name  string
}
