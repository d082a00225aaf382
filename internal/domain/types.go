package domain

type (
	Email    = string
	Password = string
	UserId   = string

	QuestionId = string
	AnswerId   = string
	GroupId    = string
	MessageId  = string

	Subject = string
	Tags    = []string
	Country = string
)

// Display name shown when the author's profile record is missing.
const AnonymousName = "Anonymous"
