package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type QuestionCreationData struct {
	Author      UserId
	Title       string
	Content     string
	Subject     Subject
	Tags        Tags
	AnswerLimit int
}

type Answer struct {
	Id        AnswerId  `json:"id"`
	Author    UserId    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Question struct {
	Id          QuestionId `json:"id"`
	Author      UserId     `json:"userId"`
	AuthorName  string     `json:"userName"` // enriched on read, AnonymousName if profile missing
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Subject     Subject    `json:"subject"`
	Tags        Tags       `json:"tags"`
	AnswerLimit int        `json:"answerLimit"`
	Answers     []Answer   `json:"answers"`
	SavedBy     []UserId   `json:"savedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// QuestionFilter narrows the question feed. Zero values mean "no filter".
type QuestionFilter struct {
	Subject Subject
	Tags    Tags   // match if ANY requested tag is present
	Search  string // case-insensitive substring on title OR content
}
