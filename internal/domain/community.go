package domain

import "time"

type CommunityMessage struct {
	Id         MessageId `json:"id"`
	Author     UserId    `json:"userId"`
	AuthorName string    `json:"userName"` // enriched on read, AnonymousName if profile missing
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
