package domain

import "time"

type GroupCreationData struct {
	Owner       UserId
	Name        string
	Description string
	Subject     Subject
}

type Group struct {
	Id          GroupId   `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Subject     Subject   `json:"subject"`
	Owner       UserId    `json:"ownerId"`
	Members     []UserId  `json:"members"` // owner is always included
	CreatedAt   time.Time `json:"createdAt"`
}
