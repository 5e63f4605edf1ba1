package models

import "time"

// ConversationListItem is a conversation flattened with the lead and
// location fields the conversation table shows.
type ConversationListItem struct {
	ID              string     `json:"id"`
	Status          *string    `json:"status"`
	PrimaryChannel  *string    `json:"primaryChannel"`
	IntentScore     *float64   `json:"intentScore"`
	FollowUpAttempt int        `json:"followUpAttempt"`
	LastActivity    *time.Time `json:"lastActivity"`
	LeadName        *string    `json:"leadName"`
	LeadEmail       *string    `json:"leadEmail"`
	LeadPhone       *string    `json:"leadPhone"`
	LeadProfession  *string    `json:"leadProfession"`
	LocationName    *string    `json:"locationName"`
	LocationCity    *string    `json:"locationCity"`
	LocationState   *string    `json:"locationState"`
}

type ConversationSummary struct {
	ID              string     `json:"id"`
	Status          *string    `json:"status"`
	Stage           *string    `json:"stage"`
	PrimaryChannel  *string    `json:"primaryChannel"`
	IntentScore     *float64   `json:"intentScore"`
	FollowUpAttempt int        `json:"followUpAttempt"`
	LastActivity    *time.Time `json:"lastActivity"`
}

type LeadProfile struct {
	ID                string  `json:"id"`
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	Profession        *string `json:"profession"`
	LeadSource        *string `json:"leadSource"`
	InterestedService *string `json:"interestedService"`
	Notes             *string `json:"notes"`
	AISummary         *string `json:"aiSummary"`
}

type LocationProfile struct {
	ID             string  `json:"id"`
	Name           *string `json:"name"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	SchedulingLink *string `json:"schedulingLink"`
	PhoneNumber    *string `json:"phoneNumber"`
	EmailAddress   *string `json:"emailAddress"`
}

type ConversationMessage struct {
	ID             string     `json:"id"`
	Direction      *string    `json:"direction"`
	Channel        *string    `json:"channel"`
	Content        *string    `json:"content"`
	DeliveryStatus *string    `json:"deliveryStatus"`
	SentAt         *time.Time `json:"sentAt"`
}

// ConversationDetail is everything the conversation drawer renders
type ConversationDetail struct {
	Conversation ConversationSummary   `json:"conversation"`
	Lead         LeadProfile           `json:"lead"`
	Location     LocationProfile       `json:"location"`
	Messages     []ConversationMessage `json:"messages"`
}
