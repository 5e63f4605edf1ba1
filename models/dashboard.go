package models

type HeroStats struct {
	TotalLeads          int `json:"totalLeads"`
	ActiveConversations int `json:"activeConversations"`
	ResponseRate        int `json:"responseRate"`
	MessagesInPeriod    int `json:"messagesInPeriod"`
}

type PipelineStage struct {
	Status    string `json:"status"`
	Count     int    `json:"count"`
	AvgIntent int    `json:"avgIntent"`
}

type CadenceBucket struct {
	Attempt int `json:"attempt"`
	Count   int `json:"count"`
}

type ChannelStats struct {
	TotalMessages int `json:"totalMessages"`
	DeliveryRate  int `json:"deliveryRate"`
	Conversations int `json:"conversations"`
	AvgLength     int `json:"avgLength"`
}

// DashboardData is the aggregate served to the dashboard page
type DashboardData struct {
	Hero     HeroStats       `json:"hero"`
	Pipeline []PipelineStage `json:"pipeline"`
	Cadence  []CadenceBucket `json:"cadence"`
	SMS      ChannelStats    `json:"sms"`
	Email    ChannelStats    `json:"email"`
}
