package services

import (
	"context"
	"math"
	"time"
	"unicode/utf8"

	"commandcenter/models"
	"commandcenter/utils"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	statusActive      = "active"
	statusUnknown     = "unknown"
	directionInbound  = "inbound"
	channelSMS        = "sms"
	channelEmail      = "email"
	channelBoth       = "both"
	deliveryDelivered = "delivered"

	// Cadence charts always show attempts 0 through minCadenceAttempt.
	minCadenceAttempt = 6
)

// ConversationStat is the slice of a conversation row the dashboard needs.
type ConversationStat struct {
	ID              string
	Status          *string
	IntentScore     *float64
	FollowUpAttempt *int
	LastActivity    *time.Time
}

// MessageStat is the slice of a message row the dashboard needs.
type MessageStat struct {
	ID             string
	ConversationID string
	Channel        *string
	Direction      *string
	Content        *string
	DeliveryStatus *string
	SentAt         *time.Time
}

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// GetDashboard fetches the tenant's leads, conversations and messages and
// aggregates them. A nil window aggregates all time. Any failed fetch fails
// the whole call.
func (s *DashboardService) GetDashboard(ctx context.Context, tenantID string, window *TimeWindow) (*models.DashboardData, error) {
	if tenantID == "" {
		return nil, utils.ErrTenantRequired
	}

	var (
		totalLeads    int64
		conversations []ConversationStat
		messages      []MessageStat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalLeads, err = s.countLeads(gctx, tenantID, window)
		return err
	})
	g.Go(func() error {
		var err error
		conversations, err = s.fetchConversations(gctx, tenantID, window)
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = s.fetchMessages(gctx, tenantID, window)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := BuildDashboard(int(totalLeads), conversations, messages)
	return &data, nil
}

func (s *DashboardService) countLeads(ctx context.Context, tenantID string, window *TimeWindow) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Lead{}).
		Joins("JOIN locations ON locations.id = leads.location_id").
		Scopes(tenantScope(tenantID), window.between("leads.created_at")).
		Count(&count).Error
	if err != nil {
		return 0, utils.NewStoreError("count leads", err)
	}
	return count, nil
}

func (s *DashboardService) fetchConversations(ctx context.Context, tenantID string, window *TimeWindow) ([]ConversationStat, error) {
	var rows []ConversationStat
	err := s.DB.WithContext(ctx).
		Table("conversations").
		Select("conversations.id, conversations.status, conversations.intent_score, conversations.follow_up_attempt, conversations.last_activity").
		Joins("JOIN locations ON locations.id = conversations.location_id").
		Scopes(tenantScope(tenantID), window.between("conversations.last_activity")).
		Order("conversations.created_at ASC").
		Order("conversations.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, utils.NewStoreError("list conversations", err)
	}
	return rows, nil
}

func (s *DashboardService) fetchMessages(ctx context.Context, tenantID string, window *TimeWindow) ([]MessageStat, error) {
	var rows []MessageStat
	err := s.DB.WithContext(ctx).
		Table("messages").
		Select("messages.id, messages.conversation_id, messages.channel, messages.direction, messages.content, messages.delivery_status, messages.sent_at").
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Joins("JOIN locations ON locations.id = conversations.location_id").
		Scopes(tenantScope(tenantID), window.between("messages.sent_at")).
		Scan(&rows).Error
	if err != nil {
		return nil, utils.NewStoreError("list messages", err)
	}
	return rows, nil
}

// BuildDashboard computes the dashboard aggregate from already fetched rows.
// It has no side effects, so equal inputs always give equal output.
func BuildDashboard(totalLeads int, conversations []ConversationStat, messages []MessageStat) models.DashboardData {
	activeIDs := make(map[string]struct{})
	for _, c := range conversations {
		if utils.Deref(c.Status) == statusActive {
			activeIDs[c.ID] = struct{}{}
		}
	}

	inbound := make(map[string]struct{})
	for _, m := range messages {
		if utils.Deref(m.Direction) == directionInbound {
			inbound[m.ConversationID] = struct{}{}
		}
	}

	responded := 0
	for id := range activeIDs {
		if _, ok := inbound[id]; ok {
			responded++
		}
	}

	return models.DashboardData{
		Hero: models.HeroStats{
			TotalLeads:          totalLeads,
			ActiveConversations: len(activeIDs),
			ResponseRate:        percentage(responded, len(activeIDs)),
			MessagesInPeriod:    len(messages),
		},
		Pipeline: buildPipeline(conversations),
		Cadence:  buildCadence(conversations),
		SMS:      buildChannelStats(messages, channelSMS),
		Email:    buildChannelStats(messages, channelEmail),
	}
}

// buildPipeline groups by status in order of first appearance.
func buildPipeline(conversations []ConversationStat) []models.PipelineStage {
	type bucket struct {
		count       int
		intentTotal float64
		withIntent  int
	}

	order := make([]string, 0)
	buckets := make(map[string]*bucket)
	for _, c := range conversations {
		status := statusUnknown
		if c.Status != nil {
			status = *c.Status
		}
		b, ok := buckets[status]
		if !ok {
			b = &bucket{}
			buckets[status] = b
			order = append(order, status)
		}
		b.count++
		if c.IntentScore != nil {
			b.intentTotal += *c.IntentScore
			b.withIntent++
		}
	}

	pipeline := make([]models.PipelineStage, 0, len(order))
	for _, status := range order {
		b := buckets[status]
		avg := 0
		if b.withIntent > 0 {
			avg = roundHalfUp(b.intentTotal / float64(b.withIntent))
		}
		pipeline = append(pipeline, models.PipelineStage{
			Status:    status,
			Count:     b.count,
			AvgIntent: avg,
		})
	}
	return pipeline
}

// buildCadence returns one bucket per attempt from 0 up to the larger of
// minCadenceAttempt and the highest attempt seen.
func buildCadence(conversations []ConversationStat) []models.CadenceBucket {
	counts := make(map[int]int)
	maxAttempt := minCadenceAttempt
	for _, c := range conversations {
		attempt := utils.Deref(c.FollowUpAttempt)
		counts[attempt]++
		if attempt > maxAttempt {
			maxAttempt = attempt
		}
	}

	cadence := make([]models.CadenceBucket, 0, maxAttempt+1)
	for attempt := 0; attempt <= maxAttempt; attempt++ {
		cadence = append(cadence, models.CadenceBucket{Attempt: attempt, Count: counts[attempt]})
	}
	return cadence
}

// buildChannelStats counts messages sent on channel, including "both".
func buildChannelStats(messages []MessageStat, channel string) models.ChannelStats {
	total, delivered, totalLen := 0, 0, 0
	conversations := make(map[string]struct{})
	for _, m := range messages {
		ch := utils.Deref(m.Channel)
		if ch != channel && ch != channelBoth {
			continue
		}
		total++
		if utils.Deref(m.DeliveryStatus) == deliveryDelivered {
			delivered++
		}
		conversations[m.ConversationID] = struct{}{}
		totalLen += utf8.RuneCountInString(utils.Deref(m.Content))
	}

	avgLength := 0
	if total > 0 {
		avgLength = roundHalfUp(float64(totalLen) / float64(total))
	}

	return models.ChannelStats{
		TotalMessages: total,
		DeliveryRate:  percentage(delivered, total),
		Conversations: len(conversations),
		AvgLength:     avgLength,
	}
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return roundHalfUp(float64(part) / float64(total) * 100)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
