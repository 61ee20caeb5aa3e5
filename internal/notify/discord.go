// Package notify announces awards to a Discord channel through an incoming
// webhook. Delivery is best effort: failures are logged, never propagated.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/adventure-league/tracker/internal/domain"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

const username = "Adventure League Tracker"

// Embed colors per rarity tier.
var rarityColors = map[domain.Rarity]int{
	domain.RarityCommon:    10070709, // gray
	domain.RarityUncommon:  65280,    // green
	domain.RarityRare:      255,      // blue
	domain.RarityVeryRare:  10181046, // purple
	domain.RarityLegendary: 16753920, // orange
}

const colorAttendance = 16766720 // gold

// Discord posts award announcements to a single webhook URL.
type Discord struct {
	webhookURL string
	client     *http.Client
}

func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *Discord) VoucherAwarded(ctx context.Context, v domain.LootVoucher, ch domain.Character, by domain.User) {
	embed := DiscordEmbed{
		Title:       fmt.Sprintf("Loot awarded: %s", v.Name),
		Description: v.Description,
		Color:       rarityColors[v.Rarity],
		Fields: []DiscordWebhookField{
			{Name: "Character", Value: ch.Name, Inline: true},
			{Name: "Rarity", Value: string(v.Rarity), Inline: true},
			{Name: "Awarded by", Value: by.Name, Inline: true},
		},
		Footer:    &DiscordFooter{Text: "Adventure League"},
		Timestamp: v.AwardedAt.Format(time.RFC3339),
	}

	if err := d.send(ctx, DiscordWebhookRequest{Username: username, Embeds: []DiscordEmbed{embed}}); err != nil {
		log.Printf("Failed to announce voucher award: %v", err)
	}
}

func (d *Discord) AttendanceAwarded(ctx context.Context, tokens []domain.AttendanceToken, sessionName string, by domain.User) {
	if len(tokens) == 0 {
		return
	}

	embed := DiscordEmbed{
		Title:       fmt.Sprintf("Attendance recorded: %s", sessionName),
		Description: fmt.Sprintf("%d character(s) played", len(tokens)),
		Color:       colorAttendance,
		Fields: []DiscordWebhookField{
			{Name: "Session date", Value: tokens[0].SessionDate.Format("2006-01-02"), Inline: true},
			{Name: "Recorded by", Value: by.Name, Inline: true},
		},
		Footer:    &DiscordFooter{Text: "Adventure League"},
		Timestamp: tokens[0].AwardedAt.Format(time.RFC3339),
	}

	if err := d.send(ctx, DiscordWebhookRequest{Username: username, Embeds: []DiscordEmbed{embed}}); err != nil {
		log.Printf("Failed to announce attendance award: %v", err)
	}
}

func (d *Discord) send(ctx context.Context, payload DiscordWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build Discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Discord webhook returned status %d", resp.StatusCode)
	}

	return nil
}
