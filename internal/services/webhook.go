package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tavola-dev/tavola/internal/models"
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

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorOrange = 16753920 // #FFA500 - new order
	ColorBlue   = 3447003  // #3498DB - status change

	Username = "Tavola Orders"
)

// Notifier posts order events to the kitchen's Discord and Slack channels.
// Empty webhook URLs are skipped.
type Notifier struct {
	DiscordWebhook string
	SlackWebhook   string
	Client         *http.Client
}

func (n *Notifier) Enabled() bool {
	return n != nil && (n.DiscordWebhook != "" || n.SlackWebhook != "")
}

func (n *Notifier) SendOrderCreated(order models.Order) error {
	title := "New order received"
	return n.send(title, order, "")
}

func (n *Notifier) SendOrderStatusChanged(order models.Order, previous string) error {
	title := fmt.Sprintf("Order moved to %s", order.Status)
	return n.send(title, order, previous)
}

func (n *Notifier) send(title string, order models.Order, previous string) error {
	if !n.Enabled() {
		return nil
	}

	if n.DiscordWebhook != "" {
		if err := n.post(n.DiscordWebhook, discordPayload(title, order, previous)); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if n.SlackWebhook != "" {
		if err := n.post(n.SlackWebhook, slackPayload(title, order, previous)); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func orderFields(order models.Order, previous string) [][2]string {
	fields := [][2]string{
		{"Order", order.ID},
		{"Customer", order.Email},
		{"Status", order.Status},
		{"Items", strconv.Itoa(len(order.Items))},
		{"Total", strconv.FormatFloat(order.Total, 'f', 2, 64)},
	}

	if previous != "" {
		fields = append(fields, [2]string{"Previous Status", previous})
	}

	if order.Address != "" {
		fields = append(fields, [2]string{"Address", order.Address})
	}

	return fields
}

func discordPayload(title string, order models.Order, previous string) DiscordWebhookRequest {
	color := ColorOrange
	if previous != "" {
		color = ColorBlue
	}

	var fields []DiscordWebhookField
	for _, f := range orderFields(order, previous) {
		fields = append(fields, DiscordWebhookField{Name: f[0], Value: f[1], Inline: f[0] != "Address"})
	}

	return DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       title,
				Description: fmt.Sprintf("Order for **%s** placed at %s", order.Email, order.CreatedAt.Format("2006-01-02 15:04:05 UTC")),
				Color:       color,
				Fields:      fields,
				Footer:      &DiscordFooter{Text: "Tavola"},
				Timestamp:   time.Now().Format(time.RFC3339),
			},
		},
	}
}

func slackPayload(title string, order models.Order, previous string) SlackWebhookRequest {
	color := "warning"
	if previous != "" {
		color = "good"
	}

	var fields []SlackField
	for _, f := range orderFields(order, previous) {
		fields = append(fields, SlackField{Title: f[0], Value: f[1], Short: f[0] != "Address"})
	}

	return SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":fork_and_knife:",
		Text:      "*" + title + "*",
		Attachments: []SlackAttachment{
			{
				Color:     color,
				Title:     fmt.Sprintf("Order %s", order.ID),
				Text:      fmt.Sprintf("Customer %s", order.Email),
				Fields:    fields,
				Footer:    "Tavola",
				Timestamp: time.Now().Unix(),
			},
		},
	}
}

func (n *Notifier) post(webhookURL string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := client.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
