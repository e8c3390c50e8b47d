package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
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
	ColorBlue  = 3447003  // #3498DB - New application
	ColorGreen = 65280    // #00FF00 - Application accepted
	ColorGray  = 10070709 // #99AAB5 - Application rejected

	Username = "Teamboard"
)

// NotifyApplicationReceived posts a new-application message to the Discord
// and Slack webhooks configured in the environment. Both are optional and
// failures are only logged; callers run this in a goroutine off the request
// path.
func NotifyApplicationReceived(projectTitle, applicantName, role string) {
	if url := os.Getenv("DISCORD_WEBHOOK_URL"); url != "" {
		payload := DiscordWebhookRequest{
			Username: Username,
			Embeds: []DiscordEmbed{
				{
					Title:       "New project application",
					Description: fmt.Sprintf("**%s** applied to **%s**.", applicantName, projectTitle),
					Color:       ColorBlue,
					Fields: []DiscordWebhookField{
						{Name: "Project", Value: projectTitle, Inline: true},
						{Name: "Applicant", Value: applicantName, Inline: true},
						{Name: "Role", Value: role, Inline: true},
					},
					Footer:    &DiscordFooter{Text: "Teamboard"},
					Timestamp: time.Now().Format(time.RFC3339),
				},
			},
		}

		if err := sendDiscordWebhook(url, payload); err != nil {
			log.Error().Err(err).Msg("Discord webhook failed")
		}
	}

	if url := os.Getenv("SLACK_WEBHOOK_URL"); url != "" {
		payload := SlackWebhookRequest{
			Username:  Username,
			IconEmoji: ":inbox_tray:",
			Text:      ":inbox_tray: *New project application*",
			Attachments: []SlackAttachment{
				{
					Color: "#3498DB",
					Title: fmt.Sprintf("%s applied to %s", applicantName, projectTitle),
					Fields: []SlackField{
						{Title: "Project", Value: projectTitle, Short: true},
						{Title: "Applicant", Value: applicantName, Short: true},
						{Title: "Role", Value: role, Short: true},
					},
					Footer:    "Teamboard",
					Timestamp: time.Now().Unix(),
				},
			},
		}

		if err := sendSlackWebhook(url, payload); err != nil {
			log.Error().Err(err).Msg("Slack webhook failed")
		}
	}
}

// NotifyApplicationResolved posts an accepted/rejected message to the
// configured webhooks.
func NotifyApplicationResolved(projectTitle, status string) {
	color := ColorGreen
	slackColor := "good"
	title := "Application accepted"
	emoji := ":white_check_mark:"

	if status == "rejected" {
		color = ColorGray
		slackColor = "#99AAB5"
		title = "Application rejected"
		emoji = ":no_entry_sign:"
	}

	if url := os.Getenv("DISCORD_WEBHOOK_URL"); url != "" {
		payload := DiscordWebhookRequest{
			Username: Username,
			Embeds: []DiscordEmbed{
				{
					Title:       title,
					Description: fmt.Sprintf("An application to **%s** was %s.", projectTitle, status),
					Color:       color,
					Fields: []DiscordWebhookField{
						{Name: "Project", Value: projectTitle, Inline: true},
						{Name: "Result", Value: status, Inline: true},
					},
					Footer:    &DiscordFooter{Text: "Teamboard"},
					Timestamp: time.Now().Format(time.RFC3339),
				},
			},
		}

		if err := sendDiscordWebhook(url, payload); err != nil {
			log.Error().Err(err).Msg("Discord webhook failed")
		}
	}

	if url := os.Getenv("SLACK_WEBHOOK_URL"); url != "" {
		payload := SlackWebhookRequest{
			Username:  Username,
			IconEmoji: emoji,
			Text:      fmt.Sprintf("%s *%s*", emoji, title),
			Attachments: []SlackAttachment{
				{
					Color: slackColor,
					Title: fmt.Sprintf("An application to %s was %s", projectTitle, status),
					Fields: []SlackField{
						{Title: "Project", Value: projectTitle, Short: true},
						{Title: "Result", Value: status, Short: true},
					},
					Footer:    "Teamboard",
					Timestamp: time.Now().Unix(),
				},
			},
		}

		if err := sendSlackWebhook(url, payload); err != nil {
			log.Error().Err(err).Msg("Slack webhook failed")
		}
	}
}

func sendDiscordWebhook(webhookURL string, payload DiscordWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Discord payload: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send Discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Discord webhook returned status %d", resp.StatusCode)
	}

	return nil
}

func sendSlackWebhook(webhookURL string, payload SlackWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send Slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}
