package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-jobradar/internal/remoteok"
)

const (
	embedColor = 0x00FF9F
	jobURLBase = "https://remoteok.com/remote-jobs/"
	siteURL    = "https://remoteok.com"
	maxTags    = 6
)

type embed struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Color       int     `json:"color"`
	Description string  `json:"description"`
	Fields      []field `json:"fields"`
	Footer      footer  `json:"footer"`
	Timestamp   string  `json:"timestamp"`
}

type field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type footer struct {
	Text string `json:"text"`
}

type message struct {
	Embeds []embed `json:"embeds"`
}

// Webhook delivers job postings to a Discord webhook as rich embeds.
type Webhook struct {
	url    string
	client *http.Client
	now    func() time.Time
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

// SendJob posts one job embed. There is no retry here: a failed send is the
// caller's signal to leave the job out of the ledger so the next scheduled
// run picks it up again.
func (w *Webhook) SendJob(ctx context.Context, job remoteok.Job) error {
	body, err := json.Marshal(w.buildMessage(job))
	if err != nil {
		return fmt.Errorf("encode discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send to discord: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord webhook %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (w *Webhook) buildMessage(job remoteok.Job) message {
	title := job.Position
	if title == "" {
		title = "Unknown Position"
	}
	company := job.Company
	if company == "" {
		company = "Unknown Company"
	}
	location := job.Location
	if location == "" {
		location = "Remote"
	}
	url := siteURL
	if job.ID != "" {
		url = jobURLBase + job.ID
	}

	fields := []field{
		{Name: "🏢 Company", Value: company, Inline: true},
		{Name: "📍 Location", Value: location, Inline: true},
		{Name: "💰 Salary", Value: salaryText(job), Inline: true},
	}
	if tags := job.Tags; len(tags) > 0 {
		if len(tags) > maxTags {
			tags = tags[:maxTags]
		}
		fields = append(fields, field{Name: "🏷️ Tags", Value: strings.Join(tags, ", "), Inline: false})
	}

	now := w.now()
	return message{Embeds: []embed{{
		Title:       "💼 " + title,
		URL:         url,
		Color:       embedColor,
		Description: "🕒 " + ageText(job.Epoch, now),
		Fields:      fields,
		Footer:      footer{Text: fmt.Sprintf("RemoteOK • Job ID: %s", job.ID)},
		Timestamp:   now.UTC().Format(time.RFC3339),
	}}}
}

func salaryText(job remoteok.Job) string {
	if job.SalaryRange != "" {
		return job.SalaryRange
	}
	if job.SalaryMin > 0 {
		return fmt.Sprintf("$%d", job.SalaryMin)
	}
	return "Not specified"
}

// ageText renders how long ago the job was posted: minutes under one hour,
// whole hours after that, and a generic string when the timestamp is unusable.
func ageText(epoch int64, now time.Time) string {
	if epoch <= 0 {
		return "Recently posted"
	}
	elapsed := now.Sub(time.Unix(epoch, 0))
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed < time.Hour {
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
}
