package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// CommandHandler is called when a user command is received.
type CommandHandler func(ctx context.Context, command string) string

// StartPolling begins long-polling for Telegram commands. Blocks until ctx is cancelled.
// Only messages from the configured chat are handled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := int64(0)
	client := &http.Client{Timeout: 35 * time.Second, Transport: t.Client.Transport}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("telegram polling stopped")
			return
		default:
		}

		updates, err := t.getUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn().Err(err).Msg("polling request failed")
			sleepCtx(ctx, 5*time.Second)
			continue
		}

		for _, u := range updates {
			offset = u.Get("update_id").Int() + 1
			text := strings.TrimSpace(u.Get("message.text").String())
			if text == "" {
				continue
			}
			if chat := u.Get("message.chat.id").String(); t.ChatID != "" && chat != t.ChatID {
				log.Warn().Str("chat", chat).Msg("ignoring command from unknown chat")
				continue
			}
			log.Info().Str("command", text).Msg("received command")
			if reply := handler(ctx, text); reply != "" {
				if err := t.Send(ctx, reply); err != nil {
					log.Error().Err(err).Msg("send reply failed")
				}
			}
		}
	}
}

func (t *TelegramNotifier) getUpdates(ctx context.Context, client *http.Client, offset int64) ([]gjson.Result, error) {
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.endpoint("getUpdates"), offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create polling request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read polling response: %w", err)
	}
	if !gjson.ValidBytes(body) || !gjson.GetBytes(body, "ok").Bool() {
		return nil, fmt.Errorf("polling response rejected: status %d", resp.StatusCode)
	}
	return gjson.GetBytes(body, "result").Array(), nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
