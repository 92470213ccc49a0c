package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/choisw0823/callplanner/internal/observability"
	"github.com/choisw0823/callplanner/internal/store"
)

// TelegramGateway lets users request call plans and transcript summaries
// over Telegram. Plain messages are treated as call requests; "/summary"
// followed by a transcript runs the summary pipeline instead.
type TelegramGateway struct {
	Bot        *tgbotapi.BotAPI
	Planner    Planner
	Summarizer Summarizer
	Archive    *store.ArchiveStore
	Logger     *observability.Logger
	Iterations int
}

func NewTelegramGateway(token string, p Planner, s Summarizer, archive *store.ArchiveStore, logger *observability.Logger, iterations int) (*TelegramGateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	if logger == nil {
		logger = observability.NewLogger()
	}

	return &TelegramGateway{
		Bot:        bot,
		Planner:    p,
		Summarizer: s,
		Archive:    archive,
		Logger:     logger,
		Iterations: iterations,
	}, nil
}

func (tg *TelegramGateway) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := tg.Bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)

		chatID := update.Message.Chat.ID
		response := tg.handle(context.Background(), update.Message.Text)

		msg := tgbotapi.NewMessage(chatID, response)
		if _, err := tg.Bot.Send(msg); err != nil {
			log.Printf("Error sending message: %v", err)
		}
	}

	return nil
}

func (tg *TelegramGateway) handle(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(text, "/summary"):
		transcript := strings.TrimSpace(strings.TrimPrefix(text, "/summary"))
		if transcript == "" {
			return "Send /summary followed by the call transcript."
		}
		return tg.summarize(ctx, transcript)
	case text == "/start" || text == "/help":
		return "Describe the call you want me to plan, or send /summary <transcript> to summarize a finished call."
	default:
		return tg.plan(ctx, text)
	}
}

func (tg *TelegramGateway) plan(ctx context.Context, request string) string {
	tg.Logger.LogGateway("telegram", "plan")

	res, err := tg.Planner.Run(ctx, request, tg.Iterations)
	if err != nil {
		log.Printf("Planning error: %v", err)
		return fmt.Sprintf("I couldn't plan that call: %v", err)
	}

	if tg.Archive != nil {
		intentJSON, _ := json.Marshal(res.Intent)
		planJSON, _ := json.Marshal(res.Plan)
		if _, err := tg.Archive.SavePlan(res.RunID, request, string(intentJSON), string(planJSON), res.SystemPrompt); err != nil {
			log.Printf("Error archiving plan: %v", err)
		}
	}

	if bundle, err := res.Bundle(); err == nil {
		return fmt.Sprintf("Opening line:\n%s\n\nAgent brief:\n%s", bundle.FirstMessage, bundle.SystemPrompt)
	}
	// The synthesis stage returns free text when the model skips the JSON
	// envelope; pass it along as-is.
	return res.SystemPrompt
}

func (tg *TelegramGateway) summarize(ctx context.Context, transcript string) string {
	tg.Logger.LogGateway("telegram", "summary")

	cs, err := tg.Summarizer.Summarize(ctx, transcript)
	if err != nil {
		log.Printf("Summary error: %v", err)
		return fmt.Sprintf("I couldn't summarize that call: %v", err)
	}

	if tg.Archive != nil {
		summaryJSON, _ := json.Marshal(cs)
		if _, err := tg.Archive.SaveSummary(transcript, string(summaryJSON)); err != nil {
			log.Printf("Error archiving summary: %v", err)
		}
	}

	reply := fmt.Sprintf("Recipient: %s\nPurpose: %s\nResult: %s", cs.Recipient, cs.Purpose, cs.Result)
	if cs.FailureReason != "" {
		reply += "\nFailure reason: " + cs.FailureReason
	}
	if cs.NextSteps != "" {
		reply += "\nNext steps: " + cs.NextSteps
	}
	if cs.AdditionalDetails != "" {
		reply += "\nDetails: " + cs.AdditionalDetails
	}
	return reply
}

func (tg *TelegramGateway) Send(chatID string, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", chatID, err)
	}
	msg := tgbotapi.NewMessage(id, text)
	_, err = tg.Bot.Send(msg)
	return err
}

func (tg *TelegramGateway) Stop() error {
	tg.Bot.StopReceivingUpdates()
	return nil
}
