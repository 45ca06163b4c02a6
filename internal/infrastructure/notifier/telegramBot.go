package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"telco_churn/internal/domain/entity"
	"telco_churn/pkg/logx"
)

// Sender часть telego.Bot, нужная для отправки сообщений.
type Sender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// TelegramBot отправляет оповещения о клиентах с высоким риском оттока.
type TelegramBot struct {
	sender Sender
	chatID int64
	queue  chan entity.Prediction
}

// NewTelegramBot при заданном httpClient запросы к Bot API идут через него.
func NewTelegramBot(token string, chatID int64, bufferSize int, httpClient *http.Client) (*TelegramBot, error) {
	var opts []telego.BotOption
	if httpClient != nil {
		opts = append(opts, telego.WithHTTPClient(httpClient))
	}

	bot, err := telego.NewBot(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return NewAlerts(bot, chatID, bufferSize), nil
}

func NewAlerts(sender Sender, chatID int64, bufferSize int) *TelegramBot {
	return &TelegramBot{
		sender: sender,
		chatID: chatID,
		queue:  make(chan entity.Prediction, bufferSize),
	}
}

// Notify ставит оповещение в очередь. При полном буфере оповещение отбрасывается.
func (b *TelegramBot) Notify(_ context.Context, p entity.Prediction) bool {
	select {
	case b.queue <- p:
		return true
	default:
		return false
	}
}

// Run отправляет оповещения из очереди до отмены контекста.
func (b *TelegramBot) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p := <-b.queue:
			if err := b.SendPrediction(ctx, p); err != nil {
				logger(ctx).Error(
					"failed to send alert",
					slog.String(logx.FieldPredictionID, p.ID.String()),
					logx.Error(err),
				)
			}
		}
	}
}

func (b *TelegramBot) SendPrediction(ctx context.Context, p entity.Prediction) error {
	text := fmt.Sprintf(
		"⚠️ <b>High churn risk</b>\n\n"+
			"📈 <b>Probability:</b> %.2f%%\n"+
			"📄 <b>Contract:</b> %s\n"+
			"🌐 <b>Internet:</b> %s\n"+
			"⏳ <b>Tenure:</b> %d months\n"+
			"💳 <b>Monthly charges:</b> %.2f\n\n"+
			"<code>%s</code>",
		p.RoundedProbability()*100,
		p.Customer.Contract,
		p.Customer.InternetService,
		p.Customer.Tenure,
		p.Customer.MonthlyCharges,
		p.ID,
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.sender.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
