package notifier_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"

	"telco_churn/internal/domain/entity"
	"telco_churn/internal/infrastructure/notifier"
)

type senderStub struct {
	mu   sync.Mutex
	sent []*telego.SendMessageParams
	err  error
}

func (s *senderStub) SendMessage(_ context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, params)

	return &telego.Message{}, s.err
}

func (s *senderStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sent)
}

func highRisk() entity.Prediction {
	return entity.NewPrediction(entity.Customer{
		Contract:        "Month-to-month",
		InternetService: "Fiber optic",
		Tenure:          1,
		MonthlyCharges:  70.35,
	}, 0.91234, time.Now())
}

func TestSendPrediction(t *testing.T) {
	rq := require.New(t)

	sender := &senderStub{}
	bot := notifier.NewAlerts(sender, 42, 1)
	p := highRisk()

	rq.NoError(bot.SendPrediction(context.Background(), p))
	rq.Len(sender.sent, 1)

	msg := sender.sent[0]
	rq.Equal(telego.ModeHTML, msg.ParseMode)
	rq.Equal(int64(42), msg.ChatID.ID)
	rq.Contains(msg.Text, "91.23%")
	rq.Contains(msg.Text, "Month-to-month")
	rq.Contains(msg.Text, p.ID.String())

	sender.err = errors.New("bad request")
	rq.ErrorContains(bot.SendPrediction(context.Background(), p), "send message: bad request")
}

func TestNotifyDropsWhenFull(t *testing.T) {
	rq := require.New(t)

	bot := notifier.NewAlerts(&senderStub{}, 1, 1)

	rq.True(bot.Notify(context.Background(), highRisk()))
	rq.False(bot.Notify(context.Background(), highRisk()))
}

func TestRun(t *testing.T) {
	rq := require.New(t)

	sender := &senderStub{err: errors.New("flood wait")}
	bot := notifier.NewAlerts(sender, 1, 4)

	rq.True(bot.Notify(context.Background(), highRisk()))
	rq.True(bot.Notify(context.Background(), highRisk()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- bot.Run(ctx) }()

	rq.Eventually(func() bool { return sender.count() == 2 }, time.Second, 10*time.Millisecond)

	cancel()
	rq.ErrorIs(<-done, context.Canceled)
}

func TestNewTelegramBotInvalidToken(t *testing.T) {
	rq := require.New(t)

	_, err := notifier.NewTelegramBot("not-a-token", 1, 1, nil)
	rq.ErrorContains(err, "telego.NewBot")
}
