package churn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"

	"telco_churn/internal/domain"
	"telco_churn/internal/domain/entity"
	"telco_churn/internal/domain/value"
	"telco_churn/internal/ml"
	"telco_churn/pkg/contextx"
	"telco_churn/pkg/errcodes"
	"telco_churn/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const modelNotLoadedMessage = "model artifacts are not loaded"

// ErrModelNotLoaded возвращается, пока артефакты модели не загружены.
var ErrModelNotLoaded = errors.New(modelNotLoadedMessage)

type Model interface {
	Predict(rec ml.Record) (ml.Score, error)
}

// Cache хранит вероятности по ключу записи клиента.
type Cache interface {
	Get(ctx context.Context, key string) (float64, bool)
	Set(ctx context.Context, key string, probability float64)
}

// Recorder сохраняет предсказание в журнал.
type Recorder interface {
	Record(ctx context.Context, prediction entity.Prediction) error
}

// Alerter получает предсказания с высоким риском. Не должен блокировать.
type Alerter interface {
	Notify(ctx context.Context, prediction entity.Prediction) bool
}

type Service struct {
	model    Model
	cache    Cache
	recorder Recorder
	alerts   Alerter
	metrics  *metrics
	now      func() time.Time
}

func NewService(registerer prometheus.Registerer, namespace string) *Service {
	return &Service{
		metrics: newMetrics(registerer, namespace),
		now:     time.Now,
	}
}

func (s *Service) WithModel(model Model) *Service {
	s.model = model
	s.metrics.modelLoaded.Set(1)

	return s
}

func (s *Service) WithCache(cache Cache) *Service {
	s.cache = cache
	return s
}

func (s *Service) WithRecorder(recorder Recorder) *Service {
	s.recorder = recorder
	return s
}

func (s *Service) WithAlerts(alerts Alerter) *Service {
	s.alerts = alerts
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Ready() bool {
	return s.model != nil
}

// Check проверка готовности для probe-сервера.
func (s *Service) Check(context.Context) error {
	if !s.Ready() {
		return ErrModelNotLoaded
	}

	return nil
}

// Predict оценивает вероятность оттока клиента.
func (s *Service) Predict(ctx context.Context, customer entity.Customer) (entity.Prediction, error) {
	if s.model == nil {
		s.metrics.failures.WithLabelValues(errcodes.ModelNotLoaded.String()).Inc()

		return entity.Prediction{}, domain.NewError(errcodes.ModelNotLoaded, modelNotLoadedMessage)
	}

	started := s.now()
	key := CacheKey(customer)

	var unknown []string

	probability, cached := s.lookup(ctx, key)
	if !cached {
		score, err := s.model.Predict(ToRecord(customer))
		if err != nil {
			return entity.Prediction{}, s.fail(err)
		}

		for _, item := range score.Unknown {
			s.metrics.unknownValues.WithLabelValues(fieldOf(item)).Inc()
		}

		if len(score.Unknown) > 0 {
			logger(ctx).Warn("unknown binary values", slog.Any(logx.FieldUnknownValues, score.Unknown))
		}

		probability = score.Probability
		unknown = score.Unknown

		if s.cache != nil {
			s.cache.Set(ctx, key, probability)
		}
	}

	prediction := entity.NewPrediction(customer, probability, s.now())
	prediction.Unknown = unknown
	s.metrics.observe(prediction, s.now().Sub(started))

	logger(ctx).Debug(
		"churn predicted",
		slog.String(logx.FieldPredictionID, prediction.ID.String()),
		slog.Float64(logx.FieldProbability, prediction.Probability),
		slog.String(logx.FieldPrediction, prediction.Verdict.String()),
		slog.String(logx.FieldRiskLevel, prediction.RiskLevel.String()),
		slog.Bool(logx.FieldCacheHit, cached),
	)

	s.record(ctx, prediction)

	if s.alerts != nil && prediction.RiskLevel == value.RiskLevelHigh {
		if !s.alerts.Notify(ctx, prediction) {
			logger(ctx).Warn("high risk alert dropped", slog.String(logx.FieldPredictionID, prediction.ID.String()))
		}
	}

	return prediction, nil
}

func (s *Service) lookup(ctx context.Context, key string) (float64, bool) {
	if s.cache == nil {
		return 0, false
	}

	probability, ok := s.cache.Get(ctx, key)
	if ok {
		s.metrics.cacheHits.Inc()
	}

	return probability, ok
}

func (s *Service) record(ctx context.Context, prediction entity.Prediction) {
	if s.recorder == nil {
		return
	}

	if err := s.recorder.Record(ctx, prediction); err != nil {
		s.metrics.failures.WithLabelValues(errcodes.PredictionLogFail.String()).Inc()
		logger(ctx).Error(
			"recorder.Record",
			slog.String(logx.FieldPredictionID, prediction.ID.String()),
			logx.Error(err),
		)
	}
}

func (s *Service) fail(err error) error {
	code, message := errcodes.PredictionFailed, "prediction failed"
	if errors.Is(err, ml.ErrAlignment) {
		code, message = errcodes.AlignmentFailed, "alignment failed"
	}

	s.metrics.failures.WithLabelValues(code.String()).Inc()

	return domain.WrapError(fmt.Errorf("model.Predict: %w", err), code, message)
}

// CacheKey одинаковые записи клиента дают одинаковый ключ.
func CacheKey(customer entity.Customer) string {
	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(customer)
	if err != nil {
		raw = []byte(fmt.Sprintf("%+v", customer))
	}

	return "churn:" + strconv.FormatUint(xxhash.Sum64(raw), 16)
}
