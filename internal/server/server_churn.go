package server

import (
	"context"
	"fmt"
	"net/http"

	"telco_churn/internal/domain/entity"
	"telco_churn/pkg/httpx/reply"
	"telco_churn/pkg/httpx/req"
	"telco_churn/pkg/rest"
)

const healthStatus = "conectado"

type churnService interface {
	Predict(ctx context.Context, customer entity.Customer) (entity.Prediction, error)
}

type ChurnServer struct {
	churnService churnService
}

func NewChurnServer(churnService churnService) ChurnServer {
	return ChurnServer{
		churnService: churnService,
	}
}

func (s ChurnServer) postPredict(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PredictRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	prediction, err := s.churnService.Predict(ctx, newDomainCustomer(request))
	if err != nil {
		return fmt.Errorf("churnService.Predict: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPrediction(prediction))

	return nil
}

// getHealth не зависит от состояния модели.
func (s ChurnServer) getHealth(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, rest.HealthResponse{Status: healthStatus})

	return nil
}
