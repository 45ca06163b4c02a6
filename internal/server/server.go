package server

import "telco_churn/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Server объединяет HTTP обработчики отдельных сущностей.
type Server struct {
	ChurnServer
	WebServer
}

func NewServer(
	churnServer ChurnServer,
	webServer WebServer,
) Server {
	return Server{
		ChurnServer: churnServer,
		WebServer:   webServer,
	}
}
