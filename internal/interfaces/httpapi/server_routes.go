package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/home", handler.GetHome)
	mux.HandleFunc("GET /v1/players/{playerKey}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerKey}/versus/{opponentKey}", handler.GetVersus)
}
