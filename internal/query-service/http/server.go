package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/prediction-market-poc/internal/query-service/cache"
	"github.com/radieske/prediction-market-poc/internal/query-service/dto"
	"github.com/radieske/prediction-market-poc/internal/query-service/repo"
	"github.com/radieske/prediction-market-poc/internal/query-service/ws"
)

// API expõe os endpoints REST de consulta de mercados, posições e feed
// Utiliza um repositório de leitura (Postgres) e cache (Redis)
type API struct {
	ReadRepo *repo.ReadRepo // acesso ao banco de dados
	Cache    *cache.Cache   // cache das consultas quentes
	Hub      *ws.Hub        // streaming de preços
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/markets", a.listMarkets)
	r.Get("/v1/markets/{id}", a.getMarket)
	r.Get("/v1/markets/{id}/orders", a.listMarketOrders)
	r.Get("/v1/markets/{id}/feed", a.listMarketFeed)
	r.Get("/v1/users/{user}/positions", a.listPositions)
	r.Get("/v1/users/{user}/orders", a.listOrders)
	r.Get("/v1/users/{user}/combos", a.listCombos)
	r.Get("/v1/combos/{id}", a.getCombo)
	r.Get("/v1/agents", a.listAgents)
	r.Get("/v1/agents/top", a.topAgents)
	r.Get("/v1/feed", a.listFeed)
	r.Get("/v1/stats", a.stats)
	r.Get("/ws", a.Hub.HandleWS)
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listMarkets retorna mercados, preferencialmente do cache quando o filtro é quente
func (a *API) listMarkets(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	category := r.URL.Query().Get("category")

	cacheKey := "markets:" + status + ":" + category
	var fromCache []dto.MarketView
	if ok, _ := a.Cache.Get(r.Context(), cacheKey, &fromCache); ok {
		writeJSON(w, http.StatusOK, fromCache)
		return
	}

	mk, err := a.ReadRepo.ListMarkets(r.Context(), status, category)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = a.Cache.Set(r.Context(), cacheKey, mk, 10*time.Second) // salva no cache por 10s
	writeJSON(w, http.StatusOK, mk)
}

func (a *API) getMarket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	m, err := a.ReadRepo.GetMarket(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *API) listPositions(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	ps, err := a.ReadRepo.ListPositions(r.Context(), user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (a *API) listOrders(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	os, err := a.ReadRepo.ListOrders(r.Context(), user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, os)
}

func (a *API) listCombos(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	cs, err := a.ReadRepo.ListCombos(r.Context(), user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (a *API) getCombo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	c, err := a.ReadRepo.GetCombo(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *API) listMarketOrders(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	openOnly := r.URL.Query().Get("open") == "true"

	os, err := a.ReadRepo.ListMarketOrders(r.Context(), id, openOnly)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, os)
}

func (a *API) listAgents(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	ag, err := a.ReadRepo.ListAgents(r.Context(), activeOnly)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ag)
}

func (a *API) listMarketFeed(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	items, err := a.ReadRepo.ListFeed(r.Context(), &id, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) topAgents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	cacheKey := "agents:top:" + strconv.Itoa(limit)
	var fromCache []dto.AgentView
	if ok, _ := a.Cache.Get(r.Context(), cacheKey, &fromCache); ok {
		writeJSON(w, http.StatusOK, fromCache)
		return
	}

	ag, err := a.ReadRepo.TopAgents(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = a.Cache.Set(r.Context(), cacheKey, ag, 30*time.Second)
	writeJSON(w, http.StatusOK, ag)
}

func (a *API) listFeed(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	items, err := a.ReadRepo.ListFeed(r.Context(), nil, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) stats(w http.ResponseWriter, r *http.Request) {
	total, err := a.ReadRepo.TotalVolume(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dto.StatsView{TotalVolume: total})
}

func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return def
	}
	return v
}
