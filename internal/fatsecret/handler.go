package fatsecret

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=fatsecret_test

type foodAPI interface {
	Autocomplete(ctx context.Context, query string, maxResults int) ([]Suggestion, error)
	Search(ctx context.Context, query string, page, maxResults int) ([]SearchItem, error)
	Food(ctx context.Context, foodID string) (*Food, error)
}

const (
	defaultAutocompleteLimit = 10
	defaultSearchLimit       = 20
	// FatSecret rejects max_results above this
	maxResultsLimit = 50
)

type Handler struct {
	api foodAPI
}

func NewHandler(api foodAPI) *Handler {
	return &Handler{
		api: api,
	}
}

func searchQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("q"))
}

func resultsLimit(r *http.Request, def int) int {
	return min(pkg.QueryInt(r, "limit", def), maxResultsLimit)
}

func (handler *Handler) HandleAutocomplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.fatsecret.autocomplete")
	defer span.End()

	q := searchQuery(r)
	if q == "" {
		pkg.WriteError(w, http.StatusBadRequest, "query_required")
		return
	}
	span.SetAttributes(attribute.String("query", q))

	items, err := handler.api.Autocomplete(ctx, q, resultsLimit(r, defaultAutocompleteLimit))
	if err != nil {
		log.Errorf("fatsecret autocomplete [%s]: %s", q, err)
		pkg.WriteError(w, http.StatusInternalServerError, "fatsecret_autocomplete_failed")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, items)
}

func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.fatsecret.search")
	defer span.End()

	q := searchQuery(r)
	if q == "" {
		pkg.WriteError(w, http.StatusBadRequest, "query_required")
		return
	}
	span.SetAttributes(attribute.String("query", q))

	// page_number is zero based on the FatSecret side as well
	page := pkg.QueryInt(r, "page", 0)
	items, err := handler.api.Search(ctx, q, page, resultsLimit(r, defaultSearchLimit))
	if err != nil {
		log.Errorf("fatsecret search [%s]: %s", q, err)
		pkg.WriteError(w, http.StatusInternalServerError, "fatsecret_search_failed")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, items)
}

func (handler *Handler) HandleFood(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.fatsecret.food")
	defer span.End()

	foodID := strings.TrimSpace(mux.Vars(r)["id"])
	if foodID == "" {
		pkg.WriteError(w, http.StatusBadRequest, "food_id_required")
		return
	}
	span.SetAttributes(attribute.String("food.id", foodID))

	food, err := handler.api.Food(ctx, foodID)
	if err != nil {
		log.Errorf("fatsecret food %s: %s", foodID, err)
		status := http.StatusInternalServerError
		if errors.Is(err, ErrFoodNotFound) {
			status = http.StatusNotFound
		}
		pkg.WriteError(w, status, "fatsecret_food_failed")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, food)
}
