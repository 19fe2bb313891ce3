package trainers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/fitcoach/backend/internal/identity"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=trainers_test

type trainersService interface {
	Profile(ctx context.Context, userID int64) (*Profile, error)
	Apply(ctx context.Context, userID int64, app Application) (*Profile, error)
	Catalogue(ctx context.Context, filter CatalogueFilter) (*CataloguePage, error)
	Trainer(ctx context.Context, id int64) (*Trainer, error)
}

type ApplyResponse struct {
	Ok      bool     `json:"ok"`
	Profile *Profile `json:"profile"`
}

type applyRequest struct {
	Bio             string        `json:"bio"`
	FullName        string        `json:"full_name"`
	Location        string        `json:"location"`
	HeroURL         string        `json:"hero_url"`
	YearsExperience pkg.FlexFloat `json:"years_experience"`
}

func (r applyRequest) application() Application {
	app := Application{
		Bio:      r.Bio,
		FullName: r.FullName,
		Location: r.Location,
		CVLink:   r.HeroURL,
	}
	if r.YearsExperience.Valid && r.YearsExperience.Value >= 0 {
		years := int(math.Round(r.YearsExperience.Value))
		app.YearsExperience = &years
	}
	return app
}

type Handler struct {
	service trainersService
}

func NewHandler(service trainersService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainers.getProfile")
	defer span.End()

	caller, ok := identity.FromContext(r.Context())
	if !ok {
		pkg.WriteError(w, http.StatusUnauthorized, "no_token")
		return
	}

	profile, err := handler.service.Profile(ctx, caller.UserID)
	if err != nil {
		log.Errorf("trainer profile %d: %s", caller.UserID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_trainer_profile")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, profile)
}

func (handler *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainers.apply")
	defer span.End()

	caller, ok := identity.FromContext(r.Context())
	if !ok {
		pkg.WriteError(w, http.StatusUnauthorized, "no_token")
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	profile, err := handler.service.Apply(ctx, caller.UserID, req.application())
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			pkg.WriteError(w, http.StatusBadRequest, validationErr.Code)
			return
		}
		log.Errorf("trainer application %d: %s", caller.UserID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_save_trainer_profile")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, ApplyResponse{Ok: true, Profile: profile})
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainers.list")
	defer span.End()

	page, limit := pkg.PageParams(r)
	query := r.URL.Query()
	filter := CatalogueFilter{
		Page:          page,
		Limit:         limit,
		Search:        query.Get("search"),
		Specialty:     query.Get("specialty"),
		Location:      query.Get("location"),
		Language:      query.Get("language"),
		MinExperience: pkg.QueryInt(r, "minExperience", 0),
	}

	result, err := handler.service.Catalogue(ctx, filter)
	if err != nil {
		log.Errorf("trainer catalogue: %s", err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_trainers")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, result)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainers.get")
	defer span.End()

	id, ok := pkg.ParseID(mux.Vars(r)["id"])
	if !ok {
		pkg.WriteError(w, http.StatusNotFound, ErrTrainerNotFound.Error())
		return
	}

	trainer, err := handler.service.Trainer(ctx, id)
	if errors.Is(err, ErrTrainerNotFound) {
		pkg.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Errorf("trainer %d: %s", id, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_trainer")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, trainer)
}
