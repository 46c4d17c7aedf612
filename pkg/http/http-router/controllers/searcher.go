package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	helper "github.com/lintang-b-s/settlement-search/pkg/http/http-router/router-helper"
	"github.com/lintang-b-s/settlement-search/pkg/searcher"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"

	"go.uber.org/zap"
)

type searchAPI struct {
	searchService SearchService
	log           *zap.Logger
}

func New(searchService SearchService, log *zap.Logger) *searchAPI {
	return &searchAPI{
		searchService: searchService,
		log:           log,
	}

}

func (api *searchAPI) Routes(group *helper.RouteGroup) {
	group.POST("/search", api.search)
	group.GET("/partitions", api.partitions)
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// searchRequest model info
//
//	@Description	request body for settlement name search.
type searchRequest struct {
	Query           string              `json:"query" validate:"required,max=256"`           // settlement name as typed by the user, may be misspelled or a prefix.
	Countries       []string            `json:"countries" validate:"omitempty,dive,required"` // countries to search, all countries when empty.
	SettlementKinds map[string][]string `json:"settlement_kinds"`                             // settlement kinds per country, all kinds of the country when missing.
	ScoreAdjustment map[string]float64  `json:"score_adjustment"`                             // subtracted from the score of every hit of the kind, positive values prefer the kind.
	Limit           *int                `json:"limit" validate:"omitempty,min=0"`             // maximum number of names returned, every match when missing.
	Threshold       *float64            `json:"threshold" validate:"omitempty,min=0,max=1"`   // maximum score of a match, 0 is exact, default 0.3.
}

func (req searchRequest) toSearcherRequest() searcher.Request {
	out := searcher.Request{
		Query:     req.Query,
		Limit:     req.Limit,
		Threshold: req.Threshold,
	}
	for _, c := range req.Countries {
		out.Countries = append(out.Countries, catalog.Country(c))
	}
	if len(req.SettlementKinds) > 0 {
		out.SettlementKinds = make(map[catalog.Country][]catalog.Kind, len(req.SettlementKinds))
		for country, kinds := range req.SettlementKinds {
			converted := make([]catalog.Kind, 0, len(kinds))
			for _, k := range kinds {
				converted = append(converted, catalog.Kind(k))
			}
			out.SettlementKinds[catalog.Country(country)] = converted
		}
	}
	if len(req.ScoreAdjustment) > 0 {
		out.ScoreAdjustment = make(map[catalog.Kind]float64, len(req.ScoreAdjustment))
		for kind, v := range req.ScoreAdjustment {
			out.ScoreAdjustment[catalog.Kind(kind)] = v
		}
	}
	return out
}

// searchResponse model info
//
//	@Description	response body for settlement name search.
type searchResponse struct {
	Data []string `json:"data"` // matching settlement names, best match first.
}

// search godoc
// @Summary		search settlements by approximate name.
// @Description	search settlements by approximate name across the selected countries and settlement kinds. Tolerates typos, missing diacritics and prefixes.
// @Tags			search
// @ID search
// @Param			body	body	searchRequest	true	"search request"
// @Accept			application/json
// @Produce		application/json
// @Router			/api/search [post]
// @Success		200	{object}	searchResponse
// @Failure		400	{object}	errorResponse
// @Failure		503	{object}	errorResponse
// @Failure		500	{object}	errorResponse
func (api *searchAPI) search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request searchRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	results, err := api.searchService.Search(r.Context(), request.toSearcherRequest())
	if err != nil {
		api.errorFromService(w, r, err)
		return
	}
	if results == nil {
		results = []string{}
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": results}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// partitionResponse model info
//
//	@Description	one searchable partition of the catalog.
type partitionResponse struct {
	Country string `json:"country"`
	Kind    string `json:"kind"`
}

type partitionsResponse struct {
	Data []partitionResponse `json:"data"`
}

// partitions godoc
// @Summary		list the searchable partitions.
// @Description	list every (country, settlement kind) partition of the catalog in catalog order.
// @Tags			search
// @ID partitions
// @Produce		application/json
// @Router			/api/partitions [get]
// @Success		200	{object}	partitionsResponse
// @Failure		500	{object}	errorResponse
func (api *searchAPI) partitions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	partitions := api.searchService.Partitions()
	res := make([]partitionResponse, 0, len(partitions))
	for _, p := range partitions {
		res = append(res, partitionResponse{Country: string(p.ID.Country), Kind: string(p.ID.Kind)})
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": res}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
	trans        ut.Translator
)

func validateStruct(s any) error {
	validateOnce.Do(func() {
		validate = validator.New()
		english := en.New()
		uni := ut.New(english, english)
		trans, _ = uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	})

	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	vv := translateError(err, trans)
	vvString := []string{}
	for _, v := range vv {
		vvString = append(vvString, v.Error())
	}
	return fmt.Errorf("validation error: %v", vvString)
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := errors.New(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
