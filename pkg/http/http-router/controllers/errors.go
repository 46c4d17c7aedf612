package controllers

import (
	"errors"
	"net/http"

	"github.com/lintang-b-s/settlement-search/pkg"

	"go.uber.org/zap"
)

var errBodyHasMultipleValues = errors.New("body must only contain a single JSON object")

func (api *searchAPI) logError(r *http.Request, err error) {
	api.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
}

func (api *searchAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var res errorResponse
	res.Error.Code = code
	res.Error.Message = message
	if err := api.writeJSON(w, status, envelope{"error": res.Error}, nil); err != nil {
		api.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *searchAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, "bad_request", errorMessage(err))
}

func (api *searchAPI) ServiceUnavailableResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.logError(r, err)
	api.errorResponse(w, r, http.StatusServiceUnavailable, "partition_unavailable", errorMessage(err))
}

func (api *searchAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, "not_found", errorMessage(err))
}

func (api *searchAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.logError(r, err)
	api.errorResponse(w, r, http.StatusInternalServerError, "internal_server_error", pkg.MessageInternalServerError)
}

// errorFromService picks the response for an error returned by the search service.
func (api *searchAPI) errorFromService(w http.ResponseWriter, r *http.Request, err error) {
	switch pkg.ErrorCode(err) {
	case pkg.ErrInvalidQuery:
		api.BadRequestResponse(w, r, err)
	case pkg.ErrPartitionUnavailable:
		api.ServiceUnavailableResponse(w, r, err)
	case pkg.ErrDataNotFound:
		api.NotFoundResponse(w, r, err)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

func errorMessage(err error) string {
	var e *pkg.Error
	if errors.As(err, &e) {
		return e.Message()
	}
	return err.Error()
}
