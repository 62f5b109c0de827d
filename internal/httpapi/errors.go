package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/alexanderramin/cycleboard/internal/viewstate"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Key     string `json:"key,omitempty"`
	View    string `json:"view,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

// writeFailure maps use-case errors to status codes. Rejected filter state
// is the caller's fault; a missing snapshot is a 404; everything else is
// ours.
func writeFailure(w http.ResponseWriter, err error) {
	var verr *viewstate.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Code:    string(verr.Code),
			Message: verr.Message,
			Key:     string(verr.Key),
			View:    string(verr.View),
		})
		return
	}

	var berr *contract.BoardError
	if errors.As(err, &berr) {
		status := http.StatusInternalServerError
		if berr.Code == contract.BoardErrNoSnapshot {
			status = http.StatusNotFound
		}
		writeError(w, status, string(berr.Code), berr.Message)
		return
	}

	writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
}
