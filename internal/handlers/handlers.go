package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func SendJSON(w http.ResponseWriter, status int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return w.Write(payload)
}

func SendJSONOrLog(
	w http.ResponseWriter,
	logger logrus.FieldLogger,
	status int,
	v any,
) {
	if _, err := SendJSON(w, status, v); err != nil {
		logger.WithFields(logrus.Fields{
			"data":  v,
			"error": err,
		}).Error("failed to send data")
	}
}

func SendErrorOrLog(
	w http.ResponseWriter,
	logger logrus.FieldLogger,
	status int,
	e error,
) {
	SendJSONOrLog(w, logger, status, wrapError(e))
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
