package controllers

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

const imageFormField = "image"

// multipartMemoryLimit is the part of an upload kept in memory; the rest
// spills to temporary files.
const multipartMemoryLimit = 8 << 20

func requestIDFromContext(r *http.Request) string {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}

func sessionDataFromContext(r *http.Request) (string, bool) {
	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	return sessionData, ok
}

// decodeJSON fills request from the body and validates it. An empty body is
// accepted when allowEmpty is set, leaving request untouched.
func decodeJSON(r *http.Request, request interface{}, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil && !(allowEmpty && errors.Is(err, io.EOF)) {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get(constvars.HeaderContentType), constvars.MIMEMultipartForm)
}

// formImage returns a nil image when the parsed form has no file part under
// imageFormField. The returned close func is always safe to call.
func formImage(r *http.Request) (*contracts.ImageUpload, func(), error) {
	file, header, err := r.FormFile(imageFormField)
	switch {
	case err == nil:
		return &contracts.ImageUpload{File: file, Header: header}, func() { file.Close() }, nil
	case errors.Is(err, http.ErrMissingFile):
		return nil, func() {}, nil
	default:
		return nil, func() {}, exceptions.ErrCannotParseMultipartForm(err)
	}
}

// formAddress reads the address field, sent as a JSON document inside the form.
func formAddress(r *http.Request, address *requests.Address) error {
	raw := r.FormValue("address")
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), address); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
