package controllers

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingDoctorUsecase struct {
	contracts.DoctorUsecase
	created *requests.CreateDoctor
}

func (u *recordingDoctorUsecase) CreateDoctor(ctx context.Context, request *requests.CreateDoctor, image *contracts.ImageUpload) (*responses.CreateDoctor, error) {
	u.created = request
	return &responses.CreateDoctor{DoctorID: "d-1"}, nil
}

func doctorFields(fees string) map[string]string {
	return map[string]string{
		"name":       "Dr. Rao",
		"email":      "rao@clinic.test",
		"password":   "Secret#123",
		"speciality": "General physician",
		"degree":     "MBBS",
		"experience": "4 Years",
		"about":      "Primary care",
		"fees":       fees,
		"address":    `{"line1":"1 Residency Rd","line2":"Bengaluru"}`,
	}
}

func TestDoctorController_CreateDoctorFees(t *testing.T) {
	tests := []struct {
		name     string
		fees     string
		wantCode int
	}{
		{"finite fee", "500", http.StatusCreated},
		{"infinity", "Inf", http.StatusBadRequest},
		{"negative infinity", "-Inf", http.StatusBadRequest},
		{"not a number", "NaN", http.StatusBadRequest},
		{"beyond upper bound", "1e300", http.StatusBadRequest},
		{"zero", "0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usecase := &recordingDoctorUsecase{}
			ctrl := NewDoctorController(zap.NewNop(), usecase, nil)
			body, contentType := profileForm(t, doctorFields(tt.fees), true)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/doctors", body)
			req.Header.Set(constvars.HeaderContentType, contentType)
			rec := httptest.NewRecorder()
			ctrl.CreateDoctor(rec, req)

			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantCode == http.StatusCreated {
				require.NotNil(t, usecase.created)
				assert.Equal(t, 500.0, usecase.created.Fees)
			} else {
				assert.Nil(t, usecase.created)
			}
		})
	}
}
