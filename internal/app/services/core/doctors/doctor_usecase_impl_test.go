package doctors

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/app/services/core/session"
	"doctor-appointment-service/internal/app/services/shared/slotcache"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockDoctorRepository struct {
	mock.Mock
}

func (m *mockDoctorRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	args := m.Called(doctor)
	return args.String(0), args.Error(1)
}

func (m *mockDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	args := m.Called(doctorID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *mockDoctorRepository) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	args := m.Called(email)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *mockDoctorRepository) FindAll(ctx context.Context) ([]models.Doctor, error) {
	args := m.Called()
	doctors, _ := args.Get(0).([]models.Doctor)
	return doctors, args.Error(1)
}

func (m *mockDoctorRepository) UpdateProfile(ctx context.Context, doctor *models.Doctor) error {
	return m.Called(doctor).Error(0)
}

func (m *mockDoctorRepository) SetAvailability(ctx context.Context, doctorID string, available bool) error {
	return m.Called(doctorID, available).Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadFile(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader, bucketName, objectName string) (string, error) {
	args := m.Called(bucketName, objectName)
	return args.String(0), args.Error(1)
}

const doctorID = "65f000000000000000000001"

func sessionData(t *testing.T, userID, role string) string {
	t.Helper()
	raw, err := json.Marshal(models.Session{
		SessionID: "s-" + userID,
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	return string(raw)
}

func newTestUsecase(repo *mockDoctorRepository, storage *mockStorage) *doctorUsecase {
	return &doctorUsecase{
		DoctorRepository: repo,
		SessionService:   session.NewSessionService(nil),
		MinioStorage:     storage,
		SlotCache:        slotcache.NewLRUSlotCache(16, time.Minute, zap.NewNop()),
		InternalConfig: &config.InternalConfig{
			Minio: config.AppMinio{BucketName: "doctors", ImageMaxUploadSizeInMB: 1},
		},
		Log:   zap.NewNop(),
		Clock: time.Now,
	}
}

func imageHeader(contentType string, size int64) *contracts.ImageUpload {
	return &contracts.ImageUpload{
		File: strings.NewReader("img"),
		Header: &multipart.FileHeader{
			Filename: "portrait.PNG",
			Size:     size,
			Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
		},
	}
}

func TestDoctorUsecase_CreateDoctor(t *testing.T) {
	ctx := context.Background()
	request := &requests.CreateDoctor{
		Name:     " Dr. Rao ",
		Email:    "Rao@Clinic.test",
		Password: "Secret#123",
		Fees:     500,
		Address:  requests.Address{Line1: "12 MG Road"},
	}

	t.Run("uploads image and stores an available doctor", func(t *testing.T) {
		repo := new(mockDoctorRepository)
		storage := new(mockStorage)
		uc := newTestUsecase(repo, storage)

		repo.On("FindByEmail", "rao@clinic.test").Return(nil, nil)
		storage.On("UploadFile", "doctors", mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "doctors/") && strings.HasSuffix(key, ".png")
		})).Return("http://cdn/doctors/x.png", nil)
		repo.On("CreateDoctor", mock.MatchedBy(func(d *models.Doctor) bool {
			return d.Available && d.Email == "rao@clinic.test" && d.Name == "Dr. Rao" &&
				d.Image == "http://cdn/doctors/x.png" && d.Password != request.Password &&
				d.SlotsBooked != nil
		})).Return(doctorID, nil)

		got, err := uc.CreateDoctor(ctx, request, imageHeader(constvars.MIMEImagePNG, 2048))
		require.NoError(t, err)
		assert.Equal(t, doctorID, got.DoctorID)
		repo.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(mockDoctorRepository)
		uc := newTestUsecase(repo, new(mockStorage))
		repo.On("FindByEmail", "rao@clinic.test").Return(&models.Doctor{ID: doctorID}, nil)

		_, err := uc.CreateDoctor(ctx, request, imageHeader(constvars.MIMEImagePNG, 2048))
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidInput))
	})

	t.Run("rejects unsupported and oversized images", func(t *testing.T) {
		repo := new(mockDoctorRepository)
		storage := new(mockStorage)
		uc := newTestUsecase(repo, storage)
		repo.On("FindByEmail", "rao@clinic.test").Return(nil, nil)

		_, err := uc.CreateDoctor(ctx, request, imageHeader("image/gif", 10))
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidInput))

		_, err = uc.CreateDoctor(ctx, request, imageHeader(constvars.MIMEImageJPEG, 2<<20))
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidInput))

		_, err = uc.CreateDoctor(ctx, request, nil)
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidInput))
		storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything)
	})
}

func TestDoctorUsecase_ChangeAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("admin toggles and cache is invalidated", func(t *testing.T) {
		repo := new(mockDoctorRepository)
		uc := newTestUsecase(repo, new(mockStorage))
		uc.SlotCache.Add(models.RegistrySnapshot{DoctorID: doctorID, Available: true}, uc.SlotCache.Generation(doctorID))

		repo.On("FindByID", doctorID).Return(&models.Doctor{ID: doctorID, Available: true}, nil)
		repo.On("SetAvailability", doctorID, false).Return(nil)

		got, err := uc.ChangeAvailability(ctx, sessionData(t, constvars.AdminSubjectID, constvars.RoleAdmin), doctorID, nil)
		require.NoError(t, err)
		assert.False(t, got.Available)

		_, cached := uc.SlotCache.Get(doctorID)
		assert.False(t, cached)
	})

	t.Run("doctor sets own availability explicitly", func(t *testing.T) {
		repo := new(mockDoctorRepository)
		uc := newTestUsecase(repo, new(mockStorage))
		available := true

		repo.On("FindByID", doctorID).Return(&models.Doctor{ID: doctorID, Available: true}, nil)
		repo.On("SetAvailability", doctorID, true).Return(nil)

		got, err := uc.ChangeAvailability(ctx, sessionData(t, doctorID, constvars.RoleDoctor), doctorID,
			&requests.ChangeAvailability{Available: &available})
		require.NoError(t, err)
		assert.True(t, got.Available)
	})

	t.Run("other doctor and patient are forbidden", func(t *testing.T) {
		repo := new(mockDoctorRepository)
		uc := newTestUsecase(repo, new(mockStorage))
		repo.On("FindByID", doctorID).Return(&models.Doctor{ID: doctorID, Available: true}, nil)

		_, err := uc.ChangeAvailability(ctx, sessionData(t, "65f000000000000000000099", constvars.RoleDoctor), doctorID, nil)
		assert.True(t, exceptions.IsKind(err, exceptions.KindForbidden))

		_, err = uc.ChangeAvailability(ctx, sessionData(t, "u-1", constvars.RolePatient), doctorID, nil)
		assert.True(t, exceptions.IsKind(err, exceptions.KindForbidden))
		repo.AssertNotCalled(t, "SetAvailability", mock.Anything, mock.Anything)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		repo := new(mockDoctorRepository)
		uc := newTestUsecase(repo, new(mockStorage))
		repo.On("FindByID", doctorID).Return(nil, nil)

		_, err := uc.ChangeAvailability(ctx, sessionData(t, constvars.AdminSubjectID, constvars.RoleAdmin), doctorID, nil)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}

func TestDoctorUsecase_UpdateProfileBySession(t *testing.T) {
	ctx := context.Background()
	repo := new(mockDoctorRepository)
	uc := newTestUsecase(repo, new(mockStorage))

	stored := &models.Doctor{
		ID:          doctorID,
		Email:       "rao@clinic.test",
		Fees:        500,
		About:       "old",
		Available:   true,
		SlotsBooked: models.BookedSlots{"5_3_2025": {"10:00 AM"}},
	}
	repo.On("FindByID", doctorID).Return(stored, nil)
	repo.On("UpdateProfile", mock.MatchedBy(func(d *models.Doctor) bool {
		return d.Fees == 750 && d.About == "old" && len(d.SlotsBooked["5_3_2025"]) == 1
	})).Return(nil)

	fees := 750.0
	got, err := uc.UpdateProfileBySession(ctx, sessionData(t, doctorID, constvars.RoleDoctor),
		&requests.UpdateDoctorProfile{Fees: &fees})
	require.NoError(t, err)
	assert.Equal(t, 750.0, got.Fees)
	assert.Equal(t, "rao@clinic.test", got.Email)

	_, err = uc.GetProfileBySession(ctx, sessionData(t, "u-1", constvars.RolePatient))
	assert.True(t, exceptions.IsKind(err, exceptions.KindForbidden))
}
