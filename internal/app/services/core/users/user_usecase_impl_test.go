package users

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/app/services/core/session"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"errors"
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

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	return m.Called(user).Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadFile(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader, bucketName, objectName string) (string, error) {
	args := m.Called(bucketName, objectName)
	return args.String(0), args.Error(1)
}

func profileImage(contentType string, size int64) *contracts.ImageUpload {
	return &contracts.ImageUpload{
		File: strings.NewReader("img"),
		Header: &multipart.FileHeader{
			Filename: "me.JPG",
			Size:     size,
			Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
		},
	}
}

func sessionData(t *testing.T, userID, role string) string {
	t.Helper()
	raw, err := json.Marshal(models.Session{SessionID: "s-1", UserID: userID, Role: role, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	return string(raw)
}

func TestUserUsecase_Profile(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	uc := &userUsecase{
		UserRepository: repo,
		SessionService: session.NewSessionService(nil),
		Log:            zap.NewNop(),
		Clock:          time.Now,
	}
	patient := sessionData(t, "u-1", constvars.RolePatient)

	t.Run("get own profile", func(t *testing.T) {
		repo.On("FindByID", "u-1").Return(&models.User{ID: "u-1", Name: "Asha", Gender: models.GenderNotSelected}, nil).Once()

		got, err := uc.GetUserProfileBySession(ctx, patient)
		require.NoError(t, err)
		assert.Equal(t, "Asha", got.Name)
		assert.Equal(t, models.GenderNotSelected, got.Gender)
	})

	t.Run("update keeps email and defaults gender", func(t *testing.T) {
		repo.On("FindByID", "u-1").Return(&models.User{ID: "u-1", Name: "Asha", Email: "asha@mail.test", Gender: "Female"}, nil).Once()
		repo.On("UpdateProfile", mock.MatchedBy(func(u *models.User) bool {
			return u.Name == "Asha K" && u.Gender == models.GenderNotSelected && u.Email == "asha@mail.test"
		})).Return(nil).Once()

		got, err := uc.UpdateUserProfileBySession(ctx, patient, &requests.UpdateUserProfile{Name: " Asha K "}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Asha K", got.Name)
		assert.Equal(t, "asha@mail.test", got.Email)
	})

	t.Run("missing user", func(t *testing.T) {
		repo.On("FindByID", "u-1").Return(nil, nil).Once()

		_, err := uc.GetUserProfileBySession(ctx, patient)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("doctor session is rejected", func(t *testing.T) {
		_, err := uc.GetUserProfileBySession(ctx, sessionData(t, "d-1", constvars.RoleDoctor))
		assert.True(t, exceptions.IsKind(err, exceptions.KindForbidden))
	})
}

func TestUserUsecase_UpdateProfileImage(t *testing.T) {
	ctx := context.Background()
	patient := sessionData(t, "u-1", constvars.RolePatient)
	newUsecase := func(repo *mockUserRepository, storage *mockStorage) *userUsecase {
		return &userUsecase{
			UserRepository: repo,
			SessionService: session.NewSessionService(nil),
			MinioStorage:   storage,
			InternalConfig: &config.InternalConfig{
				Minio: config.AppMinio{BucketName: "profiles", ImageMaxUploadSizeInMB: 1},
			},
			Log:   zap.NewNop(),
			Clock: time.Now,
		}
	}

	t.Run("uploaded image url is stored", func(t *testing.T) {
		repo, storage := new(mockUserRepository), new(mockStorage)
		uc := newUsecase(repo, storage)

		repo.On("FindByID", "u-1").Return(&models.User{ID: "u-1", Name: "Asha"}, nil).Once()
		storage.On("UploadFile", "profiles", mock.MatchedBy(func(objectName string) bool {
			return strings.HasPrefix(objectName, "users/") && strings.HasSuffix(objectName, ".jpg")
		})).Return("http://minio/profiles/users/x.jpg", nil).Once()
		repo.On("UpdateProfile", mock.MatchedBy(func(u *models.User) bool {
			return u.Image == "http://minio/profiles/users/x.jpg" && u.ProfileUpdate()["image"] == u.Image
		})).Return(nil).Once()

		got, err := uc.UpdateUserProfileBySession(ctx, patient, &requests.UpdateUserProfile{Name: "Asha"}, profileImage(constvars.MIMEImageJPEG, 512))
		require.NoError(t, err)
		assert.Equal(t, "http://minio/profiles/users/x.jpg", got.Image)
		repo.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("without image the stored url is kept", func(t *testing.T) {
		repo, storage := new(mockUserRepository), new(mockStorage)
		uc := newUsecase(repo, storage)

		repo.On("FindByID", "u-1").Return(&models.User{ID: "u-1", Image: "http://minio/old.png"}, nil).Once()
		repo.On("UpdateProfile", mock.Anything).Return(nil).Once()

		got, err := uc.UpdateUserProfileBySession(ctx, patient, &requests.UpdateUserProfile{Name: "Asha"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "http://minio/old.png", got.Image)
		storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything)
	})

	t.Run("invalid images are rejected before any write", func(t *testing.T) {
		repo, storage := new(mockUserRepository), new(mockStorage)
		uc := newUsecase(repo, storage)
		repo.On("FindByID", "u-1").Return(&models.User{ID: "u-1"}, nil)

		_, err := uc.UpdateUserProfileBySession(ctx, patient, &requests.UpdateUserProfile{Name: "Asha"}, profileImage("image/gif", 512))
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidInput))

		_, err = uc.UpdateUserProfileBySession(ctx, patient, &requests.UpdateUserProfile{Name: "Asha"}, profileImage(constvars.MIMEImagePNG, 2<<20))
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidInput))

		storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything)
	})

	t.Run("storage failure leaves the profile untouched", func(t *testing.T) {
		repo, storage := new(mockUserRepository), new(mockStorage)
		uc := newUsecase(repo, storage)
		repo.On("FindByID", "u-1").Return(&models.User{ID: "u-1"}, nil).Once()
		storage.On("UploadFile", "profiles", mock.Anything).Return("", errors.New("minio down")).Once()

		_, err := uc.UpdateUserProfileBySession(ctx, patient, &requests.UpdateUserProfile{Name: "Asha"}, profileImage(constvars.MIMEImagePNG, 512))
		assert.Error(t, err)
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything)
	})
}
