package refresh

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Refresh(ctx context.Context, memberID int64) error {
	return m.Called(ctx, memberID).Error(0)
}

func TestRefreshHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "кеш сброшен",
			url:  "/members/10/attendance/refresh",
			setupMock: func(m *MockService) {
				m.On("Refresh", mock.Anything, int64(10)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"member_id":10}}`,
		},
		{
			name:           "некорректный id",
			url:            "/members/x/attendance/refresh",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"validation failed: memberID: must be a positive integer"}`,
		},
		{
			name: "redis недоступен",
			url:  "/members/10/attendance/refresh",
			setupMock: func(m *MockService) {
				m.On("Refresh", mock.Anything, int64(10)).Return(errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			r := chi.NewRouter()
			r.Method(http.MethodPost, "/members/{memberID}/attendance/refresh", New(logger, mockService))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
