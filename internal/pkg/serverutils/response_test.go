package serverutils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(module, message string, details map[string]interface{}) {
	m.Called(module, message, details)
}

func (m *mockLogger) Info(module, message string, details map[string]interface{}) {
	m.Called(module, message, details)
}

func (m *mockLogger) Warn(module, message string, details map[string]interface{}) {
	m.Called(module, message, details)
}

func (m *mockLogger) Error(module, message string, details map[string]interface{}) {
	m.Called(module, message, details)
}

func (m *mockLogger) Sync() error {
	return m.Called().Error(0)
}

func newErrorApp(log *mockLogger, handlerErr error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(log)})
	app.Use(ErrorHandlerMiddleware(log))
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return handlerErr
	})
	return app
}

func decodeError(t *testing.T, resp *http.Response) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestErrorHandler_UnhandledErrorGoesToLogger(t *testing.T) {
	log := new(mockLogger)
	log.On("Error", httpModule, "Unhandled request error", mock.MatchedBy(func(details map[string]interface{}) bool {
		return details["method"] == http.MethodGet &&
			details["path"] == "/boom" &&
			details["error"] == "database is down"
	})).Once()

	app := newErrorApp(log, errors.New("database is down"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "An error occurred while processing your request. Please try again.", body.Detail)
	assert.NotContains(t, body.Detail, "database")
	log.AssertExpectations(t)
}

func TestErrorHandler_ClientErrorsAreNotLogged(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		detail string
	}{
		{"validation", NewValidationError("Message cannot be empty."), http.StatusBadRequest, "Message cannot be empty."},
		{"fiber", fiber.NewError(http.StatusBadRequest, "Invalid request body."), http.StatusBadRequest, "Invalid request body."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := new(mockLogger)
			app := newErrorApp(log, tt.err)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
			require.NoError(t, err)

			assert.Equal(t, tt.code, resp.StatusCode)
			assert.Equal(t, tt.detail, decodeError(t, resp).Detail)
			log.AssertNotCalled(t, "Error", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	log := new(mockLogger)
	app := newErrorApp(log, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	log.AssertNotCalled(t, "Error", mock.Anything, mock.Anything, mock.Anything)
}
