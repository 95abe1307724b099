package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Adsharma18/AiCareerCoachClean/internal/constant"
	"github.com/Adsharma18/AiCareerCoachClean/internal/dto"
	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/logger"
	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/serverutils"
	"github.com/Adsharma18/AiCareerCoachClean/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPdfService struct {
	mock.Mock
}

func (m *mockPdfService) Render(req *dto.ExportPDFRequest) (*service.RenderedPDF, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenderedPDF), args.Error(1)
}

func newPdfApp(svc service.IPdfService) *fiber.App {
	log := logger.NewNopLogger()
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.NewErrorHandler(log)})
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	NewPdfController(svc).RegisterRoutes(app)
	return app
}

func postExport(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/export-pdf", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestPdfController_Export(t *testing.T) {
	svc := new(mockPdfService)
	svc.On("Render", mock.MatchedBy(func(req *dto.ExportPDFRequest) bool {
		return req.Content == "Month 1" && req.Goal == "Data Analyst"
	})).Return(&service.RenderedPDF{Filename: "plan.pdf", Content: []byte("%PDF-1.3"), Pages: 1}, nil)

	resp := postExport(t, newPdfApp(svc), `{"content":"Month 1","goal":"Data Analyst"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="plan.pdf"`, resp.Header.Get("Content-Disposition"))
	svc.AssertExpectations(t)
}

func TestPdfController_MissingUnicodeFont(t *testing.T) {
	svc := new(mockPdfService)
	svc.On("Render", mock.Anything).Return(nil, service.ErrUnicodeFontUnavailable)

	resp := postExport(t, newPdfApp(svc), `{"content":"रोडमैप"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body serverutils.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, constant.ErrPdfFontMissing, body.Detail)
}
