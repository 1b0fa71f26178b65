package response

import (
	"blogpessoal/internal/api/dto"
	"blogpessoal/internal/pkg/util"
	"blogpessoal/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func runError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Error(c, err)
	c.Writer.WriteHeaderNow()
	return rec
}

func TestError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		message   string
		emptyBody bool
	}{
		{name: "not found", err: service.ErrPostagemNotFound, status: http.StatusNotFound, emptyBody: true},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", service.ErrPostagemNotFound), status: http.StatusNotFound, emptyBody: true},
		{name: "missing tema", err: service.ErrTemaNotFound, status: http.StatusBadRequest, message: "Topic does not exist"},
		{name: "bad param", err: service.ErrParamInvalid, status: http.StatusBadRequest, message: "invalid parameter"},
		{name: "rate limited", err: service.ErrTooManyRequests, status: http.StatusTooManyRequests, message: "too many requests"},
		{name: "json syntax", err: &json.SyntaxError{}, status: http.StatusBadRequest, message: "invalid json"},
		{name: "unknown", err: errors.New("db exploded"), status: http.StatusInternalServerError, message: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runError(tt.err)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d but got %d", tt.status, rec.Code)
			}
			if tt.emptyBody {
				if rec.Body.Len() != 0 {
					t.Fatalf("expected empty body but got %q", rec.Body.String())
				}
				return
			}

			var got dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if got.Status != tt.status || got.Message != tt.message {
				t.Fatalf("unexpected body %+v", got)
			}
		})
	}
}

func TestError_ValidationError(t *testing.T) {
	rec := runError(util.ValidationError{
		{Field: "titulo", Message: "obrigatorio"},
		{Field: "texto", Message: "curto"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d but got %d", http.StatusBadRequest, rec.Code)
	}
	var got dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(got.Errors) != 2 || got.Errors[1].Field != "texto" {
		t.Fatalf("unexpected field errors %+v", got.Errors)
	}
}
