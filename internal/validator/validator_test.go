package validator

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type pageQuery struct {
	Upload  string `form:"upload" binding:"omitempty,uuid"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}

func TestBindQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	tests := []struct {
		name      string
		query     string
		wantField string
	}{
		{"valid", "?upload=11111111-1111-1111-1111-111111111111&per_page=10", ""},
		{"empty", "", ""},
		{"bad uuid", "?upload=nope", "upload"},
		{"per page too large", "?per_page=500", "per_page"},
		{"not a number", "?per_page=ten", "detail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/students"+tt.query, nil)

			var q pageQuery
			fields := BindQuery(c, &q)

			if tt.wantField == "" {
				if fields != nil {
					t.Errorf("fields = %v, want nil", fields)
				}
				return
			}
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("fields = %v, want key %q", fields, tt.wantField)
			}
		})
	}
}
